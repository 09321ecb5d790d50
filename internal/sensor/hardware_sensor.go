package sensor

import (
	"log/slog"
	"strconv"

	"github.com/stianeikeland/go-rpio/v4"
	"github.com/yryz/ds18b20"
)

func (s *HardwareSensors) readTemperatureSensor(device *DeviceConfig) TemperatureReading {
	tr := TemperatureReading{
		Name:        device.Name,
		Description: device.Description,
		Address:     device.Address,
	}

	t, err := ds18b20.Temperature(device.Address)
	if err != nil {
		slog.Error("failed to read sensor", "name", device.Name, "address", device.Address, "error", err)
		tr.Err = err
	} else {
		t += device.CalibrationOffsetCelsius
		tr.TemperatureC = t
		tr.TemperatureF = (t * 9 / 5) + 32
		tr.Err = nil
	}

	return tr
}

func (s *HardwareSensors) ReadTemperatures() []TemperatureReading {
	slog.Debug(">>ReadTemperatures")
	defer slog.Debug("<<ReadTemperatures")

	readings := make([]TemperatureReading, 0, len(s.config.TemperatureSensors))

	for _, device := range s.config.TemperatureSensors {
		tr := s.readTemperatureSensor(&device)
		readings = append(readings, tr)
	}

	return readings
}

func (s *HardwareSensors) ReadAirAndWaterTemperature() (TemperatureReading, TemperatureReading) {
	temperatures := s.ReadTemperatures()

	var airTemp TemperatureReading
	var waterTemp TemperatureReading

	for _, temp := range temperatures {
		switch temp.Name {
		case "Air":
			airTemp = temp
		case "Water":
			waterTemp = temp
		}
	}

	return airTemp, waterTemp
}

func (s *HardwareSensors) IsLeakPresent() (bool, error) {
	slog.Debug(">>IsLeakPresent")
	defer slog.Debug("<<IsLeakPresent")

	if err := rpio.Open(); err != nil {
		return false, err
	}

	defer rpio.Close()

	pinNumber, err := strconv.Atoi(s.config.LeakSensor.Address)
	if err != nil {
		return false, err
	}

	pin := rpio.Pin(pinNumber)
	res := pin.Read()
	if res == 1 {
		return true, nil
	}

	return false, nil
}

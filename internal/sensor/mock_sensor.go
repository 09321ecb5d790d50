package sensor

import (
	"log/slog"
)

func (m *MockSensors) readTemperatureSensor(device *DeviceConfig) TemperatureReading {
	tr := TemperatureReading{
		Name:        device.Name,
		Description: device.Description,
		Address:     device.Address,
	}

	t := 21.0

	t += device.CalibrationOffsetCelsius
	tr.TemperatureC = t
	tr.TemperatureF = (t * 9 / 5) + 32
	tr.Err = nil

	return tr
}

func (m *MockSensors) ReadTemperatures() []TemperatureReading {
	slog.Debug(">>ReadTemperatures")
	defer slog.Debug("<<ReadTemperatures")

	readings := make([]TemperatureReading, 0, len(m.config.TemperatureSensors))

	for _, device := range m.config.TemperatureSensors {
		tr := m.readTemperatureSensor(&device)
		readings = append(readings, tr)
	}

	return readings
}

func (m *MockSensors) ReadAirAndWaterTemperature() (TemperatureReading, TemperatureReading) {
	slog.Debug(">>ReadAirAndWaterTemperature")
	defer slog.Debug("<<ReadAirAndWaterTemperature")

	temperatures := m.ReadTemperatures()

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

func (m *MockSensors) IsLeakPresent() (bool, error) {
	slog.Debug(">>IsLeakPresent")
	defer slog.Debug("<<IsLeakPresent")

	return false, nil
}

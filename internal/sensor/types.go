package sensor

import "time"

const (
	DRIVERTYPE_DS18B20 string = "DS18B20"
	DRIVERTYPE_GPIO    string = "GPIO"
	SENSOR_TEMPERATURE string = "temperature"
	SENSOR_LEAK        string = "leak"
)

type (
	SensorConfig struct {
		SensorTimeout time.Duration
		Devices       []DeviceConfig

		TemperatureSensors map[string]DeviceConfig
		LeakSensor         DeviceConfig
	}

	DeviceConfig struct {
		DriverType               string  `json:"driver_type"`
		SensorType               string  `json:"sensor_type"`
		Address                  string  `json:"address"`
		Name                     string  `json:"name"`
		Description              string  `json:"description"`
		CalibrationOffsetCelsius float64 `json:"calibration_offset_celsius"`
	}

	TemperatureReading struct {
		Name         string  `json:"name,omitempty"`
		Description  string  `json:"description,omitempty"`
		Address      string  `json:"address,omitempty"`
		TemperatureC float64 `json:"temperature_c,omitempty"`
		TemperatureF float64 `json:"temperature_f,omitempty"`
		Err          error   `json:"err,omitempty"`
	}

	// Sensors are the probes wired to the bridge itself: 1-wire temperature
	// probes in the pool cabinet and a GPIO leak probe under the pump pad.
	Sensors interface {
		ReadTemperatures() []TemperatureReading
		ReadAirAndWaterTemperature() (TemperatureReading, TemperatureReading)
		IsLeakPresent() (bool, error)
	}

	HardwareSensors struct {
		config SensorConfig
	}

	MockSensors struct {
		config SensorConfig
	}
)

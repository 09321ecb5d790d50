package temperatures

import (
	"errors"
	"net/http"
	"testing"

	"github.com/KyleBrandon/emaux-server/internal/sensor"
	"github.com/KyleBrandon/emaux-server/pkg/utils"
)

type mockSensors struct {
	readings []sensor.TemperatureReading
}

func (m *mockSensors) ReadTemperatures() []sensor.TemperatureReading {
	return m.readings
}

func (m *mockSensors) ReadAirAndWaterTemperature() (sensor.TemperatureReading, sensor.TemperatureReading) {
	var air, water sensor.TemperatureReading
	for _, r := range m.readings {
		switch r.Name {
		case "Air":
			air = r
		case "Water":
			water = r
		}
	}
	return air, water
}

func (m *mockSensors) IsLeakPresent() (bool, error) {
	return false, nil
}

func TestTemperaturesGet(t *testing.T) {
	t.Run("Get the sensor readings", func(t *testing.T) {
		sensors := &mockSensors{
			readings: []sensor.TemperatureReading{
				{Name: "Water", TemperatureC: 27.5, TemperatureF: 81.5},
				{Name: "Air", TemperatureC: 21.0, TemperatureF: 69.8},
			},
		}
		h := NewHandler(sensors)

		rr := utils.TestRequest(t, http.MethodGet, "/v1/temperatures", nil, h.handlerTemperaturesGet)

		utils.TestExpectedStatus(t, rr, http.StatusOK)
		utils.TestExpectedMessage(t, rr, "Water")
		utils.TestExpectedMessage(t, rr, "Air")
	})

	t.Run("Failed probe reports the error message", func(t *testing.T) {
		sensors := &mockSensors{
			readings: []sensor.TemperatureReading{
				{Name: "Water", Err: errors.New("probe not responding")},
			},
		}
		h := NewHandler(sensors)

		rr := utils.TestRequest(t, http.MethodGet, "/v1/temperatures", nil, h.handlerTemperaturesGet)

		utils.TestExpectedStatus(t, rr, http.StatusOK)
		utils.TestExpectedMessage(t, rr, "probe not responding")
	})
}

package temperatures

import (
	"github.com/KyleBrandon/emaux-server/internal/sensor"
)

type (
	TemperatureReading struct {
		Name         string  `json:"name,omitempty"`
		Description  string  `json:"description,omitempty"`
		Address      string  `json:"address,omitempty"`
		TemperatureC float64 `json:"temperature_c,omitempty"`
		TemperatureF float64 `json:"temperature_f,omitempty"`
		Err          string  `json:"err,omitempty"`
	}

	Handler struct {
		sensors sensor.Sensors
	}
)

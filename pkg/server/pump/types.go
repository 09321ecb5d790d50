package pump

import (
	"context"

	"github.com/KyleBrandon/emaux-server/internal/jobs"
	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/google/uuid"
)

type (
	// PumpClient is the slice of the emaux client the handler needs.
	PumpClient interface {
		GetData(ctx context.Context) (emaux.PumpData, error)
		SetSpeed(ctx context.Context, rpm int) error
		TurnOn(ctx context.Context) error
		TurnOff(ctx context.Context) error
	}

	Handler struct {
		pump  PumpClient
		boost jobs.BoostManager
	}

	PumpStatusResponse struct {
		Running   bool              `json:"running"`
		SpeedRPM  int               `json:"speed_rpm"`
		Registers map[string]string `json:"registers,omitempty"`
	}

	SetSpeedRequest struct {
		SpeedRPM int `json:"speed_rpm"`
	}

	BoostRequest struct {
		SpeedRPM        int `json:"speed_rpm"`
		DurationMinutes int `json:"duration_minutes"`
	}

	BoostResponse struct {
		ID               uuid.UUID `json:"id"`
		SpeedRPM         int       `json:"speed_rpm"`
		PreviousSpeedRPM int       `json:"previous_speed_rpm"`
		SecondsLeft      float64   `json:"seconds_left"`
	}
)

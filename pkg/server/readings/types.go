package readings

import (
	"context"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/google/uuid"
)

type (
	ReadingStore interface {
		GetRecentPumpReadings(ctx context.Context, limit int32) ([]database.PumpReading, error)
	}

	Handler struct {
		store ReadingStore
	}

	PumpReading struct {
		ID         uuid.UUID `json:"id"`
		CreatedAt  time.Time `json:"created_at"`
		Running    bool      `json:"running"`
		SpeedRPM   int       `json:"speed_rpm"`
		WaterTempC *float64  `json:"water_temp_c,omitempty"`
		AirTempC   *float64  `json:"air_temp_c,omitempty"`
	}
)

package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PumpReading struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Running    bool
	SpeedRpm   int32
	WaterTempC sql.NullString
	AirTempC   sql.NullString
}

type BoostRun struct {
	ID                      uuid.UUID
	CreatedAt               time.Time
	UpdatedAt               time.Time
	SpeedRpm                int32
	PreviousSpeedRpm        int32
	ExpectedDurationMinutes int32
	StartTime               time.Time
	EndTime                 sql.NullTime
	Status                  int32
	CancelRequested         bool
}

type Leak struct {
	ID         uuid.UUID
	DetectedAt time.Time
	ClearedAt  sql.NullTime
}

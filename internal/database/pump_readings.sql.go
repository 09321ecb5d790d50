package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const savePumpReading = `
INSERT INTO pump_readings (id, created_at, running, speed_rpm, water_temp_c, air_temp_c)
VALUES ($1, NOW(), $2, $3, $4, $5)
RETURNING id, created_at, running, speed_rpm, water_temp_c, air_temp_c
`

type SavePumpReadingParams struct {
	ID         uuid.UUID
	Running    bool
	SpeedRpm   int32
	WaterTempC sql.NullString
	AirTempC   sql.NullString
}

func (q *Queries) SavePumpReading(ctx context.Context, arg SavePumpReadingParams) (PumpReading, error) {
	row := q.db.QueryRowContext(ctx, savePumpReading,
		arg.ID,
		arg.Running,
		arg.SpeedRpm,
		arg.WaterTempC,
		arg.AirTempC,
	)
	var i PumpReading
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.Running,
		&i.SpeedRpm,
		&i.WaterTempC,
		&i.AirTempC,
	)
	return i, err
}

const getLatestPumpReading = `
SELECT id, created_at, running, speed_rpm, water_temp_c, air_temp_c
FROM pump_readings
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) GetLatestPumpReading(ctx context.Context) (PumpReading, error) {
	row := q.db.QueryRowContext(ctx, getLatestPumpReading)
	var i PumpReading
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.Running,
		&i.SpeedRpm,
		&i.WaterTempC,
		&i.AirTempC,
	)
	return i, err
}

const getRecentPumpReadings = `
SELECT id, created_at, running, speed_rpm, water_temp_c, air_temp_c
FROM pump_readings
ORDER BY created_at DESC
LIMIT $1
`

func (q *Queries) GetRecentPumpReadings(ctx context.Context, limit int32) ([]PumpReading, error) {
	rows, err := q.db.QueryContext(ctx, getRecentPumpReadings, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PumpReading
	for rows.Next() {
		var i PumpReading
		if err := rows.Scan(
			&i.ID,
			&i.CreatedAt,
			&i.Running,
			&i.SpeedRpm,
			&i.WaterTempC,
			&i.AirTempC,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

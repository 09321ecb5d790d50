package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const createBoostRun = `
INSERT INTO boost_runs (id, created_at, updated_at, speed_rpm, previous_speed_rpm, expected_duration_minutes, start_time, status, cancel_requested)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
RETURNING id, created_at, updated_at, speed_rpm, previous_speed_rpm, expected_duration_minutes, start_time, end_time, status, cancel_requested
`

type CreateBoostRunParams struct {
	ID                      uuid.UUID
	CreatedAt               time.Time
	UpdatedAt               time.Time
	SpeedRpm                int32
	PreviousSpeedRpm        int32
	ExpectedDurationMinutes int32
	StartTime               time.Time
	Status                  int32
}

func (q *Queries) CreateBoostRun(ctx context.Context, arg CreateBoostRunParams) (BoostRun, error) {
	row := q.db.QueryRowContext(ctx, createBoostRun,
		arg.ID,
		arg.CreatedAt,
		arg.UpdatedAt,
		arg.SpeedRpm,
		arg.PreviousSpeedRpm,
		arg.ExpectedDurationMinutes,
		arg.StartTime,
		arg.Status,
	)
	var i BoostRun
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.SpeedRpm,
		&i.PreviousSpeedRpm,
		&i.ExpectedDurationMinutes,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.CancelRequested,
	)
	return i, err
}

const getBoostRunById = `
SELECT id, created_at, updated_at, speed_rpm, previous_speed_rpm, expected_duration_minutes, start_time, end_time, status, cancel_requested
FROM boost_runs
WHERE id = $1
`

func (q *Queries) GetBoostRunById(ctx context.Context, id uuid.UUID) (BoostRun, error) {
	row := q.db.QueryRowContext(ctx, getBoostRunById, id)
	var i BoostRun
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.SpeedRpm,
		&i.PreviousSpeedRpm,
		&i.ExpectedDurationMinutes,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.CancelRequested,
	)
	return i, err
}

const getLatestBoostRun = `
SELECT id, created_at, updated_at, speed_rpm, previous_speed_rpm, expected_duration_minutes, start_time, end_time, status, cancel_requested
FROM boost_runs
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) GetLatestBoostRun(ctx context.Context) (BoostRun, error) {
	row := q.db.QueryRowContext(ctx, getLatestBoostRun)
	var i BoostRun
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.SpeedRpm,
		&i.PreviousSpeedRpm,
		&i.ExpectedDurationMinutes,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.CancelRequested,
	)
	return i, err
}

const updateBoostRunStatus = `
UPDATE boost_runs
SET updated_at = NOW(), status = $2, end_time = $3
WHERE id = $1
RETURNING id, created_at, updated_at, speed_rpm, previous_speed_rpm, expected_duration_minutes, start_time, end_time, status, cancel_requested
`

type UpdateBoostRunStatusParams struct {
	ID      uuid.UUID
	Status  int32
	EndTime sql.NullTime
}

func (q *Queries) UpdateBoostRunStatus(ctx context.Context, arg UpdateBoostRunStatusParams) (BoostRun, error) {
	row := q.db.QueryRowContext(ctx, updateBoostRunStatus, arg.ID, arg.Status, arg.EndTime)
	var i BoostRun
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.SpeedRpm,
		&i.PreviousSpeedRpm,
		&i.ExpectedDurationMinutes,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.CancelRequested,
	)
	return i, err
}

const updateCancelRequested = `
UPDATE boost_runs
SET updated_at = NOW(), cancel_requested = $2
WHERE id = $1
RETURNING id, created_at, updated_at, speed_rpm, previous_speed_rpm, expected_duration_minutes, start_time, end_time, status, cancel_requested
`

type UpdateCancelRequestedParams struct {
	ID              uuid.UUID
	CancelRequested bool
}

func (q *Queries) UpdateCancelRequested(ctx context.Context, arg UpdateCancelRequestedParams) (BoostRun, error) {
	row := q.db.QueryRowContext(ctx, updateCancelRequested, arg.ID, arg.CancelRequested)
	var i BoostRun
	err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.SpeedRpm,
		&i.PreviousSpeedRpm,
		&i.ExpectedDurationMinutes,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.CancelRequested,
	)
	return i, err
}

const getCancelRequested = `
SELECT cancel_requested
FROM boost_runs
WHERE id = $1
`

func (q *Queries) GetCancelRequested(ctx context.Context, id uuid.UUID) (bool, error) {
	row := q.db.QueryRowContext(ctx, getCancelRequested, id)
	var cancelRequested bool
	err := row.Scan(&cancelRequested)
	return cancelRequested, err
}

package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createLeakDetected = `
INSERT INTO leaks (id, detected_at)
VALUES ($1, $2)
RETURNING id, detected_at, cleared_at
`

func (q *Queries) CreateLeakDetected(ctx context.Context, detectedAt time.Time) (Leak, error) {
	row := q.db.QueryRowContext(ctx, createLeakDetected, uuid.New(), detectedAt)
	var i Leak
	err := row.Scan(&i.ID, &i.DetectedAt, &i.ClearedAt)
	return i, err
}

const getLatestLeakDetected = `
SELECT id, detected_at, cleared_at
FROM leaks
ORDER BY detected_at DESC
LIMIT 1
`

func (q *Queries) GetLatestLeakDetected(ctx context.Context) (Leak, error) {
	row := q.db.QueryRowContext(ctx, getLatestLeakDetected)
	var i Leak
	err := row.Scan(&i.ID, &i.DetectedAt, &i.ClearedAt)
	return i, err
}

const clearDetectedLeak = `
UPDATE leaks
SET cleared_at = NOW()
WHERE id = $1
RETURNING id, detected_at, cleared_at
`

func (q *Queries) ClearDetectedLeak(ctx context.Context, id uuid.UUID) (Leak, error) {
	row := q.db.QueryRowContext(ctx, clearDetectedLeak, id)
	var i Leak
	err := row.Scan(&i.ID, &i.DetectedAt, &i.ClearedAt)
	return i, err
}

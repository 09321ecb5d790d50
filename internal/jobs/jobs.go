package jobs

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/google/uuid"
)

const (
	BOOSTSTATUS_STARTED  = 1
	BOOSTSTATUS_FINISHED = 2
	BOOSTSTATUS_CANCELED = 3
	BOOSTSTATUS_FAILED   = 4
)

// how often a running boost checks for a cancel request in the database
const cancelPollInterval = 15 * time.Second

var (
	ErrBoostAlreadyRunning = errors.New("a boost run is already in progress")
	ErrNoBoostRunning      = errors.New("no boost run is in progress")
)

type (
	BoostStore interface {
		CreateBoostRun(ctx context.Context, arg database.CreateBoostRunParams) (database.BoostRun, error)
		GetBoostRunById(ctx context.Context, id uuid.UUID) (database.BoostRun, error)
		GetLatestBoostRun(ctx context.Context) (database.BoostRun, error)
		UpdateBoostRunStatus(ctx context.Context, arg database.UpdateBoostRunStatusParams) (database.BoostRun, error)
		UpdateCancelRequested(ctx context.Context, arg database.UpdateCancelRequestedParams) (database.BoostRun, error)
		GetCancelRequested(ctx context.Context, id uuid.UUID) (bool, error)
	}

	// PumpController is the slice of the emaux client a boost run needs.
	PumpController interface {
		GetData(ctx context.Context) (emaux.PumpData, error)
		SetSpeed(ctx context.Context, rpm int) error
		TurnOn(ctx context.Context) error
	}

	BoostManager interface {
		StartBoost(ctx context.Context, speedRPM int, duration time.Duration) (database.BoostRun, error)
		CancelBoost(ctx context.Context) error
		CurrentBoost(ctx context.Context) (database.BoostRun, error)
	}

	BoostConfig struct {
		mu    sync.Mutex
		store BoostStore
		pump  PumpController

		running    bool
		activeID   uuid.UUID
		cancelFunc context.CancelFunc
	}
)

func NewBoostConfig(store BoostStore, pump PumpController) *BoostConfig {
	return &BoostConfig{
		store: store,
		pump:  pump,
	}
}

// StartBoost will run the pump at speedRPM for the given duration and then
// restore the speed the pump was running at before the boost. Only one boost
// can run at a time.
func (bc *BoostConfig) StartBoost(ctx context.Context, speedRPM int, duration time.Duration) (database.BoostRun, error) {
	slog.Debug(">>StartBoost", "speed_rpm", speedRPM, "duration", duration)
	defer slog.Debug("<<StartBoost")

	bc.mu.Lock()
	defer bc.mu.Unlock()

	if bc.running {
		return database.BoostRun{}, ErrBoostAlreadyRunning
	}

	// snapshot the speed to restore when the boost ends
	data, err := bc.pump.GetData(ctx)
	if err != nil {
		return database.BoostRun{}, err
	}

	if err := bc.pump.TurnOn(ctx); err != nil {
		return database.BoostRun{}, err
	}

	if err := bc.pump.SetSpeed(ctx, speedRPM); err != nil {
		return database.BoostRun{}, err
	}

	now := time.Now().UTC()
	params := database.CreateBoostRunParams{
		ID:                      uuid.New(),
		CreatedAt:               now,
		UpdatedAt:               now,
		SpeedRpm:                int32(speedRPM),
		PreviousSpeedRpm:        int32(data.SpeedRPM),
		ExpectedDurationMinutes: int32(duration.Minutes()),
		StartTime:               now,
		Status:                  BOOSTSTATUS_STARTED,
	}

	run, err := bc.store.CreateBoostRun(ctx, params)
	if err != nil {
		return database.BoostRun{}, err
	}

	boostCtx, cancel := context.WithTimeout(context.Background(), duration)
	bc.running = true
	bc.activeID = run.ID
	bc.cancelFunc = cancel

	go bc.runBoost(boostCtx, run)

	return run, nil
}

// CancelBoost will flag the active boost run for cancellation.
func (bc *BoostConfig) CancelBoost(ctx context.Context) error {
	slog.Debug(">>CancelBoost")
	defer slog.Debug("<<CancelBoost")

	bc.mu.Lock()
	defer bc.mu.Unlock()

	if !bc.running {
		return ErrNoBoostRunning
	}

	arg := database.UpdateCancelRequestedParams{
		ID:              bc.activeID,
		CancelRequested: true,
	}
	if _, err := bc.store.UpdateCancelRequested(ctx, arg); err != nil {
		slog.Error("failed to flag boost run for cancel", "error", err)
	}

	bc.cancelFunc()

	return nil
}

// CurrentBoost will return the active boost run.
func (bc *BoostConfig) CurrentBoost(ctx context.Context) (database.BoostRun, error) {
	bc.mu.Lock()
	running := bc.running
	activeID := bc.activeID
	bc.mu.Unlock()

	if !running {
		return database.BoostRun{}, ErrNoBoostRunning
	}

	return bc.store.GetBoostRunById(ctx, activeID)
}

// runBoost waits out the boost window, watching the database for a cancel
// request, then restores the pre-boost speed.
func (bc *BoostConfig) runBoost(ctx context.Context, run database.BoostRun) {
	slog.Debug(">>runBoost", "id", run.ID)
	defer slog.Debug("<<runBoost", "id", run.ID)

	status := int32(BOOSTSTATUS_FINISHED)

	ticker := time.NewTicker(cancelPollInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				status = BOOSTSTATUS_CANCELED
			}
			break loop

		case <-ticker.C:
			canceled, err := bc.store.GetCancelRequested(context.Background(), run.ID)
			if err != nil {
				slog.Error("failed to read boost cancel flag", "error", err)
				continue
			}

			if canceled {
				status = BOOSTSTATUS_CANCELED
				break loop
			}
		}
	}

	bc.finishBoost(run, status)
}

func (bc *BoostConfig) finishBoost(run database.BoostRun, status int32) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := bc.pump.SetSpeed(ctx, int(run.PreviousSpeedRpm)); err != nil {
		slog.Error("failed to restore pump speed after boost", "error", err, "speed_rpm", run.PreviousSpeedRpm)
		status = BOOSTSTATUS_FAILED
	}

	arg := database.UpdateBoostRunStatusParams{
		ID:      run.ID,
		Status:  status,
		EndTime: sql.NullTime{Time: time.Now().UTC(), Valid: true},
	}
	if _, err := bc.store.UpdateBoostRunStatus(ctx, arg); err != nil {
		slog.Error("failed to update boost run status", "error", err)
	}

	bc.mu.Lock()
	if bc.cancelFunc != nil {
		bc.cancelFunc()
	}
	bc.running = false
	bc.cancelFunc = nil
	bc.mu.Unlock()
}

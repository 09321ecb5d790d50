package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/google/uuid"
)

type mockPump struct {
	mu        sync.Mutex
	speed     int
	on        bool
	err       error
	setSpeeds []int
}

func (m *mockPump) GetData(ctx context.Context) (emaux.PumpData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return emaux.PumpData{Running: m.on, SpeedRPM: m.speed}, m.err
}

func (m *mockPump) SetSpeed(ctx context.Context, rpm int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.speed = rpm
	m.setSpeeds = append(m.setSpeeds, rpm)
	return nil
}

func (m *mockPump) TurnOn(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.on = true
	return nil
}

func (m *mockPump) currentSpeed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

type mockBoostStore struct {
	mu              sync.Mutex
	run             database.BoostRun
	err             error
	cancelRequested bool
	lastStatus      int32
}

func (m *mockBoostStore) CreateBoostRun(ctx context.Context, arg database.CreateBoostRunParams) (database.BoostRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return database.BoostRun{}, m.err
	}
	m.run = database.BoostRun{
		ID:                      arg.ID,
		CreatedAt:               arg.CreatedAt,
		UpdatedAt:               arg.UpdatedAt,
		SpeedRpm:                arg.SpeedRpm,
		PreviousSpeedRpm:        arg.PreviousSpeedRpm,
		ExpectedDurationMinutes: arg.ExpectedDurationMinutes,
		StartTime:               arg.StartTime,
		Status:                  arg.Status,
	}
	return m.run, nil
}

func (m *mockBoostStore) GetBoostRunById(ctx context.Context, id uuid.UUID) (database.BoostRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.run, m.err
}

func (m *mockBoostStore) GetLatestBoostRun(ctx context.Context) (database.BoostRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.run, m.err
}

func (m *mockBoostStore) UpdateBoostRunStatus(ctx context.Context, arg database.UpdateBoostRunStatusParams) (database.BoostRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastStatus = arg.Status
	m.run.Status = arg.Status
	m.run.EndTime = arg.EndTime
	return m.run, nil
}

func (m *mockBoostStore) UpdateCancelRequested(ctx context.Context, arg database.UpdateCancelRequestedParams) (database.BoostRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelRequested = arg.CancelRequested
	m.run.CancelRequested = arg.CancelRequested
	return m.run, nil
}

func (m *mockBoostStore) GetCancelRequested(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelRequested, nil
}

func (m *mockBoostStore) status() int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastStatus
}

func waitForSpeed(t *testing.T, pump *mockPump, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pump.currentSpeed() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("expected pump speed to reach %d, got %d", want, pump.currentSpeed())
}

func TestStartBoost(t *testing.T) {
	t.Run("Start a boost run", func(t *testing.T) {
		store := &mockBoostStore{}
		pump := &mockPump{speed: 1800, on: true}
		bc := NewBoostConfig(store, pump)

		run, err := bc.StartBoost(context.Background(), 3000, time.Hour)
		if err != nil {
			t.Fatalf("expected boost to start, got %v", err)
		}

		if run.PreviousSpeedRpm != 1800 {
			t.Errorf("expected previous speed %d, got %d", 1800, run.PreviousSpeedRpm)
		}

		if pump.currentSpeed() != 3000 {
			t.Errorf("expected pump speed %d, got %d", 3000, pump.currentSpeed())
		}
	})

	t.Run("Only one boost at a time", func(t *testing.T) {
		store := &mockBoostStore{}
		pump := &mockPump{speed: 1800, on: true}
		bc := NewBoostConfig(store, pump)

		if _, err := bc.StartBoost(context.Background(), 3000, time.Hour); err != nil {
			t.Fatalf("expected boost to start, got %v", err)
		}

		_, err := bc.StartBoost(context.Background(), 3200, time.Hour)
		if !errors.Is(err, ErrBoostAlreadyRunning) {
			t.Errorf("expected ErrBoostAlreadyRunning, got %v", err)
		}
	})

	t.Run("Unreachable pump fails the start", func(t *testing.T) {
		store := &mockBoostStore{}
		pump := &mockPump{err: emaux.ErrConnection}
		bc := NewBoostConfig(store, pump)

		_, err := bc.StartBoost(context.Background(), 3000, time.Hour)
		if !errors.Is(err, emaux.ErrConnection) {
			t.Errorf("expected connection error, got %v", err)
		}

		if _, err := bc.CurrentBoost(context.Background()); !errors.Is(err, ErrNoBoostRunning) {
			t.Errorf("expected no boost running, got %v", err)
		}
	})

	t.Run("Boost expiry restores the previous speed", func(t *testing.T) {
		store := &mockBoostStore{}
		pump := &mockPump{speed: 1800, on: true}
		bc := NewBoostConfig(store, pump)

		if _, err := bc.StartBoost(context.Background(), 3000, 50*time.Millisecond); err != nil {
			t.Fatalf("expected boost to start, got %v", err)
		}

		waitForSpeed(t, pump, 1800)

		if store.status() != BOOSTSTATUS_FINISHED {
			t.Errorf("expected status %d, got %d", BOOSTSTATUS_FINISHED, store.status())
		}
	})
}

func TestCancelBoost(t *testing.T) {
	t.Run("Cancel with no boost running", func(t *testing.T) {
		bc := NewBoostConfig(&mockBoostStore{}, &mockPump{})

		if err := bc.CancelBoost(context.Background()); !errors.Is(err, ErrNoBoostRunning) {
			t.Errorf("expected ErrNoBoostRunning, got %v", err)
		}
	})

	t.Run("Cancel restores the previous speed", func(t *testing.T) {
		store := &mockBoostStore{}
		pump := &mockPump{speed: 1800, on: true}
		bc := NewBoostConfig(store, pump)

		if _, err := bc.StartBoost(context.Background(), 3000, time.Hour); err != nil {
			t.Fatalf("expected boost to start, got %v", err)
		}

		if err := bc.CancelBoost(context.Background()); err != nil {
			t.Fatalf("expected cancel to succeed, got %v", err)
		}

		waitForSpeed(t, pump, 1800)

		if store.status() != BOOSTSTATUS_CANCELED {
			t.Errorf("expected status %d, got %d", BOOSTSTATUS_CANCELED, store.status())
		}
	})
}

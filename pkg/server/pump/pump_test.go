package pump

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/internal/jobs"
	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/KyleBrandon/emaux-server/pkg/utils"
	"github.com/google/uuid"
)

type mockPumpClient struct {
	data      emaux.PumpData
	err       error
	speedSet  int
	turnedOn  bool
	turnedOff bool
}

func (m *mockPumpClient) GetData(ctx context.Context) (emaux.PumpData, error) {
	return m.data, m.err
}

func (m *mockPumpClient) SetSpeed(ctx context.Context, rpm int) error {
	if m.err != nil {
		return m.err
	}
	m.speedSet = rpm
	return nil
}

func (m *mockPumpClient) TurnOn(ctx context.Context) error {
	m.turnedOn = true
	return m.err
}

func (m *mockPumpClient) TurnOff(ctx context.Context) error {
	m.turnedOff = true
	return m.err
}

type mockBoostManager struct {
	run      database.BoostRun
	err      error
	canceled bool
}

func (m *mockBoostManager) StartBoost(ctx context.Context, speedRPM int, duration time.Duration) (database.BoostRun, error) {
	if m.err != nil {
		return database.BoostRun{}, m.err
	}
	m.run = database.BoostRun{
		ID:                      uuid.New(),
		SpeedRpm:                int32(speedRPM),
		ExpectedDurationMinutes: int32(duration.Minutes()),
		StartTime:               time.Now().UTC(),
	}
	return m.run, nil
}

func (m *mockBoostManager) CancelBoost(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.canceled = true
	return nil
}

func (m *mockBoostManager) CurrentBoost(ctx context.Context) (database.BoostRun, error) {
	return m.run, m.err
}

func TestPumpGet(t *testing.T) {
	t.Run("Get the pump status", func(t *testing.T) {
		client := &mockPumpClient{data: emaux.PumpData{Running: true, SpeedRPM: 2400}}
		h := NewHandler(client, &mockBoostManager{})

		rr := utils.TestRequest(t, http.MethodGet, "/v1/pump", nil, h.handlerPumpGet)

		utils.TestExpectedStatus(t, rr, http.StatusOK)
		utils.TestExpectedMessage(t, rr, `"speed_rpm":2400`)
	})

	t.Run("Unreachable pump is a bad gateway", func(t *testing.T) {
		client := &mockPumpClient{err: emaux.ErrConnection}
		h := NewHandler(client, &mockBoostManager{})

		rr := utils.TestRequest(t, http.MethodGet, "/v1/pump", nil, h.handlerPumpGet)

		utils.TestExpectedStatus(t, rr, http.StatusBadGateway)
		utils.TestExpectedMessage(t, rr, "could not read the pump state")
	})
}

func TestPumpStartStop(t *testing.T) {
	t.Run("Start the pump", func(t *testing.T) {
		client := &mockPumpClient{}
		h := NewHandler(client, &mockBoostManager{})

		rr := utils.TestRequest(t, http.MethodPost, "/v1/pump/start", nil, h.handlerPumpStart)

		utils.TestExpectedStatus(t, rr, http.StatusNoContent)
		if !client.turnedOn {
			t.Error("expected the pump to be turned on")
		}
	})

	t.Run("Stop the pump", func(t *testing.T) {
		client := &mockPumpClient{}
		h := NewHandler(client, &mockBoostManager{})

		rr := utils.TestRequest(t, http.MethodPost, "/v1/pump/stop", nil, h.handlerPumpStop)

		utils.TestExpectedStatus(t, rr, http.StatusNoContent)
		if !client.turnedOff {
			t.Error("expected the pump to be turned off")
		}
	})
}

func TestPumpSpeed(t *testing.T) {
	t.Run("Set the pump speed", func(t *testing.T) {
		client := &mockPumpClient{}
		h := NewHandler(client, &mockBoostManager{})

		body := strings.NewReader(`{"speed_rpm": 1500}`)
		rr := utils.TestRequest(t, http.MethodPut, "/v1/pump/speed", body, h.handlerPumpSpeed)

		utils.TestExpectedStatus(t, rr, http.StatusNoContent)
		if client.speedSet != 1500 {
			t.Errorf("expected speed %d, got %d", 1500, client.speedSet)
		}
	})

	t.Run("Invalid body is a bad request", func(t *testing.T) {
		h := NewHandler(&mockPumpClient{}, &mockBoostManager{})

		body := strings.NewReader(`not json`)
		rr := utils.TestRequest(t, http.MethodPut, "/v1/pump/speed", body, h.handlerPumpSpeed)

		utils.TestExpectedStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("Out of range speed is a bad request", func(t *testing.T) {
		client := &mockPumpClient{err: emaux.ErrInvalidSpeed}
		h := NewHandler(client, &mockBoostManager{})

		body := strings.NewReader(`{"speed_rpm": -10}`)
		rr := utils.TestRequest(t, http.MethodPut, "/v1/pump/speed", body, h.handlerPumpSpeed)

		utils.TestExpectedStatus(t, rr, http.StatusBadRequest)
	})
}

func TestBoost(t *testing.T) {
	t.Run("Start a boost run", func(t *testing.T) {
		h := NewHandler(&mockPumpClient{}, &mockBoostManager{})

		body := strings.NewReader(`{"speed_rpm": 3000, "duration_minutes": 60}`)
		rr := utils.TestRequest(t, http.MethodPost, "/v1/pump/boost", body, h.handlerBoostStart)

		utils.TestExpectedStatus(t, rr, http.StatusCreated)
		utils.TestExpectedMessage(t, rr, "seconds_left")
	})

	t.Run("Boost without a duration is a bad request", func(t *testing.T) {
		h := NewHandler(&mockPumpClient{}, &mockBoostManager{})

		body := strings.NewReader(`{"speed_rpm": 3000}`)
		rr := utils.TestRequest(t, http.MethodPost, "/v1/pump/boost", body, h.handlerBoostStart)

		utils.TestExpectedStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("Second boost is a conflict", func(t *testing.T) {
		boost := &mockBoostManager{err: jobs.ErrBoostAlreadyRunning}
		h := NewHandler(&mockPumpClient{}, boost)

		body := strings.NewReader(`{"speed_rpm": 3000, "duration_minutes": 60}`)
		rr := utils.TestRequest(t, http.MethodPost, "/v1/pump/boost", body, h.handlerBoostStart)

		utils.TestExpectedStatus(t, rr, http.StatusConflict)
	})

	t.Run("Cancel with no boost running", func(t *testing.T) {
		boost := &mockBoostManager{err: jobs.ErrNoBoostRunning}
		h := NewHandler(&mockPumpClient{}, boost)

		rr := utils.TestRequest(t, http.MethodDelete, "/v1/pump/boost", nil, h.handlerBoostCancel)

		utils.TestExpectedStatus(t, rr, http.StatusNotFound)
	})

	t.Run("Cancel the active boost", func(t *testing.T) {
		boost := &mockBoostManager{}
		h := NewHandler(&mockPumpClient{}, boost)

		rr := utils.TestRequest(t, http.MethodDelete, "/v1/pump/boost", nil, h.handlerBoostCancel)

		utils.TestExpectedStatus(t, rr, http.StatusNoContent)
		if !boost.canceled {
			t.Error("expected the boost run to be canceled")
		}
	})
}

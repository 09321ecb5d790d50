package readings

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/pkg/utils"
	"github.com/google/uuid"
)

type mockReadingStore struct {
	rows      []database.PumpReading
	err       error
	lastLimit int32
}

func (m *mockReadingStore) GetRecentPumpReadings(ctx context.Context, limit int32) ([]database.PumpReading, error) {
	m.lastLimit = limit
	return m.rows, m.err
}

func TestReadingsGet(t *testing.T) {
	t.Run("Get the recent readings", func(t *testing.T) {
		store := &mockReadingStore{
			rows: []database.PumpReading{
				{
					ID:         uuid.New(),
					CreatedAt:  time.Now().UTC(),
					Running:    true,
					SpeedRpm:   2400,
					WaterTempC: sql.NullString{String: "27.500000", Valid: true},
				},
			},
		}
		h := NewHandler(store)

		rr := utils.TestRequest(t, http.MethodGet, "/v1/readings", nil, h.handlerReadingsGet)

		utils.TestExpectedStatus(t, rr, http.StatusOK)
		utils.TestExpectedMessage(t, rr, `"speed_rpm":2400`)
		utils.TestExpectedMessage(t, rr, "water_temp_c")

		if store.lastLimit != defaultReadingLimit {
			t.Errorf("expected the default limit %d, got %d", defaultReadingLimit, store.lastLimit)
		}
	})

	t.Run("Limit is capped", func(t *testing.T) {
		store := &mockReadingStore{}
		h := NewHandler(store)

		rr := utils.TestRequest(t, http.MethodGet, "/v1/readings?limit=999999", nil, h.handlerReadingsGet)

		utils.TestExpectedStatus(t, rr, http.StatusOK)
		if store.lastLimit != maxReadingLimit {
			t.Errorf("expected the capped limit %d, got %d", maxReadingLimit, store.lastLimit)
		}
	})

	t.Run("Invalid limit is a bad request", func(t *testing.T) {
		h := NewHandler(&mockReadingStore{})

		rr := utils.TestRequest(t, http.MethodGet, "/v1/readings?limit=zero", nil, h.handlerReadingsGet)

		utils.TestExpectedStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("Store failure is an internal error", func(t *testing.T) {
		store := &mockReadingStore{err: errors.New("connection refused")}
		h := NewHandler(store)

		rr := utils.TestRequest(t, http.MethodGet, "/v1/readings", nil, h.handlerReadingsGet)

		utils.TestExpectedStatus(t, rr, http.StatusInternalServerError)
		utils.TestExpectedMessage(t, rr, "could not query the pump readings")
	})
}

package readings

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/pkg/utils"
)

const (
	defaultReadingLimit = 100
	maxReadingLimit     = 1000
)

func NewHandler(store ReadingStore) *Handler {
	return &Handler{
		store,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/readings", h.handlerReadingsGet)
}

func (h *Handler) handlerReadingsGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerReadingsGet")

	limit := defaultReadingLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "limit must be a positive number", err)
			return
		}

		limit = parsed
	}

	if limit > maxReadingLimit {
		limit = maxReadingLimit
	}

	rows, err := h.store.GetRecentPumpReadings(r.Context(), int32(limit))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "could not query the pump readings", err)
		return
	}

	results := make([]PumpReading, 0, len(rows))
	for _, row := range rows {
		results = append(results, convertFromDatabaseReading(row))
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

func convertFromDatabaseReading(row database.PumpReading) PumpReading {
	reading := PumpReading{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		Running:   row.Running,
		SpeedRPM:  int(row.SpeedRpm),
	}

	if row.WaterTempC.Valid {
		if v, err := strconv.ParseFloat(row.WaterTempC.String, 64); err == nil {
			reading.WaterTempC = &v
		}
	}

	if row.AirTempC.Valid {
		if v, err := strconv.ParseFloat(row.AirTempC.String, 64); err == nil {
			reading.AirTempC = &v
		}
	}

	return reading
}

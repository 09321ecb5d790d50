package health

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/emaux-server/pkg/utils"
)

func NewHandler(loggerLevel *slog.LevelVar) *Handler {
	return &Handler{
		loggerLevel,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/health", h.handlerHealthGet)
	mux.HandleFunc("PUT /v1/health/log-level", h.handlerLogLevelPut)
}

func (h *Handler) handlerHealthGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerHealthGet")

	response := HealthResponse{
		Status:   "ok",
		LogLevel: h.loggerLevel.Level().String(),
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *Handler) handlerLogLevelPut(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerLogLevelPut")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for a log level change", err)
		return
	}

	defer r.Body.Close()

	var llr LogLevelRequest
	if err := json.Unmarshal(body, &llr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for a log level change", err)
		return
	}

	level, err := utils.ParseLogLevel(llr.LogLevel)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown log level", err)
		return
	}

	h.loggerLevel.Set(level)
	slog.Info("log level changed", "level", level)

	utils.RespondWithNoContent(w, http.StatusNoContent)
}

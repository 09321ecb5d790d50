package pump

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/internal/jobs"
	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/KyleBrandon/emaux-server/pkg/utils"
)

func NewHandler(pump PumpClient, boost jobs.BoostManager) *Handler {
	return &Handler{
		pump,
		boost,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/pump", h.handlerPumpGet)
	mux.HandleFunc("POST /v1/pump/start", h.handlerPumpStart)
	mux.HandleFunc("POST /v1/pump/stop", h.handlerPumpStop)
	mux.HandleFunc("PUT /v1/pump/speed", h.handlerPumpSpeed)
	mux.HandleFunc("GET /v1/pump/boost", h.handlerBoostGet)
	mux.HandleFunc("POST /v1/pump/boost", h.handlerBoostStart)
	mux.HandleFunc("DELETE /v1/pump/boost", h.handlerBoostCancel)
}

func (h *Handler) handlerPumpGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerPumpGet")

	data, err := h.pump.GetData(r.Context())
	if err != nil {
		respondWithPumpError(w, "could not read the pump state", err)
		return
	}

	response := PumpStatusResponse{
		Running:   data.Running,
		SpeedRPM:  data.SpeedRPM,
		Registers: data.Registers,
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *Handler) handlerPumpStart(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerPumpStart")

	if err := h.pump.TurnOn(r.Context()); err != nil {
		respondWithPumpError(w, "failed to turn on the pump", err)
		return
	}

	utils.RespondWithNoContent(w, http.StatusNoContent)
}

func (h *Handler) handlerPumpStop(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerPumpStop")

	if err := h.pump.TurnOff(r.Context()); err != nil {
		respondWithPumpError(w, "failed to turn off the pump", err)
		return
	}

	utils.RespondWithNoContent(w, http.StatusNoContent)
}

func (h *Handler) handlerPumpSpeed(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerPumpSpeed")

	var ssr SetSpeedRequest
	if err := readJSONBody(r, &ssr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for a speed change", err)
		return
	}

	if err := h.pump.SetSpeed(r.Context(), ssr.SpeedRPM); err != nil {
		respondWithPumpError(w, "failed to set the pump speed", err)
		return
	}

	utils.RespondWithNoContent(w, http.StatusNoContent)
}

func (h *Handler) handlerBoostGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerBoostGet")

	run, err := h.boost.CurrentBoost(r.Context())
	if err != nil {
		if errors.Is(err, jobs.ErrNoBoostRunning) {
			utils.RespondWithError(w, http.StatusNotFound, "no boost run is in progress", err)
			return
		}

		utils.RespondWithError(w, http.StatusInternalServerError, "could not query the boost run", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, convertBoostRun(run))
}

func (h *Handler) handlerBoostStart(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerBoostStart")

	var br BoostRequest
	if err := readJSONBody(r, &br); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for a boost run", err)
		return
	}

	if br.DurationMinutes <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "boost duration must be positive", nil)
		return
	}

	run, err := h.boost.StartBoost(r.Context(), br.SpeedRPM, time.Duration(br.DurationMinutes)*time.Minute)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrBoostAlreadyRunning):
			utils.RespondWithError(w, http.StatusConflict, "a boost run is already in progress", err)
		case errors.Is(err, emaux.ErrInvalidSpeed):
			utils.RespondWithError(w, http.StatusBadRequest, "boost speed out of range", err)
		default:
			respondWithPumpError(w, "failed to start the boost run", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, convertBoostRun(run))
}

func (h *Handler) handlerBoostCancel(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerBoostCancel")

	if err := h.boost.CancelBoost(r.Context()); err != nil {
		if errors.Is(err, jobs.ErrNoBoostRunning) {
			utils.RespondWithError(w, http.StatusNotFound, "no boost run is in progress", err)
			return
		}

		utils.RespondWithError(w, http.StatusInternalServerError, "failed to cancel the boost run", err)
		return
	}

	utils.RespondWithNoContent(w, http.StatusNoContent)
}

func convertBoostRun(run database.BoostRun) BoostResponse {
	endTime := run.StartTime.Add(time.Duration(run.ExpectedDurationMinutes) * time.Minute)

	secondsLeft := time.Until(endTime).Seconds()
	if secondsLeft < 0 {
		secondsLeft = 0
	}

	return BoostResponse{
		ID:               run.ID,
		SpeedRPM:         int(run.SpeedRpm),
		PreviousSpeedRPM: int(run.PreviousSpeedRpm),
		SecondsLeft:      secondsLeft,
	}
}

func readJSONBody(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// respondWithPumpError maps client errors onto HTTP statuses: an unreachable
// pump is a bad gateway, a rejected command or bad speed is the caller's
// fault.
func respondWithPumpError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, emaux.ErrInvalidSpeed):
		utils.RespondWithError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, emaux.ErrCommandRejected):
		utils.RespondWithError(w, http.StatusBadGateway, message, err)
	case errors.Is(err, emaux.ErrConnection):
		utils.RespondWithError(w, http.StatusBadGateway, message, err)
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, message, err)
	}
}

package schedules

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/KyleBrandon/emaux-server/pkg/utils"
)

func NewHandler(pump ScheduleClient) *Handler {
	return &Handler{
		pump,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/schedules", h.handlerSchedulesGet)
}

func (h *Handler) handlerSchedulesGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerSchedulesGet")

	schedules, err := h.pump.GetSchedules(r.Context())
	if err != nil {
		if errors.Is(err, emaux.ErrConnection) {
			utils.RespondWithError(w, http.StatusBadGateway, "could not read the pump schedules", err)
			return
		}

		utils.RespondWithError(w, http.StatusInternalServerError, "could not read the pump schedules", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, schedules)
}

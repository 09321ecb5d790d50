package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/jobs"
	"github.com/KyleBrandon/emaux-server/pkg/server/monitor"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func NewHandler(mctx *monitor.MonitorContext, boost jobs.BoostManager, originPatterns []string) *Handler {
	h := Handler{
		mctx,
		boost,
		originPatterns,
	}

	return &h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/status/ws", h.handleStatusWS)
}

func (h *Handler) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleStatusWS: new incoming connection")
	defer slog.Debug("<<handleStatusWS")

	opts := &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	}
	c, err := websocket.Accept(w, r, opts)
	if err != nil {
		slog.Error("websocket accept error:", "error", err)
		return
	}

	defer c.Close(websocket.StatusInternalError, "Unexpected connection close")

	ctx := c.CloseRead(r.Context())

	h.streamStatus(ctx, c)
}

func (h *Handler) streamStatus(ctx context.Context, c *websocket.Conn) {
	slog.Debug(">>streamStatus")
	defer slog.Debug("<<streamStatus")

	ticker := time.NewTicker(1 * time.Second)
	heartbeatTicker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("streamStatus: client disconnected")
			c.Close(websocket.StatusNormalClosure, "Connection closed")
			return

		case <-ticker.C:
			status := h.buildSystemStatus(ctx)

			if err := wsjson.Write(ctx, c, status); err != nil {
				slog.Error("failed to write the status to the websocket", "error", err)
				return
			}

		case <-heartbeatTicker.C:
			if err := c.Ping(ctx); err != nil {
				slog.Error("websocket heartbeat failed", "error", err)
				return
			}
		}
	}
}

func (h *Handler) buildSystemStatus(ctx context.Context) SystemStatus {
	errorMessages := make([]string, 0)

	h.mctx.Lock()
	pump := h.mctx.Pump
	temperature := h.mctx.Temperature
	leakDetected := h.mctx.LeakDetected
	h.mctx.Unlock()

	status := SystemStatus{
		PumpReachable: pump.Reachable,
		PumpRunning:   pump.Running,
		SpeedRPM:      pump.SpeedRPM,
		LastSeen:      pump.LastSeen,
		LeakDetected:  leakDetected,
	}

	if temperature.WaterTemperature.Err == nil {
		status.WaterTempC = temperature.WaterTemperature.TemperatureC
		status.WaterTempF = temperature.WaterTemperature.TemperatureF
	} else {
		errorMessages = append(errorMessages, temperature.WaterTemperature.Err.Error())
	}

	if temperature.AirTemperature.Err == nil {
		status.AirTempC = temperature.AirTemperature.TemperatureC
		status.AirTempF = temperature.AirTemperature.TemperatureF
	} else {
		errorMessages = append(errorMessages, temperature.AirTemperature.Err.Error())
	}

	run, err := h.boost.CurrentBoost(ctx)
	if err == nil {
		endTime := run.StartTime.Add(time.Duration(run.ExpectedDurationMinutes) * time.Minute)

		status.BoostRunning = true
		status.BoostSecondsLeft = time.Until(endTime).Seconds()
		if status.BoostSecondsLeft < 0 {
			status.BoostSecondsLeft = 0
		}
	} else if !errors.Is(err, jobs.ErrNoBoostRunning) {
		errorMessages = append(errorMessages, err.Error())
	}

	status.ErrorMessages = errorMessages

	return status
}

package health

import (
	"log/slog"
)

type (
	Handler struct {
		loggerLevel *slog.LevelVar
	}

	HealthResponse struct {
		Status   string `json:"status"`
		LogLevel string `json:"log_level"`
	}

	LogLevelRequest struct {
		LogLevel string `json:"log_level"`
	}
)

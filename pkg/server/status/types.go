package status

import (
	"time"

	"github.com/KyleBrandon/emaux-server/internal/jobs"
	"github.com/KyleBrandon/emaux-server/pkg/server/monitor"
)

type (
	Handler struct {
		mctx           *monitor.MonitorContext
		boost          jobs.BoostManager
		originPatterns []string
	}

	SystemStatus struct {
		ErrorMessages    []string  `json:"error_messages,omitempty"`
		PumpReachable    bool      `json:"pump_reachable"`
		PumpRunning      bool      `json:"pump_running"`
		SpeedRPM         int       `json:"speed_rpm"`
		LastSeen         time.Time `json:"last_seen,omitempty"`
		WaterTempC       float64   `json:"water_temp_c"`
		WaterTempF       float64   `json:"water_temp_f"`
		AirTempC         float64   `json:"air_temp_c"`
		AirTempF         float64   `json:"air_temp_f"`
		LeakDetected     bool      `json:"leak_detected"`
		BoostRunning     bool      `json:"boost_running"`
		BoostSecondsLeft float64   `json:"boost_seconds_left,omitempty"`
	}
)

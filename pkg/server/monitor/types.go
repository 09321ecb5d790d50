package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/internal/sensor"
	"github.com/KyleBrandon/emaux-server/pkg/emaux"
	"github.com/google/uuid"
	"github.com/nikoksr/notify"
)

type (
	NotificationTask struct {
		Message string
	}

	// PumpState is the last snapshot the poller took of the pump.
	PumpState struct {
		Reachable bool
		Running   bool
		SpeedRPM  int
		LastSeen  time.Time
	}

	TemperatureState struct {
		WaterTemperature sensor.TemperatureReading
		AirTemperature   sensor.TemperatureReading
	}

	MonitorContext struct {
		sync.Mutex
		wg      *sync.WaitGroup
		ctx     context.Context
		store   MonitorStore
		sensors sensor.Sensors
		pump    PumpMonitorClient

		pollInterval      time.Duration
		monitorCancelFunc context.CancelFunc

		Pump         PumpState
		Temperature  TemperatureState
		LeakDetected bool

		NotifyCh chan NotificationTask
		notifier *notify.Notify
	}

	MonitorStore interface {
		SavePumpReading(ctx context.Context, arg database.SavePumpReadingParams) (database.PumpReading, error)
		GetLatestLeakDetected(ctx context.Context) (database.Leak, error)
		CreateLeakDetected(ctx context.Context, detectedAt time.Time) (database.Leak, error)
		ClearDetectedLeak(ctx context.Context, id uuid.UUID) (database.Leak, error)
	}

	// PumpMonitorClient is the slice of the emaux client the monitor needs.
	PumpMonitorClient interface {
		GetData(ctx context.Context) (emaux.PumpData, error)
		TurnOff(ctx context.Context) error
	}
)

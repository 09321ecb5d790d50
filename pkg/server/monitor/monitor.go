package monitor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/KyleBrandon/emaux-server/internal/database"
	"github.com/KyleBrandon/emaux-server/internal/sensor"
	"github.com/google/uuid"
	"github.com/nikoksr/notify"
)

const (
	temperaturePollInterval = 30 * time.Second
	leakPollInterval        = 5 * time.Second
	pumpRequestTimeout      = 10 * time.Second
)

// InitializeMonitorContext will initialize a new MonitorContext and start the
// background monitor routines.
func InitializeMonitorContext(notifier *notify.Notify, store MonitorStore, sensors sensor.Sensors, pump PumpMonitorClient, pollInterval time.Duration) *MonitorContext {
	slog.Debug(">>InitializeMonitorContext")
	defer slog.Debug("<<InitializeMonitorContext")

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	mctx := MonitorContext{
		wg:                &wg,
		ctx:               ctx,
		store:             store,
		sensors:           sensors,
		pump:              pump,
		pollInterval:      pollInterval,
		monitorCancelFunc: cancel,
	}

	mctx.NotifyCh = make(chan NotificationTask)
	mctx.notifier = notifier

	mctx.startMonitorRoutines()

	return &mctx
}

// CancelAndWait for the monitor routines to exit.
func (mctx *MonitorContext) CancelAndWait() {
	mctx.monitorCancelFunc()
	mctx.wg.Wait()
}

func (mctx *MonitorContext) startMonitorRoutines() {
	mctx.wg.Add(1)
	go mctx.monitorNotifications()

	mctx.wg.Add(1)
	go mctx.monitorPump()

	mctx.wg.Add(1)
	go mctx.monitorTemperatures()

	mctx.wg.Add(1)
	go mctx.monitorLeaks()
}

func (mctx *MonitorContext) monitorNotifications() {
	slog.Debug(">>monitorNotifications")
	defer slog.Debug("<<monitorNotifications")

	defer mctx.wg.Done()

	for {
		select {
		case <-mctx.ctx.Done():
			slog.Debug("monitorNotifications: context done")
			return

		case task, ok := <-mctx.NotifyCh:
			if !ok {
				slog.Error("The notification channel was closed")
				return
			}

			if mctx.notifier == nil {
				slog.Info("notification dropped, no notifier configured", "message", task.Message)
				continue
			}

			if err := mctx.notifier.Send(mctx.ctx, "Pool Pump", task.Message); err != nil {
				slog.Error("failed to send notification", "error", err)
			}
		}
	}
}

func (mctx *MonitorContext) monitorPump() {
	slog.Debug(">>monitorPump")
	defer slog.Debug("<<monitorPump")

	defer mctx.wg.Done()

	ticker := time.NewTicker(mctx.pollInterval)
	defer ticker.Stop()

	mctx.pollPumpOnce()

	for {
		select {
		case <-mctx.ctx.Done():
			slog.Debug("monitorPump: context done")
			return

		case <-ticker.C:
			mctx.pollPumpOnce()
		}
	}
}

// pollPumpOnce will snapshot the pump registers, persist a reading, and track
// reachability transitions.
func (mctx *MonitorContext) pollPumpOnce() {
	ctx, cancel := context.WithTimeout(mctx.ctx, pumpRequestTimeout)
	defer cancel()

	data, err := mctx.pump.GetData(ctx)
	if err != nil {
		slog.Error("failed to poll the pump", "error", err)

		mctx.Lock()
		wasReachable := mctx.Pump.Reachable
		mctx.Pump.Reachable = false
		mctx.Unlock()

		if wasReachable {
			mctx.sendNotification("Lost contact with the pool pump")
		}

		return
	}

	mctx.Lock()
	wasReachable := mctx.Pump.Reachable
	hadContact := !mctx.Pump.LastSeen.IsZero()
	mctx.Pump.Reachable = true
	mctx.Pump.Running = data.Running
	mctx.Pump.SpeedRPM = data.SpeedRPM
	mctx.Pump.LastSeen = time.Now().UTC()
	waterTemp := mctx.Temperature.WaterTemperature
	airTemp := mctx.Temperature.AirTemperature
	mctx.Unlock()

	if !wasReachable && hadContact {
		mctx.sendNotification("Regained contact with the pool pump")
	}

	mctx.savePumpReading(data.Running, data.SpeedRPM, waterTemp, airTemp)
}

func (mctx *MonitorContext) savePumpReading(running bool, speedRPM int, waterTemp sensor.TemperatureReading, airTemp sensor.TemperatureReading) {
	waterTempC := sql.NullString{}
	if waterTemp.Err == nil && waterTemp.Name != "" {
		waterTempC.Valid = true
		waterTempC.String = fmt.Sprintf("%f", waterTemp.TemperatureC)
	}

	airTempC := sql.NullString{}
	if airTemp.Err == nil && airTemp.Name != "" {
		airTempC.Valid = true
		airTempC.String = fmt.Sprintf("%f", airTemp.TemperatureC)
	}

	arg := database.SavePumpReadingParams{
		ID:         uuid.New(),
		Running:    running,
		SpeedRpm:   int32(speedRPM),
		WaterTempC: waterTempC,
		AirTempC:   airTempC,
	}

	if _, err := mctx.store.SavePumpReading(mctx.ctx, arg); err != nil {
		slog.Error("failed to save pump reading", "error", err)
	}
}

func (mctx *MonitorContext) monitorTemperatures() {
	slog.Debug(">>monitorTemperatures")
	defer slog.Debug("<<monitorTemperatures")

	defer mctx.wg.Done()

	ticker := time.NewTicker(temperaturePollInterval)
	defer ticker.Stop()

	mctx.readTemperaturesOnce()

	for {
		select {
		case <-mctx.ctx.Done():
			slog.Debug("monitorTemperatures: context done")
			return

		case <-ticker.C:
			mctx.readTemperaturesOnce()
		}
	}
}

func (mctx *MonitorContext) readTemperaturesOnce() {
	at, wt := mctx.sensors.ReadAirAndWaterTemperature()
	if at.Err != nil {
		slog.Error("failed to read the air temperature", "error", at.Err)
	}

	if wt.Err != nil {
		slog.Error("failed to read the water temperature", "error", wt.Err)
	}

	mctx.Lock()
	mctx.Temperature.AirTemperature = at
	mctx.Temperature.WaterTemperature = wt
	mctx.Unlock()
}

func (mctx *MonitorContext) monitorLeaks() {
	slog.Debug(">>monitorLeaks")
	defer slog.Debug("<<monitorLeaks")

	defer mctx.wg.Done()

	ticker := time.NewTicker(leakPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-mctx.ctx.Done():
			slog.Debug("monitorLeaks: context done")
			return

		case <-ticker.C:
			mctx.checkLeakSensor()
		}
	}
}

// checkLeakSensor will record leak transitions and stop the pump while water
// is detected under the pump pad.
func (mctx *MonitorContext) checkLeakSensor() {
	leakDetected, err := mctx.sensors.IsLeakPresent()
	if err != nil {
		slog.Error("failed to read the leak sensor", "error", err)
		return
	}

	mctx.Lock()
	previous := mctx.LeakDetected
	mctx.LeakDetected = leakDetected
	mctx.Unlock()

	if leakDetected == previous {
		return
	}

	if leakDetected {
		if _, err := mctx.store.CreateLeakDetected(mctx.ctx, time.Now().UTC()); err != nil {
			slog.Error("failed to save the detected leak", "error", err)
		}

		mctx.sendNotification("Leak detected under the pool pump, stopping the pump")

		ctx, cancel := context.WithTimeout(mctx.ctx, pumpRequestTimeout)
		defer cancel()

		if err := mctx.pump.TurnOff(ctx); err != nil {
			slog.Error("failed to stop the pump after a leak was detected", "error", err)
			mctx.sendNotification("Failed to stop the pool pump after a leak was detected")
		}

		return
	}

	leak, err := mctx.store.GetLatestLeakDetected(mctx.ctx)
	if err != nil {
		slog.Error("failed to query the latest detected leak", "error", err)
		return
	}

	if _, err := mctx.store.ClearDetectedLeak(mctx.ctx, leak.ID); err != nil {
		slog.Error("failed to clear the detected leak", "error", err)
	}

	mctx.sendNotification("Leak under the pool pump has cleared")
}

// sendNotification hands the message to the notification routine without
// blocking the caller if the monitor is shutting down.
func (mctx *MonitorContext) sendNotification(message string) {
	select {
	case mctx.NotifyCh <- NotificationTask{Message: message}:
	case <-mctx.ctx.Done():
	}
}

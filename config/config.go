package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/KyleBrandon/emaux-server/internal/sensor"
)

const DefaultLogLevel = slog.LevelInfo

const (
	DefaultPumpTimeoutSeconds  = 5
	DefaultPollIntervalSeconds = 60
)

type Config struct {
	PumpHost             string                `json:"pump_host"`
	PumpTimeoutSeconds   int                   `json:"pump_timeout_seconds"`
	PollIntervalSeconds  int                   `json:"poll_interval_seconds"`
	Devices              []sensor.DeviceConfig `json:"devices"`
	SensorTimeoutSeconds int                   `json:"sensor_timeout_seconds"`
	OriginPatterns       []string              `json:"origin_patterns"`
}

func LoadConfigSettings(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}

	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return config, err
	}

	err = json.Unmarshal(bytes, &config)
	if err != nil {
		return config, err
	}

	if config.PumpTimeoutSeconds == 0 {
		config.PumpTimeoutSeconds = DefaultPumpTimeoutSeconds
	}

	if config.PollIntervalSeconds == 0 {
		config.PollIntervalSeconds = DefaultPollIntervalSeconds
	}

	return config, nil
}

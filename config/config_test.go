package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigSettings(t *testing.T) {
	t.Run("Load a full config file", func(t *testing.T) {
		contents := `{
			"pump_host": "192.168.1.54",
			"pump_timeout_seconds": 3,
			"poll_interval_seconds": 30,
			"sensor_timeout_seconds": 10,
			"origin_patterns": ["localhost:*"],
			"devices": [
				{"driver_type": "DS18B20", "sensor_type": "temperature", "address": "28-0316838ca7ff", "name": "Water"}
			]
		}`

		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfigSettings(path)
		if err != nil {
			t.Fatalf("expected config to load, got %v", err)
		}

		if config.PumpHost != "192.168.1.54" {
			t.Errorf("expected pump host %s, got %s", "192.168.1.54", config.PumpHost)
		}

		if config.PumpTimeoutSeconds != 3 {
			t.Errorf("expected pump timeout %d, got %d", 3, config.PumpTimeoutSeconds)
		}

		if len(config.Devices) != 1 || config.Devices[0].Name != "Water" {
			t.Errorf("expected one Water device, got %v", config.Devices)
		}
	})

	t.Run("Defaults applied when fields missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(`{"pump_host": "pool-pump.local"}`), 0o644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfigSettings(path)
		if err != nil {
			t.Fatalf("expected config to load, got %v", err)
		}

		if config.PumpTimeoutSeconds != DefaultPumpTimeoutSeconds {
			t.Errorf("expected default pump timeout %d, got %d", DefaultPumpTimeoutSeconds, config.PumpTimeoutSeconds)
		}

		if config.PollIntervalSeconds != DefaultPollIntervalSeconds {
			t.Errorf("expected default poll interval %d, got %d", DefaultPollIntervalSeconds, config.PollIntervalSeconds)
		}
	})

	t.Run("Missing file returns an error", func(t *testing.T) {
		_, err := LoadConfigSettings("/does/not/exist.json")
		if err == nil {
			t.Error("expected an error for a missing config file")
		}
	})
}

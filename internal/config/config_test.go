package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"BATGLANCE_REFRESH_INTERVAL",
		"BATGLANCE_PMSET_PATH",
		"BATGLANCE_LOG_FILE",
		"BATGLANCE_HISTORY_SIZE",
		"BATGLANCE_NOTIFY",
		"BATGLANCE_DRAIN_ALERT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RefreshInterval != 15*time.Minute {
		t.Errorf("RefreshInterval = %v, want 15m", cfg.RefreshInterval)
	}
	if cfg.PmsetPath != "pmset" {
		t.Errorf("PmsetPath = %q, want pmset", cfg.PmsetPath)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
	if cfg.HistorySize != 96 {
		t.Errorf("HistorySize = %d, want 96", cfg.HistorySize)
	}
	if !cfg.Notify {
		t.Error("Notify = false, want true")
	}
	if cfg.DrainAlertThreshold != 20.0 {
		t.Errorf("DrainAlertThreshold = %v, want 20", cfg.DrainAlertThreshold)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BATGLANCE_REFRESH_INTERVAL", "5m")
	t.Setenv("BATGLANCE_PMSET_PATH", "/usr/bin/pmset")
	t.Setenv("BATGLANCE_LOG_FILE", "/tmp/pmset.log")
	t.Setenv("BATGLANCE_HISTORY_SIZE", "10")
	t.Setenv("BATGLANCE_NOTIFY", "false")
	t.Setenv("BATGLANCE_DRAIN_ALERT", "12.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("RefreshInterval = %v, want 5m", cfg.RefreshInterval)
	}
	if cfg.PmsetPath != "/usr/bin/pmset" {
		t.Errorf("PmsetPath = %q, want /usr/bin/pmset", cfg.PmsetPath)
	}
	if cfg.LogFile != "/tmp/pmset.log" {
		t.Errorf("LogFile = %q, want /tmp/pmset.log", cfg.LogFile)
	}
	if cfg.HistorySize != 10 {
		t.Errorf("HistorySize = %d, want 10", cfg.HistorySize)
	}
	if cfg.Notify {
		t.Error("Notify = true, want false")
	}
	if cfg.DrainAlertThreshold != 12.5 {
		t.Errorf("DrainAlertThreshold = %v, want 12.5", cfg.DrainAlertThreshold)
	}
}

func TestLoad_ClampsInvalidValues(t *testing.T) {
	t.Setenv("BATGLANCE_REFRESH_INTERVAL", "5s")
	t.Setenv("BATGLANCE_HISTORY_SIZE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RefreshInterval != time.Minute {
		t.Errorf("RefreshInterval = %v, want clamp to 1m", cfg.RefreshInterval)
	}
	if cfg.HistorySize != 96 {
		t.Errorf("HistorySize = %d, want default 96", cfg.HistorySize)
	}
}

func TestGetEnvDuration_BareSeconds(t *testing.T) {
	t.Setenv("BATGLANCE_TEST_DURATION", "90")

	if got := getEnvDuration("BATGLANCE_TEST_DURATION", time.Minute); got != 90*time.Second {
		t.Errorf("getEnvDuration() = %v, want 90s", got)
	}
}

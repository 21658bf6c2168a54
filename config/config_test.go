package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "8080" || cfg.SessionStore != "memory" || cfg.SessionTTL != 2*time.Hour {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SeatsPerTable != 4 || cfg.BookingDaysAhead != 7 || cfg.OrderReadyEstimate != "30 minutes" {
		t.Errorf("dialogue defaults = %d %d %q", cfg.SeatsPerTable, cfg.BookingDaysAhead, cfg.OrderReadyEstimate)
	}
	if len(cfg.RestaurantHours) != 7 || cfg.RestaurantHours[4].Day != "Friday" {
		t.Errorf("hours = %+v", cfg.RestaurantHours)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("ASYNC_TURN_RECORDING", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppPort != "9090" || cfg.SessionStore != "redis" || cfg.SessionTTL != 45*time.Minute || !cfg.AsyncTurnRecording {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "RESTAURANT_NAME: Leaf & Root\nRESTAURANT_HOURS:\n  - day: Monday\n    hours: closed\n"
	if err := os.WriteFile("config.yaml", []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RestaurantName != "Leaf & Root" {
		t.Errorf("name = %q", cfg.RestaurantName)
	}
	if len(cfg.RestaurantHours) != 1 || cfg.RestaurantHours[0].Hours != "closed" {
		t.Errorf("hours = %+v", cfg.RestaurantHours)
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_STORE", "disk")
	if _, err := Load(); err == nil {
		t.Error("expected an error for an unknown session store")
	}
}

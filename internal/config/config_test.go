package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.ListenAddr != "127.0.0.1:8080" {
		t.Fatalf("expected localhost listen address, got %s", cfg.ListenAddr)
	}
	if cfg.WaterGoalML != 2000 || cfg.WaterIncrementML != 250 {
		t.Fatalf("unexpected water defaults: goal=%d increment=%d", cfg.WaterGoalML, cfg.WaterIncrementML)
	}
	if cfg.DefaultLanguage != "vi" {
		t.Fatalf("expected default language vi, got %s", cfg.DefaultLanguage)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_PATH", "/tmp/med.db")
	t.Setenv("WATER_GOAL_ML", "2500")
	t.Setenv("WATER_INCREMENT_ML", "")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9090" {
		t.Fatalf("expected listen address derived from PORT, got %s", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "/tmp/med.db" {
		t.Fatalf("unexpected database path: %s", cfg.DatabasePath)
	}
	if cfg.WaterGoalML != 2500 {
		t.Fatalf("expected water goal 2500, got %d", cfg.WaterGoalML)
	}

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("unexpected location error: %v", err)
	}
	if loc != time.UTC {
		t.Fatalf("expected UTC location, got %v", loc)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := AppConfig{WaterGoalML: 0, WaterIncrementML: 250}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero water goal")
	}

	cfg = AppConfig{WaterGoalML: 2000, WaterIncrementML: 250, Timezone: "Mars/Olympus"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

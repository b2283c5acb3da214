package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Sim.TickRate.Duration != 500*time.Millisecond {
		t.Errorf("TickRate = %v", cfg.Sim.TickRate.Duration)
	}
	if cfg.Sim.PermitCost != 100 || cfg.Sim.StartingWealth != 1000 {
		t.Errorf("economy defaults = %d / %d", cfg.Sim.PermitCost, cfg.Sim.StartingWealth)
	}
	if cfg.Sim.MaxUserBuildings != 1000 || cfg.Sim.MaxBuildings != 10000 || cfg.Sim.MaxTransfers != 100000 {
		t.Errorf("cap defaults = %d / %d / %d",
			cfg.Sim.MaxUserBuildings, cfg.Sim.MaxBuildings, cfg.Sim.MaxTransfers)
	}
	if cfg.Sim.MaxVolume != 5 {
		t.Errorf("MaxVolume = %d", cfg.Sim.MaxVolume)
	}
	if cfg.Web.SessionTTL.Duration != 24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.Web.SessionTTL.Duration)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	body := `
[server]
name = "Testworld"

[sim]
tick_rate = "250ms"
permit_cost = 7

[web]
bind_address = "127.0.0.1:9999"
session_ttl = "1h"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Name != "Testworld" {
		t.Errorf("Name = %q", cfg.Server.Name)
	}
	if cfg.Sim.TickRate.Duration != 250*time.Millisecond {
		t.Errorf("TickRate = %v", cfg.Sim.TickRate.Duration)
	}
	if cfg.Sim.PermitCost != 7 {
		t.Errorf("PermitCost = %d", cfg.Sim.PermitCost)
	}
	if cfg.Web.SessionTTL.Duration != time.Hour {
		t.Errorf("SessionTTL = %v", cfg.Web.SessionTTL.Duration)
	}
	// Unset keys keep their defaults.
	if cfg.Sim.StartingWealth != 1000 {
		t.Errorf("StartingWealth = %d, want default", cfg.Sim.StartingWealth)
	}
	if cfg.Content.CatalogDir != "data/world" {
		t.Errorf("CatalogDir = %q, want default", cfg.Content.CatalogDir)
	}
	if cfg.Server.StartTime == 0 {
		t.Errorf("StartTime not stamped")
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	if err := os.WriteFile(path, []byte("[sim]\ntick_rate = \"soon\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("bad duration accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Errorf("missing file accepted")
	}
}

package config

import (
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IP != "127.0.0.1" || cfg.Port != 25565 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *reloaded != *cfg {
		t.Fatalf("reload mismatch: %+v vs %+v", reloaded, cfg)
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := defaults()
	cfg.Port = 26000
	if err := Save(path, &cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Port != 26000 {
		t.Fatalf("expected saved port to round trip, got %d", loaded.Port)
	}
}

func TestDefaultGameRuleMatchesVanillaSample(t *testing.T) {
	r := DefaultGameRule()
	if !r.DoMobSpawning || !r.DoDaylightCycle {
		t.Fatalf("expected mobSpawning and daylightCycle on by default")
	}
	if r.KeepInventory {
		t.Fatalf("expected keepInventory off by default")
	}
	if r.RandomTickSpeed != 3 {
		t.Fatalf("expected randomTickSpeed 3, got %d", r.RandomTickSpeed)
	}
}

func TestGameRulesGetOrLoadIsPerWorld(t *testing.T) {
	g := NewGameRules()
	overworld := g.GetOrLoad("minecraft:overworld")
	overworld.KeepInventory = true

	again := g.GetOrLoad("minecraft:overworld")
	if !again.KeepInventory {
		t.Fatalf("expected the same world to return the same rule set")
	}

	nether := g.GetOrLoad("minecraft:the_nether")
	if nether.KeepInventory {
		t.Fatalf("expected a different world to start from defaults")
	}
}

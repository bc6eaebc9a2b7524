package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Growth.Stages) != 4 {
		t.Errorf("stages = %d, want 4", len(cfg.Growth.Stages))
	}
	if cfg.Movement.Speed != 2 || cfg.Movement.TargetThreshold != 10 {
		t.Errorf("movement = %+v", cfg.Movement)
	}
	if cfg.Spawn.X != 100 || cfg.Spawn.Y != 300 || cfg.Spawn.Hunger != 100 {
		t.Errorf("spawn = %+v", cfg.Spawn)
	}
	if cfg.Derived.SaveInterval != 5*time.Second {
		t.Errorf("save interval = %v, want 5s", cfg.Derived.SaveInterval)
	}
	if cfg.Derived.Satiety["carrot"] != 25 {
		t.Errorf("carrot satiety = %v, want 25", cfg.Derived.Satiety["carrot"])
	}
	if !math.IsInf(cfg.Growth.Stages[3].StageMaxAge(), 1) {
		t.Error("last stage should be open-ended")
	}
}

func TestLoadOverridesMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "movement:\n  speed: 3\npersistence:\n  backend: memory\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Movement.Speed != 3 {
		t.Errorf("speed = %v, want 3", cfg.Movement.Speed)
	}
	if cfg.Movement.TargetThreshold != 10 {
		t.Errorf("threshold = %v, want default 10", cfg.Movement.TargetThreshold)
	}
	if cfg.Persistence.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Persistence.Backend)
	}
	if cfg.Persistence.Slot != "bunnyGardenGame" {
		t.Errorf("slot = %q, want default", cfg.Persistence.Slot)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown backend", "persistence:\n  backend: redis\n", "unknown backend"},
		{"zero save interval", "persistence:\n  save_interval_ms: 0\n", "save_interval_ms"},
		{"empty weights", "behavior:\n  weights: []\n", "weights"},
		{"gap in stages", "growth:\n  stages:\n    - { name: a, min_age: 0, max_age: 10, pixel_size: 3 }\n    - { name: b, min_age: 20, max_age: 0, pixel_size: 3 }\n", "does not start"},
		{"bad pixel size", "growth:\n  stages:\n    - { name: a, min_age: 0, max_age: 0, pixel_size: 0 }\n", "pixel_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Hunger.DecreaseRate = 0.75

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Hunger.DecreaseRate != 0.75 {
		t.Errorf("decrease rate = %v, want 0.75", back.Hunger.DecreaseRate)
	}
}

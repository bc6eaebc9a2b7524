package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/bunnygarden/config"
)

func TestKnobs_StartRoundTrip(t *testing.T) {
	knobs := careKnobs()
	cfg := config.Default()

	got := knobs.Values(knobs.Start(cfg))
	want := knobs.Read(cfg)
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", knobs[i].Path, got[i], want[i])
		}
	}
}

func TestKnobs_ValuesClampAndRound(t *testing.T) {
	knobs := careKnobs()
	got := knobs.Values([]float64{-1, 0.51, 2})

	if got[0] != 5000 {
		t.Errorf("interval = %v, want 5000", got[0])
	}
	if got[1] != 6 {
		t.Errorf("max = %v, want 6 (1 + 0.51*9 rounded)", got[1])
	}
	if got[2] != 70 {
		t.Errorf("threshold = %v, want 70", got[2])
	}
}

func TestKnobs_Apply(t *testing.T) {
	knobs := careKnobs()
	cfg := config.Default()
	knobs.Apply(cfg, []float64{9000, 3, 25})

	if cfg.Food.AutoSpawnIntervalMs != 9000 || cfg.Food.AutoSpawnMax != 3 || cfg.Behavior.HungryThreshold != 25 {
		t.Errorf("applied config = %+v %+v", cfg.Food, cfg.Behavior)
	}
}

func TestComputeComfort(t *testing.T) {
	if got := computeComfort(nil); got != 0 {
		t.Errorf("empty comfort = %v, want 0", got)
	}
}

package main

import (
	"math"

	"github.com/pthm-cable/bunnygarden/config"
)

// Knob is one tunable config value with its search bounds.
type Knob struct {
	Path     string
	Min, Max float64
	Integer  bool

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// Knobs is the ordered search space. CMA-ES works in the unit cube and
// each knob maps its coordinate onto [Min, Max].
type Knobs []Knob

// careKnobs returns the unattended-care parameters: how often food turns
// up on its own, how much can pile up, and when the rabbit goes looking.
func careKnobs() Knobs {
	return Knobs{
		{
			Path: "food.auto_spawn_interval_ms", Min: 5000, Max: 120000,
			get: func(c *config.Config) float64 { return c.Food.AutoSpawnIntervalMs },
			set: func(c *config.Config, v float64) { c.Food.AutoSpawnIntervalMs = v },
		},
		{
			Path: "food.auto_spawn_max", Min: 1, Max: 10, Integer: true,
			get: func(c *config.Config) float64 { return float64(c.Food.AutoSpawnMax) },
			set: func(c *config.Config, v float64) { c.Food.AutoSpawnMax = int(v) },
		},
		{
			Path: "behavior.hungry_threshold", Min: 10, Max: 70,
			get: func(c *config.Config) float64 { return c.Behavior.HungryThreshold },
			set: func(c *config.Config, v float64) { c.Behavior.HungryThreshold = v },
		},
	}
}

// Start returns the unit-cube coordinates of cfg's current values.
func (ks Knobs) Start(cfg *config.Config) []float64 {
	x := make([]float64, len(ks))
	for i, k := range ks {
		x[i] = (k.get(cfg) - k.Min) / (k.Max - k.Min)
	}
	return x
}

// Values maps unit-cube coordinates to clamped config values.
func (ks Knobs) Values(x []float64) []float64 {
	v := make([]float64, len(ks))
	for i, k := range ks {
		raw := k.Min + x[i]*(k.Max-k.Min)
		raw = min(max(raw, k.Min), k.Max)
		if k.Integer {
			raw = math.Round(raw)
		}
		v[i] = raw
	}
	return v
}

// Apply writes values into cfg in knob order.
func (ks Knobs) Apply(cfg *config.Config, values []float64) {
	for i, k := range ks {
		k.set(cfg, values[i])
	}
}

// Read returns cfg's current values in knob order.
func (ks Knobs) Read(cfg *config.Config) []float64 {
	v := make([]float64, len(ks))
	for i, k := range ks {
		v[i] = k.get(cfg)
	}
	return v
}

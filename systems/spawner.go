package systems

import (
	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
)

// AutoSpawner drops food near the bottom of the scene on a fixed interval.
type AutoSpawner struct {
	intervalMs    float64
	max           int
	width, height float64
	timer         float64
}

// NewAutoSpawner builds a spawner from config. A zero interval disables it.
func NewAutoSpawner(cfg *config.Config) *AutoSpawner {
	return &AutoSpawner{
		intervalMs: cfg.Food.AutoSpawnIntervalMs,
		max:        cfg.Food.AutoSpawnMax,
		width:      cfg.Derived.SceneW,
		height:     cfg.Derived.SceneH,
	}
}

// Reset zeroes the spawn timer.
func (s *AutoSpawner) Reset() {
	s.timer = 0
}

// Update advances the timer and places at most one item when it fires.
func (s *AutoSpawner) Update(deltaMs float64, pantry *Pantry, rng Rand) (components.FoodItem, bool) {
	if s.intervalMs <= 0 {
		return components.FoodItem{}, false
	}
	s.timer += deltaMs
	if s.timer < s.intervalMs {
		return components.FoodItem{}, false
	}
	s.timer = 0
	if s.max > 0 && pantry.Len() >= s.max {
		return components.FoodItem{}, false
	}

	kinds := components.FoodKinds()
	item := components.FoodItem{
		Kind: kinds[rng.Intn(len(kinds))],
		X:    50 + rng.Float64()*(s.width-100),
		Y:    s.height - 100 + rng.Float64()*50,
	}
	pantry.Place(item.Kind, item.X, item.Y)
	return item, true
}

// Package telemetry provides windowed session statistics and CSV output.
package telemetry

import (
	"github.com/pthm-cable/bunnygarden/components"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartSec float64
	simTimeSec     float64
	ticks          int

	// Event counters for current window
	foodsEaten    int
	satietyGained float64
	foodsPlaced   int
	foodsSpawned  int
	stageChanges  int
	moods         int
	distress      int
	decisions     int
	seekFood      int
	chosen        [4]int // indexed by components.Activity

	hungerSamples []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 30
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordTick advances simulation time and samples hunger.
func (c *Collector) RecordTick(deltaSec, hunger float64) {
	c.simTimeSec += deltaSec
	c.ticks++
	c.hungerSamples = append(c.hungerSamples, hunger)
}

// RecordMeal records a food item eaten.
func (c *Collector) RecordMeal(satiety float64) {
	c.foodsEaten++
	c.satietyGained += satiety
}

// RecordPlaced records a food item placed by the player.
func (c *Collector) RecordPlaced() {
	c.foodsPlaced++
}

// RecordSpawned records an auto-spawned food item.
func (c *Collector) RecordSpawned() {
	c.foodsSpawned++
}

// RecordStageChange records a growth stage transition.
func (c *Collector) RecordStageChange() {
	c.stageChanges++
}

// RecordMood records a mood signal.
func (c *Collector) RecordMood(m components.Mood) {
	c.moods++
	switch m {
	case components.MoodDistress, components.MoodStarving:
		c.distress++
	}
}

// RecordDecision records a behavior selector outcome.
func (c *Collector) RecordDecision(activity components.Activity, seekFood bool) {
	c.decisions++
	if seekFood {
		c.seekFood++
		return
	}
	if int(activity) < len(c.chosen) {
		c.chosen[activity]++
	}
}

// SimTime returns the accumulated simulation time in seconds.
func (c *Collector) SimTime() float64 {
	return c.simTimeSec
}

// Pending reports whether the current window has unflushed ticks.
func (c *Collector) Pending() bool {
	return c.ticks > 0
}

// ShouldFlush returns true if enough simulation time has passed to flush the window.
func (c *Collector) ShouldFlush() bool {
	return c.simTimeSec-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats from the creature's current state and resets
// counters for the next window.
func (c *Collector) Flush(creature *components.Creature, foodCount int) WindowStats {
	mean, std, p10, p50, p90 := ComputeHungerStats(c.hungerSamples)

	stats := WindowStats{
		WindowStartSec: c.windowStartSec,
		WindowEndSec:   c.simTimeSec,
		Ticks:          c.ticks,

		Age:      creature.Age,
		Stage:    creature.Stage,
		Activity: creature.Activity.String(),
		Foods:    foodCount,

		HungerMean: mean,
		HungerStd:  std,
		HungerP10:  p10,
		HungerP50:  p50,
		HungerP90:  p90,

		FoodsEaten:    c.foodsEaten,
		SatietyGained: c.satietyGained,
		FoodsPlaced:   c.foodsPlaced,
		FoodsSpawned:  c.foodsSpawned,
		StageChanges:  c.stageChanges,
		Moods:         c.moods,
		Distress:      c.distress,

		Decisions:    c.decisions,
		SeekFood:     c.seekFood,
		ChoseIdle:    c.chosen[components.ActivityIdle],
		ChoseWalking: c.chosen[components.ActivityWalking],
		ChoseDancing: c.chosen[components.ActivityDancing],
		ChoseEating:  c.chosen[components.ActivityEating],
	}

	// Reset for next window
	c.windowStartSec = c.simTimeSec
	c.ticks = 0
	c.foodsEaten = 0
	c.satietyGained = 0
	c.foodsPlaced = 0
	c.foodsSpawned = 0
	c.stageChanges = 0
	c.moods = 0
	c.distress = 0
	c.decisions = 0
	c.seekFood = 0
	c.chosen = [4]int{}
	c.hungerSamples = c.hungerSamples[:0]

	return stats
}

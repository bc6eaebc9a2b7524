package systems

import (
	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
)

// Movement moves the creature in a straight line toward its target.
type Movement struct {
	Speed           float64 // units per tick, independent of delta
	HungryThreshold float64
	DistressChance  float64
}

// NewMovement builds movement parameters from config.
func NewMovement(cfg *config.Config) Movement {
	return Movement{
		Speed:           cfg.Movement.Speed,
		HungryThreshold: cfg.Behavior.HungryThreshold,
		DistressChance:  cfg.Behavior.DistressChance,
	}
}

// MoveOutcome reports what a movement step did.
type MoveOutcome struct {
	Moved    bool
	Arrived  bool
	Meal     Meal // food eaten on arrival
	Distress bool // arrived hungry with no food left
}

// Step runs one movement tick.
func (m Movement) Step(c *components.Creature, pantry *Pantry, rng Rand) MoveOutcome {
	if !c.HasTarget {
		return MoveOutcome{}
	}

	dist := c.DistanceTo(c.Target.X, c.Target.Y)
	if c.HasReachedTarget() || dist == 0 {
		c.X, c.Y = c.Target.X, c.Target.Y
		c.ClearTarget()

		out := MoveOutcome{Arrived: true}
		out.Meal = ResolveFeeding(c, pantry)

		if c.Hunger < m.HungryThreshold && pantry.Len() == 0 {
			out.Distress = rng.Float64() < m.DistressChance
		}
		c.Activity = components.ActivityIdle
		return out
	}

	dx := c.Target.X - c.X
	dy := c.Target.Y - c.Y
	c.X += dx / dist * m.Speed
	c.Y += dy / dist * m.Speed
	return MoveOutcome{Moved: true}
}

package components

import (
	"math"

	"github.com/pthm-cable/bunnygarden/config"
)

// Rules holds the creature parameters shared by every creature in a session.
type Rules struct {
	Stages          StageTable
	HungerMax       float64
	TargetThreshold float64
	DanceDurationMs float64

	satiety         map[FoodKind]float64
	fallbackSatiety float64
}

// NewRules builds creature rules from config.
func NewRules(cfg *config.Config) *Rules {
	r := &Rules{
		Stages:          NewStageTable(cfg.Growth.Stages),
		HungerMax:       cfg.Hunger.Max,
		TargetThreshold: cfg.Movement.TargetThreshold,
		DanceDurationMs: cfg.Behavior.DanceDurationMs,
		satiety:         make(map[FoodKind]float64, len(cfg.Derived.Satiety)),
		fallbackSatiety: cfg.Food.FallbackSatiety,
	}
	for name, v := range cfg.Derived.Satiety {
		r.satiety[FoodKind(name)] = v
	}
	return r
}

// Satiety returns how much hunger a food kind restores.
func (r *Rules) Satiety(kind FoodKind) float64 {
	if v, ok := r.satiety[kind]; ok {
		return v
	}
	return r.fallbackSatiety
}

// Creature is the simulated pet. Timers count up in milliseconds except
// DanceTimer, which counts down.
type Creature struct {
	X, Y     float64  `inspect:"label,fmt:%.1f"`
	Age      float64  `inspect:"label,fmt:%.1f s"` // seconds
	Hunger   float64  `inspect:"bar,max:100"`      // 0..HungerMax
	Activity Activity `inspect:"label"`
	Stage    string   `inspect:"label"`

	Target    Position
	HasTarget bool

	BehaviorTimer float64 `inspect:"label,fmt:%.0f ms"`
	DanceTimer    float64 `inspect:"label,fmt:%.0f ms"`
	HungerTimer   float64 `inspect:"label,fmt:%.0f ms"`
	MoodTimer     float64 `inspect:"label,fmt:%.0f ms"`

	rules *Rules
}

// NewCreature creates a fresh creature at (x, y) in the youngest stage.
func NewCreature(rules *Rules, x, y, hunger float64) *Creature {
	c := &Creature{
		X:        x,
		Y:        y,
		Activity: ActivityIdle,
		rules:    rules,
	}
	c.Hunger = c.clampHunger(hunger)
	c.Stage = rules.Stages.First().Name
	return c
}

// Rules returns the rules the creature was built with.
func (c *Creature) Rules() *Rules {
	return c.rules
}

// StageInfo returns the current stage bracket, falling back to the youngest
// stage when the stored name is unknown.
func (c *Creature) StageInfo() Stage {
	if s, ok := c.rules.Stages.ByName(c.Stage); ok {
		return s
	}
	return c.rules.Stages.First()
}

// AdvanceAge adds deltaSeconds to the age and recomputes the growth stage.
// Returns true when the stage changed.
func (c *Creature) AdvanceAge(deltaSeconds float64) bool {
	if deltaSeconds > 0 {
		c.Age += deltaSeconds
	}
	s, ok := c.rules.Stages.Lookup(c.Age)
	if !ok || s.Name == c.Stage {
		return false
	}
	c.Stage = s.Name
	return true
}

// AdjustHunger adds delta and clamps into [0, HungerMax].
func (c *Creature) AdjustHunger(delta float64) {
	c.Hunger = c.clampHunger(c.Hunger + delta)
}

func (c *Creature) clampHunger(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(c.rules.HungerMax, v))
}

// HungerDescriptor classifies the current hunger.
func (c *Creature) HungerDescriptor() HungerBand {
	switch {
	case c.Hunger > 70:
		return HungerFull
	case c.Hunger > 40:
		return HungerNormal
	case c.Hunger > 20:
		return HungerHungry
	default:
		return HungerStarving
	}
}

// SetTarget assigns a movement goal.
func (c *Creature) SetTarget(x, y float64) {
	c.Target = Position{X: x, Y: y}
	c.HasTarget = true
}

// ClearTarget drops the movement goal.
func (c *Creature) ClearTarget() {
	c.Target = Position{}
	c.HasTarget = false
}

// DistanceTo returns the Euclidean distance to (x, y).
func (c *Creature) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-c.X, y-c.Y)
}

// HasReachedTarget reports whether a target exists and is within the arrival threshold.
func (c *Creature) HasReachedTarget() bool {
	if !c.HasTarget {
		return false
	}
	return c.DistanceTo(c.Target.X, c.Target.Y) < c.rules.TargetThreshold
}

// BeginEating switches to the eating state. The revert is scheduled by the clock.
func (c *Creature) BeginEating() {
	c.Activity = ActivityEating
}

// BeginDancing switches to dancing and arms the dance countdown.
func (c *Creature) BeginDancing() {
	c.Activity = ActivityDancing
	c.DanceTimer = c.rules.DanceDurationMs
}

// EndDancingIfExpired runs the dance countdown. Returns true when the dance ended.
func (c *Creature) EndDancingIfExpired(deltaMs float64) bool {
	if c.DanceTimer <= 0 {
		return false
	}
	c.DanceTimer -= deltaMs
	if c.DanceTimer > 0 {
		return false
	}
	c.DanceTimer = 0
	return c.StopDancing()
}

// StopDancing reverts a dancing creature to idle. Returns true if it was dancing.
func (c *Creature) StopDancing() bool {
	c.DanceTimer = 0
	if c.Activity != ActivityDancing {
		return false
	}
	c.Activity = ActivityIdle
	return true
}

// PixelSize returns the sprite pixel size for the current stage.
func (c *Creature) PixelSize() int {
	return c.StageInfo().PixelSize
}

// EatRadius returns the food collision radius: 13*pixelSize/2 + 15.
func (c *Creature) EatRadius() float64 {
	return 13*float64(c.PixelSize())/2 + 15
}

package game

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/persist"
	"github.com/pthm-cable/bunnygarden/systems"
	"github.com/pthm-cable/bunnygarden/telemetry"
)

// Sim is the simulation clock. It owns the creature and the pantry and
// advances them in a fixed order on every Step.
type Sim struct {
	cfg   *config.Config
	rules *components.Rules
	rng   *rand.Rand

	creature *components.Creature
	pantry   *systems.Pantry

	behavior *systems.BehaviorSelector
	movement systems.Movement
	moods    systems.MoodPicker
	spawner  *systems.AutoSpawner

	// Milliseconds until eating reverts to idle; 0 = not armed
	eatCountdown float64

	tick   int64
	events []Event
	perf   *telemetry.PerfCollector
}

// NewSim creates a simulation with a fresh creature and an empty pantry.
func NewSim(cfg *config.Config, seed int64) (*Sim, error) {
	behavior, err := systems.NewBehaviorSelector(cfg)
	if err != nil {
		return nil, err
	}

	rules := components.NewRules(cfg)
	s := &Sim{
		cfg:      cfg,
		rules:    rules,
		rng:      rand.New(rand.NewSource(seed)),
		pantry:   systems.NewPantry(),
		behavior: behavior,
		movement: systems.NewMovement(cfg),
		moods:    systems.NewMoodPicker(cfg),
		spawner:  systems.NewAutoSpawner(cfg),
	}
	s.creature = s.freshCreature()
	return s, nil
}

func (s *Sim) freshCreature() *components.Creature {
	return components.NewCreature(s.rules, s.cfg.Spawn.X, s.cfg.Spawn.Y, s.cfg.Spawn.Hunger)
}

// Creature returns the simulated creature.
func (s *Sim) Creature() *components.Creature {
	return s.creature
}

// Pantry returns the food collection.
func (s *Sim) Pantry() *systems.Pantry {
	return s.pantry
}

// Rules returns the creature rules.
func (s *Sim) Rules() *components.Rules {
	return s.rules
}

// Tick returns the number of steps run.
func (s *Sim) Tick() int64 {
	return s.tick
}

// SetPerf attaches a step timing collector. nil disables timing.
func (s *Sim) SetPerf(p *telemetry.PerfCollector) {
	s.perf = p
}

// EatCountdown returns the remaining eating time in milliseconds.
func (s *Sim) EatCountdown() float64 {
	return s.eatCountdown
}

// Step advances the simulation by deltaSeconds. Each stage observes the
// state left by the stages before it in the same tick.
func (s *Sim) Step(deltaSeconds float64) {
	if deltaSeconds < 0 {
		deltaSeconds = 0
	}
	deltaMs := deltaSeconds * 1000
	c := s.creature
	s.tick++
	s.perf.StartTick()
	defer s.perf.EndTick()

	// 1. Aging
	s.perf.StartPhase(telemetry.PhaseAging)
	if c.AdvanceAge(deltaSeconds) {
		s.emit(Event{Type: EventStageChanged, Stage: c.Stage})
		s.emitMood(components.MoodCelebrate)
	}

	// 2. Hunger decay, one unit per crossed interval
	s.perf.StartPhase(telemetry.PhaseHunger)
	c.HungerTimer += deltaMs
	if interval := s.cfg.Hunger.TickIntervalMs; interval > 0 {
		for c.HungerTimer >= interval {
			c.HungerTimer -= interval
			c.AdjustHunger(-s.cfg.Hunger.DecreaseRate)
		}
	}

	// 3. Countdowns
	s.perf.StartPhase(telemetry.PhaseCountdowns)
	c.EndDancingIfExpired(deltaMs)
	s.runEatCountdown(deltaMs)

	// 4. Behavior selection
	s.perf.StartPhase(telemetry.PhaseBehavior)
	c.BehaviorTimer += deltaMs
	if c.BehaviorTimer >= s.cfg.Behavior.IntervalMs {
		c.BehaviorTimer = 0
		s.decide()
	}

	// 5. Movement
	s.perf.StartPhase(telemetry.PhaseMovement)
	out := s.movement.Step(c, s.pantry, s.rng)
	if out.Meal.Eaten {
		s.onMeal(out.Meal)
	}
	if out.Distress {
		s.emitMood(components.MoodDistress)
	}

	// 6. Food collision
	s.perf.StartPhase(telemetry.PhaseCollision)
	if meal := systems.ResolveFeeding(c, s.pantry); meal.Eaten {
		s.onMeal(meal)
	}

	// 7. Periodic mood
	s.perf.StartPhase(telemetry.PhaseMood)
	c.MoodTimer += deltaMs
	if c.MoodTimer >= s.cfg.Mood.IntervalMs {
		c.MoodTimer = 0
		s.emitMood(s.moods.Pick(c))
	}

	// 8. Auto-spawn
	s.perf.StartPhase(telemetry.PhaseSpawn)
	if item, ok := s.spawner.Update(deltaMs, s.pantry, s.rng); ok {
		s.emit(Event{Type: EventFoodSpawned, Food: item})
		s.foodAdded()
	}
}

func (s *Sim) decide() {
	d := s.behavior.Decide(s.creature, s.pantry, s.rng)
	if d.Skipped {
		return
	}
	s.emit(Event{Type: EventBehavior, Activity: d.Activity, SeekFood: d.SeekFood})
	if d.DanceMood {
		s.emitMood(components.MoodDancing)
	}
	if d.Activity == components.ActivityEating {
		s.armEating()
	}
}

func (s *Sim) onMeal(meal systems.Meal) {
	s.armEating()
	s.emit(Event{Type: EventFoodEaten, Food: meal.Item, Satiety: meal.Satiety})
	s.emitMood(components.MoodYum)
}

func (s *Sim) armEating() {
	s.eatCountdown = s.cfg.Eating.DurationMs
}

func (s *Sim) runEatCountdown(deltaMs float64) {
	if s.eatCountdown <= 0 {
		return
	}
	s.eatCountdown -= deltaMs
	if s.eatCountdown > 0 {
		return
	}
	s.eatCountdown = 0
	// Only revert if nothing else replaced the eating state meanwhile
	if s.creature.Activity == components.ActivityEating {
		s.creature.Activity = components.ActivityIdle
	}
}

// PlaceFood adds a food item. A creature below the redirect threshold heads
// for the nearest food right away.
func (s *Sim) PlaceFood(kind components.FoodKind, x, y float64) {
	s.pantry.Place(kind, x, y)
	s.emit(Event{Type: EventFoodPlaced, Food: components.FoodItem{Kind: kind, X: x, Y: y}})
	s.foodAdded()
}

// foodAdded redirects a creature below the redirect threshold to the
// nearest food. Runs for placed and auto-spawned items alike.
func (s *Sim) foodAdded() {
	if s.creature.Hunger < s.cfg.Hunger.RedirectThreshold {
		systems.SeekNearestFood(s.creature, s.pantry)
	}
}

// Direct sends the creature walking to (x, y).
func (s *Sim) Direct(x, y float64) {
	s.creature.SetTarget(x, y)
	s.creature.Activity = components.ActivityWalking
}

// StopDancing ends an active dance immediately.
func (s *Sim) StopDancing() {
	s.creature.StopDancing()
}

// EmitMood queues a mood signal anchored at the creature.
func (s *Sim) EmitMood(m components.Mood) {
	s.emitMood(m)
}

// Reset discards the creature and every food item.
func (s *Sim) Reset() {
	s.creature = s.freshCreature()
	s.pantry.Clear()
	s.spawner.Reset()
	s.eatCountdown = 0
	s.events = s.events[:0]
	s.emit(Event{Type: EventReset})
}

// Restore replaces the simulation state with a loaded creature and food list.
// Transient states get their countdowns re-armed since timers are not saved.
func (s *Sim) Restore(c *components.Creature, foods []components.FoodItem) {
	s.creature = c
	s.pantry.Replace(foods)
	s.eatCountdown = 0
	switch c.Activity {
	case components.ActivityEating:
		s.armEating()
	case components.ActivityDancing:
		c.BeginDancing()
	}
}

// Record captures the current state for persistence.
func (s *Sim) Record(at time.Time) *persist.Record {
	return persist.Encode(s.creature, s.pantry.Items(), at)
}

// DrainEvents returns and clears the queued events.
func (s *Sim) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}

func (s *Sim) emit(e Event) {
	e.Tick = s.tick
	s.events = append(s.events, e)
}

func (s *Sim) emitMood(m components.Mood) {
	s.emit(Event{Type: EventMood, Mood: m, X: s.creature.X, Y: s.creature.Y})
}

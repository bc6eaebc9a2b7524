package systems

import (
	"fmt"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
)

// Rand is the random source the systems draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// WeightedActivity is one bucket of the behavior table.
type WeightedActivity struct {
	Activity components.Activity
	Weight   float64
}

// Decision describes what the behavior selector did on one invocation.
type Decision struct {
	Skipped   bool // creature had a target or was eating
	SeekFood  bool // hunger override chose the nearest food
	Activity  components.Activity
	Target    components.Position
	HasTarget bool
	DanceMood bool // a dance started and rolled a mood
}

// BehaviorSelector chooses the creature's next activity from a weighted table.
type BehaviorSelector struct {
	table           []WeightedActivity
	hungryThreshold float64
	padding         float64
	danceMoodChance float64
	width, height   float64
}

// NewBehaviorSelector builds a selector from config.
func NewBehaviorSelector(cfg *config.Config) (*BehaviorSelector, error) {
	table := make([]WeightedActivity, 0, len(cfg.Behavior.Weights))
	for _, w := range cfg.Behavior.Weights {
		a, ok := components.ParseActivity(w.Activity)
		if !ok {
			return nil, fmt.Errorf("behavior: unknown activity %q in weights", w.Activity)
		}
		table = append(table, WeightedActivity{Activity: a, Weight: w.Weight})
	}
	return &BehaviorSelector{
		table:           table,
		hungryThreshold: cfg.Behavior.HungryThreshold,
		padding:         cfg.Behavior.WalkPadding,
		danceMoodChance: cfg.Behavior.DanceMoodChance,
		width:           cfg.Derived.SceneW,
		height:          cfg.Derived.SceneH,
	}, nil
}

// Table returns the weighted table in enumeration order.
func (b *BehaviorSelector) Table() []WeightedActivity {
	return b.table
}

// Pick walks the weighted table with r in [0, 1). The first bucket whose
// running sum exceeds r wins; an unmatched r falls to the last bucket.
func (b *BehaviorSelector) Pick(r float64) components.Activity {
	cumulative := 0.0
	for _, w := range b.table {
		cumulative += w.Weight
		if r < cumulative {
			return w.Activity
		}
	}
	return b.table[len(b.table)-1].Activity
}

// Decide runs one behavior decision and applies it to the creature.
func (b *BehaviorSelector) Decide(c *components.Creature, pantry *Pantry, rng Rand) Decision {
	if c.HasTarget || c.Activity == components.ActivityEating {
		return Decision{Skipped: true, Activity: c.Activity}
	}

	if c.Hunger < b.hungryThreshold && pantry.Len() > 0 {
		if SeekNearestFood(c, pantry) {
			return Decision{
				SeekFood:  true,
				Activity:  c.Activity,
				Target:    c.Target,
				HasTarget: true,
			}
		}
	}

	chosen := b.Pick(rng.Float64())
	d := Decision{Activity: chosen}

	switch chosen {
	case components.ActivityDancing:
		c.BeginDancing()
		d.DanceMood = rng.Float64() < b.danceMoodChance
	case components.ActivityWalking:
		c.Activity = chosen
		x, y := b.RandomDestination(rng)
		c.SetTarget(x, y)
		d.Target = c.Target
		d.HasTarget = true
	default:
		// Eating here is a label only; no feed event happens.
		c.Activity = chosen
	}
	return d
}

// RandomDestination picks a uniform point inside the scene inset by the padding.
func (b *BehaviorSelector) RandomDestination(rng Rand) (float64, float64) {
	x := b.padding + rng.Float64()*(b.width-b.padding*2)
	y := b.padding + rng.Float64()*(b.height-b.padding*2)
	return x, y
}

// SeekNearestFood targets the nearest food item and starts walking.
// Returns false when the pantry is empty.
func SeekNearestFood(c *components.Creature, pantry *Pantry) bool {
	food, ok := pantry.Nearest(c.X, c.Y)
	if !ok {
		return false
	}
	c.SetTarget(food.X, food.Y)
	c.Activity = components.ActivityWalking
	return true
}

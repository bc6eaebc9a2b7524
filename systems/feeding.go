package systems

import (
	"github.com/pthm-cable/bunnygarden/components"
)

// Meal describes a food item eaten during a tick.
type Meal struct {
	Eaten   bool
	Item    components.FoodItem
	Satiety float64
}

// ResolveFeeding eats the first food item within the creature's eat radius.
// The hunger increase and the removal happen together; at most one item per call.
func ResolveFeeding(c *components.Creature, pantry *Pantry) Meal {
	if pantry.Len() == 0 {
		return Meal{}
	}

	e, item, ok := pantry.FirstWithin(c.X, c.Y, c.EatRadius())
	if !ok {
		return Meal{}
	}

	satiety := c.Rules().Satiety(item.Kind)
	c.BeginEating()
	c.AdjustHunger(satiety)
	pantry.Remove(e)

	return Meal{Eaten: true, Item: item, Satiety: satiety}
}

// Package systems provides the per-tick simulation systems for the garden.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bunnygarden/components"
)

// Pantry is the unordered collection of placed food items, stored as
// entities in an ECS world. Iteration order is the world's table order.
type Pantry struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Food]
	filter *ecs.Filter2[components.Position, components.Food]
	count  int
}

// NewPantry creates an empty pantry.
func NewPantry() *Pantry {
	world := ecs.NewWorld()
	return &Pantry{
		world:  world,
		mapper: ecs.NewMap2[components.Position, components.Food](world),
		filter: ecs.NewFilter2[components.Position, components.Food](world),
	}
}

// Place adds a food item and returns its entity.
func (p *Pantry) Place(kind components.FoodKind, x, y float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	food := components.Food{Kind: kind}
	e := p.mapper.NewEntity(&pos, &food)
	p.count++
	return e
}

// Len returns the number of food items.
func (p *Pantry) Len() int {
	return p.count
}

// Items returns a detached copy of every item in collection order.
func (p *Pantry) Items() []components.FoodItem {
	items := make([]components.FoodItem, 0, p.count)
	query := p.filter.Query()
	for query.Next() {
		pos, food := query.Get()
		items = append(items, components.FoodItem{Kind: food.Kind, X: pos.X, Y: pos.Y})
	}
	return items
}

// Nearest returns the item closest to (x, y). Ties keep the first encountered.
func (p *Pantry) Nearest(x, y float64) (components.FoodItem, bool) {
	var best components.FoodItem
	bestDist := math.Inf(1)
	found := false

	query := p.filter.Query()
	for query.Next() {
		pos, food := query.Get()
		d := math.Hypot(pos.X-x, pos.Y-y)
		if d < bestDist {
			bestDist = d
			best = components.FoodItem{Kind: food.Kind, X: pos.X, Y: pos.Y}
			found = true
		}
	}
	return best, found
}

// FirstWithin returns the first item in collection order strictly closer than radius.
func (p *Pantry) FirstWithin(x, y, radius float64) (ecs.Entity, components.FoodItem, bool) {
	query := p.filter.Query()
	for query.Next() {
		pos, food := query.Get()
		if math.Hypot(pos.X-x, pos.Y-y) < radius {
			e := query.Entity()
			item := components.FoodItem{Kind: food.Kind, X: pos.X, Y: pos.Y}
			query.Close()
			return e, item, true
		}
	}
	return ecs.Entity{}, components.FoodItem{}, false
}

// Remove deletes a food entity. Must not be called while a query is open.
func (p *Pantry) Remove(e ecs.Entity) bool {
	if !p.world.Alive(e) {
		return false
	}
	p.world.RemoveEntity(e)
	p.count--
	return true
}

// Clear removes every food item.
func (p *Pantry) Clear() {
	// Collect first: the world is locked while the query is open
	var toRemove []ecs.Entity
	query := p.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		p.world.RemoveEntity(e)
	}
	p.count = 0
}

// Replace clears the pantry and places the given items in order.
func (p *Pantry) Replace(items []components.FoodItem) {
	p.Clear()
	for _, it := range items {
		p.Place(it.Kind, it.X, it.Y)
	}
}

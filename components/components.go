// Package components defines the entity models and ECS components for the garden.
package components

// Activity is the creature's current behavior state.
type Activity uint8

const (
	ActivityIdle Activity = iota
	ActivityWalking
	ActivityEating
	ActivityDancing
)

// FoodKind names a food type. Kinds outside the configured table are kept
// as-is and eat with the fallback satiety.
type FoodKind string

const (
	FoodGrass  FoodKind = "grass"
	FoodWater  FoodKind = "water"
	FoodCarrot FoodKind = "carrot"
	FoodBerry  FoodKind = "berry"
)

// FoodKinds returns the built-in food kinds in button order.
func FoodKinds() []FoodKind {
	return []FoodKind{FoodGrass, FoodWater, FoodCarrot, FoodBerry}
}

// Position represents an entity's scene position.
type Position struct {
	X, Y float64
}

// Food marks an entity as a placed food item.
type Food struct {
	Kind FoodKind
}

// FoodItem is a food value detached from the ECS world (snapshots, records).
type FoodItem struct {
	Kind FoodKind
	X, Y float64
}

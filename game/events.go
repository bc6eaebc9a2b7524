package game

import "github.com/pthm-cable/bunnygarden/components"

// EventType identifies simulation events.
type EventType uint8

const (
	EventStageChanged EventType = iota
	EventMood
	EventFoodEaten
	EventFoodPlaced
	EventFoodSpawned
	EventBehavior
	EventReset
)

// String returns the name of an EventType.
func (t EventType) String() string {
	names := []string{"stage_changed", "mood", "food_eaten", "food_placed", "food_spawned", "behavior", "reset"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Event is a discrete signal emitted by the simulation for renderers,
// telemetry and the debug view. Fields are set depending on Type.
type Event struct {
	Type EventType
	Tick int64

	Stage    string              // stage changed
	Mood     components.Mood     // mood
	X, Y     float64             // mood anchor (creature position)
	Food     components.FoodItem // food eaten / placed / spawned
	Satiety  float64             // food eaten
	Activity components.Activity // behavior
	SeekFood bool                // behavior
}

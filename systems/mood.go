package systems

import (
	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
)

// MoodPicker chooses the periodic mood signal.
type MoodPicker struct {
	DistressBelow float64
	ContentAbove  float64
}

// NewMoodPicker builds the picker from config.
func NewMoodPicker(cfg *config.Config) MoodPicker {
	return MoodPicker{
		DistressBelow: cfg.Mood.DistressBelow,
		ContentAbove:  cfg.Mood.ContentAbove,
	}
}

// Pick returns the mood by priority: hunger first, then activity.
func (p MoodPicker) Pick(c *components.Creature) components.Mood {
	switch {
	case c.Hunger < p.DistressBelow:
		return components.MoodStarving
	case c.Hunger > p.ContentAbove:
		return components.MoodContent
	case c.Activity == components.ActivityDancing:
		return components.MoodDancing
	case c.Activity == components.ActivityWalking:
		return components.MoodWalking
	default:
		return components.MoodLove
	}
}

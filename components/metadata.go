package components

import "strings"

// String returns the persisted name for an Activity.
func (a Activity) String() string {
	names := ActivityNames()
	if int(a) < len(names) {
		return names[a]
	}
	return "unknown"
}

// Label returns the status text for an Activity.
func (a Activity) Label() string {
	labels := []string{"Resting", "Walking", "Eating", "Dancing"}
	if int(a) < len(labels) {
		return labels[a]
	}
	return "Unknown"
}

// ActivityNames returns the persisted names for all activities.
// The order matches the Activity constants.
func ActivityNames() []string {
	return []string{"idle", "walking", "eating", "dancing"}
}

// ParseActivity maps a persisted name to an Activity.
func ParseActivity(s string) (Activity, bool) {
	for i, name := range ActivityNames() {
		if strings.EqualFold(s, name) {
			return Activity(i), true
		}
	}
	return ActivityIdle, false
}

// HungerBand classifies a hunger value for display.
type HungerBand uint8

const (
	HungerStarving HungerBand = iota
	HungerHungry
	HungerNormal
	HungerFull
)

// String returns the display name for a HungerBand.
func (b HungerBand) String() string {
	switch b {
	case HungerFull:
		return "full"
	case HungerNormal:
		return "normal"
	case HungerHungry:
		return "hungry"
	default:
		return "starving"
	}
}

package components

// Mood is a transient signal shown above the creature.
type Mood uint8

const (
	MoodNone      Mood = iota
	MoodGreeting       // session started
	MoodCelebrate      // growth stage changed
	MoodYum            // food eaten
	MoodDistress       // hungry with no food around
	MoodStarving       // periodic, hunger very low
	MoodContent        // periodic, hunger high
	MoodDancing        // dance started or periodic while dancing
	MoodWalking        // periodic while walking
	MoodLove           // periodic fallback
)

// String returns the name of a Mood.
func (m Mood) String() string {
	names := []string{"none", "greeting", "celebrate", "yum", "distress", "starving", "content", "dancing", "walking", "love"}
	if int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}

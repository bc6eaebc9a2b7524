package components

import (
	"math"

	"github.com/pthm-cable/bunnygarden/config"
)

// Stage is one growth-stage bracket [MinAge, MaxAge).
type Stage struct {
	Name      string
	Label     string
	MinAge    float64
	MaxAge    float64 // +Inf for the last stage
	Scale     float64
	PixelSize int
}

// Contains reports whether age falls inside the bracket.
func (s Stage) Contains(age float64) bool {
	return age >= s.MinAge && age < s.MaxAge
}

// StageTable is the ordered list of growth stages.
type StageTable []Stage

// NewStageTable builds the table from config.
func NewStageTable(stages []config.StageConfig) StageTable {
	t := make(StageTable, len(stages))
	for i, s := range stages {
		t[i] = Stage{
			Name:      s.Name,
			Label:     s.Label,
			MinAge:    s.MinAge,
			MaxAge:    s.StageMaxAge(),
			Scale:     s.Scale,
			PixelSize: s.PixelSize,
		}
	}
	return t
}

// Lookup returns the first stage containing age.
func (t StageTable) Lookup(age float64) (Stage, bool) {
	for _, s := range t {
		if s.Contains(age) {
			return s, true
		}
	}
	return Stage{}, false
}

// ByName returns the stage with the given name.
func (t StageTable) ByName(name string) (Stage, bool) {
	for _, s := range t {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}

// First returns the youngest stage.
func (t StageTable) First() Stage {
	if len(t) == 0 {
		return Stage{MaxAge: math.Inf(1), PixelSize: 3, Scale: 1}
	}
	return t[0]
}

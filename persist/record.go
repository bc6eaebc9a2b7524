// Package persist provides the save record codec and the save slot backends.
package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pthm-cable/bunnygarden/components"
)

// TimestampLayout matches ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record is the flat persisted form of a session.
type Record struct {
	Rabbit    RabbitRecord `json:"rabbit"`
	Foods     []FoodRecord `json:"foods"`
	Timestamp string       `json:"timestamp"`
}

// RabbitRecord holds the creature fields. Pointers mark fields as optional
// on decode; Encode always fills every field.
type RabbitRecord struct {
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	Age         *float64 `json:"age"`
	Hunger      *float64 `json:"hunger"`
	State       *string  `json:"state"`
	GrowthStage *string  `json:"growthStage"`
}

// FoodRecord holds one food item.
type FoodRecord struct {
	Type *string  `json:"type"`
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
}

// Defaults are substituted for fields missing from a record.
type Defaults struct {
	X, Y   float64
	Hunger float64
}

// Encode captures the creature and food items into a record.
func Encode(c *components.Creature, foods []components.FoodItem, at time.Time) *Record {
	activity := c.Activity.String()
	stage := c.Stage
	rec := &Record{
		Rabbit: RabbitRecord{
			X:           ptr(c.X),
			Y:           ptr(c.Y),
			Age:         ptr(c.Age),
			Hunger:      ptr(c.Hunger),
			State:       &activity,
			GrowthStage: &stage,
		},
		Foods:     make([]FoodRecord, 0, len(foods)),
		Timestamp: at.UTC().Format(TimestampLayout),
	}
	for _, f := range foods {
		kind := string(f.Kind)
		rec.Foods = append(rec.Foods, FoodRecord{Type: &kind, X: ptr(f.X), Y: ptr(f.Y)})
	}
	return rec
}

// Decode rebuilds the creature and food items from a record. Stored values
// are taken verbatim; missing or unreadable fields fall back to defaults.
// A stored growth stage is trusted when it names a known stage, otherwise
// the stage is derived from age. Food entries without a type are dropped.
func Decode(rec *Record, rules *components.Rules, def Defaults) (*components.Creature, []components.FoodItem) {
	r := rec.Rabbit
	c := components.NewCreature(rules, valueOr(r.X, def.X), valueOr(r.Y, def.Y), valueOr(r.Hunger, def.Hunger))

	if r.Age != nil && *r.Age > 0 {
		c.Age = *r.Age
	}

	if r.State != nil {
		if a, ok := components.ParseActivity(*r.State); ok {
			c.Activity = a
		}
	}

	stageTrusted := false
	if r.GrowthStage != nil {
		if s, ok := rules.Stages.ByName(*r.GrowthStage); ok {
			c.Stage = s.Name
			stageTrusted = true
		}
	}
	if !stageTrusted {
		if s, ok := rules.Stages.Lookup(c.Age); ok {
			c.Stage = s.Name
		}
	}

	foods := make([]components.FoodItem, 0, len(rec.Foods))
	for _, f := range rec.Foods {
		if f.Type == nil || *f.Type == "" {
			continue
		}
		foods = append(foods, components.FoodItem{
			Kind: components.FoodKind(*f.Type),
			X:    valueOr(f.X, 0),
			Y:    valueOr(f.Y, 0),
		})
	}
	return c, foods
}

// Marshal encodes a record as JSON.
func Marshal(rec *Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a JSON record.
func Unmarshal(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &rec, nil
}

// CapturedAt parses the record timestamp.
func (r *Record) CapturedAt() (time.Time, error) {
	return time.Parse(TimestampLayout, r.Timestamp)
}

func ptr[T any](v T) *T {
	return &v
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

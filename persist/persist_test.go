package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
)

func testRules(t *testing.T) *components.Rules {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	return components.NewRules(cfg)
}

var testDefaults = Defaults{X: 100, Y: 300, Hunger: 100}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rules := testRules(t)
	c := components.NewCreature(rules, 123.5, 456.25, 42)
	c.AdvanceAge(75.5)
	c.Activity = components.ActivityWalking
	foods := []components.FoodItem{
		{Kind: components.FoodCarrot, X: 10, Y: 20},
		{Kind: components.FoodWater, X: 30.5, Y: 40.5},
	}
	at := time.Date(2026, 3, 1, 12, 0, 0, 123_000_000, time.UTC)

	data, err := Marshal(Encode(c, foods, at))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	rec, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	got, gotFoods := Decode(rec, rules, testDefaults)
	if got.X != c.X || got.Y != c.Y || got.Age != c.Age || got.Hunger != c.Hunger {
		t.Errorf("creature = %+v, want %+v", got, c)
	}
	if got.Activity != components.ActivityWalking {
		t.Errorf("activity = %v, want walking", got.Activity)
	}
	if got.Stage != "adult" {
		t.Errorf("stage = %q, want adult", got.Stage)
	}
	if len(gotFoods) != 2 || gotFoods[0] != foods[0] || gotFoods[1] != foods[1] {
		t.Errorf("foods = %+v, want %+v", gotFoods, foods)
	}

	capturedAt, err := rec.CapturedAt()
	if err != nil {
		t.Fatalf("CapturedAt: %v", err)
	}
	if !capturedAt.Equal(at) {
		t.Errorf("captured at %v, want %v", capturedAt, at)
	}
	if rec.Timestamp != "2026-03-01T12:00:00.123Z" {
		t.Errorf("timestamp = %q", rec.Timestamp)
	}
}

func TestDecodeSubstitutesDefaults(t *testing.T) {
	rec, err := Unmarshal([]byte(`{"rabbit":{"age":12},"foods":[{"type":"grass"},{"x":5,"y":5},{"type":"cake","x":1,"y":2}]}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	c, foods := Decode(rec, testRules(t), testDefaults)
	if c.X != 100 || c.Y != 300 || c.Hunger != 100 {
		t.Errorf("creature position/hunger = (%v,%v) %v, want defaults", c.X, c.Y, c.Hunger)
	}
	if c.Age != 12 || c.Stage != "baby" {
		t.Errorf("age=%v stage=%q, want 12 baby", c.Age, c.Stage)
	}
	if c.Activity != components.ActivityIdle {
		t.Errorf("activity = %v, want idle", c.Activity)
	}

	// The untyped entry is dropped; unknown kinds survive
	if len(foods) != 2 {
		t.Fatalf("foods = %+v, want 2 entries", foods)
	}
	if foods[0].Kind != components.FoodGrass || foods[0].X != 0 {
		t.Errorf("foods[0] = %+v", foods[0])
	}
	if foods[1].Kind != "cake" {
		t.Errorf("foods[1] = %+v", foods[1])
	}
}

func TestDecodeStage(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"stored stage trusted", `{"rabbit":{"age":5,"growthStage":"elder"}}`, "elder"},
		{"unknown stage derived", `{"rabbit":{"age":45,"growthStage":"ancient"}}`, "teen"},
		{"missing stage derived", `{"rabbit":{"age":200}}`, "elder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Unmarshal([]byte(tt.json))
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			c, _ := Decode(rec, testRules(t), testDefaults)
			if c.Stage != tt.want {
				t.Errorf("stage = %q, want %q", c.Stage, tt.want)
			}
		})
	}
}

func TestDecodeKeepsZeroHunger(t *testing.T) {
	rec, err := Unmarshal([]byte(`{"rabbit":{"hunger":0}}`))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	c, _ := Decode(rec, testRules(t), testDefaults)
	if c.Hunger != 0 {
		t.Errorf("hunger = %v, want stored 0", c.Hunger)
	}
}

func TestSlots(t *testing.T) {
	dir := t.TempDir()
	sqliteSlot, err := OpenSQLiteSlot(filepath.Join(dir, "save.db"), "test")
	if err != nil {
		t.Fatalf("OpenSQLiteSlot: %v", err)
	}
	t.Cleanup(func() { sqliteSlot.Close() })

	slots := map[string]Slot{
		"file":   NewFileSlot(filepath.Join(dir, "nested", "save.json")),
		"memory": NewMemorySlot(),
		"sqlite": sqliteSlot,
	}

	for name, slot := range slots {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := slot.Read(ctx); !errors.Is(err, ErrNoSave) {
				t.Fatalf("Read on empty slot: err = %v, want ErrNoSave", err)
			}
			if err := slot.Write(ctx, []byte(`{"a":1}`)); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if err := slot.Write(ctx, []byte(`{"a":2}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			data, err := slot.Read(ctx)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if string(data) != `{"a":2}` {
				t.Errorf("Read = %s, want the last write", data)
			}
			if err := slot.Clear(ctx); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			if _, err := slot.Read(ctx); !errors.Is(err, ErrNoSave) {
				t.Errorf("Read after Clear: err = %v, want ErrNoSave", err)
			}
			if err := slot.Clear(ctx); err != nil {
				t.Errorf("second Clear: %v", err)
			}
		})
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		wantErr bool
	}{
		{"file", false},
		{"memory", false},
		{"sqlite", false},
		{"redis", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			slot, err := Open(config.PersistenceConfig{
				Backend: tt.backend,
				Path:    filepath.Join(dir, tt.backend+".save"),
				Slot:    "bunnyGardenGame",
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open: err = %v, wantErr %v", err, tt.wantErr)
			}
			if slot != nil {
				slot.Close()
			}
		})
	}
}

func TestStoreCorruptDataIsNoSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(NewFileSlot(path))
	if rec, ok := store.Load(context.Background()); ok || rec != nil {
		t.Errorf("Load of corrupt data = %v, %v; want nil, false", rec, ok)
	}
}

func TestStoreSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	rules := testRules(t)
	store := NewStore(NewMemorySlot())

	c := components.NewCreature(rules, 1, 2, 33)
	if !store.Save(ctx, Encode(c, nil, time.Now())) {
		t.Fatal("Save returned false")
	}
	rec, ok := store.Load(ctx)
	if !ok {
		t.Fatal("Load found nothing")
	}
	if *rec.Rabbit.Hunger != 33 {
		t.Errorf("hunger = %v, want 33", *rec.Rabbit.Hunger)
	}
	if rec.Foods == nil {
		t.Error("foods should encode as an empty list, not null")
	}

	if !store.Clear(ctx) {
		t.Fatal("Clear returned false")
	}
	if _, ok := store.Load(ctx); ok {
		t.Error("Load after Clear found data")
	}
}

func TestNilStoreIsInert(t *testing.T) {
	var store *Store
	ctx := context.Background()
	if store.Save(ctx, &Record{}) {
		t.Error("nil store saved")
	}
	if _, ok := store.Load(ctx); ok {
		t.Error("nil store loaded")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

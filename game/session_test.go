package game

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/persist"
)

type fakeRenderer struct {
	syncs   int
	moods   []components.Mood
	placed  []components.FoodItem
	eaten   []components.FoodItem
	stages  []string
	resets  int
	lastPet components.Creature
}

func (r *fakeRenderer) Sync(c *components.Creature, foods []components.FoodItem) {
	r.syncs++
	r.lastPet = *c
}
func (r *fakeRenderer) ShowMood(m components.Mood, x, y float64)  { r.moods = append(r.moods, m) }
func (r *fakeRenderer) FoodPlaced(item components.FoodItem)       { r.placed = append(r.placed, item) }
func (r *fakeRenderer) FoodEaten(item components.FoodItem)        { r.eaten = append(r.eaten, item) }
func (r *fakeRenderer) StageChanged(stage components.Stage)       { r.stages = append(r.stages, stage.Name) }
func (r *fakeRenderer) Reset()                                    { r.resets++ }

type fakePublisher struct {
	payloads [][]byte
}

func (p *fakePublisher) Publish(data []byte) {
	p.payloads = append(p.payloads, data)
}

func newTestSession(t *testing.T, store *persist.Store, r Renderer) *Session {
	t.Helper()
	opts := Options{Seed: 1, Store: store}
	if r != nil {
		opts.Renderer = r
	}
	s, err := NewSession(context.Background(), quietConfig(t), opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionStartPause(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestSession(t, nil, r)
	if s.State() != StateStopped {
		t.Fatalf("initial state = %v, want stopped", s.State())
	}

	now := time.Unix(1000, 0)
	s.Start(now)
	if s.State() != StateRunning {
		t.Fatalf("state = %v, want running", s.State())
	}
	if len(r.moods) == 0 || r.moods[0] != components.MoodGreeting {
		t.Errorf("moods = %v, want greeting first", r.moods)
	}

	s.Frame(now.Add(time.Second))
	if s.Sim().Tick() != 1 || s.Sim().Creature().Age != 1 {
		t.Errorf("tick=%d age=%v after one frame", s.Sim().Tick(), s.Sim().Creature().Age)
	}

	s.Sim().Creature().BeginDancing()
	s.Pause()
	if s.State() != StatePaused {
		t.Fatalf("state = %v, want paused", s.State())
	}
	if s.Sim().Creature().Activity != components.ActivityIdle {
		t.Error("pause did not stop the dance")
	}

	s.Frame(now.Add(5 * time.Second))
	if s.Sim().Tick() != 1 {
		t.Error("paused session advanced the clock")
	}

	// Resuming does not count the paused time
	s.Start(now.Add(10 * time.Second))
	s.Frame(now.Add(11 * time.Second))
	if s.Sim().Creature().Age != 2 {
		t.Errorf("age = %v, want 2", s.Sim().Creature().Age)
	}
}

func TestSessionClick(t *testing.T) {
	r := &fakeRenderer{}
	s := newTestSession(t, nil, r)

	if got := s.Click(300, 300); got != ClickIgnored {
		t.Errorf("click while stopped = %v, want ignored", got)
	}

	// Placement works even while stopped
	s.ArmPlacement(components.FoodCarrot)
	if kind, ok := s.Placement(); !ok || kind != components.FoodCarrot {
		t.Fatalf("Placement = %q, %v", kind, ok)
	}
	if got := s.Click(400, 500); got != ClickPlaced {
		t.Fatalf("click with placement = %v, want placed", got)
	}
	if _, ok := s.Placement(); ok {
		t.Error("placement still armed after a click")
	}
	if s.Sim().Pantry().Len() != 1 || len(r.placed) != 1 {
		t.Errorf("pantry=%d placed events=%d, want 1", s.Sim().Pantry().Len(), len(r.placed))
	}

	s.Start(time.Now())
	if got := s.Click(600, 200); got != ClickDirected {
		t.Fatalf("click while running = %v, want directed", got)
	}
	c := s.Sim().Creature()
	if !c.HasTarget || c.Activity != components.ActivityWalking {
		t.Errorf("creature not walking to the click: %+v", c)
	}

	s.ArmPlacement(components.FoodGrass)
	s.CancelPlacement()
	if got := s.Click(10, 10); got != ClickDirected {
		t.Errorf("click after cancel = %v, want directed", got)
	}
}

func TestSessionRestoresSavedCreature(t *testing.T) {
	ctx := context.Background()
	store := persist.NewStore(persist.NewMemorySlot())

	first := newTestSession(t, store, nil)
	first.Sim().Creature().X = 250
	first.Sim().Creature().Hunger = 42
	first.Sim().PlaceFood(components.FoodBerry, 700, 500)
	if !first.Save(ctx, time.Now()) {
		t.Fatal("Save returned false")
	}

	second := newTestSession(t, store, nil)
	c := second.Sim().Creature()
	if c.X != 250 || c.Hunger != 42 {
		t.Errorf("restored creature = %+v", c)
	}
	if second.Sim().Pantry().Len() != 1 {
		t.Errorf("restored pantry len = %d, want 1", second.Sim().Pantry().Len())
	}
}

func TestSessionReset(t *testing.T) {
	ctx := context.Background()
	store := persist.NewStore(persist.NewMemorySlot())
	r := &fakeRenderer{}
	s := newTestSession(t, store, r)

	now := time.Now()
	s.Start(now)
	s.Frame(now.Add(40 * time.Second))
	s.ArmPlacement(components.FoodGrass)
	s.Click(700, 500)
	s.Save(ctx, now)

	s.Reset(ctx)
	if s.State() != StateStopped {
		t.Errorf("state = %v, want stopped", s.State())
	}
	c := s.Sim().Creature()
	if c.X != 100 || c.Y != 300 || c.Hunger != 100 || c.Age != 0 {
		t.Errorf("creature after reset = %+v", c)
	}
	if s.Sim().Pantry().Len() != 0 {
		t.Error("food survived reset")
	}
	if _, ok := store.Load(ctx); ok {
		t.Error("save slot not cleared")
	}
	if r.resets != 1 {
		t.Errorf("renderer resets = %d, want 1", r.resets)
	}
	if r.lastPet.Age != 0 {
		t.Error("renderer not synced with the fresh creature")
	}
}

func TestSessionAutosave(t *testing.T) {
	ctx := context.Background()
	store := persist.NewStore(persist.NewMemorySlot())
	s := newTestSession(t, store, nil)

	now := time.Now()
	if s.Autosave(ctx, now) {
		t.Error("autosave ran while stopped")
	}

	s.Start(now)
	if s.AutosaveDue(now.Add(4 * time.Second)) {
		t.Error("autosave due before the interval")
	}
	if !s.AutosaveDue(now.Add(5 * time.Second)) {
		t.Error("autosave not due at the interval")
	}
	if !s.Autosave(ctx, now.Add(5*time.Second)) {
		t.Fatal("autosave failed")
	}
	if s.AutosaveDue(now.Add(6 * time.Second)) {
		t.Error("autosave due right after saving")
	}
	if _, ok := store.Load(ctx); !ok {
		t.Error("nothing in the slot after autosave")
	}
}

func TestSessionWithoutRendererOrStore(t *testing.T) {
	s := newTestSession(t, nil, nil)
	now := time.Now()
	s.Start(now)
	s.Frame(now.Add(time.Second))
	if s.Save(context.Background(), now) {
		t.Error("save without a store reported success")
	}
	if err := s.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSessionPublishesSnapshots(t *testing.T) {
	pub := &fakePublisher{}
	s, err := NewSession(context.Background(), quietConfig(t), Options{Seed: 1, Publisher: pub})
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	s.Start(now)
	s.Frame(now.Add(10 * time.Millisecond))
	s.Frame(now.Add(20 * time.Millisecond))
	if len(pub.payloads) != 1 {
		t.Fatalf("payloads = %d, want 1 within the publish interval", len(pub.payloads))
	}

	var snap Snapshot
	if err := json.Unmarshal(pub.payloads[0], &snap); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if snap.State != "running" || snap.Record == nil || snap.Hunger != "full" {
		t.Errorf("snapshot = %+v", snap)
	}

	s.Frame(now.Add(300 * time.Millisecond))
	if len(pub.payloads) != 2 {
		t.Errorf("payloads = %d, want 2 after the interval", len(pub.payloads))
	}
}

func TestStatusText(t *testing.T) {
	s := newTestSession(t, nil, nil)
	if got := s.StatusText(); got != "Press Start to wake your bunny" {
		t.Errorf("stopped status = %q", got)
	}
	s.ArmPlacement(components.FoodCarrot)
	if got := s.StatusText(); got != "Click in the garden to place Carrot" {
		t.Errorf("placement status = %q", got)
	}
}

func TestRunFixedStopsAtMaxTicks(t *testing.T) {
	ctx := context.Background()
	store := persist.NewStore(persist.NewMemorySlot())
	s := newTestSession(t, store, nil)

	if err := s.RunFixed(ctx, 20*time.Millisecond, 300); err != nil {
		t.Fatalf("RunFixed: %v", err)
	}
	if s.Sim().Tick() != 300 {
		t.Errorf("tick = %d, want 300", s.Sim().Tick())
	}
	// 300 frames of 20ms is 6s, past one save interval
	if _, ok := store.Load(ctx); !ok {
		t.Error("no autosave during the fixed-step run")
	}
}

func TestRunFixedHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newTestSession(t, nil, nil)
	if err := s.RunFixed(ctx, 20*time.Millisecond, 0); err != nil {
		t.Fatalf("RunFixed: %v", err)
	}
	if s.Sim().Tick() != 0 {
		t.Errorf("tick = %d, want 0 for a cancelled context", s.Sim().Tick())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s := newTestSession(t, nil, nil)
	if err := s.Run(ctx, 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Sim().Tick() == 0 {
		t.Error("no frames ran before the deadline")
	}
}

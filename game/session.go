package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/logging"
	"github.com/pthm-cable/bunnygarden/persist"
	"github.com/pthm-cable/bunnygarden/telemetry"
)

// State is the session run state.
type State uint8

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

// String returns the name of a State.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Renderer receives simulation output. All methods are called from the
// session goroutine.
type Renderer interface {
	Sync(c *components.Creature, foods []components.FoodItem)
	ShowMood(m components.Mood, x, y float64)
	FoodPlaced(item components.FoodItem)
	FoodEaten(item components.FoodItem)
	StageChanged(stage components.Stage)
	Reset()
}

// Publisher accepts debug snapshots. Publish must not block.
type Publisher interface {
	Publish(data []byte)
}

// ClickResult reports what a scene click did.
type ClickResult uint8

const (
	ClickIgnored ClickResult = iota
	ClickPlaced
	ClickDirected
)

// Options configures a Session. Every field is optional.
type Options struct {
	Seed      int64
	Renderer  Renderer
	Store     *persist.Store
	Output    *telemetry.OutputManager
	Publisher Publisher
	LogStats  bool
}

// Session is the controller between the player, the simulation clock,
// persistence and the renderer.
type Session struct {
	cfg *config.Config
	sim *Sim

	renderer  Renderer
	store     *persist.Store
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	publisher Publisher
	logStats  bool

	state     State
	placement components.FoodKind

	lastTick    time.Time
	lastSave    time.Time
	lastPublish time.Time
}

// NewSession creates a session, restoring the saved creature when one exists.
func NewSession(ctx context.Context, cfg *config.Config, opts Options) (*Session, error) {
	sim, err := NewSim(cfg, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	s := &Session{
		cfg:       cfg,
		sim:       sim,
		renderer:  opts.Renderer,
		store:     opts.Store,
		collector: telemetry.NewCollector(cfg.Telemetry.WindowSec),
		perf:      telemetry.NewPerfCollector(cfg.Scene.TargetFPS),
		output:    opts.Output,
		publisher: opts.Publisher,
		logStats:  opts.LogStats,
	}
	sim.SetPerf(s.perf)
	if s.renderer == nil {
		slog.Warn("no renderer attached, running headless")
	}

	s.loadOrCreate(ctx)
	s.render()
	return s, nil
}

func (s *Session) loadOrCreate(ctx context.Context) {
	rec, ok := s.store.Load(ctx)
	if !ok {
		slog.Info("starting new creature", "x", s.cfg.Spawn.X, "y", s.cfg.Spawn.Y)
		return
	}

	c, foods := persist.Decode(rec, s.sim.Rules(), persist.Defaults{
		X:      s.cfg.Spawn.X,
		Y:      s.cfg.Spawn.Y,
		Hunger: s.cfg.Spawn.Hunger,
	})
	s.sim.Restore(c, foods)

	attrs := []any{"age", c.Age, "stage", c.Stage, "hunger", c.Hunger, "foods", len(foods)}
	if at, err := rec.CapturedAt(); err == nil {
		attrs = append(attrs, "saved_at", at)
	}
	slog.Info("restored saved creature", attrs...)
}

// Sim returns the simulation clock.
func (s *Session) Sim() *Sim {
	return s.sim
}

// State returns the current run state.
func (s *Session) State() State {
	return s.state
}

// Start begins or resumes the clock. Starting a running session is a no-op.
func (s *Session) Start(now time.Time) {
	if s.state == StateRunning {
		return
	}
	s.state = StateRunning
	s.lastTick = now
	s.lastSave = now
	s.sim.EmitMood(components.MoodGreeting)
	s.dispatch()
	slog.Debug("session started", "tick", s.sim.Tick())
}

// Pause halts the clock and ends any dance in progress.
func (s *Session) Pause() {
	if s.state != StateRunning {
		return
	}
	s.state = StatePaused
	s.sim.StopDancing()
	s.render()
	slog.Debug("session paused", "tick", s.sim.Tick())
}

// Reset stops the session, discards the creature and all food, and clears
// the save slot.
func (s *Session) Reset(ctx context.Context) {
	s.Pause()
	s.state = StateStopped
	s.placement = ""
	s.sim.Reset()
	s.store.Clear(ctx)
	s.dispatch()
	s.render()
	slog.Info("session reset")
}

// Frame advances the clock to now when running and pushes state to the
// renderer, telemetry and debug view.
func (s *Session) Frame(now time.Time) {
	s.perf.RecordFrame()
	if s.state == StateRunning {
		delta := now.Sub(s.lastTick).Seconds()
		if delta < 0 {
			delta = 0
		}
		s.lastTick = now
		s.sim.Step(delta)
		s.collector.RecordTick(delta, s.sim.Creature().Hunger)
	}

	s.dispatch()
	s.render()
	s.flushTelemetry()
	s.publish(now)
}

// Click handles a click on the scene. An armed placement drops food and
// disarms; otherwise a running session sends the creature walking there.
func (s *Session) Click(x, y float64) ClickResult {
	if s.placement != "" {
		kind := s.placement
		s.placement = ""
		s.sim.PlaceFood(kind, x, y)
		s.dispatch()
		return ClickPlaced
	}
	if s.state != StateRunning {
		return ClickIgnored
	}
	s.sim.Direct(x, y)
	return ClickDirected
}

// ArmPlacement makes the next scene click place food of the given kind.
func (s *Session) ArmPlacement(kind components.FoodKind) {
	s.placement = kind
}

// CancelPlacement disarms a pending placement.
func (s *Session) CancelPlacement() {
	s.placement = ""
}

// Placement returns the armed food kind, if any.
func (s *Session) Placement() (components.FoodKind, bool) {
	return s.placement, s.placement != ""
}

// StatusText describes the session for the control panel.
func (s *Session) StatusText() string {
	if kind, ok := s.Placement(); ok {
		return fmt.Sprintf("Click in the garden to place %s", s.foodLabel(kind))
	}
	c := s.sim.Creature()
	switch s.state {
	case StateStopped:
		return "Press Start to wake your bunny"
	case StatePaused:
		return fmt.Sprintf("Paused - %s is %s", c.StageInfo().Label, c.HungerDescriptor())
	}
	return fmt.Sprintf("%s - %s and %s", c.StageInfo().Label, c.Activity.Label(), c.HungerDescriptor())
}

func (s *Session) foodLabel(kind components.FoodKind) string {
	for _, k := range s.cfg.Food.Kinds {
		if k.Name == string(kind) {
			return k.Label
		}
	}
	return string(kind)
}

// Save writes the current state to the save slot.
func (s *Session) Save(ctx context.Context, now time.Time) bool {
	s.lastSave = now
	return s.store.Save(ctx, s.sim.Record(now))
}

// AutosaveDue reports whether a running session has gone a full save
// interval without saving.
func (s *Session) AutosaveDue(now time.Time) bool {
	return s.state == StateRunning && now.Sub(s.lastSave) >= s.cfg.Derived.SaveInterval
}

// Autosave saves if the session is running.
func (s *Session) Autosave(ctx context.Context, now time.Time) bool {
	if s.state != StateRunning {
		return false
	}
	return s.Save(ctx, now)
}

// Close performs the teardown save and flushes pending telemetry.
func (s *Session) Close(ctx context.Context) error {
	s.Save(ctx, time.Now())
	if s.collector.Pending() {
		stats := s.collector.Flush(s.sim.Creature(), s.sim.Pantry().Len())
		if err := s.output.WriteTelemetry(stats); err != nil {
			return fmt.Errorf("writing final telemetry: %w", err)
		}
	}
	return nil
}

// Snapshot is the debug view payload.
type Snapshot struct {
	State     string          `json:"state"`
	Tick      int64           `json:"tick"`
	Placement string          `json:"placement,omitempty"`
	Hunger    string          `json:"hungerBand"`
	Status    string          `json:"status"`
	Record    *persist.Record `json:"record"`
}

// Snapshot captures the session for the debug view.
func (s *Session) Snapshot(now time.Time) Snapshot {
	c := s.sim.Creature()
	return Snapshot{
		State:     s.state.String(),
		Tick:      s.sim.Tick(),
		Placement: string(s.placement),
		Hunger:    c.HungerDescriptor().String(),
		Status:    s.StatusText(),
		Record:    s.sim.Record(now),
	}
}

func (s *Session) dispatch() {
	for _, e := range s.sim.DrainEvents() {
		s.record(e)
		if s.renderer == nil {
			continue
		}
		switch e.Type {
		case EventMood:
			s.renderer.ShowMood(e.Mood, e.X, e.Y)
		case EventFoodEaten:
			s.renderer.FoodEaten(e.Food)
		case EventFoodPlaced, EventFoodSpawned:
			s.renderer.FoodPlaced(e.Food)
		case EventStageChanged:
			if st, ok := s.sim.Rules().Stages.ByName(e.Stage); ok {
				s.renderer.StageChanged(st)
			}
		case EventReset:
			s.renderer.Reset()
		}
	}
}

func (s *Session) record(e Event) {
	switch e.Type {
	case EventMood:
		s.collector.RecordMood(e.Mood)
		slog.Log(context.Background(), logging.LevelTrace, "mood", "mood", e.Mood.String(), "tick", e.Tick)
	case EventFoodEaten:
		s.collector.RecordMeal(e.Satiety)
		slog.Debug("food eaten", "kind", e.Food.Kind, "satiety", e.Satiety, "tick", e.Tick)
	case EventFoodPlaced:
		s.collector.RecordPlaced()
		slog.Debug("food placed", "kind", e.Food.Kind, "x", e.Food.X, "y", e.Food.Y)
	case EventFoodSpawned:
		s.collector.RecordSpawned()
		slog.Debug("food spawned", "kind", e.Food.Kind, "x", e.Food.X, "y", e.Food.Y)
	case EventStageChanged:
		c := s.sim.Creature()
		s.collector.RecordStageChange()
		slog.Info("stage changed", "stage", e.Stage, "age", c.Age)
		err := s.output.WriteMilestone(telemetry.Milestone{
			Tick:   e.Tick,
			Age:    c.Age,
			Stage:  e.Stage,
			Hunger: c.Hunger,
			Foods:  s.sim.Pantry().Len(),
		})
		if err != nil {
			slog.Error("failed to write milestone", "error", err)
		}
	case EventBehavior:
		s.collector.RecordDecision(e.Activity, e.SeekFood)
		slog.Log(context.Background(), logging.LevelTrace, "behavior", "activity", e.Activity.String(), "seek_food", e.SeekFood)
	}
}

func (s *Session) render() {
	if s.renderer == nil {
		return
	}
	s.renderer.Sync(s.sim.Creature(), s.sim.Pantry().Items())
}

func (s *Session) flushTelemetry() {
	if !s.collector.ShouldFlush() {
		return
	}
	stats := s.collector.Flush(s.sim.Creature(), s.sim.Pantry().Len())
	if s.logStats {
		stats.LogStats()
	}
	s.perf.Stats().LogStats()
	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
}

func (s *Session) publish(now time.Time) {
	if s.publisher == nil || now.Sub(s.lastPublish) < s.cfg.Derived.PublishInterval {
		return
	}
	s.lastPublish = now
	data, err := json.Marshal(s.Snapshot(now))
	if err != nil {
		slog.Error("failed to encode debug snapshot", "error", err)
		return
	}
	s.publisher.Publish(data)
}

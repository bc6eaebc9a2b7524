package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/game"
	"github.com/pthm-cable/bunnygarden/inspector"
	"github.com/pthm-cable/bunnygarden/renderer"
)

// App is the windowed garden: scene on top, control panel below.
type App struct {
	ctx     context.Context
	cfg     *config.Config
	session *game.Session
	scene   *renderer.Scene
	panel   *ControlPanel
	inspect *inspector.Inspector
}

// NewApp creates the session with a raylib scene attached.
func NewApp(ctx context.Context, cfg *config.Config, opts game.Options) (*App, error) {
	w, h := int32(cfg.Scene.Width), int32(cfg.Scene.Height)
	scene := renderer.NewScene(w, h)
	opts.Renderer = scene

	session, err := game.NewSession(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	return &App{
		ctx:     ctx,
		cfg:     cfg,
		session: session,
		scene:   scene,
		panel:   NewControlPanel(0, h, w, int32(cfg.Scene.PanelHeight), cfg.Food.Kinds),
		inspect: inspector.NewInspector(w),
	}, nil
}

// Session returns the underlying session.
func (a *App) Session() *game.Session {
	return a.session
}

// Run opens the window and loops until it is closed, ctx is cancelled or
// maxTicks steps have run (0 = unbounded). The teardown save always runs.
func (a *App) Run(maxTicks int64) error {
	rl.InitWindow(int32(a.cfg.Scene.Width), int32(a.cfg.Scene.Height+a.cfg.Scene.PanelHeight), "Bunny Garden")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(a.cfg.Scene.TargetFPS))
	rl.SetExitKey(rl.KeyNull)

	for !rl.WindowShouldClose() {
		if a.ctx.Err() != nil {
			break
		}
		a.Update(time.Now())
		a.Draw()

		if maxTicks > 0 && a.session.Sim().Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", a.session.Sim().Tick())
			break
		}
	}

	return a.session.Close(context.WithoutCancel(a.ctx))
}

// Update handles input, advances the session and autosaves when due.
func (a *App) Update(now time.Time) {
	a.handleInput(now)
	a.session.Frame(now)
	if a.session.AutosaveDue(now) {
		a.session.Autosave(a.ctx, now)
	}
}

// Draw renders the scene and the control panel.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	_, placing := a.session.Placement()
	a.scene.Draw(placing)

	c := a.session.Sim().Creature()
	a.inspect.Draw(c, a.inspectorExtras())
	kind, _ := a.session.Placement()
	action := a.panel.Draw(PanelData{
		State:     a.session.State(),
		Status:    a.session.StatusText(),
		Hunger:    c.Hunger,
		HungerMax: c.Rules().HungerMax,
		Band:      c.HungerDescriptor(),
		Age:       c.Age,
		Stage:     c.StageInfo().Label,
		Foods:     a.session.Sim().Pantry().Len(),
		Placement: kind,
	})

	rl.EndDrawing()

	a.apply(action, time.Now())
}

func (a *App) inspectorExtras() []inspector.Extra {
	sim := a.session.Sim()
	return []inspector.Extra{
		{Name: "Session", Value: a.session.State()},
		{Name: "Tick", Value: sim.Tick()},
		{Name: "Foods", Value: sim.Pantry().Len()},
		{Name: "EatCountdown", Value: fmt.Sprintf("%.0f ms", sim.EatCountdown())},
		{Name: "HungerBand", Value: sim.Creature().HungerDescriptor()},
	}
}

func (a *App) apply(action Action, now time.Time) {
	switch action.Kind {
	case ActionStart:
		a.session.Start(now)
	case ActionPause:
		a.session.Pause()
	case ActionReset:
		a.session.Reset(a.ctx)
	case ActionArmFood:
		a.toggleFood(action.Food)
	}
}

func (a *App) toggleFood(kind components.FoodKind) {
	if armed, ok := a.session.Placement(); ok && armed == kind {
		a.session.CancelPlacement()
		return
	}
	a.session.ArmPlacement(kind)
}

// handleInput processes keyboard and scene clicks.
func (a *App) handleInput(now time.Time) {
	if rl.IsKeyPressed(rl.KeySpace) {
		if a.session.State() == game.StateRunning {
			a.session.Pause()
		} else {
			a.session.Start(now)
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.session.CancelPlacement()
	}
	if rl.IsKeyPressed(rl.KeyI) {
		a.inspect.Toggle()
	}

	// Number keys arm the matching food button
	keys := []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}
	for i, f := range a.cfg.Food.Kinds {
		if i < len(keys) && rl.IsKeyPressed(keys[i]) {
			a.toggleFood(components.FoodKind(f.Name))
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		rows := inspector.Rows(a.session.Sim().Creature(), a.inspectorExtras())
		if a.inspect.HandleClick(pos.X, pos.Y) || a.inspect.Contains(pos.X, pos.Y, rows) {
			return
		}
		if pos.Y < float32(a.cfg.Scene.Height) {
			a.session.Click(float64(pos.X), float64(pos.Y))
		}
	}
}

package game

import (
	"context"
	"log/slog"
	"time"
)

// Run drives the session in real time without a window. Frames fire at the
// configured frame rate and autosaves at the save interval while running.
// It returns when ctx is cancelled or after maxTicks steps (0 = unbounded).
func (s *Session) Run(ctx context.Context, maxTicks int64) error {
	frame := time.NewTicker(s.cfg.Derived.FrameInterval)
	defer frame.Stop()
	save := time.NewTicker(s.cfg.Derived.SaveInterval)
	defer save.Stop()

	s.Start(time.Now())
	slog.Info("headless run started", "frame_interval", s.cfg.Derived.FrameInterval, "max_ticks", maxTicks)

	for {
		select {
		case <-ctx.Done():
			slog.Info("headless run stopped", "tick", s.sim.Tick(), "reason", ctx.Err())
			return nil
		case now := <-frame.C:
			s.Frame(now)
			if maxTicks > 0 && s.sim.Tick() >= maxTicks {
				slog.Info("headless run complete", "tick", s.sim.Tick())
				return nil
			}
		case now := <-save.C:
			s.Autosave(ctx, now)
		}
	}
}

// RunFixed drives the session on a synthetic clock advancing by step per
// frame, as fast as possible. Autosaves follow synthetic time.
func (s *Session) RunFixed(ctx context.Context, step time.Duration, maxTicks int64) error {
	now := time.Now()
	s.Start(now)
	slog.Info("fixed-step run started", "step", step, "max_ticks", maxTicks)

	for maxTicks <= 0 || s.sim.Tick() < maxTicks {
		if err := ctx.Err(); err != nil {
			slog.Info("fixed-step run stopped", "tick", s.sim.Tick(), "reason", err)
			return nil
		}
		now = now.Add(step)
		s.Frame(now)
		if s.AutosaveDue(now) {
			s.Autosave(ctx, now)
		}
	}

	slog.Info("fixed-step run complete", "tick", s.sim.Tick(), "age", s.sim.Creature().Age)
	return nil
}

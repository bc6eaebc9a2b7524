package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/debugview"
	"github.com/pthm-cable/bunnygarden/game"
	"github.com/pthm-cable/bunnygarden/logging"
	"github.com/pthm-cable/bunnygarden/persist"
	"github.com/pthm-cable/bunnygarden/telemetry"
	"github.com/pthm-cable/bunnygarden/ui"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the garden",
		Long: `Run the garden in a window, or headless with --headless.

Headless runs tick in real time by default. --fixed-step advances a
synthetic clock as fast as possible, which is useful for soak runs and
telemetry capture.`,
		RunE: runGarden,
	}

	cmd.Flags().Bool("headless", false, "Run without graphics")
	cmd.Flags().Int64("seed", 0, "RNG seed (0 = time-based)")
	cmd.Flags().Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	cmd.Flags().Duration("fixed-step", 0, "Headless synthetic frame step, e.g. 16ms (0 = real time)")
	cmd.Flags().String("output-dir", "", "Output directory for CSV telemetry and config snapshot (empty = use config)")
	cmd.Flags().String("debug-addr", "", "Debug view listen address, e.g. :8090 (empty = use config)")
	cmd.Flags().Bool("log-stats", false, "Output window stats via slog")

	return cmd
}

func runGarden(cmd *cobra.Command, args []string) error {
	headless, _ := cmd.Flags().GetBool("headless")
	seed, _ := cmd.Flags().GetInt64("seed")
	maxTicks, _ := cmd.Flags().GetInt64("max-ticks")
	fixedStep, _ := cmd.Flags().GetDuration("fixed-step")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	debugAddr, _ := cmd.Flags().GetString("debug-addr")
	logStats, _ := cmd.Flags().GetBool("log-stats")

	// JSON to stdout when headless, readable text otherwise
	setupLogging(cmd, headless)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = cfg.Telemetry.OutputDir
	}
	if debugAddr == "" {
		debugAddr = cfg.Debug.Addr
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return fmt.Errorf("creating output manager: %w", err)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		Seed:     seed,
		Store:    store,
		Output:   output,
		LogStats: logStats,
	}

	if debugAddr != "" {
		hub := debugview.NewHub()
		go func() {
			if err := hub.Serve(ctx, debugAddr); err != nil {
				slog.Error("debug view stopped", "error", err)
			}
		}()
		opts.Publisher = hub
	}

	slog.Info("starting garden",
		"seed", seed,
		"headless", headless,
		"backend", cfg.Persistence.Backend,
		"output_dir", output.Dir(),
	)

	if !headless {
		app, err := ui.NewApp(ctx, cfg, opts)
		if err != nil {
			return fmt.Errorf("creating app: %w", err)
		}
		return app.Run(maxTicks)
	}

	session, err := game.NewSession(ctx, cfg, opts)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	if fixedStep > 0 {
		err = session.RunFixed(ctx, fixedStep, maxTicks)
	} else {
		err = session.Run(ctx, maxTicks)
	}
	if closeErr := session.Close(context.WithoutCancel(ctx)); err == nil {
		err = closeErr
	}
	return err
}

func setupLogging(cmd *cobra.Command, jsonOut bool) {
	level, _ := cmd.Flags().GetString("log-level")
	w := os.Stderr
	if jsonOut {
		w = os.Stdout
	}
	slog.SetDefault(logging.NewLogger(level, jsonOut, w))
}

// loadConfig loads the config file and applies the persistence flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if err := config.Init(path); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Persistence.Backend = backend
	}
	if savePath, _ := cmd.Flags().GetString("save-path"); savePath != "" {
		cfg.Persistence.Path = savePath
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*persist.Store, error) {
	slot, err := persist.Open(cfg.Persistence)
	if err != nil {
		return nil, fmt.Errorf("opening save slot: %w", err)
	}
	return persist.NewStore(slot), nil
}

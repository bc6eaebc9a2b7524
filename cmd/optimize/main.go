// Package main tunes the unattended-care parameters with CMA-ES: how often
// food appears on its own and when the rabbit goes looking for it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/logging"
)

// evalRow is one line of optimize_log.csv.
type evalRow struct {
	Eval     int     `csv:"eval"`
	Fitness  float64 `csv:"fitness"`
	Comfort  float64 `csv:"comfort"`
	Interval float64 `csv:"auto_spawn_interval_ms"`
	SpawnMax float64 `csv:"auto_spawn_max"`
	Hungry   float64 `csv:"hungry_threshold"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 60*60*10, "Simulation length per run in ticks")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	logLevel := flag.String("log-level", "info", "Log level: trace, debug, info")
	flag.Parse()

	slog.SetDefault(logging.NewLogger(*logLevel, false, os.Stderr))

	if err := run(*configPath, *outputDir, *maxTicks, *seeds, *maxEvals, *population); err != nil {
		slog.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, maxTicks int64, seeds, maxEvals, population int) error {
	if outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	knobs := careKnobs()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(knobs, maxTicks, evalSeeds, configPath)

	logFile, err := os.Create(filepath.Join(outputDir, "optimize_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	if population == 0 {
		population = 4 + 3*len(knobs)/2
	}

	var (
		evals      int
		best       = 1e9
		bestValues = knobs.Read(base)
		rows       []evalRow
		start      = time.Now()
	)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			values := knobs.Values(x)
			fitness := evaluator.Evaluate(values)
			evals++
			if fitness < best {
				best = fitness
				bestValues = values
			}

			rows = append(rows, evalRow{
				Eval:     evals,
				Fitness:  fitness,
				Comfort:  evaluator.LastComfort(),
				Interval: values[0],
				SpawnMax: values[1],
				Hungry:   values[2],
			})
			slog.Info("evaluation",
				"eval", evals,
				"max_evals", maxEvals,
				"fitness", fitness,
				"comfort", evaluator.LastComfort(),
				"best", best,
				"elapsed", time.Since(start).Round(time.Second),
			)
			return fitness
		},
	}

	slog.Info("starting CMA-ES", "knobs", len(knobs), "population", population, "max_evals", maxEvals, "seeds", seeds, "ticks", maxTicks)

	_, err = optimize.Minimize(problem, knobs.Start(base), &optimize.Settings{FuncEvaluations: maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: population})
	if err != nil {
		slog.Warn("optimization ended early", "error", err)
	}

	if err := gocsv.MarshalFile(&rows, logFile); err != nil {
		return fmt.Errorf("writing optimize log: %w", err)
	}

	attrs := []any{"evals", evals, "fitness", best, "elapsed", time.Since(start).Round(time.Second)}
	for i, k := range knobs {
		attrs = append(attrs, k.Path, bestValues[i])
	}
	slog.Info("optimization complete", attrs...)

	knobs.Apply(base, bestValues)
	outPath := filepath.Join(outputDir, "best_config.yaml")
	if err := base.WriteYAML(outPath); err != nil {
		return err
	}
	slog.Info("best config saved", "path", outPath)
	return nil
}

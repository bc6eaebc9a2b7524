package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/bunnygarden/config"
	"github.com/pthm-cable/bunnygarden/game"
	"github.com/pthm-cable/bunnygarden/telemetry"
)

// DT is the fixed step used for evaluation runs.
const DT = 1.0 / 60.0

// Fitness terms.
const (
	targetHunger    = 65.0 // comfortable median hunger
	hungerTolerance = 20.0
	starvingBelow   = 20.0
	wastePenalty    = 0.05 // per uneaten spawned item per sim-minute
	warmupWindows   = 1
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	knobs      Knobs
	maxTicks   int64
	seeds      []int64
	configPath string

	mu          sync.Mutex
	lastComfort float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(knobs Knobs, maxTicks int64, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		knobs:      knobs,
		maxTicks:   maxTicks,
		seeds:      seeds,
		configPath: configPath,
	}
}

// LastComfort returns the comfort score from the most recent evaluation.
func (fe *FitnessEvaluator) LastComfort() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastComfort
}

// runResult holds the results from a single simulation run.
type runResult struct {
	windows      []telemetry.WindowStats
	foodsEaten   int
	foodsSpawned int
	simSeconds   float64
}

// Evaluate computes fitness for knob values (lower = better).
func (fe *FitnessEvaluator) Evaluate(values []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(values, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalComfort float64
	for _, r := range results {
		comfort := computeComfort(r.windows)
		totalComfort += comfort
		totalFitness += computeFitness(r, comfort)
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastComfort = totalComfort / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single unattended headless run.
func (fe *FitnessEvaluator) runSimulation(values []float64, seed int64) *runResult {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return &runResult{}
	}
	fe.knobs.Apply(cfg, values)

	sim, err := game.NewSim(cfg, seed)
	if err != nil {
		return &runResult{}
	}

	result := &runResult{}
	collector := telemetry.NewCollector(cfg.Telemetry.WindowSec)

	for sim.Tick() < fe.maxTicks {
		sim.Step(DT)
		collector.RecordTick(DT, sim.Creature().Hunger)

		for _, e := range sim.DrainEvents() {
			switch e.Type {
			case game.EventFoodEaten:
				result.foodsEaten++
				collector.RecordMeal(e.Satiety)
			case game.EventFoodSpawned:
				result.foodsSpawned++
				collector.RecordSpawned()
			}
		}

		if collector.ShouldFlush() {
			result.windows = append(result.windows, collector.Flush(sim.Creature(), sim.Pantry().Len()))
		}
	}

	result.simSeconds = collector.SimTime()
	return result
}

// computeComfort scores how well hunger stayed near the target, in [0, 1].
// Windows whose p10 dips into starving count against it.
func computeComfort(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return 0
	}
	valid := windows[warmupWindows:]

	var sum float64
	var starving int
	for _, w := range valid {
		z := (w.HungerP50 - targetHunger) / hungerTolerance
		sum += math.Exp(-z * z)
		if w.HungerP10 < starvingBelow {
			starving++
		}
	}

	n := float64(len(valid))
	return (sum / n) * (1 - float64(starving)/n)
}

// computeFitness combines comfort with a penalty for food left uneaten.
func computeFitness(r *runResult, comfort float64) float64 {
	if r.simSeconds <= 0 {
		return 0
	}
	wasted := float64(max(r.foodsSpawned-r.foodsEaten, 0))
	perMinute := wasted / (r.simSeconds / 60)
	return -comfort + wastePenalty*perMinute
}

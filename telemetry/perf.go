package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of the simulation step.
type Phase uint8

// Step phases in clock order.
const (
	PhaseAging Phase = iota
	PhaseHunger
	PhaseCountdowns
	PhaseBehavior
	PhaseMovement
	PhaseCollision
	PhaseMood
	PhaseSpawn

	numPhases
	phaseNone Phase = 255
)

// String returns the log name of a Phase.
func (p Phase) String() string {
	names := [numPhases]string{"aging", "hunger", "countdowns", "behavior", "movement", "collision", "mood", "spawn"}
	if p < numPhases {
		return names[p]
	}
	return "none"
}

// Phases lists every step phase in clock order.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

type stepSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times simulation steps over a ring of recent samples.
// A nil collector is valid and records nothing.
type PerfCollector struct {
	ring  []stepSample
	next  int
	count int

	current    stepSample
	stepStart  time.Time
	phaseStart time.Time
	phase      Phase

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last size steps (one second of frames at the
// target rate is a sensible size).
func NewPerfCollector(size int) *PerfCollector {
	if size < 1 {
		size = 60
	}
	return &PerfCollector{ring: make([]stepSample, size), phase: phaseNone}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	if p == nil {
		return
	}
	p.current = stepSample{}
	p.stepStart = time.Now()
	p.phase = phaseNone
}

// StartPhase closes the running phase and opens the next.
func (p *PerfCollector) StartPhase(phase Phase) {
	if p == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick stores the finished step in the ring.
func (p *PerfCollector) EndTick() {
	if p == nil {
		return
	}
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseNone
	p.current.total = now.Sub(p.stepStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks a rendered or driven frame.
func (p *PerfCollector) RecordFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the samples in the ring.
type PerfStats struct {
	Samples  int
	AvgStep  time.Duration
	P95Step  time.Duration
	MaxStep  time.Duration
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	StepsPerSecond float64
	FrameDuration  time.Duration
	FPS            float64
}

// Stats aggregates the current ring.
func (p *PerfCollector) Stats() PerfStats {
	if p == nil {
		return PerfStats{}
	}
	st := PerfStats{Samples: p.count, FrameDuration: p.frame}
	if p.frame > 0 {
		st.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return st
	}

	totals := make([]float64, p.count)
	var phaseSum [numPhases]time.Duration
	for i, s := range p.ring[:p.count] {
		totals[i] = float64(s.total)
		for ph, d := range s.phases {
			phaseSum[ph] += d
		}
	}
	slices.Sort(totals)

	st.AvgStep = time.Duration(stat.Mean(totals, nil))
	st.P95Step = time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil))
	st.MaxStep = time.Duration(totals[len(totals)-1])
	for ph, sum := range phaseSum {
		st.PhaseAvg[ph] = sum / time.Duration(p.count)
		if st.AvgStep > 0 {
			st.PhasePct[ph] = float64(st.PhaseAvg[ph]) / float64(st.AvgStep) * 100
		}
	}
	if st.AvgStep > 0 {
		st.StepsPerSecond = float64(time.Second) / float64(st.AvgStep)
	}
	return st
}

// LogStats logs the summary at debug level. Phases under 0.1% are omitted.
func (s PerfStats) LogStats() {
	if s.Samples == 0 && s.FPS == 0 {
		return
	}
	attrs := []any{
		"avg_step_us", s.AvgStep.Microseconds(),
		"p95_step_us", s.P95Step.Microseconds(),
		"max_step_us", s.MaxStep.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range Phases() {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Debug("perf", attrs...)
}

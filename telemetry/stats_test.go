package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/bunnygarden/components"
	"github.com/pthm-cable/bunnygarden/config"
)

func TestComputeHungerStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, std, p10, p50, p90 := ComputeHungerStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if math.Abs(std-math.Sqrt(8.25)) > 1e-9 {
		t.Errorf("std = %v, want %v", std, math.Sqrt(8.25))
	}
	if !(p10 <= p50 && p50 <= p90) {
		t.Errorf("percentiles not ordered: p10=%v p50=%v p90=%v", p10, p50, p90)
	}
	if p10 < 1 || p90 > 10 {
		t.Errorf("percentiles out of range: p10=%v p90=%v", p10, p90)
	}
	if values[0] != 10 {
		t.Error("input slice was reordered")
	}
}

func TestComputeHungerStats_Empty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeHungerStats(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Errorf("expected zeros, got %v %v %v %v %v", mean, std, p10, p50, p90)
	}
}

func TestComputeHungerStats_Constant(t *testing.T) {
	mean, std, _, p50, _ := ComputeHungerStats([]float64{42, 42, 42})
	if mean != 42 || std != 0 || p50 != 42 {
		t.Errorf("got mean=%v std=%v p50=%v, want 42 0 42", mean, std, p50)
	}
}

func testCreature(t *testing.T) *components.Creature {
	t.Helper()
	rules := components.NewRules(config.Default())
	return components.NewCreature(rules, 100, 300, 80)
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(1)
	creature := testCreature(t)

	for i := 0; i < 8; i++ {
		c.RecordTick(0.125, 80)
	}
	c.RecordMeal(25)
	c.RecordMeal(10)
	c.RecordPlaced()
	c.RecordSpawned()
	c.RecordStageChange()
	c.RecordMood(components.MoodYum)
	c.RecordMood(components.MoodDistress)
	c.RecordMood(components.MoodStarving)
	c.RecordDecision(components.ActivityWalking, false)
	c.RecordDecision(components.ActivityWalking, true)
	c.RecordDecision(components.ActivityDancing, false)

	if !c.ShouldFlush() {
		t.Fatal("expected flush after 1s of ticks")
	}
	if !c.Pending() {
		t.Fatal("expected pending ticks")
	}

	stats := c.Flush(creature, 3)

	if stats.Ticks != 8 {
		t.Errorf("ticks = %d, want 8", stats.Ticks)
	}
	if stats.FoodsEaten != 2 || stats.SatietyGained != 35 {
		t.Errorf("meals = %d/%v, want 2/35", stats.FoodsEaten, stats.SatietyGained)
	}
	if stats.Moods != 3 || stats.Distress != 2 {
		t.Errorf("moods = %d distress = %d, want 3 and 2", stats.Moods, stats.Distress)
	}
	if stats.Decisions != 3 || stats.SeekFood != 1 || stats.ChoseWalking != 1 || stats.ChoseDancing != 1 {
		t.Errorf("decisions = %+v", stats)
	}
	if stats.Foods != 3 || stats.Stage != creature.Stage {
		t.Errorf("foods = %d stage = %q", stats.Foods, stats.Stage)
	}
	if stats.HungerMean != 80 {
		t.Errorf("hunger mean = %v, want 80", stats.HungerMean)
	}

	// Counters reset for the next window
	if c.ShouldFlush() || c.Pending() {
		t.Error("expected empty window after flush")
	}
	next := c.Flush(creature, 0)
	if next.FoodsEaten != 0 || next.Decisions != 0 || next.Ticks != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestNewCollector_DefaultWindow(t *testing.T) {
	c := NewCollector(0)
	c.RecordTick(29, 50)
	if c.ShouldFlush() {
		t.Error("flushed before default 30s window")
	}
	c.RecordTick(1, 50)
	if !c.ShouldFlush() {
		t.Error("expected flush at 30s")
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndSec: float64(i + 1), Stage: "baby"}); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "sim_time,") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(string(data), "WindowStartSec") {
		t.Error("excluded field leaked into CSV")
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml not written: %v", err)
	}
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("got %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil manager write: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager close: %v", err)
	}
}

func TestOutputManager_Milestones(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	stages := []string{"teen", "adult"}
	for i, s := range stages {
		if err := om.WriteMilestone(Milestone{Tick: int64(i * 100), Age: float64(30 * (i + 1)), Stage: s}); err != nil {
			t.Fatalf("WriteMilestone: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "milestones.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 || lines[0] != "tick,age,stage,hunger,foods" {
		t.Errorf("milestones.csv =\n%s", data)
	}
	if !strings.Contains(lines[2], "adult") {
		t.Errorf("last row = %q, want adult", lines[2])
	}
}

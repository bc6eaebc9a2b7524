package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bunnygarden/config"
)

// Milestone is one growth-stage change, written to milestones.csv.
type Milestone struct {
	Tick   int64   `csv:"tick"`
	Age    float64 `csv:"age"`
	Stage  string  `csv:"stage"`
	Hunger float64 `csv:"hunger"`
	Foods  int     `csv:"foods"`
}

// csvStream appends gocsv records to one file, writing the header once.
type csvStream struct {
	f           *os.File
	wroteHeader bool
}

func openStream(dir, name string) (*csvStream, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvStream{f: f}, nil
}

func (s *csvStream) append(records any) error {
	if s.wroteHeader {
		return gocsv.MarshalWithoutHeaders(records, s.f)
	}
	if err := gocsv.Marshal(records, s.f); err != nil {
		return err
	}
	s.wroteHeader = true
	return nil
}

// OutputManager writes a run's CSV files and config snapshot into one
// directory. A nil manager is valid and discards everything.
type OutputManager struct {
	dir        string
	windows    *csvStream
	milestones *csvStream
}

// NewOutputManager prepares dir for output. Returns nil when dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	windows, err := openStream(dir, "telemetry.csv")
	if err != nil {
		return nil, err
	}
	milestones, err := openStream(dir, "milestones.csv")
	if err != nil {
		windows.f.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, windows: windows, milestones: milestones}, nil
}

// WriteConfig records the effective configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends one window row to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.windows.append([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WriteMilestone appends one stage change to milestones.csv.
func (om *OutputManager) WriteMilestone(m Milestone) error {
	if om == nil {
		return nil
	}
	if err := om.milestones.append([]Milestone{m}); err != nil {
		return fmt.Errorf("writing milestone: %w", err)
	}
	return nil
}

// Dir returns the output directory, empty when disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every output file.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.windows.f.Close(), om.milestones.f.Close())
}

// Package config provides configuration loading and access for the garden.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Scene       SceneConfig       `yaml:"scene"`
	Growth      GrowthConfig      `yaml:"growth"`
	Behavior    BehaviorConfig    `yaml:"behavior"`
	Movement    MovementConfig    `yaml:"movement"`
	Hunger      HungerConfig      `yaml:"hunger"`
	Eating      EatingConfig      `yaml:"eating"`
	Mood        MoodConfig        `yaml:"mood"`
	Food        FoodConfig        `yaml:"food"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Debug       DebugConfig       `yaml:"debug"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SceneConfig holds scene dimensions and display settings.
type SceneConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	PanelHeight int `yaml:"panel_height"` // Control strip below the scene (graphical mode only)
	TargetFPS   int `yaml:"target_fps"`
}

// GrowthConfig holds the ordered growth-stage bracket table.
type GrowthConfig struct {
	Stages []StageConfig `yaml:"stages"`
}

// StageConfig defines one growth stage bracket [min_age, max_age).
type StageConfig struct {
	Name      string  `yaml:"name"`
	Label     string  `yaml:"label"`
	MinAge    float64 `yaml:"min_age"`    // Seconds
	MaxAge    float64 `yaml:"max_age"`    // Seconds (0 = open-ended)
	Scale     float64 `yaml:"scale"`      // Display scale
	PixelSize int     `yaml:"pixel_size"` // Sprite pixel size, also drives eat radius
}

// BehaviorConfig holds behavior selection parameters.
type BehaviorConfig struct {
	IntervalMs      float64        `yaml:"interval_ms"`       // Behavior decision period
	Weights         []WeightConfig `yaml:"weights"`           // Enumeration order matters
	WalkPadding     float64        `yaml:"walk_padding"`      // Inset for random walk destinations
	HungryThreshold float64        `yaml:"hungry_threshold"`  // Below this hunger, seek food
	DanceDurationMs float64        `yaml:"dance_duration_ms"` // Dance countdown length
	DanceMoodChance float64        `yaml:"dance_mood_chance"` // Chance of a mood when a dance starts
	DistressChance  float64        `yaml:"distress_chance"`   // Chance of distress on arrival with no food
}

// WeightConfig is one bucket of the weighted activity table.
type WeightConfig struct {
	Activity string  `yaml:"activity"`
	Weight   float64 `yaml:"weight"`
}

// MovementConfig holds straight-line seeking parameters.
type MovementConfig struct {
	Speed           float64 `yaml:"speed"`            // Units per tick, not scaled by delta
	TargetThreshold float64 `yaml:"target_threshold"` // Arrival distance
}

// HungerConfig holds hunger decay parameters.
type HungerConfig struct {
	Max               float64 `yaml:"max"`
	DecreaseRate      float64 `yaml:"decrease_rate"`      // Hunger lost per tick interval
	TickIntervalMs    float64 `yaml:"tick_interval_ms"`   // Hunger accumulator period
	RedirectThreshold float64 `yaml:"redirect_threshold"` // Placing food below this hunger redirects the creature
}

// EatingConfig holds eating-state parameters.
type EatingConfig struct {
	DurationMs float64 `yaml:"duration_ms"` // Eating auto-reverts to idle after this
}

// MoodConfig holds periodic mood signal parameters.
type MoodConfig struct {
	IntervalMs    float64 `yaml:"interval_ms"`
	DistressBelow float64 `yaml:"distress_below"`
	ContentAbove  float64 `yaml:"content_above"`
}

// FoodConfig holds food kinds and auto-spawn settings.
type FoodConfig struct {
	Kinds               []FoodKindConfig `yaml:"kinds"`
	FallbackSatiety     float64          `yaml:"fallback_satiety"`       // Satiety for unknown kinds
	AutoSpawnIntervalMs float64          `yaml:"auto_spawn_interval_ms"` // 0 = disabled
	AutoSpawnMax        int              `yaml:"auto_spawn_max"`         // No auto-spawn when this many items exist
}

// FoodKindConfig defines one food kind.
type FoodKindConfig struct {
	Name    string  `yaml:"name"`
	Label   string  `yaml:"label"`
	Satiety float64 `yaml:"satiety"`
}

// SpawnConfig holds the fresh-creature defaults.
type SpawnConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Hunger float64 `yaml:"hunger"`
}

// PersistenceConfig holds save slot settings.
type PersistenceConfig struct {
	Backend        string  `yaml:"backend"` // file, sqlite or memory
	Path           string  `yaml:"path"`    // File or database path
	Slot           string  `yaml:"slot"`    // Named slot, overwritten on each save
	SaveIntervalMs float64 `yaml:"save_interval_ms"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowSec float64 `yaml:"window_sec"`
	OutputDir string  `yaml:"output_dir"` // Empty = CSV output disabled
}

// DebugConfig holds debug view parameters.
type DebugConfig struct {
	Addr              string  `yaml:"addr"` // Empty = disabled
	PublishIntervalMs float64 `yaml:"publish_interval_ms"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SceneW          float64
	SceneH          float64
	SaveInterval    time.Duration
	PublishInterval time.Duration
	FrameInterval   time.Duration
	Satiety         map[string]float64 // food kind -> satiety
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file; lists are replaced whole
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects tables the simulation cannot run with.
func (c *Config) validate() error {
	if len(c.Growth.Stages) == 0 {
		return fmt.Errorf("growth: at least one stage required")
	}
	for i, s := range c.Growth.Stages {
		if s.PixelSize <= 0 {
			return fmt.Errorf("growth: stage %q: pixel_size must be positive", s.Name)
		}
		if i > 0 && s.MinAge != c.Growth.Stages[i-1].MaxAge {
			return fmt.Errorf("growth: stage %q does not start where %q ends", s.Name, c.Growth.Stages[i-1].Name)
		}
	}
	if len(c.Behavior.Weights) == 0 {
		return fmt.Errorf("behavior: weights table is empty")
	}
	if c.Scene.Width <= 0 || c.Scene.Height <= 0 {
		return fmt.Errorf("scene: width and height must be positive")
	}
	if c.Persistence.SaveIntervalMs <= 0 {
		return fmt.Errorf("persistence: save_interval_ms must be positive")
	}
	switch c.Persistence.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("persistence: unknown backend %q", c.Persistence.Backend)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SceneW = float64(c.Scene.Width)
	c.Derived.SceneH = float64(c.Scene.Height)
	c.Derived.SaveInterval = time.Duration(c.Persistence.SaveIntervalMs * float64(time.Millisecond))
	c.Derived.PublishInterval = time.Duration(c.Debug.PublishIntervalMs * float64(time.Millisecond))

	fps := c.Scene.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameInterval = time.Second / time.Duration(fps)

	c.Derived.Satiety = make(map[string]float64, len(c.Food.Kinds))
	for _, k := range c.Food.Kinds {
		c.Derived.Satiety[k.Name] = k.Satiety
	}
}

// StageMaxAge returns the upper bound of a stage, +Inf for open-ended stages.
func (s StageConfig) StageMaxAge() float64 {
	if s.MaxAge <= 0 {
		return math.Inf(1)
	}
	return s.MaxAge
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Package config provides configuration loading and access for the orb simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Pattern selects the shape of the ideal orbit path.
type Pattern string

// Orbit patterns.
const (
	PatternCircular    Pattern = "circular"
	PatternElliptical  Pattern = "elliptical"
	PatternChaotic     Pattern = "chaotic"
	PatternFigureEight Pattern = "figure-eight"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Orbs      OrbsConfig      `yaml:"orbs"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Forces    ForcesConfig    `yaml:"forces"`
	Quality   QualityConfig   `yaml:"quality"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// OrbsConfig holds the orb cluster parameters accepted at construction.
type OrbsConfig struct {
	Count       int     `yaml:"count"`        // clamped to [1, 7]
	Radius      float64 `yaml:"radius"`       // orb body radius in pixels
	OrbitRadius float64 `yaml:"orbit_radius"` // base orbit radius in pixels
	Speed       float64 `yaml:"speed"`        // orbit speed multiplier
	Pattern     Pattern `yaml:"pattern"`
	Interaction bool    `yaml:"interaction"` // enable pointer hover/repulsion
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	Enabled  bool    `yaml:"enabled"`   // false = pure kinematic circular motion
	MaxDT    float64 `yaml:"max_dt"`    // per-step dt clamp in seconds
	MaxSpeed float64 `yaml:"max_speed"` // velocity magnitude clamp (pixels/s)
	Damping  float64 `yaml:"damping"`   // velocity damping rate (per second)
}

// ForcesConfig holds force model parameters.
type ForcesConfig struct {
	SpringStiffness   float64 `yaml:"spring_stiffness"`   // pull toward ideal orbit position
	GravityStrength   float64 `yaml:"gravity_strength"`   // center attraction scale
	CenterMass        float64 `yaml:"center_mass"`        // mass of the central body
	RepulsionStrength float64 `yaml:"repulsion_strength"` // pointer repulsion scale
	RepulsionWindow   float64 `yaml:"repulsion_window"`   // seconds a repulsion source stays live
	HoverLift         float64 `yaml:"hover_lift"`         // upward acceleration while hovered
	MinDistance       float64 `yaml:"min_distance"`       // inverse-square distance floor
}

// QualityConfig holds adaptive quality parameters.
// The score weights are tunable constants, not a contract; defaults follow
// the empirical 0.5/0.3/0.2 split.
type QualityConfig struct {
	Force        string  `yaml:"force"` // "", "quality", "balanced", "performance"
	FPSWeight    float64 `yaml:"fps_weight"`
	MemoryWeight float64 `yaml:"memory_weight"`
	DropsWeight  float64 `yaml:"drops_weight"`
}

// TelemetryConfig holds frame monitoring parameters.
type TelemetryConfig struct {
	WindowSize      int     `yaml:"window_size"`       // frame samples per metrics window
	DropThresholdMS float64 `yaml:"drop_threshold_ms"` // frame time counted as a drop
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	OrbRadius32    float32 // Orbs.Radius as float32
	OrbitRadius32  float32 // Orbs.OrbitRadius as float32
	GridCellSize   float32 // 2x the largest orb radius (broad-phase guarantee)
	CenterX        float32 // cluster center in screen space
	CenterY        float32
	FixedDT        float32 // headless step size (1 / target FPS)
	MaxDT32        float32
	MaxSpeed32     float32
	MinDistance32  float32
	RepulsionTTL32 float32
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.normalize()
	cfg.computeDerived()

	return cfg, nil
}

// normalize clamps and defaults loose values. Invalid input never surfaces an
// error; the simulation always starts with a usable configuration.
func (c *Config) normalize() {
	if c.Orbs.Count < 1 {
		c.Orbs.Count = 1
	}
	if c.Orbs.Count > 7 {
		c.Orbs.Count = 7
	}
	if c.Orbs.Radius <= 0 {
		c.Orbs.Radius = 12
	}
	if c.Orbs.OrbitRadius <= 0 {
		c.Orbs.OrbitRadius = 150
	}
	if c.Orbs.Speed <= 0 {
		c.Orbs.Speed = 1.0
	}
	switch c.Orbs.Pattern {
	case PatternCircular, PatternElliptical, PatternChaotic, PatternFigureEight:
	default:
		c.Orbs.Pattern = PatternCircular
	}
	if c.Physics.MaxDT <= 0 {
		c.Physics.MaxDT = 0.1
	}
	if c.Physics.MaxSpeed <= 0 {
		c.Physics.MaxSpeed = 600
	}
	if c.Forces.MinDistance <= 0 {
		c.Forces.MinDistance = 10
	}
	if c.Forces.RepulsionWindow <= 0 {
		c.Forces.RepulsionWindow = 0.5
	}
	if c.Telemetry.WindowSize < 1 {
		c.Telemetry.WindowSize = 60
	}
	if c.Telemetry.DropThresholdMS <= 0 {
		c.Telemetry.DropThresholdMS = 20
	}
	if c.Quality.FPSWeight+c.Quality.MemoryWeight+c.Quality.DropsWeight <= 0 {
		c.Quality.FPSWeight = 0.5
		c.Quality.MemoryWeight = 0.3
		c.Quality.DropsWeight = 0.2
	}
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}
	if c.Screen.Width <= 0 {
		c.Screen.Width = 800
	}
	if c.Screen.Height <= 0 {
		c.Screen.Height = 600
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.OrbRadius32 = float32(c.Orbs.Radius)
	c.Derived.OrbitRadius32 = float32(c.Orbs.OrbitRadius)
	// Cell size at twice the largest orb radius guarantees any overlapping
	// pair lands in the same or a bordering cell.
	c.Derived.GridCellSize = float32(c.Orbs.Radius) * 2
	c.Derived.CenterX = float32(c.Screen.Width) / 2
	c.Derived.CenterY = float32(c.Screen.Height) / 2
	c.Derived.FixedDT = 1 / float32(c.Screen.TargetFPS)
	c.Derived.MaxDT32 = float32(c.Physics.MaxDT)
	c.Derived.MaxSpeed32 = float32(c.Physics.MaxSpeed)
	c.Derived.MinDistance32 = float32(c.Forces.MinDistance)
	c.Derived.RepulsionTTL32 = float32(c.Forces.RepulsionWindow)
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

// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Population PopulationConfig `yaml:"population"`
	AI         AIConfig         `yaml:"ai"`
	Player     PlayerConfig     `yaml:"player"`
	Camera     CameraConfig     `yaml:"camera"`
	Scenery    SceneryConfig    `yaml:"scenery"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Balance    BalanceConfig    `yaml:"balance"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the playing field dimensions in world units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PopulationConfig holds world setup sizes and fixed capacities.
type PopulationConfig struct {
	Loops       int `yaml:"loops"`
	PlayerBugs  int `yaml:"player_bugs"`   // Bugs in the player's loop at start
	BugsPerLoop int `yaml:"bugs_per_loop"` // Bugs in every other loop at start
	MaxBugs     int `yaml:"max_bugs"`
	MaxLoops    int `yaml:"max_loops"`
}

// AIConfig holds rival loop aggressiveness (difficulty) settings.
type AIConfig struct {
	Speed     float64 `yaml:"speed"`
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	SpeedStep float64 `yaml:"speed_step"`
}

// PlayerConfig holds player loop control settings.
type PlayerConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`      // Units per frame while a direction key is held
	CenterOnStart bool    `yaml:"center_on_start"` // Place the player loop at arena center on reset
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Tilt      float64 `yaml:"tilt"`       // Elevation angle in radians
	ZoomSpeed float64 `yaml:"zoom_speed"` // Distance multiplier per frame while zooming in
	TiltSpeed float64 `yaml:"tilt_speed"` // Radians per frame
	FOV       float64 `yaml:"fov"`        // Vertical field of view in degrees
}

// SceneryConfig holds ground and prop generation parameters.
type SceneryConfig struct {
	TileSize    float64 `yaml:"tile_size"`
	Cacti       int     `yaml:"cacti"`
	NoiseScale  float64 `yaml:"noise_scale"`
	HeightScale float64 `yaml:"height_scale"`
}

// AudioConfig holds sound cue settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`
	MasterVolume float64 `yaml:"master_volume"` // 0 = silent, 1 = full scale
	CueGap       int     `yaml:"cue_gap"`       // Minimum frames between conversion cues
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulated time per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// BalanceConfig holds difficulty tuning parameters for cmd/balance.
type BalanceConfig struct {
	TargetShare float64 `yaml:"target_share"` // Desired passive-player share of bugs at the horizon
	Ticks       int     `yaml:"ticks"`
	Seeds       int     `yaml:"seeds"`
	MaxEvals    int     `yaml:"max_evals"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT            float64 // Seconds per simulation frame
	TicksPerStats int32   // Frames per telemetry window
	MinTilt       float64 // Lower camera elevation clamp
	MaxTilt       float64 // Upper camera elevation clamp
	InitialBugs   int     // Total bugs created by world setup
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the world cannot be built from.
func (c *Config) validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena must have positive size, got %gx%g", c.Arena.Width, c.Arena.Height)
	}
	p := c.Population
	if p.Loops < 1 {
		return fmt.Errorf("population.loops must be at least 1, got %d", p.Loops)
	}
	if p.Loops > p.MaxLoops {
		return fmt.Errorf("population.loops (%d) exceeds max_loops (%d)", p.Loops, p.MaxLoops)
	}
	if total := p.PlayerBugs + (p.Loops-1)*p.BugsPerLoop; total > p.MaxBugs {
		return fmt.Errorf("initial population (%d) exceeds max_bugs (%d)", total, p.MaxBugs)
	}
	if c.AI.MinSpeed > c.AI.MaxSpeed {
		return fmt.Errorf("ai.min_speed (%g) above ai.max_speed (%g)", c.AI.MinSpeed, c.AI.MaxSpeed)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)

	ticks := int32(c.Telemetry.StatsWindow / c.Derived.DT)
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerStats = ticks

	c.Derived.MinTilt = 0.1
	c.Derived.MaxTilt = math.Pi/2 - c.Derived.MinTilt
	c.Derived.InitialBugs = c.Population.PlayerBugs + (c.Population.Loops-1)*c.Population.BugsPerLoop
}

// ClampAISpeed restricts a difficulty value to the configured slider range.
func (c *Config) ClampAISpeed(v float64) float64 {
	return math.Max(c.AI.MinSpeed, math.Min(c.AI.MaxSpeed, v))
}

// SnapAISpeed rounds a slider value to the nearest SpeedStep above MinSpeed
// and clamps it to the slider range.
func (c *Config) SnapAISpeed(v float64) float64 {
	if c.AI.SpeedStep > 0 {
		steps := math.Round((v - c.AI.MinSpeed) / c.AI.SpeedStep)
		v = c.AI.MinSpeed + steps*c.AI.SpeedStep
	}
	return c.ClampAISpeed(v)
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

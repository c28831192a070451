// Package game wires the simulation, camera, scenery, telemetry and UI into
// a playable round with a start menu.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/bugloop/audio"
	"github.com/pthm-cable/bugloop/camera"
	"github.com/pthm-cable/bugloop/config"
	"github.com/pthm-cable/bugloop/mesh"
	"github.com/pthm-cable/bugloop/renderer"
	"github.com/pthm-cable/bugloop/scenery"
	"github.com/pthm-cable/bugloop/systems"
	"github.com/pthm-cable/bugloop/telemetry"
	"github.com/pthm-cable/bugloop/ui"
)

// State is the top-level screen the game is showing.
type State uint8

const (
	StateMenu State = iota
	StatePlaying
)

// String returns the display name for a State.
func (s State) String() string {
	if s == StatePlaying {
		return "playing"
	}
	return "menu"
}

const (
	bookmarkHistory = 10 // stats windows kept by the bookmark detector
	linesPerBug     = 24 // antennae and legs emitted per bug each frame
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	AISpeed        float64 // 0 = use config
	LogStats       bool    // Log window stats via slog
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // Empty disables CSV output
	Headless       bool    // Skip all raylib resources and start playing immediately
	StepsPerUpdate int
}

// Game holds the complete game state.
type Game struct {
	cfg   *config.Config
	rng   *rand.Rand
	world *systems.World

	// Per-frame primitives emitted by the simulation, and the static scenery
	batch        *mesh.Batch
	sceneryBatch *mesh.Batch

	camera  *camera.Camera
	scenery *scenery.Scenery

	// Rendering and sound (nil when headless)
	ground *renderer.GroundRenderer
	ui     *ui.Renderer
	sound  *audio.Manager

	// State
	state          State
	outcome        systems.Outcome
	aiSpeed        float64
	tick           int32
	clock          float64 // animation clock in seconds
	headless       bool
	stepsPerUpdate int

	// Player loop size at the end of the last frame, for conversion cues
	playerBugs  int
	lastCueTick int32

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// NewGame creates a game from cfg. Headless games start in StatePlaying with a
// passive player; windowed games start at the menu.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	aiSpeed := cfg.AI.Speed
	if opts.AISpeed > 0 {
		aiSpeed = opts.AISpeed
	}
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:              cfg,
		rng:              rand.New(rand.NewSource(opts.Seed)),
		batch:            mesh.NewBatch(cfg.Population.MaxBugs * linesPerBug),
		sceneryBatch:     mesh.NewBatch(64),
		camera:           camera.New(cfg.Camera.Distance, cfg.Camera.Tilt, cfg.Derived.MinTilt, cfg.Derived.MaxTilt),
		aiSpeed:          cfg.ClampAISpeed(aiSpeed),
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
		collector:        telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(bookmarkHistory),
		logStats:         opts.LogStats,
	}

	g.scenery = scenery.New(cfg.Scenery, cfg.Arena.Width, cfg.Arena.Height, opts.Seed)
	g.scenery.Draw(g.sceneryBatch)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if err := g.Reset(g.aiSpeed); err != nil {
		om.Close()
		return nil, err
	}

	if opts.Headless {
		g.state = StatePlaying
	} else {
		g.ground = renderer.NewGroundRenderer(g.scenery.Ground)
		g.ui = ui.NewRenderer()
		if cfg.Audio.Enabled {
			g.sound = audio.NewManager(cfg.Audio.SampleRate, cfg.Audio.MasterVolume)
			if err := g.sound.Initialize(); err != nil {
				slog.Warn("audio disabled", "error", err)
				g.sound = nil
			}
		}
	}

	return g, nil
}

// Reset builds a fresh world at the given difficulty and restarts the
// telemetry window. The game state is left unchanged.
func (g *Game) Reset(aiSpeed float64) error {
	g.aiSpeed = g.cfg.ClampAISpeed(aiSpeed)

	world, err := systems.NewWorld(systems.WorldConfigFrom(g.cfg, g.aiSpeed), g.rng)
	if err != nil {
		return fmt.Errorf("creating world: %w", err)
	}
	g.playerBugs = 0
	if player := world.PlayerLoop(); player >= 0 {
		if g.cfg.Player.CenterOnStart {
			world.PlaceLoop(player, world.Width/2, world.Height/2)
		}
		g.playerBugs = world.MemberCount(player)
	}

	g.world = world
	g.outcome = systems.OutcomePlaying
	g.camera.Reset()
	g.followPlayer()
	g.collector.Reset(g.tick, world)

	slog.Info("round reset",
		"ai_speed", g.aiSpeed,
		"loops", world.LoopCount(),
		"bugs", world.LiveBugs(),
	)
	return nil
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Tick returns the number of simulation frames run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// State returns the current screen.
func (g *Game) State() State {
	return g.state
}

// Outcome returns the result of the current round.
func (g *Game) Outcome() systems.Outcome {
	return g.outcome
}

// World returns the current simulation world.
func (g *Game) World() *systems.World {
	return g.world
}

// AISpeed returns the current difficulty.
func (g *Game) AISpeed() float64 {
	return g.aiSpeed
}

// Unload releases resources held by the game.
func (g *Game) Unload() {
	g.sound.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}

// followPlayer aims the camera at the player loop, if there is one.
func (g *Game) followPlayer() {
	if player := g.world.PlayerLoop(); player >= 0 {
		g.camera.Follow(g.world.Loop(player).Pos)
	}
}

// startRound resets the world at the chosen difficulty and starts playing.
func (g *Game) startRound() {
	if err := g.Reset(g.aiSpeed); err != nil {
		slog.Error("failed to start round", "error", err)
		return
	}
	g.state = StatePlaying
	slog.Info("round started", "ai_speed", g.aiSpeed, "tick", g.tick)
}

// backToMenu leaves the finished round running behind the menu.
func (g *Game) backToMenu() {
	g.state = StateMenu
	g.camera.Reset()
}

// outcomeTitle is the heading shown when a round ends.
func outcomeTitle(o systems.Outcome) string {
	switch o {
	case systems.OutcomeWon:
		return "You won!"
	case systems.OutcomeLost:
		return "You lost!"
	default:
		return ""
	}
}

// liveLoops counts loops with at least one member as of the last regroup.
func liveLoops(w *systems.World) int {
	n := 0
	for _, loop := range w.Loops() {
		if loop.MemberCount() > 0 {
			n++
		}
	}
	return n
}

package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/bugloop/audio"
	"github.com/pthm-cable/bugloop/config"
	"github.com/pthm-cable/bugloop/systems"
	"github.com/pthm-cable/bugloop/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	g, err := NewGame(cfg, opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestNewGameHeadless(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 1})

	if g.State() != StatePlaying {
		t.Errorf("expected headless game to start playing, got %s", g.State())
	}
	if g.Tick() != 0 {
		t.Errorf("expected tick 0, got %d", g.Tick())
	}
	if got := g.World().LiveBugs(); got != cfg.Derived.InitialBugs {
		t.Errorf("expected %d bugs, got %d", cfg.Derived.InitialBugs, got)
	}
	if g.AISpeed() != cfg.AI.Speed {
		t.Errorf("expected config AI speed %f, got %f", cfg.AI.Speed, g.AISpeed())
	}

	player := g.World().Loop(g.World().PlayerLoop())
	if player.Pos.X != cfg.Arena.Width/2 || player.Pos.Y != cfg.Arena.Height/2 {
		t.Errorf("expected player at arena center, got (%f, %f)", player.Pos.X, player.Pos.Y)
	}
	if g.camera.LookAt != player.Pos {
		t.Errorf("expected camera on player %v, got %v", player.Pos, g.camera.LookAt)
	}
}

func TestStepAdvancesWorld(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 2, StepsPerUpdate: 5})

	for i := 0; i < 4; i++ {
		g.UpdateHeadless()
	}

	if g.Tick() != 20 {
		t.Errorf("expected tick 20, got %d", g.Tick())
	}
	if math.Abs(g.clock-20*cfg.Derived.DT) > 1e-9 {
		t.Errorf("expected clock %f, got %f", 20*cfg.Derived.DT, g.clock)
	}
	if g.batch.Len() == 0 {
		t.Error("expected the last frame's primitives in the batch")
	}

	total := 0
	for i := 0; i < g.World().LoopCount(); i++ {
		total += len(g.World().Members(i))
	}
	if total != cfg.Derived.InitialBugs {
		t.Errorf("expected %d bugs across loops, got %d", cfg.Derived.InitialBugs, total)
	}
}

func TestStepRegroupsConversions(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 12})
	w := g.World()

	// Stack every loop and bug on one spot so the frame converts bugs
	cx, cy := w.Width/2, w.Height/2
	for i := 0; i < w.LoopCount(); i++ {
		w.PlaceLoop(i, cx, cy)
	}
	for i := range w.Bugs() {
		w.Bugs()[i].Pos.X, w.Bugs()[i].Pos.Y = cx, cy
	}

	g.Step()

	if w.Conversions() == 0 {
		t.Fatal("expected conversions between stacked loops")
	}
	if w.IndexState() != systems.IndexClean {
		t.Error("expected conversions regrouped within the frame")
	}

	total := 0
	for i := 0; i < w.LoopCount(); i++ {
		total += w.MemberCount(i)
	}
	if total != cfg.Derived.InitialBugs {
		t.Errorf("member counts sum to %d, want %d", total, cfg.Derived.InitialBugs)
	}
	if player := w.PlayerLoop(); g.playerBugs != w.MemberCount(player) {
		t.Errorf("cue tracker saw %d player bugs, want current count %d", g.playerBugs, w.MemberCount(player))
	}
	if g.perfCollector.Stats().PhaseAvg[telemetry.PhaseGrouping] <= 0 {
		t.Error("expected the regroup timed under the grouping phase")
	}
}

func TestResetClampsDifficulty(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 3})

	for i := 0; i < 10; i++ {
		g.Step()
	}
	if err := g.Reset(100); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if g.AISpeed() != cfg.AI.MaxSpeed || g.World().AISpeed != cfg.AI.MaxSpeed {
		t.Errorf("expected AI speed clamped to %f, got game %f world %f",
			cfg.AI.MaxSpeed, g.AISpeed(), g.World().AISpeed)
	}
	if g.World().Conversions() != 0 {
		t.Errorf("expected fresh world, got %d conversions", g.World().Conversions())
	}
	if g.Tick() != 10 {
		t.Errorf("expected tick to keep counting across rounds, got %d", g.Tick())
	}
}

func TestApplyControls(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name   string
		c      Controls
		dx, dy float64
	}{
		{"up is north", Controls{Up: true}, 0, 2},
		{"down is south", Controls{Down: true}, 0, -2},
		{"diagonal", Controls{Left: true, Up: true}, -2, 2},
		{"opposites cancel", Controls{Left: true, Right: true}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newHeadless(t, cfg, Options{Seed: 4})
			player := g.World().Loop(g.World().PlayerLoop())
			before := player.Pos

			g.applyControls(tt.c)

			if player.Pos.X-before.X != tt.dx || player.Pos.Y-before.Y != tt.dy {
				t.Errorf("expected move (%f, %f), got (%f, %f)",
					tt.dx, tt.dy, player.Pos.X-before.X, player.Pos.Y-before.Y)
			}
		})
	}
}

func TestCameraControls(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 5})

	g.applyControls(Controls{ZoomIn: true})
	if want := cfg.Camera.Distance * cfg.Camera.ZoomSpeed; math.Abs(g.camera.Distance-want) > 1e-9 {
		t.Errorf("expected zoomed distance %f, got %f", want, g.camera.Distance)
	}
	g.applyControls(Controls{ZoomOut: true})
	if math.Abs(g.camera.Distance-cfg.Camera.Distance) > 1e-9 {
		t.Errorf("expected distance back to %f, got %f", cfg.Camera.Distance, g.camera.Distance)
	}

	for i := 0; i < 50; i++ {
		g.applyControls(Controls{TiltUp: true})
	}
	if g.camera.Tilt != cfg.Derived.MaxTilt {
		t.Errorf("expected tilt clamped to %f, got %f", cfg.Derived.MaxTilt, g.camera.Tilt)
	}
	for i := 0; i < 50; i++ {
		g.applyControls(Controls{TiltDown: true})
	}
	if g.camera.Tilt != cfg.Derived.MinTilt {
		t.Errorf("expected tilt clamped to %f, got %f", cfg.Derived.MinTilt, g.camera.Tilt)
	}
}

func TestAttractDrift(t *testing.T) {
	tests := []struct {
		name   string
		t      float64
		dx, dy float64
	}{
		{"start", 0, 1.2, 0},
		{"quarter turn", math.Pi / 2, 0, 1.2},
		{"half turn", math.Pi, -1.2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := attractDrift(tt.t)
			if math.Abs(dx-tt.dx) > 1e-9 || math.Abs(dy-tt.dy) > 1e-9 {
				t.Errorf("attractDrift(%f) = (%f, %f), want (%f, %f)", tt.t, dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestAttractMovesPlayerAndCamera(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 6})
	player := g.World().Loop(g.World().PlayerLoop())
	before := player.Pos

	g.attract(math.Pi / 2)

	if math.Abs(player.Pos.Y-before.Y-1.2) > 1e-9 || math.Abs(player.Pos.X-before.X) > 1e-9 {
		t.Errorf("expected player to drift north by 1.2, moved (%f, %f)",
			player.Pos.X-before.X, player.Pos.Y-before.Y)
	}
	if math.Abs(g.camera.Distance-100) > 1e-9 {
		t.Errorf("expected camera distance 100, got %f", g.camera.Distance)
	}
}

func TestOutcomeTrackedOnlyWhilePlaying(t *testing.T) {
	cfg := testConfig(t)
	cfg.Population.PlayerBugs = 0

	g := newHeadless(t, cfg, Options{Seed: 7})
	g.state = StateMenu
	g.Step()
	if g.Outcome() != systems.OutcomePlaying {
		t.Errorf("expected no outcome behind the menu, got %s", g.Outcome())
	}

	g.state = StatePlaying
	g.Step()
	if g.Outcome() != systems.OutcomeLost {
		t.Errorf("expected empty player loop to lose, got %s", g.Outcome())
	}

	g.backToMenu()
	g.startRound()
	if g.State() != StatePlaying || g.Outcome() != systems.OutcomePlaying {
		t.Errorf("expected a fresh round, got state %s outcome %s", g.State(), g.Outcome())
	}
}

func TestOutcomeTitle(t *testing.T) {
	if got := outcomeTitle(systems.OutcomeWon); got != "You won!" {
		t.Errorf("won title %q", got)
	}
	if got := outcomeTitle(systems.OutcomeLost); got != "You lost!" {
		t.Errorf("lost title %q", got)
	}
	if got := outcomeTitle(systems.OutcomePlaying); got != "" {
		t.Errorf("expected no title while playing, got %q", got)
	}
}

func TestTelemetryWindows(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	// 3 ticks per window at 60 fps
	g := newHeadless(t, cfg, Options{Seed: 8, StatsWindowSec: 0.055, OutputDir: dir})

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for i := 0; i < 9; i++ {
		g.Step()
	}

	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	for i, w := range windows {
		if w.WindowEndTick != int32(3*(i+1)) {
			t.Errorf("window %d ends at %d, want %d", i, w.WindowEndTick, 3*(i+1))
		}
		if w.LiveBugs != cfg.Derived.InitialBugs {
			t.Errorf("window %d has %d bugs, want %d", i, w.LiveBugs, cfg.Derived.InitialBugs)
		}
	}

	g.Unload()
	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s in output dir: %v", name, err)
		}
	}
}

func TestConversionCues(t *testing.T) {
	cfg := testConfig(t)
	g := newHeadless(t, cfg, Options{Seed: 9})
	n := g.playerBugs

	steps := []struct {
		name    string
		tick    int32
		state   State
		last    int // player size recorded for the previous frame
		wantCue bool
		cue     audio.Cue
	}{
		{"gain", 10, StatePlaying, n - 3, true, audio.CueGain},
		{"inside gap", 12, StatePlaying, n + 1, false, 0},
		{"loss", 20, StatePlaying, n + 1, true, audio.CueLoss},
		{"unchanged", 40, StatePlaying, n, false, 0},
		{"menu is quiet", 50, StateMenu, n - 1, false, 0},
	}

	for _, s := range steps {
		g.tick = s.tick
		g.state = s.state
		g.playerBugs = s.last

		cue, played := g.updateCues()
		if played != s.wantCue || (played && cue != s.cue) {
			t.Errorf("%s: got cue %s played %v, want %s played %v", s.name, cue, played, s.cue, s.wantCue)
		}
		if g.playerBugs != n {
			t.Errorf("%s: expected tracked size %d, got %d", s.name, n, g.playerBugs)
		}
	}
}

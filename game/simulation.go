package game

import (
	"log/slog"

	"github.com/pthm-cable/bugloop/audio"
	"github.com/pthm-cable/bugloop/systems"
	"github.com/pthm-cable/bugloop/telemetry"
)

// Step runs one simulation frame: index rebuild, loop AI, bug movement and
// conversions, then outcome and telemetry bookkeeping. Conversions are
// regrouped before bookkeeping so it reads current member counts. The
// frame's primitives are left in the batch for Draw.
func (g *Game) Step() {
	g.perfCollector.StartTick()
	g.batch.Reset()

	g.perfCollector.StartPhase(telemetry.PhaseGrouping)
	if g.world.IndexState() == systems.IndexDirty {
		g.world.RebuildIndex()
	}

	g.perfCollector.StartPhase(telemetry.PhaseLoops)
	g.world.StepLoops(g.batch)

	g.perfCollector.StartPhase(telemetry.PhaseBugs)
	g.world.MoveBugs(g.batch, g.clock)

	g.perfCollector.StartPhase(telemetry.PhaseCollision)
	g.world.Collide()

	g.perfCollector.StartPhase(telemetry.PhaseGrouping)
	if g.world.IndexState() == systems.IndexDirty {
		g.world.RebuildIndex()
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	g.clock += g.cfg.Derived.DT
	g.updateOutcome()
	g.updateCues()
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// UpdateHeadless runs StepsPerUpdate frames without input or drawing.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// updateOutcome evaluates the round and logs the first frame it is decided.
// The outcome is only tracked while playing; the menu's attract round never ends.
func (g *Game) updateOutcome() {
	if g.state != StatePlaying || g.outcome != systems.OutcomePlaying {
		return
	}
	g.outcome = systems.Evaluate(g.world)
	if g.outcome == systems.OutcomePlaying {
		return
	}

	if g.outcome == systems.OutcomeWon {
		g.sound.Play(audio.CueWin)
	} else {
		g.sound.Play(audio.CueLose)
	}

	slog.Info("game over",
		"outcome", g.outcome.String(),
		"tick", g.tick,
		"player_share", systems.PlayerShare(g.world),
		"ai_speed", g.aiSpeed,
	)
}

// updateCues tracks the player loop's size and picks a gain or loss cue when
// it changed this frame, at most once every CueGap frames and only while
// playing. Returns the cue played, if any.
func (g *Game) updateCues() (audio.Cue, bool) {
	player := g.world.PlayerLoop()
	if player < 0 {
		return 0, false
	}
	n := g.world.MemberCount(player)
	delta := n - g.playerBugs
	g.playerBugs = n

	if g.state != StatePlaying || delta == 0 || g.tick-g.lastCueTick < int32(g.cfg.Audio.CueGap) {
		return 0, false
	}
	g.lastCueTick = g.tick

	cue := audio.CueLoss
	if delta > 0 {
		cue = audio.CueGain
	}
	g.sound.Play(cue)
	return cue, true
}

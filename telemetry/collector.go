package telemetry

import "github.com/pthm-cable/bugloop/systems"

// Collector accumulates conversions within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick    int32
	conversionsAtStart int

	sizes []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Reset starts a fresh window at tick for a newly created world.
func (c *Collector) Reset(tick int32, w *systems.World) {
	c.windowStartTick = tick
	c.conversionsAtStart = w.Conversions()
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush samples the world, produces a WindowStats and starts the next window.
// A world left with pending conversions is regrouped first.
func (c *Collector) Flush(currentTick int32, w *systems.World) WindowStats {
	if w.IndexState() == systems.IndexDirty {
		w.RebuildIndex()
	}

	conversions := w.Conversions() - c.conversionsAtStart
	elapsed := float64(currentTick-c.windowStartTick) * c.dt

	var rate float64
	if elapsed > 0 {
		rate = float64(conversions) / elapsed
	}

	player := w.PlayerLoop()
	playerBugs := 0
	largestRival := 0
	c.sizes = c.sizes[:0]
	for i, loop := range w.Loops() {
		n := loop.MemberCount()
		if n == 0 {
			continue
		}
		c.sizes = append(c.sizes, float64(n))
		if i == player {
			playerBugs = n
		} else if n > largestRival {
			largestRival = n
		}
	}
	mean, std, p50, largest := ComputeSizeStats(c.sizes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		AISpeed:         w.AISpeed,

		LiveBugs:    w.LiveBugs(),
		LiveLoops:   len(c.sizes),
		PlayerBugs:  playerBugs,
		PlayerShare: systems.PlayerShare(w),

		Conversions:    conversions,
		ConversionRate: rate,

		LoopSizeMean: mean,
		LoopSizeStd:  std,
		LoopSizeP50:  p50,
		LoopSizeMax:  largest,

		LargestRival: largestRival,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.conversionsAtStart = w.Conversions()

	return stats
}

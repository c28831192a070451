package systems

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// twoTouchingLoops builds loops a (2 bugs) and b (1 bug) whose first bugs overlap.
func twoTouchingLoops(t *testing.T, rng *scriptedRand) (w *World, a, b int) {
	t.Helper()
	w = newEmptyWorld(t, 500, 500, rng)
	a = addLoopAt(t, w, 200, 200, 2)
	b = addLoopAt(t, w, 201, 200, 1)
	w.RebuildIndex()

	// Keep the second member of a far from everything
	w.bugs[1].Pos = r3.Vec{X: 100, Y: 100, Z: 1}
	return w, a, b
}

func TestCollideLoopsConversion(t *testing.T) {
	tests := []struct {
		name      string
		draws     []float64
		wantLoops [3]int // loop of each bug afterwards
		converted int    // bug index that changed loop, or -1
	}{
		{
			name:      "larger loop wins",
			draws:     []float64{0.05, 0.0},
			wantLoops: [3]int{0, 0, 0},
			converted: 2,
		},
		{
			name:      "smaller loop wins",
			draws:     []float64{0.05, 0.99},
			wantLoops: [3]int{1, 0, 1},
			converted: 0,
		},
		{
			name:      "no conversion roll",
			draws:     []float64{0.5},
			wantLoops: [3]int{0, 0, 1},
			converted: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &scriptedRand{fallback: 0.99}
			w, a, b := twoTouchingLoops(t, rng)
			for i := range w.bugs {
				w.bugs[i].ZVel = -0.5
			}
			rng.values = tt.draws

			w.CollideLoops(a, b)

			for i, want := range tt.wantLoops {
				if w.bugs[i].Loop != want {
					t.Errorf("bug %d loop = %d, want %d", i, w.bugs[i].Loop, want)
				}
			}

			if tt.converted < 0 {
				if w.Conversions() != 0 {
					t.Errorf("conversions = %d, want 0", w.Conversions())
				}
				if w.IndexState() != IndexClean {
					t.Error("index should stay clean without conversion")
				}
				return
			}

			bug := w.bugs[tt.converted]
			if bug.ZVel != 1 {
				t.Errorf("converted bug zvel = %g, want 1", bug.ZVel)
			}
			if bug.Scale != 1.25 {
				t.Errorf("converted bug scale = %g, want 1.25", bug.Scale)
			}
			if w.Conversions() != 1 {
				t.Errorf("conversions = %d, want 1", w.Conversions())
			}
			if w.IndexState() != IndexDirty {
				t.Error("conversion should mark the index dirty")
			}
		})
	}
}

func TestCollideLoopsIgnoresDistantBugs(t *testing.T) {
	rng := &scriptedRand{fallback: 0}
	w, a, b := twoTouchingLoops(t, rng)
	w.bugs[2].Pos = r3.Vec{X: 203, Y: 200, Z: 1} // planar distance 3

	w.CollideLoops(a, b)

	if w.Conversions() != 0 {
		t.Errorf("conversions = %d, want 0 for bugs 3 units apart", w.Conversions())
	}
	if rng.next != 0 {
		t.Errorf("consumed %d draws, want none without contact", rng.next)
	}
}

func TestCollideLoopsUsesPlanarDistance(t *testing.T) {
	rng := &scriptedRand{values: []float64{0.0, 0.0}, fallback: 0.99}
	w, a, b := twoTouchingLoops(t, rng)
	w.bugs[0].Pos.Z = 30

	w.CollideLoops(a, b)

	if w.bugs[2].Loop != a {
		t.Error("bugs overlapping on the ground plane should touch regardless of height")
	}
}

func TestCollideLoopsEmptyLoop(t *testing.T) {
	rng := &scriptedRand{fallback: 0}
	w := newEmptyWorld(t, 500, 500, rng)
	a := addLoopAt(t, w, 200, 200, 1)
	b := addLoopAt(t, w, 200, 200, 0)
	w.RebuildIndex()

	w.CollideLoops(a, b)
	w.CollideLoops(b, a)

	if w.Conversions() != 0 || w.bugs[0].Loop != a {
		t.Error("collision with an empty loop should do nothing")
	}
}

func TestCollideSkipsPairsAlreadyShared(t *testing.T) {
	// Loop a's two bugs both overlap loop b's single bug. The first contact
	// moves b's bug into a; the second pair then shares a loop and is skipped
	// without drawing, so no second pop or growth is applied.
	rng := &scriptedRand{fallback: 0.0}
	w := newEmptyWorld(t, 500, 500, rng)
	a := addLoopAt(t, w, 200, 200, 2)
	b := addLoopAt(t, w, 200, 200, 1)
	w.RebuildIndex()
	rng.values, rng.next = []float64{0.05, 0.0}, 0

	w.CollideLoops(a, b)

	if w.Conversions() != 1 {
		t.Errorf("conversions = %d, want 1", w.Conversions())
	}
	if w.bugs[2].Loop != a {
		t.Errorf("bug 2 loop = %d, want %d", w.bugs[2].Loop, a)
	}
	if w.bugs[2].Scale != 1.25 {
		t.Errorf("bug 2 scale = %g, want 1.25 after a single conversion", w.bugs[2].Scale)
	}
	if rng.next != 2 {
		t.Errorf("consumed %d draws, want 2", rng.next)
	}
}

func TestCollideFollowsCurrentLoop(t *testing.T) {
	// Three single-bug loops stacked on one spot. Pair (a, b) moves a's bug
	// into b. Pair (a, c) still sees that bug in a's member view; when it
	// wins, c's bug must join b, the loop the winner is actually in.
	rng := &scriptedRand{fallback: 0.99}
	w := newEmptyWorld(t, 500, 500, rng)
	a := addLoopAt(t, w, 200, 200, 1)
	b := addLoopAt(t, w, 200, 200, 1)
	c := addLoopAt(t, w, 200, 200, 1)
	w.RebuildIndex()
	rng.values, rng.next = []float64{0.05, 0.99, 0.05, 0.0}, 0

	w.Collide()

	for i, want := range []int{b, b, b} {
		if w.bugs[i].Loop != want {
			t.Errorf("bug %d loop = %d, want %d", i, w.bugs[i].Loop, want)
		}
	}
	if w.Conversions() != 2 {
		t.Errorf("conversions = %d, want 2", w.Conversions())
	}

	w.RebuildIndex()
	if w.MemberCount(a) != 0 || w.MemberCount(c) != 0 || w.MemberCount(b) != 3 {
		t.Errorf("member counts a=%d b=%d c=%d, want 0 3 0",
			w.MemberCount(a), w.MemberCount(b), w.MemberCount(c))
	}
}

func TestCollideConservesBugs(t *testing.T) {
	rng := &scriptedRand{fallback: 0.05}
	w := newEmptyWorld(t, 500, 500, rng)
	for i := 0; i < 4; i++ {
		addLoopAt(t, w, 250, 250, 5)
	}
	w.RebuildIndex()

	w.Collide()
	w.RebuildIndex()

	total := 0
	for i := range w.loops {
		total += w.MemberCount(i)
	}
	if total != 20 || w.LiveBugs() != 20 {
		t.Errorf("bug total = %d (live %d), want 20", total, w.LiveBugs())
	}
	if w.Conversions() == 0 {
		t.Error("expected conversions between fully overlapping loops")
	}
}

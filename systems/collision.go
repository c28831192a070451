package systems

// Conversion constants
const (
	contactDistSq    = 4.0 // bugs within 2 units touch
	conversionChance = 0.1
	conversionPop    = 1.0 // vertical kick given to a converted bug
	conversionGrowth = 0.25
)

// Collide tests every unordered pair of loops for touching bugs.
// Conversions mark the index dirty; member views stay as they were at the
// start of the pass until the next rebuild.
func (w *World) Collide() {
	w.ensureIndex()
	for a := 0; a < len(w.loops)-1; a++ {
		for b := a + 1; b < len(w.loops); b++ {
			w.CollideLoops(a, b)
		}
	}
}

// CollideLoops checks every bug of loop a against every bug of loop b. On
// contact there is a conversionChance of a conversion; the larger loop is
// more likely to win. The win probability uses the populations at entry.
// The loser joins the winner's current loop, which differs from a or b when
// an earlier pair this pass already converted a bug still in these views.
func (w *World) CollideLoops(a, b int) {
	countA := w.loops[a].Members.Count
	countB := w.loops[b].Members.Count
	if countA == 0 || countB == 0 {
		return
	}
	probA := float64(countA) / float64(countA+countB)

	membersB := w.memberView(b)
	for _, i := range w.memberView(a) {
		for _, j := range membersB {
			bugA, bugB := &w.bugs[i], &w.bugs[j]
			// Already on the same side after an earlier conversion this pass
			if bugA.Loop == bugB.Loop {
				continue
			}
			if planarDistSq(bugA.Pos, bugB.Pos) >= contactDistSq {
				continue
			}
			if w.rng.Float64() >= conversionChance {
				continue
			}

			if w.rng.Float64() < probA {
				w.moveBugToLoop(j, bugA.Loop)
			} else {
				w.moveBugToLoop(i, bugB.Loop)
			}
		}
	}
}

// moveBugToLoop reassigns a bug and gives it a visible pop.
func (w *World) moveBugToLoop(bug, loop int) {
	b := &w.bugs[bug]
	b.Loop = loop
	b.ZVel = conversionPop
	b.Scale += conversionGrowth
	w.index = IndexDirty
	w.conversions++
}

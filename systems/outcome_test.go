package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		player    int
		rivals    []int
		want      Outcome
		wantShare float64
	}{
		{"player wiped out", 0, []int{10, 5}, OutcomeLost, 0},
		{"even fight", 10, []int{10}, OutcomePlaying, 0.5},
		{"just short of winning", 79, []int{21}, OutcomePlaying, 0.79},
		{"exactly four fifths", 80, []int{20}, OutcomeWon, 0.8},
		{"everything captured", 30, []int{0, 0}, OutcomeWon, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEmptyWorld(t, 500, 500, rand.New(rand.NewSource(1)))
			player := addLoopAt(t, w, 250, 250, tt.player)
			w.loops[player].IsPlayerControlled = true
			for _, n := range tt.rivals {
				addLoopAt(t, w, 100, 100, n)
			}

			if got := Evaluate(w); got != tt.want {
				t.Errorf("Evaluate = %v, want %v", got, tt.want)
			}
			if got := PlayerShare(w); math.Abs(got-tt.wantShare) > eps {
				t.Errorf("PlayerShare = %g, want %g", got, tt.wantShare)
			}
		})
	}
}

func TestEvaluateWithoutPlayer(t *testing.T) {
	w := newEmptyWorld(t, 500, 500, rand.New(rand.NewSource(1)))
	addLoopAt(t, w, 250, 250, 3)

	if got := Evaluate(w); got != OutcomePlaying {
		t.Errorf("Evaluate = %v, want playing", got)
	}
	if got := PlayerShare(w); got != 0 {
		t.Errorf("PlayerShare = %g, want 0", got)
	}
}

func TestOutcomeString(t *testing.T) {
	for o, want := range map[Outcome]string{
		OutcomePlaying: "playing",
		OutcomeLost:    "lost",
		OutcomeWon:     "won",
	} {
		if o.String() != want {
			t.Errorf("%d.String() = %q, want %q", o, o.String(), want)
		}
	}
}

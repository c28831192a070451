package systems

// Outcome is the state of a round from the player's point of view.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeLost
	OutcomeWon
)

// WinShare is the fraction of all bugs the player's loop must hold to win.
const WinShare = 0.8

// String returns the display name for an Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeLost:
		return "lost"
	case OutcomeWon:
		return "won"
	default:
		return "playing"
	}
}

// Evaluate reports whether the player has lost every bug or captured at
// least WinShare of them.
func Evaluate(w *World) Outcome {
	player := w.PlayerLoop()
	if player < 0 {
		return OutcomePlaying
	}

	w.ensureIndex()
	n := w.MemberCount(player)
	switch {
	case n <= 0:
		return OutcomeLost
	case float64(n) >= WinShare*float64(w.LiveBugs()):
		return OutcomeWon
	default:
		return OutcomePlaying
	}
}

// PlayerShare returns the player's fraction of all bugs, or 0 with no player.
func PlayerShare(w *World) float64 {
	player := w.PlayerLoop()
	if player < 0 || w.LiveBugs() == 0 {
		return 0
	}
	w.ensureIndex()
	return float64(w.MemberCount(player)) / float64(w.LiveBugs())
}

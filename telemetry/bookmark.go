package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkLoopEliminated BookmarkType = "loop_eliminated"
	BookmarkPlayerSurge    BookmarkType = "player_surge"
	BookmarkPlayerCollapse BookmarkType = "player_collapse"
	BookmarkRivalOvertakes BookmarkType = "rival_overtakes"
	BookmarkStalemate      BookmarkType = "stalemate"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects turning points in a round.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	last              *WindowStats
	recentPlayerPeak  int // peak player loop size in recent history
	quietWindowsCount int // consecutive windows without conversions
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3 // minimum for a meaningful rolling average
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.last != nil {
		// Loop eliminated: fewer loops hold bugs than last window
		if b := bd.checkLoopEliminated(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Rival overtakes: the largest rival outgrew the player since last window
		if b := bd.checkRivalOvertakes(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Player surge: share jumped well above the rolling average
	if b := bd.checkPlayerSurge(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Player collapse: dropped >30% from recent peak
	if b := bd.checkPlayerCollapse(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// Stalemate: no conversions for 5 windows
	if b := bd.checkStalemate(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	last := stats
	bd.last = &last

	if stats.PlayerBugs > bd.recentPlayerPeak {
		bd.recentPlayerPeak = stats.PlayerBugs
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkLoopEliminated(stats WindowStats) *Bookmark {
	lost := bd.last.LiveLoops - stats.LiveLoops
	if lost <= 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkLoopEliminated,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d loop(s) eliminated, %d remain", lost, stats.LiveLoops),
	}
}

func (bd *BookmarkDetector) checkRivalOvertakes(stats WindowStats) *Bookmark {
	wasAhead := bd.last.PlayerBugs >= bd.last.LargestRival
	if !wasAhead || stats.LargestRival <= stats.PlayerBugs {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkRivalOvertakes,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Largest rival (%d bugs) overtook the player (%d bugs)", stats.LargestRival, stats.PlayerBugs),
	}
}

func (bd *BookmarkDetector) checkPlayerSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	// Calculate rolling average share
	var total float64
	for _, h := range history {
		total += h.PlayerShare
	}
	avgShare := total / float64(len(history))

	if stats.PlayerShare-avgShare >= 0.1 {
		return &Bookmark{
			Type:        BookmarkPlayerSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Player share %.2f is %.2f above average (%.2f)", stats.PlayerShare, stats.PlayerShare-avgShare, avgShare),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPlayerCollapse(stats WindowStats) *Bookmark {
	if bd.recentPlayerPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.PlayerBugs)/float64(bd.recentPlayerPeak)
	if dropPercent > 0.30 && stats.PlayerBugs < bd.recentPlayerPeak-10 {
		// Reset peak after collapse
		oldPeak := bd.recentPlayerPeak
		bd.recentPlayerPeak = stats.PlayerBugs

		return &Bookmark{
			Type:        BookmarkPlayerCollapse,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Player loop dropped %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.PlayerBugs),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStalemate(stats WindowStats) *Bookmark {
	if stats.Conversions > 0 || stats.LiveLoops < 2 {
		bd.quietWindowsCount = 0
		return nil
	}

	bd.quietWindowsCount++
	if bd.quietWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStalemate,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("No conversions between %d loops over 5 windows", stats.LiveLoops),
		}
	}

	return nil
}

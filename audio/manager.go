// Package audio synthesizes short sound cues for conversions and round
// outcomes and plays them through the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Cue identifies a sound effect.
type Cue uint8

const (
	CueGain Cue = iota // player's loop won bugs
	CueLoss            // player's loop lost bugs
	CueWin
	CueLose
)

// String returns the display name for a Cue.
func (c Cue) String() string {
	switch c {
	case CueGain:
		return "gain"
	case CueLoss:
		return "loss"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	default:
		return "unknown"
	}
}

// Manager mixes cues onto the speaker. A nil *Manager is valid and silent,
// as is one that was never initialized.
type Manager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// NewManager creates a manager for the given sample rate and master volume.
func NewManager(sampleRate int, volume float64) *Manager {
	return &Manager{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("opening speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play starts cue on top of whatever is already playing.
func (m *Manager) Play(cue Cue) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	s := Effect(cue, m.rate, m.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything and releases the speaker.
func (m *Manager) Close() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

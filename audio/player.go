// Package audio plays short synthesized cues for search and input events.
//
// Sound is optional: a Player that failed to open the output device, or the
// Silent player, accepts every call and does nothing.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrAudioInit wraps failures opening the output device
var ErrAudioInit = errors.New("audio: init failed")

// Config holds output and volume settings
type Config struct {
	SampleRate   int
	MasterVolume float64         // 0.0 - 1.0
	CueVolumes   map[Cue]float64 // Missing entries play at 1.0
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		MasterVolume: 0.5,
		CueVolumes: map[Cue]float64{
			CueVisit: 0.3,
			CuePath:  0.6,
		},
	}
}

func (c Config) cueVolume(cue Cue) float64 {
	if v, ok := c.CueVolumes[cue]; ok {
		return v
	}
	return 1.0
}

// Player receives cues from the host loop
type Player interface {
	Play(Cue)
	Close()
}

// Silent is a Player that drops every cue
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Close()   {}

// SoundManager mixes cues onto the speaker
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	logger      *slog.Logger
	mixer       *beep.Mixer
	initialized bool
	played      [cueCount]int
}

// NewSoundManager creates a manager; Initialize opens the device
func NewSoundManager(cfg Config, logger *slog.Logger) *SoundManager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SoundManager{
		cfg:    cfg,
		logger: logger,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker with a 100ms buffer and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("%w: %w", ErrAudioInit, err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Debug("audio initialized", "sample_rate", sm.cfg.SampleRate)
	return nil
}

// Play queues c; a no-op before Initialize or after Close
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Synthesize(c, sm.cfg)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[c]++
}

// Played returns how many times c reached the mixer
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return sm.played[c]
}

// Close drops pending cues. The speaker itself stays open.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Open returns a ready SoundManager, or Silent when the device is unavailable
func Open(cfg Config, logger *slog.Logger) Player {
	sm := NewSoundManager(cfg, logger)
	if err := sm.Initialize(); err != nil {
		sm.logger.Warn("audio disabled", "error", err)
		return Silent{}
	}
	return sm
}

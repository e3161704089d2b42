// Package audio synthesizes the game's sound cues with beep.
package audio

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/game"
)

// CuePlayer implements game.Audio on top of the beep speaker. Until Init
// succeeds every Play is a no-op, so a missing audio device never stops
// the game.
type CuePlayer struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
	dropped     int
}

// NewCuePlayer creates a player. Call Init before playing.
func NewCuePlayer(cfg config.AudioConfig) *CuePlayer {
	return &CuePlayer{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Init opens the audio device.
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}
	buf := p.rate.N(time.Duration(p.cfg.BufferMS) * time.Millisecond)
	if err := speaker.Init(p.rate, buf); err != nil {
		return fmt.Errorf("init speaker at %d Hz: %w", p.cfg.SampleRate, err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	slog.Info("audio_ready", "sample_rate", p.cfg.SampleRate, "buffer_ms", p.cfg.BufferMS)
	return nil
}

// Play queues a cue. Cues beyond the voice limit are dropped.
func (p *CuePlayer) Play(cue game.Cue, intensity float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Build(cue, intensity, p.cfg.Volume, p.rate, p.rng)
	if s == nil {
		return
	}

	speaker.Lock()
	full := p.cfg.MaxVoices > 0 && p.mixer.Len() >= p.cfg.MaxVoices
	if !full {
		p.mixer.Add(s)
	}
	speaker.Unlock()

	if full {
		p.dropped++
		slog.Debug("audio_voice_dropped", "cue", cue.String(), "dropped", p.dropped)
	}
}

// Close silences everything still playing.
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

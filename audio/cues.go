package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/warpdash/game"
)

// tone is one layer of a cue.
type tone struct {
	freq, end float64
	wave      Wave
	dur       time.Duration
	attack    time.Duration
	release   time.Duration
	vol       float64
	delay     time.Duration
}

// recipes lists the layers of every cue at zero intensity.
var recipes = [game.NumCues][]tone{
	game.CueDash: {
		{freq: 220, end: 660, wave: WaveSaw, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.4},
		{wave: WaveNoise, dur: 70 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.15},
	},
	game.CueKill: {
		{freq: 660, end: 990, wave: WaveSquare, dur: 80 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.35},
	},
	game.CueError: {
		{freq: 110, end: 90, wave: WaveSaw, dur: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond, vol: 0.5},
	},
	game.CueTierUp: {
		{freq: 523, end: 523, wave: WaveSquare, dur: 90 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, vol: 0.3},
		{freq: 659, end: 659, wave: WaveSquare, dur: 90 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, vol: 0.3, delay: 90 * time.Millisecond},
		{freq: 784, end: 784, wave: WaveSquare, dur: 180 * time.Millisecond, attack: 2 * time.Millisecond, release: 120 * time.Millisecond, vol: 0.3, delay: 180 * time.Millisecond},
	},
	game.CueExplode: {
		{wave: WaveNoise, dur: 350 * time.Millisecond, attack: 2 * time.Millisecond, release: 320 * time.Millisecond, vol: 0.45},
		{freq: 90, end: 40, wave: WaveSine, dur: 300 * time.Millisecond, attack: 2 * time.Millisecond, release: 250 * time.Millisecond, vol: 0.5},
	},
	game.CueNova: {
		{freq: 880, end: 110, wave: WaveSaw, dur: 500 * time.Millisecond, attack: 5 * time.Millisecond, release: 400 * time.Millisecond, vol: 0.35},
		{wave: WaveNoise, dur: 400 * time.Millisecond, attack: 5 * time.Millisecond, release: 350 * time.Millisecond, vol: 0.25},
	},
	game.CueDeflect: {
		{freq: 1400, end: 1200, wave: WaveSine, dur: 60 * time.Millisecond, attack: 1 * time.Millisecond, release: 50 * time.Millisecond, vol: 0.3},
	},
	game.CueShoot: {
		{freq: 900, end: 500, wave: WaveSquare, dur: 50 * time.Millisecond, attack: 1 * time.Millisecond, release: 40 * time.Millisecond, vol: 0.12},
	},
	game.CueSlowDown: {
		{freq: 300, end: 150, wave: WaveSine, dur: 200 * time.Millisecond, attack: 20 * time.Millisecond, release: 150 * time.Millisecond, vol: 0.25},
	},
	game.CueBossWarning: {
		{freq: 220, end: 220, wave: WaveSquare, dur: 250 * time.Millisecond, attack: 10 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.3},
		{freq: 165, end: 165, wave: WaveSquare, dur: 250 * time.Millisecond, attack: 10 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.3, delay: 300 * time.Millisecond},
	},
	game.CueGameOver: {
		{freq: 440, end: 55, wave: WaveSaw, dur: 900 * time.Millisecond, attack: 10 * time.Millisecond, release: 700 * time.Millisecond, vol: 0.45},
	},
	game.CueVictory: {
		{freq: 523, end: 523, wave: WaveSine, dur: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.35},
		{freq: 659, end: 659, wave: WaveSine, dur: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.35, delay: 150 * time.Millisecond},
		{freq: 784, end: 784, wave: WaveSine, dur: 150 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, vol: 0.35, delay: 300 * time.Millisecond},
		{freq: 1047, end: 1047, wave: WaveSine, dur: 600 * time.Millisecond, attack: 5 * time.Millisecond, release: 450 * time.Millisecond, vol: 0.35, delay: 450 * time.Millisecond},
	},
}

// pitch is the frequency multiplier for a combo intensity. Kills climb a
// semitone-ish step per combo and level off at 24.
func pitch(intensity float64) float64 {
	if intensity <= 0 || math.IsNaN(intensity) {
		return 1
	}
	return math.Pow(2, math.Min(intensity, 24)/24)
}

// Build returns the streamer for a cue, or nil for an unknown cue.
func Build(cue game.Cue, intensity, volume float64, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	if cue >= game.NumCues {
		return nil
	}
	layers := recipes[cue]
	if len(layers) == 0 {
		return nil
	}

	// Only pitched one-shots track the combo.
	mul := 1.0
	switch cue {
	case game.CueKill, game.CueDash, game.CueTierUp:
		mul = pitch(intensity)
	}

	var length time.Duration
	parts := make([]beep.Streamer, 0, len(layers))
	for _, l := range layers {
		length = max(length, l.delay+l.dur)
		var s beep.Streamer = NewOscillator(l.freq*mul, l.end*mul, l.dur, l.wave, rate, rng)
		s = gain(NewEnvelope(s, l.dur, l.attack, l.release, rate), l.vol)
		if l.delay > 0 {
			s = beep.Seq(beep.Silence(rate.N(l.delay)), s)
		}
		parts = append(parts, s)
	}
	return beep.Take(rate.N(length), gain(beep.Mix(parts...), volume))
}

package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/pthm-cable/warpdash/config"
	"github.com/pthm-cable/warpdash/game"
)

// drain streams s to the end and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never ended")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 880, 100*time.Millisecond, tt.wave, rate, rng)
			n, peak := drain(t, osc)
			if n != rate.N(100*time.Millisecond) {
				t.Errorf("streamed %d samples, want %d", n, rate.N(100*time.Millisecond))
			}
			if peak > 1 {
				t.Errorf("peak %f out of range", peak)
			}
			if osc.Err() != nil {
				t.Errorf("unexpected error: %v", osc.Err())
			}
		})
	}
}

func TestEnvelopeFadesOut(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 0, time.Second, WaveSquare, rate, nil)
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("streamed %d samples, want 1000", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 at attack start", buf[0][0])
	}
	if buf[500][0] != 1 {
		t.Errorf("sustain sample = %f, want 1", buf[500][0])
	}
	if last := math.Abs(buf[999][0]); last > 0.02 {
		t.Errorf("last sample = %f, want near 0", last)
	}
}

func TestBuildEveryCue(t *testing.T) {
	rate := beep.SampleRate(22050)
	rng := rand.New(rand.NewSource(1))
	for c := game.Cue(0); c < game.NumCues; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s := Build(c, 5, 0.5, rate, rng)
			if s == nil {
				t.Fatal("no streamer")
			}
			n, _ := drain(t, s)
			if n == 0 {
				t.Error("cue is empty")
			}
		})
	}
	if Build(game.NumCues, 0, 1, rate, rng) != nil {
		t.Error("unknown cue should build nothing")
	}
}

func TestMutedCueIsSilent(t *testing.T) {
	s := Build(game.CueKill, 0, 0, beep.SampleRate(22050), rand.New(rand.NewSource(1)))
	if _, peak := drain(t, s); peak != 0 {
		t.Errorf("peak = %f, want silence", peak)
	}
}

func TestPitchRisesWithCombo(t *testing.T) {
	tests := []struct {
		intensity float64
		want      float64
	}{
		{0, 1},
		{-3, 1},
		{math.NaN(), 1},
		{24, 2},
		{100, 2},
	}
	for _, tt := range tests {
		if got := pitch(tt.intensity); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("pitch(%v) = %v, want %v", tt.intensity, got, tt.want)
		}
	}
	if pitch(12) <= pitch(6) {
		t.Error("pitch should climb with combo")
	}
}

func TestPlayBeforeInitIsNoop(t *testing.T) {
	cfg := config.AudioConfig{Enabled: false, SampleRate: 22050, BufferMS: 50, Volume: 1, MaxVoices: 2}
	p := NewCuePlayer(cfg)
	if err := p.Init(); err != nil {
		t.Fatalf("disabled init returned %v", err)
	}
	p.Play(game.CueKill, 3)
	p.Close()
	if p.mixer.Len() != 0 {
		t.Errorf("mixer has %d voices, want 0", p.mixer.Len())
	}
}

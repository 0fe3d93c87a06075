package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/parameter"
)

// drain streams s to completion and returns the total sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = math.Max(peak, math.Max(math.Abs(smp[0]), math.Abs(smp[1])))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Expected stream to terminate")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		n, peak := drain(t, NewOscillator(440, 100*time.Millisecond, wave, rate))
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, rate.N(100*time.Millisecond), n)
		}
		if peak > 1.0 {
			t.Errorf("Wave %d: expected peak <= 1, got %f", wave, peak)
		}
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("Expected 1000 samples, got %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", buf[0][0])
	}
	if buf[50][0] < 0.4 || buf[50][0] > 0.6 {
		t.Errorf("Expected half volume mid-attack, got %f", buf[50][0])
	}
	if buf[500][0] != 1.0 {
		t.Errorf("Expected full volume at sustain, got %f", buf[500][0])
	}
	if buf[999][0] > 0.05 {
		t.Errorf("Expected near silence at the end, got %f", buf[999][0])
	}
}

func TestCueSounds(t *testing.T) {
	rate := beep.SampleRate(parameter.AudioSampleRate)

	tests := []struct {
		name     string
		streamer beep.Streamer
		duration time.Duration
	}{
		{"charge", CreateChargeSound(rate), parameter.ChargeSoundDuration},
		{"fire", CreateFireSound(rate, 1), parameter.FireSoundDuration},
		{"explosion", CreateExplosionSound(rate), parameter.ExplosionSoundDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(t, tt.streamer)
			if n != rate.N(tt.duration) {
				t.Errorf("Expected %d samples, got %d", rate.N(tt.duration), n)
			}
			if peak == 0 || peak > 1.0 {
				t.Errorf("Expected audible peak within range, got %f", peak)
			}
		})
	}

	for _, kind := range component.EffectKinds {
		s, err := CreatePickupSound(rate, kind)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", kind, err)
		}
		n, _ := drain(t, s)
		if n != 2*rate.N(parameter.PickupSoundDuration) {
			t.Errorf("%s: expected two notes, got %d samples", kind, n)
		}
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	_, peak := drain(t, newVolume(NewOscillator(0, 10*time.Millisecond, WaveSquare, rate), 0))
	if peak != 0 {
		t.Errorf("Expected silence, got peak %f", peak)
	}
}

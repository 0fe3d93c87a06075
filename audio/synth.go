package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave whose frequency glides from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding linearly from startFreq to endFreq
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     startFreq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := waveValue(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func waveValue(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is made silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateChargeSound is a rising whine lasting a full charge
func CreateChargeSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.ChargeSoundDuration
	osc := NewSweep(220, 660, d, WaveSaw, rate)
	return newVolume(NewEnvelope(osc, d, 20*time.Millisecond, 60*time.Millisecond, rate), 0.15)
}

// CreateFireSound is a short noisy thump, louder for stronger shots
// power is the launch force as a fraction of the charge range in [0,1]
func CreateFireSound(rate beep.SampleRate, power float64) beep.Streamer {
	d := parameter.FireSoundDuration
	body := NewSweep(180, 60, d, WaveSquare, rate)
	noise := NewOscillator(0, d, WaveNoise, rate)
	mixed := beep.Mix(newVolume(body, 0.6), newVolume(noise, 0.4))
	shaped := NewEnvelope(mixed, d, 5*time.Millisecond, d/2, rate)
	return newVolume(shaped, 0.2+0.2*math.Max(0, math.Min(power, 1)))
}

// CreateExplosionSound is a long noise burst over a low rumble
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.ExplosionSoundDuration
	noise := NewOscillator(0, d, WaveNoise, rate)
	rumble := NewSweep(90, 35, d, WaveSine, rate)
	mixed := beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.5))
	return newVolume(NewEnvelope(mixed, d, 5*time.Millisecond, d*3/4, rate), 0.35)
}

// pickupNotes are the two chime frequencies per item kind; dynamite gets a falling pair
var pickupNotes = map[component.EffectKind][2]float64{
	component.EffectHeal:     {660, 990},
	component.EffectSpeed:    {880, 1320},
	component.EffectBarrier:  {523, 784},
	component.EffectDynamite: {440, 220},
}

// CreatePickupSound is a two-note chime identifying the collected kind
func CreatePickupSound(rate beep.SampleRate, kind component.EffectKind) (beep.Streamer, error) {
	notes, ok := pickupNotes[kind]
	if !ok {
		notes = pickupNotes[component.EffectHeal]
	}

	d := parameter.PickupSoundDuration
	var parts []beep.Streamer
	for _, freq := range notes {
		tone, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, err
		}
		note := NewEnvelope(beep.Take(rate.N(d), tone), d, 5*time.Millisecond, d/2, rate)
		parts = append(parts, note)
	}
	return newVolume(beep.Seq(parts...), 0.2), nil
}

package audio

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	engines     map[int]*engineVoice
	charges     map[int]*beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// engineVoice is one looping hum per tank slot
type engineVoice struct {
	hum  *HumGenerator
	ctrl *beep.Ctrl
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		engines: make(map[int]*engineVoice),
		charges: make(map[int]*beep.Ctrl),
		mixer:   &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	for _, v := range sm.engines {
		v.ctrl.Paused = true
	}
	for _, c := range sm.charges {
		c.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.engines = make(map[int]*engineVoice)
	sm.charges = make(map[int]*beep.Ctrl)
	sm.initialized = false
}

// SetMuted silences new one-shot cues and pauses running hums
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if !sm.initialized {
		return
	}

	speaker.Lock()
	for _, v := range sm.engines {
		v.ctrl.Paused = muted
	}
	for _, c := range sm.charges {
		c.Paused = true
	}
	speaker.Unlock()
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// SetEngine starts the hum for a slot if needed and switches its clip
// Every switch picks a fresh random pitch within the configured spread
func (sm *SoundManager) SetEngine(slot int, driving bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	base := parameter.EngineIdleFrequency
	if driving {
		base = parameter.EngineDriveFrequency
	}
	pitch := 1 + (rand.Float64()*2-1)*parameter.EnginePitchRange
	freq := base * pitch

	speaker.Lock()
	defer speaker.Unlock()

	v, ok := sm.engines[slot]
	if !ok {
		hum := NewHumGenerator(sampleRate, freq)
		v = &engineVoice{hum: hum, ctrl: &beep.Ctrl{Streamer: newVolume(hum, 0.12)}}
		sm.engines[slot] = v
		sm.mixer.Add(v.ctrl)
	}
	v.hum.SetFrequency(freq)
	v.ctrl.Paused = sm.muted
}

// StopEngine silences the hum of a slot
func (sm *SoundManager) StopEngine(slot int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if v, ok := sm.engines[slot]; ok {
		speaker.Lock()
		v.ctrl.Paused = true
		speaker.Unlock()
	}
}

// StartCharge plays the rising whine for a slot, restarting any previous one
func (sm *SoundManager) StartCharge(slot int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	ctrl := &beep.Ctrl{Streamer: CreateChargeSound(sampleRate)}
	speaker.Lock()
	if prev, ok := sm.charges[slot]; ok {
		prev.Paused = true
		prev.Streamer = nil
	}
	sm.charges[slot] = ctrl
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopCharge cuts the whine of a slot
func (sm *SoundManager) StopCharge(slot int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	if c, ok := sm.charges[slot]; ok {
		speaker.Lock()
		c.Paused = true
		c.Streamer = nil
		speaker.Unlock()
		delete(sm.charges, slot)
	}
}

// PlayFire plays a launch thump scaled by power in [0,1]
func (sm *SoundManager) PlayFire(power float64) {
	sm.play(CreateFireSound(sampleRate, power))
}

// PlayExplosion plays a detonation
func (sm *SoundManager) PlayExplosion() {
	sm.play(CreateExplosionSound(sampleRate))
}

// PlayPickup plays the chime of a collected item
func (sm *SoundManager) PlayPickup(kind component.EffectKind) {
	s, err := CreatePickupSound(sampleRate, kind)
	if err != nil {
		return
	}
	sm.play(s)
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// HumGenerator generates an endless engine drone at an adjustable frequency
// SetFrequency must be called under speaker.Lock while playing
type HumGenerator struct {
	sr    beep.SampleRate
	freq  float64
	phase float64
	wob   float64
}

// NewHumGenerator creates an engine hum generator
func NewHumGenerator(sr beep.SampleRate, freq float64) *HumGenerator {
	return &HumGenerator{sr: sr, freq: freq}
}

// SetFrequency changes the base pitch without resetting phase
func (g *HumGenerator) SetFrequency(freq float64) {
	g.freq = freq
}

// Frequency returns the current base pitch
func (g *HumGenerator) Frequency() float64 {
	return g.freq
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		// Square-ish drone with a slow amplitude wobble
		fundamental := math.Sin(2 * math.Pi * g.phase)
		harmonic := 0.4 * math.Sin(4*math.Pi*g.phase)
		wobble := 0.8 + 0.2*math.Sin(2*math.Pi*g.wob)
		sample := wobble * math.Tanh(2*(fundamental+harmonic)) * 0.5

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += g.freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.wob += 6 / float64(g.sr)
		g.wob -= math.Floor(g.wob)
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error {
	return nil
}

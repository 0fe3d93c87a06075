package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Cue lengths
const (
	ChargeSoundDuration    = 750 * time.Millisecond
	FireSoundDuration      = 180 * time.Millisecond
	ExplosionSoundDuration = 900 * time.Millisecond
	PickupSoundDuration    = 120 * time.Millisecond
)

// Engine hum
const (
	// EngineIdleFrequency is the base hum of a stationary tank
	EngineIdleFrequency = 55.0

	// EngineDriveFrequency is the base hum of a moving tank
	EngineDriveFrequency = 82.0

	// EnginePitchRange is the random pitch spread applied on every clip switch
	EnginePitchRange = 0.2
)

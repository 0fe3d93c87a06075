package parameter

import "time"

// Shells
const (
	// ShellLifetime is the flight time after which a shell detonates in place
	ShellLifetime = 1200 * time.Millisecond

	// ShellRadius is the contact radius of a shell against tank hulls
	ShellRadius = 1.0

	// ShellExplosionRadius is the blast radius, damage falls off linearly to zero at the edge
	ShellExplosionRadius = 5.0

	// ShellMaxDamage is the damage at the blast center
	ShellMaxDamage = 100.0

	// ExplosionVisualDuration is how long an explosion stays on screen
	ExplosionVisualDuration = 400 * time.Millisecond
)

// Rounds
const (
	// RoundRestartDelay is the pause between the last kill and the next round
	RoundRestartDelay = 3 * time.Second

	// DefaultPlayerCount is the number of tank slots in a local match
	DefaultPlayerCount = 2
)

package event

import (
	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/vmath"
)

// TankPayload identifies a tank and where it was
type TankPayload struct {
	Slot     int
	Position vmath.Vec3F
}

// ProjectileFiredPayload carries the spawn request as emitted
type ProjectileFiredPayload struct {
	Spawn component.ProjectileSpawn
}

// DamagePayload describes one damage application
type DamagePayload struct {
	Slot     int
	Raw      float64 // Before resist
	Applied  float64 // Raw * resist
	Health   float64 // Health after application
	Source   string  // "shell", "dynamite"
	Attacker int     // Slot of the shooter, -1 for environment
}

// ExplosionPayload describes a shell detonation
type ExplosionPayload struct {
	Owner    int
	Position vmath.Vec3F
}

// EffectPayload describes an effect transition
type EffectPayload struct {
	Slot      int
	Kind      component.EffectKind
	Magnitude float64
	Restarted bool // Durable effect was already running
	Cancelled bool // Expired by deactivation rather than timeout
}

// EnginePayload describes an engine hum switch
type EnginePayload struct {
	Slot    int
	Driving bool
}

// PickupPayload describes an item on a pad
type PickupPayload struct {
	Pad       int
	Slot      int // Collector, -1 on spawn
	Kind      component.EffectKind
	Magnitude float64
	Position  vmath.Vec3F
}

// RoundPayload describes round boundaries
type RoundPayload struct {
	Round  int
	Winner int // -1 on draw or round start
}

package system

import (
	"math"
	"time"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/vmath"
)

// ProjectileSpawner receives launch requests and owns the projectile from then on
type ProjectileSpawner interface {
	SpawnProjectile(spawn component.ProjectileSpawn)
}

// ChargeConfig bounds the launch force
type ChargeConfig struct {
	MinForce      float64
	MaxForce      float64
	MaxChargeTime time.Duration
}

// ChargeSpeed is the force gained per second of holding
func (c ChargeConfig) ChargeSpeed() float64 {
	secs := c.MaxChargeTime.Seconds()
	if secs <= 0 {
		return math.Inf(1)
	}
	return (c.MaxForce - c.MinForce) / secs
}

// ChargeFireController runs the Idle -> Charging -> Idle protocol
// Out-of-state edges are ignored so duplicated or reordered input is harmless
type ChargeFireController struct {
	slot        int
	charge      *component.ChargeComponent
	cfg         ChargeConfig
	chargeSpeed float64

	spawner ProjectileSpawner
	events  event.Emitter
}

// NewChargeFireController creates a controller resting in Idle at MinForce
func NewChargeFireController(
	slot int,
	charge *component.ChargeComponent,
	cfg ChargeConfig,
	spawner ProjectileSpawner,
	events event.Emitter,
) *ChargeFireController {
	c := &ChargeFireController{
		slot:        slot,
		charge:      charge,
		cfg:         cfg,
		chargeSpeed: cfg.ChargeSpeed(),
		spawner:     spawner,
		events:      events,
	}
	c.Reset()
	return c
}

// Reset returns to Idle with MinForce
func (c *ChargeFireController) Reset() {
	c.charge.State = component.ChargeIdle
	c.charge.CurrentForce = c.cfg.MinForce
}

// OnTriggerPressed arms the shot; ignored while already charging
func (c *ChargeFireController) OnTriggerPressed() {
	if c.charge.State != component.ChargeIdle {
		return
	}
	c.charge.State = component.ChargeCharging
	c.charge.CurrentForce = c.cfg.MinForce

	c.events.Push(event.GameEvent{
		Type:    event.EventChargeStarted,
		Payload: &event.TankPayload{Slot: c.slot},
	})
}

// OnTriggerHeld accumulates force up to MaxForce; no-op while Idle
func (c *ChargeFireController) OnTriggerHeld(dt time.Duration) {
	if c.charge.State != component.ChargeCharging {
		return
	}
	c.charge.CurrentForce = math.Min(c.charge.CurrentForce+c.chargeSpeed*dt.Seconds(), c.cfg.MaxForce)
}

// OnTriggerReleased fires along the muzzle facing; no-op while Idle
// Returns the emitted request and whether a shot happened
func (c *ChargeFireController) OnTriggerReleased(muzzle component.TransformComponent) (component.ProjectileSpawn, bool) {
	if c.charge.State != component.ChargeCharging {
		return component.ProjectileSpawn{}, false
	}
	c.charge.State = component.ChargeIdle

	spawn := component.ProjectileSpawn{
		Owner:    c.slot,
		Position: muzzle.Position,
		Yaw:      muzzle.Yaw,
		Velocity: vmath.V3FScale(vmath.Forward(muzzle.Yaw), c.charge.CurrentForce),
	}
	c.spawner.SpawnProjectile(spawn)
	c.events.Push(event.GameEvent{
		Type:    event.EventProjectileFired,
		Payload: &event.ProjectileFiredPayload{Spawn: spawn},
	})

	// Precaution against missing button events
	c.charge.CurrentForce = c.cfg.MinForce
	return spawn, true
}

// State returns the current resting state
func (c *ChargeFireController) State() component.ChargeState {
	return c.charge.State
}

// CurrentForce returns the force a release would fire with now
func (c *ChargeFireController) CurrentForce() float64 {
	return c.charge.CurrentForce
}

package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/config"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/input"
	"github.com/lixenwraith/tank-arena/parameter"
	"github.com/lixenwraith/tank-arena/system"
	"github.com/lixenwraith/tank-arena/vmath"
)

// DeathEffect plays the destruction visual and sound at a position
type DeathEffect func(slot int, position vmath.Vec3F)

// TankSnapshot is a read-only copy of one tank for presentation
type TankSnapshot struct {
	State    component.TankState
	MinForce float64
	MaxForce float64
}

// Tank owns one TankState and the four subsystems operating on it
// Not safe for concurrent use; the arena serialises access
type Tank struct {
	state  component.TankState
	cfg    config.TankConfig
	body   *Body
	events event.Emitter
	logger zerolog.Logger

	health     *system.HealthModel
	effects    *system.EffectEngine
	locomotion *system.LocomotionSystem
	charge     *system.ChargeFireController

	// Set by the health death callback, resolved after the triggering call returns
	dying bool

	DeathEffect DeathEffect
}

// NewTank creates an inactive tank bound to body and spawner
func NewTank(
	slot int,
	cfg config.TankConfig,
	body *Body,
	spawner system.ProjectileSpawner,
	events event.Emitter,
	logger zerolog.Logger,
) *Tank {
	t := &Tank{
		cfg:    cfg,
		body:   body,
		events: events,
		logger: logger.With().Int("slot", slot).Logger(),
	}
	t.state.Slot = slot
	t.state.Health = component.HealthComponent{Current: cfg.MaxHealth, Max: cfg.MaxHealth}
	t.state.Modifiers = component.DefaultModifiers()

	t.health = system.NewHealthModel(&t.state.Health, t.onDeath)
	t.effects = system.NewEffectEngine(slot, &t.state.Effects, &t.state.Modifiers, t.health, events)
	t.locomotion = system.NewLocomotionSystem(body, &t.state.Transform, &t.state.Modifiers, cfg.Speed, cfg.TurnSpeed)
	t.charge = system.NewChargeFireController(
		slot,
		&t.state.Charge,
		system.ChargeConfig{
			MinForce:      cfg.MinLaunchForce,
			MaxForce:      cfg.MaxLaunchForce,
			MaxChargeTime: cfg.MaxChargeTime,
		},
		spawner,
		events,
	)
	t.syncTransform()
	return t
}

// Slot returns the player slot
func (t *Tank) Slot() int {
	return t.state.Slot
}

// Active reports whether the tank is simulated this round
func (t *Tank) Active() bool {
	return t.state.Active
}

// Position returns the mirrored body position
func (t *Tank) Position() vmath.Vec3F {
	return t.state.Transform.Position
}

// Radius returns the hull collision radius
func (t *Tank) Radius() float64 {
	return t.body.Radius()
}

// Activate resets health, charge and effects and starts simulating
func (t *Tank) Activate() {
	t.health.Reset()
	t.charge.Reset()
	t.effects.Cancel()
	t.state.Driving = false
	t.state.Active = true
	t.dying = false

	t.events.Push(event.GameEvent{
		Type:    event.EventTankActivated,
		Payload: &event.TankPayload{Slot: t.state.Slot, Position: t.state.Transform.Position},
	})
	t.logger.Debug().Msg("tank activated")
}

// Deactivate cancels durable effects and halts integration
func (t *Tank) Deactivate() {
	if !t.state.Active {
		return
	}
	t.state.Active = false
	t.effects.Cancel()
	t.charge.Reset()
	t.state.Driving = false

	t.events.Push(event.GameEvent{
		Type:    event.EventTankDeactivated,
		Payload: &event.TankPayload{Slot: t.state.Slot, Position: t.state.Transform.Position},
	})
	t.logger.Debug().Msg("tank deactivated")
}

// Respawn places the tank at a spawn point without changing activation
func (t *Tank) Respawn(p config.Point) {
	t.body.Teleport(vmath.Vec3F{X: p.X, Z: p.Z}, p.Yaw)
	t.syncTransform()
}

// Tick advances one simulation step
// Effect countdowns resolve first so locomotion and later damage see this tick's multipliers
func (t *Tank) Tick(dt time.Duration, controls input.Controls) {
	if !t.state.Active || dt <= 0 {
		return
	}

	t.effects.Update(dt)

	t.locomotion.Update(controls.Move, controls.Turn, dt)
	t.syncTransform()
	t.updateEngineState(controls)

	// Press and hold share a tick so the first charge step is not lost
	if controls.Fire.Pressed {
		t.charge.OnTriggerPressed()
	}
	if controls.Fire.Held {
		t.charge.OnTriggerHeld(dt)
	}
	if controls.Fire.Released {
		t.charge.OnTriggerReleased(t.muzzle())
	}
}

// Pickup applies a collected item
// Returns false when the tank is inactive and the item should stay on its pad
func (t *Tank) Pickup(kind component.EffectKind, magnitude float64) bool {
	if !t.state.Active {
		return false
	}
	t.effects.Apply(kind, magnitude)
	t.resolveDeath()
	return true
}

// Dead reports whether the tank has died and not yet been reactivated
func (t *Tank) Dead() bool {
	return t.health.Dead()
}

// Hit applies projectile damage through the current resist multiplier
// A destroyed tank still takes damage until reactivated; it cannot die twice
// Returns the damage actually applied
func (t *Tank) Hit(damage float64, attacker int) float64 {
	if (!t.state.Active && !t.health.Dead()) || damage <= 0 {
		return 0
	}
	applied := t.health.ApplyDamage(damage, t.effects.ResistMultiplier())
	t.events.Push(event.GameEvent{
		Type: event.EventDamageTaken,
		Payload: &event.DamagePayload{
			Slot:     t.state.Slot,
			Raw:      damage,
			Applied:  applied,
			Health:   t.health.Current(),
			Source:   "shell",
			Attacker: attacker,
		},
	})
	t.resolveDeath()
	return applied
}

// Snapshot returns a copy safe to hand to another goroutine
func (t *Tank) Snapshot() TankSnapshot {
	return TankSnapshot{
		State:    t.state,
		MinForce: t.cfg.MinLaunchForce,
		MaxForce: t.cfg.MaxLaunchForce,
	}
}

func (t *Tank) onDeath() {
	t.dying = true
}

// resolveDeath finishes a death transition once the damaging call has emitted its own events
func (t *Tank) resolveDeath() {
	if !t.dying {
		return
	}
	t.dying = false

	pos := t.state.Transform.Position
	t.events.Push(event.GameEvent{
		Type:    event.EventTankDestroyed,
		Payload: &event.TankPayload{Slot: t.state.Slot, Position: pos},
	})
	t.logger.Info().Float64("health", t.health.Current()).Msg("tank destroyed")

	if t.DeathEffect != nil {
		t.DeathEffect(t.state.Slot, pos)
	}
	t.Deactivate()
}

func (t *Tank) syncTransform() {
	t.state.Transform = t.body.Pose()
}

func (t *Tank) muzzle() component.TransformComponent {
	pose := t.state.Transform
	pose.Position = vmath.V3FAdd(pose.Position, vmath.V3FScale(pose.Forward(), t.cfg.MuzzleOffset))
	return pose
}

func (t *Tank) updateEngineState(controls input.Controls) {
	driving := math.Abs(controls.Move) >= parameter.EngineInputThreshold ||
		math.Abs(controls.Turn) >= parameter.EngineInputThreshold
	if driving == t.state.Driving {
		return
	}
	t.state.Driving = driving
	t.events.Push(event.GameEvent{
		Type:    event.EventEngineStateChanged,
		Payload: &event.EnginePayload{Slot: t.state.Slot, Driving: driving},
	})
}

package system

import (
	"time"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/parameter"
)

// EffectEngine applies pickups and runs the durable effect countdowns
// Sole writer of the speed and resist multipliers
//
// Uniqueness per kind lets each durable effect live in a single scalar countdown:
// a repeated pickup restarts the countdown, the multiplier stays the fixed constant
type EffectEngine struct {
	slot      int
	effects   *component.EffectComponent
	modifiers *component.ModifierComponent
	health    *HealthModel
	events    event.Emitter
}

// NewEffectEngine binds the engine to one tank's effect slots and modifiers
func NewEffectEngine(
	slot int,
	effects *component.EffectComponent,
	modifiers *component.ModifierComponent,
	health *HealthModel,
	events event.Emitter,
) *EffectEngine {
	return &EffectEngine{
		slot:      slot,
		effects:   effects,
		modifiers: modifiers,
		health:    health,
		events:    events,
	}
}

// Apply dispatches a pickup resolved at the collision boundary
// Durable magnitudes are seconds, Heal is a fraction of max health, Dynamite is raw damage
func (e *EffectEngine) Apply(kind component.EffectKind, magnitude float64) {
	switch kind {
	case component.EffectHeal:
		e.Heal(magnitude)
	case component.EffectDynamite:
		e.Dynamite(magnitude)
	case component.EffectSpeed:
		e.Speed(secondsToDuration(magnitude))
	case component.EffectBarrier:
		e.Barrier(secondsToDuration(magnitude))
	}
}

// Heal restores a fraction of max health instantly
func (e *EffectEngine) Heal(power float64) {
	restored := e.health.Heal(power)
	e.emitStarted(component.EffectHeal, restored, false)
}

// Dynamite damages through the current resist multiplier, so an active Barrier mitigates it
func (e *EffectEngine) Dynamite(power float64) {
	resist := e.modifiers.Resist
	applied := e.health.ApplyDamage(power, resist)
	e.emitStarted(component.EffectDynamite, power, false)
	e.events.Push(event.GameEvent{
		Type: event.EventDamageTaken,
		Payload: &event.DamagePayload{
			Slot:     e.slot,
			Raw:      power,
			Applied:  applied,
			Health:   e.health.Current(),
			Source:   "dynamite",
			Attacker: -1,
		},
	})
}

// Speed starts or restarts the speed countdown
func (e *EffectEngine) Speed(duration time.Duration) {
	if duration <= 0 {
		return
	}
	restarted := e.effects.SpeedRemaining > 0
	e.effects.SpeedRemaining = duration
	e.modifiers.Speed = parameter.EffectSpeedMultiplier
	e.emitStarted(component.EffectSpeed, duration.Seconds(), restarted)
}

// Barrier starts or restarts the damage-resist countdown
func (e *EffectEngine) Barrier(duration time.Duration) {
	if duration <= 0 {
		return
	}
	restarted := e.effects.BarrierRemaining > 0
	e.effects.BarrierRemaining = duration
	e.modifiers.Resist = parameter.EffectResistMultiplier
	e.emitStarted(component.EffectBarrier, duration.Seconds(), restarted)
}

// Update decrements running countdowns and reverts multipliers on expiry
// Must run before anything reads the multipliers this tick
func (e *EffectEngine) Update(dt time.Duration) {
	if e.effects.SpeedRemaining > 0 {
		e.effects.SpeedRemaining -= dt
		if e.effects.SpeedRemaining <= 0 {
			e.expireSpeed(false)
		}
	}
	if e.effects.BarrierRemaining > 0 {
		e.effects.BarrierRemaining -= dt
		if e.effects.BarrierRemaining <= 0 {
			e.expireBarrier(false)
		}
	}
}

// Cancel drops every running effect regardless of remaining time
func (e *EffectEngine) Cancel() {
	if e.effects.SpeedRemaining > 0 {
		e.expireSpeed(true)
	}
	if e.effects.BarrierRemaining > 0 {
		e.expireBarrier(true)
	}
	// Multipliers are reset even with empty slots
	*e.effects = component.EffectComponent{}
	*e.modifiers = component.DefaultModifiers()
}

// SpeedMultiplier returns the multiplier locomotion reads this tick
func (e *EffectEngine) SpeedMultiplier() float64 {
	return e.modifiers.Speed
}

// ResistMultiplier returns the multiplier damage reads this tick
func (e *EffectEngine) ResistMultiplier() float64 {
	return e.modifiers.Resist
}

func (e *EffectEngine) expireSpeed(cancelled bool) {
	e.effects.SpeedRemaining = 0
	e.modifiers.Speed = 1
	e.emitExpired(component.EffectSpeed, cancelled)
}

func (e *EffectEngine) expireBarrier(cancelled bool) {
	e.effects.BarrierRemaining = 0
	e.modifiers.Resist = 1
	e.emitExpired(component.EffectBarrier, cancelled)
}

func (e *EffectEngine) emitStarted(kind component.EffectKind, magnitude float64, restarted bool) {
	e.events.Push(event.GameEvent{
		Type: event.EventEffectStarted,
		Payload: &event.EffectPayload{
			Slot:      e.slot,
			Kind:      kind,
			Magnitude: magnitude,
			Restarted: restarted,
		},
	})
}

func (e *EffectEngine) emitExpired(kind component.EffectKind, cancelled bool) {
	e.events.Push(event.GameEvent{
		Type: event.EventEffectExpired,
		Payload: &event.EffectPayload{
			Slot:      e.slot,
			Kind:      kind,
			Cancelled: cancelled,
		},
	})
}

func secondsToDuration(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}

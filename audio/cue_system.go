package audio

import (
	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/event"
)

// Player is the sound surface driven by game events
// SoundManager is the production implementation
type Player interface {
	SetEngine(slot int, driving bool)
	StopEngine(slot int)
	StartCharge(slot int)
	StopCharge(slot int)
	PlayFire(power float64)
	PlayExplosion()
	PlayPickup(kind component.EffectKind)
}

// CueSystem translates routed game events into sound cues
type CueSystem struct {
	player   Player
	minForce float64
	maxForce float64
}

// NewCueSystem creates a cue handler; launch force bounds scale the fire cue
func NewCueSystem(player Player, minForce, maxForce float64) *CueSystem {
	return &CueSystem{player: player, minForce: minForce, maxForce: maxForce}
}

// EventTypes implements event.Handler
func (c *CueSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTankActivated,
		event.EventEngineStateChanged,
		event.EventChargeStarted,
		event.EventProjectileFired,
		event.EventShellExploded,
		event.EventTankDestroyed,
		event.EventTankDeactivated,
		event.EventPickupCollected,
	}
}

// HandleEvent implements event.Handler
func (c *CueSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventTankActivated:
		// Activation resets charge and drive state without emitting their own events
		if p, ok := ev.Payload.(*event.TankPayload); ok {
			c.player.StopCharge(p.Slot)
			c.player.SetEngine(p.Slot, false)
		}

	case event.EventEngineStateChanged:
		if p, ok := ev.Payload.(*event.EnginePayload); ok {
			c.player.SetEngine(p.Slot, p.Driving)
		}

	case event.EventChargeStarted:
		if p, ok := ev.Payload.(*event.TankPayload); ok {
			c.player.StartCharge(p.Slot)
		}

	case event.EventProjectileFired:
		if p, ok := ev.Payload.(*event.ProjectileFiredPayload); ok {
			c.player.StopCharge(p.Spawn.Owner)
			c.player.PlayFire(c.power(p.Spawn.Speed()))
		}

	case event.EventShellExploded, event.EventTankDestroyed:
		c.player.PlayExplosion()

	case event.EventTankDeactivated:
		if p, ok := ev.Payload.(*event.TankPayload); ok {
			c.player.StopCharge(p.Slot)
			c.player.StopEngine(p.Slot)
		}

	case event.EventPickupCollected:
		if p, ok := ev.Payload.(*event.PickupPayload); ok {
			c.player.PlayPickup(p.Kind)
		}
	}
}

// power maps a launch speed onto [0,1] of the charge range
func (c *CueSystem) power(speed float64) float64 {
	span := c.maxForce - c.minForce
	if span <= 0 {
		return 1
	}
	p := (speed - c.minForce) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

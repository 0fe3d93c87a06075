package component

import (
	"fmt"
	"strings"
	"time"
)

// EffectKind identifies a pickup or hazard effect
type EffectKind uint8

const (
	EffectHeal EffectKind = iota
	EffectSpeed
	EffectBarrier
	EffectDynamite
)

// EffectKinds lists every kind in declaration order
var EffectKinds = []EffectKind{EffectHeal, EffectSpeed, EffectBarrier, EffectDynamite}

func (k EffectKind) String() string {
	switch k {
	case EffectHeal:
		return "heal"
	case EffectSpeed:
		return "speed"
	case EffectBarrier:
		return "barrier"
	case EffectDynamite:
		return "dynamite"
	default:
		return fmt.Sprintf("effect(%d)", uint8(k))
	}
}

// Durable reports whether the effect persists as a countdown
// Heal and Dynamite apply once and are never stored
func (k EffectKind) Durable() bool {
	return k == EffectSpeed || k == EffectBarrier
}

// ParseEffectKind resolves a case-insensitive effect name
func ParseEffectKind(name string) (EffectKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "heal", "medkit":
		return EffectHeal, nil
	case "speed":
		return EffectSpeed, nil
	case "barrier", "resist":
		return EffectBarrier, nil
	case "dynamite", "bomb":
		return EffectDynamite, nil
	default:
		return 0, fmt.Errorf("unknown effect kind %q", name)
	}
}

// EffectComponent holds the durable effect countdowns
// At most one running instance per kind; zero means the slot is empty
type EffectComponent struct {
	SpeedRemaining   time.Duration
	BarrierRemaining time.Duration
}

// SpeedActive reports whether a speed countdown is running
func (e EffectComponent) SpeedActive() bool {
	return e.SpeedRemaining > 0
}

// BarrierActive reports whether a barrier countdown is running
func (e EffectComponent) BarrierActive() bool {
	return e.BarrierRemaining > 0
}

// ModifierComponent holds the multipliers written by effects
// Single writer: EffectEngine. Readers: locomotion (Speed) and damage (Resist)
type ModifierComponent struct {
	Speed  float64
	Resist float64
}

// DefaultModifiers returns neutral multipliers
func DefaultModifiers() ModifierComponent {
	return ModifierComponent{Speed: 1, Resist: 1}
}

package system

import (
	"math"

	"github.com/lixenwraith/tank-arena/component"
)

// HealthModel applies damage and healing to one tank
// The death callback fires exactly once per life
type HealthModel struct {
	health  *component.HealthComponent
	onDeath func()
}

// NewHealthModel binds the model to a health component
// onDeath may be nil
func NewHealthModel(health *component.HealthComponent, onDeath func()) *HealthModel {
	return &HealthModel{
		health:  health,
		onDeath: onDeath,
	}
}

// ApplyDamage subtracts amount*resist and returns the applied value
// No lower clamp: overkill leaves negative health, later hits keep subtracting
func (m *HealthModel) ApplyDamage(amount, resist float64) float64 {
	applied := amount * resist
	m.health.Current -= applied

	if m.health.Current <= 0 && !m.health.Dead {
		m.health.Dead = true
		if m.onDeath != nil {
			m.onDeath()
		}
	}
	return applied
}

// Heal restores fraction*Max capped at Max and returns the restored amount
// A dead tank is not healed
func (m *HealthModel) Heal(fraction float64) float64 {
	if m.health.Dead || fraction <= 0 {
		return 0
	}
	before := m.health.Current
	m.health.Current = math.Min(m.health.Current+m.health.Max*fraction, m.health.Max)
	return m.health.Current - before
}

// Reset restores full health and clears the dead flag
func (m *HealthModel) Reset() {
	m.health.Current = m.health.Max
	m.health.Dead = false
}

// Dead reports whether the death transition has happened this life
func (m *HealthModel) Dead() bool {
	return m.health.Dead
}

// Current returns current health, possibly negative after overkill
func (m *HealthModel) Current() float64 {
	return m.health.Current
}

package engine

import (
	"time"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/config"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/parameter"
	"github.com/lixenwraith/tank-arena/vmath"
)

// Shell is a projectile in flight
type Shell struct {
	ID        int
	Owner     int
	Position  vmath.Vec3F
	Velocity  vmath.Vec3F
	Remaining time.Duration
}

// Explosion is a fading detonation visual
type Explosion struct {
	Position  vmath.Vec3F
	Radius    float64
	Remaining time.Duration
}

// ShellSystem owns projectiles after launch and resolves their explosions
// Implements system.ProjectileSpawner
type ShellSystem struct {
	cfg    config.ShellConfig
	events event.Emitter
	floor  *Body

	shells     []Shell
	explosions []Explosion
	nextID     int
}

// NewShellSystem creates a shell system; floor supplies the arena bounds
func NewShellSystem(cfg config.ShellConfig, floor *Body, events event.Emitter) *ShellSystem {
	return &ShellSystem{
		cfg:    cfg,
		events: events,
		floor:  floor,
	}
}

// SpawnProjectile takes ownership of a launch request
func (s *ShellSystem) SpawnProjectile(spawn component.ProjectileSpawn) {
	s.nextID++
	s.shells = append(s.shells, Shell{
		ID:        s.nextID,
		Owner:     spawn.Owner,
		Position:  spawn.Position,
		Velocity:  spawn.Velocity,
		Remaining: s.cfg.Lifetime,
	})
}

// Update advances shells and detonates those that hit a tank, leave the floor or expire
func (s *ShellSystem) Update(dt time.Duration, tanks []*Tank) {
	secs := dt.Seconds()

	live := s.shells[:0]
	for _, sh := range s.shells {
		sh.Position = vmath.V3FAdd(sh.Position, vmath.V3FScale(sh.Velocity, secs))
		sh.Remaining -= dt

		if sh.Remaining <= 0 || !s.floor.Contains(sh.Position) || s.contact(sh, tanks) {
			s.explode(sh, tanks)
			continue
		}
		live = append(live, sh)
	}
	s.shells = live

	fading := s.explosions[:0]
	for _, ex := range s.explosions {
		ex.Remaining -= dt
		if ex.Remaining > 0 {
			fading = append(fading, ex)
		}
	}
	s.explosions = fading
}

// Shells returns a copy of the shells in flight
func (s *ShellSystem) Shells() []Shell {
	return append([]Shell(nil), s.shells...)
}

// Explosions returns a copy of the fading explosions
func (s *ShellSystem) Explosions() []Explosion {
	return append([]Explosion(nil), s.explosions...)
}

// AddExplosion starts a detonation visual, also used for tank deaths
func (s *ShellSystem) AddExplosion(position vmath.Vec3F, radius float64) {
	s.explosions = append(s.explosions, Explosion{
		Position:  position,
		Radius:    radius,
		Remaining: parameter.ExplosionVisualDuration,
	})
}

// Clear drops every shell and explosion
func (s *ShellSystem) Clear() {
	s.shells = s.shells[:0]
	s.explosions = s.explosions[:0]
}

// ExplosionDamage is the falloff damage at dist from the blast center
func ExplosionDamage(maxDamage, radius, dist float64) float64 {
	if radius <= 0 || dist >= radius {
		return 0
	}
	return maxDamage * (1 - dist/radius)
}

func (s *ShellSystem) contact(sh Shell, tanks []*Tank) bool {
	for _, t := range tanks {
		if !t.Active() || t.Slot() == sh.Owner {
			continue
		}
		if vmath.V3FDistanceXZ(sh.Position, t.Position()) <= t.Radius()+s.cfg.Radius {
			return true
		}
	}
	return false
}

// explode damages every active tank or fresh wreck in radius, the owner included
func (s *ShellSystem) explode(sh Shell, tanks []*Tank) {
	s.events.Push(event.GameEvent{
		Type:    event.EventShellExploded,
		Payload: &event.ExplosionPayload{Owner: sh.Owner, Position: sh.Position},
	})
	s.AddExplosion(sh.Position, s.cfg.ExplosionRadius)

	for _, t := range tanks {
		if !t.Active() && !t.Dead() {
			continue
		}
		dist := vmath.V3FDistanceXZ(sh.Position, t.Position())
		if dmg := ExplosionDamage(s.cfg.MaxDamage, s.cfg.ExplosionRadius, dist); dmg > 0 {
			t.Hit(dmg, sh.Owner)
		}
	}
}

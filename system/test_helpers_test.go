package system

import (
	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/vmath"
)

const floatTolerance = 1e-9

type fakeMover struct {
	position vmath.Vec3F
	yaw      float64
	calls    int
}

func (m *fakeMover) ApplyPositionDelta(delta vmath.Vec3F) {
	m.position = vmath.V3FAdd(m.position, delta)
	m.calls++
}

func (m *fakeMover) ApplyRotationDelta(yawDelta float64) {
	m.yaw += yawDelta
}

type fakeSpawner struct {
	spawned []component.ProjectileSpawn
}

func (s *fakeSpawner) SpawnProjectile(spawn component.ProjectileSpawn) {
	s.spawned = append(s.spawned, spawn)
}

func countEvents(events []event.GameEvent, t event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= floatTolerance
}

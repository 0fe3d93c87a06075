package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/config"
	"github.com/lixenwraith/tank-arena/event"
)

const floatTolerance = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance
}

type recordingSpawner struct {
	spawned []component.ProjectileSpawn
}

func (r *recordingSpawner) SpawnProjectile(spawn component.ProjectileSpawn) {
	r.spawned = append(r.spawned, spawn)
}

// newTestTank creates an active tank on a large floor at (x, z) facing +Z
func newTestTank(t *testing.T, slot int, x, z float64, spawner *recordingSpawner, queue *event.EventQueue) *Tank {
	t.Helper()
	cfg := config.Default()
	body := NewBody(cfg.Tank.Radius, 1000, 1000)
	tank := NewTank(slot, cfg.Tank, body, spawner, queue, zerolog.Nop())
	tank.Respawn(config.Point{X: x, Z: z})
	tank.Activate()
	queue.Consume()
	return tank
}

func newTestArena(t *testing.T, mutate func(*config.Config)) (*Arena, *event.EventQueue) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	queue := event.NewEventQueue()
	arena, err := NewArena(cfg, config.DefaultLayout(), queue, rand.New(rand.NewPCG(1, 2)), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create arena: %v", err)
	}
	return arena, queue
}

func eventTypes(events []event.GameEvent) []event.EventType {
	out := make([]event.EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func countType(events []event.GameEvent, t event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func indexOf(events []event.GameEvent, t event.EventType) int {
	for i, ev := range events {
		if ev.Type == t {
			return i
		}
	}
	return -1
}

package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/config"
	"github.com/lixenwraith/tank-arena/event"
)

func newTestSpawner(queue *event.EventQueue, pads ...config.Point) *ItemSpawner {
	cfg := config.Default().Pickup
	cfg.Interval = time.Second
	return NewItemSpawner(cfg, pads, rand.New(rand.NewPCG(7, 7)), queue)
}

func TestPickupTableDefaults(t *testing.T) {
	table := NewPickupTable(config.Default().Pickup)
	want := map[component.EffectKind]float64{
		component.EffectHeal:     0.5,
		component.EffectSpeed:    10,
		component.EffectBarrier:  10,
		component.EffectDynamite: 99999999,
	}
	for kind, magnitude := range want {
		if table[kind] != magnitude {
			t.Errorf("Expected %v magnitude %v, got %v", kind, magnitude, table[kind])
		}
	}
}

func TestItemSpawnerWaitsForInterval(t *testing.T) {
	queue := event.NewEventQueue()
	s := newTestSpawner(queue, config.Point{X: 5, Z: 5})

	// Counter must exceed the interval, then the next update spawns
	for i := 0; i < 50; i++ {
		s.Update(testTick)
	}
	if s.Pads()[0].HasItem {
		t.Fatal("Expected no item at exactly the interval")
	}
	s.Update(testTick)
	s.Update(testTick)
	if !s.Pads()[0].HasItem {
		t.Fatal("Expected item once interval exceeded")
	}
	if n := countType(queue.Consume(), event.EventPickupSpawned); n != 1 {
		t.Errorf("Expected 1 spawn event, got %d", n)
	}

	// Occupied pads do not spawn again
	for i := 0; i < 200; i++ {
		s.Update(testTick)
	}
	if n := countType(queue.Consume(), event.EventPickupSpawned); n != 0 {
		t.Errorf("Expected no respawn while occupied, got %d", n)
	}
}

func TestItemSpawnerCollectRestartsPad(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 5, 5, &recordingSpawner{}, queue)
	s := newTestSpawner(queue, config.Point{X: 5, Z: 5})

	s.Place(0, component.EffectBarrier)
	s.Collect([]*Tank{tank})

	if s.Pads()[0].HasItem {
		t.Error("Expected item removed on collection")
	}
	if !tank.Snapshot().State.Effects.BarrierActive() {
		t.Error("Expected barrier applied to collector")
	}

	var collected *event.PickupPayload
	for _, ev := range queue.Consume() {
		if ev.Type == event.EventPickupCollected {
			collected = ev.Payload.(*event.PickupPayload)
		}
	}
	if collected == nil || collected.Slot != 0 || collected.Kind != component.EffectBarrier || collected.Pad != 0 {
		t.Errorf("Unexpected collection payload %+v", collected)
	}

	// Restart re-armed the counter
	for i := 0; i < 52; i++ {
		s.Update(testTick)
	}
	if !s.Pads()[0].HasItem {
		t.Error("Expected pad to respawn after restart")
	}
}

func TestItemSpawnerIgnoresDistantAndInactiveTanks(t *testing.T) {
	queue := event.NewEventQueue()
	far := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)
	dead := newTestTank(t, 1, 5, 5, &recordingSpawner{}, queue)
	dead.Deactivate()

	s := newTestSpawner(queue, config.Point{X: 5, Z: 5})
	s.Place(0, component.EffectHeal)
	s.Collect([]*Tank{far, dead})

	if !s.Pads()[0].HasItem {
		t.Error("Expected item to stay on the pad")
	}
}

func TestItemSpawnerReset(t *testing.T) {
	s := newTestSpawner(event.NewEventQueue(), config.Point{X: 1, Z: 1}, config.Point{X: 2, Z: 2})
	s.Place(0, component.EffectSpeed)
	s.Place(5, component.EffectSpeed)

	s.Reset()
	for _, pad := range s.Pads() {
		if pad.HasItem {
			t.Errorf("Expected pad %d cleared", pad.Index)
		}
	}
}

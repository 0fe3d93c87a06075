package audio

import (
	"testing"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/vmath"
)

type fakePlayer struct {
	calls  []string
	power  float64
	kind   component.EffectKind
	engine map[int]bool
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{engine: make(map[int]bool)}
}

func (f *fakePlayer) SetEngine(slot int, driving bool) {
	f.calls = append(f.calls, "engine")
	f.engine[slot] = driving
}
func (f *fakePlayer) StopEngine(slot int) {
	f.calls = append(f.calls, "stop_engine")
	delete(f.engine, slot)
}
func (f *fakePlayer) StartCharge(int) { f.calls = append(f.calls, "charge") }
func (f *fakePlayer) StopCharge(int)  { f.calls = append(f.calls, "stop_charge") }
func (f *fakePlayer) PlayFire(power float64) {
	f.calls = append(f.calls, "fire")
	f.power = power
}
func (f *fakePlayer) PlayExplosion() { f.calls = append(f.calls, "explosion") }
func (f *fakePlayer) PlayPickup(kind component.EffectKind) {
	f.calls = append(f.calls, "pickup")
	f.kind = kind
}

func TestCueSystemRoutesEvents(t *testing.T) {
	queue := event.NewEventQueue()
	router := event.NewRouter(queue)
	player := newFakePlayer()
	router.Register(NewCueSystem(player, 15, 30))

	queue.Push(event.GameEvent{Type: event.EventEngineStateChanged, Payload: &event.EnginePayload{Slot: 0, Driving: true}})
	queue.Push(event.GameEvent{Type: event.EventChargeStarted, Payload: &event.TankPayload{Slot: 0}})
	queue.Push(event.GameEvent{Type: event.EventProjectileFired, Payload: &event.ProjectileFiredPayload{
		Spawn: component.ProjectileSpawn{Owner: 0, Velocity: vmath.Vec3F{Z: 22.5}},
	}})
	queue.Push(event.GameEvent{Type: event.EventShellExploded, Payload: &event.ExplosionPayload{Owner: 0}})
	queue.Push(event.GameEvent{Type: event.EventPickupCollected, Payload: &event.PickupPayload{Kind: component.EffectBarrier}})
	queue.Push(event.GameEvent{Type: event.EventTankDeactivated, Payload: &event.TankPayload{Slot: 0}})
	router.DispatchAll()

	expected := []string{"engine", "charge", "stop_charge", "fire", "explosion", "pickup", "stop_charge", "stop_engine"}
	if len(player.calls) != len(expected) {
		t.Fatalf("Expected calls %v, got %v", expected, player.calls)
	}
	for i := range expected {
		if player.calls[i] != expected[i] {
			t.Errorf("Call %d: expected %s, got %s", i, expected[i], player.calls[i])
		}
	}
	if player.power != 0.5 {
		t.Errorf("Expected fire power 0.5, got %f", player.power)
	}
	if player.kind != component.EffectBarrier {
		t.Errorf("Expected barrier chime, got %s", player.kind)
	}
	if len(player.engine) != 0 {
		t.Error("Expected engine stopped after deactivation")
	}
}

func TestCueSystemActivationStartsIdleEngine(t *testing.T) {
	queue := event.NewEventQueue()
	router := event.NewRouter(queue)
	player := newFakePlayer()
	router.Register(NewCueSystem(player, 15, 30))

	queue.Push(event.GameEvent{Type: event.EventEngineStateChanged, Payload: &event.EnginePayload{Slot: 1, Driving: true}})
	queue.Push(event.GameEvent{Type: event.EventTankActivated, Payload: &event.TankPayload{Slot: 1}})
	router.DispatchAll()

	driving, ok := player.engine[1]
	if !ok {
		t.Fatal("Expected engine running after activation")
	}
	if driving {
		t.Error("Expected idle engine after activation, got driving")
	}
	if last := player.calls[len(player.calls)-2]; last != "stop_charge" {
		t.Errorf("Expected charge whine stopped on activation, got %v", player.calls)
	}
}

func TestCueSystemPowerClamp(t *testing.T) {
	c := NewCueSystem(newFakePlayer(), 15, 30)
	if p := c.power(5); p != 0 {
		t.Errorf("Expected 0 below min force, got %f", p)
	}
	if p := c.power(40); p != 1 {
		t.Errorf("Expected 1 above max force, got %f", p)
	}
	if p := NewCueSystem(newFakePlayer(), 20, 20).power(20); p != 1 {
		t.Errorf("Expected 1 for an empty range, got %f", p)
	}
}

package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/input"
	"github.com/lixenwraith/tank-arena/vmath"
)

const testTick = 20 * time.Millisecond

func TestTankDeactivateReactivateClearsBarrier(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	tank.Pickup(component.EffectBarrier, 10)
	if got := tank.Snapshot().State.Modifiers.Resist; got != 0.1 {
		t.Fatalf("Expected resist 0.1 with barrier, got %v", got)
	}

	tank.Deactivate()
	tank.Activate()

	state := tank.Snapshot().State
	if state.Modifiers.Resist != 1 || state.Effects.BarrierActive() {
		t.Errorf("Expected barrier cleared after reactivation, got resist %v remaining %v",
			state.Modifiers.Resist, state.Effects.BarrierRemaining)
	}

	// Full damage now lands
	if applied := tank.Hit(40, 1); applied != 40 {
		t.Errorf("Expected 40 applied after reactivation, got %v", applied)
	}
}

func TestTankDeathFiresOnce(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	effects := 0
	tank.DeathEffect = func(slot int, pos vmath.Vec3F) {
		effects++
		if slot != 0 {
			t.Errorf("Expected death effect for slot 0, got %d", slot)
		}
	}

	tank.Hit(40, 1)
	tank.Hit(70, 1)
	for i := 0; i < 5; i++ {
		tank.Hit(100, 1)
	}

	events := queue.Consume()
	if n := countType(events, event.EventTankDestroyed); n != 1 {
		t.Errorf("Expected 1 destroyed event, got %d", n)
	}
	if effects != 1 {
		t.Errorf("Expected 1 death effect, got %d", effects)
	}
	if tank.Active() {
		t.Error("Expected tank deactivated on death")
	}

	// A wreck keeps absorbing damage without dying again
	state := tank.Snapshot().State
	if state.Health.Current != -510 || !state.Health.Dead {
		t.Errorf("Expected dead at -510, got %v dead=%v", state.Health.Current, state.Health.Dead)
	}
	if n := countType(events, event.EventDamageTaken); n != 7 {
		t.Errorf("Expected 7 damage events, got %d", n)
	}
	if !tank.Dead() {
		t.Error("Expected tank to report dead until reactivated")
	}
	// Damage event precedes the death it caused
	if indexOf(events, event.EventDamageTaken) > indexOf(events, event.EventTankDestroyed) {
		t.Errorf("Expected damage before destruction, got %v", eventTypes(events))
	}
}

func TestTankDynamitePickupKills(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	if !tank.Pickup(component.EffectDynamite, 99999999) {
		t.Fatal("Expected pickup accepted")
	}
	if tank.Active() {
		t.Error("Expected tank destroyed by dynamite")
	}
	if tank.Pickup(component.EffectHeal, 0.5) {
		t.Error("Expected dead tank to reject pickups")
	}

	events := queue.Consume()
	dmg := indexOf(events, event.EventDamageTaken)
	destroyed := indexOf(events, event.EventTankDestroyed)
	if dmg < 0 || destroyed < 0 || dmg > destroyed {
		t.Errorf("Expected damage then destruction, got %v", eventTypes(events))
	}
}

func TestTankChargeAndFireThroughControls(t *testing.T) {
	queue := event.NewEventQueue()
	spawner := &recordingSpawner{}
	tank := newTestTank(t, 0, 50, 50, spawner, queue)

	// The press tick charges too: 25 held ticks of 20ms
	tank.Tick(testTick, input.Controls{Fire: input.ButtonEdges{Pressed: true, Held: true}})
	for i := 0; i < 24; i++ {
		tank.Tick(testTick, input.Controls{Fire: input.ButtonEdges{Held: true}})
	}
	tank.Tick(testTick, input.Controls{Fire: input.ButtonEdges{Released: true}})

	if len(spawner.spawned) != 1 {
		t.Fatalf("Expected 1 shot, got %d", len(spawner.spawned))
	}
	shot := spawner.spawned[0]
	if !almostEqual(shot.Speed(), 25) {
		t.Errorf("Expected launch speed 25 after 0.5s hold, got %v", shot.Speed())
	}
	// Muzzle sits ahead of the hull along +Z
	if !almostEqual(shot.Position.Z, 50+1.5) {
		t.Errorf("Expected muzzle at z=51.5, got %v", shot.Position.Z)
	}
}

func TestTankPressTickCharges(t *testing.T) {
	queue := event.NewEventQueue()
	spawner := &recordingSpawner{}
	tank := newTestTank(t, 0, 50, 50, spawner, queue)

	tank.Tick(100*time.Millisecond, input.Controls{Fire: input.ButtonEdges{Pressed: true, Held: true}})
	if got := tank.Snapshot().State.Charge.CurrentForce; !almostEqual(got, 17) {
		t.Errorf("Expected force 17 after the press tick, got %v", got)
	}

	tank.Tick(testTick, input.Controls{Fire: input.ButtonEdges{Released: true}})
	if len(spawner.spawned) != 1 || !almostEqual(spawner.spawned[0].Speed(), 17) {
		t.Errorf("Expected one shot at 17, got %v", spawner.spawned)
	}
}

func TestTankWreckAbsorbsSecondExplosion(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	tank.Hit(100, 1)
	if applied := tank.Hit(30, 1); applied != 30 {
		t.Errorf("Expected 30 applied to the wreck, got %v", applied)
	}
	if got := tank.Snapshot().State.Health.Current; got != -30 {
		t.Errorf("Expected health -30, got %v", got)
	}
	if n := countType(queue.Consume(), event.EventTankDestroyed); n != 1 {
		t.Errorf("Expected 1 destroyed event, got %d", n)
	}

	tank.Activate()
	if tank.Dead() || tank.Snapshot().State.Health.Current != 100 {
		t.Error("Expected reactivation to clear the wreck")
	}
}

func TestTankSpeedEffectScalesMovement(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	tank.Pickup(component.EffectSpeed, 10)
	tank.Tick(time.Second, input.Controls{Move: 1})

	if got := tank.Position().Z; !almostEqual(got, 50+12*1.4) {
		t.Errorf("Expected z=%v with speed boost, got %v", 50+12*1.4, got)
	}
}

func TestTankEffectExpiresBeforeMovement(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	tank.Pickup(component.EffectSpeed, 0.1)
	tank.Tick(100*time.Millisecond, input.Controls{Move: 1})

	// Expired this tick, so base speed applies
	if got := tank.Position().Z; !almostEqual(got, 50+1.2) {
		t.Errorf("Expected z=51.2 at base speed, got %v", got)
	}
}

func TestTankEngineStateEvents(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	tank.Tick(testTick, input.Controls{Move: 0.05})
	tank.Tick(testTick, input.Controls{Turn: 1})
	tank.Tick(testTick, input.Controls{Move: 1})
	tank.Tick(testTick, input.Controls{})

	var states []bool
	for _, ev := range queue.Consume() {
		if ev.Type == event.EventEngineStateChanged {
			states = append(states, ev.Payload.(*event.EnginePayload).Driving)
		}
	}
	if len(states) != 2 || !states[0] || states[1] {
		t.Errorf("Expected transitions [true false], got %v", states)
	}
}

func TestTankInactiveIgnoresInput(t *testing.T) {
	queue := event.NewEventQueue()
	spawner := &recordingSpawner{}
	tank := newTestTank(t, 0, 50, 50, spawner, queue)
	tank.Deactivate()

	tank.Tick(time.Second, input.Controls{Move: 1, Fire: input.ButtonEdges{Pressed: true, Held: true}})
	tank.Tick(time.Second, input.Controls{Fire: input.ButtonEdges{Released: true}})

	if got := tank.Position().Z; got != 50 {
		t.Errorf("Expected inactive tank to stay at z=50, got %v", got)
	}
	if len(spawner.spawned) != 0 {
		t.Errorf("Expected no shots from inactive tank, got %d", len(spawner.spawned))
	}
	if tank.Pickup(component.EffectSpeed, 10) {
		t.Error("Expected inactive tank to reject pickups")
	}
	if tank.Hit(50, 1) != 0 {
		t.Error("Expected inactive tank to ignore hits")
	}
}

func TestTankNonPositiveDtSkipped(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)
	tank.Pickup(component.EffectBarrier, 1)

	tank.Tick(0, input.Controls{Move: 1})
	tank.Tick(-time.Second, input.Controls{Move: 1})

	state := tank.Snapshot().State
	if state.Transform.Position.Z != 50 || state.Effects.BarrierRemaining != time.Second {
		t.Errorf("Expected no change for dt <= 0, got z=%v barrier=%v",
			state.Transform.Position.Z, state.Effects.BarrierRemaining)
	}
}

func TestTankBarrierReducesShellDamage(t *testing.T) {
	queue := event.NewEventQueue()
	tank := newTestTank(t, 0, 50, 50, &recordingSpawner{}, queue)

	tank.Pickup(component.EffectBarrier, 10)
	if applied := tank.Hit(50, 1); !almostEqual(applied, 5) {
		t.Errorf("Expected 5 applied through barrier, got %v", applied)
	}
}

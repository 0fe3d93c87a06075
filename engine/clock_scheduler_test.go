package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/input"
	"github.com/lixenwraith/tank-arena/parameter"
)

// stubSource returns fixed controls and counts polls
type stubSource struct {
	controls []input.Controls
	polls    atomic.Int32
}

func (s *stubSource) Poll() []input.Controls {
	s.polls.Add(1)
	return s.controls
}

// countingHandler counts routed events of its types
type countingHandler struct {
	types []event.EventType
	count atomic.Int32
}

func (h *countingHandler) EventTypes() []event.EventType { return h.types }
func (h *countingHandler) HandleEvent(event.GameEvent)   { h.count.Add(1) }

func newTestScheduler(t *testing.T) (*ClockScheduler, *Arena, *ManualClock, *stubSource, *countingHandler) {
	t.Helper()
	arena, queue := newTestArena(t, nil)
	clock := NewManualClock(time.Unix(1000, 0))
	source := &stubSource{controls: []input.Controls{{Move: 1}}}
	handler := &countingHandler{types: []event.EventType{event.EventRoundStarted, event.EventEngineStateChanged}}

	cs := NewClockScheduler(arena, source, event.NewRouter(queue), clock, parameter.GameUpdateInterval, zerolog.Nop())
	cs.RegisterEventHandler(handler)
	arena.Start()
	return cs, arena, clock, source, handler
}

func TestSchedulerStepAdvancesAndDispatches(t *testing.T) {
	cs, arena, clock, source, handler := newTestScheduler(t)

	clock.Advance(20 * time.Millisecond)
	cs.Step()

	if cs.TickCount() != 1 || arena.Snapshot().Tick != 1 {
		t.Errorf("Expected 1 tick, got scheduler %d arena %d", cs.TickCount(), arena.Snapshot().Tick)
	}
	if source.polls.Load() != 1 {
		t.Errorf("Expected 1 poll, got %d", source.polls.Load())
	}
	// RoundStarted from Start plus the engine switching to driving
	if got := handler.count.Load(); got != 2 {
		t.Errorf("Expected 2 routed events, got %d", got)
	}
}

func TestSchedulerSkipsNonPositiveDt(t *testing.T) {
	cs, arena, clock, source, _ := newTestScheduler(t)

	cs.Step()
	clock.Advance(-time.Second)
	cs.Step()

	if cs.SkippedTicks() != 2 {
		t.Errorf("Expected 2 skipped ticks, got %d", cs.SkippedTicks())
	}
	if arena.Snapshot().Tick != 0 || source.polls.Load() != 0 {
		t.Errorf("Expected no arena tick or poll, got tick %d polls %d", arena.Snapshot().Tick, source.polls.Load())
	}
}

func TestSchedulerCapsLongStall(t *testing.T) {
	cs, arena, clock, _, _ := newTestScheduler(t)
	startX := arena.Snapshot().Tanks[0].State.Transform.Position.X

	clock.Advance(5 * time.Second)
	cs.Step()

	moved := arena.Snapshot().Tanks[0].State.Transform.Position.X - startX
	want := 12 * parameter.MaxTickDelta.Seconds()
	if !almostEqual(moved, want) {
		t.Errorf("Expected movement capped to %v, got %v", want, moved)
	}
}

func TestSchedulerPausedClockSkipsTicks(t *testing.T) {
	arena, queue := newTestArena(t, nil)
	src := NewManualClock(time.Unix(1000, 0))
	clock := NewPausableClock(src)
	cs := NewClockScheduler(arena, &stubSource{}, event.NewRouter(queue), clock, parameter.GameUpdateInterval, zerolog.Nop())
	arena.Start()

	clock.Pause()
	src.Advance(time.Second)
	cs.Step()
	if cs.SkippedTicks() != 1 {
		t.Errorf("Expected paused step skipped, got %d", cs.SkippedTicks())
	}

	clock.Resume()
	src.Advance(20 * time.Millisecond)
	cs.Step()
	if cs.TickCount() != 1 {
		t.Errorf("Expected tick after resume, got %d", cs.TickCount())
	}
}

func TestSchedulerStartStop(t *testing.T) {
	arena, queue := newTestArena(t, nil)
	cs := NewClockScheduler(arena, &stubSource{}, event.NewRouter(queue), NewTimeProvider(), time.Millisecond, zerolog.Nop())
	arena.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cs.Start(ctx)
	// Second start is a no-op
	cs.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for cs.TickCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cs.Stop()

	if cs.TickCount() < 3 {
		t.Errorf("Expected at least 3 ticks, got %d", cs.TickCount())
	}
	stopped := cs.TickCount()
	time.Sleep(10 * time.Millisecond)
	if cs.TickCount() != stopped {
		t.Error("Expected no ticks after Stop")
	}
}

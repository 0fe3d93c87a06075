package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tank-arena/core"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/input"
	"github.com/lixenwraith/tank-arena/parameter"
)

// ControlSource supplies per-slot controls once per tick
type ControlSource interface {
	Poll() []input.Controls
}

// ClockScheduler drives the arena on a fixed tick and dispatches queued events
// dt is measured from the clock, so a paused clock produces skipped ticks
type ClockScheduler struct {
	arena  *Arena
	source ControlSource
	router *event.Router
	clock  Clock
	logger zerolog.Logger

	tickInterval time.Duration
	lastTickTime time.Time

	tickCount    atomic.Uint64
	skippedTicks atomic.Uint64
	lastDropped  uint64

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewClockScheduler creates a scheduler; handlers are registered on router before Start
func NewClockScheduler(
	arena *Arena,
	source ControlSource,
	router *event.Router,
	clock Clock,
	tickInterval time.Duration,
	logger zerolog.Logger,
) *ClockScheduler {
	return &ClockScheduler{
		arena:        arena,
		source:       source,
		router:       router,
		clock:        clock,
		tickInterval: tickInterval,
		lastTickTime: clock.Now(),
		logger:       logger.With().Str("component", "scheduler").Logger(),
	}
}

// RegisterEventHandler adds an event handler to router, must be called before Start()
func (cs *ClockScheduler) RegisterEventHandler(handler event.Handler) {
	cs.router.Register(handler)
}

// Start begins the scheduler loop until ctx is cancelled or Stop is called
func (cs *ClockScheduler) Start(ctx context.Context) {
	if !cs.running.CompareAndSwap(false, true) {
		return
	}
	ctx, cs.cancel = context.WithCancel(ctx)
	cs.lastTickTime = cs.clock.Now()

	cs.wg.Add(1)
	// Use core.Go for safe execution with centralized crash handling
	core.Go(func() {
		defer cs.wg.Done()
		cs.schedulerLoop(ctx)
	})
}

// Stop halts the scheduler loop and waits for the in-flight tick
func (cs *ClockScheduler) Stop() {
	if cs.running.CompareAndSwap(true, false) {
		cs.cancel()
		cs.wg.Wait()
	}
}

// TickCount returns the number of ticks that advanced the arena
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// SkippedTicks returns the number of ticks dropped for a non-positive dt
func (cs *ClockScheduler) SkippedTicks() uint64 {
	return cs.skippedTicks.Load()
}

func (cs *ClockScheduler) schedulerLoop(ctx context.Context) {
	ticker := time.NewTicker(cs.tickInterval)
	defer ticker.Stop()

	cs.logger.Debug().Dur("interval", cs.tickInterval).Msg("scheduler started")
	for {
		select {
		case <-ctx.Done():
			// Flush events emitted by the last tick
			cs.router.DispatchAll()
			cs.logger.Debug().Uint64("ticks", cs.tickCount.Load()).Msg("scheduler stopped")
			return
		case <-ticker.C:
			cs.Step()
		}
	}
}

// Step measures dt since the previous step, advances the arena and dispatches events
// Non-positive dt is skipped; long stalls are capped so a hiccup cannot tunnel shells
func (cs *ClockScheduler) Step() {
	now := cs.clock.Now()
	dt := now.Sub(cs.lastTickTime)
	cs.lastTickTime = now

	if dt <= 0 {
		cs.skippedTicks.Add(1)
	} else {
		if dt > parameter.MaxTickDelta {
			dt = parameter.MaxTickDelta
		}
		cs.arena.Tick(dt, cs.source.Poll())
		cs.tickCount.Add(1)
	}

	cs.router.DispatchAll()

	if dropped := cs.router.Dropped(); dropped != cs.lastDropped {
		cs.logger.Warn().Uint64("dropped", dropped-cs.lastDropped).Msg("event queue overflow")
		cs.lastDropped = dropped
	}
}

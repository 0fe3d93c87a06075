package engine

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tank-arena/config"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/input"
	"github.com/lixenwraith/tank-arena/vmath"
)

// Snapshot is a consistent copy of the arena between ticks
type Snapshot struct {
	Tick       uint64
	Round      int
	RoundOver  bool
	Winner     int
	RestartIn  time.Duration
	Width      float64
	Depth      float64
	Tanks      []TankSnapshot
	Shells     []Shell
	Explosions []Explosion
	Pads       []PadSnapshot
	Score      []int
}

// Arena composes tanks, shells and pickups into rounds
// Tick and Snapshot are serialised by mu so readers never see a half-applied tick
type Arena struct {
	mu sync.Mutex

	cfg    *config.Config
	layout *config.Layout
	logger zerolog.Logger

	tick    atomic.Uint64
	emitter tickEmitter

	floor  *Body
	tanks  []*Tank
	shells *ShellSystem
	items  *ItemSpawner

	round     int
	roundOver bool
	winner    int
	restartIn time.Duration
	score     []int
}

// NewArena builds an arena for cfg.Arena.Players tanks on layout
// Tanks stay inactive until Start
func NewArena(
	cfg *config.Config,
	layout *config.Layout,
	queue *event.EventQueue,
	rng *rand.Rand,
	logger zerolog.Logger,
) (*Arena, error) {
	players := cfg.Arena.Players
	if err := layout.Validate(players); err != nil {
		return nil, fmt.Errorf("layout %q: %w", layout.Name, err)
	}

	a := &Arena{
		cfg:    cfg,
		layout: layout,
		logger: logger.With().Str("component", "arena").Logger(),
		floor:  NewBody(0, layout.Width, layout.Depth),
		winner: -1,
		score:  make([]int, players),
	}
	a.emitter = tickEmitter{queue: queue, tick: &a.tick}
	a.shells = NewShellSystem(cfg.Shell, a.floor, a.emitter)
	a.items = NewItemSpawner(cfg.Pickup, layout.Pads, rng, a.emitter)

	for slot := 0; slot < players; slot++ {
		body := NewBody(cfg.Tank.Radius, layout.Width, layout.Depth)
		t := NewTank(slot, cfg.Tank, body, a.shells, a.emitter, logger)
		t.DeathEffect = a.deathEffect
		a.tanks = append(a.tanks, t)
	}
	return a, nil
}

// Start begins the first round
func (a *Arena) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.startRound()
}

// Tick advances the whole arena by dt
// controls is indexed by slot; missing entries mean no input
func (a *Arena) Tick(dt time.Duration, controls []input.Controls) {
	if dt <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.tick.Add(1)

	for i, t := range a.tanks {
		var c input.Controls
		if i < len(controls) {
			c = controls[i]
		}
		t.Tick(dt, c)
	}

	// Damage and pickups resolve after every tank has expired its effects this tick
	a.shells.Update(dt, a.tanks)
	a.items.Update(dt)
	a.items.Collect(a.tanks)

	a.updateRound(dt)
}

// Tank returns the tank in slot, nil if out of range
// Callers outside the scheduler goroutine must not mutate it
func (a *Arena) Tank(slot int) *Tank {
	if slot < 0 || slot >= len(a.tanks) {
		return nil
	}
	return a.tanks[slot]
}

// Items exposes the pad spawner
func (a *Arena) Items() *ItemSpawner {
	return a.items
}

// Snapshot returns a consistent copy for rendering
func (a *Arena) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		Tick:       a.tick.Load(),
		Round:      a.round,
		RoundOver:  a.roundOver,
		Winner:     a.winner,
		RestartIn:  a.restartIn,
		Width:      a.layout.Width,
		Depth:      a.layout.Depth,
		Shells:     a.shells.Shells(),
		Explosions: a.shells.Explosions(),
		Pads:       a.items.Pads(),
		Score:      append([]int(nil), a.score...),
	}
	for _, t := range a.tanks {
		snap.Tanks = append(snap.Tanks, t.Snapshot())
	}
	return snap
}

func (a *Arena) startRound() {
	a.round++
	a.roundOver = false
	a.winner = -1
	a.restartIn = 0

	a.shells.Clear()
	a.items.Reset()
	for i, t := range a.tanks {
		t.Respawn(a.layout.Spawns[i])
		t.Activate()
	}

	a.emitter.Push(event.GameEvent{
		Type:    event.EventRoundStarted,
		Payload: &event.RoundPayload{Round: a.round, Winner: -1},
	})
	a.logger.Info().Int("round", a.round).Msg("round started")
}

// updateRound ends the round when at most one tank is left, then restarts after the delay
// A single-player arena ends only when its tank is gone
func (a *Arena) updateRound(dt time.Duration) {
	if a.roundOver {
		a.restartIn -= dt
		if a.restartIn <= 0 {
			a.startRound()
		}
		return
	}

	alive := 0
	survivor := -1
	for _, t := range a.tanks {
		if t.Active() {
			alive++
			survivor = t.Slot()
		}
	}

	threshold := 1
	if len(a.tanks) == 1 {
		threshold = 0
	}
	if alive > threshold {
		return
	}

	a.roundOver = true
	a.restartIn = a.cfg.Round.RestartDelay
	a.winner = survivor
	if survivor >= 0 {
		a.score[survivor]++
	}

	a.emitter.Push(event.GameEvent{
		Type:    event.EventRoundEnded,
		Payload: &event.RoundPayload{Round: a.round, Winner: survivor},
	})
	a.logger.Info().Int("round", a.round).Int("winner", survivor).Msg("round ended")

	if a.restartIn <= 0 {
		a.startRound()
	}
}

func (a *Arena) deathEffect(_ int, position vmath.Vec3F) {
	a.shells.AddExplosion(position, a.cfg.Tank.Radius*2)
}

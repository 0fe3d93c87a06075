package engine

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/config"
	"github.com/lixenwraith/tank-arena/event"
	"github.com/lixenwraith/tank-arena/vmath"
)

// PickupTable maps an item kind to the magnitude it applies
// Heal is a fraction of max health, Speed and Barrier are seconds, Dynamite is raw damage
type PickupTable map[component.EffectKind]float64

// NewPickupTable builds the table from configuration
func NewPickupTable(cfg config.PickupConfig) PickupTable {
	return PickupTable{
		component.EffectHeal:     cfg.HealFraction,
		component.EffectSpeed:    cfg.SpeedDuration.Seconds(),
		component.EffectBarrier:  cfg.BarrierDuration.Seconds(),
		component.EffectDynamite: cfg.DynamiteDamage,
	}
}

// Item is a pickup resting on a pad
// Restart re-arms the pad that spawned it once the item is taken
type Item struct {
	Kind      component.EffectKind
	Magnitude float64
	Restart   func()
}

// Pad is a spawn platform that produces one item at a time
type Pad struct {
	Index    int
	Position vmath.Vec3F
	Item     *Item

	counter time.Duration
	armed   bool
}

// PadSnapshot is a read-only view of a pad
type PadSnapshot struct {
	Index    int
	Position vmath.Vec3F
	HasItem  bool
	Kind     component.EffectKind
}

// ItemSpawner runs the per-pad respawn counters and resolves item collisions
type ItemSpawner struct {
	pads     []*Pad
	interval time.Duration
	radius   float64
	table    PickupTable
	kinds    []component.EffectKind
	rng      *rand.Rand
	events   event.Emitter
}

// NewItemSpawner creates armed pads at the given positions
func NewItemSpawner(cfg config.PickupConfig, pads []config.Point, rng *rand.Rand, events event.Emitter) *ItemSpawner {
	s := &ItemSpawner{
		interval: cfg.Interval,
		radius:   cfg.Radius,
		table:    NewPickupTable(cfg),
		kinds:    component.EffectKinds,
		rng:      rng,
		events:   events,
	}
	for i, p := range pads {
		s.pads = append(s.pads, &Pad{
			Index:    i,
			Position: vmath.Vec3F{X: p.X, Z: p.Z},
			armed:    true,
		})
	}
	return s
}

// Update accumulates time on empty pads and spawns an item when the interval is exceeded
func (s *ItemSpawner) Update(dt time.Duration) {
	for _, pad := range s.pads {
		if !pad.armed {
			continue
		}
		if pad.counter > s.interval {
			s.spawn(pad, s.kinds[s.rng.IntN(len(s.kinds))])
		} else {
			pad.counter += dt
		}
	}
}

// Collect hands items to overlapping active tanks
// A tank that rejects the item leaves it on the pad
func (s *ItemSpawner) Collect(tanks []*Tank) {
	for _, pad := range s.pads {
		if pad.Item == nil {
			continue
		}
		for _, t := range tanks {
			if !t.Active() {
				continue
			}
			if vmath.V3FDistanceXZ(pad.Position, t.Position()) > t.Radius()+s.radius {
				continue
			}

			item := pad.Item
			if !t.Pickup(item.Kind, item.Magnitude) {
				continue
			}
			pad.Item = nil
			s.events.Push(event.GameEvent{
				Type: event.EventPickupCollected,
				Payload: &event.PickupPayload{
					Pad:       pad.Index,
					Slot:      t.Slot(),
					Kind:      item.Kind,
					Magnitude: item.Magnitude,
					Position:  pad.Position,
				},
			})
			item.Restart()
			break
		}
	}
}

// Place puts a specific item on a pad immediately
func (s *ItemSpawner) Place(index int, kind component.EffectKind) {
	if index < 0 || index >= len(s.pads) {
		return
	}
	s.spawn(s.pads[index], kind)
}

// Reset clears every pad and re-arms its counter
func (s *ItemSpawner) Reset() {
	for _, pad := range s.pads {
		pad.Item = nil
		pad.counter = 0
		pad.armed = true
	}
}

// Pads returns a snapshot of every pad
func (s *ItemSpawner) Pads() []PadSnapshot {
	out := make([]PadSnapshot, len(s.pads))
	for i, pad := range s.pads {
		out[i] = PadSnapshot{Index: pad.Index, Position: pad.Position}
		if pad.Item != nil {
			out[i].HasItem = true
			out[i].Kind = pad.Item.Kind
		}
	}
	return out
}

func (s *ItemSpawner) spawn(pad *Pad, kind component.EffectKind) {
	pad.counter = 0
	pad.armed = false
	pad.Item = &Item{
		Kind:      kind,
		Magnitude: s.table[kind],
		Restart: func() {
			pad.counter = 0
			pad.armed = true
		},
	}
	s.events.Push(event.GameEvent{
		Type: event.EventPickupSpawned,
		Payload: &event.PickupPayload{
			Pad:       pad.Index,
			Slot:      -1,
			Kind:      kind,
			Magnitude: pad.Item.Magnitude,
			Position:  pad.Position,
		},
	})
}

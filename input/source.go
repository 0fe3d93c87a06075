package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalSource turns tcell key events into per-slot Controls
// HandleKey runs on the event goroutine, Poll on the simulation goroutine
type TerminalSource struct {
	mu      sync.Mutex
	keymap  *KeyMap
	latch   *Latch
	fire    []EdgeDetector
	players int
	now     func() time.Time
}

// NewTerminalSource creates a source for the given number of player slots
func NewTerminalSource(keymap *KeyMap, players int, holdTimeout time.Duration) *TerminalSource {
	return &TerminalSource{
		keymap:  keymap,
		latch:   NewLatch(holdTimeout),
		fire:    make([]EdgeDetector, players),
		players: players,
		now:     time.Now,
	}
}

// HandleKey records a key press
// Command keys are returned to the caller instead of being latched
func (s *TerminalSource) HandleKey(ev *tcell.EventKey) Command {
	if cmd := s.keymap.Command(ev); cmd != CommandNone {
		return cmd
	}
	b, ok := s.keymap.Lookup(ev)
	if !ok || b.Slot < 0 || b.Slot >= s.players {
		return CommandNone
	}

	s.mu.Lock()
	s.latch.Touch(b, s.now())
	s.mu.Unlock()
	return CommandNone
}

// Poll samples all slots for one tick
func (s *TerminalSource) Poll() []Controls {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]Controls, s.players)
	for slot := range out {
		down := func(a Action) bool {
			return s.latch.Down(Binding{Slot: slot, Action: a}, now)
		}
		out[slot] = Controls{
			Move: Axis(down(ActionForward), down(ActionBack)),
			Turn: Axis(down(ActionTurnRight), down(ActionTurnLeft)),
			Fire: s.fire[slot].Update(down(ActionFire)),
		}
	}
	return out
}

// Reset releases all keys and forgets edge history
func (s *TerminalSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latch.Clear()
	for i := range s.fire {
		s.fire[i].Reset()
	}
}

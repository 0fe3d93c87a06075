package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/tank-arena/event"
)

// tickEmitter stamps events with the current simulation tick before queueing
type tickEmitter struct {
	queue *event.EventQueue
	tick  *atomic.Uint64
}

func (e tickEmitter) Push(ev event.GameEvent) {
	ev.Tick = e.tick.Load()
	e.queue.Push(ev)
}

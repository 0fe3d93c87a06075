package event

import (
	"sync/atomic"

	"github.com/lixenwraith/tank-arena/parameter"
)

// EventQueue is a lock-free MPSC ring of game events
// Producers claim a slot by CAS on tail and publish it with a per-slot flag;
// the single consumer (the scheduler) drains published slots in order.
// When producers lap the consumer the oldest events are overwritten and counted in Dropped
type EventQueue struct {
	slots   [parameter.EventQueueSize]GameEvent
	ready   [parameter.EventQueueSize]atomic.Bool
	head    atomic.Uint64 // Next slot to read
	tail    atomic.Uint64 // Next slot to claim
	dropped atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends event; safe for concurrent producers
func (eq *EventQueue) Push(event GameEvent) {
	for {
		claimed := eq.tail.Load()
		if !eq.tail.CompareAndSwap(claimed, claimed+1) {
			continue
		}

		idx := claimed & parameter.EventBufferMask
		eq.slots[idx] = event
		eq.ready[idx].Store(true)

		// Lapped the reader: move head past the overwritten slot
		head := eq.head.Load()
		if claimed+1-head > parameter.EventQueueSize {
			if eq.head.CompareAndSwap(head, claimed+1-parameter.EventQueueSize) {
				eq.dropped.Add(1)
			}
		}
		return
	}
}

// Consume returns all published events in FIFO order
func (eq *EventQueue) Consume() []GameEvent {
	return eq.ConsumeInto(nil)
}

// ConsumeInto appends all published events to dst and returns it
// Stops at the first slot a producer has claimed but not yet written
func (eq *EventQueue) ConsumeInto(dst []GameEvent) []GameEvent {
	base := len(dst)
	for {
		head := eq.head.Load()
		tail := eq.tail.Load()
		if tail == head {
			return dst
		}

		pending := tail - head
		if pending > parameter.EventQueueSize {
			head = tail - parameter.EventQueueSize
			pending = parameter.EventQueueSize
		}

		dst = dst[:base]
		for i := uint64(0); i < pending; i++ {
			idx := (head + i) & parameter.EventBufferMask
			if !eq.ready[idx].Load() {
				break
			}
			dst = append(dst, eq.slots[idx])
			eq.ready[idx].Store(false)
		}

		if eq.head.CompareAndSwap(head, head+uint64(len(dst)-base)) {
			return dst
		}
	}
}

// Len returns the approximate number of pending events
func (eq *EventQueue) Len() int {
	head := eq.head.Load()
	tail := eq.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, parameter.EventQueueSize))
}

// Dropped returns how many events were overwritten before being consumed
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}

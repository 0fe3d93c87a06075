package input

import "time"

// Latch tracks held keys for terminals that only report key presses
// A key stays down until timeout passes without a repeat press
// The first timeout is longer to bridge the terminal's initial auto-repeat delay
type Latch struct {
	timeout      time.Duration
	initialDelay time.Duration
	first        map[Binding]time.Time
	last         map[Binding]time.Time
}

// NewLatch creates a latch with the given repeat timeout
func NewLatch(timeout time.Duration) *Latch {
	return &Latch{
		timeout:      timeout,
		initialDelay: 2 * timeout,
		first:        make(map[Binding]time.Time),
		last:         make(map[Binding]time.Time),
	}
}

// Touch records a press or auto-repeat of b at now
func (l *Latch) Touch(b Binding, now time.Time) {
	if !l.Down(b, now) {
		l.first[b] = now
	}
	l.last[b] = now
}

// Down reports whether b is considered held at now
func (l *Latch) Down(b Binding, now time.Time) bool {
	last, ok := l.last[b]
	if !ok {
		return false
	}
	window := l.timeout
	// Still waiting for the first auto-repeat
	if last.Equal(l.first[b]) {
		window = l.initialDelay
	}
	if now.Sub(last) > window {
		delete(l.last, b)
		delete(l.first, b)
		return false
	}
	return true
}

// Release forces b up, used when a key has an explicit release
func (l *Latch) Release(b Binding) {
	delete(l.last, b)
	delete(l.first, b)
}

// Clear releases every key
func (l *Latch) Clear() {
	clear(l.last)
	clear(l.first)
}

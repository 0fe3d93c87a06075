package input

// Action is a per-player control the keymap can bind
type Action uint8

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionTurnLeft
	ActionTurnRight
	ActionFire
)

var actionNames = map[Action]string{
	ActionNone:      "none",
	ActionForward:   "forward",
	ActionBack:      "back",
	ActionTurnLeft:  "turn_left",
	ActionTurnRight: "turn_right",
	ActionFire:      "fire",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ButtonEdges is one tick of a digital button
// Held is true on the press tick as well, matching polled-button semantics
type ButtonEdges struct {
	Pressed  bool
	Held     bool
	Released bool
}

// Controls is the normalized input for one player slot for one tick
// Move and Turn are in [-1,1]; positive Move is forward, positive Turn is clockwise
type Controls struct {
	Move float64
	Turn float64
	Fire ButtonEdges
}

// Axis folds a pair of opposing digital keys into [-1,1]
func Axis(positive, negative bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	default:
		return 0
	}
}

// EdgeDetector derives press and release edges from a sampled down state
type EdgeDetector struct {
	down bool
}

// Update samples the button and returns this tick's edges
func (d *EdgeDetector) Update(down bool) ButtonEdges {
	edges := ButtonEdges{
		Pressed:  down && !d.down,
		Held:     down,
		Released: !down && d.down,
	}
	d.down = down
	return edges
}

// Reset forgets the previous sample
func (d *EdgeDetector) Reset() {
	d.down = false
}

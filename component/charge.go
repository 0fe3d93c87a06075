package component

// ChargeState is the resting state of the charge-fire controller
// Firing is a transition Charging -> Idle, never a resting state
type ChargeState uint8

const (
	ChargeIdle ChargeState = iota
	ChargeCharging
)

func (s ChargeState) String() string {
	switch s {
	case ChargeIdle:
		return "idle"
	case ChargeCharging:
		return "charging"
	default:
		return "unknown"
	}
}

// ChargeComponent tracks the launch force accumulated since the trigger was pressed
type ChargeComponent struct {
	State        ChargeState
	CurrentForce float64
}

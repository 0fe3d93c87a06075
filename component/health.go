package component

// HealthComponent holds hit points and the dead flag of a tank
// Current may drop below zero on overkill; any Current <= 0 counts as dead
type HealthComponent struct {
	Current float64
	Max     float64

	// Dead flips false -> true once per life, cleared only by reactivation
	Dead bool
}

// Fraction returns Current/Max clamped to [0,1] for display
func (h HealthComponent) Fraction() float64 {
	if h.Max <= 0 || h.Current <= 0 {
		return 0
	}
	if h.Current >= h.Max {
		return 1
	}
	return h.Current / h.Max
}

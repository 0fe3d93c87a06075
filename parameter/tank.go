package parameter

import "time"

// Locomotion
const (
	// TankSpeed is forward/backward travel in world units per second at full input
	TankSpeed = 12.0

	// TankTurnSpeed is yaw rate in degrees per second at full input
	TankTurnSpeed = 180.0

	// TankRadius is the collision radius used for shell hits and pickup overlap
	TankRadius = 1.2

	// EngineInputThreshold is the axis magnitude below which the engine is considered idling
	EngineInputThreshold = 0.1
)

// Health
const (
	// TankMaxHealth is the health each tank starts a round with
	TankMaxHealth = 100.0

	// HealthBandHigh is the health above which the bar is drawn green
	HealthBandHigh = 60.0

	// HealthBandLow is the health above which the bar is drawn yellow, red below
	HealthBandLow = 30.0
)

// Charge-fire
const (
	// MinLaunchForce is the shell velocity when fire is tapped
	MinLaunchForce = 15.0

	// MaxLaunchForce is the shell velocity after holding fire for MaxChargeTime
	MaxLaunchForce = 30.0

	// MaxChargeTime is how long fire must be held to reach MaxLaunchForce
	MaxChargeTime = 750 * time.Millisecond

	// MuzzleOffset is the distance from the tank center to the shell spawn point
	MuzzleOffset = 1.5
)

package system

import (
	"time"

	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/vmath"
)

// Mover is the physics collaborator that owns spatial truth
// Deltas are applied once per tick and always succeed
type Mover interface {
	ApplyPositionDelta(delta vmath.Vec3F)
	ApplyRotationDelta(yawDelta float64)
}

// Integrate converts normalized input into a pose delta
// Position moves along the current facing; rotation is yaw only
// Inputs outside [-1,1] are clamped
func Integrate(
	yaw, moveInput, turnInput float64,
	dt time.Duration,
	speedMultiplier, baseSpeed, baseTurnSpeed float64,
) (vmath.Vec3F, float64) {
	secs := dt.Seconds()
	move := vmath.Clamp(moveInput, -1, 1)
	turn := vmath.Clamp(turnInput, -1, 1)

	positionDelta := vmath.V3FScale(vmath.Forward(yaw), move*baseSpeed*secs*speedMultiplier)
	rotationDelta := turn * baseTurnSpeed * secs * speedMultiplier
	return positionDelta, rotationDelta
}

// LocomotionSystem feeds integrated deltas to the mover
// Reads the speed multiplier, never writes pose
type LocomotionSystem struct {
	mover     Mover
	transform *component.TransformComponent
	modifiers *component.ModifierComponent

	speed     float64
	turnSpeed float64
}

// NewLocomotionSystem binds the integrator to one tank's pose and modifiers
func NewLocomotionSystem(
	mover Mover,
	transform *component.TransformComponent,
	modifiers *component.ModifierComponent,
	speed, turnSpeed float64,
) *LocomotionSystem {
	return &LocomotionSystem{
		mover:     mover,
		transform: transform,
		modifiers: modifiers,
		speed:     speed,
		turnSpeed: turnSpeed,
	}
}

// Update integrates one tick and hands the result to the mover
// Zero input still calls the mover with zero deltas to keep the per-tick contract simple
func (s *LocomotionSystem) Update(moveInput, turnInput float64, dt time.Duration) (vmath.Vec3F, float64) {
	dp, dyaw := Integrate(
		s.transform.Yaw, moveInput, turnInput, dt,
		s.modifiers.Speed, s.speed, s.turnSpeed,
	)
	s.mover.ApplyPositionDelta(dp)
	s.mover.ApplyRotationDelta(dyaw)
	return dp, dyaw
}

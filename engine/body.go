package engine

import (
	"github.com/lixenwraith/tank-arena/component"
	"github.com/lixenwraith/tank-arena/vmath"
)

// Body is the kinematic physics body of a tank on a bounded floor
// Implements system.Mover; position is clamped so the hull stays inside the floor
type Body struct {
	position vmath.Vec3F
	yaw      float64
	radius   float64

	width float64
	depth float64
}

// NewBody creates a body of the given radius on a width x depth floor
func NewBody(radius, width, depth float64) *Body {
	return &Body{
		radius: radius,
		width:  width,
		depth:  depth,
	}
}

// ApplyPositionDelta moves the body, clamping to the floor
func (b *Body) ApplyPositionDelta(delta vmath.Vec3F) {
	b.position = b.clamp(vmath.V3FAdd(b.position, delta))
}

// ApplyRotationDelta turns the body about the vertical axis
func (b *Body) ApplyRotationDelta(yawDelta float64) {
	b.yaw = vmath.NormalizeYaw(b.yaw + yawDelta)
}

// Teleport places the body, used on spawn
func (b *Body) Teleport(position vmath.Vec3F, yaw float64) {
	b.position = b.clamp(position)
	b.yaw = vmath.NormalizeYaw(yaw)
}

// Pose returns the current pose for mirroring into TankState
func (b *Body) Pose() component.TransformComponent {
	return component.TransformComponent{Position: b.position, Yaw: b.yaw}
}

// Radius returns the collision radius
func (b *Body) Radius() float64 {
	return b.radius
}

// Contains reports whether p lies on the floor
func (b *Body) Contains(p vmath.Vec3F) bool {
	return p.X >= 0 && p.X <= b.width && p.Z >= 0 && p.Z <= b.depth
}

func (b *Body) clamp(p vmath.Vec3F) vmath.Vec3F {
	r := b.radius
	// A floor narrower than the hull pins the body to the centerline
	minX, maxX := r, b.width-r
	if minX > maxX {
		minX, maxX = b.width/2, b.width/2
	}
	minZ, maxZ := r, b.depth-r
	if minZ > maxZ {
		minZ, maxZ = b.depth/2, b.depth/2
	}
	return vmath.Vec3F{
		X: vmath.Clamp(p.X, minX, maxX),
		Y: 0,
		Z: vmath.Clamp(p.Z, minZ, maxZ),
	}
}

package component

import "github.com/lixenwraith/tank-arena/vmath"

// TransformComponent mirrors the physics body pose
// The physics collaborator owns spatial truth; this copy is refreshed after each delta
type TransformComponent struct {
	Position vmath.Vec3F
	Yaw      float64 // Degrees, see vmath.Forward
}

// Forward returns the unit facing vector
func (t TransformComponent) Forward() vmath.Vec3F {
	return vmath.Forward(t.Yaw)
}

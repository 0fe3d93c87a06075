package component

import "github.com/lixenwraith/tank-arena/vmath"

// ProjectileSpawn is an immutable request to launch a shell
// The spawner owns the projectile lifetime after receiving it
type ProjectileSpawn struct {
	Owner    int
	Position vmath.Vec3F
	Yaw      float64
	Velocity vmath.Vec3F
}

// Speed returns the launch velocity magnitude
func (p ProjectileSpawn) Speed() float64 {
	return vmath.V3FMag(p.Velocity)
}

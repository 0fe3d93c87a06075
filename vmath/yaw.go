package vmath

import "math"

// Forward returns the unit facing vector for a yaw in degrees
// Yaw 0 faces +Z, positive yaw turns clockwise when viewed from above (toward +X)
func Forward(yawDeg float64) Vec3F {
	rad := yawDeg * math.Pi / 180
	return Vec3F{X: math.Sin(rad), Y: 0, Z: math.Cos(rad)}
}

// NormalizeYaw wraps a yaw into [0, 360)
func NormalizeYaw(yawDeg float64) float64 {
	y := math.Mod(yawDeg, 360)
	if y < 0 {
		y += 360
	}
	return y
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

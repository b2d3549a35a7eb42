package core

import "math"

// Frame is an orthonormal basis (S, T, N). Directions expressed in a frame's
// local coordinates have the normal along +Z.
type Frame struct {
	S, T, N Vec3
}

// NewFrame builds a frame around the unit normal n
func NewFrame(n Vec3) Frame {
	s, t := CoordinateSystem(n)
	return Frame{S: s, T: t, N: n}
}

// CoordinateSystem returns two unit tangents completing n to a right-handed basis
func CoordinateSystem(n Vec3) (Vec3, Vec3) {
	var c Vec3
	if math.Abs(n.X) > math.Abs(n.Y) {
		invLen := 1.0 / math.Sqrt(n.X*n.X+n.Z*n.Z)
		c = Vec3{n.Z * invLen, 0, -n.X * invLen}
	} else {
		invLen := 1.0 / math.Sqrt(n.Y*n.Y+n.Z*n.Z)
		c = Vec3{0, n.Z * invLen, -n.Y * invLen}
	}
	return c.Cross(n), c
}

// ToLocal converts a world-space direction into frame coordinates
func (f Frame) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(f.S), v.Dot(f.T), v.Dot(f.N)}
}

// ToWorld converts a frame-local direction back to world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.S.Multiply(v.X).Add(f.T.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// CosTheta returns the cosine of the angle between a local direction and the normal
func CosTheta(v Vec3) float64 {
	return v.Z
}

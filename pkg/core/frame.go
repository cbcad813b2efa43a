package core

import "math"

// Frame is an orthonormal shading basis with N as the local +Z axis.
// Material responses are evaluated in this local space where cos(theta) is
// simply the Z component of a direction.
type Frame struct {
	T, B, N Vec3
}

// NewFrame builds a frame around the unit normal n
func NewFrame(n Vec3) Frame {
	// Pick a helper axis that is not parallel to n
	var helper Vec3
	if math.Abs(n.X) > 0.1 {
		helper = NewVec3(0, 1, 0)
	} else {
		helper = NewVec3(1, 0, 0)
	}

	t := helper.Cross(n).Normalize()
	b := n.Cross(t)
	return Frame{T: t, B: b, N: n}
}

// ToLocal expresses a world-space direction in the frame
func (f Frame) ToLocal(v Vec3) Vec3 {
	return NewVec3(v.Dot(f.T), v.Dot(f.B), v.Dot(f.N))
}

// ToWorld expresses a local direction in world space
func (f Frame) ToWorld(v Vec3) Vec3 {
	return f.T.Multiply(v.X).Add(f.B.Multiply(v.Y)).Add(f.N.Multiply(v.Z))
}

// CosTheta returns the cosine between a local direction and the frame normal
func CosTheta(local Vec3) float64 {
	return local.Z
}

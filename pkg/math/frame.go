package math

// Frame is a local coordinate system: an origin plus a rotation whose columns are the frame axes.
type Frame struct {
	Origin   Vec3
	Rotation Quat
}

// NewFrame returns a frame at origin with the given rotation (normalized).
func NewFrame(origin Vec3, rotation Quat) Frame {
	return Frame{Origin: origin, Rotation: rotation.Normalize()}
}

// X returns the frame's first axis.
func (f Frame) X() Vec3 { return f.Rotation.Rotate(Vec3{1, 0, 0}) }

// Y returns the frame's second axis.
func (f Frame) Y() Vec3 { return f.Rotation.Rotate(Vec3{0, 1, 0}) }

// Z returns the frame's third axis.
func (f Frame) Z() Vec3 { return f.Rotation.Rotate(Vec3{0, 0, 1}) }

// ToFramePoint maps a world point into frame coordinates.
func (f Frame) ToFramePoint(p Vec3) Vec3 {
	return f.Rotation.InverseRotate(p.Sub(f.Origin))
}

// FromFramePoint maps a point in frame coordinates back to world space.
func (f Frame) FromFramePoint(p Vec3) Vec3 {
	return f.Rotation.Rotate(p).Add(f.Origin)
}

// ToFrameVector maps a world direction into frame coordinates.
func (f Frame) ToFrameVector(v Vec3) Vec3 {
	return f.Rotation.InverseRotate(v)
}

// FromFrameVector maps a frame direction back to world space.
func (f Frame) FromFrameVector(v Vec3) Vec3 {
	return f.Rotation.Rotate(v)
}

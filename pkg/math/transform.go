package math

// Transformer maps positions and normals and can undo the mapping.
// Transform, TransformSequence and Affine implement it.
type Transformer interface {
	TransformPosition(p Vec3) Vec3
	TransformNormal(n Vec3) Vec3
	InverseTransformPosition(p Vec3) Vec3
	InverseTransformNormal(n Vec3) Vec3
	// Determinant is the determinant of the linear part; a negative value mirrors geometry.
	Determinant() float32
}

// Transform is a scale, then rotate, then translate transform:
// T(p) = Rotation.Rotate(Scale*p) + Translation.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{Rotation: QuatIdentity(), Scale: Vec3One}
}

// NewTransform builds a transform from its components. The rotation is normalized.
func NewTransform(translation Vec3, rotation Quat, scale Vec3) Transform {
	return Transform{Translation: translation, Rotation: rotation.Normalize(), Scale: scale}
}

// Matrix returns the column-major matrix of the transform, for use with Affine.
func (t Transform) Matrix() Mat4 {
	s := t.Scale
	return Translate(t.Translation.X, t.Translation.Y, t.Translation.Z).
		Mul(t.Rotation.ToMat4()).
		Mul(Scale(s.X, s.Y, s.Z))
}

// Determinant returns Scale.X*Scale.Y*Scale.Z; rotation does not affect it.
func (t Transform) Determinant() float32 {
	return t.Scale.X * t.Scale.Y * t.Scale.Z
}

// TransformPosition applies the full transform to a point.
func (t Transform) TransformPosition(p Vec3) Vec3 {
	return t.Rotation.Rotate(t.Scale.Mul(p)).Add(t.Translation)
}

// TransformVector applies scale and rotation to a direction.
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rotation.Rotate(t.Scale.Mul(v))
}

// TransformNormal applies the inverse-transpose of scale followed by the rotation and
// returns a unit normal.
func (t Transform) TransformNormal(n Vec3) Vec3 {
	s := t.Scale
	sign := signNonZero(s.X * s.Y * s.Z)
	// multiplying by the determinant sign is enough, the magnitude goes away when normalizing
	safeInv := Vec3{s.Y * s.Z * sign, s.X * s.Z * sign, s.X * s.Y * sign}
	return t.Rotation.Rotate(safeInv.Mul(n).Normalize())
}

// InverseTransformPosition undoes TransformPosition. Zero scale components map to zero.
func (t Transform) InverseTransformPosition(p Vec3) Vec3 {
	return safeReciprocal(t.Scale).Mul(t.Rotation.InverseRotate(p.Sub(t.Translation)))
}

// InverseTransformVector undoes TransformVector.
func (t Transform) InverseTransformVector(v Vec3) Vec3 {
	return safeReciprocal(t.Scale).Mul(t.Rotation.InverseRotate(v))
}

// InverseTransformNormal undoes TransformNormal and returns a unit normal.
func (t Transform) InverseTransformNormal(n Vec3) Vec3 {
	return t.Rotation.InverseRotate(t.Scale.Mul(n).Normalize())
}

// HasNonUniformScale reports whether the scale components differ by more than tolerance.
func (t Transform) HasNonUniformScale(tolerance float32) bool {
	s := t.Scale
	return absf(s.X-s.Y) > tolerance || absf(s.X-s.Z) > tolerance || absf(s.Y-s.Z) > tolerance
}

// TransformSequence applies transforms in order: the first appended is applied first.
type TransformSequence struct {
	Transforms []Transform
}

// Append adds t to the end of the sequence.
func (s *TransformSequence) Append(t Transform) {
	s.Transforms = append(s.Transforms, t)
}

// Len returns the number of transforms.
func (s *TransformSequence) Len() int {
	return len(s.Transforms)
}

// Determinant returns the product of the determinants.
func (s *TransformSequence) Determinant() float32 {
	det := float32(1)
	for _, t := range s.Transforms {
		det *= t.Determinant()
	}
	return det
}

// WillInvert reports whether applying the sequence mirrors geometry.
func (s *TransformSequence) WillInvert() bool {
	return s.Determinant() < 0
}

// TransformPosition applies every transform in order.
func (s *TransformSequence) TransformPosition(p Vec3) Vec3 {
	for _, t := range s.Transforms {
		p = t.TransformPosition(p)
	}
	return p
}

// TransformNormal applies every transform in order.
func (s *TransformSequence) TransformNormal(n Vec3) Vec3 {
	for _, t := range s.Transforms {
		n = t.TransformNormal(n)
	}
	return n
}

// InverseTransformPosition undoes the sequence, last transform first.
func (s *TransformSequence) InverseTransformPosition(p Vec3) Vec3 {
	for k := len(s.Transforms) - 1; k >= 0; k-- {
		p = s.Transforms[k].InverseTransformPosition(p)
	}
	return p
}

// InverseTransformNormal undoes the sequence, last transform first.
func (s *TransformSequence) InverseTransformNormal(n Vec3) Vec3 {
	for k := len(s.Transforms) - 1; k >= 0; k-- {
		n = s.Transforms[k].InverseTransformNormal(n)
	}
	return n
}

// Affine is a general affine transform backed by a Mat4 and its cached inverse.
type Affine struct {
	M   Mat4
	Inv Mat4
}

// NewAffine caches the inverse of m. A singular m gets an identity inverse.
func NewAffine(m Mat4) Affine {
	return Affine{M: m, Inv: m.Inverse()}
}

// Determinant returns the determinant of the linear part of M.
func (a Affine) Determinant() float32 {
	return a.M.Determinant3x3()
}

// TransformPosition applies M to a point.
func (a Affine) TransformPosition(p Vec3) Vec3 {
	return a.M.TransformPoint(p)
}

// TransformNormal applies the inverse-transpose of M's linear part.
func (a Affine) TransformNormal(n Vec3) Vec3 {
	return a.M.TransformNormal(n)
}

// InverseTransformPosition applies the cached inverse to a point.
func (a Affine) InverseTransformPosition(p Vec3) Vec3 {
	return a.Inv.TransformPoint(p)
}

// InverseTransformNormal applies the inverse-transpose of the cached inverse.
func (a Affine) InverseTransformNormal(n Vec3) Vec3 {
	return a.Inv.TransformNormal(n)
}

func signNonZero(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func safeReciprocal(v Vec3) Vec3 {
	r := func(x float32) float32 {
		if x == 0 {
			return 0
		}
		return 1 / x
	}
	return Vec3{r(v.X), r(v.Y), r(v.Z)}
}

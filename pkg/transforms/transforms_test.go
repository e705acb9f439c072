package transforms_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshgen"
	"github.com/Faultbox/dynmesh/pkg/transforms"
)

const tol = 1e-5

func assertVec3Near(t *testing.T, want, got math.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tol, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tol, msgAndArgs...)
}

func box(t *testing.T) *dmesh.Mesh {
	t.Helper()
	m, err := meshgen.Box(2)
	require.NoError(t, err)
	return m
}

func grid(t *testing.T) *dmesh.Mesh {
	t.Helper()
	m, err := meshgen.Grid(meshgen.GridOptions{Width: 3, Height: 2})
	require.NoError(t, err)
	return m
}

func positions(m *dmesh.Mesh) map[int]math.Vec3 {
	out := make(map[int]math.Vec3)
	for vid := range m.VertexIndices() {
		out[vid] = m.GetVertex(vid)
	}
	return out
}

func centroid(m *dmesh.Mesh, tid int) math.Vec3 {
	a, b, c := m.GetTriVertices(tid)
	return a.Add(b).Add(c).Scale(1.0 / 3)
}

// faceOrientation returns +1 if every triangle of a box centered at the origin
// faces outward, -1 if every triangle faces inward and 0 otherwise.
func faceOrientation(m *dmesh.Mesh) int {
	out, in := 0, 0
	for tid := range m.TriangleIndices() {
		n, _ := m.TriNormalArea(tid)
		if n.Dot(centroid(m, tid)) > 0 {
			out++
		} else {
			in++
		}
	}
	switch {
	case in == 0:
		return 1
	case out == 0:
		return -1
	}
	return 0
}

func TestTranslateRoundTrip(t *testing.T) {
	m := grid(t)
	before := positions(m)
	n0 := m.GetVertexNormal(0)

	offset := math.Vec3{X: 1.5, Y: -2, Z: 0.25}
	transforms.Translate(m, offset)
	assert.Equal(t, before[5].Add(offset), m.GetVertex(5))

	transforms.Translate(m, offset.Neg())
	assert.Equal(t, before, positions(m))
	assert.Equal(t, n0, m.GetVertexNormal(0))
	require.NoError(t, m.CheckValidity())
}

func TestScaleAboutOrigin(t *testing.T) {
	m := grid(t)
	origin := math.Vec3{X: 1, Y: 0, Z: 1}
	transforms.Scale(m, math.Vec3{X: 2, Y: 1, Z: 3}, origin, true)

	// vid 0 sits at (0,0,0), vid 6 at (2,0,1)
	assertVec3Near(t, math.Vec3{X: -2, Y: 0, Z: -3}, m.GetVertex(0))
	assertVec3Near(t, math.Vec3{X: 3, Y: 0, Z: 1}, m.GetVertex(6))
	assertVec3Near(t, math.Vec3{X: 0, Y: 1, Z: 0}, m.GetVertexNormal(3))
}

func TestScaleMirror(t *testing.T) {
	tests := []struct {
		name    string
		reverse bool
		want    int
	}{
		{"reverse", true, 1},
		{"keep winding", false, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := box(t)
			require.Equal(t, 1, faceOrientation(m))

			transforms.Scale(m, math.Vec3{X: -1, Y: 1, Z: 1}, math.Vec3{}, tt.reverse)
			assert.Equal(t, tt.want, faceOrientation(m))

			// overlay normals follow the geometry and keep pointing outward
			normals := m.Attributes().PrimaryNormals()
			for tid := range m.TriangleIndices() {
				a, b, c, ok := normals.GetTriElements(tid)
				require.True(t, ok)
				ctr := centroid(m, tid)
				for _, n := range []math.Vec3{a, b, c} {
					assert.Greater(t, n.Dot(ctr), float32(0), "triangle %d", tid)
					assert.InDelta(t, 1, n.Length(), tol)
				}
			}
			require.NoError(t, m.CheckValidity())
		})
	}
}

func TestApplyTransformInverse(t *testing.T) {
	m := grid(t)
	before := positions(m)

	xf := math.NewTransform(
		math.Vec3{X: 1, Y: 2, Z: 3},
		math.QuatFromAxisAngle(math.Vec3{Z: 1}, 0.7),
		math.Vec3{X: 2, Y: 1, Z: 0.5})
	transforms.ApplyTransform(m, xf, true)

	assertVec3Near(t, xf.TransformPosition(before[4]), m.GetVertex(4))
	n := m.GetVertexNormal(4)
	assert.InDelta(t, 1, n.Length(), tol)
	assertVec3Near(t, math.Vec3{X: -math32.Sin(0.7), Y: math32.Cos(0.7)}, n)
	assertVec3Near(t, n, m.Attributes().PrimaryNormals().GetElement(0))

	transforms.ApplyTransformInverse(m, xf, true)
	for vid, p := range before {
		assertVec3Near(t, p, m.GetVertex(vid), "vertex %d", vid)
		assertVec3Near(t, math.Vec3{Y: 1}, m.GetVertexNormal(vid), "normal %d", vid)
	}
	require.NoError(t, m.CheckValidity())
}

func TestApplyAffine(t *testing.T) {
	m := box(t)
	aff := math.NewAffine(math.Translate(0, 0, 4).Mul(math.Scale(1, 1, -1)))
	require.Less(t, aff.Determinant(), float32(0))

	transforms.ApplyTransform(m, aff, true)
	transforms.Translate(m, math.Vec3{Z: -4})
	assert.Equal(t, 1, faceOrientation(m))

	transforms.ApplyTransform(m, aff, false)
	transforms.Translate(m, math.Vec3{Z: -4})
	assert.Equal(t, -1, faceOrientation(m))
}

func TestFrameRoundTrip(t *testing.T) {
	m := box(t)
	before := positions(m)
	frame := math.NewFrame(math.Vec3{X: 1, Y: 2, Z: 3}, math.QuatFromAxisAngle(math.Vec3{Y: 1}, math32.Pi/2))

	transforms.WorldToFrameCoords(m, frame)
	for vid, p := range before {
		assertVec3Near(t, frame.ToFramePoint(p), m.GetVertex(vid))
	}
	n := m.Attributes().PrimaryNormals().GetElement(0)
	assert.InDelta(t, 1, n.Length(), tol)

	transforms.FrameCoordsToWorld(m, frame)
	for vid, p := range before {
		assertVec3Near(t, p, m.GetVertex(vid), "vertex %d", vid)
	}
	assert.Equal(t, 1, faceOrientation(m))
}

func TestApplyTransformSequence(t *testing.T) {
	first := math.NewTransform(math.Vec3{X: 3}, math.QuatIdentity(), math.Vec3{X: 1, Y: 1, Z: 1})
	second := math.NewTransform(math.Vec3{}, math.QuatIdentity(), math.Vec3{X: 1, Y: 1, Z: -2})

	var seq math.TransformSequence
	seq.Append(first)
	seq.Append(second)
	require.True(t, seq.WillInvert())

	stepwise := box(t)
	transforms.ApplyTransform(stepwise, first, true)
	transforms.ApplyTransform(stepwise, second, true)

	m := box(t)
	transforms.ApplyTransformSequence(m, &seq, true)

	for vid := range m.VertexIndices() {
		assertVec3Near(t, stepwise.GetVertex(vid), m.GetVertex(vid), "vertex %d", vid)
	}
	for tid := range m.TriangleIndices() {
		assert.Equal(t, stepwise.GetTriangle(tid), m.GetTriangle(tid))
	}
	assertVec3Near(t, math.Vec3{X: 4, Y: 1, Z: -2}, m.GetVertex(7))
}

func TestApplyTransformFuncs(t *testing.T) {
	m := grid(t)
	n0 := m.GetVertexNormal(0)
	transforms.ApplyTransformFuncs(m, func(p math.Vec3) math.Vec3 {
		return math.Vec3{X: p.X, Y: p.X * p.Z, Z: p.Z}
	}, nil)

	assertVec3Near(t, math.Vec3{X: 2, Y: 4, Z: 2}, m.GetVertex(10))
	assert.Equal(t, n0, m.GetVertexNormal(0))
}

func TestReverseOrientationIfNeeded(t *testing.T) {
	m := box(t)
	assert.False(t, transforms.ReverseOrientationIfNeeded(m, math.IdentityTransform()))
	assert.Equal(t, 1, faceOrientation(m))

	mirror := math.NewTransform(math.Vec3{}, math.QuatIdentity(), math.Vec3{X: -1, Y: 1, Z: 1})
	assert.True(t, transforms.ReverseOrientationIfNeeded(m, mirror))
	assert.Equal(t, -1, faceOrientation(m))
}

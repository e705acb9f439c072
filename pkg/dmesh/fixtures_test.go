package dmesh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// buildMesh appends the given positions and triangles, failing the test on any rejected triangle.
func buildMesh(t *testing.T, verts []math.Vec3, tris []meshinfo.Index3) *Mesh {
	t.Helper()
	m := New()
	for _, v := range verts {
		m.AppendVertex(v)
	}
	for _, tri := range tris {
		_, res := m.AppendTriangle(tri)
		require.Equal(t, EditOK, res, "append %v", tri)
	}
	return m
}

// quadMesh is the unit square split along (0,2), facing +Z.
func quadMesh(t *testing.T) *Mesh {
	return buildMesh(t,
		[]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
		[]meshinfo.Index3{{0, 1, 2}, {0, 2, 3}})
}

// fanMesh is a closed hexagonal fan around vertex 0.
func fanMesh(t *testing.T) *Mesh {
	verts := []math.Vec3{{X: 0, Y: 0, Z: 0}}
	var tris []meshinfo.Index3
	for i := 0; i < 6; i++ {
		angle := float32(i) * math32.Pi / 3
		verts = append(verts, math.Vec3{X: math32.Cos(angle), Y: math32.Sin(angle), Z: 0})
		tris = append(tris, meshinfo.Index3{0, 1 + i, 1 + (i+1)%6})
	}
	return buildMesh(t, verts, tris)
}

func tetraMesh(t *testing.T) *Mesh {
	return buildMesh(t,
		[]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}},
		[]meshinfo.Index3{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}})
}

// bowtieMesh has two triangles touching only at vertex 0.
func bowtieMesh(t *testing.T) *Mesh {
	return buildMesh(t,
		[]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: -1, Y: 0, Z: 0}, {X: -1, Y: -1, Z: 0}},
		[]meshinfo.Index3{{0, 1, 2}, {0, 3, 4}})
}

// gridMesh is an n x n cell grid in the XY plane with attributes enabled and one
// shared UV and normal element per vertex.
func gridMesh(t *testing.T, n int) *Mesh {
	t.Helper()
	m := New()
	m.EnableAttributes()
	uv, normals := m.Attributes().PrimaryUV(), m.Attributes().PrimaryNormals()
	var uvElems, nElems []int
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.AppendVertex(math.Vec3{X: float32(x), Y: float32(y), Z: 0})
			uvElems = append(uvElems, uv.AppendElement(math.Vec2{X: float32(x) / float32(n), Y: float32(y) / float32(n)}))
			nElems = append(nElems, normals.AppendElement(math.Vec3{Z: 1}))
		}
	}
	vid := func(x, y int) int { return y*(n+1) + x }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			for _, tri := range [2]meshinfo.Index3{
				{vid(x, y), vid(x+1, y), vid(x+1, y+1)},
				{vid(x, y), vid(x+1, y+1), vid(x, y+1)},
			} {
				tid, res := m.AppendTriangle(tri)
				require.Equal(t, EditOK, res)
				uv.SetTriangle(tid, meshinfo.Index3{uvElems[tri[0]], uvElems[tri[1]], uvElems[tri[2]]})
				normals.SetTriangle(tid, meshinfo.Index3{nElems[tri[0]], nElems[tri[1]], nElems[tri[2]]})
			}
		}
	}
	require.NoError(t, m.CheckValidity())
	return m
}

// seamedGridMesh is gridMesh with a UV seam down the middle column, a separate
// color element on every corner and material ids cycling by column.
func seamedGridMesh(t *testing.T, n int) *Mesh {
	t.Helper()
	m := New()
	m.EnableAttributes()
	attrs := m.Attributes()
	attrs.EnablePrimaryColors()
	attrs.EnableMaterialID()
	uv, normals, colors := attrs.PrimaryUV(), attrs.PrimaryNormals(), attrs.PrimaryColors()

	var nElems []int
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			m.AppendVertex(math.Vec3{X: float32(x), Y: float32(y), Z: 0})
			nElems = append(nElems, normals.AppendElement(math.Vec3{Z: 1}))
		}
	}
	type uvKey struct{ vid, side int }
	uvElems := make(map[uvKey]int)
	uvAt := func(vid, side int) int {
		k := uvKey{vid, side}
		if eid, ok := uvElems[k]; ok {
			return eid
		}
		x, y := vid%(n+1), vid/(n+1)
		eid := uv.AppendElement(math.Vec2{X: float32(x)/float32(n) + float32(side), Y: float32(y) / float32(n)})
		uvElems[k] = eid
		return eid
	}

	vid := func(x, y int) int { return y*(n+1) + x }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			side := 0
			if x >= n/2 {
				side = 1
			}
			for _, tri := range [2]meshinfo.Index3{
				{vid(x, y), vid(x+1, y), vid(x+1, y+1)},
				{vid(x, y), vid(x+1, y+1), vid(x, y+1)},
			} {
				tid, res := m.AppendTriangle(tri)
				require.Equal(t, EditOK, res)
				uv.SetTriangle(tid, meshinfo.Index3{uvAt(tri[0], side), uvAt(tri[1], side), uvAt(tri[2], side)})
				normals.SetTriangle(tid, meshinfo.Index3{nElems[tri[0]], nElems[tri[1]], nElems[tri[2]]})
				var corners meshinfo.Index3
				for j := range corners {
					corners[j] = colors.AppendElement(math.Vec4{float32(x) / float32(n), float32(y) / float32(n), float32(j) / 2, 1})
				}
				colors.SetTriangle(tid, corners)
				attrs.MaterialID().SetValue(tid, int32(x%3))
			}
		}
	}
	require.NoError(t, m.CheckValidity())
	return m
}

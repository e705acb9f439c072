package attributes_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshgen"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

func grid(t *testing.T, w, h int) *dmesh.Mesh {
	t.Helper()
	m, err := meshgen.Grid(meshgen.GridOptions{Width: w, Height: h, CellSize: 1})
	require.NoError(t, err)
	return m
}

func box(t *testing.T) *dmesh.Mesh {
	t.Helper()
	m, err := meshgen.Box(2)
	require.NoError(t, err)
	return m
}

// bowtie builds two triangles joined only at vertex 0. Both overlays give each
// vertex one element, so vertex 0 carries a bowtie element.
func bowtie(t *testing.T) *dmesh.Mesh {
	t.Helper()
	m := dmesh.New()
	m.EnableAttributes()
	for _, p := range []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: -1}} {
		m.AppendVertex(p)
	}
	uv, normals := m.Attributes().PrimaryUV(), m.Attributes().PrimaryNormals()
	var uvElems, nElems []int
	for vid := range m.VertexIndices() {
		p := m.GetVertex(vid)
		uvElems = append(uvElems, uv.AppendElement(math.Vec2{X: p.X, Y: p.Z}))
		nElems = append(nElems, normals.AppendElement(math.Vec3{Y: 1}))
	}
	for _, tri := range []meshinfo.Index3{{0, 2, 1}, {0, 4, 3}} {
		tid, res := m.AppendTriangle(tri)
		require.Equal(t, dmesh.EditOK, res)
		uv.SetTriangle(tid, meshinfo.Index3{uvElems[tri[0]], uvElems[tri[1]], uvElems[tri[2]]})
		normals.SetTriangle(tid, meshinfo.Index3{nElems[tri[0]], nElems[tri[1]], nElems[tri[2]]})
	}
	require.NoError(t, m.CheckValidity())
	return m
}

// uvAt returns the UV value tid uses at vid.
func uvAt(t *testing.T, m *dmesh.Mesh, tid, vid int) math.Vec2 {
	t.Helper()
	uv := m.Attributes().PrimaryUV()
	eid := uv.GetElementIDAtVertex(tid, vid)
	require.NotEqual(t, dmesh.InvalidID, eid, "triangle %d has no element at vertex %d", tid, vid)
	return uv.GetElement(eid)
}

func assertVec2(t *testing.T, want, got math.Vec2) {
	t.Helper()
	require.InDelta(t, want.X, got.X, 1e-5)
	require.InDelta(t, want.Y, got.Y, 1e-5)
}

package dmesh

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/internal/logger"
	"github.com/Faultbox/dynmesh/pkg/attributes"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// Copy makes m an exact copy of other, ids and attributes included.
func (m *Mesh) Copy(other *Mesh) {
	m.vertices = slices.Clone(other.vertices)
	m.normals = slices.Clone(other.normals)
	m.vertexRefs.Copy(&other.vertexRefs)
	m.vertexEdges = make([][]int, len(other.vertexEdges))
	for i, edges := range other.vertexEdges {
		m.vertexEdges[i] = slices.Clone(edges)
	}
	m.triangles = slices.Clone(other.triangles)
	m.triangleEdges = slices.Clone(other.triangleEdges)
	m.triangleRefs.Copy(&other.triangleRefs)
	m.edges = slices.Clone(other.edges)
	m.edgeRefs.Copy(&other.edgeRefs)

	m.attributes = nil
	if other.attributes != nil {
		m.attributes = attributes.NewAttributeSet(m)
		m.attributes.Copy(other.attributes)
	}
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	c := New()
	c.Copy(m)
	return c
}

// CompactCopy makes m a copy of other with vertex and triangle ids renumbered
// densely in increasing order. Edge ids are rebuilt.
func (m *Mesh) CompactCopy(other *Mesh) *meshinfo.CompactMaps {
	maps := m.compactFrom(other)
	m.attributes = nil
	if other.attributes != nil {
		m.attributes = attributes.NewAttributeSet(m)
		m.attributes.CompactCopy(maps, other.attributes)
	}
	logCompaction("compact copy", m, maps)
	return maps
}

// CompactInPlace renumbers vertex and triangle ids densely and returns the maps
// it used. Attributes are compacted with the same maps.
func (m *Mesh) CompactInPlace() *meshinfo.CompactMaps {
	maps := m.compactFrom(m)
	if m.attributes != nil {
		m.attributes.CompactInPlace(maps)
	}
	logCompaction("compact in place", m, maps)
	return maps
}

func logCompaction(msg string, m *Mesh, maps *meshinfo.CompactMaps) {
	logger.Named("dmesh").Debug(msg,
		zap.Int("oldMaxVertexID", len(maps.VertexMap)),
		zap.Int("oldMaxTriangleID", len(maps.TriangleMap)),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))
}

// compactFrom rebuilds m's topology as a dense copy of src. src may be m.
func (m *Mesh) compactFrom(src *Mesh) *meshinfo.CompactMaps {
	maps := meshinfo.NewCompactMaps(src.MaxVertexID(), src.MaxTriangleID())

	numV := src.VertexCount()
	vertices := make([]math.Vec3, 0, numV)
	var normals []math.Vec3
	if src.normals != nil {
		normals = make([]math.Vec3, 0, numV)
	}
	vcounts := make([]int32, 0, numV)
	for vid := range src.VertexIndices() {
		maps.SetVertex(vid, len(vertices))
		vertices = append(vertices, src.vertices[vid])
		if normals != nil {
			normals = append(normals, src.normals[vid])
		}
		vcounts = append(vcounts, 1)
	}

	numT := src.TriangleCount()
	tris := make([]meshinfo.Index3, 0, numT)
	tcounts := make([]int32, 0, numT)
	for tid := range src.TriangleIndices() {
		maps.SetTriangle(tid, len(tris))
		t := src.triangles[tid]
		nt := meshinfo.Index3{maps.GetVertex(t[0]), maps.GetVertex(t[1]), maps.GetVertex(t[2])}
		for _, vid := range nt {
			vcounts[vid]++
		}
		tris = append(tris, nt)
		tcounts = append(tcounts, 1)
	}

	m.vertices = vertices
	m.normals = normals
	m.vertexRefs.SetCounts(vcounts)
	m.vertexEdges = make([][]int, len(vertices))
	m.triangles = tris
	m.triangleEdges = make([]meshinfo.Index3, len(tris))
	m.triangleRefs.SetCounts(tcounts)
	m.edges = nil
	m.edgeRefs.Clear()
	m.rebuildEdges()
	return maps
}

func (m *Mesh) rebuildEdges() {
	for tid, tri := range m.triangles {
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			eid := m.FindEdge(a, b)
			if eid == InvalidID {
				eid = m.addEdge(a, b, tid, InvalidID)
			} else {
				m.edges[eid].Tri.B = tid
			}
			m.triangleEdges[tid][j] = eid
		}
	}
}

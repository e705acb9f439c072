// Package dmesh is a dynamic indexed triangle mesh with edge adjacency and stable ids.
//
// Vertices, triangles and edges live in sparse id spaces: removing one never shifts
// the ids of the others. Topology edits keep the attached attribute set consistent by
// describing each edit to it after the mesh itself has been updated.
package dmesh

import (
	"iter"
	"slices"

	"github.com/Faultbox/dynmesh/pkg/attributes"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
	"github.com/Faultbox/dynmesh/pkg/refcount"
)

// InvalidID marks a missing vertex, triangle or edge.
const InvalidID = meshinfo.InvalidID

// Edge is an undirected mesh edge. Vert is sorted ascending; Tri.B is InvalidID on
// a boundary edge.
type Edge struct {
	Vert meshinfo.Index2
	Tri  meshinfo.Index2
}

// Mesh is a manifold-edge triangle mesh: every edge has one or two triangles.
//
// A vertex's reference count is 1 plus the number of triangles using it.
type Mesh struct {
	vertices    []math.Vec3
	normals     []math.Vec3
	vertexRefs  refcount.Vector
	vertexEdges [][]int

	triangles     []meshinfo.Index3
	triangleEdges []meshinfo.Index3
	triangleRefs  refcount.Vector

	edges    []Edge
	edgeRefs refcount.Vector

	attributes *attributes.AttributeSet
}

// New returns an empty mesh without vertex normals or attributes.
func New() *Mesh {
	return &Mesh{}
}

func (m *Mesh) MaxVertexID() int   { return m.vertexRefs.MaxIndex() }
func (m *Mesh) MaxTriangleID() int { return m.triangleRefs.MaxIndex() }
func (m *Mesh) MaxEdgeID() int     { return m.edgeRefs.MaxIndex() }

func (m *Mesh) VertexCount() int   { return m.vertexRefs.Count() }
func (m *Mesh) TriangleCount() int { return m.triangleRefs.Count() }
func (m *Mesh) EdgeCount() int     { return m.edgeRefs.Count() }

func (m *Mesh) IsVertex(vid int) bool   { return m.vertexRefs.IsValid(vid) }
func (m *Mesh) IsTriangle(tid int) bool { return m.triangleRefs.IsValid(tid) }
func (m *Mesh) IsEdge(eid int) bool     { return m.edgeRefs.IsValid(eid) }

// VertexIndices iterates over live vertex ids.
func (m *Mesh) VertexIndices() iter.Seq[int] { return m.vertexRefs.Indices() }

// TriangleIndices iterates over live triangle ids.
func (m *Mesh) TriangleIndices() iter.Seq[int] { return m.triangleRefs.Indices() }

// EdgeIndices iterates over live edge ids.
func (m *Mesh) EdgeIndices() iter.Seq[int] { return m.edgeRefs.Indices() }

// IsCompact reports whether vertex and triangle ids have no holes.
func (m *Mesh) IsCompact() bool {
	return m.vertexRefs.IsDense() && m.triangleRefs.IsDense()
}

// GetVertex returns the position of vid.
func (m *Mesh) GetVertex(vid int) math.Vec3 { return m.vertices[vid] }

// SetVertex moves vid.
func (m *Mesh) SetVertex(vid int, pos math.Vec3) { m.vertices[vid] = pos }

// Bounds returns the bounding box of the live vertices.
func (m *Mesh) Bounds() math.Bounds {
	b := math.EmptyBounds()
	for vid := range m.VertexIndices() {
		b.Contain(m.vertices[vid])
	}
	return b
}

func (m *Mesh) HasVertexNormals() bool { return m.normals != nil }

// EnableVertexNormals adds per-vertex normals, all set to n.
func (m *Mesh) EnableVertexNormals(n math.Vec3) {
	if m.normals != nil {
		return
	}
	m.normals = make([]math.Vec3, len(m.vertices))
	for i := range m.normals {
		m.normals[i] = n
	}
}

func (m *Mesh) DisableVertexNormals() { m.normals = nil }

// GetVertexNormal returns the normal of vid, or the zero vector without normals.
func (m *Mesh) GetVertexNormal(vid int) math.Vec3 {
	if m.normals == nil {
		return math.Vec3{}
	}
	return m.normals[vid]
}

// SetVertexNormal sets the normal of vid. It does nothing without normals.
func (m *Mesh) SetVertexNormal(vid int, n math.Vec3) {
	if m.normals != nil {
		m.normals[vid] = n
	}
}

// GetTriangle returns the vertices of tid, or InvalidIndex3 if it is not live.
func (m *Mesh) GetTriangle(tid int) meshinfo.Index3 {
	if !m.IsTriangle(tid) {
		return meshinfo.InvalidIndex3()
	}
	return m.triangles[tid]
}

// GetTriEdges returns the edges of tid; edge j joins corners j and j+1.
func (m *Mesh) GetTriEdges(tid int) meshinfo.Index3 { return m.triangleEdges[tid] }

// GetTriVertices returns the corner positions of tid.
func (m *Mesh) GetTriVertices(tid int) (a, b, c math.Vec3) {
	t := m.triangles[tid]
	return m.vertices[t[0]], m.vertices[t[1]], m.vertices[t[2]]
}

// TriNormalArea returns the unit normal and area of tid.
func (m *Mesh) TriNormalArea(tid int) (math.Vec3, float32) {
	a, b, c := m.GetTriVertices(tid)
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return math.Vec3{}, 0
	}
	return n.Scale(1 / l), l * 0.5
}

func (m *Mesh) GetEdge(eid int) Edge             { return m.edges[eid] }
func (m *Mesh) GetEdgeV(eid int) meshinfo.Index2 { return m.edges[eid].Vert }
func (m *Mesh) GetEdgeT(eid int) meshinfo.Index2 { return m.edges[eid].Tri }
func (m *Mesh) IsBoundaryEdge(eid int) bool      { return m.edges[eid].Tri.B == InvalidID }
func (m *Mesh) GetVtxEdgeCount(vid int) int      { return len(m.vertexEdges[vid]) }
func (m *Mesh) GetVtxTriangleCount(vid int) int  { return m.vertexRefs.RefCount(vid) - 1 }

// FindEdge returns the edge joining a and b, or InvalidID.
func (m *Mesh) FindEdge(a, b int) int {
	if !m.IsVertex(a) || !m.IsVertex(b) {
		return InvalidID
	}
	lo, hi := min(a, b), max(a, b)
	for _, eid := range m.vertexEdges[a] {
		if v := m.edges[eid].Vert; v.A == lo && v.B == hi {
			return eid
		}
	}
	return InvalidID
}

// IsBoundaryVertex reports whether vid touches a boundary edge.
func (m *Mesh) IsBoundaryVertex(vid int) bool {
	for _, eid := range m.vertexEdges[vid] {
		if m.IsBoundaryEdge(eid) {
			return true
		}
	}
	return false
}

// VtxEdges returns a copy of the edges at vid.
func (m *Mesh) VtxEdges(vid int) []int {
	return slices.Clone(m.vertexEdges[vid])
}

// VtxTriangles returns the triangles at vid in increasing id order.
func (m *Mesh) VtxTriangles(vid int) []int {
	var tris []int
	for _, eid := range m.vertexEdges[vid] {
		et := m.edges[eid].Tri
		for _, tid := range [2]int{et.A, et.B} {
			if tid != InvalidID && !slices.Contains(tris, tid) {
				tris = append(tris, tid)
			}
		}
	}
	slices.Sort(tris)
	return tris
}

// VtxNeighbours returns the vertices sharing an edge with vid.
func (m *Mesh) VtxNeighbours(vid int) []int {
	nbrs := make([]int, 0, len(m.vertexEdges[vid]))
	for _, eid := range m.vertexEdges[vid] {
		nbrs = append(nbrs, m.edges[eid].Vert.OtherOf(vid))
	}
	return nbrs
}

func (m *Mesh) HasAttributes() bool { return m.attributes != nil }

// Attributes returns the attribute set, or nil if attributes are disabled.
func (m *Mesh) Attributes() *attributes.AttributeSet { return m.attributes }

// EnableAttributes attaches an attribute set with one UV layer and one normal layer.
func (m *Mesh) EnableAttributes() {
	if m.attributes != nil {
		return
	}
	m.attributes = attributes.NewAttributeSetWithLayers(m, 1, 1)
}

// DisableAttributes drops the attribute set.
func (m *Mesh) DisableAttributes() { m.attributes = nil }

// AppendVertex adds a vertex and returns its id.
func (m *Mesh) AppendVertex(pos math.Vec3) int {
	vid := m.appendVertex(pos, math.Vec3{X: 0, Y: 1, Z: 0})
	if m.attributes != nil {
		m.attributes.OnNewVertex(vid, false)
	}
	return vid
}

func (m *Mesh) appendVertex(pos, normal math.Vec3) int {
	vid := m.vertexRefs.Allocate()
	if vid == len(m.vertices) {
		m.vertices = append(m.vertices, pos)
		m.vertexEdges = append(m.vertexEdges, nil)
		if m.normals != nil {
			m.normals = append(m.normals, normal)
		}
	} else {
		m.vertices[vid] = pos
		m.vertexEdges[vid] = m.vertexEdges[vid][:0]
		if m.normals != nil {
			m.normals[vid] = normal
		}
	}
	return vid
}

// AppendTriangle adds the triangle (a,b,c). It fails if a vertex is missing or
// repeated, or if one of its edges already has two triangles.
func (m *Mesh) AppendTriangle(tri meshinfo.Index3) (int, EditResult) {
	for _, vid := range tri {
		if !m.IsVertex(vid) {
			return InvalidID, EditInvalidInput
		}
	}
	if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
		return InvalidID, EditDegenerate
	}
	var existing [3]int
	for j := 0; j < 3; j++ {
		existing[j] = m.FindEdge(tri[j], tri[(j+1)%3])
		if existing[j] != InvalidID && !m.IsBoundaryEdge(existing[j]) {
			return InvalidID, EditNonManifold
		}
	}

	tid := m.allocTriangle(tri)
	var tedges meshinfo.Index3
	for j := 0; j < 3; j++ {
		if eid := existing[j]; eid != InvalidID {
			m.edges[eid].Tri.B = tid
			tedges[j] = eid
		} else {
			tedges[j] = m.addEdge(tri[j], tri[(j+1)%3], tid, InvalidID)
		}
	}
	m.triangleEdges[tid] = tedges

	if m.attributes != nil {
		m.attributes.OnNewTriangle(tid, false)
	}
	return tid, EditOK
}

// allocTriangle stores tri under a new id and takes its vertex references. Edges
// are left to the caller.
func (m *Mesh) allocTriangle(tri meshinfo.Index3) int {
	tid := m.triangleRefs.Allocate()
	if tid == len(m.triangles) {
		m.triangles = append(m.triangles, tri)
		m.triangleEdges = append(m.triangleEdges, meshinfo.InvalidIndex3())
	} else {
		m.triangles[tid] = tri
		m.triangleEdges[tid] = meshinfo.InvalidIndex3()
	}
	for _, vid := range tri {
		m.vertexRefs.Increment(vid, 1)
	}
	return tid
}

// AppendVertexWithNormal adds a vertex with a normal. The normal is dropped if the
// mesh has no vertex normals.
func (m *Mesh) AppendVertexWithNormal(pos, normal math.Vec3) int {
	vid := m.appendVertex(pos, normal)
	if m.attributes != nil {
		m.attributes.OnNewVertex(vid, false)
	}
	return vid
}

package dmesh

import (
	"fmt"
	"slices"

	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

func (m *Mesh) addEdge(a, b, t0, t1 int) int {
	if a > b {
		a, b = b, a
	}
	e := Edge{Vert: meshinfo.Index2{A: a, B: b}, Tri: meshinfo.Index2{A: t0, B: t1}}
	eid := m.edgeRefs.Allocate()
	if eid == len(m.edges) {
		m.edges = append(m.edges, e)
	} else {
		m.edges[eid] = e
	}
	m.vertexEdges[a] = append(m.vertexEdges[a], eid)
	m.vertexEdges[b] = append(m.vertexEdges[b], eid)
	return eid
}

func (m *Mesh) removeEdge(eid int) {
	v := m.edges[eid].Vert
	m.removeVertexEdge(v.A, eid)
	m.removeVertexEdge(v.B, eid)
	m.edges[eid] = Edge{Vert: meshinfo.InvalidIndex2(), Tri: meshinfo.InvalidIndex2()}
	m.edgeRefs.Decrement(eid, 1)
}

func (m *Mesh) removeVertexEdge(vid, eid int) {
	if i := slices.Index(m.vertexEdges[vid], eid); i >= 0 {
		m.vertexEdges[vid] = slices.Delete(m.vertexEdges[vid], i, i+1)
	}
}

// replaceEdgeVertex moves one endpoint of eid from old to vid, keeping Vert sorted
// and the vertex edge lists in sync.
func (m *Mesh) replaceEdgeVertex(eid, old, vid int) {
	e := &m.edges[eid]
	other := e.Vert.OtherOf(old)
	if other == InvalidID {
		panic(fmt.Sprintf("dmesh: edge %d does not contain vertex %d", eid, old))
	}
	e.Vert = meshinfo.Index2{A: min(other, vid), B: max(other, vid)}
	m.removeVertexEdge(old, eid)
	m.vertexEdges[vid] = append(m.vertexEdges[vid], eid)
}

// replaceEdgeTriangle swaps triangle old for tid in eid. Passing InvalidID for tid
// detaches old; the remaining triangle is kept in Tri.A.
func (m *Mesh) replaceEdgeTriangle(eid, old, tid int) {
	e := &m.edges[eid]
	switch old {
	case e.Tri.A:
		e.Tri.A = tid
	case e.Tri.B:
		e.Tri.B = tid
	default:
		panic(fmt.Sprintf("dmesh: edge %d does not contain triangle %d", eid, old))
	}
	if e.Tri.A == InvalidID {
		e.Tri.A, e.Tri.B = e.Tri.B, InvalidID
	}
}

// replaceTriangleEdge swaps edge old for eid in tid's edge list.
func (m *Mesh) replaceTriangleEdge(tid, old, eid int) {
	te := &m.triangleEdges[tid]
	j := te.IndexOf(old)
	if j < 0 {
		panic(fmt.Sprintf("dmesh: triangle %d does not use edge %d", tid, old))
	}
	te[j] = eid
}

// orientedEdge returns the endpoints of eid in the order they appear in tid, plus
// tid's third vertex.
func (m *Mesh) orientedEdge(eid, tid int) (a, b, c int) {
	tri := m.triangles[tid]
	v := m.edges[eid].Vert
	for j := 0; j < 3; j++ {
		if tri[j] == v.A && tri[(j+1)%3] == v.B {
			return v.A, v.B, tri[(j+2)%3]
		}
		if tri[j] == v.B && tri[(j+1)%3] == v.A {
			return v.B, v.A, tri[(j+2)%3]
		}
	}
	panic(fmt.Sprintf("dmesh: triangle %d does not contain edge %d", tid, eid))
}

// edgeAt returns the edge of tid joining a and b.
func (m *Mesh) edgeAt(tid, a, b int) int {
	tri := m.triangles[tid]
	for j := 0; j < 3; j++ {
		u, w := tri[j], tri[(j+1)%3]
		if (u == a && w == b) || (u == b && w == a) {
			return m.triangleEdges[tid][j]
		}
	}
	return InvalidID
}

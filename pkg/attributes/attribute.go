// Package attributes stores per-corner, per-triangle and per-vertex data on top of a
// dynamic triangle mesh and keeps it consistent while the mesh is edited.
//
// An Overlay gives each triangle corner an element id into a separate element
// table, so one mesh vertex can carry several values (UV seams, hard normal edges).
// TriangleAttribute and VertexAttribute hold one value per triangle or vertex.
// AttributeSet owns the standard layers and forwards every mesh edit to them.
package attributes

import "github.com/Faultbox/dynmesh/pkg/meshinfo"

// InvalidID marks an unset element.
const InvalidID = meshinfo.InvalidID

// ParentMesh is the topology an attribute layer is attached to. Queries reflect the
// mesh after an edit has been applied when edit handlers run.
type ParentMesh interface {
	MaxVertexID() int
	MaxTriangleID() int
	IsVertex(vid int) bool
	IsTriangle(tid int) bool
	IsEdge(eid int) bool
	GetTriangle(tid int) meshinfo.Index3
	GetEdgeV(eid int) meshinfo.Index2
	GetEdgeT(eid int) meshinfo.Index2
	FindEdge(a, b int) int
	IsBoundaryEdge(eid int) bool
	IsBoundaryVertex(vid int) bool
	VtxTriangles(vid int) []int
	VtxEdges(vid int) []int
}

// EditHandler receives mesh edits. The mesh calls these after it has updated its
// own topology.
type EditHandler interface {
	OnNewVertex(vid int, inserted bool)
	OnRemoveVertex(vid int)
	OnNewTriangle(tid int, inserted bool)
	OnRemoveTriangle(tid int)
	OnReverseTriOrientation(tid int)
	OnSplitEdge(info meshinfo.EdgeSplitInfo)
	OnFlipEdge(info meshinfo.EdgeFlipInfo)
	OnCollapseEdge(info meshinfo.EdgeCollapseInfo)
	OnPokeTriangle(info meshinfo.PokeTriangleInfo)
	OnMergeEdges(info meshinfo.MergeEdgesInfo)
	OnSplitVertex(info meshinfo.VertexSplitInfo, trianglesToUpdate []int)
}

// Attribute is a named layer that can be attached to an AttributeSet by the caller.
type Attribute interface {
	EditHandler

	// MakeNew returns an empty layer of the same kind attached to parent.
	MakeNew(parent ParentMesh) Attribute
	// MakeCopy returns a deep copy attached to parent.
	MakeCopy(parent ParentMesh) Attribute
	// MakeCompactCopy returns a copy renumbered through maps and attached to parent.
	MakeCompactCopy(maps *meshinfo.CompactMaps, parent ParentMesh) Attribute
	CompactInPlace(maps *meshinfo.CompactMaps)
	Reparent(parent ParentMesh)
	ParentMesh() ParentMesh
}

// Value is an element value that can be interpolated.
type Value[V any] interface {
	comparable
	Add(V) V
	Scale(float32) V
}

func lerp[V Value[V]](a, b V, t float32) V {
	return a.Scale(1 - t).Add(b.Scale(t))
}

func bary[V Value[V]](a, b, c V, w [3]float32) V {
	return a.Scale(w[0]).Add(b.Scale(w[1])).Add(c.Scale(w[2]))
}

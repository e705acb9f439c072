package attributes

import (
	"slices"

	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// TriangleAttribute stores one value per triangle. Triangles created by splitting
// or poking inherit the value of the triangle they came from; triangles appended
// directly get the default value.
type TriangleAttribute[T any] struct {
	parent       ParentMesh
	name         string
	values       []T
	defaultValue T
}

// MaterialIDAttribute holds a material index per triangle.
type MaterialIDAttribute = TriangleAttribute[int32]

// PolygroupAttribute holds a polygroup id per triangle.
type PolygroupAttribute = TriangleAttribute[int32]

// NewTriangleAttribute returns an attribute attached to parent, sized to its
// triangle range and filled with the zero value.
func NewTriangleAttribute[T any](parent ParentMesh) *TriangleAttribute[T] {
	a := &TriangleAttribute[T]{parent: parent}
	if parent != nil {
		a.values = make([]T, parent.MaxTriangleID())
	}
	return a
}

// Name returns the layer name.
func (a *TriangleAttribute[T]) Name() string { return a.name }

// SetName sets the layer name.
func (a *TriangleAttribute[T]) SetName(name string) { a.name = name }

// SetDefaultValue sets the value given to appended triangles.
func (a *TriangleAttribute[T]) SetDefaultValue(v T) { a.defaultValue = v }

func (a *TriangleAttribute[T]) ParentMesh() ParentMesh { return a.parent }

func (a *TriangleAttribute[T]) Reparent(parent ParentMesh) { a.parent = parent }

// Initialize sizes the attribute to the parent's triangle range, every value v.
func (a *TriangleAttribute[T]) Initialize(v T) {
	a.values = make([]T, a.parent.MaxTriangleID())
	for i := range a.values {
		a.values[i] = v
	}
}

// GetValue returns the value of tid, or the default for an id out of range.
func (a *TriangleAttribute[T]) GetValue(tid int) T {
	if tid < 0 || tid >= len(a.values) {
		return a.defaultValue
	}
	return a.values[tid]
}

// SetValue sets the value of tid, growing the storage if needed.
func (a *TriangleAttribute[T]) SetValue(tid int, v T) {
	for len(a.values) <= tid {
		a.values = append(a.values, a.defaultValue)
	}
	a.values[tid] = v
}

// Copy makes a an exact copy of other's values and name.
func (a *TriangleAttribute[T]) Copy(other *TriangleAttribute[T]) {
	a.name = other.name
	a.defaultValue = other.defaultValue
	a.values = slices.Clone(other.values)
}

// CompactCopy copies other's values into the slots given by maps.
func (a *TriangleAttribute[T]) CompactCopy(maps *meshinfo.CompactMaps, other *TriangleAttribute[T]) {
	a.name = other.name
	a.defaultValue = other.defaultValue
	values := make([]T, maps.NewMaxTriangleID())
	for oldTid, v := range other.values {
		if newTid := maps.GetTriangle(oldTid); newTid != InvalidID {
			values[newTid] = v
		}
	}
	a.values = values
}

func (a *TriangleAttribute[T]) CompactInPlace(maps *meshinfo.CompactMaps) {
	src := &TriangleAttribute[T]{}
	src.Copy(a)
	a.CompactCopy(maps, src)
}

func (a *TriangleAttribute[T]) MakeNew(parent ParentMesh) Attribute {
	n := NewTriangleAttribute[T](parent)
	n.name = a.name
	n.defaultValue = a.defaultValue
	return n
}

func (a *TriangleAttribute[T]) MakeCopy(parent ParentMesh) Attribute {
	n := &TriangleAttribute[T]{parent: parent}
	n.Copy(a)
	return n
}

func (a *TriangleAttribute[T]) MakeCompactCopy(maps *meshinfo.CompactMaps, parent ParentMesh) Attribute {
	n := &TriangleAttribute[T]{parent: parent}
	n.CompactCopy(maps, a)
	return n
}

func (a *TriangleAttribute[T]) OnNewVertex(int, bool) {}
func (a *TriangleAttribute[T]) OnRemoveVertex(int)    {}

func (a *TriangleAttribute[T]) OnNewTriangle(tid int, _ bool) {
	a.SetValue(tid, a.defaultValue)
}

func (a *TriangleAttribute[T]) OnRemoveTriangle(int)                     {}
func (a *TriangleAttribute[T]) OnReverseTriOrientation(int)              {}
func (a *TriangleAttribute[T]) OnFlipEdge(meshinfo.EdgeFlipInfo)         {}
func (a *TriangleAttribute[T]) OnCollapseEdge(meshinfo.EdgeCollapseInfo) {}
func (a *TriangleAttribute[T]) OnMergeEdges(meshinfo.MergeEdgesInfo)     {}

func (a *TriangleAttribute[T]) OnSplitVertex(meshinfo.VertexSplitInfo, []int) {}

func (a *TriangleAttribute[T]) OnSplitEdge(info meshinfo.EdgeSplitInfo) {
	a.SetValue(info.NewTriangles.A, a.GetValue(info.OriginalTriangles.A))
	if info.OriginalTriangles.B != InvalidID {
		a.SetValue(info.NewTriangles.B, a.GetValue(info.OriginalTriangles.B))
	}
}

func (a *TriangleAttribute[T]) OnPokeTriangle(info meshinfo.PokeTriangleInfo) {
	v := a.GetValue(info.OriginalTriangle)
	a.SetValue(info.NewTriangles.A, v)
	a.SetValue(info.NewTriangles.B, v)
}

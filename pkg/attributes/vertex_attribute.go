package attributes

import (
	"slices"

	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// Interpolator blends two vertex values, t=0 giving a and t=1 giving b.
type Interpolator[T any] func(a, b T, t float32) T

// VertexAttribute stores one value per vertex. New vertices created by an edit are
// interpolated from their source vertices when an Interpolator is set, otherwise
// they copy the first source vertex.
type VertexAttribute[T any] struct {
	parent       ParentMesh
	name         string
	values       []T
	defaultValue T
	interp       Interpolator[T]
}

// NewVertexAttribute returns an attribute attached to parent. interp may be nil.
func NewVertexAttribute[T any](parent ParentMesh, interp Interpolator[T]) *VertexAttribute[T] {
	a := &VertexAttribute[T]{parent: parent, interp: interp}
	if parent != nil {
		a.values = make([]T, parent.MaxVertexID())
	}
	return a
}

// NewLerpVertexAttribute returns a vertex attribute that blends values linearly.
func NewLerpVertexAttribute[V Value[V]](parent ParentMesh) *VertexAttribute[V] {
	return NewVertexAttribute[V](parent, lerp[V])
}

func (a *VertexAttribute[T]) Name() string               { return a.name }
func (a *VertexAttribute[T]) SetName(name string)        { a.name = name }
func (a *VertexAttribute[T]) SetDefaultValue(v T)        { a.defaultValue = v }
func (a *VertexAttribute[T]) ParentMesh() ParentMesh     { return a.parent }
func (a *VertexAttribute[T]) Reparent(parent ParentMesh) { a.parent = parent }

// GetValue returns the value of vid, or the default for an id out of range.
func (a *VertexAttribute[T]) GetValue(vid int) T {
	if vid < 0 || vid >= len(a.values) {
		return a.defaultValue
	}
	return a.values[vid]
}

// SetValue sets the value of vid, growing the storage if needed.
func (a *VertexAttribute[T]) SetValue(vid int, v T) {
	for len(a.values) <= vid {
		a.values = append(a.values, a.defaultValue)
	}
	a.values[vid] = v
}

func (a *VertexAttribute[T]) blend(x, y T, t float32) T {
	if a.interp == nil {
		return x
	}
	return a.interp(x, y, t)
}

func (a *VertexAttribute[T]) Copy(other *VertexAttribute[T]) {
	a.name = other.name
	a.defaultValue = other.defaultValue
	a.interp = other.interp
	a.values = slices.Clone(other.values)
}

func (a *VertexAttribute[T]) CompactCopy(maps *meshinfo.CompactMaps, other *VertexAttribute[T]) {
	a.name = other.name
	a.defaultValue = other.defaultValue
	a.interp = other.interp
	n := 0
	for _, newID := range maps.VertexMap {
		n = max(n, newID+1)
	}
	values := make([]T, n)
	for oldVid, v := range other.values {
		if newVid := maps.GetVertex(oldVid); newVid != InvalidID {
			values[newVid] = v
		}
	}
	a.values = values
}

func (a *VertexAttribute[T]) CompactInPlace(maps *meshinfo.CompactMaps) {
	src := &VertexAttribute[T]{}
	src.Copy(a)
	a.CompactCopy(maps, src)
}

func (a *VertexAttribute[T]) MakeNew(parent ParentMesh) Attribute {
	n := NewVertexAttribute[T](parent, a.interp)
	n.name = a.name
	n.defaultValue = a.defaultValue
	return n
}

func (a *VertexAttribute[T]) MakeCopy(parent ParentMesh) Attribute {
	n := &VertexAttribute[T]{parent: parent}
	n.Copy(a)
	return n
}

func (a *VertexAttribute[T]) MakeCompactCopy(maps *meshinfo.CompactMaps, parent ParentMesh) Attribute {
	n := &VertexAttribute[T]{parent: parent}
	n.CompactCopy(maps, a)
	return n
}

func (a *VertexAttribute[T]) OnNewVertex(vid int, _ bool) {
	a.SetValue(vid, a.defaultValue)
}

func (a *VertexAttribute[T]) OnRemoveVertex(int)                   {}
func (a *VertexAttribute[T]) OnNewTriangle(int, bool)              {}
func (a *VertexAttribute[T]) OnRemoveTriangle(int)                 {}
func (a *VertexAttribute[T]) OnReverseTriOrientation(int)          {}
func (a *VertexAttribute[T]) OnFlipEdge(meshinfo.EdgeFlipInfo)     {}
func (a *VertexAttribute[T]) OnMergeEdges(meshinfo.MergeEdgesInfo) {}

func (a *VertexAttribute[T]) OnSplitEdge(info meshinfo.EdgeSplitInfo) {
	x, y := a.GetValue(info.OriginalVertices.A), a.GetValue(info.OriginalVertices.B)
	a.SetValue(info.NewVertex, a.blend(x, y, info.SplitT))
}

func (a *VertexAttribute[T]) OnCollapseEdge(info meshinfo.EdgeCollapseInfo) {
	x, y := a.GetValue(info.KeptVertex), a.GetValue(info.RemovedVertex)
	a.SetValue(info.KeptVertex, a.blend(x, y, info.CollapseT))
}

func (a *VertexAttribute[T]) OnPokeTriangle(info meshinfo.PokeTriangleInfo) {
	v, w := info.TriVertices, info.BaryCoords
	x := a.GetValue(v[0])
	if s := w[0] + w[1]; s > 0 {
		x = a.blend(x, a.GetValue(v[1]), w[1]/s)
	}
	a.SetValue(info.NewVertex, a.blend(x, a.GetValue(v[2]), w[2]))
}

func (a *VertexAttribute[T]) OnSplitVertex(info meshinfo.VertexSplitInfo, _ []int) {
	a.SetValue(info.NewVertex, a.GetValue(info.OriginalVertex))
}

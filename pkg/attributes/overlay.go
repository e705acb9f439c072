package attributes

import (
	"fmt"
	"iter"
	"slices"

	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
	"github.com/Faultbox/dynmesh/pkg/refcount"
)

// Overlay maps each triangle corner of the parent mesh to an element. Elements are
// reference counted: an element is live while at least one corner uses it, plus the
// initial reference held from AppendElement. Every element belongs to exactly one
// parent vertex, assigned the first time a corner uses it.
type Overlay[V Value[V]] struct {
	parent ParentMesh

	refs           refcount.Vector
	values         []V
	parentVertices []int

	// three element ids per triangle, InvalidID when the triangle is unset
	triangles []int
}

// UVOverlay holds texture coordinates.
type UVOverlay = Overlay[math.Vec2]

// NormalOverlay holds normals, tangents or bitangents.
type NormalOverlay = Overlay[math.Vec3]

// ColorOverlay holds RGBA colors.
type ColorOverlay = Overlay[math.Vec4]

// NewOverlay returns an empty overlay attached to parent.
func NewOverlay[V Value[V]](parent ParentMesh) *Overlay[V] {
	return &Overlay[V]{parent: parent}
}

// ParentMesh returns the mesh the overlay is attached to.
func (o *Overlay[V]) ParentMesh() ParentMesh {
	return o.parent
}

// Reparent attaches the overlay to another mesh with identical ids. No data changes.
func (o *Overlay[V]) Reparent(parent ParentMesh) {
	o.parent = parent
}

// ClearElements removes every element and unsets every triangle.
func (o *Overlay[V]) ClearElements() {
	o.refs.Clear()
	o.values = o.values[:0]
	o.parentVertices = o.parentVertices[:0]
	for i := range o.triangles {
		o.triangles[i] = InvalidID
	}
}

// ElementCount returns the number of live elements.
func (o *Overlay[V]) ElementCount() int {
	return o.refs.Count()
}

// MaxElementID returns one past the largest element id in use.
func (o *Overlay[V]) MaxElementID() int {
	return o.refs.MaxIndex()
}

// IsElement reports whether eid is a live element.
func (o *Overlay[V]) IsElement(eid int) bool {
	return o.refs.IsValid(eid)
}

// ElementIDs iterates over live element ids in increasing order.
func (o *Overlay[V]) ElementIDs() iter.Seq[int] {
	return o.refs.Indices()
}

// AppendElement adds an element with no parent vertex. The parent is assigned
// when a triangle first references it.
func (o *Overlay[V]) AppendElement(v V) int {
	return o.appendElement(v, InvalidID)
}

func (o *Overlay[V]) appendElement(v V, parentVertex int) int {
	eid := o.refs.Allocate()
	if eid == len(o.values) {
		o.values = append(o.values, v)
		o.parentVertices = append(o.parentVertices, parentVertex)
	} else {
		o.values[eid] = v
		o.parentVertices[eid] = parentVertex
	}
	return eid
}

// GetElement returns the value of a live element.
func (o *Overlay[V]) GetElement(eid int) V {
	return o.values[eid]
}

// SetElement replaces the value of a live element.
func (o *Overlay[V]) SetElement(eid int, v V) {
	o.values[eid] = v
}

// ParentVertex returns the mesh vertex an element belongs to, or InvalidID.
func (o *Overlay[V]) ParentVertex(eid int) int {
	return o.parentVertices[eid]
}

// ElementRefCount returns 1 + the number of corners using eid, or 0 if it is free.
func (o *Overlay[V]) ElementRefCount(eid int) int {
	return o.refs.RefCount(eid)
}

// InitializeTriangles sizes the corner table for maxTriangleID triangles, all unset.
func (o *Overlay[V]) InitializeTriangles(maxTriangleID int) {
	o.triangles = make([]int, 3*maxTriangleID)
	for i := range o.triangles {
		o.triangles[i] = InvalidID
	}
}

// InitializeNewTriangle marks tid as unset, growing the corner table if needed.
func (o *Overlay[V]) InitializeNewTriangle(tid int) {
	o.growTriangles(tid)
	i := 3 * tid
	o.triangles[i], o.triangles[i+1], o.triangles[i+2] = InvalidID, InvalidID, InvalidID
}

func (o *Overlay[V]) growTriangles(tid int) {
	for len(o.triangles) < 3*(tid+1) {
		o.triangles = append(o.triangles, InvalidID)
	}
}

// TriangleCapacity returns the number of triangle slots in the corner table.
func (o *Overlay[V]) TriangleCapacity() int {
	return len(o.triangles) / 3
}

// IsSetTriangle reports whether tid has elements assigned.
func (o *Overlay[V]) IsSetTriangle(tid int) bool {
	i := 3 * tid
	return tid >= 0 && i < len(o.triangles) && o.triangles[i] >= 0
}

// GetTriangle returns the element triple of tid, InvalidIndex3 when unset.
func (o *Overlay[V]) GetTriangle(tid int) meshinfo.Index3 {
	if !o.IsSetTriangle(tid) {
		return meshinfo.InvalidIndex3()
	}
	i := 3 * tid
	return meshinfo.Index3{o.triangles[i], o.triangles[i+1], o.triangles[i+2]}
}

// SetTriangle assigns elements to the corners of tid. Each element must be live and
// either have no parent vertex yet or belong to the mesh vertex at the same corner.
// Elements previously used by tid that end up unused are freed.
func (o *Overlay[V]) SetTriangle(tid int, elems meshinfo.Index3) {
	tri := o.parent.GetTriangle(tid)
	for j, eid := range elems {
		if !o.refs.IsValid(eid) {
			panic(fmt.Sprintf("attributes: SetTriangle(%d) with element %d that is not live", tid, eid))
		}
		if pv := o.parentVertices[eid]; pv != InvalidID && pv != tri[j] {
			panic(fmt.Sprintf("attributes: element %d belongs to vertex %d, not corner vertex %d of triangle %d",
				eid, pv, tri[j], tid))
		}
	}
	o.growTriangles(tid)
	o.assign(triangleUpdate{tid: tid, elems: elems, tri: tri})
}

// UnsetTriangle clears the corners of tid and releases its elements.
func (o *Overlay[V]) UnsetTriangle(tid int) {
	if !o.IsSetTriangle(tid) {
		return
	}
	i := 3 * tid
	old := [3]int{o.triangles[i], o.triangles[i+1], o.triangles[i+2]}
	o.triangles[i], o.triangles[i+1], o.triangles[i+2] = InvalidID, InvalidID, InvalidID
	for _, eid := range old {
		if eid >= 0 {
			o.release(eid)
		}
	}
}

// GetElementIDAtVertex returns the element tid uses at mesh vertex vid, or InvalidID.
func (o *Overlay[V]) GetElementIDAtVertex(tid, vid int) int {
	if !o.IsSetTriangle(tid) {
		return InvalidID
	}
	slot := o.parent.GetTriangle(tid).IndexOf(vid)
	if slot < 0 {
		return InvalidID
	}
	return o.triangles[3*tid+slot]
}

// GetVertexElements returns the distinct elements used at mesh vertex vid, in the
// order they are first met around the vertex.
func (o *Overlay[V]) GetVertexElements(vid int) []int {
	var elems []int
	for _, tid := range o.parent.VtxTriangles(vid) {
		eid := o.GetElementIDAtVertex(tid, vid)
		if eid >= 0 && !slices.Contains(elems, eid) {
			elems = append(elems, eid)
		}
	}
	return elems
}

// GetElementTriangles returns the triangles that use eid.
func (o *Overlay[V]) GetElementTriangles(eid int) []int {
	if !o.refs.IsValid(eid) || o.parentVertices[eid] == InvalidID {
		return nil
	}
	vid := o.parentVertices[eid]
	var tris []int
	for _, tid := range o.parent.VtxTriangles(vid) {
		if o.GetElementIDAtVertex(tid, vid) == eid {
			tris = append(tris, tid)
		}
	}
	return tris
}

// GetTriElements returns the values at the three corners of a set triangle.
func (o *Overlay[V]) GetTriElements(tid int) (a, b, c V, ok bool) {
	if !o.IsSetTriangle(tid) {
		return a, b, c, false
	}
	i := 3 * tid
	return o.values[o.triangles[i]], o.values[o.triangles[i+1]], o.values[o.triangles[i+2]], true
}

// release drops one corner reference. An element left holding only its own
// reference is freed.
func (o *Overlay[V]) release(eid int) {
	o.refs.Decrement(eid, 1)
	if o.refs.RefCount(eid) == 1 {
		o.refs.Decrement(eid, 1)
		o.parentVertices[eid] = InvalidID
	}
}

type triangleUpdate struct {
	tid   int
	elems meshinfo.Index3
	tri   meshinfo.Index3
}

// assign applies corner updates. All new references are taken before any old one is
// released so an element moving between the updated triangles is never freed.
func (o *Overlay[V]) assign(updates ...triangleUpdate) {
	var old []int
	for _, u := range updates {
		o.growTriangles(u.tid)
		i := 3 * u.tid
		for j, eid := range u.elems {
			if eid >= 0 {
				o.refs.Increment(eid, 1)
				if o.parentVertices[eid] == InvalidID {
					o.parentVertices[eid] = u.tri[j]
				}
			}
			if prev := o.triangles[i+j]; prev >= 0 {
				old = append(old, prev)
			}
			o.triangles[i+j] = eid
		}
	}
	for _, eid := range old {
		o.release(eid)
	}
}

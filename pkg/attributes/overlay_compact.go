package attributes

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// IsCompact reports whether element ids have no holes.
func (o *Overlay[V]) IsCompact() bool {
	return o.refs.IsDense()
}

// Copy makes o an exact copy of other, ids included. The parent mesh is unchanged.
func (o *Overlay[V]) Copy(other *Overlay[V]) {
	o.refs.Copy(&other.refs)
	o.values = slices.Clone(other.values)
	o.parentVertices = slices.Clone(other.parentVertices)
	o.triangles = slices.Clone(other.triangles)
}

// CompactCopy replaces o's contents with other's, renumbering elements densely in
// increasing id order and moving parent vertices and triangles through maps. It
// panics if maps do not cover other's id ranges.
func (o *Overlay[V]) CompactCopy(maps *meshinfo.CompactMaps, other *Overlay[V]) {
	maxVertex := 0
	for eid := range other.refs.Indices() {
		maxVertex = max(maxVertex, other.parentVertices[eid]+1)
	}
	maps.MustCover(maxVertex, other.highestSetTriangle()+1)

	elemMap := make([]int, other.refs.MaxIndex())
	values := make([]V, 0, other.refs.Count())
	parents := make([]int, 0, other.refs.Count())
	counts := make([]int32, 0, other.refs.Count())
	for i := range elemMap {
		elemMap[i] = InvalidID
	}
	for eid := range other.refs.Indices() {
		elemMap[eid] = len(values)
		values = append(values, other.values[eid])
		pv := other.parentVertices[eid]
		if pv != InvalidID {
			pv = maps.GetVertex(pv)
		}
		parents = append(parents, pv)
		counts = append(counts, 1)
	}

	numTris := maps.NewMaxTriangleID()
	if o.parent != nil {
		numTris = max(numTris, o.parent.MaxTriangleID())
	}
	tris := make([]int, 3*numTris)
	for i := range tris {
		tris[i] = InvalidID
	}
	for oldTid := 0; oldTid < other.TriangleCapacity(); oldTid++ {
		if !other.IsSetTriangle(oldTid) {
			continue
		}
		newTid := maps.GetTriangle(oldTid)
		if newTid == InvalidID {
			continue
		}
		for j := 0; j < 3; j++ {
			ne := elemMap[other.triangles[3*oldTid+j]]
			tris[3*newTid+j] = ne
			counts[ne]++
		}
	}

	o.refs.SetCounts(counts)
	o.values = values
	o.parentVertices = parents
	o.triangles = tris
}

// CompactInPlace renumbers elements densely and moves triangles and parent vertices
// through maps, after the parent mesh has been compacted with the same maps.
func (o *Overlay[V]) CompactInPlace(maps *meshinfo.CompactMaps) {
	src := &Overlay[V]{}
	src.Copy(o)
	o.CompactCopy(maps, src)
}

func (o *Overlay[V]) highestSetTriangle() int {
	for tid := o.TriangleCapacity() - 1; tid >= 0; tid-- {
		if o.IsSetTriangle(tid) {
			return tid
		}
	}
	return InvalidID
}

// CheckValidity verifies that corners reference live elements belonging to the
// corner's mesh vertex and that reference counts match corner usage. All problems
// found are returned together.
func (o *Overlay[V]) CheckValidity() error {
	var errs error
	uses := make([]int32, o.refs.MaxIndex())
	for tid := 0; tid < o.TriangleCapacity(); tid++ {
		i := 3 * tid
		corners := o.triangles[i : i+3]
		numSet := 0
		for _, eid := range corners {
			if eid >= 0 {
				numSet++
			}
		}
		if numSet == 0 {
			continue
		}
		if numSet != 3 {
			errs = multierr.Append(errs, fmt.Errorf("triangle %d is partially set: %v", tid, corners))
			continue
		}
		if !o.parent.IsTriangle(tid) {
			errs = multierr.Append(errs, fmt.Errorf("triangle %d is set but not in the mesh", tid))
			continue
		}
		tri := o.parent.GetTriangle(tid)
		for j, eid := range corners {
			if !o.refs.IsValid(eid) {
				errs = multierr.Append(errs, fmt.Errorf("triangle %d corner %d uses dead element %d", tid, j, eid))
				continue
			}
			uses[eid]++
			if pv := o.parentVertices[eid]; pv != tri[j] {
				errs = multierr.Append(errs, fmt.Errorf("triangle %d corner %d: element %d belongs to vertex %d, corner vertex is %d",
					tid, j, eid, pv, tri[j]))
			}
		}
	}
	for eid := range o.refs.Indices() {
		if got, want := o.refs.RefCount(eid), int(uses[eid])+1; got != want {
			errs = multierr.Append(errs, fmt.Errorf("element %d has refcount %d, expected %d", eid, got, want))
		}
	}
	return errs
}

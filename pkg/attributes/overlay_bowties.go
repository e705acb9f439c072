package attributes

import (
	"slices"

	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// SplitBowties gives every element a single edge-connected fan of triangles around
// its vertex. Where triangles at a vertex share an element but touch only through
// the vertex, every fan after the first gets a copy of the element. It returns the
// number of elements created.
func (o *Overlay[V]) SplitBowties() int {
	created := 0
	for vid := 0; vid < o.parent.MaxVertexID(); vid++ {
		if o.parent.IsVertex(vid) {
			created += o.SplitBowtiesAtVertex(vid)
		}
	}
	return created
}

// SplitBowtiesAtVertex splits bowtie elements at a single vertex.
func (o *Overlay[V]) SplitBowtiesAtVertex(vid int) int {
	tris := slices.Clone(o.parent.VtxTriangles(vid))
	slices.Sort(tris)

	var order []int
	byElement := make(map[int][]int)
	for _, tid := range tris {
		eid := o.GetElementIDAtVertex(tid, vid)
		if eid == InvalidID {
			continue
		}
		if _, ok := byElement[eid]; !ok {
			order = append(order, eid)
		}
		byElement[eid] = append(byElement[eid], tid)
	}

	created := 0
	var updates []triangleUpdate
	for _, eid := range order {
		group := byElement[eid]
		if len(group) < 2 {
			continue
		}
		comps := o.fanComponents(vid, group)
		for _, comp := range comps[1:] {
			ne := o.appendElement(o.values[eid], vid)
			created++
			for _, tid := range comp {
				tri := o.parent.GetTriangle(tid)
				elems := o.GetTriangle(tid)
				elems[tri.IndexOf(vid)] = ne
				updates = append(updates, triangleUpdate{tid: tid, elems: elems, tri: tri})
			}
		}
	}
	o.assign(updates...)
	return created
}

// fanComponents partitions triangles around vid into groups connected through edges
// incident to vid. Groups are ordered by their smallest triangle.
func (o *Overlay[V]) fanComponents(vid int, group []int) [][]int {
	parent := make([]int, len(group))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	verts := make([]meshinfo.Index3, len(group))
	for i, tid := range group {
		verts[i] = o.parent.GetTriangle(tid)
	}
	for i := range group {
		for j := i + 1; j < len(group); j++ {
			if sharesEdgeAt(verts[i], verts[j], vid) {
				ri, rj := find(i), find(j)
				if ri != rj {
					parent[max(ri, rj)] = min(ri, rj)
				}
			}
		}
	}

	var comps [][]int
	index := make(map[int]int)
	for i, tid := range group {
		r := find(i)
		k, ok := index[r]
		if !ok {
			k = len(comps)
			index[r] = k
			comps = append(comps, nil)
		}
		comps[k] = append(comps[k], tid)
	}
	return comps
}

// sharesEdgeAt reports whether two triangles containing vid share another vertex,
// and so share an edge incident to vid.
func sharesEdgeAt(t0, t1 meshinfo.Index3, vid int) bool {
	for _, u := range t0 {
		if u == vid {
			continue
		}
		for _, w := range t1 {
			if w == u {
				return true
			}
		}
	}
	return false
}

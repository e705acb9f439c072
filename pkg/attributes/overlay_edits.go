package attributes

import (
	"fmt"
	"slices"

	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

type idPair struct{ key, val int }

// idMap is a small linear map between ids, enough for the handful of corners an edit touches.
type idMap []idPair

func (m *idMap) set(key, val int) {
	for i := range *m {
		if (*m)[i].key == key {
			(*m)[i].val = val
			return
		}
	}
	*m = append(*m, idPair{key, val})
}

func (m idMap) get(key int) int {
	for _, p := range m {
		if p.key == key {
			return p.val
		}
	}
	return InvalidID
}

// cornersOf maps each parent vertex of tid's elements to the element.
func (o *Overlay[V]) cornersOf(tid int) idMap {
	corners := make(idMap, 0, 4)
	i := 3 * tid
	for j := 0; j < 3; j++ {
		eid := o.triangles[i+j]
		corners.set(o.parentVertices[eid], eid)
	}
	return corners
}

// updateFrom builds the element triple for the current mesh triangle tid by looking
// each corner vertex up in corners.
func (o *Overlay[V]) updateFrom(tid int, corners idMap) triangleUpdate {
	tri := o.parent.GetTriangle(tid)
	var elems meshinfo.Index3
	for j, vid := range tri {
		elems[j] = corners.get(vid)
		if elems[j] == InvalidID {
			panic(fmt.Sprintf("attributes: no element for vertex %d of triangle %d", vid, tid))
		}
	}
	return triangleUpdate{tid: tid, elems: elems, tri: tri}
}

func (o *Overlay[V]) OnNewVertex(int, bool) {}

func (o *Overlay[V]) OnRemoveVertex(int) {}

// OnNewTriangle leaves the new triangle unset.
func (o *Overlay[V]) OnNewTriangle(tid int, _ bool) {
	o.InitializeNewTriangle(tid)
}

// OnRemoveTriangle unsets tid. Elements no other corner uses are freed.
func (o *Overlay[V]) OnRemoveTriangle(tid int) {
	o.UnsetTriangle(tid)
}

// OnReverseTriOrientation swaps the first two corners to follow the mesh.
func (o *Overlay[V]) OnReverseTriOrientation(tid int) {
	if !o.IsSetTriangle(tid) {
		return
	}
	i := 3 * tid
	o.triangles[i], o.triangles[i+1] = o.triangles[i+1], o.triangles[i]
}

// OnSplitEdge creates an element at the new vertex by interpolating the elements at
// the split edge's endpoints. Both sides share the new element unless the edge is a seam.
func (o *Overlay[V]) OnSplitEdge(info meshinfo.EdgeSplitInfo) {
	a, b := info.OriginalVertices.A, info.OriginalVertices.B
	f := info.NewVertex

	t0 := info.OriginalTriangles.A
	ea0, eb0, ef0 := InvalidID, InvalidID, InvalidID
	if o.IsSetTriangle(t0) {
		corners := o.cornersOf(t0)
		ea0, eb0 = corners.get(a), corners.get(b)
		ef0 = o.appendElement(lerp(o.values[ea0], o.values[eb0], info.SplitT), f)
		corners.set(f, ef0)
		o.assign(o.updateFrom(info.NewTriangles.A, corners), o.updateFrom(t0, corners))
	} else {
		o.InitializeNewTriangle(info.NewTriangles.A)
	}

	t1 := info.OriginalTriangles.B
	if t1 == InvalidID {
		return
	}
	if !o.IsSetTriangle(t1) {
		o.InitializeNewTriangle(info.NewTriangles.B)
		return
	}
	corners := o.cornersOf(t1)
	ea1, eb1 := corners.get(a), corners.get(b)
	ef1 := ef0
	if ef0 == InvalidID || ea1 != ea0 || eb1 != eb0 {
		ef1 = o.appendElement(lerp(o.values[ea1], o.values[eb1], info.SplitT), f)
	}
	corners.set(f, ef1)
	o.assign(o.updateFrom(info.NewTriangles.B, corners), o.updateFrom(t1, corners))
}

// OnFlipEdge rebuilds both triangles from the elements they had. If only one of the
// two triangles was set, both end up unset.
func (o *Overlay[V]) OnFlipEdge(info meshinfo.EdgeFlipInfo) {
	t0, t1 := info.Triangles.A, info.Triangles.B
	set0, set1 := o.IsSetTriangle(t0), o.IsSetTriangle(t1)
	if !set0 || !set1 {
		o.UnsetTriangle(t0)
		o.UnsetTriangle(t1)
		return
	}
	a, b := info.OriginalVerts.A, info.OriginalVerts.B
	c, d := info.OpposingVerts.A, info.OpposingVerts.B
	c0, c1 := o.cornersOf(t0), o.cornersOf(t1)

	n0 := idMap{{c, c0.get(c)}, {d, c1.get(d)}, {b, c0.get(b)}}
	n1 := idMap{{d, c1.get(d)}, {c, c0.get(c)}, {a, c1.get(a)}}
	o.assign(o.updateFrom(t0, n0), o.updateFrom(t1, n1))
}

// OnCollapseEdge welds the removed vertex's elements into the kept vertex's. Elements
// paired through a removed triangle are blended by CollapseT and merged; elements of
// the removed vertex with no partner move to the kept vertex unchanged.
func (o *Overlay[V]) OnCollapseEdge(info meshinfo.EdgeCollapseInfo) {
	vk, vr := info.KeptVertex, info.RemovedVertex
	removed := [2]int{info.RemovedTris.A, info.RemovedTris.B}

	var remap idMap
	var blended []int
	for _, tid := range removed {
		if tid == InvalidID || !o.IsSetTriangle(tid) {
			continue
		}
		corners := o.cornersOf(tid)
		ek, er := corners.get(vk), corners.get(vr)
		if ek == InvalidID || er == InvalidID || remap.get(er) != InvalidID {
			continue
		}
		remap.set(er, ek)
		if !slices.Contains(blended, ek) {
			o.values[ek] = lerp(o.values[ek], o.values[er], info.CollapseT)
			blended = append(blended, ek)
		}
	}

	var updates []triangleUpdate
	for _, tid := range o.parent.VtxTriangles(vk) {
		if !o.IsSetTriangle(tid) {
			continue
		}
		elems := o.GetTriangle(tid)
		changed := false
		for j, eid := range elems {
			if o.parentVertices[eid] != vr {
				continue
			}
			if ek := remap.get(eid); ek != InvalidID {
				elems[j] = ek
				changed = true
			} else {
				o.parentVertices[eid] = vk
			}
		}
		if changed {
			updates = append(updates, triangleUpdate{tid: tid, elems: elems, tri: o.parent.GetTriangle(tid)})
		}
	}
	o.assign(updates...)

	for _, tid := range removed {
		if tid != InvalidID {
			o.UnsetTriangle(tid)
		}
	}
}

// OnPokeTriangle adds an element at the new center vertex, blended from the three
// corner elements by the barycentric coordinates.
func (o *Overlay[V]) OnPokeTriangle(info meshinfo.PokeTriangleInfo) {
	t := info.OriginalTriangle
	if !o.IsSetTriangle(t) {
		o.InitializeNewTriangle(info.NewTriangles.A)
		o.InitializeNewTriangle(info.NewTriangles.B)
		return
	}
	corners := o.cornersOf(t)
	v := info.TriVertices
	ea, eb, ec := corners.get(v[0]), corners.get(v[1]), corners.get(v[2])
	ef := o.appendElement(bary(o.values[ea], o.values[eb], o.values[ec], info.BaryCoords), info.NewVertex)
	corners.set(info.NewVertex, ef)
	o.assign(
		o.updateFrom(info.NewTriangles.A, corners),
		o.updateFrom(info.NewTriangles.B, corners),
		o.updateFrom(t, corners),
	)
}

// OnMergeEdges moves elements of welded vertices to the vertices that were kept.
func (o *Overlay[V]) OnMergeEdges(info meshinfo.MergeEdgesInfo) {
	for i := 0; i < 2; i++ {
		vr, vk := info.RemovedVerts.Get(i), info.KeptVerts.Get(i)
		if vr == InvalidID {
			continue
		}
		for _, tid := range o.parent.VtxTriangles(vk) {
			if !o.IsSetTriangle(tid) {
				continue
			}
			for j := 0; j < 3; j++ {
				if eid := o.triangles[3*tid+j]; o.parentVertices[eid] == vr {
					o.parentVertices[eid] = vk
				}
			}
		}
	}
}

// OnSplitVertex gives the triangles that moved to the new vertex their own copies of
// the elements they used there.
func (o *Overlay[V]) OnSplitVertex(info meshinfo.VertexSplitInfo, trianglesToUpdate []int) {
	dup := make(map[int]int)
	var updates []triangleUpdate
	for _, tid := range trianglesToUpdate {
		if !o.IsSetTriangle(tid) {
			continue
		}
		tri := o.parent.GetTriangle(tid)
		elems := o.GetTriangle(tid)
		for j := range elems {
			if tri[j] != info.NewVertex {
				continue
			}
			ne, ok := dup[elems[j]]
			if !ok {
				ne = o.appendElement(o.values[elems[j]], info.NewVertex)
				dup[elems[j]] = ne
			}
			elems[j] = ne
		}
		updates = append(updates, triangleUpdate{tid: tid, elems: elems, tri: tri})
	}
	o.assign(updates...)
}

package attributes

// edgeCornerElements returns the elements the two triangles of eid use at the
// edge's endpoints. ok is false when the edge has a single triangle or either
// triangle is unset.
func (o *Overlay[V]) edgeCornerElements(eid int) (a0, b0, a1, b1 int, ok bool) {
	et := o.parent.GetEdgeT(eid)
	if et.B == InvalidID || !o.IsSetTriangle(et.A) || !o.IsSetTriangle(et.B) {
		return 0, 0, 0, 0, false
	}
	ev := o.parent.GetEdgeV(eid)
	a0, b0 = o.GetElementIDAtVertex(et.A, ev.A), o.GetElementIDAtVertex(et.A, ev.B)
	a1, b1 = o.GetElementIDAtVertex(et.B, ev.A), o.GetElementIDAtVertex(et.B, ev.B)
	return a0, b0, a1, b1, true
}

// IsSeamEdge reports whether the two triangles of eid use different elements at
// either endpoint. An edge between a set and an unset triangle is a seam; a mesh
// boundary edge is not.
func (o *Overlay[V]) IsSeamEdge(eid int) bool {
	et := o.parent.GetEdgeT(eid)
	if et.B == InvalidID {
		return false
	}
	set0, set1 := o.IsSetTriangle(et.A), o.IsSetTriangle(et.B)
	if set0 != set1 {
		return true
	}
	if !set0 {
		return false
	}
	a0, b0, a1, b1, _ := o.edgeCornerElements(eid)
	return a0 != a1 || b0 != b1
}

// IsSeamEndEdge reports whether exactly one endpoint of the interior edge eid is a
// seam vertex, which marks an edge leaving a seam curve into a continuous region.
func (o *Overlay[V]) IsSeamEndEdge(eid int) bool {
	if o.parent.IsBoundaryEdge(eid) {
		return false
	}
	ev := o.parent.GetEdgeV(eid)
	return o.IsSeamVertex(ev.A, false) != o.IsSeamVertex(ev.B, false)
}

// IsSeamVertex reports whether any edge at vid is a seam edge. With
// boundaryIsSeam set, mesh boundary vertices count as seam vertices too.
func (o *Overlay[V]) IsSeamVertex(vid int, boundaryIsSeam bool) bool {
	if boundaryIsSeam && o.parent.IsBoundaryVertex(vid) {
		return true
	}
	for _, eid := range o.parent.VtxEdges(vid) {
		if o.IsSeamEdge(eid) {
			return true
		}
	}
	return false
}

// AreTrianglesConnected reports whether two triangles sharing a mesh edge also share
// that edge in the overlay.
func (o *Overlay[V]) AreTrianglesConnected(t0, t1 int) bool {
	tri0 := o.parent.GetTriangle(t0)
	for j := 0; j < 3; j++ {
		eid := o.parent.FindEdge(tri0[j], tri0[(j+1)%3])
		if eid == InvalidID {
			continue
		}
		if et := o.parent.GetEdgeT(eid); et.Contains(t1) {
			return o.IsSetTriangle(t0) && o.IsSetTriangle(t1) && !o.IsSeamEdge(eid)
		}
	}
	return false
}

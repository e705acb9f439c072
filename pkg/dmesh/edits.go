package dmesh

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/internal/logger"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// RemoveTriangle deletes tid and any edges left without triangles. With
// removeIsolatedVertices, vertices left without triangles are deleted too.
func (m *Mesh) RemoveTriangle(tid int, removeIsolatedVertices bool) EditResult {
	if !m.IsTriangle(tid) {
		return EditInvalidInput
	}
	tri := m.triangles[tid]
	for _, eid := range m.triangleEdges[tid] {
		m.replaceEdgeTriangle(eid, tid, InvalidID)
		if m.edges[eid].Tri.A == InvalidID {
			m.removeEdge(eid)
		}
	}
	m.freeTriangle(tid)
	if m.attributes != nil {
		m.attributes.OnRemoveTriangle(tid)
	}
	for _, vid := range tri {
		if removeIsolatedVertices && m.vertexRefs.RefCount(vid) == 1 {
			m.vertexRefs.Decrement(vid, 1)
			if m.attributes != nil {
				m.attributes.OnRemoveVertex(vid)
			}
		}
	}
	return EditOK
}

// freeTriangle releases tid and its vertex references. Edges must already be detached.
func (m *Mesh) freeTriangle(tid int) {
	for _, vid := range m.triangles[tid] {
		m.vertexRefs.Decrement(vid, 1)
	}
	m.triangles[tid] = meshinfo.InvalidIndex3()
	m.triangleEdges[tid] = meshinfo.InvalidIndex3()
	m.triangleRefs.Decrement(tid, 1)
}

// ReverseTriOrientation swaps the first two corners of tid.
func (m *Mesh) ReverseTriOrientation(tid int) EditResult {
	if !m.IsTriangle(tid) {
		return EditInvalidInput
	}
	t, e := m.triangles[tid], m.triangleEdges[tid]
	m.triangles[tid] = meshinfo.Index3{t[1], t[0], t[2]}
	m.triangleEdges[tid] = meshinfo.Index3{e[0], e[2], e[1]}
	if m.attributes != nil {
		m.attributes.OnReverseTriOrientation(tid)
	}
	return EditOK
}

// ReverseOrientation reverses the winding of every triangle.
func (m *Mesh) ReverseOrientation() {
	n := 0
	for tid := range m.TriangleIndices() {
		m.ReverseTriOrientation(tid)
		n++
	}
	logger.Named("dmesh").Debug("reversed orientation", zap.Int("triangles", n))
}

func (m *Mesh) otherVertex(tid, a, b int) int {
	for _, v := range m.triangles[tid] {
		if v != a && v != b {
			return v
		}
	}
	return InvalidID
}

func lerpNormal(a, b math.Vec3, t float32) math.Vec3 {
	return a.Lerp(b, t).Normalize()
}

// SplitEdge inserts a vertex on eid at parameter t from GetEdgeV(eid).A towards .B
// and splits each adjacent triangle in two.
func (m *Mesh) SplitEdge(eid int, t float32) (meshinfo.EdgeSplitInfo, EditResult) {
	var info meshinfo.EdgeSplitInfo
	if !m.IsEdge(eid) {
		return info, EditInvalidInput
	}
	e := m.edges[eid]
	t0, t1 := e.Tri.A, e.Tri.B
	a, b, c := m.orientedEdge(eid, t0)
	if a != e.Vert.A {
		t = 1 - t
	}
	d, edb := InvalidID, InvalidID
	if t1 != InvalidID {
		d = m.otherVertex(t1, a, b)
		edb = m.edgeAt(t1, d, b)
	}
	ebc := m.edgeAt(t0, b, c)

	f := m.appendVertex(m.vertices[a].Lerp(m.vertices[b], t), m.normalLerp(a, b, t))

	// t0 (a,b,c) becomes (a,f,c), t2 is (f,b,c)
	m.retargetCorner(t0, b, f)
	m.replaceEdgeVertex(eid, b, f)
	t2 := m.allocTriangle(meshinfo.Index3{f, b, c})
	efb := m.addEdge(f, b, t2, InvalidID)
	efc := m.addEdge(f, c, t0, t2)
	m.replaceEdgeTriangle(ebc, t0, t2)
	m.replaceTriangleEdge(t0, ebc, efc)
	m.triangleEdges[t2] = meshinfo.Index3{efb, ebc, efc}

	info = meshinfo.EdgeSplitInfo{
		OriginalEdge:      eid,
		OriginalVertices:  meshinfo.Index2{A: a, B: b},
		OtherVertices:     meshinfo.Index2{A: c, B: d},
		OriginalTriangles: meshinfo.Index2{A: t0, B: t1},
		IsBoundary:        t1 == InvalidID,
		NewVertex:         f,
		NewEdges:          meshinfo.Index3{efb, efc, InvalidID},
		NewTriangles:      meshinfo.Index2{A: t2, B: InvalidID},
		SplitT:            t,
	}

	if t1 != InvalidID {
		// t1 (b,a,d) becomes (f,a,d), t3 is (f,d,b)
		m.retargetCorner(t1, b, f)
		t3 := m.allocTriangle(meshinfo.Index3{f, d, b})
		efd := m.addEdge(f, d, t1, t3)
		m.edges[efb].Tri.B = t3
		m.replaceEdgeTriangle(edb, t1, t3)
		m.replaceTriangleEdge(t1, edb, efd)
		m.triangleEdges[t3] = meshinfo.Index3{efd, edb, efb}
		info.NewEdges[2] = efd
		info.NewTriangles.B = t3
	}

	if m.attributes != nil {
		m.attributes.OnSplitEdge(info)
	}
	return info, EditOK
}

// retargetCorner replaces vertex old by vid in tid and moves the vertex reference.
func (m *Mesh) retargetCorner(tid, old, vid int) {
	m.triangles[tid] = m.triangles[tid].Replace(old, vid)
	m.vertexRefs.Decrement(old, 1)
	m.vertexRefs.Increment(vid, 1)
}

func (m *Mesh) normalLerp(a, b int, t float32) math.Vec3 {
	if m.normals == nil {
		return math.Vec3{}
	}
	return lerpNormal(m.normals[a], m.normals[b], t)
}

// FlipEdge replaces the diagonal eid of the quad formed by its two triangles with
// the other diagonal.
func (m *Mesh) FlipEdge(eid int) (meshinfo.EdgeFlipInfo, EditResult) {
	var info meshinfo.EdgeFlipInfo
	if !m.IsEdge(eid) {
		return info, EditInvalidInput
	}
	if m.IsBoundaryEdge(eid) {
		return info, EditBoundaryEdge
	}
	t0, t1 := m.edges[eid].Tri.A, m.edges[eid].Tri.B
	a, b, c := m.orientedEdge(eid, t0)
	d := m.otherVertex(t1, a, b)
	if c == d {
		return info, EditDegenerate
	}
	if m.FindEdge(c, d) != InvalidID {
		return info, EditNonManifold
	}
	ebc, eca := m.edgeAt(t0, b, c), m.edgeAt(t0, c, a)
	ead, edb := m.edgeAt(t1, a, d), m.edgeAt(t1, d, b)

	m.triangles[t0] = meshinfo.Index3{c, d, b}
	m.triangles[t1] = meshinfo.Index3{d, c, a}
	m.triangleEdges[t0] = meshinfo.Index3{eid, edb, ebc}
	m.triangleEdges[t1] = meshinfo.Index3{eid, eca, ead}
	m.replaceEdgeTriangle(edb, t1, t0)
	m.replaceEdgeTriangle(eca, t0, t1)

	m.removeVertexEdge(a, eid)
	m.removeVertexEdge(b, eid)
	m.edges[eid].Vert = meshinfo.Index2{A: min(c, d), B: max(c, d)}
	m.vertexEdges[c] = append(m.vertexEdges[c], eid)
	m.vertexEdges[d] = append(m.vertexEdges[d], eid)

	m.vertexRefs.Decrement(a, 1)
	m.vertexRefs.Decrement(b, 1)
	m.vertexRefs.Increment(c, 1)
	m.vertexRefs.Increment(d, 1)

	info = meshinfo.EdgeFlipInfo{
		EdgeID:        eid,
		OriginalVerts: meshinfo.Index2{A: a, B: b},
		OpposingVerts: meshinfo.Index2{A: c, B: d},
		Triangles:     meshinfo.Index2{A: t0, B: t1},
	}
	if m.attributes != nil {
		m.attributes.OnFlipEdge(info)
	}
	return info, EditOK
}

// CollapseEdge welds remove into keep, deleting the triangles on their shared edge.
// keep moves to the point at parameter t from keep towards remove. The collapse is
// refused if it would pinch the surface or fold two triangles onto each other.
func (m *Mesh) CollapseEdge(keep, remove int, t float32) (meshinfo.EdgeCollapseInfo, EditResult) {
	var info meshinfo.EdgeCollapseInfo
	if !m.IsVertex(keep) || !m.IsVertex(remove) || keep == remove {
		return info, EditInvalidInput
	}
	eab := m.FindEdge(keep, remove)
	if eab == InvalidID {
		return info, EditInvalidInput
	}
	a, b := keep, remove
	t0, t1 := m.edges[eab].Tri.A, m.edges[eab].Tri.B
	boundary := t1 == InvalidID
	c, d := m.otherVertex(t0, a, b), InvalidID
	if !boundary {
		d = m.otherVertex(t1, a, b)
	}

	// link condition: a and b may only share the vertices opposite the edge
	var common []int
	nbrsA := m.VtxNeighbours(a)
	for _, x := range m.VtxNeighbours(b) {
		if slices.Contains(nbrsA, x) {
			common = append(common, x)
		}
	}
	want := 1
	if !boundary {
		want = 2
	}
	if len(common) != want || !slices.Contains(common, c) || (!boundary && !slices.Contains(common, d)) {
		return info, EditNonManifold
	}
	if !boundary {
		if m.IsBoundaryVertex(a) && m.IsBoundaryVertex(b) {
			return info, EditNonManifold
		}
		// if (c,d) already borders a, the collapse leaves two triangles on the same vertices
		if ecd := m.FindEdge(c, d); ecd != InvalidID {
			for _, tid := range [2]int{m.edges[ecd].Tri.A, m.edges[ecd].Tri.B} {
				if tid != InvalidID && m.triangles[tid].Contains(a) {
					return info, EditNonManifold
				}
			}
		}
	}

	ebc, eac := m.edgeAt(t0, b, c), m.edgeAt(t0, a, c)
	ebd, ead := InvalidID, InvalidID
	if !boundary {
		ebd, ead = m.edgeAt(t1, b, d), m.edgeAt(t1, a, d)
	}

	m.vertices[a] = m.vertices[a].Lerp(m.vertices[b], t)
	if m.normals != nil {
		m.normals[a] = lerpNormal(m.normals[a], m.normals[b], t)
	}

	for _, tid := range [2]int{t0, t1} {
		if tid == InvalidID {
			continue
		}
		for _, e := range m.triangleEdges[tid] {
			m.replaceEdgeTriangle(e, tid, InvalidID)
		}
		m.freeTriangle(tid)
	}
	// gathered before the merges below strip b of its edges
	moved := m.VtxTriangles(b)
	m.removeEdge(eab)
	m.mergeEdgeInto(eac, ebc)
	if !boundary {
		m.mergeEdgeInto(ead, ebd)
	}

	for _, e := range slices.Clone(m.vertexEdges[b]) {
		m.replaceEdgeVertex(e, b, a)
	}
	for _, tid := range moved {
		m.retargetCorner(tid, b, a)
	}
	m.vertexRefs.Decrement(b, 1)

	info = meshinfo.EdgeCollapseInfo{
		KeptVertex:    a,
		RemovedVertex: b,
		OpposingVerts: meshinfo.Index2{A: c, B: d},
		IsBoundary:    boundary,
		CollapsedEdge: eab,
		RemovedTris:   meshinfo.Index2{A: t0, B: t1},
		RemovedEdges:  meshinfo.Index2{A: ebc, B: ebd},
		KeptEdges:     meshinfo.Index2{A: eac, B: ead},
		CollapseT:     t,
	}
	if m.attributes != nil {
		m.attributes.OnCollapseEdge(info)
	}
	return info, EditOK
}

// mergeEdgeInto moves the remaining triangle of removed onto kept and deletes
// removed. kept is deleted too if neither has a triangle left.
func (m *Mesh) mergeEdgeInto(kept, removed int) {
	if tid := m.edges[removed].Tri.A; tid != InvalidID {
		k := &m.edges[kept]
		if k.Tri.A == InvalidID {
			k.Tri.A = tid
		} else {
			k.Tri.B = tid
		}
		m.replaceTriangleEdge(tid, removed, kept)
	}
	m.removeEdge(removed)
	if m.edges[kept].Tri.A == InvalidID {
		m.removeEdge(kept)
	}
}

// PokeTriangle inserts a vertex at barycentric coordinates bary inside tid and
// replaces tid with three triangles around it.
func (m *Mesh) PokeTriangle(tid int, bary [3]float32) (meshinfo.PokeTriangleInfo, EditResult) {
	var info meshinfo.PokeTriangleInfo
	if !m.IsTriangle(tid) {
		return info, EditInvalidInput
	}
	tri := m.triangles[tid]
	a, b, c := tri[0], tri[1], tri[2]
	pos := m.vertices[a].Scale(bary[0]).Add(m.vertices[b].Scale(bary[1])).Add(m.vertices[c].Scale(bary[2]))
	var normal math.Vec3
	if m.normals != nil {
		normal = m.normals[a].Scale(bary[0]).Add(m.normals[b].Scale(bary[1])).Add(m.normals[c].Scale(bary[2])).Normalize()
	}
	f := m.appendVertex(pos, normal)
	te := m.triangleEdges[tid]
	eab, ebc, eca := te[0], te[1], te[2]

	m.retargetCorner(tid, c, f)
	t1 := m.allocTriangle(meshinfo.Index3{b, c, f})
	t2 := m.allocTriangle(meshinfo.Index3{c, a, f})
	eaf := m.addEdge(a, f, tid, t2)
	ebf := m.addEdge(b, f, tid, t1)
	ecf := m.addEdge(c, f, t1, t2)
	m.replaceEdgeTriangle(ebc, tid, t1)
	m.replaceEdgeTriangle(eca, tid, t2)
	m.triangleEdges[tid] = meshinfo.Index3{eab, ebf, eaf}
	m.triangleEdges[t1] = meshinfo.Index3{ebc, ecf, ebf}
	m.triangleEdges[t2] = meshinfo.Index3{eca, eaf, ecf}

	info = meshinfo.PokeTriangleInfo{
		OriginalTriangle: tid,
		TriVertices:      tri,
		NewVertex:        f,
		NewTriangles:     meshinfo.Index2{A: t1, B: t2},
		NewEdges:         meshinfo.Index3{eaf, ebf, ecf},
		BaryCoords:       bary,
	}
	if m.attributes != nil {
		m.attributes.OnPokeTriangle(info)
	}
	return info, EditOK
}

// MergeEdges zips two boundary edges of opposite orientation together. The
// endpoints of discard are welded into those of keep and discard is deleted.
func (m *Mesh) MergeEdges(keep, discard int) (meshinfo.MergeEdgesInfo, EditResult) {
	var info meshinfo.MergeEdgesInfo
	if !m.IsEdge(keep) || !m.IsEdge(discard) || keep == discard {
		return info, EditInvalidInput
	}
	if !m.IsBoundaryEdge(keep) || !m.IsBoundaryEdge(discard) {
		return info, EditNotBoundaryEdge
	}
	tk, td := m.edges[keep].Tri.A, m.edges[discard].Tri.A
	if tk == td {
		return info, EditDegenerate
	}
	a, b, _ := m.orientedEdge(keep, tk)
	c, d, _ := m.orientedEdge(discard, td)
	if a == c || b == d {
		return info, EditDegenerate
	}

	// c welds into b, d welds into a
	kept := [2]int{b, a}
	removed := [2]int{c, d}
	for i := range kept {
		vk, vr := kept[i], removed[i]
		if vk == vr {
			continue
		}
		if m.FindEdge(vk, vr) != InvalidID {
			return info, EditNonManifold
		}
		// welding vr would turn an existing (kept[1-i], vr) edge into a second keep edge
		if removed[1-i] != kept[1-i] && m.FindEdge(kept[1-i], vr) != InvalidID {
			return info, EditNonManifold
		}
		skip := [2]int{kept[1-i], removed[1-i]}
		nbrs := m.VtxNeighbours(vk)
		for _, x := range m.VtxNeighbours(vr) {
			if x != skip[0] && x != skip[1] && slices.Contains(nbrs, x) {
				return info, EditNonManifold
			}
		}
	}

	m.edges[keep].Tri.B = td
	m.replaceTriangleEdge(td, discard, keep)
	m.removeEdge(discard)

	info = meshinfo.MergeEdgesInfo{
		KeptEdge:     keep,
		RemovedEdge:  discard,
		KeptVerts:    meshinfo.Index2{A: a, B: b},
		RemovedVerts: meshinfo.InvalidIndex2(),
	}
	for i := range kept {
		vk, vr := kept[i], removed[i]
		if vk == vr {
			continue
		}
		m.weldVertex(vk, vr)
		if vk == a {
			info.RemovedVerts.A = vr
		} else {
			info.RemovedVerts.B = vr
		}
	}

	if m.attributes != nil {
		m.attributes.OnMergeEdges(info)
	}
	return info, EditOK
}

// weldVertex moves every edge and triangle of vr onto vk and deletes vr.
func (m *Mesh) weldVertex(vk, vr int) {
	tris := m.VtxTriangles(vr)
	for _, e := range slices.Clone(m.vertexEdges[vr]) {
		m.replaceEdgeVertex(e, vr, vk)
	}
	for _, tid := range tris {
		m.retargetCorner(tid, vr, vk)
	}
	m.vertexRefs.Decrement(vr, 1)
}

// SplitVertex moves the given triangles from vid to a new vertex at the same
// position. Edges shared between a moved and a non-moved triangle are duplicated.
func (m *Mesh) SplitVertex(vid int, triangles []int) (meshinfo.VertexSplitInfo, EditResult) {
	var info meshinfo.VertexSplitInfo
	if !m.IsVertex(vid) || len(triangles) == 0 {
		return info, EditInvalidInput
	}
	tris := slices.Clone(triangles)
	slices.Sort(tris)
	tris = slices.Compact(tris)
	for _, tid := range tris {
		if !m.IsTriangle(tid) || !m.triangles[tid].Contains(vid) {
			return info, EditInvalidInput
		}
	}
	if len(tris) >= m.GetVtxTriangleCount(vid) {
		return info, EditFailed
	}

	nv := m.appendVertex(m.vertices[vid], m.GetVertexNormal(vid))
	moving := func(tid int) bool {
		return tid != InvalidID && slices.Contains(tris, tid)
	}
	for _, eid := range slices.Clone(m.vertexEdges[vid]) {
		et := m.edges[eid].Tri
		inA, inB := moving(et.A), moving(et.B)
		switch {
		case inA && (inB || et.B == InvalidID):
			m.replaceEdgeVertex(eid, vid, nv)
		case inA || inB:
			tid := et.A
			if inB {
				tid = et.B
			}
			x := m.edges[eid].Vert.OtherOf(vid)
			ne := m.addEdge(nv, x, tid, InvalidID)
			m.replaceEdgeTriangle(eid, tid, InvalidID)
			m.replaceTriangleEdge(tid, eid, ne)
		}
	}
	for _, tid := range tris {
		m.retargetCorner(tid, vid, nv)
	}

	info = meshinfo.VertexSplitInfo{OriginalVertex: vid, NewVertex: nv}
	if m.attributes != nil {
		m.attributes.OnSplitVertex(info, tris)
	}
	return info, EditOK
}

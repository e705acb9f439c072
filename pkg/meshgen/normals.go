package meshgen

import (
	"github.com/Faultbox/dynmesh/internal/parallel"
	"github.com/Faultbox/dynmesh/pkg/attributes"
	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// ComputeOverlayNormals recomputes every element of a normal overlay as the
// area-weighted average of the face normals of the triangles that use it.
// Elements used by no triangle, or only by degenerate ones, are left unchanged.
func ComputeOverlayNormals(m *dmesh.Mesh, overlay *attributes.NormalOverlay) {
	sums := make([]math.Vec3, overlay.MaxElementID())
	for tid := range m.TriangleIndices() {
		if !overlay.IsSetTriangle(tid) {
			continue
		}
		n, area := m.TriNormalArea(tid)
		weighted := n.Scale(area)
		for _, eid := range overlay.GetTriangle(tid) {
			sums[eid] = sums[eid].Add(weighted)
		}
	}

	parallel.For(len(sums), func(eid int) {
		if !overlay.IsElement(eid) || sums[eid].Length() == 0 {
			return
		}
		overlay.SetElement(eid, sums[eid].Normalize())
	})
}

// ComputeVertexNormals sets per-vertex normals from the one-ring face normals,
// enabling vertex normals first if needed.
func ComputeVertexNormals(m *dmesh.Mesh) {
	if !m.HasVertexNormals() {
		m.EnableVertexNormals(math.Vec3{Y: 1})
	}
	sums := make([]math.Vec3, m.MaxVertexID())
	for tid := range m.TriangleIndices() {
		n, area := m.TriNormalArea(tid)
		for _, vid := range m.GetTriangle(tid) {
			sums[vid] = sums[vid].Add(n.Scale(area))
		}
	}
	for vid := range m.VertexIndices() {
		if sums[vid].Length() > 0 {
			m.SetVertexNormal(vid, sums[vid].Normalize())
		}
	}
}

// InitializeSmoothNormals discards the overlay's elements and creates one shared
// element per vertex, so the overlay has no seams, then computes their values.
func InitializeSmoothNormals(m *dmesh.Mesh, overlay *attributes.NormalOverlay) {
	overlay.ClearElements()
	elems := make([]int, m.MaxVertexID())
	for vid := range m.VertexIndices() {
		if m.GetVtxTriangleCount(vid) > 0 {
			elems[vid] = overlay.AppendElement(math.Vec3{})
		}
	}
	for tid := range m.TriangleIndices() {
		t := m.GetTriangle(tid)
		overlay.SetTriangle(tid, meshinfo.Index3{elems[t[0]], elems[t[1]], elems[t[2]]})
	}
	ComputeOverlayNormals(m, overlay)
}

// InitializeFaceNormals discards the overlay's elements and gives every triangle
// its own three elements holding the face normal. Every edge becomes a seam.
func InitializeFaceNormals(m *dmesh.Mesh, overlay *attributes.NormalOverlay) {
	overlay.ClearElements()
	for tid := range m.TriangleIndices() {
		n, _ := m.TriNormalArea(tid)
		overlay.SetTriangle(tid, meshinfo.Index3{
			overlay.AppendElement(n),
			overlay.AppendElement(n),
			overlay.AppendElement(n),
		})
	}
}

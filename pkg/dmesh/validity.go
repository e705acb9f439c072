package dmesh

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"
)

// ErrInvalidMesh is wrapped by CheckValidity when the mesh or its attributes are
// inconsistent.
var ErrInvalidMesh = errors.New("invalid mesh")

// CheckValidity verifies triangle, edge and vertex adjacency, reference counts and
// the attached attributes. Every problem found is reported in the returned error.
func (m *Mesh) CheckValidity() error {
	var errs error
	fail := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	triCount := make([]int, m.MaxVertexID())
	for tid := range m.TriangleIndices() {
		tri := m.triangles[tid]
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			fail("triangle %d is degenerate: %v", tid, tri)
		}
		for j, vid := range tri {
			if !m.IsVertex(vid) {
				fail("triangle %d uses dead vertex %d", tid, vid)
				continue
			}
			triCount[vid]++
			eid := m.triangleEdges[tid][j]
			if !m.IsEdge(eid) {
				fail("triangle %d edge %d: %d is not an edge", tid, j, eid)
				continue
			}
			e := m.edges[eid]
			if !e.Tri.Contains(tid) {
				fail("edge %d does not list triangle %d", eid, tid)
			}
			if !e.Vert.Contains(vid) || !e.Vert.Contains(tri[(j+1)%3]) {
				fail("triangle %d edge %d: edge %d joins %v", tid, j, eid, e.Vert)
			}
		}
	}

	for eid := range m.EdgeIndices() {
		e := m.edges[eid]
		if e.Vert.A >= e.Vert.B {
			fail("edge %d vertices not sorted: %v", eid, e.Vert)
		}
		if e.Tri.A == InvalidID {
			fail("edge %d has no triangles", eid)
		}
		for _, tid := range [2]int{e.Tri.A, e.Tri.B} {
			if tid == InvalidID {
				continue
			}
			if !m.IsTriangle(tid) {
				fail("edge %d lists dead triangle %d", eid, tid)
			} else if !m.triangleEdges[tid].Contains(eid) {
				fail("triangle %d does not list edge %d", tid, eid)
			}
		}
		for _, vid := range [2]int{e.Vert.A, e.Vert.B} {
			if !m.IsVertex(vid) || !slices.Contains(m.vertexEdges[vid], eid) {
				fail("edge %d missing from vertex %d", eid, vid)
			}
		}
		if found := m.FindEdge(e.Vert.A, e.Vert.B); found != eid {
			fail("edge %d duplicates edge %d", eid, found)
		}
	}

	for vid := range m.VertexIndices() {
		if got, want := m.vertexRefs.RefCount(vid), triCount[vid]+1; got != want {
			fail("vertex %d has refcount %d, expected %d", vid, got, want)
		}
		for _, eid := range m.vertexEdges[vid] {
			if !m.IsEdge(eid) || !m.edges[eid].Vert.Contains(vid) {
				fail("vertex %d lists edge %d that does not touch it", vid, eid)
			}
		}
	}
	if m.normals != nil && len(m.normals) != len(m.vertices) {
		fail("%d vertex normals for %d vertices", len(m.normals), len(m.vertices))
	}

	if m.attributes != nil {
		if err := m.attributes.CheckValidity(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("attributes: %w", err))
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMesh, errs)
	}
	return nil
}

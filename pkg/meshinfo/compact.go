package meshinfo

import "fmt"

// CompactMaps records how vertex and triangle ids moved during compaction.
// An entry of InvalidID means the id was removed and has no new id.
type CompactMaps struct {
	VertexMap   []int
	TriangleMap []int
}

// NewCompactMaps returns maps sized for the given id ranges, every entry unmapped.
func NewCompactMaps(maxVertexID, maxTriangleID int) *CompactMaps {
	m := &CompactMaps{
		VertexMap:   make([]int, maxVertexID),
		TriangleMap: make([]int, maxTriangleID),
	}
	for i := range m.VertexMap {
		m.VertexMap[i] = InvalidID
	}
	for i := range m.TriangleMap {
		m.TriangleMap[i] = InvalidID
	}
	return m
}

// SetVertex records old -> new for a vertex.
func (m *CompactMaps) SetVertex(oldID, newID int) {
	m.VertexMap[oldID] = newID
}

// SetTriangle records old -> new for a triangle.
func (m *CompactMaps) SetTriangle(oldID, newID int) {
	m.TriangleMap[oldID] = newID
}

// GetVertex returns the new id for a vertex, or InvalidID.
func (m *CompactMaps) GetVertex(oldID int) int {
	if oldID < 0 || oldID >= len(m.VertexMap) {
		return InvalidID
	}
	return m.VertexMap[oldID]
}

// GetTriangle returns the new id for a triangle, or InvalidID.
func (m *CompactMaps) GetTriangle(oldID int) int {
	if oldID < 0 || oldID >= len(m.TriangleMap) {
		return InvalidID
	}
	return m.TriangleMap[oldID]
}

// NewMaxTriangleID returns one past the largest mapped triangle id.
func (m *CompactMaps) NewMaxTriangleID() int {
	n := 0
	for _, id := range m.TriangleMap {
		if id+1 > n {
			n = id + 1
		}
	}
	return n
}

// MustCover panics unless the maps cover the given id ranges.
func (m *CompactMaps) MustCover(maxVertexID, maxTriangleID int) {
	if len(m.VertexMap) < maxVertexID || len(m.TriangleMap) < maxTriangleID {
		panic(fmt.Sprintf("meshinfo: compact maps cover %d vertices / %d triangles, need %d / %d",
			len(m.VertexMap), len(m.TriangleMap), maxVertexID, maxTriangleID))
	}
}

package meshinfo

// EdgeSplitInfo describes a SplitEdge edit. The triangle holding the oriented edge
// (A,B) is OriginalTriangles.A; it keeps A and the new vertex, and NewTriangles.A
// takes the B half. On the other side OriginalTriangles.B keeps A, NewTriangles.B
// takes the B half. For a boundary edge the B fields are InvalidID.
type EdgeSplitInfo struct {
	OriginalEdge      int
	OriginalVertices  Index2
	OtherVertices     Index2
	OriginalTriangles Index2
	IsBoundary        bool
	NewVertex         int
	NewEdges          Index3
	NewTriangles      Index2
	SplitT            float32
}

// EdgeFlipInfo describes a FlipEdge edit. Before the flip Triangles.A = (a,b,c) and
// Triangles.B = (b,a,d); afterwards they are (c,d,b) and (d,c,a).
type EdgeFlipInfo struct {
	EdgeID        int
	OriginalVerts Index2
	OpposingVerts Index2
	Triangles     Index2
}

// EdgeCollapseInfo describes a CollapseEdge edit where RemovedVertex is welded into KeptVertex.
type EdgeCollapseInfo struct {
	KeptVertex    int
	RemovedVertex int
	OpposingVerts Index2
	IsBoundary    bool
	CollapsedEdge int
	RemovedTris   Index2
	RemovedEdges  Index2
	KeptEdges     Index2
	CollapseT     float32
}

// PokeTriangleInfo describes a PokeTriangle edit. The original triangle (a,b,c)
// becomes (a,b,f), NewTriangles are (b,c,f) and (c,a,f).
type PokeTriangleInfo struct {
	OriginalTriangle int
	TriVertices      Index3
	NewVertex        int
	NewTriangles     Index2
	NewEdges         Index3
	BaryCoords       [3]float32
}

// MergeEdgesInfo describes a MergeEdges edit. RemovedVerts[i] was welded into
// KeptVerts[i]; a RemovedVerts entry is InvalidID when the vertex was already shared.
type MergeEdgesInfo struct {
	KeptEdge     int
	RemovedEdge  int
	KeptVerts    Index2
	RemovedVerts Index2
}

// VertexSplitInfo describes a SplitVertex edit: the listed triangles moved from
// OriginalVertex to NewVertex.
type VertexSplitInfo struct {
	OriginalVertex int
	NewVertex      int
}

package attributes

import "github.com/Faultbox/dynmesh/pkg/meshinfo"

// handlers lists every layer in fan-out order: UV layers, normal layers, color,
// material id, polygroup layers, then generic attributes by name.
func (s *AttributeSet) handlers() []EditHandler {
	hs := make([]EditHandler, 0, len(s.uvLayers)+len(s.normalLayers)+len(s.polygroupLayers)+len(s.generic)+2)
	for _, l := range s.uvLayers {
		hs = append(hs, l)
	}
	for _, l := range s.normalLayers {
		hs = append(hs, l)
	}
	if s.colorLayer != nil {
		hs = append(hs, s.colorLayer)
	}
	if s.materialID != nil {
		hs = append(hs, s.materialID)
	}
	for _, l := range s.polygroupLayers {
		hs = append(hs, l)
	}
	for _, name := range s.AttachedAttributeNames() {
		hs = append(hs, s.generic[name])
	}
	return hs
}

// OnNewVertex forwards a vertex append to every channel.
func (s *AttributeSet) OnNewVertex(vid int, inserted bool) {
	for _, h := range s.handlers() {
		h.OnNewVertex(vid, inserted)
	}
}

// OnRemoveVertex forwards a vertex removal to every channel.
func (s *AttributeSet) OnRemoveVertex(vid int) {
	for _, h := range s.handlers() {
		h.OnRemoveVertex(vid)
	}
}

// OnNewTriangle leaves the triangle unset in every overlay and puts it in material 0
// and group 0.
func (s *AttributeSet) OnNewTriangle(tid int, inserted bool) {
	for _, l := range s.uvLayers {
		l.InitializeNewTriangle(tid)
	}
	for _, l := range s.normalLayers {
		l.InitializeNewTriangle(tid)
	}
	if s.colorLayer != nil {
		s.colorLayer.InitializeNewTriangle(tid)
	}
	if s.materialID != nil {
		s.materialID.SetValue(tid, 0)
	}
	for _, l := range s.polygroupLayers {
		l.SetValue(tid, 0)
	}
	for _, name := range s.AttachedAttributeNames() {
		s.generic[name].OnNewTriangle(tid, inserted)
	}
}

// OnRemoveTriangle releases the triangle's elements and values in every channel.
func (s *AttributeSet) OnRemoveTriangle(tid int) {
	for _, h := range s.handlers() {
		h.OnRemoveTriangle(tid)
	}
}

// OnReverseTriOrientation reorders the triangle's corners in every overlay.
func (s *AttributeSet) OnReverseTriOrientation(tid int) {
	for _, h := range s.handlers() {
		h.OnReverseTriOrientation(tid)
	}
}

// OnSplitEdge updates every channel after an edge split.
func (s *AttributeSet) OnSplitEdge(info meshinfo.EdgeSplitInfo) {
	for _, h := range s.handlers() {
		h.OnSplitEdge(info)
	}
}

// OnFlipEdge updates every channel after an edge flip.
func (s *AttributeSet) OnFlipEdge(info meshinfo.EdgeFlipInfo) {
	for _, h := range s.handlers() {
		h.OnFlipEdge(info)
	}
}

// OnCollapseEdge updates every channel after an edge collapse.
func (s *AttributeSet) OnCollapseEdge(info meshinfo.EdgeCollapseInfo) {
	for _, h := range s.handlers() {
		h.OnCollapseEdge(info)
	}
}

// OnPokeTriangle updates every channel after a triangle poke.
func (s *AttributeSet) OnPokeTriangle(info meshinfo.PokeTriangleInfo) {
	for _, h := range s.handlers() {
		h.OnPokeTriangle(info)
	}
}

// OnMergeEdges updates every channel after two boundary edges are zipped.
func (s *AttributeSet) OnMergeEdges(info meshinfo.MergeEdgesInfo) {
	for _, h := range s.handlers() {
		h.OnMergeEdges(info)
	}
}

// OnSplitVertex updates every channel after trianglesToUpdate moved to the new vertex.
func (s *AttributeSet) OnSplitVertex(info meshinfo.VertexSplitInfo, trianglesToUpdate []int) {
	for _, h := range s.handlers() {
		h.OnSplitVertex(info, trianglesToUpdate)
	}
}

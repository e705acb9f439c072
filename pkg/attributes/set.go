package attributes

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Faultbox/dynmesh/pkg/math"
)

// AttributeSet owns the attribute layers of one mesh and forwards mesh edits to them.
// The parent mesh is a non-owning reference; it must outlive the set, and Reparent
// must be called if the set moves to another mesh.
type AttributeSet struct {
	parent ParentMesh

	uvLayers        []*UVOverlay
	normalLayers    []*NormalOverlay
	colorLayer      *ColorOverlay
	materialID      *MaterialIDAttribute
	polygroupLayers []*PolygroupAttribute

	generic map[string]Attribute
}

// NewAttributeSet returns an empty set attached to parent.
func NewAttributeSet(parent ParentMesh) *AttributeSet {
	return &AttributeSet{parent: parent, generic: make(map[string]Attribute)}
}

// NewAttributeSetWithLayers returns a set attached to parent with the given number of
// UV and normal layers.
func NewAttributeSetWithLayers(parent ParentMesh, numUVLayers, numNormalLayers int) *AttributeSet {
	s := NewAttributeSet(parent)
	s.SetNumUVLayers(numUVLayers)
	s.SetNumNormalLayers(numNormalLayers)
	return s
}

// ParentMesh returns the mesh the set is attached to.
func (s *AttributeSet) ParentMesh() ParentMesh {
	return s.parent
}

// Initialize sizes every layer for maxTriangleID triangles. Overlays are left with
// all triangles unset; per-triangle channels get zero values.
func (s *AttributeSet) Initialize(maxTriangleID int) {
	for _, l := range s.uvLayers {
		l.InitializeTriangles(maxTriangleID)
	}
	for _, l := range s.normalLayers {
		l.InitializeTriangles(maxTriangleID)
	}
	if s.colorLayer != nil {
		s.colorLayer.InitializeTriangles(maxTriangleID)
	}
	if s.materialID != nil {
		s.materialID.Initialize(0)
	}
	for _, l := range s.polygroupLayers {
		l.Initialize(0)
	}
}

// NumUVLayers returns the number of UV layers.
func (s *AttributeSet) NumUVLayers() int { return len(s.uvLayers) }

// SetNumUVLayers grows or truncates the UV layer list to exactly n layers.
func (s *AttributeSet) SetNumUVLayers(n int) {
	s.uvLayers = resizeOverlays(s.uvLayers, n, s.parent)
	if len(s.uvLayers) != n {
		panic(fmt.Sprintf("attributes: SetNumUVLayers(%d) left %d layers", n, len(s.uvLayers)))
	}
}

// UVLayer returns UV layer i, or nil if there is no such layer.
func (s *AttributeSet) UVLayer(i int) *UVOverlay {
	if i < 0 || i >= len(s.uvLayers) {
		return nil
	}
	return s.uvLayers[i]
}

// PrimaryUV returns the first UV layer, or nil.
func (s *AttributeSet) PrimaryUV() *UVOverlay { return s.UVLayer(0) }

// NumNormalLayers returns the number of normal layers, tangents included.
func (s *AttributeSet) NumNormalLayers() int { return len(s.normalLayers) }

// SetNumNormalLayers grows or truncates the normal layer list to exactly n layers.
func (s *AttributeSet) SetNumNormalLayers(n int) {
	s.normalLayers = resizeOverlays(s.normalLayers, n, s.parent)
	if len(s.normalLayers) != n {
		panic(fmt.Sprintf("attributes: SetNumNormalLayers(%d) left %d layers", n, len(s.normalLayers)))
	}
}

// NormalLayer returns normal layer i, or nil if there is no such layer.
func (s *AttributeSet) NormalLayer(i int) *NormalOverlay {
	if i < 0 || i >= len(s.normalLayers) {
		return nil
	}
	return s.normalLayers[i]
}

// Normal layers 0, 1 and 2 hold normals, tangents and bitangents.
func (s *AttributeSet) PrimaryNormals() *NormalOverlay    { return s.NormalLayer(0) }
func (s *AttributeSet) PrimaryTangents() *NormalOverlay   { return s.NormalLayer(1) }
func (s *AttributeSet) PrimaryBiTangents() *NormalOverlay { return s.NormalLayer(2) }

// HasTangentSpace reports whether normal, tangent and bitangent layers exist.
func (s *AttributeSet) HasTangentSpace() bool { return len(s.normalLayers) >= 3 }

// EnableTangents sets the normal layer count to 3: normals, tangents, bitangents.
func (s *AttributeSet) EnableTangents() { s.SetNumNormalLayers(3) }

// DisableTangents keeps only the normal layer.
func (s *AttributeSet) DisableTangents() { s.SetNumNormalLayers(1) }

// HasPrimaryColors reports whether the color layer is enabled.
func (s *AttributeSet) HasPrimaryColors() bool { return s.colorLayer != nil }

// PrimaryColors returns the color layer, or nil.
func (s *AttributeSet) PrimaryColors() *ColorOverlay { return s.colorLayer }

// EnablePrimaryColors adds the color layer if it does not exist yet.
func (s *AttributeSet) EnablePrimaryColors() {
	if s.colorLayer != nil {
		return
	}
	s.colorLayer = NewOverlay[math.Vec4](s.parent)
	s.colorLayer.InitializeTriangles(s.parent.MaxTriangleID())
}

// DisablePrimaryColors drops the color layer.
func (s *AttributeSet) DisablePrimaryColors() { s.colorLayer = nil }

// HasMaterialID reports whether the material id channel is enabled.
func (s *AttributeSet) HasMaterialID() bool { return s.materialID != nil }

// MaterialID returns the material id channel, or nil.
func (s *AttributeSet) MaterialID() *MaterialIDAttribute { return s.materialID }

// EnableMaterialID adds the material id channel, every triangle set to 0.
func (s *AttributeSet) EnableMaterialID() {
	if s.materialID != nil {
		return
	}
	s.materialID = NewTriangleAttribute[int32](s.parent)
	s.materialID.Initialize(0)
}

// DisableMaterialID drops the material id channel.
func (s *AttributeSet) DisableMaterialID() { s.materialID = nil }

// IsMaterialBoundaryEdge reports whether the two triangles of eid have different
// material ids. Boundary edges and sets without material ids report false.
func (s *AttributeSet) IsMaterialBoundaryEdge(eid int) bool {
	if s.materialID == nil {
		return false
	}
	if !s.parent.IsEdge(eid) {
		panic(fmt.Sprintf("attributes: IsMaterialBoundaryEdge(%d) on an edge not in the mesh", eid))
	}
	et := s.parent.GetEdgeT(eid)
	if et.A == InvalidID || et.B == InvalidID {
		return false
	}
	return s.materialID.GetValue(et.A) != s.materialID.GetValue(et.B)
}

// NumPolygroupLayers returns the number of polygroup layers.
func (s *AttributeSet) NumPolygroupLayers() int { return len(s.polygroupLayers) }

// SetNumPolygroupLayers grows or truncates the polygroup layer list to exactly n.
// New layers are unnamed with every triangle in group 0.
func (s *AttributeSet) SetNumPolygroupLayers(n int) {
	if n < len(s.polygroupLayers) {
		clear(s.polygroupLayers[n:])
		s.polygroupLayers = s.polygroupLayers[:n]
	}
	for len(s.polygroupLayers) < n {
		s.polygroupLayers = append(s.polygroupLayers, NewTriangleAttribute[int32](s.parent))
	}
	if len(s.polygroupLayers) != n {
		panic(fmt.Sprintf("attributes: SetNumPolygroupLayers(%d) left %d layers", n, len(s.polygroupLayers)))
	}
}

// PolygroupLayer returns polygroup layer i, or nil.
func (s *AttributeSet) PolygroupLayer(i int) *PolygroupAttribute {
	if i < 0 || i >= len(s.polygroupLayers) {
		return nil
	}
	return s.polygroupLayers[i]
}

// AttachAttribute takes ownership of attr under name, replacing any attribute
// already attached with that name.
func (s *AttributeSet) AttachAttribute(name string, attr Attribute) {
	if s.generic == nil {
		s.generic = make(map[string]Attribute)
	}
	s.generic[name] = attr
}

// RemoveAttribute drops the attribute attached as name, if any.
func (s *AttributeSet) RemoveAttribute(name string) {
	delete(s.generic, name)
}

// GetAttachedAttribute returns the attribute attached as name, or nil.
func (s *AttributeSet) GetAttachedAttribute(name string) Attribute {
	return s.generic[name]
}

// HasAttachedAttribute reports whether an attribute is attached as name.
func (s *AttributeSet) HasAttachedAttribute(name string) bool {
	_, ok := s.generic[name]
	return ok
}

// NumAttachedAttributes returns the number of attached generic attributes.
func (s *AttributeSet) NumAttachedAttributes() int { return len(s.generic) }

// AttachedAttributeNames returns the names of attached attributes in sorted order.
func (s *AttributeSet) AttachedAttributeNames() []string {
	return slices.Sorted(maps.Keys(s.generic))
}

// AttachedAs returns the attribute attached as name if it has type A.
func AttachedAs[A Attribute](s *AttributeSet, name string) (A, bool) {
	a, ok := s.generic[name].(A)
	return a, ok
}

func resizeOverlays[V Value[V]](layers []*Overlay[V], n int, parent ParentMesh) []*Overlay[V] {
	if n < len(layers) {
		clear(layers[n:])
		return layers[:n]
	}
	for len(layers) < n {
		l := NewOverlay[V](parent)
		l.InitializeTriangles(parent.MaxTriangleID())
		layers = append(layers, l)
	}
	return layers
}

package attributes

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/internal/logger"
	"github.com/Faultbox/dynmesh/internal/parallel"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// Copy makes s a deep copy of other's layers. The parent mesh of s is not changed,
// so the caller must already have attached s to a mesh with the same ids as other's.
func (s *AttributeSet) Copy(other *AttributeSet) {
	s.SetNumUVLayers(other.NumUVLayers())
	for i, l := range s.uvLayers {
		l.Copy(other.uvLayers[i])
	}
	s.SetNumNormalLayers(other.NumNormalLayers())
	for i, l := range s.normalLayers {
		l.Copy(other.normalLayers[i])
	}
	if other.colorLayer != nil {
		s.EnablePrimaryColors()
		s.colorLayer.Copy(other.colorLayer)
	} else {
		s.DisablePrimaryColors()
	}
	if other.materialID != nil {
		s.EnableMaterialID()
		s.materialID.Copy(other.materialID)
	} else {
		s.DisableMaterialID()
	}
	s.SetNumPolygroupLayers(other.NumPolygroupLayers())
	for i, l := range s.polygroupLayers {
		l.Copy(other.polygroupLayers[i])
	}

	s.generic = make(map[string]Attribute, len(other.generic))
	for name, attr := range other.generic {
		s.generic[name] = attr.MakeCopy(s.parent)
	}
}

// IsCompact reports whether every UV, normal and color layer has dense element ids.
// Per-triangle and generic channels are always compact.
func (s *AttributeSet) IsCompact() bool {
	for _, l := range s.uvLayers {
		if !l.IsCompact() {
			return false
		}
	}
	for _, l := range s.normalLayers {
		if !l.IsCompact() {
			return false
		}
	}
	return s.colorLayer == nil || s.colorLayer.IsCompact()
}

// CompactCopy makes s a copy of other with triangles and vertices renumbered through
// maps and every overlay's elements renumbered densely.
func (s *AttributeSet) CompactCopy(maps *meshinfo.CompactMaps, other *AttributeSet) {
	s.SetNumUVLayers(other.NumUVLayers())
	for i, l := range s.uvLayers {
		l.CompactCopy(maps, other.uvLayers[i])
	}
	s.SetNumNormalLayers(other.NumNormalLayers())
	for i, l := range s.normalLayers {
		l.CompactCopy(maps, other.normalLayers[i])
	}
	if other.colorLayer != nil {
		s.EnablePrimaryColors()
		s.colorLayer.CompactCopy(maps, other.colorLayer)
	} else {
		s.DisablePrimaryColors()
	}
	if other.materialID != nil {
		s.EnableMaterialID()
		s.materialID.CompactCopy(maps, other.materialID)
	} else {
		s.DisableMaterialID()
	}
	s.SetNumPolygroupLayers(other.NumPolygroupLayers())
	for i, l := range s.polygroupLayers {
		l.CompactCopy(maps, other.polygroupLayers[i])
	}

	s.generic = make(map[string]Attribute, len(other.generic))
	for name, attr := range other.generic {
		s.generic[name] = attr.MakeCompactCopy(maps, s.parent)
	}
}

// CompactInPlace renumbers every layer through maps. The parent mesh must already
// have been compacted with the same maps.
func (s *AttributeSet) CompactInPlace(maps *meshinfo.CompactMaps) {
	for _, l := range s.uvLayers {
		l.CompactInPlace(maps)
	}
	for _, l := range s.normalLayers {
		l.CompactInPlace(maps)
	}
	if s.colorLayer != nil {
		s.colorLayer.CompactInPlace(maps)
	}
	if s.materialID != nil {
		s.materialID.CompactInPlace(maps)
	}
	for _, l := range s.polygroupLayers {
		l.CompactInPlace(maps)
	}
	for _, name := range s.AttachedAttributeNames() {
		s.generic[name].CompactInPlace(maps)
	}
}

// Reparent points s and all of its layers at parent without touching any data.
func (s *AttributeSet) Reparent(parent ParentMesh) {
	s.parent = parent
	for _, l := range s.uvLayers {
		l.Reparent(parent)
	}
	for _, l := range s.normalLayers {
		l.Reparent(parent)
	}
	if s.colorLayer != nil {
		s.colorLayer.Reparent(parent)
	}
	if s.materialID != nil {
		s.materialID.Reparent(parent)
	}
	for _, l := range s.polygroupLayers {
		l.Reparent(parent)
	}
	for _, attr := range s.generic {
		attr.Reparent(parent)
	}
}

// EnableMatchingAttributes gives s the same set of layers as toMatch.
//
// With clearExisting, layer counts and presence become exactly toMatch's, every
// layer is emptied and generic attributes are recreated empty. Otherwise counts
// become the larger of the two, or exactly toMatch's with discardExtra, and only
// the layers that had to be added are empty. discardExtra also drops generic
// attributes toMatch does not have. Generic attributes are never copied.
func (s *AttributeSet) EnableMatchingAttributes(toMatch *AttributeSet, clearExisting, discardExtra bool) {
	exact := clearExisting || discardExtra
	required := func(existing, other int) int {
		if exact {
			return other
		}
		return max(existing, other)
	}
	firstCleared := func(existing int) int {
		if clearExisting {
			return 0
		}
		return existing
	}

	existingUV := s.NumUVLayers()
	s.SetNumUVLayers(required(existingUV, toMatch.NumUVLayers()))
	for k := firstCleared(existingUV); k < len(s.uvLayers); k++ {
		s.uvLayers[k].ClearElements()
	}

	existingNormals := s.NumNormalLayers()
	s.SetNumNormalLayers(required(existingNormals, toMatch.NumNormalLayers()))
	for k := firstCleared(existingNormals); k < len(s.normalLayers); k++ {
		s.normalLayers[k].ClearElements()
	}

	wantColor := toMatch.HasPrimaryColors()
	if !exact {
		wantColor = wantColor || s.HasPrimaryColors()
	}
	if clearExisting || !wantColor {
		s.DisablePrimaryColors()
	}
	if wantColor {
		s.EnablePrimaryColors()
	}

	wantMaterial := toMatch.HasMaterialID()
	if !exact {
		wantMaterial = wantMaterial || s.HasMaterialID()
	}
	if clearExisting || !wantMaterial {
		s.DisableMaterialID()
	}
	if wantMaterial {
		s.EnableMaterialID()
	}

	existingGroups := s.NumPolygroupLayers()
	s.SetNumPolygroupLayers(required(existingGroups, toMatch.NumPolygroupLayers()))
	for k := firstCleared(existingGroups); k < len(s.polygroupLayers); k++ {
		l := s.polygroupLayers[k]
		l.Initialize(0)
		if l.Name() == "" && k < toMatch.NumPolygroupLayers() {
			l.SetName(toMatch.polygroupLayers[k].Name())
		}
	}

	if clearExisting {
		s.generic = make(map[string]Attribute, len(toMatch.generic))
		for name, attr := range toMatch.generic {
			s.generic[name] = attr.MakeNew(s.parent)
		}
		return
	}
	if discardExtra {
		for name := range s.generic {
			if _, ok := toMatch.generic[name]; !ok {
				delete(s.generic, name)
			}
		}
	}
	for name, attr := range toMatch.generic {
		if _, ok := s.generic[name]; !ok {
			s.AttachAttribute(name, attr.MakeNew(s.parent))
		}
	}
}

// SplitAllBowties splits bowtie elements in every normal and UV layer. With
// runParallel the layers are processed concurrently. It returns the number of
// elements created.
func (s *AttributeSet) SplitAllBowties(runParallel bool) int {
	numNormals, numUVs := len(s.normalLayers), len(s.uvLayers)
	created := make([]int, numNormals+numUVs)
	parallel.For(numNormals+numUVs, func(i int) {
		if i < numNormals {
			created[i] = s.normalLayers[i].SplitBowties()
		} else {
			created[i] = s.uvLayers[i-numNormals].SplitBowties()
		}
	}, parallel.SingleThread(!runParallel), parallel.Unbalanced())

	total := 0
	for _, n := range created {
		total += n
	}
	logger.Debug("split bowties",
		zap.Int("normalLayers", numNormals),
		zap.Int("uvLayers", numUVs),
		zap.Int("created", total),
		zap.Bool("parallel", runParallel))
	return total
}

// IsSeamEdge reports whether eid is a seam in any UV, normal or color layer.
func (s *AttributeSet) IsSeamEdge(eid int) bool {
	for _, l := range s.uvLayers {
		if l.IsSeamEdge(eid) {
			return true
		}
	}
	for _, l := range s.normalLayers {
		if l.IsSeamEdge(eid) {
			return true
		}
	}
	return s.colorLayer != nil && s.colorLayer.IsSeamEdge(eid)
}

// IsSeamEndEdge reports whether eid is a seam end edge in any UV, normal or color layer.
func (s *AttributeSet) IsSeamEndEdge(eid int) bool {
	for _, l := range s.uvLayers {
		if l.IsSeamEndEdge(eid) {
			return true
		}
	}
	for _, l := range s.normalLayers {
		if l.IsSeamEndEdge(eid) {
			return true
		}
	}
	return s.colorLayer != nil && s.colorLayer.IsSeamEndEdge(eid)
}

// SeamKinds reports separately whether eid is a seam in some UV layer and in some
// normal layer. Color is not considered.
func (s *AttributeSet) SeamKinds(eid int) (uvSeam, normalSeam bool) {
	for _, l := range s.uvLayers {
		if l.IsSeamEdge(eid) {
			uvSeam = true
			break
		}
	}
	for _, l := range s.normalLayers {
		if l.IsSeamEdge(eid) {
			normalSeam = true
			break
		}
	}
	return uvSeam, normalSeam
}

// IsSeamVertex reports whether vid is a seam vertex in any UV or normal layer.
func (s *AttributeSet) IsSeamVertex(vid int, boundaryIsSeam bool) bool {
	for _, l := range s.uvLayers {
		if l.IsSeamVertex(vid, boundaryIsSeam) {
			return true
		}
	}
	for _, l := range s.normalLayers {
		if l.IsSeamVertex(vid, boundaryIsSeam) {
			return true
		}
	}
	return false
}

// CheckValidity checks every overlay and the size of every per-triangle channel.
func (s *AttributeSet) CheckValidity() error {
	var errs error
	for i, l := range s.uvLayers {
		errs = multierr.Append(errs, layerError("uv", i, l.CheckValidity()))
	}
	for i, l := range s.normalLayers {
		errs = multierr.Append(errs, layerError("normal", i, l.CheckValidity()))
	}
	if s.colorLayer != nil {
		errs = multierr.Append(errs, layerError("color", 0, s.colorLayer.CheckValidity()))
	}
	maxTri := s.parent.MaxTriangleID()
	if s.materialID != nil && len(s.materialID.values) < maxTri {
		errs = multierr.Append(errs, fmt.Errorf("material id channel holds %d triangles, mesh has %d",
			len(s.materialID.values), maxTri))
	}
	for i, l := range s.polygroupLayers {
		if len(l.values) < maxTri {
			errs = multierr.Append(errs, fmt.Errorf("polygroup layer %d holds %d triangles, mesh has %d",
				i, len(l.values), maxTri))
		}
	}
	return errs
}

func layerError(kind string, i int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s layer %d: %w", kind, i, err)
}

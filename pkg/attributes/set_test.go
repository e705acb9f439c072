package attributes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/dynmesh/pkg/attributes"
	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

func TestLayerCounts(t *testing.T) {
	m := grid(t, 1, 1)
	attrs := m.Attributes()
	require.Equal(t, 1, attrs.NumUVLayers())
	require.Equal(t, 1, attrs.NumNormalLayers())
	assert.Same(t, attrs.UVLayer(0), attrs.PrimaryUV())
	assert.Nil(t, attrs.UVLayer(1))

	attrs.SetNumUVLayers(3)
	require.Equal(t, 3, attrs.NumUVLayers())
	for tid := range m.TriangleIndices() {
		assert.False(t, attrs.UVLayer(2).IsSetTriangle(tid))
	}
	assert.Equal(t, 4, attrs.PrimaryUV().ElementCount(), "existing layers are kept")
	require.NoError(t, m.CheckValidity())

	attrs.SetNumUVLayers(1)
	assert.Equal(t, 1, attrs.NumUVLayers())
	assert.Nil(t, attrs.UVLayer(2))
}

func TestTangentSpace(t *testing.T) {
	m := grid(t, 1, 1)
	attrs := m.Attributes()
	assert.False(t, attrs.HasTangentSpace())
	assert.Nil(t, attrs.PrimaryTangents())

	attrs.EnableTangents()
	assert.True(t, attrs.HasTangentSpace())
	assert.Equal(t, 3, attrs.NumNormalLayers())
	require.NotNil(t, attrs.PrimaryTangents())
	require.NotNil(t, attrs.PrimaryBiTangents())
	assert.Equal(t, 4, attrs.PrimaryNormals().ElementCount())

	attrs.DisableTangents()
	assert.False(t, attrs.HasTangentSpace())
	assert.Equal(t, 1, attrs.NumNormalLayers())
}

func TestPrimaryColors(t *testing.T) {
	m := grid(t, 1, 1)
	attrs := m.Attributes()
	require.False(t, attrs.HasPrimaryColors())

	attrs.EnablePrimaryColors()
	colors := attrs.PrimaryColors()
	require.NotNil(t, colors)
	attrs.EnablePrimaryColors()
	assert.Same(t, colors, attrs.PrimaryColors(), "enabling twice keeps the layer")

	for tid := range m.TriangleIndices() {
		assert.False(t, colors.IsSetTriangle(tid))
	}
	assert.False(t, attrs.IsSeamEdge(m.FindEdge(0, 3)), "an all-unset color layer adds no seams")

	attrs.DisablePrimaryColors()
	assert.Nil(t, attrs.PrimaryColors())
}

func TestColorsFollowSplit(t *testing.T) {
	m := grid(t, 1, 1)
	attrs := m.Attributes()
	attrs.EnablePrimaryColors()
	colors := attrs.PrimaryColors()

	elems := map[int]int{}
	for vid := range m.VertexIndices() {
		x := m.GetVertex(vid).X
		elems[vid] = colors.AppendElement(math.Vec4{x, 0, 1 - x, 1})
	}
	for tid := range m.TriangleIndices() {
		tri := m.GetTriangle(tid)
		colors.SetTriangle(tid, meshinfo.Index3{elems[tri[0]], elems[tri[1]], elems[tri[2]]})
	}
	require.NoError(t, m.CheckValidity())

	info, res := m.SplitEdge(m.FindEdge(0, 1), 0.5)
	require.Equal(t, dmesh.EditOK, res)
	require.NoError(t, m.CheckValidity())

	got := colors.GetVertexElements(info.NewVertex)
	require.Len(t, got, 1)
	c := colors.GetElement(got[0])
	assert.InDelta(t, 0.5, c[0], 1e-6)
	assert.InDelta(t, 0.5, c[2], 1e-6)
	assert.InDelta(t, 1, c[3], 1e-6)
}

func TestMaterialBoundaryEdge(t *testing.T) {
	m := box(t)
	attrs := m.Attributes()
	require.True(t, attrs.HasMaterialID())

	boundaries := 0
	for eid := range m.EdgeIndices() {
		if attrs.IsMaterialBoundaryEdge(eid) {
			boundaries++
		}
	}
	assert.Equal(t, 12, boundaries)
	assert.False(t, attrs.IsMaterialBoundaryEdge(m.FindEdge(1, 7)))
	assert.Panics(t, func() { attrs.IsMaterialBoundaryEdge(999) })

	attrs.DisableMaterialID()
	assert.False(t, attrs.IsMaterialBoundaryEdge(m.FindEdge(1, 3)))
}

func TestNewTriangleDefaults(t *testing.T) {
	m := grid(t, 1, 1)
	attrs := m.Attributes()
	attrs.SetNumPolygroupLayers(1)
	for tid := range m.TriangleIndices() {
		attrs.MaterialID().SetValue(tid, 7)
		attrs.PolygroupLayer(0).SetValue(tid, 3)
	}

	v := m.AppendVertex(math.Vec3{X: 2, Y: 0, Z: 0.5})
	tid, res := m.AppendTriangle(meshinfo.Index3{3, v, 1})
	require.Equal(t, dmesh.EditOK, res)

	assert.Equal(t, int32(0), attrs.MaterialID().GetValue(tid))
	assert.Equal(t, int32(0), attrs.PolygroupLayer(0).GetValue(tid))
	assert.False(t, attrs.PrimaryUV().IsSetTriangle(tid))
	assert.False(t, attrs.PrimaryNormals().IsSetTriangle(tid))
	assert.True(t, attrs.IsSeamEdge(m.FindEdge(1, 3)), "edge to an unset triangle is a seam")
	require.NoError(t, m.CheckValidity())
}

func TestPolygroupsFollowEdits(t *testing.T) {
	m := grid(t, 2, 2)
	attrs := m.Attributes()
	attrs.SetNumPolygroupLayers(1)
	groups := attrs.PolygroupLayer(0)
	for tid := range m.TriangleIndices() {
		groups.SetValue(tid, int32(tid/4))
	}

	_, res := m.SplitEdge(m.FindEdge(4, 7), 0.5)
	require.Equal(t, dmesh.EditOK, res)
	info, res := m.PokeTriangle(0, [3]float32{0.2, 0.2, 0.6})
	require.Equal(t, dmesh.EditOK, res)

	counts := map[int32]int{}
	for tid := range m.TriangleIndices() {
		counts[groups.GetValue(tid)]++
	}
	assert.Equal(t, map[int32]int{0: 6, 1: 6}, counts)
	assert.Equal(t, int32(0), groups.GetValue(info.NewTriangles.B))
}

func TestGenericAttributes(t *testing.T) {
	m := grid(t, 2, 2)
	attrs := m.Attributes()

	weights := attributes.NewLerpVertexAttribute[math.Vec3](m)
	for vid := range m.VertexIndices() {
		weights.SetValue(vid, m.GetVertex(vid))
	}
	tags := attributes.NewTriangleAttribute[string](m)
	tags.SetDefaultValue("new")
	for tid := range m.TriangleIndices() {
		tags.SetValue(tid, "grid")
	}
	attrs.AttachAttribute("weights", weights)
	attrs.AttachAttribute("tags", tags)

	assert.Equal(t, 2, attrs.NumAttachedAttributes())
	assert.Equal(t, []string{"tags", "weights"}, attrs.AttachedAttributeNames())
	got, ok := attributes.AttachedAs[*attributes.VertexAttribute[math.Vec3]](attrs, "weights")
	require.True(t, ok)
	assert.Same(t, weights, got)
	_, ok = attributes.AttachedAs[*attributes.TriangleAttribute[string]](attrs, "weights")
	assert.False(t, ok)

	info, res := m.SplitEdge(m.FindEdge(4, 7), 0.3)
	require.Equal(t, dmesh.EditOK, res)
	want := m.GetVertex(info.NewVertex)
	gotW := weights.GetValue(info.NewVertex)
	assert.InDelta(t, want.X, gotW.X, 1e-6)
	assert.InDelta(t, want.Z, gotW.Z, 1e-6)
	assert.Equal(t, "grid", tags.GetValue(info.NewTriangles.A))
	assert.Equal(t, "grid", tags.GetValue(info.NewTriangles.B))

	v := m.AppendVertex(math.Vec3{X: 3, Y: 0, Z: 0})
	tid, res := m.AppendTriangle(meshinfo.Index3{2, v, 5})
	require.Equal(t, dmesh.EditOK, res)
	assert.Equal(t, "new", tags.GetValue(tid))

	c := m.Clone()
	cw, ok := attributes.AttachedAs[*attributes.VertexAttribute[math.Vec3]](c.Attributes(), "weights")
	require.True(t, ok)
	assert.NotSame(t, weights, cw)
	assert.Same(t, c, cw.ParentMesh())
	assert.Equal(t, weights.GetValue(info.NewVertex), cw.GetValue(info.NewVertex))

	attrs.RemoveAttribute("tags")
	assert.False(t, attrs.HasAttachedAttribute("tags"))
	assert.Nil(t, attrs.GetAttachedAttribute("tags"))
}

func TestGenericAttributesCompact(t *testing.T) {
	m := grid(t, 2, 2)
	weights := attributes.NewLerpVertexAttribute[math.Vec3](m)
	for vid := range m.VertexIndices() {
		weights.SetValue(vid, m.GetVertex(vid))
	}
	m.Attributes().AttachAttribute("weights", weights)

	require.Equal(t, dmesh.EditOK, m.RemoveTriangle(0, true))
	require.Equal(t, dmesh.EditOK, m.RemoveTriangle(1, true))
	before := map[int]math.Vec3{}
	for vid := range m.VertexIndices() {
		before[vid] = weights.GetValue(vid)
	}

	maps := m.CompactInPlace()
	for old, w := range before {
		assert.Equal(t, w, weights.GetValue(maps.GetVertex(old)))
	}
	require.NoError(t, m.CheckValidity())
}

func TestEnableMatchingAttributes(t *testing.T) {
	source := func(t *testing.T) *attributes.AttributeSet {
		m := box(t)
		attrs := m.Attributes()
		attrs.SetNumUVLayers(2)
		attrs.EnableTangents()
		attrs.EnablePrimaryColors()
		attrs.AttachAttribute("w", attributes.NewLerpVertexAttribute[math.Vec3](m))
		return attrs
	}
	target := func(t *testing.T) *dmesh.Mesh {
		m := grid(t, 1, 1)
		m.Attributes().SetNumUVLayers(3)
		m.Attributes().AttachAttribute("x", attributes.NewTriangleAttribute[int](m))
		return m
	}

	tests := []struct {
		name          string
		clear         bool
		discard       bool
		wantUV        int
		wantPrimaryUV int
		wantGeneric   []string
	}{
		{"union", false, false, 3, 4, []string{"w", "x"}},
		{"discard extra", false, true, 2, 4, []string{"w"}},
		{"clear existing", true, false, 2, 0, []string{"w"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := source(t)
			m := target(t)
			attrs := m.Attributes()

			attrs.EnableMatchingAttributes(src, tt.clear, tt.discard)

			assert.Equal(t, tt.wantUV, attrs.NumUVLayers())
			assert.Equal(t, 3, attrs.NumNormalLayers())
			assert.True(t, attrs.HasPrimaryColors())
			assert.True(t, attrs.HasMaterialID())
			require.Equal(t, 1, attrs.NumPolygroupLayers())
			assert.Equal(t, "faces", attrs.PolygroupLayer(0).Name())
			assert.Equal(t, tt.wantPrimaryUV, attrs.PrimaryUV().ElementCount())
			assert.Equal(t, tt.wantGeneric, attrs.AttachedAttributeNames())
			for _, name := range attrs.AttachedAttributeNames() {
				assert.Same(t, m, attrs.GetAttachedAttribute(name).ParentMesh())
			}
			require.NoError(t, m.CheckValidity())
		})
	}
}

func TestEnableMatchingAttributesDropsColors(t *testing.T) {
	m := grid(t, 1, 1)
	m.Attributes().EnablePrimaryColors()
	other := grid(t, 1, 1)

	m.Attributes().EnableMatchingAttributes(other.Attributes(), false, false)
	assert.True(t, m.Attributes().HasPrimaryColors())

	m.Attributes().EnableMatchingAttributes(other.Attributes(), false, true)
	assert.False(t, m.Attributes().HasPrimaryColors())
}

func TestSplitAllBowties(t *testing.T) {
	for _, runParallel := range []bool{false, true} {
		m := bowtie(t)
		created := m.Attributes().SplitAllBowties(runParallel)
		assert.Equal(t, 2, created, "parallel=%v", runParallel)
		assert.Len(t, m.Attributes().PrimaryUV().GetVertexElements(0), 2)
		assert.Len(t, m.Attributes().PrimaryNormals().GetVertexElements(0), 2)
		require.NoError(t, m.CheckValidity())
	}
}

func TestAttributeSetCopyIsIndependent(t *testing.T) {
	m := box(t)
	c := m.Clone()

	c.Attributes().MaterialID().SetValue(0, 42)
	c.Attributes().PolygroupLayer(0).SetName("renamed")
	c.Attributes().PrimaryUV().UnsetTriangle(0)

	assert.Equal(t, int32(0), m.Attributes().MaterialID().GetValue(0))
	assert.Equal(t, "faces", m.Attributes().PolygroupLayer(0).Name())
	assert.True(t, m.Attributes().PrimaryUV().IsSetTriangle(0))
	require.NoError(t, m.CheckValidity())
	require.NoError(t, c.CheckValidity())
}

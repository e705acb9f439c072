package main

import (
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/dynmesh/pkg/attributes"
	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
)

type overlayStats struct {
	Name      string `yaml:"name"`
	Elements  int    `yaml:"elements"`
	SeamEdges int    `yaml:"seam_edges"`
	Compact   bool   `yaml:"compact"`
}

type groupStats struct {
	Name   string `yaml:"name"`
	Groups int    `yaml:"groups"`
}

type meshStats struct {
	Vertices      int         `yaml:"vertices"`
	Triangles     int         `yaml:"triangles"`
	Edges         int         `yaml:"edges"`
	BoundaryEdges int         `yaml:"boundary_edges"`
	Compact       bool        `yaml:"compact"`
	Bounds        math.Bounds `yaml:"bounds"`

	UVLayers     []overlayStats `yaml:"uv_layers,omitempty"`
	NormalLayers []overlayStats `yaml:"normal_layers,omitempty"`
	Colors       *overlayStats  `yaml:"colors,omitempty"`
	Polygroups   []groupStats   `yaml:"polygroups,omitempty"`
	Materials    int            `yaml:"materials,omitempty"`

	MaterialBoundaryEdges int      `yaml:"material_boundary_edges,omitempty"`
	SeamVertices          int      `yaml:"seam_vertices"`
	Attached              []string `yaml:"attached,omitempty"`
}

func collectStats(m *dmesh.Mesh) meshStats {
	s := meshStats{
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
		Edges:     m.EdgeCount(),
		Compact:   m.IsCompact(),
		Bounds:    m.Bounds(),
	}
	for eid := range m.EdgeIndices() {
		if m.IsBoundaryEdge(eid) {
			s.BoundaryEdges++
		}
	}
	if !m.HasAttributes() {
		return s
	}

	attrs := m.Attributes()
	for k := 0; k < attrs.NumUVLayers(); k++ {
		s.UVLayers = append(s.UVLayers, overlaySummary(m, fmt.Sprintf("uv%d", k), attrs.UVLayer(k)))
	}
	for k := 0; k < attrs.NumNormalLayers(); k++ {
		s.NormalLayers = append(s.NormalLayers, overlaySummary(m, normalLayerName(k), attrs.NormalLayer(k)))
	}
	if attrs.HasPrimaryColors() {
		c := overlaySummary(m, "colors", attrs.PrimaryColors())
		s.Colors = &c
	}
	for k := 0; k < attrs.NumPolygroupLayers(); k++ {
		layer := attrs.PolygroupLayer(k)
		s.Polygroups = append(s.Polygroups, groupStats{Name: layer.Name(), Groups: distinctValues(m, layer)})
	}
	if attrs.HasMaterialID() {
		s.Materials = distinctValues(m, attrs.MaterialID())
		for eid := range m.EdgeIndices() {
			if attrs.IsMaterialBoundaryEdge(eid) {
				s.MaterialBoundaryEdges++
			}
		}
	}
	for vid := range m.VertexIndices() {
		if attrs.IsSeamVertex(vid, false) {
			s.SeamVertices++
		}
	}
	s.Attached = attrs.AttachedAttributeNames()
	slices.Sort(s.Attached)
	return s
}

func normalLayerName(k int) string {
	switch k {
	case 0:
		return "normals"
	case 1:
		return "tangents"
	case 2:
		return "bitangents"
	}
	return fmt.Sprintf("normal%d", k)
}

func overlaySummary[V attributes.Value[V]](m *dmesh.Mesh, name string, o *attributes.Overlay[V]) overlayStats {
	st := overlayStats{Name: name, Elements: o.ElementCount(), Compact: o.IsCompact()}
	for eid := range m.EdgeIndices() {
		if o.IsSeamEdge(eid) {
			st.SeamEdges++
		}
	}
	return st
}

func distinctValues(m *dmesh.Mesh, attr *attributes.TriangleAttribute[int32]) int {
	seen := make(map[int32]struct{})
	for tid := range m.TriangleIndices() {
		seen[attr.GetValue(tid)] = struct{}{}
	}
	return len(seen)
}

// writeStats prints s as YAML or as an aligned text report.
func writeStats(w io.Writer, s meshStats, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding stats: %w", err)
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "Vertices:   %d\n", s.Vertices)
	fmt.Fprintf(w, "Triangles:  %d\n", s.Triangles)
	fmt.Fprintf(w, "Edges:      %d (%d boundary)\n", s.Edges, s.BoundaryEdges)
	fmt.Fprintf(w, "Compact:    %t\n", s.Compact)
	if !s.Bounds.IsEmpty() {
		size := s.Bounds.Size()
		fmt.Fprintf(w, "Bounds:     (%.3g, %.3g, %.3g) size %.3g x %.3g x %.3g\n",
			s.Bounds.Min.X, s.Bounds.Min.Y, s.Bounds.Min.Z, size.X, size.Y, size.Z)
	}

	layers := slices.Concat(s.UVLayers, s.NormalLayers)
	if s.Colors != nil {
		layers = append(layers, *s.Colors)
	}
	if len(layers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Overlays:")
		for _, l := range layers {
			fmt.Fprintf(w, "  %-12s %6d elements %6d seam edges  compact=%t\n", l.Name, l.Elements, l.SeamEdges, l.Compact)
		}
		fmt.Fprintf(w, "  seam vertices: %d\n", s.SeamVertices)
	}
	for _, g := range s.Polygroups {
		fmt.Fprintf(w, "Polygroups %q: %d groups\n", g.Name, g.Groups)
	}
	if s.Materials > 0 {
		fmt.Fprintf(w, "Materials:  %d (%d boundary edges)\n", s.Materials, s.MaterialBoundaryEdges)
	}
	if len(s.Attached) > 0 {
		fmt.Fprintf(w, "Attached:   %v\n", s.Attached)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// removeEvery removes every n-th live triangle id and the vertices it isolates.
func removeEvery(m *dmesh.Mesh, n int) int {
	removed := 0
	for tid := 0; tid < m.MaxTriangleID(); tid += n {
		if m.IsTriangle(tid) && m.RemoveTriangle(tid, true) == dmesh.EditOK {
			removed++
		}
	}
	return removed
}

func mappedCount(ids []int) int {
	n := 0
	for _, id := range ids {
		if id != meshinfo.InvalidID {
			n++
		}
	}
	return n
}

func (a *app) compactCmd() *cobra.Command {
	var (
		every  int
		toCopy bool
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Remove triangles, compact the mesh and report the id remapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if every < 1 {
				return fmt.Errorf("--remove-every %d: must be at least 1", every)
			}
			m, err := a.buildMesh()
			if err != nil {
				return err
			}

			removed := removeEvery(m, every)
			maxV, maxT := m.MaxVertexID(), m.MaxTriangleID()

			var maps *meshinfo.CompactMaps
			if toCopy {
				compacted := dmesh.New()
				maps = compacted.CompactCopy(m)
				m = compacted
			} else {
				maps = m.CompactInPlace()
			}
			if err := m.CheckValidity(); err != nil {
				return fmt.Errorf("mesh invalid after compaction: %w", err)
			}

			out := cmd.OutOrStdout()
			if !asYAML {
				fmt.Fprintf(out, "Removed:   %d triangles\n", removed)
				fmt.Fprintf(out, "Vertices:  %d ids -> %d\n", maxV, mappedCount(maps.VertexMap))
				fmt.Fprintf(out, "Triangles: %d ids -> %d\n", maxT, mappedCount(maps.TriangleMap))
				fmt.Fprintln(out)
			}
			return writeStats(out, collectStats(m), asYAML)
		},
	}
	cmd.Flags().IntVar(&every, "remove-every", 3, "Remove every n-th triangle id before compacting")
	cmd.Flags().BoolVar(&toCopy, "copy", false, "Compact into a new mesh instead of in place")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the final stats as YAML")
	return cmd
}

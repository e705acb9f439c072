package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/dynmesh/pkg/meshgen"
)

func (a *app) infoCmd() *cobra.Command {
	var (
		asYAML       bool
		smooth       bool
		colors       bool
		splitBowties bool
	)
	cmd := &cobra.Command{
		Use:     "info",
		Aliases: []string{"stats"},
		Short:   "Generate a mesh and report its layers and seams",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.buildMesh()
			if err != nil {
				return err
			}
			attrs := m.Attributes()
			if smooth {
				meshgen.InitializeSmoothNormals(m, attrs.PrimaryNormals())
			}
			if colors {
				attrs.EnablePrimaryColors()
			}
			if splitBowties {
				attrs.SplitAllBowties(true)
			}
			return writeStats(cmd.OutOrStdout(), collectStats(m), asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the report as YAML")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "Replace the normal overlay with one shared normal per vertex")
	cmd.Flags().BoolVar(&colors, "colors", false, "Enable the primary color overlay")
	cmd.Flags().BoolVar(&splitBowties, "split-bowties", false, "Split bowtie elements in every overlay")
	return cmd
}

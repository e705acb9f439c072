package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/internal/config"
	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/meshgen"
)

// buildMesh generates the starting mesh described by the generator config.
func (a *app) buildMesh() (*dmesh.Mesh, error) {
	gen := a.cfg.Generator

	var (
		m   *dmesh.Mesh
		err error
	)
	switch gen.Kind {
	case config.KindBox:
		m, err = meshgen.Box(gen.Size)
	case config.KindGrid:
		m, err = meshgen.Grid(meshgen.GridOptions{
			Width:     gen.Width,
			Height:    gen.Height,
			CellSize:  gen.Size,
			RowGroups: gen.RowGroups,
		})
	default:
		return nil, fmt.Errorf("generator kind %q: %w", gen.Kind, config.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", gen.Kind, err)
	}

	a.log.Debug("mesh generated",
		zap.String("kind", gen.Kind),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))
	return m, nil
}

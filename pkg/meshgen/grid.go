// Package meshgen builds simple dynamic meshes with attributes and computes overlay normals.
package meshgen

import (
	"fmt"

	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// GridOptions configures Grid.
type GridOptions struct {
	Width    int // cells along X
	Height   int // cells along Z
	CellSize float32
	// RowGroups puts each row of cells in its own polygroup.
	RowGroups bool
}

// Grid builds a flat grid in the XZ plane facing +Y. UVs and normals are shared
// per vertex, so the grid has no seams. Every triangle gets material 0.
func Grid(opts GridOptions) (*dmesh.Mesh, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("grid size %dx%d: %w", opts.Width, opts.Height, ErrInvalidSize)
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 1
	}

	m := dmesh.New()
	m.EnableVertexNormals(math.Vec3{Y: 1})
	m.EnableAttributes()
	attrs := m.Attributes()
	attrs.EnableMaterialID()
	if opts.RowGroups {
		attrs.SetNumPolygroupLayers(1)
		attrs.PolygroupLayer(0).SetName("rows")
	}
	uv, normals := attrs.PrimaryUV(), attrs.PrimaryNormals()

	cols := opts.Width + 1
	uvElems := make([]int, 0, cols*(opts.Height+1))
	nElems := make([]int, 0, cols*(opts.Height+1))
	for z := 0; z <= opts.Height; z++ {
		for x := 0; x <= opts.Width; x++ {
			m.AppendVertex(math.Vec3{X: float32(x) * opts.CellSize, Y: 0, Z: float32(z) * opts.CellSize})
			uvElems = append(uvElems, uv.AppendElement(math.Vec2{
				X: float32(x) / float32(opts.Width),
				Y: float32(z) / float32(opts.Height),
			}))
			nElems = append(nElems, normals.AppendElement(math.Vec3{Y: 1}))
		}
	}

	vid := func(x, z int) int { return z*cols + x }
	for z := 0; z < opts.Height; z++ {
		for x := 0; x < opts.Width; x++ {
			v00, v10, v01, v11 := vid(x, z), vid(x+1, z), vid(x, z+1), vid(x+1, z+1)
			// diagonal from (x,z) to (x+1,z+1)
			for _, tri := range [2]meshinfo.Index3{{v00, v01, v11}, {v00, v11, v10}} {
				tid, res := m.AppendTriangle(tri)
				if res != dmesh.EditOK {
					return nil, fmt.Errorf("grid triangle %v: %s", tri, res)
				}
				uv.SetTriangle(tid, meshinfo.Index3{uvElems[tri[0]], uvElems[tri[1]], uvElems[tri[2]]})
				normals.SetTriangle(tid, meshinfo.Index3{nElems[tri[0]], nElems[tri[1]], nElems[tri[2]]})
				if opts.RowGroups {
					attrs.PolygroupLayer(0).SetValue(tid, int32(z))
				}
			}
		}
	}
	return m, nil
}

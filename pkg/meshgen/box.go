package meshgen

import (
	"errors"
	"fmt"

	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
	"github.com/Faultbox/dynmesh/pkg/meshinfo"
)

// ErrInvalidSize is returned for non-positive generator dimensions.
var ErrInvalidSize = errors.New("invalid size")

// box corners are numbered x + 2y + 4z
var boxFaces = [6]struct {
	corners [4]int
	normal  math.Vec3
}{
	{[4]int{1, 3, 7, 5}, math.Vec3{X: 1}},
	{[4]int{0, 4, 6, 2}, math.Vec3{X: -1}},
	{[4]int{2, 6, 7, 3}, math.Vec3{Y: 1}},
	{[4]int{0, 1, 5, 4}, math.Vec3{Y: -1}},
	{[4]int{4, 5, 7, 6}, math.Vec3{Z: 1}},
	{[4]int{0, 2, 3, 1}, math.Vec3{Z: -1}},
}

var quadUVs = [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

// Box builds a closed axis-aligned cube centered at the origin. The 8 corners are
// shared, while every face has its own UV island and flat normals, so each cube
// edge is a seam in both overlays. Material id and polygroup 0 hold the face index.
func Box(size float32) (*dmesh.Mesh, error) {
	if size <= 0 {
		return nil, fmt.Errorf("box size %g: %w", size, ErrInvalidSize)
	}
	h := size / 2

	m := dmesh.New()
	m.EnableAttributes()
	attrs := m.Attributes()
	attrs.EnableMaterialID()
	attrs.SetNumPolygroupLayers(1)
	attrs.PolygroupLayer(0).SetName("faces")
	uv, normals := attrs.PrimaryUV(), attrs.PrimaryNormals()

	for i := 0; i < 8; i++ {
		pos := math.Vec3{X: -h, Y: -h, Z: -h}
		if i&1 != 0 {
			pos.X = h
		}
		if i&2 != 0 {
			pos.Y = h
		}
		if i&4 != 0 {
			pos.Z = h
		}
		m.AppendVertex(pos)
	}

	for f, face := range boxFaces {
		var uvElems, nElems [4]int
		for k := range face.corners {
			uvElems[k] = uv.AppendElement(quadUVs[k])
			nElems[k] = normals.AppendElement(face.normal)
		}
		c := face.corners
		for _, q := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			tid, res := m.AppendTriangle(meshinfo.Index3{c[q[0]], c[q[1]], c[q[2]]})
			if res != dmesh.EditOK {
				return nil, fmt.Errorf("box face %d: %s", f, res)
			}
			uv.SetTriangle(tid, meshinfo.Index3{uvElems[q[0]], uvElems[q[1]], uvElems[q[2]]})
			normals.SetTriangle(tid, meshinfo.Index3{nElems[q[0]], nElems[q[1]], nElems[q[2]]})
			attrs.MaterialID().SetValue(tid, int32(f))
			attrs.PolygroupLayer(0).SetValue(tid, int32(f))
		}
	}
	return m, nil
}

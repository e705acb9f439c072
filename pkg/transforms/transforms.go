// Package transforms applies rigid, affine and arbitrary point mappings to a mesh's
// vertex positions, vertex normals and every normal overlay of its attribute set.
//
// Vertices and overlay elements are processed in parallel; every id is written by
// exactly one worker. Winding is only reversed after all writes have finished.
package transforms

import (
	"go.uber.org/zap"

	"github.com/Faultbox/dynmesh/internal/logger"
	"github.com/Faultbox/dynmesh/internal/parallel"
	"github.com/Faultbox/dynmesh/pkg/dmesh"
	"github.com/Faultbox/dynmesh/pkg/math"
)

// PointFunc maps a position or a normal.
type PointFunc func(math.Vec3) math.Vec3

// Translate moves every vertex by offset. Normals are unchanged.
func Translate(m *dmesh.Mesh, offset math.Vec3) {
	transformPositions(m, func(p math.Vec3) math.Vec3 { return p.Add(offset) })
}

// Scale scales every vertex about origin. Normals get the inverse scale and are
// renormalized. A mirroring scale reverses the winding when reverseOrientationIfNeeded is set.
func Scale(m *dmesh.Mesh, scale, origin math.Vec3, reverseOrientationIfNeeded bool) {
	t := math.Transform{Rotation: math.QuatIdentity(), Scale: scale}
	ApplyTransformFuncs(m,
		func(p math.Vec3) math.Vec3 { return t.TransformPosition(p.Sub(origin)).Add(origin) },
		t.TransformNormal)
	if reverseOrientationIfNeeded {
		ReverseOrientationIfNeeded(m, t)
	}
}

// WorldToFrameCoords expresses positions and normals in the coordinates of frame.
func WorldToFrameCoords(m *dmesh.Mesh, frame math.Frame) {
	ApplyTransformFuncs(m, frame.ToFramePoint, frame.ToFrameVector)
}

// FrameCoordsToWorld undoes WorldToFrameCoords.
func FrameCoordsToWorld(m *dmesh.Mesh, frame math.Frame) {
	ApplyTransformFuncs(m, frame.FromFramePoint, frame.FromFrameVector)
}

// ApplyTransform maps positions with t.TransformPosition and normals with
// t.TransformNormal. If t mirrors and reverseOrientationIfNeeded is
// set, every triangle's winding is reversed afterwards so faces keep pointing out.
func ApplyTransform(m *dmesh.Mesh, t math.Transformer, reverseOrientationIfNeeded bool) {
	ApplyTransformFuncs(m, t.TransformPosition, t.TransformNormal)
	if reverseOrientationIfNeeded {
		ReverseOrientationIfNeeded(m, t)
	}
}

// ApplyTransformInverse undoes ApplyTransform with the same arguments.
func ApplyTransformInverse(m *dmesh.Mesh, t math.Transformer, reverseOrientationIfNeeded bool) {
	ApplyTransformFuncs(m, t.InverseTransformPosition, t.InverseTransformNormal)
	if reverseOrientationIfNeeded {
		ReverseOrientationIfNeeded(m, t)
	}
}

// ApplyTransformSequence applies every transform of seq in order.
func ApplyTransformSequence(m *dmesh.Mesh, seq *math.TransformSequence, reverseOrientationIfNeeded bool) {
	ApplyTransform(m, seq, reverseOrientationIfNeeded)
}

// ApplyTransformFuncs maps every live vertex position with posFn and every vertex
// normal and normal overlay element with normalFn, renormalizing the result. A nil
// normalFn leaves normals alone. The winding is never changed.
func ApplyTransformFuncs(m *dmesh.Mesh, posFn, normalFn PointFunc) {
	transformPositions(m, posFn)
	if normalFn == nil {
		return
	}
	unit := func(n math.Vec3) math.Vec3 { return normalFn(n).Normalize() }

	if m.HasVertexNormals() {
		parallel.For(m.MaxVertexID(), func(vid int) {
			if m.IsVertex(vid) {
				m.SetVertexNormal(vid, unit(m.GetVertexNormal(vid)))
			}
		})
	}
	if !m.HasAttributes() {
		return
	}
	attrs := m.Attributes()
	for k := 0; k < attrs.NumNormalLayers(); k++ {
		layer := attrs.NormalLayer(k)
		parallel.For(layer.MaxElementID(), func(eid int) {
			if layer.IsElement(eid) {
				layer.SetElement(eid, unit(layer.GetElement(eid)))
			}
		})
	}
}

func transformPositions(m *dmesh.Mesh, posFn PointFunc) {
	parallel.For(m.MaxVertexID(), func(vid int) {
		if m.IsVertex(vid) {
			m.SetVertex(vid, posFn(m.GetVertex(vid)))
		}
	})
}

// ReverseOrientationIfNeeded reverses every triangle if t has a negative determinant
// and reports whether it did.
func ReverseOrientationIfNeeded(m *dmesh.Mesh, t math.Transformer) bool {
	det := t.Determinant()
	if det >= 0 {
		return false
	}
	m.ReverseOrientation()
	logger.Named("transforms").Debug("mirroring transform, winding reversed",
		zap.Float32("determinant", det),
		zap.Int("triangles", m.TriangleCount()))
	return true
}

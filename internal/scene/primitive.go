package scene

import (
	"slices"

	"github.com/Faultbox/scangif/internal/geometry"
	"github.com/Faultbox/scangif/internal/style"
	"github.com/Faultbox/scangif/pkg/math"
)

// Layer is a primitive's paint-order key. Lower layers are painted first, so
// higher layers win where primitives overlap on screen. Overlay text is always
// painted after every layer.
type Layer int

// Paint order, back to front.
const (
	LayerGrid      Layer = 0
	LayerShadow    Layer = 1
	LayerPathBack  Layer = 5
	LayerMesh      Layer = 10
	LayerPoints    Layer = 15
	LayerPathFront Layer = 20
	LayerViewCone  Layer = 99
	LayerCamera    Layer = 100
)

// Primitive is anything the renderer can paint.
type Primitive interface {
	Order() Layer
}

// MeshPrim paints a polyhedron. Alpha scales both fill and edge; a transparent
// Fill draws a wireframe. Widths are in points.
type MeshPrim struct {
	Layer     Layer
	Faces     geometry.Mesh
	Fill      style.Color
	Edge      style.Color
	Alpha     float32
	EdgeWidth float32
}

// Order implements Primitive.
func (m MeshPrim) Order() Layer { return m.Layer }

// SegmentPrim paints a straight 3D line segment.
type SegmentPrim struct {
	Layer  Layer
	From   math.Vec3
	To     math.Vec3
	Color  style.Color
	Width  float32
	Dashed bool
}

// Order implements Primitive.
func (s SegmentPrim) Order() Layer { return s.Layer }

// PointsPrim paints round dots of Size points diameter.
type PointsPrim struct {
	Layer  Layer
	Points []math.Vec3
	Color  style.Color
	Size   float32
}

// Order implements Primitive.
func (p PointsPrim) Order() Layer { return p.Layer }

// MarkerPrim paints a screen-aligned square of Size points side, used for
// the camera body.
type MarkerPrim struct {
	Layer     Layer
	At        math.Vec3
	Fill      style.Color
	Edge      style.Color
	Size      float32
	EdgeWidth float32
}

// Order implements Primitive.
func (m MarkerPrim) Order() Layer { return m.Layer }

// DiscPrim paints a flat horizontal disc, used for the drop shadow.
type DiscPrim struct {
	Layer  Layer
	Center math.Vec3
	Radius float32
	Color  style.Color
}

// Order implements Primitive.
func (d DiscPrim) Order() Layer { return d.Layer }

// SortByLayer returns the primitives in paint order. The sort is stable, so
// primitives on the same layer keep their insertion order.
func SortByLayer(prims []Primitive) []Primitive {
	out := slices.Clone(prims)
	slices.SortStableFunc(out, func(a, b Primitive) int {
		return int(a.Order()) - int(b.Order())
	})
	return out
}

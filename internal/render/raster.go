package render

import (
	"image"
	gomath "math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/scangif/internal/style"
	"github.com/Faultbox/scangif/pkg/math"
)

// rasterizer paints filled convex shapes onto an RGBA surface. Each shape is
// rasterized in a scratch buffer the size of its clipped bounding box, so the
// cost of a shape follows its area rather than the canvas size.
type rasterizer struct {
	dst *image.RGBA
	ras *vector.Rasterizer
}

func newRasterizer(dst *image.RGBA) *rasterizer {
	return &rasterizer{dst: dst, ras: &vector.Rasterizer{}}
}

// fillPolygon fills a convex polygon given in pixel coordinates.
func (z *rasterizer) fillPolygon(pts []math.Vec2, c style.Color) {
	if len(pts) < 3 || c.IsTransparent() {
		return
	}
	bounds := z.dst.Bounds()
	pts = clipPolygon(pts, bounds)
	if len(pts) < 3 {
		return
	}

	box := boundingBox(pts).Intersect(bounds)
	if box.Empty() {
		return
	}
	ox, oy := float32(box.Min.X), float32(box.Min.Y)

	z.ras.Reset(box.Dx(), box.Dy())
	z.ras.MoveTo(pts[0].X-ox, pts[0].Y-oy)
	for _, p := range pts[1:] {
		z.ras.LineTo(p.X-ox, p.Y-oy)
	}
	z.ras.ClosePath()
	z.ras.Draw(z.dst, box, image.NewUniform(c.NRGBA()), image.Point{})
}

// strokeSegment draws a straight line of the given pixel width with square
// caps extending half the width past each end.
func (z *rasterizer) strokeSegment(a, b math.Vec2, width float32, c style.Color) {
	d := b.Sub(a)
	if d.Length() < 1e-4 {
		z.fillSquare(a, width, c)
		return
	}
	ext := d.Normalize().Scale(width / 2)
	z.fillPolygon(math.Ribbon(a.Sub(ext), b.Add(ext), width/2), c)
}

// strokeDashed draws a dashed line; dash and gap are in pixels.
func (z *rasterizer) strokeDashed(a, b math.Vec2, width, dash, gap float32, c style.Color) {
	d := b.Sub(a)
	length := d.Length()
	if length < 1e-4 || dash <= 0 {
		z.strokeSegment(a, b, width, c)
		return
	}
	dir := d.Scale(1 / length)
	for pos := float32(0); pos < length; pos += dash + gap {
		end := pos + dash
		if end > length {
			end = length
		}
		z.strokeButt(a.Add(dir.Scale(pos)), a.Add(dir.Scale(end)), width, c)
	}
}

// strokeButt is strokeSegment without the cap extension.
func (z *rasterizer) strokeButt(a, b math.Vec2, width float32, c style.Color) {
	if b.Sub(a).Length() < 1e-4 {
		return
	}
	z.fillPolygon(math.Ribbon(a, b, width/2), c)
}

// strokePolygon outlines a closed polygon.
func (z *rasterizer) strokePolygon(pts []math.Vec2, width float32, c style.Color) {
	if c.IsTransparent() || width <= 0 {
		return
	}
	for i := range pts {
		z.strokeButt(pts[i], pts[(i+1)%len(pts)], width, c)
	}
}

// fillSquare fills an axis-aligned square of side size centered on p.
func (z *rasterizer) fillSquare(p math.Vec2, size float32, c style.Color) {
	h := size / 2
	z.fillPolygon(squareAround(p, h), c)
}

func squareAround(p math.Vec2, h float32) []math.Vec2 {
	return []math.Vec2{
		{X: p.X - h, Y: p.Y - h},
		{X: p.X + h, Y: p.Y - h},
		{X: p.X + h, Y: p.Y + h},
		{X: p.X - h, Y: p.Y + h},
	}
}

// circleSegments is the polygon resolution used for round dots.
const circleSegments = 16

// fillCircle fills a circle of the given pixel radius.
func (z *rasterizer) fillCircle(center math.Vec2, radius float32, c style.Color) {
	pts := make([]math.Vec2, circleSegments)
	for i := range pts {
		pts[i] = center.Polar(2*gomath.Pi*float64(i)/circleSegments, radius)
	}
	z.fillPolygon(pts, c)
}

func boundingBox(pts []math.Vec2) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(
		int(gomath.Floor(float64(minX))),
		int(gomath.Floor(float64(minY))),
		int(gomath.Ceil(float64(maxX))),
		int(gomath.Ceil(float64(maxY))),
	)
}

// clipPolygon clips a polygon to r (Sutherland–Hodgman). The rasterizer
// drops coverage that falls outside its buffer, which would leave shapes
// crossing the canvas edge with the wrong fill.
func clipPolygon(pts []math.Vec2, r image.Rectangle) []math.Vec2 {
	minX, minY := float32(r.Min.X), float32(r.Min.Y)
	maxX, maxY := float32(r.Max.X), float32(r.Max.Y)

	inside := []func(math.Vec2) bool{
		func(p math.Vec2) bool { return p.X >= minX },
		func(p math.Vec2) bool { return p.X <= maxX },
		func(p math.Vec2) bool { return p.Y >= minY },
		func(p math.Vec2) bool { return p.Y <= maxY },
	}
	cross := []func(a, b math.Vec2) math.Vec2{
		func(a, b math.Vec2) math.Vec2 { return atX(a, b, minX) },
		func(a, b math.Vec2) math.Vec2 { return atX(a, b, maxX) },
		func(a, b math.Vec2) math.Vec2 { return atY(a, b, minY) },
		func(a, b math.Vec2) math.Vec2 { return atY(a, b, maxY) },
	}

	out := pts
	for edge := range inside {
		in := out
		out = nil
		if len(in) == 0 {
			break
		}
		prev := in[len(in)-1]
		for _, cur := range in {
			curIn, prevIn := inside[edge](cur), inside[edge](prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn && !prevIn:
				out = append(out, cross[edge](prev, cur), cur)
			case !curIn && prevIn:
				out = append(out, cross[edge](prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b math.Vec2, x float32) math.Vec2 {
	t := (x - a.X) / (b.X - a.X)
	return math.Vec2{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func atY(a, b math.Vec2, y float32) math.Vec2 {
	t := (y - a.Y) / (b.Y - a.Y)
	return math.Vec2{X: a.X + t*(b.X-a.X), Y: y}
}

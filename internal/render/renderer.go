// Package render rasterizes composed scene frames into RGBA images.
package render

import (
	"errors"
	"fmt"
	"image"
	gomath "math"
	"slices"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"

	"github.com/Faultbox/scangif/internal/camera"
	"github.com/Faultbox/scangif/internal/geometry"
	"github.com/Faultbox/scangif/internal/scene"
	"github.com/Faultbox/scangif/internal/style"
	"github.com/Faultbox/scangif/pkg/math"
)

// Options configures a Renderer.
type Options struct {
	Width, Height int
	Supersample   int // draw at this multiple of the output size, then downscale
	Transparent   bool
	Background    style.Color // used when Transparent is false
	ViewExtent    float32     // world half-width shown across the canvas
	DPI           float64     // converts point sizes to pixels
	RegularFont   string      // optional font file; empty uses Go Regular
	BoldFont      string      // optional font file; empty uses Go Bold
	FallbackFont  string      // font for runes the others lack; empty searches system CJK fonts
}

// DefaultOptions returns a 250x250 transparent canvas at 100 DPI.
func DefaultOptions() Options {
	return Options{
		Width:       250,
		Height:      250,
		Supersample: 1,
		Transparent: true,
		Background:  style.White,
		ViewExtent:  2.1,
		DPI:         100,
	}
}

// ErrInvalidSize is returned for a non-positive canvas.
var ErrInvalidSize = errors.New("render: invalid canvas size")

// Renderer owns one drawing surface that is cleared and redrawn for every
// frame. It is not safe for concurrent use.
type Renderer struct {
	opts    Options
	scale   int
	surface *image.RGBA
	raster  *rasterizer
	fonts   *fontSet
	palette style.Palette
}

// New returns a renderer for opts. Text colors come from pal.
func New(opts Options, pal style.Palette) (*Renderer, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	scale := max(opts.Supersample, 1)
	if opts.DPI <= 0 {
		opts.DPI = 100
	}
	if opts.ViewExtent <= 0 {
		opts.ViewExtent = DefaultOptions().ViewExtent
	}

	fonts, err := loadFonts(opts.RegularFont, opts.BoldFont, opts.FallbackFont, opts.DPI*float64(scale))
	if err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}

	surface := image.NewRGBA(image.Rect(0, 0, opts.Width*scale, opts.Height*scale))
	return &Renderer{
		opts:    opts,
		scale:   scale,
		surface: surface,
		raster:  newRasterizer(surface),
		fonts:   fonts,
		palette: pal,
	}, nil
}

// Size returns the output image size.
func (r *Renderer) Size() image.Point {
	return image.Pt(r.opts.Width, r.opts.Height)
}

// Uncovered returns the runes of s that no loaded font has a glyph for. They
// would be drawn as empty boxes.
func (r *Renderer) Uncovered(s string) []rune {
	return r.fonts.uncovered(s)
}

// Clear resets the whole surface to the background, including any text.
func (r *Renderer) Clear() {
	bg := style.Transparent
	if !r.opts.Transparent {
		bg = r.opts.Background.WithAlpha(1)
	}
	draw.Draw(r.surface, r.surface.Bounds(), image.NewUniform(bg.NRGBA()), image.Point{}, draw.Src)
}

// Render draws f and returns a new image that does not share memory with the
// renderer.
func (r *Renderer) Render(f *scene.Frame) *image.RGBA {
	r.Clear()

	b := r.surface.Bounds()
	proj := camera.NewProjector(f.View, r.opts.ViewExtent, b.Dx(), b.Dy())
	for _, p := range f.Sorted() {
		r.drawPrimitive(proj, p)
	}
	r.drawOverlay(f)

	if r.scale > 1 {
		return transform.Resize(r.surface, r.opts.Width, r.opts.Height, transform.Linear)
	}
	out := image.NewRGBA(b)
	copy(out.Pix, r.surface.Pix)
	return out
}

// px converts a size in points to surface pixels.
func (r *Renderer) px(pt float32) float32 {
	return pt * float32(r.opts.DPI) / 72 * float32(r.scale)
}

func (r *Renderer) drawPrimitive(proj *camera.Projector, p scene.Primitive) {
	switch x := p.(type) {
	case scene.MeshPrim:
		r.drawMesh(proj, x)
	case scene.SegmentPrim:
		a, _ := proj.Project(x.From)
		b, _ := proj.Project(x.To)
		w := r.px(x.Width)
		if x.Dashed {
			r.raster.strokeDashed(a, b, w, 3.7*w, 1.6*w, x.Color)
		} else {
			r.raster.strokeSegment(a, b, w, x.Color)
		}
	case scene.PointsPrim:
		radius := max(r.px(x.Size)/2, 0.75)
		for _, v := range x.Points {
			c, _ := proj.Project(v)
			r.raster.fillCircle(c, radius, x.Color)
		}
	case scene.MarkerPrim:
		c, _ := proj.Project(x.At)
		side := r.px(x.Size)
		r.raster.fillSquare(c, side, x.Fill)
		r.raster.strokePolygon(squareAround(c, side/2), r.px(x.EdgeWidth), x.Edge)
	case scene.DiscPrim:
		pts := make([]math.Vec2, 2*circleSegments)
		for i := range pts {
			a := 2 * gomath.Pi * float64(i) / float64(len(pts))
			pts[i], _ = proj.Project(math.Vec3{
				X: x.Center.X + x.Radius*float32(gomath.Cos(a)),
				Y: x.Center.Y + x.Radius*float32(gomath.Sin(a)),
				Z: x.Center.Z,
			})
		}
		r.raster.fillPolygon(pts, x.Color)
	}
}

// drawMesh paints a mesh's faces far to near, filling then outlining each.
func (r *Renderer) drawMesh(proj *camera.Projector, m scene.MeshPrim) {
	fill := m.Fill.Fade(m.Alpha)
	edge := m.Edge.Fade(m.Alpha)
	width := r.px(m.EdgeWidth)
	for _, i := range faceOrder(proj, m.Faces) {
		pts := proj.ProjectAll(m.Faces[i])
		r.raster.fillPolygon(pts, fill)
		r.raster.strokePolygon(pts, width, edge)
	}
}

// faceOrder returns face indices sorted far to near by the depth of each
// face's center. Faces at equal depth keep their mesh order.
func faceOrder(proj *camera.Projector, mesh geometry.Mesh) []int {
	depth := make([]float32, len(mesh))
	order := make([]int, len(mesh))
	for i, f := range mesh {
		depth[i] = proj.Depth(f.Center())
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case depth[a] < depth[b]:
			return -1
		case depth[a] > depth[b]:
			return 1
		}
		return 0
	})
	return order
}

// drawOverlay draws the phase labels and the target header.
func (r *Renderer) drawOverlay(f *scene.Frame) {
	b := r.surface.Bounds()
	w, h := b.Dx(), b.Dy()
	cx := w / 2
	at := func(frac float64) int {
		return int(gomath.Round((1 - frac) * float64(h)))
	}
	pal := r.palette

	drawText(r.surface, f.Title, cx, at(0.15), true, textStyle{
		face:    r.fonts.title,
		color:   pal.TitleText,
		outline: pal.TextOutline,
		radius:  r.outlineRadius(titleOutline),
	})
	drawText(r.surface, f.Detail, cx, at(0.08), true, textStyle{
		face:    r.fonts.detail,
		color:   pal.DetailText,
		outline: pal.TextOutline,
		radius:  r.outlineRadius(detailOutline),
	})

	header := textStyle{
		face:    r.fonts.header,
		color:   pal.HeaderText,
		outline: pal.TextOutline,
		radius:  r.outlineRadius(headerOutline),
	}
	end := drawText(r.surface, f.Header, cx, at(0.92), false, header)
	if f.Cursor {
		header.color = pal.CursorText
		drawTextAt(r.surface, "|", end, at(0.92), header)
	}
}

func (r *Renderer) outlineRadius(widthPt float32) int {
	return max(int(gomath.Round(float64(r.px(widthPt)/2))), 1)
}

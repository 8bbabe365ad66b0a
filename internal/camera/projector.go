package camera

import (
	"github.com/Faultbox/scangif/pkg/math"
)

// Projector maps world points to canvas pixels with an orthographic camera.
type Projector struct {
	view   math.Mat4 // world to view space
	screen math.Mat4 // world to pixels
}

// NewProjector builds a projector for the given pose. extent is the world
// half-width shown across the shorter canvas side.
func NewProjector(pose ViewPose, extent float32, width, height int) *Projector {
	dir := pose.Direction()
	dist := 4 * extent
	eye := dir.Scale(dist)
	up := math.Vec3{Z: 1}
	// Looking straight down or up: any horizontal up vector will do.
	if d := dir.Cross(up); d.Length() < 1e-6 {
		up = math.Vec3{Y: 1}
	}

	w, h := float32(width), float32(height)
	ex, ey := extent, extent
	if w > h {
		ex = extent * w / h
	} else if h > w {
		ey = extent * h / w
	}

	view := math.LookAt(eye, math.Vec3{}, up)
	proj := math.Ortho(-ex, ex, -ey, ey, 0, 2*dist)
	return &Projector{
		view:   view,
		screen: math.Viewport(w, h).Mul(proj).Mul(view),
	}
}

// Project returns the pixel position of p and its depth. Larger depth is
// nearer the viewer.
func (p *Projector) Project(v math.Vec3) (math.Vec2, float32) {
	s := p.screen.Apply(v)
	return math.Vec2{X: s.X, Y: s.Y}, p.Depth(v)
}

// ProjectAll projects a list of points, discarding depth.
func (p *Projector) ProjectAll(vs []math.Vec3) []math.Vec2 {
	out := make([]math.Vec2, len(vs))
	for i, v := range vs {
		out[i], _ = p.Project(v)
	}
	return out
}

// Depth returns the view-space depth of v. Larger is nearer.
func (p *Projector) Depth(v math.Vec3) float32 {
	return p.view.Apply(v).Z
}

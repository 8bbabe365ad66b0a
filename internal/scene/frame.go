package scene

import "github.com/Faultbox/scangif/internal/camera"

// Frame is the composed description of one time sample. It carries everything
// the renderer needs and nothing that outlives the frame.
type Frame struct {
	T      float64
	Phase  Phase
	LocalT float64
	View   camera.ViewPose

	// Camera is the scanning camera, or nil when it is not shown.
	Camera *camera.Pose

	Primitives []Primitive

	Title  string // phase description
	Detail string // phase detail
	Header string // persistent target label
	Cursor bool   // show the typing cursor after Header
}

// Sorted returns the frame's primitives in paint order.
func (f *Frame) Sorted() []Primitive {
	return SortByLayer(f.Primitives)
}

// Meshes returns the mesh primitives in insertion order.
func (f *Frame) Meshes() []MeshPrim {
	var out []MeshPrim
	for _, p := range f.Primitives {
		if m, ok := p.(MeshPrim); ok {
			out = append(out, m)
		}
	}
	return out
}

// Segments returns the segment primitives on layer l in insertion order.
func (f *Frame) Segments(l Layer) []SegmentPrim {
	var out []SegmentPrim
	for _, p := range f.Primitives {
		if s, ok := p.(SegmentPrim); ok && s.Layer == l {
			out = append(out, s)
		}
	}
	return out
}

// Points returns the total number of point-cloud dots in the frame.
func (f *Frame) Points() int {
	n := 0
	for _, p := range f.Primitives {
		if pp, ok := p.(PointsPrim); ok {
			n += len(pp.Points)
		}
	}
	return n
}

package scene

import (
	"testing"

	"github.com/Faultbox/scangif/internal/camera"
	"github.com/Faultbox/scangif/internal/geometry"
	"github.com/Faultbox/scangif/pkg/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanToPointCloudBoundary(t *testing.T) {
	c := NewComposer(DefaultSettings())
	boundary := c.Schedule().Interval(PhaseScan).End

	before := c.Compose(boundary - 1e-9)
	require.Equal(t, PhaseScan, before.Phase)
	meshes := before.Meshes()
	require.Len(t, meshes, 1)
	assert.Equal(t, float32(1), meshes[0].Alpha)
	assert.Equal(t, float32(1), meshes[0].Fill.A, "scanned object should be opaque")

	after := c.Compose(boundary + 1e-9)
	require.Equal(t, PhasePointCloud, after.Phase)
	meshes = after.Meshes()
	require.Len(t, meshes, 1)
	assert.InDelta(t, 0, meshes[0].Alpha, 1e-6, "wireframe should start invisible")
	assert.True(t, meshes[0].Fill.IsTransparent(), "point-cloud mesh should be edges only")
}

func TestScanPathSegmentCount(t *testing.T) {
	s := DefaultSettings()
	s.ShowGrid = false
	c := NewComposer(s)
	scanEnd := c.Schedule().Interval(PhaseScan).End

	for _, lt := range []float64{0, 0.1, 0.5, 0.9} {
		f := c.Compose(lt * scanEnd)
		got := len(f.Segments(LayerPathFront)) + len(f.Segments(LayerPathBack))
		want := int(f.LocalT*pathSamplesPerRun) + 1
		assert.Equal(t, want, got, "local t %v", lt)
	}
}

func TestScanCameraMarker(t *testing.T) {
	c := NewComposer(DefaultSettings())
	f := c.Compose(0.3)

	require.NotNil(t, f.Camera)
	assert.Equal(t, math.Vec3{}, f.Camera.Target)
	assert.Equal(t, camera.ScanOrbit().Position(f.LocalT), f.Camera.Position)

	cone := f.Segments(LayerViewCone)
	require.Len(t, cone, 1)
	assert.True(t, cone[0].Dashed)
	assert.Equal(t, f.Camera.Position, cone[0].From)

	var markers int
	for _, p := range f.Primitives {
		if m, ok := p.(MarkerPrim); ok {
			markers++
			assert.Equal(t, LayerCamera, m.Layer)
		}
	}
	assert.Equal(t, 1, markers)
}

func TestOcclusionClassification(t *testing.T) {
	// The orbit starts at azimuth 45°. Viewed from 45° the first segment sits
	// on the viewer's side (positive dot product); viewed from -135° it is
	// behind the object.
	tests := []struct {
		name    string
		azimuth float64
		layer   Layer
	}{
		{"front", 45, LayerPathFront},
		{"back", -135, LayerPathBack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.ShowGrid = false
			s.ScanView = camera.ViewPose{Elevation: 15, Azimuth: tt.azimuth}
			f := NewComposer(s).Compose(0)

			require.Equal(t, 0.0, f.LocalT)
			front := f.Segments(LayerPathFront)
			back := f.Segments(LayerPathBack)
			require.Equal(t, 1, len(front)+len(back))

			if tt.layer == LayerPathFront {
				require.Len(t, front, 1)
				assert.Equal(t, float32(1.8), front[0].Width)
				assert.Equal(t, float32(0.8), front[0].Color.A)
			} else {
				require.Len(t, back, 1)
				assert.Equal(t, float32(1.2), back[0].Width)
				assert.Equal(t, float32(0.4), back[0].Color.A)
			}
		})
	}
}

func TestPathStyleDepthOrder(t *testing.T) {
	c := NewComposer(DefaultSettings())
	front := c.pathStyle(true)
	back := c.pathStyle(false)

	assert.Greater(t, front.layer, LayerMesh)
	assert.Less(t, back.layer, LayerMesh)
	assert.Greater(t, front.width, back.width)
	assert.Greater(t, front.color.A, back.color.A)
}

func TestComposeIsIdempotent(t *testing.T) {
	s := DefaultSettings()
	s.Seed = 42
	a := NewComposer(s)
	b := NewComposer(s)

	for _, tm := range []float64{0, 0.2, 0.59, 0.65, 0.75, 0.85, 0.99} {
		assert.Equal(t, a.Compose(tm), a.Compose(tm), "same composer, t=%v", tm)
		assert.Equal(t, a.Compose(tm), b.Compose(tm), "same settings, t=%v", tm)
	}
}

func TestComposeOutOfOrder(t *testing.T) {
	c := NewComposer(DefaultSettings())
	forward := []*Frame{c.Compose(0.62), c.Compose(0.7), c.Compose(0.78)}
	backward := []*Frame{c.Compose(0.78), c.Compose(0.7), c.Compose(0.62)}

	assert.Equal(t, forward[0], backward[2])
	assert.Equal(t, forward[1], backward[1])
	assert.Equal(t, forward[2], backward[0])
}

func TestSeedChangesPointCloud(t *testing.T) {
	s := DefaultSettings()
	s.Seed = 1
	a := NewComposer(s).Compose(0.75)
	s.Seed = 2
	b := NewComposer(s).Compose(0.75)

	require.Equal(t, a.Points(), b.Points())
	assert.NotEqual(t, a.Primitives, b.Primitives)
}

func TestPointCloudGrows(t *testing.T) {
	c := NewComposer(DefaultSettings())
	iv := c.Schedule().Interval(PhasePointCloud)

	prev := -1
	for _, lt := range []float64{0, 0.25, 0.5, 0.75, 0.99} {
		f := c.Compose(iv.Start + lt*iv.Width())
		want := int(150 * f.LocalT)
		assert.Equal(t, want, f.Points(), "local t %v", lt)
		assert.GreaterOrEqual(t, f.Points(), prev)
		prev = f.Points()
	}
}

// The visible subset is redrawn from scratch every frame, so points revealed
// in one frame may disappear in the next. This flicker is a known
// characteristic of the solve phase.
func TestPointCloudSubsetResamplesEachFrame(t *testing.T) {
	c := NewComposer(DefaultSettings())
	iv := c.Schedule().Interval(PhasePointCloud)

	pointsAt := func(lt float64) map[math.Vec3]bool {
		out := make(map[math.Vec3]bool)
		for _, p := range c.Compose(iv.Start + lt*iv.Width()).Primitives {
			if pp, ok := p.(PointsPrim); ok {
				for _, v := range pp.Points {
					out[v] = true
				}
			}
		}
		return out
	}

	early := pointsAt(0.4)
	late := pointsAt(0.6)
	require.NotEmpty(t, early)

	kept := 0
	for p := range early {
		if late[p] {
			kept++
		}
	}
	assert.Less(t, kept, len(early), "later frame should not simply extend the earlier one")
}

func TestPointCloudViewDrifts(t *testing.T) {
	c := NewComposer(DefaultSettings())
	iv := c.Schedule().Interval(PhasePointCloud)

	start := c.Compose(iv.Start)
	mid := c.Compose(iv.Start + iv.Width()/2)
	assert.InDelta(t, -45, start.View.Azimuth, 1e-9)
	assert.InDelta(t, -35, mid.View.Azimuth, 1e-6)
	assert.Nil(t, mid.Camera)
}

func TestFinalPhase(t *testing.T) {
	s := DefaultSettings()
	s.Palette = s.Palette.WithPrimary(s.Palette.ViewCone)
	c := NewComposer(s)
	iv := c.Schedule().Interval(PhaseFinal)

	f := c.Compose(iv.Start + iv.Width()/2)
	require.Equal(t, PhaseFinal, f.Phase)
	meshes := f.Meshes()
	require.Len(t, meshes, 1)
	assert.Equal(t, float32(1), meshes[0].Alpha)
	assert.Equal(t, s.Palette.ViewCone, meshes[0].Fill)
	assert.InDelta(t, -25+180, f.View.Azimuth, 1e-6)
}

func TestFinalPhaseWithoutRotation(t *testing.T) {
	s := DefaultSettings()
	s.Rotate = false
	c := NewComposer(s)
	iv := c.Schedule().Interval(PhaseFinal)

	for _, lt := range []float64{0, 0.5, 0.99} {
		f := c.Compose(iv.Start + lt*iv.Width())
		assert.Equal(t, -25.0, f.View.Azimuth)
	}
}

func TestComposeShapes(t *testing.T) {
	for shape, faces := range map[geometry.Shape]int{
		geometry.ShapeCube:    6,
		geometry.ShapePyramid: 5,
		geometry.ShapePrism:   8,
	} {
		s := DefaultSettings()
		s.Shape = shape
		f := NewComposer(s).Compose(0.9)
		require.Len(t, f.Meshes(), 1)
		assert.Len(t, f.Meshes()[0].Faces, faces, "shape %s", shape)
	}
}

func TestGridAndShadow(t *testing.T) {
	s := DefaultSettings()
	s.ShowShadow = true
	f := NewComposer(s).Compose(0.9)
	assert.Len(t, f.Segments(LayerGrid), 6)

	var discs int
	for _, p := range f.Primitives {
		if _, ok := p.(DiscPrim); ok {
			discs++
		}
	}
	assert.Equal(t, 1, discs)

	s.ShowGrid = false
	s.ShowShadow = false
	f = NewComposer(s).Compose(0.9)
	assert.Empty(t, f.Segments(LayerGrid))
}

func TestSortedPaintOrder(t *testing.T) {
	s := DefaultSettings()
	s.ShowShadow = true
	f := NewComposer(s).Compose(0.4)

	sorted := f.Sorted()
	require.Len(t, sorted, len(f.Primitives))
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Order(), sorted[i].Order())
	}
	// Grid is first, camera marker is last.
	assert.Equal(t, LayerGrid, sorted[0].Order())
	assert.Equal(t, LayerCamera, sorted[len(sorted)-1].Order())
}

func TestSortByLayerIsStable(t *testing.T) {
	a := SegmentPrim{Layer: LayerPathBack, Width: 1}
	b := SegmentPrim{Layer: LayerPathBack, Width: 2}
	m := MeshPrim{Layer: LayerMesh}
	c := SegmentPrim{Layer: LayerPathBack, Width: 3}

	got := SortByLayer([]Primitive{a, m, b, c})
	assert.Equal(t, []Primitive{a, b, c, m}, got)
}

func TestLabels(t *testing.T) {
	c := NewComposer(DefaultSettings())
	l := DefaultLabels()

	scan := c.Compose(0.1)
	assert.Equal(t, l.ScanTitle, scan.Title)
	assert.Equal(t, l.ScanDetail, scan.Detail)
	assert.Equal(t, "Target: Smart speaker", scan.Header)

	cloud := c.Compose(0.7)
	assert.Equal(t, l.CloudTitle, cloud.Title)

	final := c.Compose(0.9)
	assert.Equal(t, l.FinalTitle, final.Title)
	assert.Equal(t, l.FinalDetail, final.Detail)
	assert.Equal(t, scan.Header, final.Header)
}

func TestEmptyTargetHidesHeader(t *testing.T) {
	s := DefaultSettings()
	s.Labels.Target = ""
	assert.Empty(t, NewComposer(s).Compose(0.1).Header)
}

func TestTypewriter(t *testing.T) {
	s := DefaultSettings()
	s.Typewriter = true
	s.FrameCount = 60
	s.Labels.Target = "立方体"
	c := NewComposer(s)
	scanEnd := c.Schedule().Interval(PhaseScan).End

	assert.Equal(t, "Target: ", c.Compose(0).Header)
	assert.Equal(t, "Target: 立", c.Compose(scanEnd*0.3).Header)
	assert.Equal(t, "Target: 立方体", c.Compose(scanEnd*0.99).Header)
	assert.Equal(t, "Target: 立方体", c.Compose(0.9).Header)

	// Frames 0-2 show the cursor, 3-5 hide it.
	assert.True(t, c.Compose(0).Cursor)
	assert.False(t, c.Compose(3.0/60).Cursor)
	assert.False(t, c.Compose(0.9).Cursor)
}

func identifySettings() Settings {
	s := DefaultSettings()
	s.Identify = true
	s.ShowGrid = false
	return s
}

func TestIdentifyLineup(t *testing.T) {
	s := identifySettings()
	c := NewComposer(s)
	iv := c.Schedule().Interval(PhaseIdentify)
	require.Equal(t, PhaseIdentify, c.Schedule().First())

	f := c.Compose(iv.Start + 0.2*iv.Width())
	require.Equal(t, PhaseIdentify, f.Phase)
	assert.Equal(t, identifyView, f.View)
	assert.Nil(t, f.Camera)
	assert.Equal(t, s.Labels.IdentifyTitle, f.Title)

	meshes := f.Meshes()
	require.Len(t, meshes, 3)
	for _, m := range meshes {
		assert.Equal(t, s.Palette.IdleFill, m.Fill)
		assert.Equal(t, s.Palette.IdleEdge, m.Edge)
		assert.Equal(t, float32(1), m.Alpha)
	}
}

func TestIdentifySegmentsTarget(t *testing.T) {
	s := identifySettings()
	c := NewComposer(s)
	iv := c.Schedule().Interval(PhaseIdentify)
	at := func(lt float64) *Frame { return c.Compose(iv.Start + lt*iv.Width()) }

	f := at(identifySplit + 0.1)
	meshes := f.Meshes()
	require.Len(t, meshes, 3)
	var targets int
	for _, m := range meshes {
		if m.Fill == s.Palette.FinalMesh {
			targets++
			assert.Equal(t, float32(1), m.Alpha)
			assert.Equal(t, geometry.ForShape(s.Shape), m.Faces)
			continue
		}
		assert.Less(t, m.Alpha, float32(1), "decoys fade once the target is picked")
		assert.Greater(t, m.Alpha, float32(decoyCutoff))
	}
	assert.Equal(t, 1, targets)

	// Past the cutoff only the target remains.
	late := at(0.99).Meshes()
	require.Len(t, late, 1)
	assert.Equal(t, s.Palette.FinalMesh, late[0].Fill)
}

func TestIdentifyPaintsFarToNear(t *testing.T) {
	c := NewComposer(identifySettings())
	f := c.Compose(0)
	dir := identifyView.Direction()

	meshes := f.Meshes()
	require.Len(t, meshes, 3)
	for i := 1; i < len(meshes); i++ {
		prev := math.Centroid(meshes[i-1].Faces.Vertices()).Dot(dir)
		cur := math.Centroid(meshes[i].Faces.Vertices()).Dot(dir)
		assert.LessOrEqual(t, prev, cur, "mesh %d drawn before a farther one", i)
	}
}

func TestIdentifyTypesHeader(t *testing.T) {
	s := identifySettings()
	s.Typewriter = true
	s.Labels.Target = "立方体"
	c := NewComposer(s)
	iv := c.Schedule().Interval(PhaseIdentify)

	assert.Equal(t, "Target: ", c.Compose(0).Header)
	assert.Equal(t, "Target: 立方体", c.Compose(iv.End-1e-9).Header)
	// The scan phase is no longer first, so its header is complete.
	assert.Equal(t, "Target: 立方体", c.Compose(c.Schedule().Interval(PhaseScan).Start+1e-9).Header)
}

func TestCameraMarkerSize(t *testing.T) {
	f := NewComposer(DefaultSettings()).Compose(0.3)
	for _, p := range f.Primitives {
		if m, ok := p.(MarkerPrim); ok {
			assert.InDelta(t, 60, m.Size*m.Size, 0.1, "marker area in pt²")
		}
	}
}

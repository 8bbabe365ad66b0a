package scene

import (
	gomath "math"
	"math/rand/v2"
	"slices"

	"github.com/Faultbox/scangif/internal/camera"
	"github.com/Faultbox/scangif/internal/geometry"
	"github.com/Faultbox/scangif/internal/style"
	"github.com/Faultbox/scangif/pkg/math"
)

// Settings is everything the composer reads. It is fixed for a whole run.
type Settings struct {
	Shape      geometry.Shape
	Identify   bool // open by picking the target out of a lineup
	Scan       bool // include the orbit-scan phase
	PointCloud bool // include the point-cloud phase
	Rotate     bool // spin the finished mesh
	Weights    Weights

	PointCount int
	FrameCount int // used only to time the typing cursor

	ShowGrid   bool
	ShowShadow bool
	Typewriter bool

	// ScanView is the fixed view while the camera orbits. Path occlusion is
	// judged against this view.
	ScanView camera.ViewPose

	Labels  Labels
	Palette style.Palette
	Seed    uint64
}

// DefaultSettings returns the stock three-phase cube animation.
func DefaultSettings() Settings {
	return Settings{
		Shape:      geometry.ShapeCube,
		Scan:       true,
		PointCloud: true,
		Rotate:     true,
		Weights:    DefaultWeights(),
		PointCount: 150,
		ShowGrid:   true,
		ScanView:   camera.ViewPose{Elevation: 15, Azimuth: -45},
		Labels:     DefaultLabels(),
		Palette:    style.DefaultPalette(),
		Seed:       1,
	}
}

const (
	pathSamplesPerRun = 80   // path samples across a whole scan phase
	cloudRadius       = 0.5  // half-size of the point-cloud shell
	cloudDrift        = 20.0 // degrees of azimuth drift while solving
	finalStartOffset  = cloudDrift
	cursorPeriod      = 6 // frames per cursor blink cycle

	cameraMarkerSize = 7.75 // side in points of a 60 pt² square marker

	identifySplit  = 0.6  // local time at which the target is singled out
	decoyCutoff    = 0.05 // decoys fainter than this are not drawn
	lineupEdgeSize = 0.8
)

// identifyView is the fixed view over the lineup.
var identifyView = camera.ViewPose{Elevation: 25, Azimuth: -60}

// pathStyle is how one camera path segment is drawn.
type pathStyle struct {
	layer Layer
	color style.Color
	width float32
}

// Composer maps normalized time to frames. It keeps no state between calls:
// Compose is a pure function of t and the settings, including its random
// draws, which are seeded from (Seed, t).
type Composer struct {
	settings Settings
	schedule Schedule
	orbit    camera.Orbit
}

// NewComposer returns a composer for s.
func NewComposer(s Settings) *Composer {
	return &Composer{
		settings: s,
		schedule: NewSchedule(s.Weights, Stages{Identify: s.Identify, Scan: s.Scan, PointCloud: s.PointCloud}),
		orbit:    camera.ScanOrbit(),
	}
}

// Schedule returns the phase schedule in use.
func (c *Composer) Schedule() Schedule {
	return c.schedule
}

// Settings returns the composer's settings.
func (c *Composer) Settings() Settings {
	return c.settings
}

// Compose builds the frame for global time t in [0, 1).
func (c *Composer) Compose(t float64) *Frame {
	phase, lt := c.schedule.At(t)
	f := &Frame{T: t, Phase: phase, LocalT: lt}

	if c.settings.ShowGrid {
		c.addGrid(f)
	}
	if c.settings.ShowShadow {
		f.Primitives = append(f.Primitives, DiscPrim{
			Layer:  LayerShadow,
			Center: math.Vec3{Z: -0.6},
			Radius: 0.8,
			Color:  c.settings.Palette.Shadow.WithAlpha(0.15),
		})
	}

	switch phase {
	case PhaseIdentify:
		c.composeIdentify(f, lt)
	case PhaseScan:
		c.composeScan(f, lt)
	case PhasePointCloud:
		c.composePointCloud(f, lt, c.rng(t))
	default:
		c.composeFinal(f, lt)
	}

	f.Title, f.Detail = c.settings.Labels.forPhase(phase)
	c.composeHeader(f, phase, lt, t)
	return f
}

// rng returns the random source for the frame at t.
func (c *Composer) rng(t float64) *rand.Rand {
	return rand.New(rand.NewPCG(c.settings.Seed, gomath.Float64bits(t)))
}

func (c *Composer) mesh() geometry.Mesh {
	return geometry.ForShape(c.settings.Shape)
}

func (c *Composer) addGrid(f *Frame) {
	const (
		floor = -1.2
		span  = 1.2
	)
	col := c.settings.Palette.Grid.WithAlpha(0.5)
	for _, i := range []float32{-1, 0, 1} {
		f.Primitives = append(f.Primitives,
			SegmentPrim{
				Layer: LayerGrid,
				From:  math.Vec3{X: i, Y: -span, Z: floor},
				To:    math.Vec3{X: i, Y: span, Z: floor},
				Color: col,
				Width: 0.8,
			},
			SegmentPrim{
				Layer: LayerGrid,
				From:  math.Vec3{X: -span, Y: i, Z: floor},
				To:    math.Vec3{X: span, Y: i, Z: floor},
				Color: col,
				Width: 0.8,
			},
		)
	}
}

func (c *Composer) composeScan(f *Frame, lt float64) {
	pal := c.settings.Palette
	view := c.settings.ScanView
	f.View = view

	f.Primitives = append(f.Primitives, MeshPrim{
		Layer:     LayerMesh,
		Faces:     c.mesh(),
		Fill:      pal.ScanFill,
		Edge:      pal.ScanEdge,
		Alpha:     1,
		EdgeWidth: 0.5,
	})

	// The travelled path, one primitive per segment so each can be styled by
	// which side of the object it is on.
	samples := c.orbit.Samples(lt, int(lt*pathSamplesPerRun)+2)
	for k := 0; k+1 < len(samples); k++ {
		st := c.pathStyle(view.IsFront(samples[k].Midpoint(samples[k+1]).XY()))
		f.Primitives = append(f.Primitives, SegmentPrim{
			Layer: st.layer,
			From:  samples[k],
			To:    samples[k+1],
			Color: st.color,
			Width: st.width,
		})
	}

	pose := camera.NewPose(c.orbit.Position(lt))
	f.Camera = &pose
	f.Primitives = append(f.Primitives,
		MarkerPrim{
			Layer:     LayerCamera,
			At:        pose.Position,
			Fill:      pal.CameraBody,
			Edge:      pal.CameraEdge,
			Size:      cameraMarkerSize,
			EdgeWidth: 1,
		},
		SegmentPrim{
			Layer:  LayerViewCone,
			From:   pose.Position,
			To:     pose.Target,
			Color:  pal.ViewCone.WithAlpha(0.6),
			Width:  1.5,
			Dashed: true,
		},
	)
}

// composeIdentify shows the target among decoys, first all alike, then with
// the target in the primary color while the decoys fade out.
func (c *Composer) composeIdentify(f *Frame, lt float64) {
	pal := c.settings.Palette
	f.View = identifyView

	target, decoys := geometry.Lineup(c.settings.Shape)
	idle := func(m geometry.Mesh, alpha float32) MeshPrim {
		return MeshPrim{
			Layer:     LayerMesh,
			Faces:     m,
			Fill:      pal.IdleFill,
			Edge:      pal.IdleEdge,
			Alpha:     alpha,
			EdgeWidth: lineupEdgeSize,
		}
	}

	var meshes []MeshPrim
	if lt < identifySplit {
		meshes = append(meshes, idle(target, 1))
		for _, d := range decoys {
			meshes = append(meshes, idle(d, 1))
		}
	} else {
		meshes = append(meshes, MeshPrim{
			Layer:     LayerMesh,
			Faces:     target,
			Fill:      pal.FinalMesh,
			Edge:      pal.FinalEdge,
			Alpha:     1,
			EdgeWidth: lineupEdgeSize,
		})
		fade := 1 - (lt-identifySplit)/(1-identifySplit)
		if fade > decoyCutoff {
			for _, d := range decoys {
				meshes = append(meshes, idle(d, float32(fade)))
			}
		}
	}

	// Separate objects do not share a depth buffer: paint them far to near.
	dir := identifyView.Direction()
	slices.SortStableFunc(meshes, func(a, b MeshPrim) int {
		da := math.Centroid(a.Faces.Vertices()).Dot(dir)
		db := math.Centroid(b.Faces.Vertices()).Dot(dir)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	for _, m := range meshes {
		f.Primitives = append(f.Primitives, m)
	}
}

// pathStyle returns the front or back styling for a camera path segment.
func (c *Composer) pathStyle(front bool) pathStyle {
	pal := c.settings.Palette
	if front {
		return pathStyle{layer: LayerPathFront, color: pal.PathFront.WithAlpha(0.8), width: 1.8}
	}
	return pathStyle{layer: LayerPathBack, color: pal.PathBack.WithAlpha(0.4), width: 1.2}
}

func (c *Composer) composePointCloud(f *Frame, lt float64, rng *rand.Rand) {
	pal := c.settings.Palette
	base := c.settings.ScanView
	f.View = camera.ViewPose{Elevation: base.Elevation, Azimuth: base.Azimuth + lt*cloudDrift}

	// A fresh subset every frame: which points are visible flickers from
	// frame to frame while the count grows.
	cloud := geometry.PointCloud(rng, c.settings.PointCount, cloudRadius)
	visible := geometry.Subset(rng, cloud, int(float64(len(cloud))*lt))
	if len(visible) > 0 {
		f.Primitives = append(f.Primitives, PointsPrim{
			Layer:  LayerPoints,
			Points: visible,
			Color:  pal.PointCloud.WithAlpha(0.8),
			Size:   2,
		})
	}

	f.Primitives = append(f.Primitives, MeshPrim{
		Layer:     LayerMesh,
		Faces:     c.mesh(),
		Fill:      style.Transparent,
		Edge:      pal.FinalMesh,
		Alpha:     float32(0.3 * lt),
		EdgeWidth: 0.5,
	})
}

func (c *Composer) composeFinal(f *Frame, lt float64) {
	pal := c.settings.Palette
	base := c.settings.ScanView
	azim := base.Azimuth + finalStartOffset
	if c.settings.Rotate {
		azim += lt * 360
	}
	f.View = camera.ViewPose{Elevation: base.Elevation, Azimuth: azim}

	f.Primitives = append(f.Primitives, MeshPrim{
		Layer:     LayerMesh,
		Faces:     c.mesh(),
		Fill:      pal.FinalMesh,
		Edge:      pal.FinalEdge,
		Alpha:     1,
		EdgeWidth: 1,
	})
}

func (c *Composer) composeHeader(f *Frame, phase Phase, lt, t float64) {
	labels := c.settings.Labels
	if labels.Target == "" {
		return
	}
	target := labels.Target
	if c.settings.Typewriter && phase == c.schedule.First() && phase != PhaseFinal {
		runes := []rune(target)
		n := int(lt * float64(len(runes)+1))
		if n > len(runes) {
			n = len(runes)
		}
		target = string(runes[:n])
		if c.settings.FrameCount > 0 {
			idx := int(gomath.Round(t * float64(c.settings.FrameCount)))
			f.Cursor = idx%cursorPeriod < cursorPeriod/2
		}
	}
	f.Header = labels.HeaderPrefix + target
}

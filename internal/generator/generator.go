// Package generator drives a whole run: it composes every frame, renders it
// and packs the sequence into a GIF.
package generator

import (
	"fmt"
	"image"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/scangif/internal/config"
	"github.com/Faultbox/scangif/internal/encoder"
	"github.com/Faultbox/scangif/internal/render"
	"github.com/Faultbox/scangif/internal/scene"
	"github.com/Faultbox/scangif/internal/style"
)

// ProgressFunc is told after each frame how many of total are done.
type ProgressFunc func(done, total int)

// FrameSink receives each rendered frame, e.g. to dump it to disk.
type FrameSink interface {
	CaptureFrame(img image.Image, index int) (string, error)
}

// Generator renders the animation described by a config.
type Generator struct {
	cfg      *config.Config
	composer *scene.Composer
	renderer *render.Renderer
	frames   int
	log      *zap.Logger
	sink     FrameSink
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithFrameSink also hands every rendered frame to s.
func WithFrameSink(s FrameSink) Option {
	return func(g *Generator) { g.sink = s }
}

// New validates cfg and prepares the composer and renderer.
func New(cfg *config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	settings, err := SceneSettings(cfg)
	if err != nil {
		return nil, err
	}
	r, err := render.New(RenderOptions(cfg), settings.Palette)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	g := &Generator{
		cfg:      cfg,
		composer: scene.NewComposer(settings),
		renderer: r,
		frames:   cfg.FrameCount(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SceneSettings maps cfg onto the composer's settings.
func SceneSettings(cfg *config.Config) (scene.Settings, error) {
	primary, err := style.ParseHex(cfg.Style.Primary)
	if err != nil {
		return scene.Settings{}, fmt.Errorf("primary colour: %w", err)
	}

	s := scene.DefaultSettings()
	s.Shape = cfg.Animation.Shape
	s.Identify = cfg.Animation.Identify
	s.Scan = cfg.Animation.Scan
	s.PointCloud = cfg.Animation.PointCloud
	s.Rotate = cfg.Animation.Rotate
	s.Weights = cfg.Animation.PhaseWeights
	s.PointCount = cfg.Animation.PointCount
	s.FrameCount = cfg.FrameCount()
	s.ShowGrid = cfg.Style.ShowGrid
	s.ShowShadow = cfg.Style.ShowShadow
	s.Typewriter = cfg.Animation.Typewriter
	s.Labels = cfg.Labels
	s.Palette = style.DefaultPalette().WithPrimary(primary)
	s.Seed = cfg.Animation.Seed
	return s, nil
}

// background returns the configured background color, white if unparsable.
func background(cfg *config.Config) style.Color {
	bg, err := style.ParseHex(cfg.Output.Background)
	if err != nil {
		return style.White
	}
	return bg
}

// RenderOptions maps cfg onto the renderer's options.
func RenderOptions(cfg *config.Config) render.Options {
	size := cfg.PixelSize()
	return render.Options{
		Width:        size,
		Height:       size,
		Supersample:  cfg.Output.Supersample,
		Transparent:  cfg.Output.Transparent,
		Background:   background(cfg),
		ViewExtent:   cfg.Output.ViewExtent,
		DPI:          cfg.Output.DPI,
		RegularFont:  cfg.Font.Regular,
		BoldFont:     cfg.Font.Bold,
		FallbackFont: cfg.Font.Fallback,
	}
}

// EncoderOptions maps cfg onto the GIF encoder's options. Partly covered
// pixels are blended onto the background color.
func EncoderOptions(cfg *config.Config) encoder.Options {
	return encoder.Options{
		FPS:         cfg.Animation.FPS,
		Loop:        true,
		Transparent: cfg.Output.Transparent,
		Dither:      cfg.Output.Dither,
		Matte:       background(cfg).NRGBA(),
	}
}

// MissingGlyphs returns the label runes no loaded font can draw.
func (g *Generator) MissingGlyphs() []rune {
	l := g.cfg.Labels
	text := strings.Join([]string{
		l.HeaderPrefix + l.Target,
		l.IdentifyTitle, l.IdentifyDetail,
		l.ScanTitle, l.ScanDetail,
		l.CloudTitle, l.CloudDetail,
		l.FinalTitle, l.FinalDetail,
	}, " ")
	return g.renderer.Uncovered(text)
}

// FrameCount is the number of frames in the sequence.
func (g *Generator) FrameCount() int {
	return g.frames
}

// T is the normalized time of frame i.
func (g *Generator) T(i int) float64 {
	return float64(i) / float64(g.frames)
}

// Frame renders the single frame at normalized time t.
func (g *Generator) Frame(t float64) *image.RGBA {
	return g.renderer.Render(g.composer.Compose(t))
}

// Frames renders the whole sequence in order. progress may be nil.
func (g *Generator) Frames(progress ProgressFunc) ([]*image.RGBA, error) {
	if g.frames <= 0 {
		return nil, fmt.Errorf("%w: %d frames", config.ErrInvalid, g.frames)
	}

	out := make([]*image.RGBA, 0, g.frames)
	for i := range g.frames {
		t := g.T(i)
		f := g.composer.Compose(t)
		img := g.renderer.Render(f)
		out = append(out, img)

		g.log.Debug("frame rendered",
			zap.Int("index", i),
			zap.Float64("t", t),
			zap.Stringer("phase", f.Phase),
			zap.Int("primitives", len(f.Primitives)),
			zap.Int("meshes", len(f.Meshes())),
			zap.Int("path_segments", len(f.Segments(scene.LayerPathFront))+len(f.Segments(scene.LayerPathBack))),
			zap.Int("points", f.Points()),
		)

		if g.sink != nil {
			if _, err := g.sink.CaptureFrame(img, i); err != nil {
				return nil, fmt.Errorf("writing frame %d: %w", i, err)
			}
		}
		if progress != nil {
			progress(i+1, g.frames)
		}
	}
	return out, nil
}

// Generate renders every frame and returns the encoded GIF.
func (g *Generator) Generate(progress ProgressFunc) ([]byte, error) {
	start := time.Now()
	size := g.renderer.Size()
	g.log.Info("rendering",
		zap.String("shape", string(g.cfg.Animation.Shape)),
		zap.Int("frames", g.frames),
		zap.Int("fps", g.cfg.Animation.FPS),
		zap.Int("width", size.X),
		zap.Int("height", size.Y),
		zap.String("primary", g.composer.Settings().Palette.FinalMesh.Hex()),
	)
	sched := g.composer.Schedule()
	for _, iv := range sched.Intervals() {
		if !sched.Enabled(iv.Phase) {
			continue
		}
		g.log.Info("phase",
			zap.Stringer("phase", iv.Phase),
			zap.Float64("start", iv.Start),
			zap.Float64("end", iv.End),
		)
	}

	frames, err := g.Frames(progress)
	if err != nil {
		return nil, err
	}
	data, err := encoder.EncodeBytes(frames, EncoderOptions(g.cfg))
	if err != nil {
		return nil, fmt.Errorf("encoding gif: %w", err)
	}

	g.log.Info("rendered",
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return data, nil
}

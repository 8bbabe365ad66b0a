// Package config handles animation configuration loading and management.
package config

import (
	"math"

	"github.com/Faultbox/scangif/internal/geometry"
	"github.com/Faultbox/scangif/internal/scene"
)

// Config holds all settings for one run.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Output    OutputConfig    `yaml:"output"`
	Style     StyleConfig     `yaml:"style"`
	Labels    scene.Labels    `yaml:"labels"`
	Font      FontConfig      `yaml:"font"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig holds the timeline and scene content.
type AnimationConfig struct {
	Shape        geometry.Shape `yaml:"shape"`
	Identify     bool           `yaml:"identify"`
	Scan         bool           `yaml:"scan"`
	PointCloud   bool           `yaml:"point_cloud"`
	Rotate       bool           `yaml:"rotate"`
	FPS          int            `yaml:"fps"`
	Duration     float64        `yaml:"duration"` // seconds
	Seed         uint64         `yaml:"seed"`
	PointCount   int            `yaml:"point_count"`
	Typewriter   bool           `yaml:"typewriter"`
	PhaseWeights scene.Weights  `yaml:"phase_weights"`
}

// OutputConfig holds canvas and file settings.
type OutputConfig struct {
	Path        string  `yaml:"path"`
	SizeInches  float64 `yaml:"size_inches"`
	DPI         float64 `yaml:"dpi"`
	Transparent bool    `yaml:"transparent"`
	Background  string  `yaml:"background"` // hex, used when not transparent
	Supersample int     `yaml:"supersample"`
	Dither      bool    `yaml:"dither"`
	ViewExtent  float32 `yaml:"view_extent"`
}

// StyleConfig holds colour and decoration settings.
type StyleConfig struct {
	Primary    string `yaml:"primary"` // hex colour of the finished mesh
	ShowGrid   bool   `yaml:"show_grid"`
	ShowShadow bool   `yaml:"show_shadow"`
}

// FontConfig holds optional TrueType/OpenType font paths. Fallback covers
// runes the other two lack; when empty a system CJK font is searched for.
type FontConfig struct {
	Regular  string `yaml:"regular"`
	Bold     string `yaml:"bold"`
	Fallback string `yaml:"fallback"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			Shape:        geometry.ShapeCube,
			Identify:     false,
			Scan:         true,
			PointCloud:   true,
			Rotate:       true,
			FPS:          12,
			Duration:     6,
			Seed:         1,
			PointCount:   150,
			Typewriter:   false,
			PhaseWeights: scene.DefaultWeights(),
		},
		Output: OutputConfig{
			Path:        "scan.gif",
			SizeInches:  2.5,
			DPI:         100,
			Transparent: true,
			Background:  "#FFFFFF",
			Supersample: 1,
			Dither:      false,
			ViewExtent:  2.1,
		},
		Style: StyleConfig{
			Primary:    "#2962FF",
			ShowGrid:   true,
			ShowShadow: false,
		},
		Labels: scene.DefaultLabels(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// FrameCount is the number of frames in the sequence.
func (c *Config) FrameCount() int {
	return int(math.Round(c.Animation.Duration * float64(c.Animation.FPS)))
}

// PixelSize is the side of the square canvas in pixels.
func (c *Config) PixelSize() int {
	return int(math.Round(c.Output.SizeInches * c.Output.DPI))
}

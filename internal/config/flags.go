package config

import (
	"flag"

	"github.com/Faultbox/scangif/internal/geometry"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagOut       = flag.String("out", "", "Output GIF path")
	flagPrompt    = flag.String("prompt", "", `Free-text description, e.g. "pyramid, 8 fps, 4s, #FF5722"`)
	flagShape     = flag.String("shape", "", "Object shape: cube, pyramid or prism")
	flagIdentify  = flag.Bool("identify", false, "Open with the identify and segment phase")
	flagFPS       = flag.Int("fps", 0, "Frames per second")
	flagDuration  = flag.Float64("duration", 0, "Animation length in seconds")
	flagTarget    = flag.String("target", "", "Target label shown in the header")
	flagSeed      = flag.Int64("seed", -1, "Random seed for the point cloud")
	flagSnapshot  = flag.Bool("snapshot", false, "Write a single PNG frame instead of a GIF")
	flagAt        = flag.Float64("at", 0.5, "Normalized time of the snapshot frame")
	flagFramesDir = flag.String("frames-dir", "", "Also write every frame as PNG into this directory")
	flagWriteCfg  = flag.String("write-config", "", "Write the effective config as YAML to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SnapshotMode reports whether a single PNG frame was requested.
func SnapshotMode() bool {
	return *flagSnapshot
}

// SnapshotAt is the normalized time of the snapshot frame, clamped to [0, 1].
func SnapshotAt() float64 {
	return min(max(*flagAt, 0), 1)
}

// FramesDir is where individual frames are dumped, or "" for nowhere.
func FramesDir() string {
	return *flagFramesDir
}

// WriteConfigPath is where the effective config should be saved, or "".
func WriteConfigPath() string {
	return *flagWriteCfg
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagShape != "" {
		cfg.Animation.Shape = geometry.Shape(*flagShape)
	}
	if *flagIdentify {
		cfg.Animation.Identify = true
	}
	if *flagFPS > 0 {
		cfg.Animation.FPS = *flagFPS
	}
	if *flagDuration > 0 {
		cfg.Animation.Duration = *flagDuration
	}
	if *flagTarget != "" {
		cfg.Labels.Target = *flagTarget
	}
	if *flagSeed >= 0 {
		cfg.Animation.Seed = uint64(*flagSeed)
	}
}

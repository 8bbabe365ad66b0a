// Package main is the entry point for the scangif renderer.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/scangif/internal/config"
	"github.com/Faultbox/scangif/internal/generator"
	"github.com/Faultbox/scangif/internal/logger"
	"github.com/Faultbox/scangif/internal/snapshot"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			logger.Error("writing config failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config written", zap.String("path", path))
		logger.Sync()
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	logger.Info("=== scangif ===")
	logger.Debug("config loaded",
		zap.String("shape", string(cfg.Animation.Shape)),
		zap.Bool("identify", cfg.Animation.Identify),
		zap.Int("frames", cfg.FrameCount()),
		zap.Int("size", cfg.PixelSize()),
		zap.Bool("transparent", cfg.Output.Transparent),
		zap.String("target", cfg.Labels.Target),
	)

	opts := []generator.Option{generator.WithLogger(logger.Named("generator"))}
	if dir := config.FramesDir(); dir != "" {
		opts = append(opts, generator.WithFrameSink(snapshot.NewCapture(dir, "frame")))
	}

	g, err := generator.New(cfg, opts...)
	if err != nil {
		return err
	}
	if missing := g.MissingGlyphs(); len(missing) > 0 {
		logger.Warn("no font has glyphs for some label text, set font.fallback",
			zap.String("runes", string(missing)),
		)
	}

	if config.SnapshotMode() {
		at := config.SnapshotAt()
		path := pngPath(cfg.Output.Path)
		if err := snapshot.WriteImage(path, g.Frame(at)); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		logger.Info("snapshot written", zap.String("path", path), zap.Float64("t", at))
		return nil
	}

	data, err := g.Generate(progressLogger(g.FrameCount()))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.Output.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(cfg.Output.Path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
	}

	logger.Info("gif written",
		zap.String("path", cfg.Output.Path),
		zap.Int("frames", g.FrameCount()),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// progressLogger reports every quarter of the run.
func progressLogger(frames int) generator.ProgressFunc {
	step := max(frames/4, 1)
	return func(done, total int) {
		if done%step == 0 || done == total {
			logger.Sugar.Infof("rendered %d/%d frames", done, total)
		}
	}
}

// pngPath swaps the extension of the output path for .png.
func pngPath(out string) string {
	return strings.TrimSuffix(out, filepath.Ext(out)) + ".png"
}

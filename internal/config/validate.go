package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/scangif/internal/style"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	minFPS         = 1
	maxFPS         = 60
	maxSupersample = 4
)

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// positive reports whether v is a finite number above zero. NaN fails.
func positive(v float64) bool {
	return v > 0 && finite(v)
}

// Validate checks the config and returns the first problem found.
func (c *Config) Validate() error {
	a := c.Animation
	if !a.Shape.Valid() {
		return fmt.Errorf("%w: unknown shape %q", ErrInvalid, a.Shape)
	}
	if a.FPS < minFPS || a.FPS > maxFPS {
		return fmt.Errorf("%w: fps %d outside [%d, %d]", ErrInvalid, a.FPS, minFPS, maxFPS)
	}
	if !positive(a.Duration) {
		return fmt.Errorf("%w: duration must be a positive number, got %g", ErrInvalid, a.Duration)
	}
	if a.PointCount < 0 {
		return fmt.Errorf("%w: negative point count %d", ErrInvalid, a.PointCount)
	}
	if err := validateWeights(a); err != nil {
		return err
	}

	o := c.Output
	if !positive(o.SizeInches) {
		return fmt.Errorf("%w: size must be a positive number, got %g", ErrInvalid, o.SizeInches)
	}
	if !positive(o.DPI) {
		return fmt.Errorf("%w: dpi must be a positive number, got %g", ErrInvalid, o.DPI)
	}
	if c.PixelSize() <= 0 {
		return fmt.Errorf("%w: canvas rounds to zero pixels", ErrInvalid)
	}
	if o.Supersample < 1 || o.Supersample > maxSupersample {
		return fmt.Errorf("%w: supersample %d outside [1, %d]", ErrInvalid, o.Supersample, maxSupersample)
	}
	if !positive(float64(o.ViewExtent)) {
		return fmt.Errorf("%w: view extent must be a positive number, got %g", ErrInvalid, o.ViewExtent)
	}
	if _, err := style.ParseHex(o.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	if _, err := style.ParseHex(c.Style.Primary); err != nil {
		return fmt.Errorf("%w: primary: %v", ErrInvalid, err)
	}

	if c.FrameCount() <= 0 {
		return fmt.Errorf("%w: %gs at %d fps yields no frames", ErrInvalid, a.Duration, a.FPS)
	}
	return nil
}

// validateWeights requires every weight to be a number and every enabled
// phase to have a positive share.
func validateWeights(a AnimationConfig) error {
	w := a.PhaseWeights
	phases := []struct {
		name    string
		weight  float64
		enabled bool
	}{
		{"identify", w.Identify, a.Identify},
		{"scan", w.Scan, a.Scan},
		{"point cloud", w.PointCloud, a.PointCloud},
		{"final", w.Final, true},
	}
	for _, p := range phases {
		if !finite(p.weight) {
			return fmt.Errorf("%w: %s phase weight is not a number: %g", ErrInvalid, p.name, p.weight)
		}
		if p.enabled && p.weight <= 0 {
			return fmt.Errorf("%w: %s phase weight must be positive", ErrInvalid, p.name)
		}
	}
	return nil
}

// Package snapshot writes rendered frames to disk as PNG files.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// Capture writes numbered frames into one directory.
type Capture struct {
	outputDir string
	prefix    string
}

// NewCapture creates a capture that writes <dir>/<prefix>_NNNN.png.
func NewCapture(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// Filename returns the path frame index is written to.
func (c *Capture) Filename(index int) string {
	name := fmt.Sprintf("%s_%04d.png", c.prefix, index)
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// CaptureFrame writes img as frame index and returns the file path.
func (c *Capture) CaptureFrame(img image.Image, index int) (string, error) {
	filename := c.Filename(index)
	if err := WriteImage(filename, img); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteImage encodes img as PNG at path, creating parent directories.
func WriteImage(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}

package render

import (
	"fmt"
	"image"
	"os"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/scangif/internal/style"
)

// Overlay text sizes, in points.
const (
	titleSize  = 11
	detailSize = 8
	headerSize = 9
)

// Outline widths, in points. The outline is drawn as a disc of this diameter
// around every glyph pixel.
const (
	titleOutline  = 3
	detailOutline = 2
	headerOutline = 2
)

// fontSet holds the faces used for overlay text.
type fontSet struct {
	title  *runeFace
	detail *runeFace
	header *runeFace
}

// loadFonts opens the bold and regular faces at the given pixel density.
// Empty paths select the bundled Go fonts. Runes those fonts lack are drawn
// with the fallback font, or a system CJK font when fallbackPath is empty.
func loadFonts(regularPath, boldPath, fallbackPath string, dpi float64) (*fontSet, error) {
	regular, err := parseFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := parseFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	fallback, err := loadFallback(fallbackPath)
	if err != nil {
		return nil, fmt.Errorf("fallback font: %w", err)
	}

	fs := &fontSet{}
	if fs.title, err = newRuneFace(bold, fallback, titleSize, dpi); err != nil {
		return nil, err
	}
	if fs.detail, err = newRuneFace(regular, fallback, detailSize, dpi); err != nil {
		return nil, err
	}
	if fs.header, err = newRuneFace(bold, fallback, headerSize, dpi); err != nil {
		return nil, err
	}
	return fs, nil
}

// uncovered returns the distinct printable runes of s that no loaded font can
// draw in either weight.
func (fs *fontSet) uncovered(s string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range s {
		if seen[r] || unicode.IsSpace(r) || !unicode.IsGraphic(r) {
			continue
		}
		seen[r] = true
		if !fs.title.covers(r) || !fs.detail.covers(r) {
			out = append(out, r)
		}
	}
	return out
}

func parseFont(path string, builtin []byte) (*opentype.Font, error) {
	data := builtin
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return parseFontData(data)
}

func newFace(f *opentype.Font, size, dpi float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %vpt: %w", size, err)
	}
	return face, nil
}

// textStyle describes one overlay string.
type textStyle struct {
	face    font.Face
	color   style.Color
	outline style.Color
	radius  int // outline radius in pixels, 0 for none
}

// drawText draws s horizontally centered on cx. If middle is set, y is the
// vertical center of the text box; otherwise y is the baseline. It returns the
// x position just after the string.
func drawText(dst *image.RGBA, s string, cx, y int, middle bool, ts textStyle) int {
	if s == "" {
		return cx
	}
	d := &font.Drawer{Dst: dst, Face: ts.face}
	width := d.MeasureString(s)
	x := fixed.I(cx) - width/2

	baseline := fixed.I(y)
	if middle {
		m := ts.face.Metrics()
		baseline += (m.Ascent - m.Descent) / 2
	}

	if ts.radius > 0 && !ts.outline.IsTransparent() {
		d.Src = image.NewUniform(ts.outline.NRGBA())
		r := ts.radius
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx == 0 && dy == 0 || dx*dx+dy*dy > r*r {
					continue
				}
				d.Dot = fixed.Point26_6{X: x + fixed.I(dx), Y: baseline + fixed.I(dy)}
				d.DrawString(s)
			}
		}
	}

	d.Src = image.NewUniform(ts.color.NRGBA())
	d.Dot = fixed.Point26_6{X: x, Y: baseline}
	d.DrawString(s)
	return (x + width).Ceil()
}

// drawTextAt draws s with its left edge at x and baseline y.
func drawTextAt(dst *image.RGBA, s string, x, y int, ts textStyle) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ts.color.NRGBA()),
		Face: ts.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// fallbackCandidates lists system fonts with CJK coverage, most preferred
// first.
func fallbackCandidates(goos string) []string {
	switch goos {
	case "windows":
		dir := os.Getenv("WINDIR")
		if dir == "" {
			dir = `C:\Windows`
		}
		fonts := filepath.Join(dir, "Fonts")
		return []string{
			filepath.Join(fonts, "msyh.ttc"),
			filepath.Join(fonts, "simhei.ttf"),
		}
	case "darwin":
		return []string{
			"/System/Library/Fonts/PingFang.ttc",
			"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
			"/Library/Fonts/Arial Unicode.ttf",
			"/System/Library/Fonts/STHeiti Medium.ttc",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
			"/usr/share/fonts/wenquanyi/wqy-microhei/wqy-microhei.ttc",
			"/usr/share/fonts/wqy-microhei/wqy-microhei.ttc",
			"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/google-noto-cjk/NotoSansCJK-Regular.ttc",
			"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
		}
	}
}

// loadFallback returns the font used for runes the primary fonts lack. An
// explicit path must load. Otherwise the first usable system candidate is
// taken, and nil is returned when there is none.
func loadFallback(path string) (*opentype.Font, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return parseFontData(data)
	}
	return systemFallback(), nil
}

// systemFallback is the first system candidate that parses, or nil. The
// search runs once per process.
var systemFallback = sync.OnceValue(func() *opentype.Font {
	for _, p := range fallbackCandidates(runtime.GOOS) {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if f, err := parseFontData(data); err == nil {
			return f
		}
	}
	return nil
})

// parseFontData parses a single font or the first font of a collection.
func parseFontData(data []byte) (*opentype.Font, error) {
	if !bytes.HasPrefix(data, []byte("ttcf")) {
		return opentype.Parse(data)
	}
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if c.NumFonts() == 0 {
		return nil, errors.New("empty font collection")
	}
	return c.Font(0)
}

// runeFace draws each rune with the first font that has a glyph for it. The
// first face also supplies the line metrics.
type runeFace struct {
	fonts []*opentype.Font
	faces []font.Face
	buf   sfnt.Buffer
}

// newRuneFace builds faces of one size for the primary font and each non-nil
// fallback.
func newRuneFace(primary, fallback *opentype.Font, size, dpi float64) (*runeFace, error) {
	rf := &runeFace{}
	for _, f := range []*opentype.Font{primary, fallback} {
		if f == nil {
			continue
		}
		face, err := newFace(f, size, dpi)
		if err != nil {
			return nil, err
		}
		rf.fonts = append(rf.fonts, f)
		rf.faces = append(rf.faces, face)
	}
	if len(rf.faces) == 0 {
		return nil, fmt.Errorf("no font for %vpt face", size)
	}
	return rf, nil
}

// index returns which face renders r, and whether any font has it.
func (f *runeFace) index(r rune) (int, bool) {
	for i, ft := range f.fonts {
		if gi, err := ft.GlyphIndex(&f.buf, r); err == nil && gi != 0 {
			return i, true
		}
	}
	return 0, false
}

func (f *runeFace) pick(r rune) font.Face {
	i, _ := f.index(r)
	return f.faces[i]
}

// covers reports whether some font has a glyph for r.
func (f *runeFace) covers(r rune) bool {
	_, ok := f.index(r)
	return ok
}

func (f *runeFace) Close() error {
	var errs []error
	for _, face := range f.faces {
		errs = append(errs, face.Close())
	}
	return errors.Join(errs...)
}

func (f *runeFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return f.pick(r).Glyph(dot, r)
}

func (f *runeFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return f.pick(r).GlyphBounds(r)
}

func (f *runeFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return f.pick(r).GlyphAdvance(r)
}

// Kern applies only between two runes drawn from the same font.
func (f *runeFace) Kern(r0, r1 rune) fixed.Int26_6 {
	i0, _ := f.index(r0)
	i1, _ := f.index(r1)
	if i0 != i1 {
		return 0
	}
	return f.faces[i0].Kern(r0, r1)
}

func (f *runeFace) Metrics() font.Metrics {
	return f.faces[0].Metrics()
}

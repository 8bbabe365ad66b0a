package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

func TestCJKHeaderResolvesGlyphs(t *testing.T) {
	fallback, err := loadFallback("")
	require.NoError(t, err)
	if fallback == nil {
		t.Skip("no system CJK font installed")
	}

	fs, err := loadFonts("", "", "", 100)
	require.NoError(t, err)

	var buf sfnt.Buffer
	for _, r := range "目标立方体识别" {
		gi, err := fallback.GlyphIndex(&buf, r)
		require.NoError(t, err)
		assert.NotZero(t, gi, "glyph index of %q", r)

		i, ok := fs.header.index(r)
		assert.True(t, ok, "%q should be covered", r)
		assert.Equal(t, 1, i, "%q should come from the fallback font", r)
		adv, ok := fs.header.GlyphAdvance(r)
		assert.True(t, ok)
		assert.Positive(t, adv.Ceil())
	}
	assert.Empty(t, fs.uncovered("Target: 立方体"))

	// Latin text keeps the primary font.
	i, ok := fs.header.index('T')
	assert.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestRuneFaceWithoutFallback(t *testing.T) {
	regular, err := opentype.Parse(goregular.TTF)
	require.NoError(t, err)
	face, err := newRuneFace(regular, nil, 9, 100)
	require.NoError(t, err)

	assert.True(t, face.covers('A'))
	assert.False(t, face.covers('立'))
	assert.Zero(t, face.Kern('A', '立'))

	fs := &fontSet{title: face, detail: face, header: face}
	assert.Equal(t, []rune("立方体"), fs.uncovered("Target: 立方体 立"))
	assert.Empty(t, fs.uncovered("Scan 1\t"))
}

func TestLoadFontsFallbackErrors(t *testing.T) {
	_, err := loadFonts("", "", filepath.Join(t.TempDir(), "missing.ttf"), 100)
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.ttf")
	require.NoError(t, os.WriteFile(junk, []byte("not a font"), 0644))
	_, err = loadFonts("", "", junk, 100)
	assert.Error(t, err)
}

func TestRendererUncovered(t *testing.T) {
	// A Latin-only fallback leaves CJK runes uncovered.
	path := filepath.Join(t.TempDir(), "regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0644))

	opts := DefaultOptions()
	opts.FallbackFont = path
	r := newTestRenderer(t, opts)

	assert.Equal(t, []rune("立方体"), r.Uncovered("立方体"))
	assert.Empty(t, r.Uncovered("Target: Smart speaker"))
}

func TestFallbackCandidatesPerOS(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "windows"} {
		assert.NotEmpty(t, fallbackCandidates(goos), goos)
	}
	assert.Contains(t, filepath.Base(fallbackCandidates("windows")[0]), "msyh")
}

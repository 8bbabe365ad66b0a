package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#2962FF")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0x29, 0x62, 0xFF, 0xFF}, c.NRGBA())

	c, err = ParseHex("e0e0e0")
	require.NoError(t, err)
	assert.Equal(t, "#E0E0E0", c.Hex())
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#FFF", "#GGGGGG", "#1234567", "blue"} {
		_, err := ParseHex(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFadeClamps(t *testing.T) {
	c := White.WithAlpha(0.8)
	assert.InDelta(t, 0.4, c.Fade(0.5).A, 1e-6)
	assert.Equal(t, float32(1), c.Fade(10).A)
	assert.True(t, c.Fade(0).IsTransparent())
}

func TestWithPrimaryDoesNotMutateDefault(t *testing.T) {
	base := DefaultPalette()
	red := MustHex("#FF0000")
	patched := base.WithPrimary(red)

	assert.Equal(t, red, patched.FinalMesh)
	assert.Equal(t, "#2962FF", DefaultPalette().FinalMesh.Hex())
	assert.Equal(t, "#2962FF", base.FinalMesh.Hex())
}

package encoder

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func decode(t *testing.T, data []byte) *gif.GIF {
	t.Helper()
	g, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	return g
}

func TestEncodeLoopingSequence(t *testing.T) {
	frames := []*image.RGBA{
		solidFrame(20, 10, color.RGBA{255, 0, 0, 255}),
		solidFrame(20, 10, color.RGBA{0, 255, 0, 255}),
		solidFrame(20, 10, color.RGBA{0, 0, 255, 255}),
	}
	data, err := EncodeBytes(frames, Options{FPS: 10, Loop: true})
	require.NoError(t, err)

	g := decode(t, data)
	assert.Len(t, g.Image, 3)
	assert.Equal(t, 0, g.LoopCount)
	assert.Equal(t, 20, g.Config.Width)
	assert.Equal(t, 10, g.Config.Height)
	for i := range g.Image {
		assert.Equal(t, 10, g.Delay[i])
		assert.Equal(t, byte(gif.DisposalBackground), g.Disposal[i])
	}

	r, gr, b, _ := g.Image[0].At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, gr)
	assert.Zero(t, b)
	_, gr, _, _ = g.Image[1].At(5, 5).RGBA()
	assert.Equal(t, uint32(0xffff), gr)
}

func TestEncodePlayOnce(t *testing.T) {
	data, err := EncodeBytes([]*image.RGBA{solidFrame(4, 4, color.RGBA{0, 0, 0, 255})}, Options{FPS: 25})
	require.NoError(t, err)
	g := decode(t, data)
	assert.Equal(t, -1, g.LoopCount)
	assert.Equal(t, 4, g.Delay[0])
}

func TestDelay(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{1, 100},
		{8, 13},
		{10, 10},
		{24, 4},
		{30, 3},
		{60, 2},
		{200, 1},
		{0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Options{FPS: tt.fps}.Delay(), "fps %d", tt.fps)
	}
}

func TestEncodeTransparency(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	// A faint wireframe edge and a stray antialiasing speck.
	img.SetRGBA(0, 0, color.RGBA{0, 0, 60, 60})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 4, 4})

	data, err := EncodeBytes([]*image.RGBA{img}, Options{FPS: 10, Loop: true, Transparent: true})
	require.NoError(t, err)
	g := decode(t, data)

	pm := g.Image[0]
	_, _, _, a := pm.At(1, 1).RGBA()
	assert.Zero(t, a, "untouched pixels stay transparent")
	_, _, _, a = pm.At(1, 0).RGBA()
	assert.Zero(t, a, "near-empty pixels become transparent")
	r, gr, b, a := pm.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a, "faint pixels stay visible")
	assert.Greater(t, b, r, "faint blue keeps its hue over the matte")
	assert.Equal(t, r, gr)
	r, _, _, a = pm.At(6, 6).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Zero(t, r)
}

func TestEncodeTransparencyKeepsLowAlphaStrokes(t *testing.T) {
	// A 1px stroke at every alpha the renderer can produce for faded edges.
	img := image.NewRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		img.SetRGBA(x, 0, color.RGBA{0, 0, uint8(x), uint8(x)})
	}
	data, err := EncodeBytes([]*image.RGBA{img}, Options{FPS: 10, Transparent: true})
	require.NoError(t, err)
	pm := decode(t, data).Image[0]

	for x := 0; x < 256; x++ {
		_, _, _, a := pm.At(x, 0).RGBA()
		if x < transparentCutoff {
			assert.Zero(t, a, "alpha %d", x)
		} else {
			assert.Equal(t, uint32(0xffff), a, "alpha %d", x)
		}
	}
}

func TestEncodeOpaqueHasNoTransparentSlot(t *testing.T) {
	data, err := EncodeBytes([]*image.RGBA{solidFrame(4, 4, color.RGBA{255, 255, 255, 255})}, Options{FPS: 10})
	require.NoError(t, err)
	g := decode(t, data)
	for _, c := range g.Image[0].Palette {
		_, _, _, a := c.RGBA()
		assert.Equal(t, uint32(0xffff), a)
	}
}

func TestEncodeDither(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 8), uint8(y * 8), 128, 255})
		}
	}
	plain, err := EncodeBytes([]*image.RGBA{img}, Options{FPS: 10})
	require.NoError(t, err)
	dithered, err := EncodeBytes([]*image.RGBA{img}, Options{FPS: 10, Dither: true})
	require.NoError(t, err)
	assert.NotEqual(t, plain, dithered)
	assert.Len(t, decode(t, dithered).Image, 1)
}

func TestEncodeRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, nil, Options{FPS: 10})
	assert.True(t, errors.Is(err, ErrNoFrames))
	assert.Zero(t, buf.Len())

	frames := []*image.RGBA{solidFrame(4, 4, color.RGBA{A: 255}), solidFrame(5, 4, color.RGBA{A: 255})}
	err = Encode(&buf, frames, Options{FPS: 10})
	assert.True(t, errors.Is(err, ErrFrameSize))
	assert.Zero(t, buf.Len())

	err = Encode(&buf, frames[:1], Options{FPS: 0})
	assert.True(t, errors.Is(err, ErrFPS))
}

func TestBuildPalette(t *testing.T) {
	assert.Len(t, buildPalette(false), 256)
	pal := buildPalette(true)
	assert.Len(t, pal, 256)
	_, _, _, a := pal[transparentIndex].RGBA()
	assert.Zero(t, a)
}

func TestFlatten(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	// Half-covered pure red.
	half := color.RGBA{128, 0, 0, 128}
	assert.Equal(t, color.RGBA{255, 127, 127, 255}, flatten(half, white))
	assert.Equal(t, color.RGBA{128, 0, 0, 255}, flatten(half, black))

	assert.Equal(t, white, flatten(color.RGBA{}, white))
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, flatten(color.RGBA{10, 20, 30, 255}, white))
}

func TestOptionsMatte(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, Options{}.matte())
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, Options{Matte: color.NRGBA{1, 2, 3, 0}}.matte())
}

// Package encoder packs rendered frames into a looping animated GIF.
package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	gomath "math"

	"golang.org/x/image/draw"
)

var (
	// ErrNoFrames is returned when there is nothing to encode.
	ErrNoFrames = errors.New("encoder: no frames")
	// ErrFrameSize is returned when frames differ in size.
	ErrFrameSize = errors.New("encoder: frame size mismatch")
	// ErrFPS is returned for a non-positive frame rate.
	ErrFPS = errors.New("encoder: fps must be positive")
)

// Options controls timing and color reduction.
type Options struct {
	FPS         int  // frames per second; delay is 1/FPS
	Loop        bool // repeat forever; otherwise play once
	Transparent bool // keep a transparent palette entry for empty pixels
	Dither      bool // Floyd-Steinberg error diffusion

	// Matte is what partly covered pixels are blended onto. GIF has no
	// partial alpha, so it should match the page the GIF is shown on.
	// nil means white.
	Matte color.Color
}

// transparentCutoff is the coverage below which a pixel is dropped to the
// transparent slot. Anything at or above it is kept, blended onto the matte.
const transparentCutoff = 8

// matte returns the opaque matte color.
func (o Options) matte() color.RGBA {
	if o.Matte == nil {
		return color.RGBA{255, 255, 255, 255}
	}
	c := color.NRGBAModel.Convert(o.Matte).(color.NRGBA)
	return color.RGBA{c.R, c.G, c.B, 255}
}

// Delay returns the per-frame delay in hundredths of a second, at least 1.
func (o Options) Delay() int {
	if o.FPS <= 0 {
		return 0
	}
	return max(int(gomath.Round(100/float64(o.FPS))), 1)
}

// Encode writes frames as one animated GIF. Every frame is disposed to the
// background before the next is drawn, so frames never accumulate. Nothing is
// written if the input is rejected.
func Encode(w io.Writer, frames []*image.RGBA, opts Options) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrFPS, opts.FPS)
	}
	bounds := frames[0].Bounds()
	for i, f := range frames {
		if f.Bounds() != bounds {
			return fmt.Errorf("%w: frame %d is %v, want %v", ErrFrameSize, i, f.Bounds(), bounds)
		}
	}

	pal := buildPalette(opts.Transparent)
	loop := 0
	if !opts.Loop {
		loop = -1
	}
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		Disposal:  make([]byte, 0, len(frames)),
		LoopCount: loop,
		Config: image.Config{
			ColorModel: pal,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		},
	}
	if opts.Transparent {
		out.BackgroundIndex = transparentIndex
	}

	delay := opts.Delay()
	for _, f := range frames {
		out.Image = append(out.Image, quantize(f, pal, opts))
		out.Delay = append(out.Delay, delay)
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}
	return gif.EncodeAll(w, out)
}

// EncodeBytes is Encode into a fresh buffer.
func EncodeBytes(frames []*image.RGBA, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, frames, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// transparentIndex is the palette slot reserved for fully transparent pixels.
const transparentIndex = 0

// buildPalette returns the web-safe cube plus a grey ramp. With transparent
// set, slot 0 is fully transparent.
func buildPalette(transparent bool) color.Palette {
	pal := make(color.Palette, 0, 256)
	if transparent {
		pal = append(pal, color.RGBA{})
	}
	pal = append(pal, palette.WebSafe...)
	for i := 0; len(pal) < 256; i++ {
		v := uint8(8 + i*6)
		pal = append(pal, color.RGBA{v, v, v, 255})
	}
	return pal
}

// quantize maps an RGBA frame onto pal.
func quantize(src *image.RGBA, pal color.Palette, opts Options) *image.Paletted {
	b := src.Bounds()
	dst := image.NewPaletted(b, pal)
	matte := opts.matte()

	// Flatten onto the matte first, so the matcher never picks the
	// transparent slot for a visible pixel.
	opaque := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			opaque.SetRGBA(x, y, flatten(src.RGBAAt(x, y), matte))
		}
	}

	opaquePal := pal
	if opts.Transparent {
		opaquePal = pal[transparentIndex+1:]
	}
	tmp := image.NewPaletted(b, opaquePal)
	if opts.Dither {
		draw.FloydSteinberg.Draw(tmp, b, opaque, b.Min)
	} else {
		draw.Draw(tmp, b, opaque, b.Min, draw.Src)
	}

	offset := uint8(0)
	if opts.Transparent {
		offset = transparentIndex + 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if opts.Transparent && src.RGBAAt(x, y).A < transparentCutoff {
				dst.SetColorIndex(x, y, transparentIndex)
				continue
			}
			dst.SetColorIndex(x, y, tmp.ColorIndexAt(x, y)+offset)
		}
	}
	return dst
}

// flatten composites a premultiplied pixel over an opaque matte.
func flatten(c, matte color.RGBA) color.RGBA {
	if c.A == 255 {
		return c
	}
	k := uint32(255 - c.A)
	over := func(v, m uint8) uint8 {
		return uint8(min(uint32(v)+(uint32(m)*k+127)/255, 255))
	}
	return color.RGBA{
		R: over(c.R, matte.R),
		G: over(c.G, matte.G),
		B: over(c.B, matte.B),
		A: 255,
	}
}

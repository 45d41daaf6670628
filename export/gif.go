package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
)

// EncodeGIF writes frames as a looping animated GIF.
//
// Each frame is quantized to at most 255 colors and color.Transparent is
// prepended as palette index 0, so fully transparent source pixels stay
// transparent. Every frame disposes to background, which together with
// background index 0 keeps frames from ghosting over each other.
func EncodeGIF(w io.Writer, frames []*image.RGBA, o Options) error {
	if len(frames) == 0 {
		return ErrEmptySelection
	}
	delay := centiseconds(o.frameDuration())

	var width, height int
	for _, f := range frames {
		if dx := f.Bounds().Dx(); dx > width {
			width = dx
		}
		if dy := f.Bounds().Dy(); dy > height {
			height = dy
		}
	}

	g := gif.GIF{
		LoopCount: 0,
		Config:    image.Config{Width: width, Height: height},
	}
	// Up to 255 colors per frame, leaving one slot for transparency. The
	// quantizer only computes the palette; the pixels get remapped by a
	// single draw.Draw below.
	quantizer := quantize.MedianCutQuantizer{}
	for _, f := range frames {
		b := f.Bounds()
		pal := quantizer.Quantize(make(color.Palette, 0, 255), f)
		if len(pal) == 0 {
			// A fully transparent frame quantizes to nothing.
			pal = color.Palette{color.Black}
		}
		paletted := image.NewPaletted(b, append(color.Palette{color.Transparent}, pal...))
		draw.Draw(paletted, b, f, b.Min, draw.Over)

		g.Image = append(g.Image, paletted)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	g.BackgroundIndex = 0

	if err := gif.EncodeAll(w, &g); err != nil {
		return errors.Wrap(err, "encoding gif")
	}
	return nil
}

// centiseconds converts a frame duration to GIF delay units, at least 1.
func centiseconds(d time.Duration) int {
	cs := int(d / (10 * time.Millisecond))
	if cs < 1 {
		cs = 1
	}
	return cs
}

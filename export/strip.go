package export

import (
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/pkg/errors"
)

// EncodeStrip writes frames as one horizontal PNG strip: frames laid out
// left to right in order, top-aligned, with fully transparent filler below
// any frame shorter than the tallest one.
func EncodeStrip(w io.Writer, frames []*image.RGBA) error {
	if len(frames) == 0 {
		return ErrEmptySelection
	}
	width, height := 0, 0
	for _, f := range frames {
		width += f.Bounds().Dx()
		if h := f.Bounds().Dy(); h > height {
			height = h
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, f := range frames {
		b := f.Bounds()
		draw.Draw(out, image.Rect(x, 0, x+b.Dx(), b.Dy()), f, b.Min, draw.Src)
		x += b.Dx()
	}
	if err := png.Encode(w, out); err != nil {
		return errors.Wrap(err, "encoding strip png")
	}
	return nil
}

package ttesting

// Small image fixtures shared by the image-handling packages' tests.

import (
	"image"
	"image/color"
)

// SolidRGBA returns a w x h RGBA image filled with c.
func SolidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// FrameColor returns a colour unique to a (row, col) frame coordinate,
// fully opaque. Tests paint each frame with it and later verify frames
// ended up where an operation should have put them.
func FrameColor(row, col int) color.RGBA {
	return color.RGBA{R: uint8(20 + 40*col), G: uint8(20 + 40*row), B: uint8(10 + 16*row + 4*col), A: 255}
}

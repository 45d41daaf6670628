package sheet

// This file contains image loading: decoding a sheet file from disk and
// normalizing whatever pixel format arrives into the RGBA buffer the rest
// of the packages work on.

import (
	"image"
	"image/draw"
	"io"
	"os"

	// Sheet sources arrive as PNG, JPEG, GIF (first frame) or BMP.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Load reads the image file at path and slices it with the grid derived
// from spec.
func Load(path string, spec GridSpec) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sheet image")
	}
	defer f.Close()
	s, err := Decode(f, spec)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding sheet image %s", path)
	}
	return s, nil
}

// Decode decodes a sheet image from r. Animated GIF input contributes its
// first frame only.
func Decode(r io.Reader, spec GridSpec) (*Sheet, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	glog.V(2).Infof("decoded %s image of %v", format, img.Bounds().Size())
	return FromImage(img, spec)
}

// FromImage slices an already decoded image. The pixels are copied into a
// fresh RGBA buffer with the origin at (0, 0); sources without an alpha
// channel (JPEG, opaque BMP) come out fully opaque.
func FromImage(img image.Image, spec GridSpec) (*Sheet, error) {
	b := img.Bounds()
	g, err := spec.Build(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	buf := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(buf, buf.Bounds(), img, b.Min, draw.Src)
	return New(buf, g)
}

//go:build go1.13 && !windows
// +build go1.13,!windows

package imageprint

import (
	"fmt"
	"image"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// PrintRasTerm draws an image inline through the rasterm library, probing
// Kitty first, then iTerm2/WezTerm, then sixel capable terminals. Terminals
// with none of these protocols get nothing; callers fall back to the ANSI
// renderers.
func PrintRasTerm(i image.Image) {
	s := rasterm.Settings{}
	switch {
	case rasterm.IsTermKitty():
		s.KittyWriteImage(os.Stdout, i)
	case rasterm.IsTermItermWez():
		s.ItermWriteImage(os.Stdout, i)
	default:
		capable, err := rasterm.IsSixelCapable()
		if !capable || err != nil {
			return
		}
		// Sixel wants a paletted image; 64 colors is plenty for sprites.
		pal := image.NewPaletted(i.Bounds(), nil)
		q := gogif.MedianCutQuantizer{NumColor: 64}
		q.Quantize(pal, i.Bounds(), i, image.Point{})
		s.SixelWriteImage(os.Stdout, pal)
	}
	fmt.Printf("\n")
}

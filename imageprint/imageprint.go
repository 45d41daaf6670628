// Package imageprint prints sheets and frames on the terminal. Graphic
// terminals get real images (Kitty, iTerm2, sixel); everything else gets
// ANSI cell rendering or plain ascii shading.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/draw"
	"image/png"

	"github.com/gookit/color"
)

type dumper interface {
	Printf(s string, arg ...interface{})
}
type fmtDumperT struct{}

func (fmtDumperT) Printf(s string, arg ...interface{}) {
	fmt.Printf(s, arg...)
}

var fmtDumper fmtDumperT

// Matte composites img over a two-tone checkerboard so transparent sprite
// regions stay readable on renderers without alpha. cell is the checker
// square edge; values below 1 mean 4.
func Matte(img image.Image, cell int) *image.RGBA {
	if cell < 1 {
		cell = 4
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	light := ic.RGBA{0x66, 0x66, 0x66, 0xff}
	dark := ic.RGBA{0x44, 0x44, 0x44, 0xff}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			out.SetRGBA(x, y, c)
		}
	}
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

func shade(col ic.Color, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA > 0 {
		var d dumper

		if noColor {
			d = &fmtDumper
		} else {
			d = color.RGB(uint8(cR), uint8(cG), uint8(cB), true)
		}
		if blanks {
			d.Printf("  ")
		} else {
			a := ((cR + cG + cB) / 3) >> 8
			switch {
			case a < 32:
				d.Printf("..")
			case a < 64:
				d.Printf("--")
			case a < 128:
				d.Printf("==")
			default:
				d.Printf("##")
			}
		}
	} else {
		fmt.Printf("\x1b[0m  ")
	}
}

// Print256Color draws an image as colored two-space cells through gookit's
// ANSI printer.
func Print256Color(i image.Image, blanks bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			col := i.At(x, y)
			shade(col, blanks, false)
		}
		fmt.Printf("\x1b[0m")
		fmt.Printf("\n")
	}
}

// PrintNoColor draws an image as ascii shading without color escape
// sequences. Only makes sense with blanks=false.
func PrintNoColor(i image.Image, blanks bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			col := i.At(x, y)
			shade(col, blanks, true)
		}
		fmt.Printf("\n")
	}
}

// Print24bit draws an image with 24bit color escape sequences, packing two
// pixel rows into each text line with half blocks.
func Print24bit(i image.Image) {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := i.At(x, y)
			var bottom ic.Color = ic.Transparent
			if y+1 < b.Max.Y {
				bottom = i.At(x, y+1)
			}
			halfBlock(top, bottom)
		}
		fmt.Printf("\x1b[0m\n")
	}
}

func halfBlock(top, bottom ic.Color) {
	tR, tG, tB, tA := top.RGBA()
	bR, bG, bB, bA := bottom.RGBA()
	switch {
	case tA == 0 && bA == 0:
		fmt.Printf("\x1b[0m ")
	case tA == 0:
		fmt.Printf("\x1b[0m\x1b[38;2;%d;%d;%dm▄", uint8(bR), uint8(bG), uint8(bB))
	case bA == 0:
		fmt.Printf("\x1b[0m\x1b[38;2;%d;%d;%dm▀", uint8(tR), uint8(tG), uint8(tB))
	default:
		fmt.Printf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", uint8(tR), uint8(tG), uint8(tB), uint8(bR), uint8(bG), uint8(bB))
	}
}

// PrintITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(bEnc, i)
	bEnc.Close()
	fmt.Printf("\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, len(b.String()), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}

package main

import (
	"flag"
	"image"

	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-sprites/imageprint"
)

var (
	colorize = flag.Bool("color", true, "whether to print with color escape sequences at all")
	col256   = flag.Bool("col256", false, "whether to use 256 color instead of 24 bit")
	iterm    = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm  = flag.Bool("rasterm", false, "whether to print with whatever rasterm detects (kitty, iterm, sixel)")
	blanks   = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink the image to fit the terminal")
)

func out(img image.Image) {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
				// Prefer native size if there is a chance a graphic
				// renderer performs the print.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
			} else if termSize.WSCol != 0 && termSize.WSRow != 0 {
				// Colored cells are two characters wide; half blocks put
				// two pixel rows on each line.
				img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow*2, img, resize.Lanczos3)
			}
		}
	}

	if *rasterm {
		imageprint.PrintRasTerm(img)
	} else if !*colorize {
		imageprint.PrintNoColor(img, false)
	} else if *iterm {
		imageprint.PrintITerm(img, "sheet.png")
	} else if *col256 {
		imageprint.Print256Color(img, *blanks)
	} else {
		imageprint.Print24bit(img)
	}
}

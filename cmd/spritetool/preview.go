package main

import (
	"flag"
	"image"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites/imageprint"
)

var (
	preview  = flag.Bool("preview", false, "print the sheet (or -frame) on the terminal")
	frameSel = flag.String("frame", "", "preview a single frame, as \"r,c\"")
	matte    = flag.Int("matte", 4, "checkerboard square size behind transparency, 0 to disable")
)

// runPreview prints -in (or one frame of it) on the terminal.
func runPreview() {
	sess := loadSession()

	var img image.Image = sess.Sheet().Image()
	if *frameSel != "" {
		r, c, err := parseCoord(*frameSel)
		if err != nil {
			glog.Exitf("error parsing -frame: %s", err)
		}
		f, err := sess.Sheet().Frame(r, c)
		if err != nil {
			glog.Exitf("error extracting frame: %s", err)
		}
		img = f
	}
	if *matte > 0 {
		img = imageprint.Matte(img, *matte)
	}
	out(img)
}

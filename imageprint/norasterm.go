//go:build !go1.13 || windows
// +build !go1.13 windows

package imageprint

import (
	"flag"
	"fmt"
	"image"
)

var (
	forceITerm = flag.Bool("force_iterm", false, "treat the terminal as iTerm2 (build variant without rasterm)")
)

func isTermItermWez() bool {
	return *forceITerm
}

// PrintRasTerm is a stub; this build carries no rasterm support.
func PrintRasTerm(i image.Image) {
	fmt.Printf("inline terminal images need Go 1.13+ and a non-windows build\n")
}

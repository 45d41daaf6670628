// Command spritetool slices sprite sheets on a regular grid and exports
// frames, strips and animations. It can process a whole folder in one run,
// preview sheets in the terminal, and serve a browser preview.
//
// The mode is chosen by flags: -in for a single sheet, -batch for a folder,
// -preview to print on the terminal, -serve to start the preview server.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites/paths"
	"badc0de.net/pkg/go-sprites/session"
	"badc0de.net/pkg/go-sprites/sheet"
)

var (
	inPath = flag.String("in", "", "sprite sheet image to load")

	cellW        = flag.Int("cell_w", 0, "cell width in pixels; with -cell_h this drives the grid")
	cellH        = flag.Int("cell_h", 0, "cell height in pixels")
	gridRows     = flag.Int("rows", 0, "row count; with -cols this drives the grid instead of the cell size")
	gridCols     = flag.Int("cols", 0, "column count")
	padX         = flag.Int("pad_x", 0, "horizontal padding between cells in pixels")
	padY         = flag.Int("pad_y", 0, "vertical padding between cells in pixels")
	applyPadding = flag.Bool("apply_padding", false, "trim every frame to its padded interior before exporting")

	exportKinds = flag.String("export", "", "comma separated export kinds: frames,strip,gif,apng")
	outDir      = flag.String("out", ".", "output directory for exports")
	frameMS     = flag.Int("ms", 0, "frame duration for animations, in milliseconds")
	rowSel      = flag.Int("row", -1, "export only this row")
	colSel      = flag.Int("col", -1, "export only this column")
	frameList   = flag.String("frames", "", "export these frames in the given order, as \"r,c;r,c\"")
)

func gridSpecFromFlags() sheet.GridSpec {
	return sheet.GridSpec{
		CellW: *cellW,
		CellH: *cellH,
		Rows:  *gridRows,
		Cols:  *gridCols,
		PadX:  *padX,
		PadY:  *padY,
	}
}

// parseCoord parses a "row,col" pair.
func parseCoord(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("want \"row,col\", got %q", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "bad row in %q", s)
	}
	c, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "bad col in %q", s)
	}
	return r, c, nil
}

func main() {
	flag.Set("logtostderr", "true")
	flagutil.Parse()

	switch {
	case *batchRoot != "":
		runBatch()
	case *serveAddr != "":
		runServe()
	case *preview:
		runPreview()
	case *inPath != "":
		runExport()
	default:
		fmt.Println("nothing to do: pass -in, -batch, -preview or -serve (-help lists flags)")
	}
}

func loadSession() *session.Session {
	if *inPath == "" {
		glog.Exitf("no input sheet: pass -in")
	}
	in := *inPath
	if _, err := os.Stat(in); err != nil {
		// Not a literal path; maybe a shortname in one of the asset dirs.
		if found := paths.Find(in); found != "" {
			in = found
		}
	}
	sess, err := session.Load(in, gridSpecFromFlags())
	if err != nil {
		glog.Exitf("error loading sheet: %s", err)
	}
	return sess
}

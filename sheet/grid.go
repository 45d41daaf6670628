package sheet

// This file contains the grid geometry: how a source image of known
// dimensions divides into equally sized frames, with optional padding
// between neighbouring cells.

import (
	"fmt"
	"image"
)

// Coord addresses a single frame within a grid, in reading order: row 0 is
// the top row, column 0 is the leftmost column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// driveMode records which of the two grid inputs is authoritative. Changing
// padding re-derives the complementary values from the driving input.
type driveMode int

const (
	driveCellSize driveMode = iota
	driveCount
)

// Grid describes how a source image of SrcW x SrcH pixels divides into
// Rows x Cols frames of CellW x CellH pixels, with PadX and PadY pixels of
// padding between horizontally and vertically neighbouring cells.
//
// Padding exists only between cells. There is no outer margin: frame (0,0)
// starts at the image origin, and any remainder to the right of the last
// column or below the last row belongs to no frame.
//
// A Grid is a value. Operations that change geometry build a replacement
// grid instead of mutating one in place.
type Grid struct {
	CellW, CellH int
	Rows, Cols   int
	PadX, PadY   int
	SrcW, SrcH   int

	drive driveMode
}

// GridFromCellSize builds a grid over a srcW x srcH image from a manually
// chosen cell size: as many whole cells as fit in each direction, counting
// padX and padY pixels between neighbouring cells.
func GridFromCellSize(srcW, srcH, cellW, cellH, padX, padY int) (Grid, error) {
	if err := checkGridInputs(srcW, srcH, padX, padY); err != nil {
		return Grid{}, err
	}
	if cellW < 1 || cellH < 1 {
		return Grid{}, invalidGridf("cell size %dx%d; both dimensions must be at least 1", cellW, cellH)
	}
	cols := (srcW + padX) / (cellW + padX)
	rows := (srcH + padY) / (cellH + padY)
	if cols < 1 || rows < 1 {
		return Grid{}, invalidGridf("no %dx%d cell fits a %dx%d image", cellW, cellH, srcW, srcH)
	}
	g := Grid{
		CellW: cellW, CellH: cellH,
		Rows: rows, Cols: cols,
		PadX: padX, PadY: padY,
		SrcW: srcW, SrcH: srcH,
		drive: driveCellSize,
	}
	return g, g.check()
}

// GridFromCount builds a grid over a srcW x srcH image from a manually
// chosen number of rows and columns. The cell size is derived so that the
// cells plus the padding between them fit the source.
func GridFromCount(srcW, srcH, rows, cols, padX, padY int) (Grid, error) {
	if err := checkGridInputs(srcW, srcH, padX, padY); err != nil {
		return Grid{}, err
	}
	if rows < 1 || cols < 1 {
		return Grid{}, invalidGridf("%dx%d cells; both counts must be at least 1", rows, cols)
	}
	cellW := (srcW - (cols-1)*padX) / cols
	cellH := (srcH - (rows-1)*padY) / rows
	if cellW < 1 || cellH < 1 {
		return Grid{}, invalidGridf("%dx%d cells with %d,%d padding leave no room in a %dx%d image", rows, cols, padX, padY, srcW, srcH)
	}
	g := Grid{
		CellW: cellW, CellH: cellH,
		Rows: rows, Cols: cols,
		PadX: padX, PadY: padY,
		SrcW: srcW, SrcH: srcH,
		drive: driveCount,
	}
	return g, g.check()
}

// NewGrid builds a grid whose source dimensions are exactly the extent of
// rows x cols cells. Structural edits use it when assembling replacement
// sheets; the result is cell-size driven.
func NewGrid(cellW, cellH, rows, cols, padX, padY int) (Grid, error) {
	if cellW < 1 || cellH < 1 {
		return Grid{}, invalidGridf("cell size %dx%d; both dimensions must be at least 1", cellW, cellH)
	}
	if rows < 1 || cols < 1 {
		return Grid{}, invalidGridf("%dx%d cells; both counts must be at least 1", rows, cols)
	}
	if padX < 0 || padY < 0 {
		return Grid{}, invalidGridf("negative padding %d,%d", padX, padY)
	}
	return Grid{
		CellW: cellW, CellH: cellH,
		Rows: rows, Cols: cols,
		PadX: padX, PadY: padY,
		SrcW:  cols*cellW + (cols-1)*padX,
		SrcH:  rows*cellH + (rows-1)*padY,
		drive: driveCellSize,
	}, nil
}

func checkGridInputs(srcW, srcH, padX, padY int) error {
	if srcW < 1 || srcH < 1 {
		return invalidGridf("source image is %dx%d", srcW, srcH)
	}
	if padX < 0 || padY < 0 {
		return invalidGridf("negative padding %d,%d", padX, padY)
	}
	return nil
}

// check verifies the fit invariant: all cells plus the padding between them
// stay within the source dimensions.
func (g Grid) check() error {
	if w := g.Cols*g.CellW + (g.Cols-1)*g.PadX; w > g.SrcW {
		return invalidGridf("%d columns span %dpx, wider than the %dpx source", g.Cols, w, g.SrcW)
	}
	if h := g.Rows*g.CellH + (g.Rows-1)*g.PadY; h > g.SrcH {
		return invalidGridf("%d rows span %dpx, taller than the %dpx source", g.Rows, h, g.SrcH)
	}
	return nil
}

// Contains reports whether (row, col) addresses a frame of this grid.
func (g Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// FrameRect returns the pixel rectangle of the frame at (row, col).
func (g Grid) FrameRect(row, col int) (image.Rectangle, error) {
	if !g.Contains(row, col) {
		return image.Rectangle{}, &OutOfBoundsError{Row: row, Col: col, Rows: g.Rows, Cols: g.Cols}
	}
	x := col * (g.CellW + g.PadX)
	y := row * (g.CellH + g.PadY)
	return image.Rect(x, y, x+g.CellW, y+g.CellH), nil
}

// Extent returns the bounding rectangle of all cells, including the padding
// between them but excluding any remainder of the source image.
func (g Grid) Extent() image.Rectangle {
	return image.Rect(0, 0, g.Cols*g.CellW+(g.Cols-1)*g.PadX, g.Rows*g.CellH+(g.Rows-1)*g.PadY)
}

// FrameCount returns the number of frames in the grid.
func (g Grid) FrameCount() int {
	return g.Rows * g.Cols
}

// Coords returns every frame coordinate in reading order.
func (g Grid) Coords() []Coord {
	cs := make([]Coord, 0, g.FrameCount())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cs = append(cs, Coord{Row: row, Col: col})
		}
	}
	return cs
}

// Frames returns the rectangles of all frames in reading order.
func (g Grid) Frames() []image.Rectangle {
	rects := make([]image.Rectangle, 0, g.FrameCount())
	for _, c := range g.Coords() {
		r, err := g.FrameRect(c.Row, c.Col)
		if err != nil {
			// Coords only yields in-range coordinates.
			panic(err)
		}
		rects = append(rects, r)
	}
	return rects
}

// WithPadding derives a replacement grid with different padding. The input
// that drove this grid (cell size or counts) stays authoritative and the
// complementary values are derived again.
func (g Grid) WithPadding(padX, padY int) (Grid, error) {
	if g.drive == driveCount {
		return GridFromCount(g.SrcW, g.SrcH, g.Rows, g.Cols, padX, padY)
	}
	return GridFromCellSize(g.SrcW, g.SrcH, g.CellW, g.CellH, padX, padY)
}

// WithCellSize derives a replacement grid from a new manual cell size,
// which becomes the driving input.
func (g Grid) WithCellSize(cellW, cellH int) (Grid, error) {
	return GridFromCellSize(g.SrcW, g.SrcH, cellW, cellH, g.PadX, g.PadY)
}

// WithCount derives a replacement grid from new row and column counts,
// which become the driving input.
func (g Grid) WithCount(rows, cols int) (Grid, error) {
	return GridFromCount(g.SrcW, g.SrcH, rows, cols, g.PadX, g.PadY)
}

func (g Grid) String() string {
	return fmt.Sprintf("%dx%d frames of %dx%dpx (pad %d,%d) over %dx%dpx", g.Rows, g.Cols, g.CellW, g.CellH, g.PadX, g.PadY, g.SrcW, g.SrcH)
}

// GridSpec is the user-facing grid configuration: exactly one of cell size
// (CellW, CellH) or counts (Rows, Cols) drives the grid; the other pair is
// derived. Zero values mean unset.
type GridSpec struct {
	CellW, CellH int
	Rows, Cols   int
	PadX, PadY   int
}

// Validate checks that exactly one of cell size or counts is set and that
// the set values are usable, without binding to source dimensions yet.
func (sp GridSpec) Validate() error {
	bySize := sp.CellW != 0 || sp.CellH != 0
	byCount := sp.Rows != 0 || sp.Cols != 0
	switch {
	case bySize && byCount:
		return invalidGridf("cell size and row/column count are both set; exactly one may drive the grid")
	case !bySize && !byCount:
		return invalidGridf("neither cell size nor row/column count is set")
	case bySize && (sp.CellW < 1 || sp.CellH < 1):
		return invalidGridf("cell size %dx%d; both dimensions must be at least 1", sp.CellW, sp.CellH)
	case byCount && (sp.Rows < 1 || sp.Cols < 1):
		return invalidGridf("%dx%d cells; both counts must be at least 1", sp.Rows, sp.Cols)
	}
	if sp.PadX < 0 || sp.PadY < 0 {
		return invalidGridf("negative padding %d,%d", sp.PadX, sp.PadY)
	}
	return nil
}

// Build derives the grid for a srcW x srcH image.
func (sp GridSpec) Build(srcW, srcH int) (Grid, error) {
	if err := sp.Validate(); err != nil {
		return Grid{}, err
	}
	if sp.CellW != 0 || sp.CellH != 0 {
		return GridFromCellSize(srcW, srcH, sp.CellW, sp.CellH, sp.PadX, sp.PadY)
	}
	return GridFromCount(srcW, srcH, sp.Rows, sp.Cols, sp.PadX, sp.PadY)
}

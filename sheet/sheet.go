// Package sheet models a sprite sheet: a decoded pixel buffer paired with a
// grid that divides it into equally sized frames.
//
// The grid is pure geometry and owns no pixels; the Sheet type binds a grid
// to an RGBA buffer and extracts frames as independent copies. Structural
// changes (adding rows, applying padding and so on) live in the edit
// package and always produce replacement sheets.
package sheet

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/draw"
)

// Sheet pairs the canonical pixel buffer of a sprite sheet with the grid
// describing its frame layout.
//
// The buffer is always *image.RGBA with its origin at (0, 0). Right after
// loading it may be larger than the grid extent; the remainder belongs to
// no frame and is excluded from every operation. Sheets assembled by
// structural edits are sized exactly to the extent.
type Sheet struct {
	grid Grid
	img  *image.RGBA
}

// New pairs a pixel buffer with a grid. The buffer's origin must be (0, 0)
// and its dimensions must match the source dimensions the grid was built
// for.
func New(img *image.RGBA, g Grid) (*Sheet, error) {
	b := img.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 {
		return nil, invalidGridf("buffer origin is %v, not (0,0)", b.Min)
	}
	if b.Dx() != g.SrcW || b.Dy() != g.SrcH {
		return nil, invalidGridf("buffer is %dx%d but the grid was built for %dx%d", b.Dx(), b.Dy(), g.SrcW, g.SrcH)
	}
	return &Sheet{grid: g, img: img}, nil
}

// Grid returns the grid currently slicing the sheet.
func (s *Sheet) Grid() Grid {
	return s.grid
}

// Image returns the backing pixel buffer. Callers must treat it as
// read-only; Frame returns an independent copy when mutation is needed.
func (s *Sheet) Image() *image.RGBA {
	return s.img
}

// Bounds returns the pixel bounds of the backing buffer.
func (s *Sheet) Bounds() image.Rectangle {
	return s.img.Bounds()
}

// WithGrid returns a sheet slicing the same buffer with a replacement grid.
func (s *Sheet) WithGrid(g Grid) (*Sheet, error) {
	return New(s.img, g)
}

// Frame extracts an independent copy of the frame at (row, col). Later
// changes to the sheet do not affect the copy, nor the other way around.
func (s *Sheet) Frame(row, col int) (*image.RGBA, error) {
	r, err := s.grid.FrameRect(row, col)
	if err != nil {
		return nil, err
	}
	return s.copyRect(r), nil
}

// FrameAt is Frame addressed by a Coord.
func (s *Sheet) FrameAt(c Coord) (*image.RGBA, error) {
	return s.Frame(c.Row, c.Col)
}

// Frames resolves an ordered coordinate list into pixel copies, preserving
// the list's order.
func (s *Sheet) Frames(coords []Coord) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, 0, len(coords))
	for _, c := range coords {
		img, err := s.Frame(c.Row, c.Col)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

// AllFrames returns every frame in reading order.
func (s *Sheet) AllFrames() []*image.RGBA {
	out, err := s.Frames(s.grid.Coords())
	if err != nil {
		// Coords only yields in-range coordinates.
		panic(err)
	}
	return out
}

// Row returns copies of one row's frames, left to right.
func (s *Sheet) Row(row int) ([]*image.RGBA, error) {
	if _, err := s.grid.FrameRect(row, 0); err != nil {
		return nil, err
	}
	coords := make([]Coord, 0, s.grid.Cols)
	for col := 0; col < s.grid.Cols; col++ {
		coords = append(coords, Coord{Row: row, Col: col})
	}
	return s.Frames(coords)
}

// Column returns copies of one column's frames, top to bottom.
func (s *Sheet) Column(col int) ([]*image.RGBA, error) {
	if _, err := s.grid.FrameRect(0, col); err != nil {
		return nil, err
	}
	coords := make([]Coord, 0, s.grid.Rows)
	for row := 0; row < s.grid.Rows; row++ {
		coords = append(coords, Coord{Row: row, Col: col})
	}
	return s.Frames(coords)
}

// RowImage returns one row as a single contiguous image: the full row width
// including inter-cell padding, one cell high.
func (s *Sheet) RowImage(row int) (*image.RGBA, error) {
	if _, err := s.grid.FrameRect(row, 0); err != nil {
		return nil, err
	}
	y := row * (s.grid.CellH + s.grid.PadY)
	return s.copyRect(image.Rect(0, y, s.grid.Extent().Max.X, y+s.grid.CellH)), nil
}

// ColumnImage returns one column as a single contiguous image: one cell
// wide, the full column height including inter-cell padding.
func (s *Sheet) ColumnImage(col int) (*image.RGBA, error) {
	if _, err := s.grid.FrameRect(0, col); err != nil {
		return nil, err
	}
	x := col * (s.grid.CellW + s.grid.PadX)
	return s.copyRect(image.Rect(x, 0, x+s.grid.CellW, s.grid.Extent().Max.Y)), nil
}

// Signature returns a hash over the grid parameters and pixel data. Sheets
// with equal signatures render identically; the web layer uses it as an
// HTTP cache validator.
func (s *Sheet) Signature() uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s;", s.grid)
	h.Write(s.img.Pix)
	return h.Sum32()
}

func (s *Sheet) copyRect(r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), s.img, r.Min, draw.Src)
	return dst
}

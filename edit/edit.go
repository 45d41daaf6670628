// Package edit implements structural edits of a sprite sheet: duplicating,
// deleting and inserting rows, columns and frames, and permanently applying
// inter-cell padding.
//
// Every operation is copy-on-write: the input sheet is left untouched and a
// replacement sheet with a canonical buffer, sized exactly to the new grid
// extent, comes back. Frames the operation does not touch keep their pixel
// data byte for byte; any remainder pixels outside the old grid extent are
// not carried over.
package edit

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites/sheet"
)

// frameSource yields the frame to place at (row, col) of a result sheet.
// A nil image means the frame stays fully transparent.
type frameSource func(row, col int) (*image.RGBA, error)

// assemble builds a canonical sheet over grid g, pulling every frame from
// src and placing it at its frame rect.
func assemble(g sheet.Grid, src frameSource) (*sheet.Sheet, error) {
	buf := image.NewRGBA(g.Extent())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			f, err := src(row, col)
			if err != nil {
				return nil, err
			}
			if f == nil {
				continue
			}
			r, err := g.FrameRect(row, col)
			if err != nil {
				return nil, err
			}
			draw.Draw(buf, r, f, f.Bounds().Min, draw.Src)
		}
	}
	return sheet.New(buf, g)
}

// DuplicateRow inserts a copy of the given row immediately below it.
func DuplicateRow(s *sheet.Sheet, row int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(row, 0); err != nil {
		return nil, err
	}
	ng, err := sheet.NewGrid(g.CellW, g.CellH, g.Rows+1, g.Cols, g.PadX, g.PadY)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("duplicating row %d of %s", row, g)
	return assemble(ng, func(r, c int) (*image.RGBA, error) {
		if r > row {
			r--
		}
		return s.Frame(r, c)
	})
}

// DuplicateColumn inserts a copy of the given column immediately to its
// right.
func DuplicateColumn(s *sheet.Sheet, col int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(0, col); err != nil {
		return nil, err
	}
	ng, err := sheet.NewGrid(g.CellW, g.CellH, g.Rows, g.Cols+1, g.PadX, g.PadY)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("duplicating column %d of %s", col, g)
	return assemble(ng, func(r, c int) (*image.RGBA, error) {
		if c > col {
			c--
		}
		return s.Frame(r, c)
	})
}

// DeleteRow removes the given row; rows below shift up. Removing the only
// row is refused with a LastRowColumnError.
func DeleteRow(s *sheet.Sheet, row int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(row, 0); err != nil {
		return nil, err
	}
	if g.Rows == 1 {
		return nil, &LastRowColumnError{Axis: Rows}
	}
	ng, err := sheet.NewGrid(g.CellW, g.CellH, g.Rows-1, g.Cols, g.PadX, g.PadY)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("deleting row %d of %s", row, g)
	return assemble(ng, func(r, c int) (*image.RGBA, error) {
		if r >= row {
			r++
		}
		return s.Frame(r, c)
	})
}

// DeleteColumn removes the given column; columns to its right shift left.
// Removing the only column is refused with a LastRowColumnError.
func DeleteColumn(s *sheet.Sheet, col int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(0, col); err != nil {
		return nil, err
	}
	if g.Cols == 1 {
		return nil, &LastRowColumnError{Axis: Columns}
	}
	ng, err := sheet.NewGrid(g.CellW, g.CellH, g.Rows, g.Cols-1, g.PadX, g.PadY)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("deleting column %d of %s", col, g)
	return assemble(ng, func(r, c int) (*image.RGBA, error) {
		if c >= col {
			c++
		}
		return s.Frame(r, c)
	})
}

// InsertRowAfter inserts a fully transparent row below the anchor row.
func InsertRowAfter(s *sheet.Sheet, row int) (*sheet.Sheet, error) {
	return insertRow(s, row, row+1)
}

// InsertRowBefore inserts a fully transparent row above the anchor row.
func InsertRowBefore(s *sheet.Sheet, row int) (*sheet.Sheet, error) {
	return insertRow(s, row, row)
}

func insertRow(s *sheet.Sheet, anchor, at int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(anchor, 0); err != nil {
		return nil, err
	}
	ng, err := sheet.NewGrid(g.CellW, g.CellH, g.Rows+1, g.Cols, g.PadX, g.PadY)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("inserting blank row at %d of %s", at, g)
	return assemble(ng, func(r, c int) (*image.RGBA, error) {
		switch {
		case r == at:
			return nil, nil
		case r > at:
			return s.Frame(r-1, c)
		default:
			return s.Frame(r, c)
		}
	})
}

// InsertColumnAfter inserts a fully transparent column right of the anchor
// column.
func InsertColumnAfter(s *sheet.Sheet, col int) (*sheet.Sheet, error) {
	return insertColumn(s, col, col+1)
}

// InsertColumnBefore inserts a fully transparent column left of the anchor
// column.
func InsertColumnBefore(s *sheet.Sheet, col int) (*sheet.Sheet, error) {
	return insertColumn(s, col, col)
}

func insertColumn(s *sheet.Sheet, anchor, at int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(0, anchor); err != nil {
		return nil, err
	}
	ng, err := sheet.NewGrid(g.CellW, g.CellH, g.Rows, g.Cols+1, g.PadX, g.PadY)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("inserting blank column at %d of %s", at, g)
	return assemble(ng, func(r, c int) (*image.RGBA, error) {
		switch {
		case c == at:
			return nil, nil
		case c > at:
			return s.Frame(r, c-1)
		default:
			return s.Frame(r, c)
		}
	})
}

// DuplicateFrame inserts a copy of a frame immediately to its right,
// shifting the rest of the row. The frame sequence must be linear, so this
// is legal only on single-row sheets; anything else gets a
// GridIrregularityError.
func DuplicateFrame(s *sheet.Sheet, row, col int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(row, col); err != nil {
		return nil, err
	}
	if g.Rows != 1 {
		return nil, &GridIrregularityError{Op: "duplicating a frame", Rows: g.Rows}
	}
	return DuplicateColumn(s, col)
}

// DeleteFrame removes a frame, shifting the rest of the row left. Like
// DuplicateFrame it is legal only on single-row sheets; deleting the only
// frame of the row is refused with a LastRowColumnError.
func DeleteFrame(s *sheet.Sheet, row, col int) (*sheet.Sheet, error) {
	g := s.Grid()
	if _, err := g.FrameRect(row, col); err != nil {
		return nil, err
	}
	if g.Rows != 1 {
		return nil, &GridIrregularityError{Op: "deleting a frame", Rows: g.Rows}
	}
	return DeleteColumn(s, col)
}

// ApplyPadding makes the grid's padding permanent: every frame is cropped
// by padX pixels on its left and right edges and padY on its top and bottom
// edges, the cropped frames are reassembled contiguously, and the
// replacement grid carries the smaller cell size with zero padding.
func ApplyPadding(s *sheet.Sheet) (*sheet.Sheet, error) {
	g := s.Grid()
	cw := g.CellW - 2*g.PadX
	ch := g.CellH - 2*g.PadY
	if cw < 1 || ch < 1 {
		return nil, &sheet.InvalidGridError{Reason: fmt.Sprintf("padding %d,%d consumes the whole %dx%d cell", g.PadX, g.PadY, g.CellW, g.CellH)}
	}
	ng, err := sheet.NewGrid(cw, ch, g.Rows, g.Cols, 0, 0)
	if err != nil {
		return nil, err
	}
	glog.V(2).Infof("applying padding %d,%d to %s", g.PadX, g.PadY, g)
	padX, padY := g.PadX, g.PadY
	return assemble(ng, func(r, c int) (*image.RGBA, error) {
		f, err := s.Frame(r, c)
		if err != nil {
			return nil, err
		}
		if padX == 0 && padY == 0 {
			return f, nil
		}
		return cropCenter(f, padX, padY), nil
	})
}

// cropCenter cuts padX pixels off the left and right edges of f and padY
// off its top and bottom edges.
func cropCenter(f *image.RGBA, padX, padY int) *image.RGBA {
	b := f.Bounds()
	r := image.Rect(padX, padY, b.Dx()-padX, b.Dy()-padY)
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), f, r.Min, draw.Src)
	return dst
}

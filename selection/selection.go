// Package selection tracks which frames of a sprite sheet are selected.
//
// The engine is a pure state machine over grid coordinates and never
// touches pixels. It is bound to the dimensions of the grid it was built
// for; a replacement grid calls for a replacement engine, which is how a
// selection is kept from outliving the coordinates it refers to.
package selection

import (
	"errors"
	"fmt"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-sprites/sheet"
)

// Mode says how the current selection was made.
type Mode int

const (
	None Mode = iota
	Single
	Row
	Column
	Custom
)

func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Single:
		return "single"
	case Row:
		return "row"
	case Column:
		return "column"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Modifier is the bitmask of keyboard modifiers held during a click.
type Modifier uint8

const (
	Shift Modifier = 1 << iota
	Ctrl
)

// ErrNotDragging is returned by DragOver when no drag is in progress.
var ErrNotDragging = errors.New("no drag in progress")

// Engine accumulates the selection state for one grid.
type Engine struct {
	grid     sheet.Grid
	mode     Mode
	cells    []sheet.Coord
	dragging bool
}

// New returns an empty selection over g's coordinates.
func New(g sheet.Grid) *Engine {
	return &Engine{grid: g}
}

// Click applies a single click on frame (row, col) with the given modifier
// keys held.
//
// Without modifiers just the clicked frame is selected. Shift selects the
// frame's whole row left to right, Ctrl its whole column top to bottom.
// Ctrl+Shift builds a custom ordered set: arriving from any other mode it
// discards the previous selection and starts a fresh set holding only the
// clicked frame; in custom mode it toggles, appending absent frames and
// removing present ones.
func (e *Engine) Click(row, col int, mods Modifier) error {
	if err := e.checkCoord(row, col); err != nil {
		return err
	}
	switch {
	case mods&Shift != 0 && mods&Ctrl != 0:
		e.toggleCustom(row, col)
	case mods&Shift != 0:
		e.selectRow(row)
	case mods&Ctrl != 0:
		e.selectColumn(col)
	default:
		e.mode = Single
		e.cells = []sheet.Coord{{Row: row, Col: col}}
	}
	glog.V(2).Infof("selection now: %s", e.Describe())
	return nil
}

// BeginDrag starts a drag selection at (row, col), discarding whatever was
// selected before. Until EndDrag, DragOver accumulates every frame the
// pointer crosses, each at most once, in the order first touched.
func (e *Engine) BeginDrag(row, col int) error {
	if err := e.checkCoord(row, col); err != nil {
		return err
	}
	e.mode = Custom
	e.dragging = true
	e.cells = []sheet.Coord{{Row: row, Col: col}}
	return nil
}

// DragOver extends a drag in progress onto (row, col).
func (e *Engine) DragOver(row, col int) error {
	if !e.dragging {
		return ErrNotDragging
	}
	if err := e.checkCoord(row, col); err != nil {
		return err
	}
	c := sheet.Coord{Row: row, Col: col}
	for _, have := range e.cells {
		if have == c {
			return nil
		}
	}
	e.cells = append(e.cells, c)
	return nil
}

// EndDrag finishes a drag selection; the accumulated set stays selected.
func (e *Engine) EndDrag() {
	e.dragging = false
}

// Clear empties the selection.
func (e *Engine) Clear() {
	e.mode = None
	e.cells = nil
	e.dragging = false
}

// Mode returns how the current selection was made.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Len returns the number of selected frames.
func (e *Engine) Len() int {
	return len(e.cells)
}

// Cells returns the selected coordinates in selection order.
func (e *Engine) Cells() []sheet.Coord {
	out := make([]sheet.Coord, len(e.cells))
	copy(out, e.cells)
	return out
}

// Contains reports whether frame (row, col) is selected.
func (e *Engine) Contains(row, col int) bool {
	for _, have := range e.cells {
		if have.Row == row && have.Col == col {
			return true
		}
	}
	return false
}

// Describe returns a short label for the selection, the kind a status bar
// shows.
func (e *Engine) Describe() string {
	switch e.mode {
	case Single:
		return fmt.Sprintf("frame %s", e.cells[0])
	case Row:
		return fmt.Sprintf("row %d", e.cells[0].Row)
	case Column:
		return fmt.Sprintf("column %d", e.cells[0].Col)
	case Custom:
		if len(e.cells) == 1 {
			return "1 frame"
		}
		return fmt.Sprintf("%d frames", len(e.cells))
	}
	return "no selection"
}

func (e *Engine) selectRow(row int) {
	e.mode = Row
	cells := make([]sheet.Coord, 0, e.grid.Cols)
	for col := 0; col < e.grid.Cols; col++ {
		cells = append(cells, sheet.Coord{Row: row, Col: col})
	}
	e.cells = cells
}

func (e *Engine) selectColumn(col int) {
	e.mode = Column
	cells := make([]sheet.Coord, 0, e.grid.Rows)
	for row := 0; row < e.grid.Rows; row++ {
		cells = append(cells, sheet.Coord{Row: row, Col: col})
	}
	e.cells = cells
}

func (e *Engine) toggleCustom(row, col int) {
	c := sheet.Coord{Row: row, Col: col}
	if e.mode != Custom {
		e.mode = Custom
		e.cells = []sheet.Coord{c}
		return
	}
	for i, have := range e.cells {
		if have == c {
			e.cells = append(e.cells[:i], e.cells[i+1:]...)
			return
		}
	}
	e.cells = append(e.cells, c)
}

func (e *Engine) checkCoord(row, col int) error {
	if !e.grid.Contains(row, col) {
		return &sheet.OutOfBoundsError{Row: row, Col: col, Rows: e.grid.Rows, Cols: e.grid.Cols}
	}
	return nil
}

// Package session ties one loaded sheet to the selection over it. A
// Session is what an interactive frontend holds between clicks: grid
// parameter changes and structural edits swap in a replacement sheet and
// reset the selection, since the old coordinates no longer name the same
// frames.
//
// Sessions are not safe for concurrent use; a caller serving several
// goroutines guards the session itself.
package session

import (
	"fmt"
	"image"

	"badc0de.net/pkg/go-sprites/edit"
	"badc0de.net/pkg/go-sprites/export"
	"badc0de.net/pkg/go-sprites/selection"
	"badc0de.net/pkg/go-sprites/sheet"
)

// Session owns the sheet being edited and the selection on top of it.
type Session struct {
	sh  *sheet.Sheet
	sel *selection.Engine
}

// Load opens the image at path and starts a session over it with an empty
// selection.
func Load(path string, spec sheet.GridSpec) (*Session, error) {
	sh, err := sheet.Load(path, spec)
	if err != nil {
		return nil, err
	}
	return &Session{sh: sh, sel: selection.New(sh.Grid())}, nil
}

// FromImage starts a session over an already decoded image.
func FromImage(img image.Image, spec sheet.GridSpec) (*Session, error) {
	sh, err := sheet.FromImage(img, spec)
	if err != nil {
		return nil, err
	}
	return &Session{sh: sh, sel: selection.New(sh.Grid())}, nil
}

// swap installs a replacement sheet. The grid changed, so the selection is
// started over.
func (s *Session) swap(sh *sheet.Sheet) {
	s.sh = sh
	s.sel = selection.New(sh.Grid())
}

// Sheet returns the current sheet.
func (s *Session) Sheet() *sheet.Sheet {
	return s.sh
}

// Grid returns the current grid.
func (s *Session) Grid() sheet.Grid {
	return s.sh.Grid()
}

// Signature identifies the current grid and pixel content, for change
// detection and HTTP validators.
func (s *Session) Signature() uint32 {
	return s.sh.Signature()
}

// Describe returns a status line covering the grid and the selection.
func (s *Session) Describe() string {
	return fmt.Sprintf("%s; %s", s.sh.Grid(), s.sel.Describe())
}

// SetCellSize reslices the sheet with a manual cell size, which becomes
// the driving input. Clears the selection.
func (s *Session) SetCellSize(cellW, cellH int) error {
	g, err := s.sh.Grid().WithCellSize(cellW, cellH)
	if err != nil {
		return err
	}
	return s.regrid(g)
}

// SetGridCount reslices the sheet with manual row and column counts, which
// become the driving input. Clears the selection.
func (s *Session) SetGridCount(rows, cols int) error {
	g, err := s.sh.Grid().WithCount(rows, cols)
	if err != nil {
		return err
	}
	return s.regrid(g)
}

// SetPadding changes the gutter size between cells, re-deriving whichever
// values the driving input does not pin. Clears the selection.
func (s *Session) SetPadding(padX, padY int) error {
	g, err := s.sh.Grid().WithPadding(padX, padY)
	if err != nil {
		return err
	}
	return s.regrid(g)
}

func (s *Session) regrid(g sheet.Grid) error {
	sh, err := s.sh.WithGrid(g)
	if err != nil {
		return err
	}
	s.swap(sh)
	return nil
}

// The structural edits delegate to the edit package and swap in the result;
// each clears the selection.

func (s *Session) DuplicateRow(row int) error    { return s.edit(edit.DuplicateRow(s.sh, row)) }
func (s *Session) DeleteRow(row int) error       { return s.edit(edit.DeleteRow(s.sh, row)) }
func (s *Session) DuplicateColumn(col int) error { return s.edit(edit.DuplicateColumn(s.sh, col)) }
func (s *Session) DeleteColumn(col int) error    { return s.edit(edit.DeleteColumn(s.sh, col)) }

func (s *Session) InsertRowAfter(row int) error     { return s.edit(edit.InsertRowAfter(s.sh, row)) }
func (s *Session) InsertRowBefore(row int) error    { return s.edit(edit.InsertRowBefore(s.sh, row)) }
func (s *Session) InsertColumnAfter(col int) error  { return s.edit(edit.InsertColumnAfter(s.sh, col)) }
func (s *Session) InsertColumnBefore(col int) error { return s.edit(edit.InsertColumnBefore(s.sh, col)) }

func (s *Session) DuplicateFrame(row, col int) error {
	return s.edit(edit.DuplicateFrame(s.sh, row, col))
}

func (s *Session) DeleteFrame(row, col int) error {
	return s.edit(edit.DeleteFrame(s.sh, row, col))
}

// ApplyPadding bakes the configured padding into the pixels, trimming every
// frame to its interior. Clears the selection.
func (s *Session) ApplyPadding() error {
	return s.edit(edit.ApplyPadding(s.sh))
}

func (s *Session) edit(sh *sheet.Sheet, err error) error {
	if err != nil {
		return err
	}
	s.swap(sh)
	return nil
}

// The selection events forward to the engine; failed events leave the
// selection alone.

func (s *Session) Click(row, col int, mods selection.Modifier) error {
	return s.sel.Click(row, col, mods)
}

func (s *Session) BeginDrag(row, col int) error { return s.sel.BeginDrag(row, col) }
func (s *Session) DragOver(row, col int) error  { return s.sel.DragOver(row, col) }
func (s *Session) EndDrag()                     { s.sel.EndDrag() }
func (s *Session) ClearSelection()              { s.sel.Clear() }

// SelectionMode returns the current selection mode.
func (s *Session) SelectionMode() selection.Mode {
	return s.sel.Mode()
}

// SelectedCells returns the selected coordinates in selection order.
func (s *Session) SelectedCells() []sheet.Coord {
	return s.sel.Cells()
}

// Selected reports whether the frame at (row, col) is selected.
func (s *Session) Selected(row, col int) bool {
	return s.sel.Contains(row, col)
}

// SelectedFrames resolves the selection to pixel copies, in selection
// order.
func (s *Session) SelectedFrames() ([]*image.RGBA, error) {
	return s.sh.Frames(s.sel.Cells())
}

// ExportSelection writes the selected frames as kind to dest: a folder for
// Frames, a file path otherwise. An empty selection returns
// export.ErrEmptySelection.
func (s *Session) ExportSelection(kind export.Kind, dest string, o export.Options) error {
	frames, err := s.SelectedFrames()
	if err != nil {
		return err
	}
	return export.Write(kind, dest, frames, o)
}

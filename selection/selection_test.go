package selection

import (
	"errors"
	"testing"

	"badc0de.net/pkg/go-sprites/sheet"
	"badc0de.net/pkg/go-sprites/ttesting"
)

// grid3x4 returns a 3-row, 4-column grid.
func grid3x4(t *testing.T) sheet.Grid {
	t.Helper()
	g, err := sheet.GridFromCellSize(128, 96, 32, 32, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	return g
}

func assertCells(t *testing.T, name string, got, want []sheet.Coord) {
	t.Run(name, func(t *testing.T) {
		if len(got) != len(want) {
			t.Fatalf("got %v; want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v; want %v", got, want)
			}
		}
	})
}

func TestClickSelectsSingleFrame(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(1, 2, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}
	if e.Mode() != Single {
		t.Errorf("mode: got %s; want %s", e.Mode(), Single)
	}
	assertCells(t, "cells", e.Cells(), []sheet.Coord{{Row: 1, Col: 2}})

	// A later plain click replaces the selection.
	if err := e.Click(0, 0, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}
	assertCells(t, "replaced", e.Cells(), []sheet.Coord{{Row: 0, Col: 0}})
}

func TestShiftClickSelectsRow(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(2, 0, Shift); err != nil {
		t.Fatalf("failed to shift-click: %s", err)
	}
	if e.Mode() != Row {
		t.Errorf("mode: got %s; want %s", e.Mode(), Row)
	}
	assertCells(t, "cells", e.Cells(), []sheet.Coord{
		{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}, {Row: 2, Col: 3},
	})
}

func TestCtrlClickSelectsColumn(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(0, 3, Ctrl); err != nil {
		t.Fatalf("failed to ctrl-click: %s", err)
	}
	if e.Mode() != Column {
		t.Errorf("mode: got %s; want %s", e.Mode(), Column)
	}
	assertCells(t, "cells", e.Cells(), []sheet.Coord{
		{Row: 0, Col: 3}, {Row: 1, Col: 3}, {Row: 2, Col: 3},
	})
}

func TestCtrlShiftStartsFreshSet(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(2, 0, Shift); err != nil {
		t.Fatalf("failed to shift-click: %s", err)
	}

	// Arriving from row mode, ctrl+shift drops the row and starts over with
	// just the clicked frame.
	if err := e.Click(2, 1, Shift|Ctrl); err != nil {
		t.Fatalf("failed to ctrl+shift-click: %s", err)
	}
	if e.Mode() != Custom {
		t.Errorf("mode: got %s; want %s", e.Mode(), Custom)
	}
	assertCells(t, "fresh", e.Cells(), []sheet.Coord{{Row: 2, Col: 1}})

	// Toggling the same frame off leaves an empty custom selection.
	if err := e.Click(2, 1, Shift|Ctrl); err != nil {
		t.Fatalf("failed to toggle off: %s", err)
	}
	if e.Mode() != Custom {
		t.Errorf("mode after toggle: got %s; want %s", e.Mode(), Custom)
	}
	ttesting.AssertEqualInt(t, "emptied", e.Len(), 0)
}

func TestCtrlShiftOnPreviouslySelectedCell(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(2, 0, Shift); err != nil {
		t.Fatalf("failed to shift-click: %s", err)
	}

	// (2,0) sits in the row selection, but the first ctrl+shift-click starts
	// fresh instead of toggling it away.
	if err := e.Click(2, 0, Shift|Ctrl); err != nil {
		t.Fatalf("failed to ctrl+shift-click: %s", err)
	}
	assertCells(t, "cells", e.Cells(), []sheet.Coord{{Row: 2, Col: 0}})
}

func TestCustomToggleKeepsOrder(t *testing.T) {
	e := New(grid3x4(t))
	for _, c := range []sheet.Coord{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}} {
		if err := e.Click(c.Row, c.Col, Shift|Ctrl); err != nil {
			t.Fatalf("failed to ctrl+shift-click %s: %s", c, err)
		}
	}
	assertCells(t, "initial", e.Cells(), []sheet.Coord{
		{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2},
	})

	if err := e.Click(1, 1, Shift|Ctrl); err != nil {
		t.Fatalf("failed to toggle off: %s", err)
	}
	assertCells(t, "removed", e.Cells(), []sheet.Coord{
		{Row: 0, Col: 0}, {Row: 2, Col: 2},
	})

	if err := e.Click(1, 1, Shift|Ctrl); err != nil {
		t.Fatalf("failed to re-add: %s", err)
	}
	assertCells(t, "reAdded", e.Cells(), []sheet.Coord{
		{Row: 0, Col: 0}, {Row: 2, Col: 2}, {Row: 1, Col: 1},
	})
}

func TestDragAccumulatesFirstTouchOrder(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(0, 3, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}

	if err := e.BeginDrag(0, 0); err != nil {
		t.Fatalf("failed to begin drag: %s", err)
	}
	for _, c := range []sheet.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 1, Col: 2}} {
		if err := e.DragOver(c.Row, c.Col); err != nil {
			t.Fatalf("failed to drag over %s: %s", c, err)
		}
	}
	e.EndDrag()

	if e.Mode() != Custom {
		t.Errorf("mode: got %s; want %s", e.Mode(), Custom)
	}
	// The prior click is gone; revisited cells appear once, at their first
	// position.
	assertCells(t, "cells", e.Cells(), []sheet.Coord{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 2},
	})
}

func TestDragOverWithoutBegin(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.DragOver(0, 0); !errors.Is(err, ErrNotDragging) {
		t.Errorf("got %v; want ErrNotDragging", err)
	}
}

func TestOutOfRangeEventsLeaveStateAlone(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(1, 1, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}

	var oob *sheet.OutOfBoundsError
	if err := e.Click(3, 0, 0); !errors.As(err, &oob) {
		t.Fatalf("got %v; want an OutOfBoundsError", err)
	}
	if err := e.Click(0, 4, Shift); !errors.As(err, &oob) {
		t.Fatalf("got %v; want an OutOfBoundsError", err)
	}
	assertCells(t, "unchanged", e.Cells(), []sheet.Coord{{Row: 1, Col: 1}})
	if e.Mode() != Single {
		t.Errorf("mode: got %s; want %s", e.Mode(), Single)
	}
}

func TestClear(t *testing.T) {
	e := New(grid3x4(t))
	if err := e.Click(0, 0, Shift); err != nil {
		t.Fatalf("failed to shift-click: %s", err)
	}
	e.Clear()
	if e.Mode() != None {
		t.Errorf("mode: got %s; want %s", e.Mode(), None)
	}
	ttesting.AssertEqualInt(t, "len", e.Len(), 0)
}

func TestDescribe(t *testing.T) {
	e := New(grid3x4(t))
	ttesting.AssertEqualString(t, "empty", e.Describe(), "no selection")

	if err := e.Click(2, 1, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}
	ttesting.AssertEqualString(t, "single", e.Describe(), "frame (2,1)")

	if err := e.Click(2, 0, Shift); err != nil {
		t.Fatalf("failed to shift-click: %s", err)
	}
	ttesting.AssertEqualString(t, "row", e.Describe(), "row 2")

	if err := e.Click(0, 3, Ctrl); err != nil {
		t.Fatalf("failed to ctrl-click: %s", err)
	}
	ttesting.AssertEqualString(t, "column", e.Describe(), "column 3")

	if err := e.Click(0, 0, Shift|Ctrl); err != nil {
		t.Fatalf("failed to ctrl+shift-click: %s", err)
	}
	ttesting.AssertEqualString(t, "customOne", e.Describe(), "1 frame")
	if err := e.Click(1, 0, Shift|Ctrl); err != nil {
		t.Fatalf("failed to ctrl+shift-click: %s", err)
	}
	ttesting.AssertEqualString(t, "customTwo", e.Describe(), "2 frames")
}

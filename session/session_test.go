package session

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites/export"
	"badc0de.net/pkg/go-sprites/selection"
	"badc0de.net/pkg/go-sprites/sheet"
	"badc0de.net/pkg/go-sprites/ttesting"
)

// paintedSession builds a rows x cols session of 16px frames, each frame
// filled with its ttesting.FrameColor.
func paintedSession(t *testing.T, rows, cols int) *Session {
	t.Helper()
	const cell = 16
	img := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cell))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rect := image.Rect(c*cell, r*cell, (c+1)*cell, (r+1)*cell)
			draw.Draw(img, rect, image.NewUniform(ttesting.FrameColor(r, c)), image.Point{}, draw.Src)
		}
	}
	s, err := FromImage(img, sheet.GridSpec{CellW: cell, CellH: cell})
	if err != nil {
		t.Fatalf("failed to build session: %s", err)
	}
	return s
}

func TestLoadStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.png")
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %s", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	f.Close()

	s, err := Load(path, sheet.GridSpec{CellW: 16, CellH: 16})
	if err != nil {
		t.Fatalf("failed to load session: %s", err)
	}
	ttesting.AssertEqualInt(t, "rows", s.Grid().Rows, 2)
	ttesting.AssertEqualInt(t, "cols", s.Grid().Cols, 4)
	if s.SelectionMode() != selection.None {
		t.Errorf("fresh session mode is %v; want %v", s.SelectionMode(), selection.None)
	}
}

func TestGridChangeClearsSelection(t *testing.T) {
	s := paintedSession(t, 2, 4)
	if err := s.Click(1, 0, selection.Shift); err != nil {
		t.Fatalf("failed to select row: %s", err)
	}
	ttesting.AssertEqualInt(t, "selected", len(s.SelectedCells()), 4)

	if err := s.SetCellSize(8, 8); err != nil {
		t.Fatalf("failed to change cell size: %s", err)
	}
	ttesting.AssertEqualInt(t, "rows after reslice", s.Grid().Rows, 4)
	ttesting.AssertEqualInt(t, "cols after reslice", s.Grid().Cols, 8)
	if s.SelectionMode() != selection.None {
		t.Errorf("mode after reslice is %v; want %v", s.SelectionMode(), selection.None)
	}
	ttesting.AssertEqualInt(t, "selected after reslice", len(s.SelectedCells()), 0)
}

func TestSetGridCountClearsSelection(t *testing.T) {
	s := paintedSession(t, 2, 4)
	if err := s.Click(0, 0, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}
	if err := s.SetGridCount(1, 8); err != nil {
		t.Fatalf("failed to set counts: %s", err)
	}
	ttesting.AssertEqualInt(t, "cell w", s.Grid().CellW, 8)
	ttesting.AssertEqualInt(t, "cell h", s.Grid().CellH, 32)
	if s.SelectionMode() != selection.None {
		t.Errorf("mode is %v; want %v", s.SelectionMode(), selection.None)
	}
}

func TestSetPaddingKeepsDrivingCellSize(t *testing.T) {
	s := paintedSession(t, 2, 4)
	if err := s.SetPadding(4, 4); err != nil {
		t.Fatalf("failed to set padding: %s", err)
	}
	// Cell size drove the grid, so it stays 16 and the counts shrink to
	// what fits with 4px gutters: (64+4)/(16+4) = 3 columns.
	ttesting.AssertEqualInt(t, "cell w", s.Grid().CellW, 16)
	ttesting.AssertEqualInt(t, "cols", s.Grid().Cols, 3)
	ttesting.AssertEqualInt(t, "rows", s.Grid().Rows, 1)
}

func TestEditsClearSelection(t *testing.T) {
	s := paintedSession(t, 2, 3)
	if err := s.Click(0, 1, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}
	if err := s.DuplicateRow(0); err != nil {
		t.Fatalf("failed to duplicate row: %s", err)
	}
	ttesting.AssertEqualInt(t, "rows", s.Grid().Rows, 3)
	if s.SelectionMode() != selection.None {
		t.Errorf("mode after edit is %v; want %v", s.SelectionMode(), selection.None)
	}
}

func TestFailedEditLeavesSessionAlone(t *testing.T) {
	s := paintedSession(t, 1, 3)
	if err := s.Click(0, 2, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}
	before := s.Signature()

	if err := s.DeleteRow(0); err == nil {
		t.Fatal("deleting the only row succeeded")
	}
	ttesting.AssertEqualUint32(t, "signature", s.Signature(), before)
	ttesting.AssertEqualBool(t, "still selected", s.Selected(0, 2), true)
}

func TestSignatureTracksEdits(t *testing.T) {
	s := paintedSession(t, 2, 3)
	before := s.Signature()
	if err := s.DuplicateColumn(1); err != nil {
		t.Fatalf("failed to duplicate column: %s", err)
	}
	if s.Signature() == before {
		t.Error("signature unchanged after a structural edit")
	}
}

func TestExportSelectionOrder(t *testing.T) {
	s := paintedSession(t, 2, 3)
	// Build a custom selection in a deliberate, non-reading order.
	order := []sheet.Coord{{Row: 1, Col: 2}, {Row: 0, Col: 0}, {Row: 1, Col: 0}}
	for _, c := range order {
		if err := s.Click(c.Row, c.Col, selection.Ctrl|selection.Shift); err != nil {
			t.Fatalf("failed to toggle %v: %s", c, err)
		}
	}

	dir := filepath.Join(t.TempDir(), "frames")
	if err := s.ExportSelection(export.Frames, dir, export.Options{}); err != nil {
		t.Fatalf("failed to export selection: %s", err)
	}

	for i, c := range order {
		path := filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i))
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("failed to open %s: %s", path, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("failed to decode %s: %s", path, err)
		}
		want := ttesting.FrameColor(c.Row, c.Col)
		r, g, b, a := img.At(8, 8).RGBA()
		got := [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		if got != [4]uint8{want.R, want.G, want.B, want.A} {
			t.Errorf("frame %d is %v; want colour of %v", i, got, c)
		}
	}
}

func TestExportEmptySelection(t *testing.T) {
	s := paintedSession(t, 2, 3)
	err := s.ExportSelection(export.GIF, filepath.Join(t.TempDir(), "anim.gif"), export.Options{})
	if !errors.Is(err, export.ErrEmptySelection) {
		t.Errorf("got %v; want ErrEmptySelection", err)
	}
}

func TestDescribe(t *testing.T) {
	s := paintedSession(t, 2, 3)
	if got := s.Describe(); !strings.Contains(got, "no selection") {
		t.Errorf("fresh describe %q does not mention the empty selection", got)
	}
	if err := s.Click(1, 2, 0); err != nil {
		t.Fatalf("failed to click: %s", err)
	}
	if got := s.Describe(); !strings.Contains(got, "frame (1,2)") {
		t.Errorf("describe %q does not name the selected frame", got)
	}
}

package sheet

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"badc0de.net/pkg/go-sprites/ttesting"
)

func TestGridFromCellSize(t *testing.T) {
	g, err := GridFromCellSize(64, 64, 32, 32, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "rows", g.Rows, 2)
	ttesting.AssertEqualInt(t, "cols", g.Cols, 2)
	ttesting.AssertEqualInt(t, "frameCount", g.FrameCount(), 4)
	ttesting.AssertEqualRect(t, "extent", g.Extent(), image.Rect(0, 0, 64, 64))

	r, err := g.FrameRect(1, 1)
	if err != nil {
		t.Fatalf("failed to get frame rect: %s", err)
	}
	ttesting.AssertEqualRect(t, "frame(1,1)", r, image.Rect(32, 32, 64, 64))
}

func TestGridFromCellSizeRemainder(t *testing.T) {
	// 70x44 does not divide evenly; the 6x4 pixel remainder belongs to no
	// frame.
	g, err := GridFromCellSize(70, 44, 32, 20, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "rows", g.Rows, 2)
	ttesting.AssertEqualInt(t, "cols", g.Cols, 2)
	ttesting.AssertEqualRect(t, "extent", g.Extent(), image.Rect(0, 0, 64, 40))
}

func TestGridFromCount(t *testing.T) {
	g, err := GridFromCount(128, 96, 3, 4, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "cellW", g.CellW, 32)
	ttesting.AssertEqualInt(t, "cellH", g.CellH, 32)

	// Feeding the derived cell size back in derives the original counts.
	g2, err := GridFromCellSize(128, 96, g.CellW, g.CellH, 0, 0)
	if err != nil {
		t.Fatalf("failed to build round-trip grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "roundTripRows", g2.Rows, 3)
	ttesting.AssertEqualInt(t, "roundTripCols", g2.Cols, 4)
}

func TestGridDerivationIdempotent(t *testing.T) {
	a, err := GridFromCellSize(100, 60, 24, 24, 2, 2)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	b, err := GridFromCellSize(100, 60, 24, 24, 2, 2)
	if err != nil {
		t.Fatalf("failed to build grid again: %s", err)
	}
	if a != b {
		t.Errorf("same inputs made different grids: %v vs %v", a, b)
	}
}

func TestGridPaddingBetweenCells(t *testing.T) {
	// 2*32 + 1*4 = 68 exactly; padding sits between cells, with no outer
	// margin.
	g, err := GridFromCellSize(68, 68, 32, 32, 4, 4)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "rows", g.Rows, 2)
	ttesting.AssertEqualInt(t, "cols", g.Cols, 2)

	r00, err := g.FrameRect(0, 0)
	if err != nil {
		t.Fatalf("failed to get frame rect: %s", err)
	}
	r11, err := g.FrameRect(1, 1)
	if err != nil {
		t.Fatalf("failed to get frame rect: %s", err)
	}
	ttesting.AssertEqualRect(t, "frame(0,0)", r00, image.Rect(0, 0, 32, 32))
	ttesting.AssertEqualRect(t, "frame(1,1)", r11, image.Rect(36, 36, 68, 68))
	ttesting.AssertEqualRect(t, "extent", g.Extent(), image.Rect(0, 0, 68, 68))
}

func TestGridFromCountWithPadding(t *testing.T) {
	g, err := GridFromCount(68, 68, 2, 2, 4, 4)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "cellW", g.CellW, 32)
	ttesting.AssertEqualInt(t, "cellH", g.CellH, 32)
}

func TestGridTiling(t *testing.T) {
	g, err := GridFromCellSize(64, 64, 32, 32, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	rects := g.Frames()
	ttesting.AssertEqualInt(t, "rectCount", len(rects), 4)

	area := 0
	for i, r := range rects {
		if !r.In(g.Extent()) {
			t.Errorf("frame %d rect %v leaves the extent %v", i, r, g.Extent())
		}
		area += r.Dx() * r.Dy()
		for j := i + 1; j < len(rects); j++ {
			if o := r.Intersect(rects[j]); !o.Empty() {
				t.Errorf("frames %d and %d overlap in %v", i, j, o)
			}
		}
	}
	e := g.Extent()
	ttesting.AssertEqualInt(t, "unionArea", area, e.Dx()*e.Dy())
}

func TestGridInvalid(t *testing.T) {
	cases := []struct {
		name         string
		srcW, srcH   int
		cellW, cellH int
		padX, padY   int
	}{
		{"zeroCellW", 64, 64, 0, 32, 0, 0},
		{"zeroCellH", 64, 64, 32, 0, 0, 0},
		{"negativePad", 64, 64, 32, 32, -1, 0},
		{"zeroSource", 0, 64, 32, 32, 0, 0},
		{"cellWiderThanSource", 64, 64, 100, 100, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := GridFromCellSize(c.srcW, c.srcH, c.cellW, c.cellH, c.padX, c.padY)
			var ige *InvalidGridError
			if !errors.As(err, &ige) {
				t.Errorf("got %v; want an InvalidGridError", err)
			}
		})
	}
}

func TestGridSpecDriveExclusivity(t *testing.T) {
	_, err := GridSpec{CellW: 32, CellH: 32, Rows: 2, Cols: 2}.Build(64, 64)
	var ige *InvalidGridError
	if !errors.As(err, &ige) {
		t.Errorf("both drives set: got %v; want an InvalidGridError", err)
	}

	_, err = GridSpec{}.Build(64, 64)
	if !errors.As(err, &ige) {
		t.Errorf("no drive set: got %v; want an InvalidGridError", err)
	}
}

func TestFrameRectOutOfBounds(t *testing.T) {
	g, err := GridFromCellSize(64, 64, 32, 32, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	for _, c := range []Coord{{Row: 2, Col: 0}, {Row: 0, Col: 2}, {Row: -1, Col: 0}, {Row: 0, Col: -1}} {
		t.Run(fmt.Sprintf("at%s", c), func(t *testing.T) {
			_, err := g.FrameRect(c.Row, c.Col)
			var oob *OutOfBoundsError
			if !errors.As(err, &oob) {
				t.Fatalf("got %v; want an OutOfBoundsError", err)
			}
			if oob.Row != c.Row || oob.Col != c.Col {
				t.Errorf("error names frame (%d,%d); want %s", oob.Row, oob.Col, c)
			}
		})
	}
}

func TestWithPaddingKeepsDrive(t *testing.T) {
	// Cell-size driven: the cell size stays, counts re-derive.
	bySize, err := GridFromCellSize(68, 68, 32, 32, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	padded, err := bySize.WithPadding(4, 4)
	if err != nil {
		t.Fatalf("failed to re-pad grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "sizeDrivenCellW", padded.CellW, 32)
	ttesting.AssertEqualInt(t, "sizeDrivenRows", padded.Rows, 2)

	// Count driven: the counts stay, cell size re-derives.
	byCount, err := GridFromCount(68, 68, 2, 2, 0, 0)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	padded, err = byCount.WithPadding(4, 4)
	if err != nil {
		t.Fatalf("failed to re-pad grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "countDrivenRows", padded.Rows, 2)
	ttesting.AssertEqualInt(t, "countDrivenCellW", padded.CellW, 32)
}

func TestNewGridExactExtent(t *testing.T) {
	g, err := NewGrid(16, 16, 2, 3, 2, 2)
	if err != nil {
		t.Fatalf("failed to build grid: %s", err)
	}
	ttesting.AssertEqualInt(t, "srcW", g.SrcW, 3*16+2*2)
	ttesting.AssertEqualInt(t, "srcH", g.SrcH, 2*16+1*2)
	ttesting.AssertEqualRect(t, "extent", g.Extent(), image.Rect(0, 0, g.SrcW, g.SrcH))
}

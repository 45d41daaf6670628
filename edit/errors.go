package edit

import "fmt"

// Axis names the direction a row or column operation works along.
type Axis int

const (
	Rows Axis = iota
	Columns
)

func (a Axis) String() string {
	if a == Rows {
		return "row"
	}
	return "column"
}

// LastRowColumnError reports an attempt to delete the only remaining row or
// column of a grid.
type LastRowColumnError struct {
	Axis Axis
}

func (e *LastRowColumnError) Error() string {
	return fmt.Sprintf("cannot delete the last %s", e.Axis)
}

// GridIrregularityError reports a frame operation whose result could not
// stay a rectangular grid.
type GridIrregularityError struct {
	Op   string
	Rows int
}

func (e *GridIrregularityError) Error() string {
	return fmt.Sprintf("%s on a %d-row sheet would break the rectangular grid; frame operations need a single row", e.Op, e.Rows)
}

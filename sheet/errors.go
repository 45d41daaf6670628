package sheet

import "fmt"

// InvalidGridError reports grid geometry that cannot describe any frame
// layout over the source image, such as zero-sized cells or a cell count
// that does not fit the source dimensions.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("invalid grid: %s", e.Reason)
}

// OutOfBoundsError reports a frame coordinate outside the current grid.
type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("frame (%d,%d) out of bounds for %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
}

func invalidGridf(format string, args ...interface{}) error {
	return &InvalidGridError{Reason: fmt.Sprintf(format, args...)}
}

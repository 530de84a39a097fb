package mandelbrot

import "fmt"

// StripRange is the half-open row range [Start, End) owned by one strip.
type StripRange struct {
	Start int
	End   int
}

// Len returns the number of rows in the range.
func (r StripRange) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no rows.
func (r StripRange) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether row y belongs to the range.
func (r StripRange) Contains(y int) bool {
	return y >= r.Start && y < r.End
}

// String implements fmt.Stringer.
func (r StripRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Plan divides height rows into workers contiguous strips.
//
// Every strip is floor(height/workers) rows tall except the last, which also
// takes the remainder. The ranges are returned in increasing order, never
// overlap and cover [0, height) exactly. When workers exceeds height the
// leading strips are empty and the last strip covers every row.
//
// workers below 1 is treated as 1 and a negative height as 0.
func Plan(height, workers int) []StripRange {
	if workers < 1 {
		workers = 1
	}
	if height < 0 {
		height = 0
	}

	stripHeight := height / workers
	plan := make([]StripRange, workers)
	for i := range workers {
		start := min(i*stripHeight, height)
		end := start + stripHeight
		if i == workers-1 {
			end = height
		}
		plan[i] = StripRange{Start: start, End: end}
	}
	return plan
}

// validatePlan checks that plan partitions [0, height) in order.
func validatePlan(plan []StripRange, height int) error {
	next := 0
	for i, r := range plan {
		if r.Start != next || r.End < r.Start {
			return fmt.Errorf("%w: strip %d %v does not continue at row %d", ErrInvalidPlan, i, r, next)
		}
		next = r.End
	}
	if next != height {
		return fmt.Errorf("%w: strips cover [0,%d), image has %d rows", ErrInvalidPlan, next, height)
	}
	return nil
}

package thermal

import "fmt"

// TimeGrid is the time axis of a run: 0, step, 2 step, ... up to and
// including the first stamp at or beyond duration.
type TimeGrid struct {
	step     int64 // s
	duration int64 // s
	count    int
}

/*
NewTimeGrid builds the time axis.

Args:
	step: time step, s
	duration: length of the run, s

Returns:
	a grid of ceil(duration/step) + 1 stamps
*/
func NewTimeGrid(step, duration int64) (TimeGrid, error) {
	if step <= 0 {
		return TimeGrid{}, fmt.Errorf("%w: step %d s", ErrInvalidTimeGrid, step)
	}
	if duration < 0 {
		return TimeGrid{}, fmt.Errorf("%w: duration %d s", ErrInvalidTimeGrid, duration)
	}
	return TimeGrid{
		step:     step,
		duration: duration,
		count:    int((duration+step-1)/step) + 1,
	}, nil
}

func (g TimeGrid) Step() int64     { return g.step }
func (g TimeGrid) Duration() int64 { return g.duration }
func (g TimeGrid) Count() int      { return g.count }

// At returns stamp i, s.
func (g TimeGrid) At(i int) int64 {
	return int64(i) * g.step
}

// Stamps returns every stamp, s.
func (g TimeGrid) Stamps() []int64 {
	s := make([]int64, g.count)
	for i := range s {
		s[i] = g.At(i)
	}
	return s
}

// Indices returns 0..Count()-1.
func (g TimeGrid) Indices() []int {
	idx := make([]int, g.count)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

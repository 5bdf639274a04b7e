package thermal

import (
	"errors"
	"fmt"

	"thermonet/hydraulics"
)

var (
	ErrInvalidTimeGrid  = errors.New("invalid time grid")
	ErrUnclassifiedNode = errors.New("node has no known boundary condition")
	ErrInvalidGeometry  = errors.New("soil geometry unusable for boundary condition")
	ErrShortHydraulics  = errors.New("hydraulic results do not cover the time grid")
	ErrMissingWeather   = errors.New("weather required by soil or air boundary condition")
	ErrEmptyNetwork     = errors.New("network has no nodes")
	ErrDone             = errors.New("simulation finished")

	// ErrDanglingLink is returned when a link of the network has no hydraulic results.
	ErrDanglingLink = hydraulics.ErrDanglingLink
)

// SolveError reports a failed linear solve at one time step.
type SolveError struct {
	Index int   // time index
	Time  int64 // s
	Err   error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solve failed at step %d (t=%d s): %v", e.Index, e.Time, e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}

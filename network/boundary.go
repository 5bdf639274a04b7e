package network

import (
	"errors"
	"fmt"
)

// ErrInvalidBoundary is returned for an unknown thermal boundary name.
var ErrInvalidBoundary = errors.New("invalid boundary condition")

// BoundaryCondition is the thermal exposure class of a node.
type BoundaryCondition int

const (
	BoundaryPipe BoundaryCondition = iota // "pipe": heat exchange with the buried pipe surroundings only
	BoundarySoil                          // "soil": direct soil contact
	BoundaryAir                           // "air": above ground, exposed to air and sun
)

func (b BoundaryCondition) String() string {
	switch b {
	case BoundaryPipe:
		return "pipe"
	case BoundarySoil:
		return "soil"
	case BoundaryAir:
		return "air"
	default:
		return fmt.Sprintf("BoundaryCondition(%d)", int(b))
	}
}

// Valid reports whether b is one of the three known classes.
func (b BoundaryCondition) Valid() bool {
	return b == BoundaryPipe || b == BoundarySoil || b == BoundaryAir
}

// BoundaryFromString parses "pipe", "soil" or "air". An empty string means pipe.
func BoundaryFromString(str string) (BoundaryCondition, error) {
	switch str {
	case "pipe", "":
		return BoundaryPipe, nil
	case "soil":
		return BoundarySoil, nil
	case "air":
		return BoundaryAir, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBoundary, str)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b BoundaryCondition) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoundary, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BoundaryCondition) UnmarshalText(text []byte) error {
	v, err := BoundaryFromString(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

package hydraulics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Axes fixes the dense ordering the snapshot arrays are indexed by.
type Axes struct {
	Nodes          []string  // column order of Demand
	Links          []string  // column order of FlowMagnitude and FlowSign
	Tanks          []string  // column order of TankLevel
	TankElevations []float64 // m, parallel to Tanks
}

// Snapshot is the read-only hydraulic input of a thermal run, indexed [t, element].
type Snapshot struct {
	FlowMagnitude *mat.Dense // |flow|, m3/s, [t, link]
	FlowSign      *mat.Dense // +1, 0 or -1, [t, link]
	Demand        *mat.Dense // m3/s, [t, node]
	TankLevel     *mat.Dense // head - elevation, m, [t, tank]
}

/*
Extract builds the snapshot for the given time stamps.

Args:
	res: hydraulic results by name
	ax: node, link and tank orderings
	times: time stamps of the thermal run, s [T]
	includeLeak: add leak demand to demand
*/
func Extract(res *Results, ax Axes, times []int64, includeLeak bool) (*Snapshot, error) {
	if len(ax.Tanks) != len(ax.TankElevations) {
		return nil, fmt.Errorf("%w: %d tanks but %d elevations", ErrIncomplete, len(ax.Tanks), len(ax.TankElevations))
	}

	pos := make(map[int64]int, len(res.Times))
	for i, t := range res.Times {
		pos[t] = i
	}
	rows := make([]int, len(times))
	for i, t := range times {
		r, ok := pos[t]
		if !ok {
			return nil, fmt.Errorf("%w: t=%d s (results hold %d stamps)", ErrMissingTime, t, len(res.Times))
		}
		rows[i] = r
	}

	T := len(times)
	s := &Snapshot{
		FlowMagnitude: mat.NewDense(max(T, 1), max(len(ax.Links), 1), nil),
		FlowSign:      mat.NewDense(max(T, 1), max(len(ax.Links), 1), nil),
		Demand:        mat.NewDense(max(T, 1), max(len(ax.Nodes), 1), nil),
		TankLevel:     mat.NewDense(max(T, 1), max(len(ax.Tanks), 1), nil),
	}

	for j, name := range ax.Links {
		q, ok := res.Flowrate[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDanglingLink, name)
		}
		for i, r := range rows {
			s.FlowMagnitude.Set(i, j, math.Abs(q[r]))
			s.FlowSign.Set(i, j, sign(q[r]))
		}
	}

	for j, name := range ax.Nodes {
		d, ok := res.Demand[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDanglingNode, name)
		}
		leak := res.LeakDemand[name]
		for i, r := range rows {
			v := d[r]
			if includeLeak && leak != nil {
				v += leak[r]
			}
			s.Demand.Set(i, j, v)
		}
	}

	for j, name := range ax.Tanks {
		h, ok := res.Head[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrDanglingNode, name)
		}
		for i, r := range rows {
			s.TankLevel.Set(i, j, h[r]-ax.TankElevations[j])
		}
	}
	return s, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

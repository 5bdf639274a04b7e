package network

import (
	"fmt"
	"sort"
)

// Pattern is a repeating sequence of multipliers sampled every Step seconds.
type Pattern struct {
	Name        string
	Multipliers []float64
	Step        int64 // pattern timestep, s
}

// At returns the multiplier in effect at absolute time t. Patterns wrap around.
func (p *Pattern) At(t int64) float64 {
	if p == nil || len(p.Multipliers) == 0 {
		return 1.0
	}
	if p.Step <= 0 || t < 0 {
		return p.Multipliers[0]
	}
	i := (t / p.Step) % int64(len(p.Multipliers))
	return p.Multipliers[i]
}

// Series is a time varying property: Base scaled by an optional pattern.
// The zero value is a constant 0.
type Series struct {
	Base    float64
	Pattern *Pattern
}

// Constant returns a series with no pattern.
func Constant(v float64) Series {
	return Series{Base: v}
}

// At evaluates the series at absolute time t, s.
func (s Series) At(t int64) float64 {
	if s.Pattern == nil {
		return s.Base
	}
	return s.Base * s.Pattern.At(t)
}

// Curve is a piecewise linear x -> y relation, e.g. tank level -> volume.
type Curve struct {
	Name   string
	Points [][2]float64 // sorted by x
}

// NewCurve sorts the points and checks there are at least two of them.
func NewCurve(name string, points [][2]float64) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("curve %s: need at least 2 points, got %d", name, len(points))
	}
	pts := make([][2]float64, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool { return pts[i][0] < pts[j][0] })
	return &Curve{Name: name, Points: pts}, nil
}

// At interpolates linearly, extrapolating with the end segments.
func (c *Curve) At(x float64) float64 {
	pts := c.Points
	n := len(pts)
	i := sort.Search(n, func(i int) bool { return pts[i][0] >= x })
	switch {
	case i == 0:
		i = 1
	case i == n:
		i = n - 1
	}
	x0, y0 := pts[i-1][0], pts[i-1][1]
	x1, y1 := pts[i][0], pts[i][1]
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

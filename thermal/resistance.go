package thermal

import (
	"fmt"
	"math"

	"thermonet/network"
)

// Weather is the external forcing of soil and air boundary conditions.
// Every value is a function of absolute time, s.
type Weather interface {
	AirTemperature(t int64) float64        // degree C
	SolarRadiation(t int64) float64        // global radiation, W/m2
	ConvectiveCoefficient(t int64) float64 // W/m2 K
	SoilTemperature(t int64) float64       // at the probe depth, degree C
	ProbeDepth() float64                   // m
}

// soilShape returns 2z/D, z being the distance from the probe to the pipe axis.
func soilShape(rec *nodeRecord, w Weather) float64 {
	if rec.soilDiameter <= 0 {
		return 0
	}
	return 2 * (rec.depth - w.ProbeDepth()) / rec.soilDiameter
}

/*
externalResistance returns R2 of a soil or air BC node at time t, K/W.

	soil: arccosh(2z/D) / (2 pi L k(t))
	air:  soil term (when 2z/D > 1) + 1/(h(t) A)

A term with a zero denominator is infinite.
*/
func externalResistance(rec *nodeRecord, w Weather, t int64) float64 {
	var r float64
	if x := soilShape(rec, w); x > 1 {
		r += math.Acosh(x) / (2 * math.Pi * rec.soilLength * rec.node.Thermal.SoilConductivity.At(t))
	}
	if rec.class == network.BoundaryAir {
		r += 1 / (w.ConvectiveCoefficient(t) * rec.interfaceArea)
	}
	return r
}

// checkGeometry rejects soil and air nodes whose R2 cannot be formed.
func checkGeometry(rec *nodeRecord, w Weather) error {
	if rec.class == network.BoundaryPipe {
		return nil
	}
	if rec.soilLength <= 0 || rec.soilDiameter <= 0 {
		return fmt.Errorf("%w: %s node %s has no connected pipe", ErrInvalidGeometry, rec.class, rec.name)
	}
	if rec.class == network.BoundarySoil {
		if x := soilShape(rec, w); x <= 1 {
			return fmt.Errorf("%w: node %s, 2z/D = %g with depth %g m, probe %g m, soil diameter %g m",
				ErrInvalidGeometry, rec.name, x, rec.depth, w.ProbeDepth(), rec.soilDiameter)
		}
	}
	return nil
}

// reciprocal returns 1/r, 0 for an infinite or non-positive resistance.
func reciprocal(r float64) float64 {
	if r <= 0 || math.IsInf(r, 1) || math.IsNaN(r) {
		return 0
	}
	return 1 / r
}

// PipeResistanceReciprocal returns 1/R1 of a node, W/K.
func (ix *Index) PipeResistanceReciprocal(name string) (float64, error) {
	id, ok := ix.nodeID[name]
	if !ok {
		return 0, fmt.Errorf("%w: node %s", network.ErrNotFound, name)
	}
	return ix.nodes[id].g1, nil
}

// ExternalResistance returns R2 of a soil or air BC node at time t, K/W.
func (ix *Index) ExternalResistance(name string, w Weather, t int64) (float64, error) {
	id, ok := ix.nodeID[name]
	if !ok {
		return 0, fmt.Errorf("%w: node %s", network.ErrNotFound, name)
	}
	rec := &ix.nodes[id]
	if rec.class == network.BoundaryPipe {
		return math.Inf(1), nil
	}
	if w == nil {
		return 0, fmt.Errorf("%w: node %s", ErrMissingWeather, name)
	}
	if err := checkGeometry(rec, w); err != nil {
		return 0, err
	}
	return externalResistance(rec, w, t), nil
}

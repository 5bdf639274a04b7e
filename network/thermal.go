package network

import (
	"math"
)

/*
HalfPipeThermalResistance returns the radial resistance of half a pipe, K/W:
wall and insulation layers in series over a length L/2.

	R = (ln(1 + 2e/D)/k + ln(1 + 2e_ins/(D + 2e))/k_ins) / (pi L)

A layer with zero thickness or zero conductivity does not contribute.
*/
func HalfPipeThermalResistance(l *Link) float64 {
	if l.Type != Pipe || l.Length <= 0 || l.Diameter <= 0 {
		return math.Inf(1)
	}
	var r float64
	if l.Thickness > 0 && l.ThermalConductivity > 0 {
		r += math.Log(1+2*l.Thickness/l.Diameter) / l.ThermalConductivity
	}
	if l.InsulationThickness > 0 && l.InsulationThermalConductivity > 0 {
		r += math.Log(1+2*l.InsulationThickness/(l.Diameter+2*l.Thickness)) / l.InsulationThermalConductivity
	}
	return r / (math.Pi * l.Length)
}

// ThermalResistanceReciprocal returns 1/R1 of a node, W/K: the parallel
// combination of the half resistances of its connected pipes. 0 means no pipe.
func (m *Model) ThermalResistanceReciprocal(node string) float64 {
	var g float64
	for _, p := range m.connectedPipes(node) {
		r := HalfPipeThermalResistance(p)
		if r > 0 && !math.IsInf(r, 1) {
			g += 1 / r
		}
	}
	return g
}

// TotalThermalResistance is 1/ThermalResistanceReciprocal, +Inf for a node without pipes.
func (m *Model) TotalThermalResistance(node string) float64 {
	g := m.ThermalResistanceReciprocal(node)
	if g == 0 {
		return math.Inf(1)
	}
	return 1 / g
}

// WaterVolume is the cell volume of a node, m3: half the volume of every connected pipe.
func (m *Model) WaterVolume(node string) float64 {
	var v float64
	for _, p := range m.connectedPipes(node) {
		v += math.Pi / 4 * p.Diameter * p.Diameter * p.Length / 2
	}
	return v
}

// SoilLength is the length of the soil cylinder around a node, m.
func (m *Model) SoilLength(node string) float64 {
	var length float64
	for _, p := range m.connectedPipes(node) {
		length += p.Length / 2
	}
	return length
}

// SoilDiameter is the node's soil cylinder diameter, m. When the node does not
// set one it is DefaultSoilDiameterRatio times the largest connected outer diameter.
func (m *Model) SoilDiameter(node string) float64 {
	n, ok := m.nodes[node]
	if ok && n.Thermal.SoilDiameter > 0 {
		return n.Thermal.SoilDiameter
	}
	var d float64
	for _, p := range m.connectedPipes(node) {
		d = math.Max(d, p.OuterDiameter())
	}
	return DefaultSoilDiameterRatio * d
}

// SoilVolume is the soil annulus volume around the node's half pipes, m3.
// Pipes wider than the soil cylinder contribute nothing.
func (m *Model) SoilVolume(node string) float64 {
	ds := m.SoilDiameter(node)
	var v float64
	for _, p := range m.connectedPipes(node) {
		do := p.OuterDiameter()
		if ds <= do {
			continue
		}
		v += math.Pi / 4 * (ds*ds - do*do) * p.Length / 2
	}
	return v
}

// InterfaceArea is the outer surface of the soil cylinder exposed to air, m2.
func (m *Model) InterfaceArea(node string) float64 {
	return math.Pi * m.SoilDiameter(node) * m.SoilLength(node)
}

// TankVolume returns the water volume of a tank at the given level, m3.
func (n *Node) TankVolume(level float64) float64 {
	if n.VolumeCurve != nil {
		return n.VolumeCurve.At(level)
	}
	return math.Pi / 4 * n.Diameter * n.Diameter * level
}

// LevelInRange reports whether level lies between the tank's minimum and
// maximum levels. Nodes without a positive MaxLevel have no range.
func (n *Node) LevelInRange(level float64) bool {
	if n.Type != Tank || n.MaxLevel <= 0 {
		return true
	}
	return level >= n.MinLevel && level <= n.MaxLevel
}

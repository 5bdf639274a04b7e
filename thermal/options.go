package thermal

import "thermonet/network"

// Options of a thermal run.
type Options struct {
	Density                float64 // fluid density, kg/m3
	HeatCapacity           float64 // fluid specific heat capacity, J/kg K
	IncludeLeakDemand      bool    // leak demand leaves the node with the demand
	BoundaryClassification bool    // false: every node is pipe BC
	Workers                int     // concurrent row builders, < 1 means 1
}

// OptionsFrom takes the run options stored in a model.
func OptionsFrom(m *network.Model) Options {
	return Options{
		Density:                m.Options.FluidDensity(),
		HeatCapacity:           m.Options.Thermal.HeatCapacity,
		IncludeLeakDemand:      m.Options.Thermal.IncludeLeakDemand,
		BoundaryClassification: m.Options.Thermal.BoundaryClassification,
		Workers:                1,
	}
}

// rhoCp is the volumetric heat capacity of the fluid, J/m3 K.
func (o Options) rhoCp() float64 {
	return o.Density * o.HeatCapacity
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

package network

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type seriesJSON struct {
	Value   float64 `json:"value"`
	Pattern string  `json:"pattern"`
}

type thermalJSON struct {
	Boundary         string      `json:"boundary"`
	Depth            *float64    `json:"depth"`
	SoilDiameter     float64     `json:"soil_diameter"`
	SoilConductivity *seriesJSON `json:"soil_conductivity"`
	SoilHeatCapacity *seriesJSON `json:"soil_heat_capacity"`
	SoilTemperature  *seriesJSON `json:"soil_temperature"`
	Absorptivity     *seriesJSON `json:"absorptivity"`
}

type nodeJSON struct {
	Name               string       `json:"name"`
	Elevation          float64      `json:"elevation"`
	InitialTemperature float64      `json:"initial_temperature"`
	Temperature        *seriesJSON  `json:"temperature"`
	InitLevel          float64      `json:"init_level"`
	MinLevel           float64      `json:"min_level"`
	MaxLevel           float64      `json:"max_level"`
	Diameter           float64      `json:"diameter"`
	VolumeCurve        string       `json:"volume_curve"`
	Thermal            *thermalJSON `json:"thermal"`
}

type linkJSON struct {
	Name                          string   `json:"name"`
	StartNode                     string   `json:"start_node"`
	EndNode                       string   `json:"end_node"`
	Length                        float64  `json:"length"`
	Diameter                      float64  `json:"diameter"`
	Roughness                     float64  `json:"roughness"`
	Thickness                     *float64 `json:"thickness"`
	ThermalConductivity           *float64 `json:"thermal_conductivity"`
	InsulationThickness           *float64 `json:"insulation_thickness"`
	InsulationThermalConductivity *float64 `json:"insulation_thermal_conductivity"`
}

type patternJSON struct {
	Name        string    `json:"name"`
	Multipliers []float64 `json:"multipliers"`
}

type curveJSON struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

type optionsJSON struct {
	Time struct {
		Duration          *int64 `json:"duration"`
		HydraulicTimestep *int64 `json:"hydraulic_timestep"`
		PatternTimestep   *int64 `json:"pattern_timestep"`
	} `json:"time"`
	Hydraulic struct {
		SpecificGravity *float64 `json:"specific_gravity"`
	} `json:"hydraulic"`
	Thermal struct {
		HeatCapacity           *float64 `json:"heat_capacity"`
		MaxPipeLength          *float64 `json:"max_pipe_length"`
		BoundaryClassification bool     `json:"boundary_classification"`
		IncludeLeakDemand      bool     `json:"include_leak_demand"`
	} `json:"thermal"`
}

type modelJSON struct {
	Options    optionsJSON   `json:"options"`
	Patterns   []patternJSON `json:"patterns"`
	Curves     []curveJSON   `json:"curves"`
	Junctions  []nodeJSON    `json:"junctions"`
	Tanks      []nodeJSON    `json:"tanks"`
	Reservoirs []nodeJSON    `json:"reservoirs"`
	Pipes      []linkJSON    `json:"pipes"`
	Pumps      []linkJSON    `json:"pumps"`
	Valves     []linkJSON    `json:"valves"`
}

// LoadFile reads a network description in JSON.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load decodes a network description in JSON.
func Load(r io.Reader) (*Model, error) {
	var rd modelJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rd); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}

	m := NewModel()
	applyOptions(&m.Options, rd.Options)

	for _, p := range rd.Patterns {
		if err := m.AddPattern(&Pattern{Name: p.Name, Multipliers: p.Multipliers}); err != nil {
			return nil, err
		}
	}
	for _, c := range rd.Curves {
		curve, err := NewCurve(c.Name, c.Points)
		if err != nil {
			return nil, err
		}
		if err := m.AddCurve(curve); err != nil {
			return nil, err
		}
	}

	for _, group := range []struct {
		t     NodeType
		nodes []nodeJSON
	}{
		{Junction, rd.Junctions},
		{Tank, rd.Tanks},
		{Reservoir, rd.Reservoirs},
	} {
		for _, nj := range group.nodes {
			n, err := m.decodeNode(group.t, nj)
			if err != nil {
				return nil, err
			}
			if err := m.AddNode(n); err != nil {
				return nil, err
			}
		}
	}

	for _, group := range []struct {
		t     LinkType
		links []linkJSON
	}{
		{Pipe, rd.Pipes},
		{Pump, rd.Pumps},
		{Valve, rd.Valves},
	} {
		for _, lj := range group.links {
			if err := m.AddLink(decodeLink(group.t, lj)); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func applyOptions(o *Options, oj optionsJSON) {
	if v := oj.Time.Duration; v != nil {
		o.Time.Duration = *v
	}
	if v := oj.Time.HydraulicTimestep; v != nil {
		o.Time.HydraulicTimestep = *v
	}
	if v := oj.Time.PatternTimestep; v != nil {
		o.Time.PatternTimestep = *v
	}
	if v := oj.Hydraulic.SpecificGravity; v != nil {
		o.Hydraulic.SpecificGravity = *v
	}
	if v := oj.Thermal.HeatCapacity; v != nil {
		o.Thermal.HeatCapacity = *v
	}
	o.Thermal.MaxPipeLength = oj.Thermal.MaxPipeLength
	o.Thermal.BoundaryClassification = oj.Thermal.BoundaryClassification
	o.Thermal.IncludeLeakDemand = oj.Thermal.IncludeLeakDemand
}

func (m *Model) decodeSeries(s *seriesJSON, def Series) (Series, error) {
	if s == nil {
		return def, nil
	}
	out := Series{Base: s.Value}
	if s.Pattern != "" {
		p, ok := m.patterns[s.Pattern]
		if !ok {
			return Series{}, fmt.Errorf("%w: pattern %s", ErrNotFound, s.Pattern)
		}
		out.Pattern = p
	}
	return out, nil
}

func (m *Model) decodeNode(t NodeType, nj nodeJSON) (*Node, error) {
	n := &Node{
		Name:               nj.Name,
		Type:               t,
		Elevation:          nj.Elevation,
		InitialTemperature: nj.InitialTemperature,
		InitLevel:          nj.InitLevel,
		MinLevel:           nj.MinLevel,
		MaxLevel:           nj.MaxLevel,
		Diameter:           nj.Diameter,
		Thermal:            DefaultThermal(),
	}

	var err error
	if t == Reservoir {
		if n.Temperature, err = m.decodeSeries(nj.Temperature, Constant(nj.InitialTemperature)); err != nil {
			return nil, fmt.Errorf("reservoir %s: %w", nj.Name, err)
		}
	}
	if nj.VolumeCurve != "" {
		c, ok := m.curves[nj.VolumeCurve]
		if !ok {
			return nil, fmt.Errorf("tank %s: %w: curve %s", nj.Name, ErrNotFound, nj.VolumeCurve)
		}
		n.VolumeCurve = c
	}

	tj := nj.Thermal
	if tj == nil {
		return n, nil
	}
	th := &n.Thermal
	if th.Boundary, err = BoundaryFromString(tj.Boundary); err != nil {
		return nil, fmt.Errorf("node %s: %w", nj.Name, err)
	}
	if tj.Depth != nil {
		th.Depth = *tj.Depth
	}
	th.SoilDiameter = tj.SoilDiameter
	for _, f := range []struct {
		dst *Series
		src *seriesJSON
	}{
		{&th.SoilConductivity, tj.SoilConductivity},
		{&th.SoilHeatCapacity, tj.SoilHeatCapacity},
		{&th.SoilTemperature, tj.SoilTemperature},
		{&th.Absorptivity, tj.Absorptivity},
	} {
		if *f.dst, err = m.decodeSeries(f.src, *f.dst); err != nil {
			return nil, fmt.Errorf("node %s: %w", nj.Name, err)
		}
	}
	return n, nil
}

func decodeLink(t LinkType, lj linkJSON) *Link {
	l := &Link{
		Name:      lj.Name,
		Type:      t,
		StartNode: lj.StartNode,
		EndNode:   lj.EndNode,
		Length:    lj.Length,
		Diameter:  lj.Diameter,
		Roughness: lj.Roughness,
	}
	if t != Pipe {
		return l
	}
	l.Thickness = valueOr(lj.Thickness, DefaultPipeThickness)
	l.ThermalConductivity = valueOr(lj.ThermalConductivity, DefaultPipeThermalConductivity)
	l.InsulationThickness = valueOr(lj.InsulationThickness, DefaultInsulationThickness)
	l.InsulationThermalConductivity = valueOr(lj.InsulationThermalConductivity, DefaultInsulationThermalConductivity)
	return l
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

package network

// NodeType is the hydraulic kind of a node.
type NodeType int

const (
	Junction NodeType = iota
	Tank
	Reservoir
)

func (t NodeType) String() string {
	return [...]string{"junction", "tank", "reservoir"}[t]
}

// LinkType is the hydraulic kind of a link.
type LinkType int

const (
	Pipe LinkType = iota
	Pump
	Valve
)

func (t LinkType) String() string {
	return [...]string{"pipe", "pump", "valve"}[t]
}

// Default pipe wall and insulation properties.
const (
	DefaultPipeThickness                 = 0.01  // m
	DefaultPipeThermalConductivity       = 0.4   // W/m K
	DefaultInsulationThickness           = 0.02  // m
	DefaultInsulationThermalConductivity = 0.035 // W/m K
)

// Soil defaults used when a node does not specify them.
const (
	DefaultSoilConductivity  = 1.5   // W/m K
	DefaultSoilHeatCapacity  = 2.0e6 // J/m3 K
	DefaultSoilTemperature   = 10.0  // degree C
	DefaultAbsorptivity      = 0.6   // -
	DefaultDepth             = 1.2   // m
	DefaultSoilDiameterRatio = 4.0   // soil cylinder diameter / pipe outer diameter
)

// Thermal holds the thermal exposure attributes shared by all node kinds.
type Thermal struct {
	Boundary         BoundaryCondition
	Depth            float64 // depth of the pipe axis below ground, m
	SoilDiameter     float64 // outer diameter of the soil cylinder, m (0: derived from pipes)
	SoilConductivity Series  // W/m K
	SoilHeatCapacity Series  // volumetric heat capacity, J/m3 K
	SoilTemperature  Series  // undisturbed soil temperature, degree C
	Absorptivity     Series  // solar absorptivity of the exposed surface, -
}

// DefaultThermal returns pipe BC attributes with the package soil defaults.
func DefaultThermal() Thermal {
	return Thermal{
		Boundary:         BoundaryPipe,
		Depth:            DefaultDepth,
		SoilConductivity: Constant(DefaultSoilConductivity),
		SoilHeatCapacity: Constant(DefaultSoilHeatCapacity),
		SoilTemperature:  Constant(DefaultSoilTemperature),
		Absorptivity:     Constant(DefaultAbsorptivity),
	}
}

// Node is a junction, tank or reservoir.
type Node struct {
	Name      string
	Type      NodeType
	Elevation float64 // m

	// junction / tank
	InitialTemperature float64 // degree C

	// reservoir
	Temperature Series // prescribed water temperature, degree C

	// tank
	InitLevel   float64 // m
	MinLevel    float64 // m
	MaxLevel    float64 // m
	Diameter    float64 // m
	VolumeCurve *Curve  // level, m -> volume, m3

	Thermal Thermal
}

// TemperatureAt returns the water temperature known for the node at time t:
// the prescribed series for reservoirs and the initial temperature otherwise.
func (n *Node) TemperatureAt(t int64) float64 {
	if n.Type == Reservoir {
		return n.Temperature.At(t)
	}
	return n.InitialTemperature
}

// Link is a pipe, pump or valve between two nodes.
type Link struct {
	Name      string
	Type      LinkType
	StartNode string
	EndNode   string

	// pipe
	Length                        float64 // m
	Diameter                      float64 // inner diameter, m
	Roughness                     float64
	Thickness                     float64 // wall thickness, m
	ThermalConductivity           float64 // wall, W/m K
	InsulationThickness           float64 // m
	InsulationThermalConductivity float64 // W/m K
}

// OuterDiameter is the diameter over wall and insulation, m.
func (l *Link) OuterDiameter() float64 {
	return l.Diameter + 2*l.Thickness + 2*l.InsulationThickness
}

func (n *Node) clone() *Node {
	c := *n
	return &c
}

func (l *Link) clone() *Link {
	c := *l
	return &c
}

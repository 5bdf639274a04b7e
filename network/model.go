package network

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateName = errors.New("duplicate element name")
	ErrNotFound      = errors.New("element not found")
	ErrInvalidLink   = errors.New("invalid link")
	ErrInvalidNode   = errors.New("invalid node")
)

// TimeOptions, s
type TimeOptions struct {
	Duration          int64
	HydraulicTimestep int64
	PatternTimestep   int64
}

type HydraulicOptions struct {
	SpecificGravity float64 // -
}

type ThermalOptions struct {
	HeatCapacity           float64  // fluid specific heat capacity, J/kg K
	MaxPipeLength          *float64 // m, nil disables meshing
	BoundaryClassification bool     // solve soil and air boundary conditions
	IncludeLeakDemand      bool     // add leak demand to the nodal outflow
}

type Options struct {
	Time      TimeOptions
	Hydraulic HydraulicOptions
	Thermal   ThermalOptions
}

// DefaultOptions returns a one day run at a one hour step for water.
func DefaultOptions() Options {
	return Options{
		Time: TimeOptions{
			Duration:          86400,
			HydraulicTimestep: 3600,
			PatternTimestep:   3600,
		},
		Hydraulic: HydraulicOptions{
			SpecificGravity: 1.0,
		},
		Thermal: ThermalOptions{
			HeatCapacity: 4186.0,
		},
	}
}

// FluidDensity, kg/m3
func (o Options) FluidDensity() float64 {
	return o.Hydraulic.SpecificGravity * 1000.0
}

// Model is a water network with thermal attributes. Elements are kept by name;
// adjacency is derived from link endpoints in link insertion order.
type Model struct {
	Options Options

	nodes     map[string]*Node
	links     map[string]*Link
	nodeOrder []string
	linkOrder []string
	patterns  map[string]*Pattern
	curves    map[string]*Curve
}

func NewModel() *Model {
	return &Model{
		Options:  DefaultOptions(),
		nodes:    make(map[string]*Node),
		links:    make(map[string]*Link),
		patterns: make(map[string]*Pattern),
		curves:   make(map[string]*Curve),
	}
}

// AddNode registers n. Names are unique across nodes.
func (m *Model) AddNode(n *Node) error {
	if n.Name == "" {
		return fmt.Errorf("%w: empty node name", ErrInvalidNode)
	}
	if _, ok := m.nodes[n.Name]; ok {
		return fmt.Errorf("%w: node %s", ErrDuplicateName, n.Name)
	}
	m.nodes[n.Name] = n
	m.nodeOrder = append(m.nodeOrder, n.Name)
	return nil
}

// AddJunction adds a junction with default thermal attributes.
func (m *Model) AddJunction(name string, elevation, initialTemperature float64) (*Node, error) {
	n := &Node{
		Name:               name,
		Type:               Junction,
		Elevation:          elevation,
		InitialTemperature: initialTemperature,
		Thermal:            DefaultThermal(),
	}
	return n, m.AddNode(n)
}

// AddTank adds a cylindrical tank.
func (m *Model) AddTank(name string, elevation, initLevel, minLevel, maxLevel, diameter float64) (*Node, error) {
	n := &Node{
		Name:      name,
		Type:      Tank,
		Elevation: elevation,
		InitLevel: initLevel,
		MinLevel:  minLevel,
		MaxLevel:  maxLevel,
		Diameter:  diameter,
		Thermal:   DefaultThermal(),
	}
	return n, m.AddNode(n)
}

// AddReservoir adds a reservoir with a prescribed water temperature.
func (m *Model) AddReservoir(name string, temperature Series) (*Node, error) {
	n := &Node{
		Name:        name,
		Type:        Reservoir,
		Temperature: temperature,
		Thermal:     DefaultThermal(),
	}
	return n, m.AddNode(n)
}

// AddLink registers l after checking both endpoints exist.
func (m *Model) AddLink(l *Link) error {
	if l.Name == "" {
		return fmt.Errorf("%w: empty link name", ErrInvalidLink)
	}
	if _, ok := m.links[l.Name]; ok {
		return fmt.Errorf("%w: link %s", ErrDuplicateName, l.Name)
	}
	if l.StartNode == l.EndNode {
		return fmt.Errorf("%w: %s connects %s to itself", ErrInvalidLink, l.Name, l.StartNode)
	}
	for _, name := range []string{l.StartNode, l.EndNode} {
		if _, ok := m.nodes[name]; !ok {
			return fmt.Errorf("%w: node %s of link %s", ErrNotFound, name, l.Name)
		}
	}
	m.links[l.Name] = l
	m.linkOrder = append(m.linkOrder, l.Name)
	return nil
}

// AddPipe adds a pipe with the default wall and insulation properties.
func (m *Model) AddPipe(name, start, end string, length, diameter float64) (*Link, error) {
	l := &Link{
		Name:                          name,
		Type:                          Pipe,
		StartNode:                     start,
		EndNode:                       end,
		Length:                        length,
		Diameter:                      diameter,
		Roughness:                     100,
		Thickness:                     DefaultPipeThickness,
		ThermalConductivity:           DefaultPipeThermalConductivity,
		InsulationThickness:           DefaultInsulationThickness,
		InsulationThermalConductivity: DefaultInsulationThermalConductivity,
	}
	return l, m.AddLink(l)
}

func (m *Model) AddPump(name, start, end string) (*Link, error) {
	l := &Link{Name: name, Type: Pump, StartNode: start, EndNode: end}
	return l, m.AddLink(l)
}

func (m *Model) AddValve(name, start, end string, diameter float64) (*Link, error) {
	l := &Link{Name: name, Type: Valve, StartNode: start, EndNode: end, Diameter: diameter}
	return l, m.AddLink(l)
}

// AddPattern registers p, stamping it with the model pattern timestep when unset.
func (m *Model) AddPattern(p *Pattern) error {
	if _, ok := m.patterns[p.Name]; ok {
		return fmt.Errorf("%w: pattern %s", ErrDuplicateName, p.Name)
	}
	if p.Step == 0 {
		p.Step = m.Options.Time.PatternTimestep
	}
	m.patterns[p.Name] = p
	return nil
}

func (m *Model) Pattern(name string) (*Pattern, bool) {
	p, ok := m.patterns[name]
	return p, ok
}

func (m *Model) AddCurve(c *Curve) error {
	if _, ok := m.curves[c.Name]; ok {
		return fmt.Errorf("%w: curve %s", ErrDuplicateName, c.Name)
	}
	m.curves[c.Name] = c
	return nil
}

func (m *Model) Curve(name string) (*Curve, bool) {
	c, ok := m.curves[name]
	return c, ok
}

func (m *Model) Node(name string) (*Node, bool) {
	n, ok := m.nodes[name]
	return n, ok
}

func (m *Model) Link(name string) (*Link, bool) {
	l, ok := m.links[name]
	return l, ok
}

// NodeNames returns the names of the nodes of type t in insertion order.
func (m *Model) NodeNames(t NodeType) []string {
	var names []string
	for _, name := range m.nodeOrder {
		if m.nodes[name].Type == t {
			names = append(names, name)
		}
	}
	return names
}

// LinkNames returns the names of the links of type t in insertion order.
func (m *Model) LinkNames(t LinkType) []string {
	var names []string
	for _, name := range m.linkOrder {
		if m.links[name].Type == t {
			names = append(names, name)
		}
	}
	return names
}

// Links returns every link in insertion order.
func (m *Model) Links() []*Link {
	links := make([]*Link, len(m.linkOrder))
	for i, name := range m.linkOrder {
		links[i] = m.links[name]
	}
	return links
}

func (m *Model) NumNodes() int { return len(m.nodeOrder) }
func (m *Model) NumLinks() int { return len(m.linkOrder) }

// RemoveLink deletes a link. Both endpoints lose the connection.
func (m *Model) RemoveLink(name string) error {
	if _, ok := m.links[name]; !ok {
		return fmt.Errorf("%w: link %s", ErrNotFound, name)
	}
	delete(m.links, name)
	m.linkOrder = removeName(m.linkOrder, name)
	return nil
}

// RemoveNode deletes a node that has no connected links.
func (m *Model) RemoveNode(name string) error {
	if _, ok := m.nodes[name]; !ok {
		return fmt.Errorf("%w: node %s", ErrNotFound, name)
	}
	if c := m.Connections(name); len(c.Links) > 0 {
		return fmt.Errorf("%w: node %s still has links %v", ErrInvalidNode, name, c.Links)
	}
	delete(m.nodes, name)
	m.nodeOrder = removeName(m.nodeOrder, name)
	return nil
}

// Copy returns a deep copy. Patterns and curves are shared, they are never mutated.
func (m *Model) Copy() *Model {
	c := &Model{
		Options:   m.Options,
		nodes:     make(map[string]*Node, len(m.nodes)),
		links:     make(map[string]*Link, len(m.links)),
		nodeOrder: append([]string(nil), m.nodeOrder...),
		linkOrder: append([]string(nil), m.linkOrder...),
		patterns:  make(map[string]*Pattern, len(m.patterns)),
		curves:    make(map[string]*Curve, len(m.curves)),
	}
	if m.Options.Thermal.MaxPipeLength != nil {
		v := *m.Options.Thermal.MaxPipeLength
		c.Options.Thermal.MaxPipeLength = &v
	}
	for k, n := range m.nodes {
		c.nodes[k] = n.clone()
	}
	for k, l := range m.links {
		c.links[k] = l.clone()
	}
	for k, p := range m.patterns {
		c.patterns[k] = p
	}
	for k, cv := range m.curves {
		c.curves[k] = cv
	}
	return c
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}

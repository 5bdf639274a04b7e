package thermal

import (
	"fmt"

	"thermonet/hydraulics"
	"thermonet/network"
)

// nodeRecord is one control volume of the run, addressed by its water row.
type nodeRecord struct {
	name string
	kind network.NodeType
	node *network.Node // series accessors and tank geometry

	id   int // water row
	soil int // soil row, id + N
	tank int // column in the tank tables, -1 for other nodes

	links      []int     // connected link ids
	neighbours []int     // node ids at the other end, parallel to links
	sides      []float64 // -1: node is the start, +1: node is the end

	class network.BoundaryCondition

	cellVolume    float64 // half pipe water volumes, m3
	g1            float64 // pipe side resistance reciprocal, W/K
	depth         float64 // m
	soilDiameter  float64 // m
	soilLength    float64 // m
	soilVolume    float64 // m3
	interfaceArea float64 // m2
}

// Index maps a network onto dense ids. Nodes are ordered junctions, tanks,
// reservoirs and links pipes, pumps, valves, each in insertion order.
type Index struct {
	nodes  []nodeRecord
	nodeID map[string]int

	links  []string
	linkID map[string]int

	junctions  []int
	tanks      []int
	reservoirs []int
}

// NewIndex resolves ids, adjacency and static thermal properties of m.
func NewIndex(m *network.Model) (*Index, error) {
	ix := &Index{
		nodeID: make(map[string]int),
		linkID: make(map[string]int),
	}

	for _, l := range m.Links() {
		if l.Type == network.Pipe && network.HalfPipeThermalResistance(l) == 0 {
			return nil, fmt.Errorf("%w: pipe %s has neither wall nor insulation resistance", network.ErrInvalidLink, l.Name)
		}
	}
	for _, t := range []network.LinkType{network.Pipe, network.Pump, network.Valve} {
		for _, name := range m.LinkNames(t) {
			ix.linkID[name] = len(ix.links)
			ix.links = append(ix.links, name)
		}
	}

	var names []string
	for _, t := range []network.NodeType{network.Junction, network.Tank, network.Reservoir} {
		names = append(names, m.NodeNames(t)...)
	}
	if len(names) == 0 {
		return nil, ErrEmptyNetwork
	}
	for i, name := range names {
		ix.nodeID[name] = i
	}

	n := len(names)
	ix.nodes = make([]nodeRecord, n)
	for i, name := range names {
		node, _ := m.Node(name)
		rec := nodeRecord{
			name:          name,
			kind:          node.Type,
			node:          node,
			id:            i,
			soil:          i + n,
			tank:          -1,
			class:         node.Thermal.Boundary,
			cellVolume:    m.WaterVolume(name),
			g1:            m.ThermalResistanceReciprocal(name),
			depth:         node.Thermal.Depth,
			soilDiameter:  m.SoilDiameter(name),
			soilLength:    m.SoilLength(name),
			soilVolume:    m.SoilVolume(name),
			interfaceArea: m.InterfaceArea(name),
		}

		c := m.Connections(name)
		for j, link := range c.Links {
			l, ok := ix.linkID[link]
			if !ok {
				return nil, fmt.Errorf("%w: %s on node %s", ErrDanglingLink, link, name)
			}
			nb, ok := ix.nodeID[c.Neighbours[j]]
			if !ok {
				return nil, fmt.Errorf("%w: neighbour %s of node %s", network.ErrNotFound, c.Neighbours[j], name)
			}
			rec.links = append(rec.links, l)
			rec.neighbours = append(rec.neighbours, nb)
			rec.sides = append(rec.sides, float64(c.Sides[j]))
		}

		switch node.Type {
		case network.Junction:
			ix.junctions = append(ix.junctions, i)
		case network.Tank:
			rec.tank = len(ix.tanks)
			ix.tanks = append(ix.tanks, i)
		case network.Reservoir:
			ix.reservoirs = append(ix.reservoirs, i)
		}
		ix.nodes[i] = rec
	}
	return ix, nil
}

func (ix *Index) NumNodes() int { return len(ix.nodes) }
func (ix *Index) NumLinks() int { return len(ix.links) }
func (ix *Index) NumTanks() int { return len(ix.tanks) }

// NodeID returns the water row of a node.
func (ix *Index) NodeID(name string) (int, bool) {
	id, ok := ix.nodeID[name]
	return id, ok
}

// LinkID returns the column of a link in the flow arrays.
func (ix *Index) LinkID(name string) (int, bool) {
	id, ok := ix.linkID[name]
	return id, ok
}

// NodeNames returns node names by id.
func (ix *Index) NodeNames() []string {
	names := make([]string, len(ix.nodes))
	for i := range ix.nodes {
		names[i] = ix.nodes[i].name
	}
	return names
}

// LinkNames returns link names by id.
func (ix *Index) LinkNames() []string {
	return append([]string(nil), ix.links...)
}

// TankNames returns tank names in tank column order.
func (ix *Index) TankNames() []string {
	names := make([]string, len(ix.tanks))
	for i, id := range ix.tanks {
		names[i] = ix.nodes[id].name
	}
	return names
}

// Connections returns the connected link ids, neighbour ids and sides of a node.
func (ix *Index) Connections(name string) (links, neighbours []int, sides []float64, ok bool) {
	id, ok := ix.nodeID[name]
	if !ok {
		return nil, nil, nil, false
	}
	rec := &ix.nodes[id]
	return append([]int(nil), rec.links...),
		append([]int(nil), rec.neighbours...),
		append([]float64(nil), rec.sides...),
		true
}

// Axes orders hydraulic results the way the index numbers elements.
func (ix *Index) Axes() hydraulics.Axes {
	ax := hydraulics.Axes{
		Nodes: ix.NodeNames(),
		Links: ix.LinkNames(),
		Tanks: ix.TankNames(),
	}
	for _, id := range ix.tanks {
		ax.TankElevations = append(ax.TankElevations, ix.nodes[id].node.Elevation)
	}
	return ax
}

// group returns ids, names and boundary attributes of one node kind.
func (ix *Index) group(ids []int) ([]string, []network.BoundaryCondition) {
	names := make([]string, len(ids))
	classes := make([]network.BoundaryCondition, len(ids))
	for i, id := range ids {
		names[i] = ix.nodes[id].name
		classes[i] = ix.nodes[id].class
	}
	return names, classes
}

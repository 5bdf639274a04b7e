package thermal

import (
	"fmt"

	"thermonet/network"
)

// BoundaryGroup lists the nodes of one boundary condition class.
type BoundaryGroup struct {
	Names   []string
	IDs     []int // water rows
	SoilIDs []int // soil rows, IDs + N
}

func (g *BoundaryGroup) add(name string, id, n int) {
	g.Names = append(g.Names, name)
	g.IDs = append(g.IDs, id)
	g.SoilIDs = append(g.SoilIDs, id+n)
}

// Len is the number of nodes in the group.
func (g BoundaryGroup) Len() int {
	return len(g.IDs)
}

// BoundaryGroups partitions a node group by boundary condition.
type BoundaryGroups struct {
	Pipe BoundaryGroup
	Soil BoundaryGroup
	Air  BoundaryGroup
}

// Of returns the group of class bc.
func (g *BoundaryGroups) Of(bc network.BoundaryCondition) *BoundaryGroup {
	switch bc {
	case network.BoundarySoil:
		return &g.Soil
	case network.BoundaryAir:
		return &g.Air
	default:
		return &g.Pipe
	}
}

/*
ClassifyBoundaries splits nodes into pipe, soil and air groups.

Args:
	names: node names
	ids: water rows, parallel to names
	classes: boundary condition of every node, parallel to names
	n: number of nodes of the whole network

Returns:
	the three disjoint groups, each in input order
*/
func ClassifyBoundaries(names []string, ids []int, classes []network.BoundaryCondition, n int) (BoundaryGroups, error) {
	var g BoundaryGroups
	if len(ids) != len(names) || len(classes) != len(names) {
		return g, fmt.Errorf("classify boundaries: %d names, %d ids, %d classes", len(names), len(ids), len(classes))
	}
	for i, name := range names {
		if !classes[i].Valid() {
			return BoundaryGroups{}, fmt.Errorf("%w: %s has class %d", ErrUnclassifiedNode, name, int(classes[i]))
		}
		g.Of(classes[i]).add(name, ids[i], n)
	}
	return g, nil
}

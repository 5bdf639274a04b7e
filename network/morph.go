package network

import (
	"fmt"
)

// ReverseLink swaps the endpoints of a link. The link is re-registered, so it
// moves to the end of the connection lists of both endpoints.
func (m *Model) ReverseLink(name string) error {
	l, ok := m.links[name]
	if !ok {
		return fmt.Errorf("%w: link %s", ErrNotFound, name)
	}
	if err := m.RemoveLink(name); err != nil {
		return err
	}
	r := l.clone()
	r.StartNode, r.EndNode = l.EndNode, l.StartNode
	return m.AddLink(r)
}

// SetStartNode reconnects the start of a link to another node. The link is
// removed and re-added, so it moves to the end of the connection lists.
func (m *Model) SetStartNode(link, node string) error {
	return m.setEndpoint(link, node, true)
}

// SetEndNode reconnects the end of a link to another node, like SetStartNode.
func (m *Model) SetEndNode(link, node string) error {
	return m.setEndpoint(link, node, false)
}

func (m *Model) setEndpoint(link, node string, start bool) error {
	l, ok := m.links[link]
	if !ok {
		return fmt.Errorf("%w: link %s", ErrNotFound, link)
	}
	if _, ok := m.nodes[node]; !ok {
		return fmt.Errorf("%w: node %s", ErrNotFound, node)
	}
	r := l.clone()
	if start {
		r.StartNode = node
	} else {
		r.EndNode = node
	}
	if r.StartNode == r.EndNode {
		return fmt.Errorf("%w: %s would connect %s to itself", ErrInvalidLink, link, node)
	}
	if err := m.RemoveLink(link); err != nil {
		return err
	}
	return m.AddLink(r)
}

/*
SplitPipe inserts a junction into a pipe.

The original pipe keeps its name and runs from its start node to the new
junction with length ratio*L; newPipe runs from the junction to the old end
node with length (1-ratio)*L.
*/
func (m *Model) SplitPipe(pipe, newPipe, newJunction string, ratio float64) error {
	return m.splitOrBreak(pipe, newPipe, newJunction, "", ratio)
}

/*
BreakPipe cuts a pipe in two, leaving the halves disconnected.

The original pipe ends at junction newJunction1 and newPipe starts at
newJunction2.
*/
func (m *Model) BreakPipe(pipe, newPipe, newJunction1, newJunction2 string, ratio float64) error {
	if newJunction2 == "" {
		return fmt.Errorf("%w: break of %s needs a second junction name", ErrInvalidNode, pipe)
	}
	return m.splitOrBreak(pipe, newPipe, newJunction1, newJunction2, ratio)
}

func (m *Model) splitOrBreak(pipe, newPipe, j1, j2 string, ratio float64) error {
	l, ok := m.links[pipe]
	if !ok {
		return fmt.Errorf("%w: link %s", ErrNotFound, pipe)
	}
	if l.Type != Pipe {
		return fmt.Errorf("%w: %s is a %s, only pipes can be split", ErrInvalidLink, pipe, l.Type)
	}
	if ratio <= 0 || ratio >= 1 {
		return fmt.Errorf("%w: split ratio %g of %s not in (0, 1)", ErrInvalidLink, ratio, pipe)
	}
	if _, ok := m.links[newPipe]; ok {
		return fmt.Errorf("%w: link %s", ErrDuplicateName, newPipe)
	}
	for _, j := range []string{j1, j2} {
		if _, ok := m.nodes[j]; ok && j != "" {
			return fmt.Errorf("%w: node %s", ErrDuplicateName, j)
		}
	}

	start := m.nodes[l.StartNode]
	end := m.nodes[l.EndNode]
	elevation := start.Elevation + ratio*(end.Elevation-start.Elevation)

	if err := m.RemoveLink(pipe); err != nil {
		return err
	}
	if err := m.AddNode(junctionFrom(j1, elevation, start)); err != nil {
		return err
	}
	second := j1
	if j2 != "" {
		if err := m.AddNode(junctionFrom(j2, elevation, start)); err != nil {
			return err
		}
		second = j2
	}

	first := l.clone()
	first.EndNode = j1
	first.Length = l.Length * ratio
	if err := m.AddLink(first); err != nil {
		return err
	}

	rest := l.clone()
	rest.Name = newPipe
	rest.StartNode = second
	rest.Length = l.Length * (1 - ratio)
	return m.AddLink(rest)
}

// junctionFrom builds a junction carrying the thermal attributes of src.
func junctionFrom(name string, elevation float64, src *Node) *Node {
	return &Node{
		Name:               name,
		Type:               Junction,
		Elevation:          elevation,
		InitialTemperature: src.TemperatureAt(0),
		Thermal:            src.Thermal,
	}
}

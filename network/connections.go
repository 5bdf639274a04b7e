package network

// Side of a node on a connected link.
const (
	SideStart = -1 // node is the link's start node
	SideEnd   = 1  // node is the link's end node
)

// Connections lists, in link insertion order, the links touching a node.
// The slices are parallel.
type Connections struct {
	Links      []string  // connected link names
	Sides      []int     // SideStart or SideEnd
	Neighbours []string  // node at the other end of each link
	Lengths    []float64 // half pipe length, m (0 for pumps and valves)
}

// Connections derives the adjacency of a node from the current links.
func (m *Model) Connections(node string) Connections {
	var c Connections
	for _, name := range m.linkOrder {
		l := m.links[name]
		var side int
		var nb string
		switch node {
		case l.StartNode:
			side, nb = SideStart, l.EndNode
		case l.EndNode:
			side, nb = SideEnd, l.StartNode
		default:
			continue
		}
		c.Links = append(c.Links, name)
		c.Sides = append(c.Sides, side)
		c.Neighbours = append(c.Neighbours, nb)
		c.Lengths = append(c.Lengths, halfLength(l))
	}
	return c
}

// connectedPipes returns the pipes touching node.
func (m *Model) connectedPipes(node string) []*Link {
	var pipes []*Link
	for _, name := range m.linkOrder {
		l := m.links[name]
		if l.Type != Pipe {
			continue
		}
		if l.StartNode == node || l.EndNode == node {
			pipes = append(pipes, l)
		}
	}
	return pipes
}

func halfLength(l *Link) float64 {
	if l.Type != Pipe {
		return 0
	}
	return l.Length / 2
}

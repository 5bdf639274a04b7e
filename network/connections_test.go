package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeConnectionData(t *testing.T) {
	const (
		l1 = 1.0
		l2 = 2.0
	)
	m := testNetwork(t, l1, 0.01, l2, 0.02)

	check := func(node string, links []string, sides []int, neighbours []string) {
		t.Helper()
		c := m.Connections(node)
		assert.Equal(t, links, c.Links, node)
		assert.Equal(t, sides, c.Sides, node)
		assert.Equal(t, neighbours, c.Neighbours, node)
	}

	check("re", []string{"pu"}, []int{-1}, []string{"j1"})
	check("j1", []string{"pu", "p1"}, []int{1, -1}, []string{"re", "j2"})
	check("j2", []string{"p1", "p2", "va"}, []int{1, -1, -1}, []string{"j1", "ta", "j3"})
	check("j3", []string{"va"}, []int{1}, []string{"j2"})
	check("ta", []string{"p2"}, []int{1}, []string{"j2"})

	assert.Equal(t, []float64{0}, m.Connections("re").Lengths)
	assert.Equal(t, []float64{0, l1 / 2}, m.Connections("j1").Lengths)
	assert.Equal(t, []float64{l1 / 2, l2 / 2, 0}, m.Connections("j2").Lengths)
	assert.Equal(t, []float64{l2 / 2}, m.Connections("ta").Lengths)

	t.Run("reverse link", func(t *testing.T) {
		require.NoError(t, m.ReverseLink("p2"))
		check("j2", []string{"p1", "va", "p2"}, []int{1, -1, 1}, []string{"j1", "j3", "ta"})
		check("ta", []string{"p2"}, []int{-1}, []string{"j2"})
		assert.Equal(t, []float64{l1 / 2, 0, l2 / 2}, m.Connections("j2").Lengths)
	})

	t.Run("move end node", func(t *testing.T) {
		require.NoError(t, m.SetEndNode("p2", "j1"))
		check("j1", []string{"pu", "p1", "p2"}, []int{1, -1, 1}, []string{"re", "j2", "ta"})
		check("j2", []string{"p1", "va"}, []int{1, -1}, []string{"j1", "j3"})
		check("ta", []string{"p2"}, []int{-1}, []string{"j1"})
	})

	t.Run("split pipe", func(t *testing.T) {
		require.NoError(t, m.SplitPipe("p2", "p2s", "j_mid", 0.5))
		check("j1", []string{"pu", "p1", "p2s"}, []int{1, -1, 1}, []string{"re", "j2", "j_mid"})
		check("ta", []string{"p2"}, []int{-1}, []string{"j_mid"})
	})

	t.Run("break pipe", func(t *testing.T) {
		require.NoError(t, m.BreakPipe("p1", "p1b", "j1_break", "j2_break", 0.5))
		check("j1", []string{"pu", "p2s", "p1"}, []int{1, 1, -1}, []string{"re", "j_mid", "j1_break"})
		check("j2", []string{"va", "p1b"}, []int{-1, 1}, []string{"j3", "j2_break"})
	})

	t.Run("remove link", func(t *testing.T) {
		require.NoError(t, m.RemoveLink("va"))
		check("j2", []string{"p1b"}, []int{1}, []string{"j2_break"})
		check("j3", nil, nil, nil)
	})
}

func TestSetEndpointMovesLinkLast(t *testing.T) {
	m := testNetwork(t, 1, 0.01, 2, 0.02)

	require.NoError(t, m.SetEndNode("p1", "j3"))
	assert.Equal(t, []string{"va", "p1"}, m.Connections("j3").Links)
	assert.Equal(t, []int{1, 1}, m.Connections("j3").Sides)
	assert.Equal(t, []string{"j2", "j1"}, m.Connections("j3").Neighbours)
	assert.Equal(t, []string{"p2", "va"}, m.Connections("j2").Links)
	assert.Equal(t, []string{"re", "j3"}, m.Connections("j1").Neighbours)

	require.NoError(t, m.SetStartNode("pu", "j2"))
	assert.Equal(t, []string{"p2", "va", "pu"}, m.Connections("j2").Links)
	assert.Equal(t, []int{-1, -1, -1}, m.Connections("j2").Sides)
	assert.Empty(t, m.Connections("re").Links)

	l := link(t, m, "p1")
	assert.Equal(t, "j1", l.StartNode)
	assert.Equal(t, "j3", l.EndNode)
	assert.Equal(t, 1.0, l.Length)
}

func TestModelErrors(t *testing.T) {
	m := testNetwork(t, 1, 0.1, 1, 0.1)

	_, err := m.AddJunction("j1", 0, 0)
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = m.AddPipe("px", "j1", "nowhere", 1, 0.1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.AddPipe("px", "j1", "j1", 1, 0.1)
	assert.ErrorIs(t, err, ErrInvalidLink)

	assert.ErrorIs(t, m.SplitPipe("pu", "pu2", "jx", 0.5), ErrInvalidLink)
	assert.ErrorIs(t, m.SplitPipe("p1", "p1x", "jx", 1.5), ErrInvalidLink)
	assert.ErrorIs(t, m.SplitPipe("p1", "p2", "jx", 0.5), ErrDuplicateName)
	assert.ErrorIs(t, m.RemoveNode("j1"), ErrInvalidNode)
	assert.ErrorIs(t, m.RemoveLink("nope"), ErrNotFound)
	assert.ErrorIs(t, m.SetEndNode("p1", "j1"), ErrInvalidLink)
}

func TestCopyIsIndependent(t *testing.T) {
	m := testNetwork(t, 1, 0.1, 1, 0.1)
	c := m.Copy()

	require.NoError(t, c.SplitPipe("p1", "p1s", "mid", 0.5))
	link(t, c, "p2").Length = 42

	assert.Equal(t, 5, m.NumNodes())
	assert.Equal(t, 4, m.NumLinks())
	assert.Equal(t, 1.0, link(t, m, "p2").Length)
	assert.Equal(t, 6, c.NumNodes())
	assert.Equal(t, []string{"p2", "p1", "p1s"}, c.LinkNames(Pipe))
}

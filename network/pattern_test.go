package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries(t *testing.T) {
	p := &Pattern{Name: "daily", Multipliers: []float64{1, 2, 3}, Step: 3600}

	tests := []struct {
		name string
		t    int64
		want float64
	}{
		{"first step", 0, 10},
		{"inside first step", 3599, 10},
		{"second step", 3600, 20},
		{"third step", 7200, 30},
		{"wraps around", 3 * 3600, 10},
	}
	s := Series{Base: 10, Pattern: p}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.At(tt.t))
		})
	}

	assert.Equal(t, 4.0, Constant(4).At(1e9))
	assert.Equal(t, 1.0, (*Pattern)(nil).At(100))
}

func TestBoundaryFromString(t *testing.T) {
	for _, want := range []BoundaryCondition{BoundaryPipe, BoundarySoil, BoundaryAir} {
		got, err := BoundaryFromString(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := BoundaryFromString("")
	require.NoError(t, err)
	assert.Equal(t, BoundaryPipe, got)

	_, err = BoundaryFromString("water")
	assert.ErrorIs(t, err, ErrInvalidBoundary)
	assert.False(t, BoundaryCondition(7).Valid())
}

package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeGrid(t *testing.T) {
	tests := []struct {
		name     string
		step     int64
		duration int64
		stamps   []int64
	}{
		{"exact multiple", 3600, 10800, []int64{0, 3600, 7200, 10800}},
		{"remainder adds a final stamp", 3600, 5000, []int64{0, 3600, 7200}},
		{"zero duration", 60, 0, []int64{0}},
		{"step longer than duration", 900, 60, []int64{0, 900}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewTimeGrid(tt.step, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.stamps, g.Stamps())
			assert.Equal(t, len(tt.stamps), g.Count())
			assert.Equal(t, tt.step, g.Step())
			assert.Equal(t, tt.duration, g.Duration())
			assert.Len(t, g.Indices(), g.Count())
			assert.Equal(t, tt.stamps[len(tt.stamps)-1], g.At(g.Count()-1))
		})
	}

	g, err := NewTimeGrid(3600, 86400)
	require.NoError(t, err)
	assert.Equal(t, 25, g.Count())

	_, err = NewTimeGrid(0, 3600)
	assert.ErrorIs(t, err, ErrInvalidTimeGrid)
	_, err = NewTimeGrid(3600, -1)
	assert.ErrorIs(t, err, ErrInvalidTimeGrid)
}

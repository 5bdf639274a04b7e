package network

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleNetwork = `{
  "options": {
    "time": {"duration": 7200, "hydraulic_timestep": 600, "pattern_timestep": 3600},
    "hydraulic": {"specific_gravity": 0.998},
    "thermal": {"heat_capacity": 4180, "max_pipe_length": 50, "boundary_classification": true}
  },
  "patterns": [{"name": "warm", "multipliers": [1.0, 1.5]}],
  "curves": [{"name": "vc", "points": [[0, 0], [10, 100]]}],
  "junctions": [
    {"name": "j1", "elevation": 3, "initial_temperature": 14,
     "thermal": {"boundary": "soil", "depth": 1.5, "soil_diameter": 0.8,
                 "soil_conductivity": {"value": 1.2}}}
  ],
  "tanks": [
    {"name": "t1", "elevation": 10, "init_level": 2, "max_level": 8, "diameter": 5, "volume_curve": "vc"}
  ],
  "reservoirs": [
    {"name": "r1", "temperature": {"value": 8, "pattern": "warm"},
     "thermal": {"boundary": "air", "absorptivity": {"value": 0.9}}}
  ],
  "pipes": [
    {"name": "p1", "start_node": "r1", "end_node": "j1", "length": 120, "diameter": 0.15, "thickness": 0.012},
    {"name": "p2", "start_node": "j1", "end_node": "t1", "length": 40, "diameter": 0.15}
  ],
  "pumps": [],
  "valves": []
}`

func TestLoad(t *testing.T) {
	m, err := Load(strings.NewReader(exampleNetwork))
	require.NoError(t, err)

	assert.Equal(t, int64(7200), m.Options.Time.Duration)
	assert.Equal(t, int64(600), m.Options.Time.HydraulicTimestep)
	assert.InDelta(t, 998.0, m.Options.FluidDensity(), 1e-9)
	assert.Equal(t, 4180.0, m.Options.Thermal.HeatCapacity)
	require.NotNil(t, m.Options.Thermal.MaxPipeLength)
	assert.Equal(t, 50.0, *m.Options.Thermal.MaxPipeLength)
	assert.True(t, m.Options.Thermal.BoundaryClassification)

	j1, ok := m.Node("j1")
	require.True(t, ok)
	assert.Equal(t, BoundarySoil, j1.Thermal.Boundary)
	assert.Equal(t, 1.5, j1.Thermal.Depth)
	assert.Equal(t, 1.2, j1.Thermal.SoilConductivity.At(0))
	assert.Equal(t, DefaultSoilHeatCapacity, j1.Thermal.SoilHeatCapacity.At(0))

	r1, _ := m.Node("r1")
	assert.Equal(t, BoundaryAir, r1.Thermal.Boundary)
	assert.Equal(t, 8.0, r1.TemperatureAt(0))
	assert.Equal(t, 12.0, r1.TemperatureAt(3600))
	assert.Equal(t, 0.9, r1.Thermal.Absorptivity.At(0))

	t1, _ := m.Node("t1")
	assert.Equal(t, BoundaryPipe, t1.Thermal.Boundary)
	assert.InDelta(t, 20.0, t1.TankVolume(t1.InitLevel), 1e-12)

	p1, _ := m.Link("p1")
	assert.Equal(t, 0.012, p1.Thickness)
	assert.Equal(t, DefaultInsulationThickness, p1.InsulationThickness)

	assert.Equal(t, []string{"j1"}, m.NodeNames(Junction))
	assert.Equal(t, []string{"p1", "p2"}, m.LinkNames(Pipe))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown boundary", `{"junctions": [{"name": "j", "thermal": {"boundary": "water"}}]}`, ErrInvalidBoundary},
		{"unknown pattern", `{"reservoirs": [{"name": "r", "temperature": {"value": 1, "pattern": "x"}}]}`, ErrNotFound},
		{"dangling pipe", `{"junctions": [{"name": "j"}], "pipes": [{"name": "p", "start_node": "j", "end_node": "k"}]}`, ErrNotFound},
		{"duplicate node", `{"junctions": [{"name": "j"}], "tanks": [{"name": "j"}]}`, ErrDuplicateName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Load(strings.NewReader(`{"junction": []}`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.json")
	require.NoError(t, os.WriteFile(path, []byte(exampleNetwork), 0o644))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumNodes())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

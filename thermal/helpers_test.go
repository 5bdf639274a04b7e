package thermal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thermonet/hydraulics"
	"thermonet/logger"
	"thermonet/network"
)

type constWeather struct {
	air, solar, h, soil, probe float64
}

func (w constWeather) AirTemperature(int64) float64        { return w.air }
func (w constWeather) SolarRadiation(int64) float64        { return w.solar }
func (w constWeather) ConvectiveCoefficient(int64) float64 { return w.h }
func (w constWeather) SoilTemperature(int64) float64       { return w.soil }
func (w constWeather) ProbeDepth() float64                 { return w.probe }

type logLine struct {
	level   logger.Level
	message string
	keyvals []any
}

type recordedLog struct {
	lines []logLine
}

func (r *recordedLog) Log(level logger.Level, message string, keyvals ...any) {
	r.lines = append(r.lines, logLine{level, message, keyvals})
}

func (r *recordedLog) at(level logger.Level) []logLine {
	var out []logLine
	for _, l := range r.lines {
		if l.level == level {
			out = append(out, l)
		}
	}
	return out
}

// recordLogs routes package logger to a recorder for the rest of the test.
func recordLogs(t *testing.T) *recordedLog {
	t.Helper()
	r := &recordedLog{}
	logger.Init(r)
	t.Cleanup(func() { logger.Init() })
	return r
}

// chain builds re -p1-> j1 -p2-> j2 on a one hour step over the given hours.
func chain(t *testing.T, hours int64, tr, tj float64) *network.Model {
	t.Helper()
	m := network.NewModel()
	m.Options.Time.HydraulicTimestep = 3600
	m.Options.Time.Duration = hours * 3600

	_, err := m.AddReservoir("re", network.Constant(tr))
	require.NoError(t, err)
	_, err = m.AddJunction("j1", 0, tj)
	require.NoError(t, err)
	_, err = m.AddJunction("j2", 0, tj)
	require.NoError(t, err)
	_, err = m.AddPipe("p1", "re", "j1", 100, 0.1)
	require.NoError(t, err)
	_, err = m.AddPipe("p2", "j1", "j2", 100, 0.1)
	require.NoError(t, err)
	return m
}

func fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// steady returns hydraulic results with constant flows, demands and heads on
// the model's time grid.
func steady(t *testing.T, m *network.Model, flows, demands, heads map[string]float64) *hydraulics.Results {
	t.Helper()
	grid, err := NewTimeGrid(m.Options.Time.HydraulicTimestep, m.Options.Time.Duration)
	require.NoError(t, err)
	res := hydraulics.NewResults(grid.Stamps())
	n := grid.Count()
	for _, l := range m.Links() {
		require.NoError(t, res.SetLink(l.Name, fill(n, flows[l.Name])))
	}
	for _, kind := range []network.NodeType{network.Junction, network.Tank, network.Reservoir} {
		for _, name := range m.NodeNames(kind) {
			require.NoError(t, res.SetNode(name, fill(n, demands[name]), nil, fill(n, heads[name])))
		}
	}
	return res
}

func node(t *testing.T, m *network.Model, name string) *network.Node {
	t.Helper()
	n, ok := m.Node(name)
	require.True(t, ok, name)
	return n
}

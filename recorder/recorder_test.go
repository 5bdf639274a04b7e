package recorder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"thermonet/thermal"
)

func testResults() *thermal.Results {
	return &thermal.Results{
		Times:            []int64{0, 3600, 7200},
		Nodes:            []string{"j1", "re"},
		Tanks:            []string{"ta"},
		WaterTemperature: mat.NewDense(3, 2, []float64{10, 20, 14, 20, 18, 20}),
		TankVolume:       mat.NewDense(3, 1, []float64{5, 6, 7}),
	}
}

func readRows(t *testing.T, path string, out interface{}) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gocsv.UnmarshalFile(f, out))
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := New(dir, testResults(), []string{"j1"})
	require.NotEmpty(t, r.RunID)
	require.NoError(t, r.Save(context.Background()))

	var water []*TemperatureRow
	readRows(t, filepath.Join(dir, WaterTemperatureFile), &water)
	require.Len(t, water, 6)
	assert.Equal(t, TemperatureRow{RunID: r.RunID, Time: 3600, Node: "j1", Temperature: 14}, *water[2])
	for _, row := range water {
		assert.Equal(t, r.RunID, row.RunID)
	}

	var volumes []*VolumeRow
	readRows(t, filepath.Join(dir, TankVolumeFile), &volumes)
	require.Len(t, volumes, 3)
	assert.Equal(t, 7.0, volumes[2].Volume)

	var summary []*SummaryRow
	readRows(t, filepath.Join(dir, SummaryFile), &summary)
	require.Len(t, summary, 2)
	assert.Equal(t, "j1", summary[0].Node)
	assert.InDelta(t, 14, summary[0].Mean, 1e-12)
	assert.InDelta(t, 4, summary[0].Std, 1e-12)
	assert.Equal(t, 10.0, summary[0].Min)
	assert.Equal(t, 18.0, summary[0].Max)
	assert.Equal(t, 18.0, summary[0].Final)
	assert.Equal(t, 0.0, summary[1].Std)

	_, err := os.Stat(filepath.Join(dir, SoilTemperatureFile))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, PlotFile))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveSoil(t *testing.T) {
	res := testResults()
	res.SoilTemperature = mat.NewDense(3, 2, []float64{10, 10, 11, 10, 12, 10})
	res.TankVolume = nil
	res.Tanks = nil

	dir := t.TempDir()
	require.NoError(t, New(dir, res, nil).Save(context.Background()))

	var soil []*TemperatureRow
	readRows(t, filepath.Join(dir, SoilTemperatureFile), &soil)
	require.Len(t, soil, 6)
	assert.Equal(t, 12.0, soil[4].Temperature)

	for _, name := range []string{TankVolumeFile, PlotFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err), name)
	}
}

func TestPlotUnknownNode(t *testing.T) {
	err := Plot(filepath.Join(t.TempDir(), "p.png"), testResults(), []string{"nope"})
	assert.Error(t, err)

	err = New(t.TempDir(), testResults(), []string{"nope"}).Save(context.Background())
	assert.Error(t, err)
}

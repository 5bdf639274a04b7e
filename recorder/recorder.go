package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"thermonet/logger"
	"thermonet/thermal"
)

// Output file names.
const (
	WaterTemperatureFile = "water_temperature.csv"
	SoilTemperatureFile  = "soil_temperature.csv"
	TankVolumeFile       = "tank_volume.csv"
	SummaryFile          = "summary.csv"
	PlotFile             = "water_temperature.png"
)

// TemperatureRow is one line of a temperature file.
type TemperatureRow struct {
	RunID       string  `csv:"run_id"`
	Time        int64   `csv:"time"`        // s
	Node        string  `csv:"node"`        // node name
	Temperature float64 `csv:"temperature"` // degree C
}

// VolumeRow is one line of the tank volume file.
type VolumeRow struct {
	RunID  string  `csv:"run_id"`
	Time   int64   `csv:"time"`   // s
	Tank   string  `csv:"tank"`   // tank name
	Volume float64 `csv:"volume"` // m3
}

// SummaryRow holds the water temperature statistics of one node over a run.
type SummaryRow struct {
	RunID string  `csv:"run_id"`
	Node  string  `csv:"node"`
	Mean  float64 `csv:"mean"`  // degree C
	Std   float64 `csv:"std"`   // K
	Min   float64 `csv:"min"`   // degree C
	Max   float64 `csv:"max"`   // degree C
	Final float64 `csv:"final"` // degree C at the last stamp
}

// Recorder writes the tables of one run to a directory.
type Recorder struct {
	RunID     string
	Dir       string
	PlotNodes []string // nodes drawn in PlotFile, none: no plot

	res *thermal.Results
}

// New stamps res with a fresh run id.
func New(dir string, res *thermal.Results, plotNodes []string) *Recorder {
	return &Recorder{
		RunID:     uuid.NewString(),
		Dir:       dir,
		PlotNodes: plotNodes,
		res:       res,
	}
}

// Save writes every table concurrently. Tables the run did not produce are skipped.
func (r *Recorder) Save(ctx context.Context) error {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.write(WaterTemperatureFile, TemperatureRows(r.RunID, r.res.Times, r.res.Nodes, r.res.WaterTemperature))
	})
	if r.res.SoilTemperature != nil {
		g.Go(func() error {
			return r.write(SoilTemperatureFile, TemperatureRows(r.RunID, r.res.Times, r.res.Nodes, r.res.SoilTemperature))
		})
	}
	if r.res.TankVolume != nil {
		g.Go(func() error {
			return r.write(TankVolumeFile, VolumeRows(r.RunID, r.res))
		})
	}
	g.Go(func() error {
		return r.write(SummaryFile, Summarize(r.RunID, r.res))
	})
	if len(r.PlotNodes) > 0 {
		g.Go(func() error {
			path := filepath.Join(r.Dir, PlotFile)
			if err := Plot(path, r.res, r.PlotNodes); err != nil {
				return err
			}
			logger.Info("saved plot", "path", path)
			return nil
		})
	}
	return g.Wait()
}

func (r *Recorder) write(name string, rows interface{}) error {
	path := filepath.Join(r.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("saved results", "path", path, "run_id", r.RunID)
	return nil
}

// TemperatureRows flattens a [t, node] table into long format rows.
func TemperatureRows(runID string, times []int64, nodes []string, m *mat.Dense) []*TemperatureRow {
	rows := make([]*TemperatureRow, 0, len(times)*len(nodes))
	for k, t := range times {
		for j, name := range nodes {
			rows = append(rows, &TemperatureRow{RunID: runID, Time: t, Node: name, Temperature: m.At(k, j)})
		}
	}
	return rows
}

// VolumeRows flattens the tank volume table.
func VolumeRows(runID string, res *thermal.Results) []*VolumeRow {
	rows := make([]*VolumeRow, 0, len(res.Times)*len(res.Tanks))
	for k, t := range res.Times {
		for j, name := range res.Tanks {
			rows = append(rows, &VolumeRow{RunID: runID, Time: t, Tank: name, Volume: res.TankVolume.At(k, j)})
		}
	}
	return rows
}

// Summarize returns the water temperature statistics of every node.
func Summarize(runID string, res *thermal.Results) []*SummaryRow {
	rows := make([]*SummaryRow, len(res.Nodes))
	for j, name := range res.Nodes {
		col := mat.Col(nil, j, res.WaterTemperature)
		mean, std := stat.MeanStdDev(col, nil)
		if len(col) < 2 {
			std = 0
		}
		rows[j] = &SummaryRow{
			RunID: runID,
			Node:  name,
			Mean:  mean,
			Std:   std,
			Min:   floats.Min(col),
			Max:   floats.Max(col),
			Final: col[len(col)-1],
		}
	}
	return rows
}

package recorder

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"thermonet/thermal"
)

// Plot draws the water temperature of the given nodes against time in hours
// and saves it; the format follows the file extension.
func Plot(path string, res *thermal.Results, nodes []string) error {
	p := plot.New()
	p.Title.Text = "Water temperature"
	p.X.Label.Text = "time, h"
	p.Y.Label.Text = "temperature, degree C"

	var lines []interface{}
	for _, name := range nodes {
		water, ok := res.Water(name)
		if !ok {
			return fmt.Errorf("plot: unknown node %s", name)
		}
		pts := make(plotter.XYs, len(water))
		for k, v := range water {
			pts[k].X = float64(res.Times[k]) / 3600
			pts[k].Y = v
		}
		lines = append(lines, name, pts)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

package thermal

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"thermonet/hydraulics"
	"thermonet/network"
)

// stepInput is what the rows of step k read. Nothing in it is written.
type stepInput struct {
	k          int
	water      []float64 // water temperature at k-1, degree C, [N]
	soil       []float64 // soil temperature at k-1, degree C, [N]
	tankVolume []float64 // tank water volume at k, m3, [tanks]
}

// assembler owns the 2N system of one run. Row i < N is the energy balance of
// the water of node i, row N+i the one of its soil.
type assembler struct {
	ix      *Index
	snap    *hydraulics.Snapshot
	weather Weather
	grid    TimeGrid
	rhoCp   float64 // J/m3 K
	workers int

	c *mat.Dense    // [2N, 2N]
	b *mat.VecDense // [2N]
}

func newAssembler(ix *Index, snap *hydraulics.Snapshot, w Weather, grid TimeGrid, opts Options) *assembler {
	n2 := 2 * ix.NumNodes()
	return &assembler{
		ix:      ix,
		snap:    snap,
		weather: w,
		grid:    grid,
		rhoCp:   opts.rhoCp(),
		workers: opts.workers(),
		c:       mat.NewDense(n2, n2, nil),
		b:       mat.NewVecDense(n2, nil),
	}
}

// assemble resets C to identity and b to zero, then writes every node's rows.
// Nodes are split into contiguous blocks built concurrently; a node only
// writes its own two rows.
func (a *assembler) assemble(ctx context.Context, in *stepInput) (*mat.Dense, *mat.VecDense, error) {
	a.c.Zero()
	a.b.Zero()
	n2, _ := a.c.Dims()
	for i := 0; i < n2; i++ {
		a.c.Set(i, i, 1)
	}

	n := len(a.ix.nodes)
	size := (n + a.workers - 1) / a.workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				a.buildRows(&a.ix.nodes[i], in)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a.c, a.b, nil
}

func (a *assembler) buildRows(rec *nodeRecord, in *stepInput) {
	t := a.grid.At(in.k)

	if rec.kind == network.Reservoir {
		a.b.SetVec(rec.id, rec.node.Temperature.At(t))
	} else {
		a.waterRow(rec, in)
	}

	switch rec.class {
	case network.BoundarySoil, network.BoundaryAir:
		a.soilRow(rec, in)
	default:
		a.b.SetVec(rec.soil, rec.node.Thermal.SoilTemperature.At(t))
	}
}

/*
waterRow writes the upwind balance of a junction or tank, m3/s:

	C[id,id] = (V + Vacc)/dt + sum(outflow) + demand + g1/rhoCp
	C[id,nb] = -inflow from nb
	C[id,ID] = -g1/rhoCp
	b[id]    = T(k-1) (V + Vacc)/dt
*/
func (a *assembler) waterRow(rec *nodeRecord, in *stepInput) {
	k := in.k
	dt := float64(a.grid.Step())

	vol := rec.cellVolume
	if rec.tank >= 0 {
		vol += in.tankVolume[rec.tank]
	}
	g := rec.g1 / a.rhoCp

	diag := vol/dt + a.snap.Demand.At(k, rec.id) + g
	for j, l := range rec.links {
		q := a.snap.FlowMagnitude.At(k, l)
		if a.snap.FlowSign.At(k, l)*rec.sides[j] > 0 {
			nb := rec.neighbours[j]
			a.c.Set(rec.id, nb, a.c.At(rec.id, nb)-q)
		} else {
			diag += q
		}
	}
	a.c.Set(rec.id, rec.id, diag)
	a.c.Set(rec.id, rec.soil, -g)
	a.b.SetVec(rec.id, in.water[rec.id]*vol/dt)
}

/*
soilRow writes the balance of the soil around a soil or air BC node, W:

	C[ID,ID] = Cv(t) Vs/dt + g1 + 1/R2
	C[ID,id] = -g1
	b[ID]    = Cv(t-1) Ts(k-1) Vs/dt + Tb(t)/R2 + G(t) A a(t)

Tb is the probe soil temperature for soil BC and the air temperature for air
BC; the radiation term only applies to air BC.
*/
func (a *assembler) soilRow(rec *nodeRecord, in *stepInput) {
	t := a.grid.At(in.k)
	tPrev := a.grid.At(in.k - 1)
	dt := float64(a.grid.Step())
	th := &rec.node.Thermal

	g2 := reciprocal(externalResistance(rec, a.weather, t))

	var bound, rad float64
	if rec.class == network.BoundaryAir {
		bound = a.weather.AirTemperature(t)
		rad = a.weather.SolarRadiation(t) * rec.interfaceArea * th.Absorptivity.At(t)
	} else {
		bound = a.weather.SoilTemperature(t)
	}

	a.c.Set(rec.soil, rec.soil, th.SoilHeatCapacity.At(t)*rec.soilVolume/dt+rec.g1+g2)
	a.c.Set(rec.soil, rec.id, -rec.g1)
	a.b.SetVec(rec.soil, th.SoilHeatCapacity.At(tPrev)*in.soil[rec.id]*rec.soilVolume/dt+bound*g2+rad)
}

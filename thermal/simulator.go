package thermal

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"thermonet/hydraulics"
	"thermonet/logger"
	"thermonet/network"
)

// State of a Simulator.
type State int

const (
	Uninitialized State = iota
	Initialized
	Stepping
	Done
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var errNonFinite = errors.New("solution is not finite")

// Simulator marches water and soil temperatures over the time grid with an
// implicit upwind scheme. It is not safe for concurrent use.
type Simulator struct {
	ix      *Index
	grid    TimeGrid
	snap    *hydraulics.Snapshot
	weather Weather
	opts    Options
	groups  [3]BoundaryGroups // by network.NodeType
	asm     *assembler

	state    State
	k        int   // last stored time index
	progress int   // twelfths of the run logged so far
	err      error // fatal error of a failed step

	water      *mat.Dense // degree C, [T, N]
	soil       *mat.Dense // degree C, [T, N]
	tankVolume *mat.Dense // m3, [T, tanks]
	levelWarn  []bool     // by tank, out of range level already logged
}

/*
NewSimulator checks the configuration of a run and prepares it.

Args:
	m: network, meshed beforehand if needed
	hyd: hydraulic results covering every stamp of the time grid
	w: weather, may be nil when no node is soil or air BC
	opts: run options

Returns:
	a simulator in the Uninitialized state
*/
func NewSimulator(m *network.Model, hyd *hydraulics.Results, w Weather, opts Options) (*Simulator, error) {
	grid, err := NewTimeGrid(m.Options.Time.HydraulicTimestep, m.Options.Time.Duration)
	if err != nil {
		return nil, err
	}
	if opts.Density <= 0 || opts.HeatCapacity <= 0 {
		return nil, fmt.Errorf("fluid density %g kg/m3 and heat capacity %g J/kg K must be positive", opts.Density, opts.HeatCapacity)
	}

	ix, err := NewIndex(m)
	if err != nil {
		return nil, err
	}
	if !opts.BoundaryClassification {
		for i := range ix.nodes {
			if ix.nodes[i].class.Valid() {
				ix.nodes[i].class = network.BoundaryPipe
			}
		}
	}

	s := &Simulator{
		ix:      ix,
		grid:    grid,
		weather: w,
		opts:    opts,
	}
	for kind, ids := range [][]int{ix.junctions, ix.tanks, ix.reservoirs} {
		names, classes := ix.group(ids)
		g, err := ClassifyBoundaries(names, ids, classes, ix.NumNodes())
		if err != nil {
			return nil, err
		}
		s.groups[kind] = g
	}

	var nSoil, nAir int
	for i := range ix.nodes {
		rec := &ix.nodes[i]
		switch rec.class {
		case network.BoundarySoil:
			nSoil++
		case network.BoundaryAir:
			nAir++
		default:
			continue
		}
		if w == nil {
			return nil, fmt.Errorf("%w: %s node %s", ErrMissingWeather, rec.class, rec.name)
		}
		if err := checkGeometry(rec, w); err != nil {
			return nil, err
		}
	}

	s.snap, err = hydraulics.Extract(hyd, ix.Axes(), grid.Stamps(), opts.IncludeLeakDemand)
	if errors.Is(err, hydraulics.ErrMissingTime) {
		return nil, fmt.Errorf("%w: %w", ErrShortHydraulics, err)
	}
	if err != nil {
		return nil, err
	}
	s.asm = newAssembler(ix, s.snap, w, grid, opts)

	logger.Info("thermal simulator ready",
		"nodes", ix.NumNodes(),
		"links", ix.NumLinks(),
		"steps", grid.Count(),
		"step", grid.Step(),
		"soil", nSoil,
		"air", nAir,
		"workers", opts.workers(),
	)
	return s, nil
}

func (s *Simulator) State() State { return s.state }
func (s *Simulator) Grid() TimeGrid { return s.grid }
func (s *Simulator) Index() *Index { return s.ix }
func (s *Simulator) Snapshot() *hydraulics.Snapshot { return s.snap }

// Boundaries returns the boundary groups of one node kind.
func (s *Simulator) Boundaries(kind network.NodeType) BoundaryGroups {
	return s.groups[kind]
}

// Initialize stores the t=0 state: initial water temperatures, reservoir
// temperatures at 0, tank volumes at the initial level and soil temperatures.
func (s *Simulator) Initialize() error {
	if s.state != Uninitialized {
		return fmt.Errorf("initialize: simulator is %s", s.state)
	}
	T, N := s.grid.Count(), s.ix.NumNodes()
	s.water = mat.NewDense(T, N, nil)
	s.soil = mat.NewDense(T, N, nil)
	if nt := s.ix.NumTanks(); nt > 0 {
		s.tankVolume = mat.NewDense(T, nt, nil)
	}

	for i := range s.ix.nodes {
		rec := &s.ix.nodes[i]
		s.water.Set(0, i, rec.node.TemperatureAt(0))
		s.soil.Set(0, i, rec.node.Thermal.SoilTemperature.At(0))
	}
	s.levelWarn = make([]bool, s.ix.NumTanks())
	for j, id := range s.ix.tanks {
		n := s.ix.nodes[id].node
		s.setTankVolume(0, j, n, n.InitLevel)
	}

	s.k = 0
	s.state = Initialized
	if T == 1 {
		s.state = Done
	}
	return nil
}

// Step solves the next time index. It returns ErrDone once the last stamp is stored.
func (s *Simulator) Step() error {
	return s.step(context.Background())
}

func (s *Simulator) step(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	switch s.state {
	case Uninitialized:
		return errors.New("step: simulator is not initialized")
	case Done:
		return ErrDone
	}

	k := s.k + 1
	t := s.grid.At(k)

	in := &stepInput{
		k:     k,
		water: s.water.RawRowView(k - 1),
		soil:  s.soil.RawRowView(k - 1),
	}
	if s.tankVolume != nil {
		for j, id := range s.ix.tanks {
			n := s.ix.nodes[id].node
			s.setTankVolume(k, j, n, s.snap.TankLevel.At(k, j))
		}
		in.tankVolume = s.tankVolume.RawRowView(k)
	}

	c, b, err := s.asm.assemble(ctx, in)
	if err != nil {
		return err
	}

	var x mat.VecDense
	err = x.SolveVec(c, b)
	if err == nil && !allFinite(x.RawVector().Data) {
		err = errNonFinite
	}
	if err != nil {
		s.err = &SolveError{Index: k, Time: t, Err: err}
		s.state = Done
		logger.Error("thermal step failed", "index", k, "time", t, "err", err)
		return s.err
	}

	N := s.ix.NumNodes()
	for i := 0; i < N; i++ {
		s.water.Set(k, i, x.AtVec(i))
		s.soil.Set(k, i, x.AtVec(N+i))
	}

	s.k = k
	s.state = Stepping
	s.logProgress(k)
	if k == s.grid.Count()-1 {
		s.state = Done
	}
	return nil
}

// setTankVolume stores the volume of tank j at time index k and warns the
// first time the tank leaves its operating levels.
func (s *Simulator) setTankVolume(k, j int, n *network.Node, level float64) {
	s.tankVolume.Set(k, j, n.TankVolume(level))
	if !s.levelWarn[j] && !n.LevelInRange(level) {
		s.levelWarn[j] = true
		logger.Warn("tank level outside its operating range",
			"tank", n.Name, "t", s.grid.At(k), "level", level, "min", n.MinLevel, "max", n.MaxLevel)
	}
}

func allFinite(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s *Simulator) logProgress(k int) {
	steps := s.grid.Count() - 1
	for s.progress < 12 && k >= int(float64(steps)/12*float64(s.progress+1)) {
		s.progress++
		logger.Info(fmt.Sprintf("%d / 12 calculated", s.progress), "time", s.grid.At(k))
	}
}

// Run initializes if needed and steps to the end of the grid. The context is
// checked between steps. On failure no results are returned.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	if s.state == Uninitialized {
		if err := s.Initialize(); err != nil {
			return nil, err
		}
	}
	for s.state != Done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.step(ctx); err != nil {
			return nil, err
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	logger.Info("thermal run finished", "steps", s.grid.Count())
	return s.Results(), nil
}

// Results returns the tables computed so far. Rows past the current index are zero.
func (s *Simulator) Results() *Results {
	r := &Results{
		Times:            s.grid.Stamps(),
		Nodes:            s.ix.NodeNames(),
		Tanks:            s.ix.TankNames(),
		WaterTemperature: s.water,
		TankVolume:       s.tankVolume,
	}
	if s.opts.BoundaryClassification {
		r.SoilTemperature = s.soil
	}
	return r
}

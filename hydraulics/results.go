package hydraulics

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

var (
	ErrIncomplete   = errors.New("incomplete hydraulic results")
	ErrDanglingLink = errors.New("link missing from hydraulic results")
	ErrDanglingNode = errors.New("node missing from hydraulic results")
	ErrMissingTime  = errors.New("time stamp missing from hydraulic results")
)

// LinkRow is one line of the link results file.
type LinkRow struct {
	Time     int64   `csv:"time"`     // s
	Link     string  `csv:"link"`     // link name
	Flowrate float64 `csv:"flowrate"` // signed, m3/s
}

// NodeRow is one line of the node results file.
type NodeRow struct {
	Time       int64   `csv:"time"`        // s
	Node       string  `csv:"node"`        // node name
	Demand     float64 `csv:"demand"`      // m3/s
	LeakDemand float64 `csv:"leak_demand"` // m3/s
	Head       float64 `csv:"head"`        // m
}

// Results are hydraulic time series keyed by element name. Every series has
// one value per entry of Times.
type Results struct {
	Times      []int64
	Flowrate   map[string][]float64
	Demand     map[string][]float64
	LeakDemand map[string][]float64
	Head       map[string][]float64
}

// NewResults returns empty results on the given time axis.
func NewResults(times []int64) *Results {
	return &Results{
		Times:      append([]int64(nil), times...),
		Flowrate:   make(map[string][]float64),
		Demand:     make(map[string][]float64),
		LeakDemand: make(map[string][]float64),
		Head:       make(map[string][]float64),
	}
}

// SetLink stores the signed flow rate series of a link.
func (r *Results) SetLink(name string, flowrate []float64) error {
	if len(flowrate) != len(r.Times) {
		return fmt.Errorf("%w: link %s has %d values for %d times", ErrIncomplete, name, len(flowrate), len(r.Times))
	}
	r.Flowrate[name] = flowrate
	return nil
}

// SetNode stores demand, leak demand and head series of a node. A nil leak
// demand means none.
func (r *Results) SetNode(name string, demand, leakDemand, head []float64) error {
	if leakDemand == nil {
		leakDemand = make([]float64, len(r.Times))
	}
	for _, s := range [][]float64{demand, leakDemand, head} {
		if len(s) != len(r.Times) {
			return fmt.Errorf("%w: node %s has %d values for %d times", ErrIncomplete, name, len(s), len(r.Times))
		}
	}
	r.Demand[name] = demand
	r.LeakDemand[name] = leakDemand
	r.Head[name] = head
	return nil
}

// LoadFiles reads long format link and node result files written as CSV.
func LoadFiles(linksPath, nodesPath string) (*Results, error) {
	var links []*LinkRow
	if err := unmarshalFile(linksPath, &links); err != nil {
		return nil, err
	}
	var nodes []*NodeRow
	if err := unmarshalFile(nodesPath, &nodes); err != nil {
		return nil, err
	}
	return FromRows(links, nodes)
}

func unmarshalFile(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// FromRows pivots long format rows into Results. The time axis is the sorted
// set of times found in the rows; every element needs exactly one row per time.
func FromRows(links []*LinkRow, nodes []*NodeRow) (*Results, error) {
	seen := make(map[int64]bool)
	var times []int64
	for _, row := range links {
		if !seen[row.Time] {
			seen[row.Time] = true
			times = append(times, row.Time)
		}
	}
	for _, row := range nodes {
		if !seen[row.Time] {
			seen[row.Time] = true
			times = append(times, row.Time)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	pos := make(map[int64]int, len(times))
	for i, t := range times {
		pos[t] = i
	}

	type stamp struct {
		key  string
		time int64
	}
	rowSeen := make(map[stamp]bool)
	mark := func(key string, t int64) error {
		st := stamp{key, t}
		if rowSeen[st] {
			return fmt.Errorf("%w: %s has more than one row at t=%d", ErrIncomplete, key, t)
		}
		rowSeen[st] = true
		return nil
	}

	r := NewResults(times)
	filled := make(map[string]int)
	for _, row := range links {
		key := "link:" + row.Link
		if err := mark(key, row.Time); err != nil {
			return nil, err
		}
		s, ok := r.Flowrate[row.Link]
		if !ok {
			s = make([]float64, len(times))
			r.Flowrate[row.Link] = s
		}
		s[pos[row.Time]] = row.Flowrate
		filled[key]++
	}
	for _, row := range nodes {
		key := "node:" + row.Node
		if err := mark(key, row.Time); err != nil {
			return nil, err
		}
		if _, ok := r.Demand[row.Node]; !ok {
			r.Demand[row.Node] = make([]float64, len(times))
			r.LeakDemand[row.Node] = make([]float64, len(times))
			r.Head[row.Node] = make([]float64, len(times))
		}
		i := pos[row.Time]
		r.Demand[row.Node][i] = row.Demand
		r.LeakDemand[row.Node][i] = row.LeakDemand
		r.Head[row.Node][i] = row.Head
		filled[key]++
	}
	for key, n := range filled {
		if n != len(times) {
			return nil, fmt.Errorf("%w: %s has %d rows for %d times", ErrIncomplete, key, n, len(times))
		}
	}
	return r, nil
}

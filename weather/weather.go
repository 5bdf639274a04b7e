package weather

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidWeather = errors.New("invalid weather data")

// Row is one line of a weather file.
type Row struct {
	Time                  int64   `csv:"time"`                   // s
	AirTemperature        float64 `csv:"air_temperature"`        // degree C
	SolarRadiation        float64 `csv:"solar_radiation"`        // global radiation, W/m2
	ConvectiveCoefficient float64 `csv:"convective_coefficient"` // W/m2 K
	SoilTemperature       float64 `csv:"soil_temperature"`       // at the probe depth, degree C
}

// Weather is the external forcing of a thermal run. Values between samples
// are interpolated linearly; outside the sampled range the end values hold.
type Weather struct {
	times      []float64 // s, [n]
	airTemp    []float64 // degree C, [n]
	solar      []float64 // W/m2, [n]
	convective []float64 // W/m2 K, [n]
	soilTemp   []float64 // degree C, [n]
	probeDepth float64   // depth of the soil temperature probe, m
}

/*
New builds the forcing from rows.

Args:
	rows: samples, any order, unique times
	probeDepth: depth at which SoilTemperature was measured, m
*/
func New(rows []*Row, probeDepth float64) (*Weather, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidWeather)
	}
	if probeDepth < 0 {
		return nil, fmt.Errorf("%w: negative probe depth %g", ErrInvalidWeather, probeDepth)
	}
	sorted := make([]*Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	n := len(sorted)
	w := &Weather{
		times:      make([]float64, n),
		airTemp:    make([]float64, n),
		solar:      make([]float64, n),
		convective: make([]float64, n),
		soilTemp:   make([]float64, n),
		probeDepth: probeDepth,
	}
	for i, r := range sorted {
		if i > 0 && r.Time == sorted[i-1].Time {
			return nil, fmt.Errorf("%w: duplicate time %d", ErrInvalidWeather, r.Time)
		}
		if r.ConvectiveCoefficient < 0 || r.SolarRadiation < 0 {
			return nil, fmt.Errorf("%w: negative radiation or convective coefficient at t=%d", ErrInvalidWeather, r.Time)
		}
		w.times[i] = float64(r.Time)
		w.airTemp[i] = r.AirTemperature
		w.solar[i] = r.SolarRadiation
		w.convective[i] = r.ConvectiveCoefficient
		w.soilTemp[i] = r.SoilTemperature
	}
	return w, nil
}

// LoadFile reads a weather CSV file.
func LoadFile(path string, probeDepth float64) (*Weather, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("weather file %s does not exist", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*Row
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(rows, probeDepth)
}

// AirTemperature at time t, degree C.
func (w *Weather) AirTemperature(t int64) float64 {
	return w.interpolate(w.airTemp, t)
}

// SolarRadiation at time t, W/m2.
func (w *Weather) SolarRadiation(t int64) float64 {
	return w.interpolate(w.solar, t)
}

// ConvectiveCoefficient at time t, W/m2 K.
func (w *Weather) ConvectiveCoefficient(t int64) float64 {
	return w.interpolate(w.convective, t)
}

// SoilTemperature at the probe depth at time t, degree C.
func (w *Weather) SoilTemperature(t int64) float64 {
	return w.interpolate(w.soilTemp, t)
}

// ProbeDepth of the soil temperature measurement, m.
func (w *Weather) ProbeDepth() float64 {
	return w.probeDepth
}

// AverageAirTemperature over the samples, degree C.
func (w *Weather) AverageAirTemperature() float64 {
	return stat.Mean(w.airTemp, nil)
}

// Len is the number of samples.
func (w *Weather) Len() int {
	return len(w.times)
}

func (w *Weather) interpolate(data []float64, t int64) float64 {
	x := float64(t)
	n := len(w.times)
	if x <= w.times[0] {
		return data[0]
	}
	if x >= w.times[n-1] {
		return data[n-1]
	}
	i := sort.SearchFloat64s(w.times, x)
	if w.times[i] == x {
		return data[i]
	}
	alpha := (x - w.times[i-1]) / (w.times[i] - w.times[i-1])
	return (1.0-alpha)*data[i-1] + alpha*data[i]
}

package thermal

import "gonum.org/v1/gonum/mat"

// Results are the temperature tables of a run, indexed [t, node] in index order.
type Results struct {
	Times []int64  // s, [T]
	Nodes []string // [N]
	Tanks []string // [tanks]

	WaterTemperature *mat.Dense // degree C, [T, N]
	SoilTemperature  *mat.Dense // degree C, [T, N], nil without boundary classification
	TankVolume       *mat.Dense // m3, [T, tanks], nil without tanks
}

// Water returns the water temperature series of a node.
func (r *Results) Water(node string) ([]float64, bool) {
	return column(r.WaterTemperature, r.Nodes, node)
}

// Soil returns the soil temperature series of a node.
func (r *Results) Soil(node string) ([]float64, bool) {
	return column(r.SoilTemperature, r.Nodes, node)
}

// Volume returns the water volume series of a tank.
func (r *Results) Volume(tank string) ([]float64, bool) {
	return column(r.TankVolume, r.Tanks, tank)
}

func column(m *mat.Dense, names []string, name string) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	for j, n := range names {
		if n == name {
			return mat.Col(nil, j, m), true
		}
	}
	return nil, false
}

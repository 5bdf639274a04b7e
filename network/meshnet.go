package network

import (
	"fmt"
	"math"

	"thermonet/logger"
)

/*
Meshnet subdivides every pipe longer than Options.Thermal.MaxPipeLength.

A pipe of length L gets k = floor(L / max) new junctions that cut it into k+1
pipes of equal length. The i-th split (i = 0..k-1) cuts the remaining original
pipe at ratio 1 - 1/(k+1-i), naming the new pipe "<pipe>_<k-i>" and the new
junction "of_<pipe>_<k-i>".

Returns:
	a meshed copy; m itself is not modified
*/
func Meshnet(m *Model) (*Model, error) {
	meshed := m.Copy()

	maxLength := m.Options.Thermal.MaxPipeLength
	if maxLength == nil {
		logger.Warn("meshnet called without a maximum pipe length, the network is not meshed")
		return meshed, nil
	}
	if *maxLength <= 0 {
		return nil, fmt.Errorf("%w: maximum pipe length %g", ErrInvalidLink, *maxLength)
	}

	var long []*Link
	for _, name := range m.LinkNames(Pipe) {
		l := m.links[name]
		if l.Length > *maxLength {
			long = append(long, l)
		}
	}
	if len(long) == 0 {
		logger.Info("maximum pipe length exceeds every pipe, the network is not meshed", "max_pipe_length", *maxLength)
		return meshed, nil
	}

	added := 0
	for _, l := range long {
		k := int(math.Floor(l.Length / *maxLength))
		for i := 0; i < k; i++ {
			ratio := 1 - 1/float64(k+1-i)
			num := k - i
			newPipe := fmt.Sprintf("%s_%d", l.Name, num)
			newJunction := fmt.Sprintf("of_%s_%d", l.Name, num)
			if err := meshed.SplitPipe(l.Name, newPipe, newJunction, ratio); err != nil {
				return nil, fmt.Errorf("meshnet %s: %w", l.Name, err)
			}
		}
		added += k
	}
	logger.Info("network meshed", "pipes", len(long), "new_junctions", added, "max_pipe_length", *maxLength)
	return meshed, nil
}

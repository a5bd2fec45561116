package waveform

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"
	"gonum.org/v1/gonum/floats"
)

// Sample evaluates src on the uniform grid 0, dt, ... up to but excluding
// tStop.
func Sample(src Source, tStop, dt float64) (time, current []float64, err error) {
	n, err := steps(tStop, dt)
	if err != nil {
		return nil, nil, err
	}
	time = grid(n, dt)
	current = make([]float64, n)
	for i, t := range time {
		current[i] = src.Current(t)
	}
	return time, current, nil
}

// CycleFromCurrent is a single full cycle: +current for halfTime seconds then
// -current for the same span, sampled every dt.
func CycleFromCurrent(current, halfTime, dt float64) (time, currents []float64, err error) {
	n, err := steps(2*halfTime, dt)
	if err != nil {
		return nil, nil, err
	}
	half := int(math.Round(halfTime / dt))

	time = grid(n, dt)
	currents = make([]float64, n)
	for i := range currents {
		if i < half {
			currents[i] = current
		} else {
			currents[i] = -current
		}
	}
	return time, currents, nil
}

// ReadTable loads the first two columns of a whitespace separated text table
// as (time, current).
func ReadTable(path string) (time, current []float64, err error) {
	cols, err := table.ReadTable(path, []int{0, 1}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("reading current table %s: %w", path, err)
	}
	if len(cols) != 2 || len(cols[0]) == 0 {
		return nil, nil, fmt.Errorf("current table %s has no samples", path)
	}
	return cols[0], cols[1], nil
}

func steps(span, dt float64) (int, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("timestep must be positive, got %g", dt)
	}
	if !(span > 0) || math.IsInf(span, 0) {
		return 0, fmt.Errorf("duration must be positive, got %g", span)
	}
	n := int(math.Round(span / dt))
	if n < 2 {
		return 0, fmt.Errorf("duration %g s holds fewer than 2 steps of %g s", span, dt)
	}
	return n, nil
}

func grid(n int, dt float64) []float64 {
	time := make([]float64, n)
	floats.Span(time, 0, float64(n-1)*dt)
	return time
}

// Package report writes simulation results: CSV tables, static plots, an
// interactive HTML page and an electrolyte history video.
package report

import (
	"fmt"
	"sort"

	"github.com/edp1096/toy-spme/pkg/analysis"
)

// Results is the analysis output keyed by variable name, with analysis.KeyTime
// as the shared axis.
type Results map[string][]float64

func (r Results) check(keys []string) (int, error) {
	time, ok := r[analysis.KeyTime]
	if !ok {
		return 0, fmt.Errorf("results have no %s column", analysis.KeyTime)
	}
	for _, key := range keys {
		values, ok := r[key]
		if !ok {
			return 0, fmt.Errorf("results have no %s column", key)
		}
		if len(values) != len(time) {
			return 0, fmt.Errorf("%s has %d samples, %s has %d", key, len(values), analysis.KeyTime, len(time))
		}
	}
	return len(time), nil
}

// Keys lists the result columns other than time, sorted.
func (r Results) Keys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		if key != analysis.KeyTime {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// stride returns the sample step that keeps at most limit points.
func stride(n, limit int) int {
	if limit <= 0 || n <= limit {
		return 1
	}
	return (n + limit - 1) / limit
}

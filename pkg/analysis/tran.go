package analysis

import (
	"fmt"

	"github.com/edp1096/toy-spme/pkg/cell"
)

// Transient drives the cell through a sampled current profile and records
// the voltage breakdown of every step.
type Transient struct {
	BaseAnalysis
	time     []float64
	current  []float64
	progress func(cell.StepOutput)
}

func NewTransient(time, current []float64) *Transient {
	return &Transient{
		BaseAnalysis: *NewBaseAnalysis(),
		time:         time,
		current:      current,
	}
}

// SetProgress installs a callback run after each stored step.
func (tr *Transient) SetProgress(fn func(cell.StepOutput)) {
	tr.progress = fn
}

func (tr *Transient) Setup(c *cell.Cell) error {
	if c == nil {
		return fmt.Errorf("cell not set")
	}
	if c.Spent() {
		return cell.ErrModelSpent
	}
	tr.Cell = c
	for name := range tr.results {
		tr.results[name] = tr.results[name][:0]
	}
	return nil
}

func (tr *Transient) Execute() error {
	if tr.Cell == nil {
		return fmt.Errorf("cell not set")
	}

	err := tr.Cell.Run(tr.time, tr.current, func(out cell.StepOutput) {
		tr.StoreTimeResult(out.Time, stepSolution(out))
		if tr.progress != nil {
			tr.progress(out)
		}
	})
	if err != nil {
		return fmt.Errorf("transient analysis: %w", err)
	}
	return nil
}

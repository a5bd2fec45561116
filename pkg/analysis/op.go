package analysis

import (
	"fmt"

	"github.com/edp1096/toy-spme/pkg/cell"
)

// OpenCircuit reports the rest state of the cell without stepping it: the
// open-circuit voltage and its electrode components at t = 0.
type OpenCircuit struct{ BaseAnalysis }

func NewOP() *OpenCircuit {
	return &OpenCircuit{
		BaseAnalysis: *NewBaseAnalysis(),
	}
}

func (op *OpenCircuit) Setup(c *cell.Cell) error {
	if c == nil {
		return fmt.Errorf("cell not set")
	}
	op.Cell = c
	return nil
}

func (op *OpenCircuit) Execute() error {
	c := op.Cell
	if c == nil {
		return fmt.Errorf("cell not set")
	}

	op.results = make(map[string][]float64)
	op.StoreTimeResult(0, map[string]float64{
		KeyCurrent:     0,
		KeyVoltage:     c.OpenCircuitVoltage(),
		KeyOCVNegative: c.Negative.OpenCircuitVoltage(),
		KeyOCVPositive: c.Positive.OpenCircuitVoltage(),
		KeySurfaceNeg:  c.Negative.Particle.SurfaceFraction(),
		KeySurfacePos:  c.Positive.Particle.SurfaceFraction(),
	})
	return nil
}

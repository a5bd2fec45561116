package analysis

import (
	"github.com/edp1096/toy-spme/pkg/cell"
)

// Result keys, named the SPICE way.
const (
	KeyTime           = "TIME"
	KeyCurrent        = "I(cell)"
	KeyVoltage        = "V(cell)"
	KeyOCVNegative    = "U(neg)"
	KeyOCVPositive    = "U(pos)"
	KeyEtaNegative    = "ETA(neg)"
	KeyEtaPositive    = "ETA(pos)"
	KeyEtaElectrolyte = "ETA(e)"
	KeySurfaceNeg     = "X(neg)"
	KeySurfacePos     = "X(pos)"
)

type Analysis interface {
	Setup(c *cell.Cell) error
	Execute() error
	GetResults() map[string][]float64
}

type BaseAnalysis struct {
	Cell    *cell.Cell
	results map[string][]float64 // key: variable name, value: result by time
}

func NewBaseAnalysis() *BaseAnalysis {
	return &BaseAnalysis{results: make(map[string][]float64)}
}

func (a *BaseAnalysis) StoreTimeResult(time float64, solution map[string]float64) {
	// Ignore same time
	if times := a.results[KeyTime]; len(times) > 0 && times[len(times)-1] == time {
		return
	}

	a.results[KeyTime] = append(a.results[KeyTime], time)
	for name, value := range solution {
		a.results[name] = append(a.results[name], value)
	}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}

// stepSolution flattens one step into result keys.
func stepSolution(out cell.StepOutput) map[string]float64 {
	return map[string]float64{
		KeyCurrent:        out.Current,
		KeyVoltage:        out.Voltage,
		KeyOCVNegative:    out.OCVNegative,
		KeyOCVPositive:    out.OCVPositive,
		KeyEtaNegative:    out.EtaNegative,
		KeyEtaPositive:    out.EtaPositive,
		KeyEtaElectrolyte: out.EtaElectrolyte,
		KeySurfaceNeg:     out.SurfaceNegative,
		KeySurfacePos:     out.SurfacePositive,
	}
}

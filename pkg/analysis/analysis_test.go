package analysis

import (
	"testing"

	"github.com/edp1096/toy-spme/pkg/cell"
	"github.com/edp1096/toy-spme/pkg/waveform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCell(t *testing.T) *cell.Cell {
	t.Helper()
	c, err := cell.New(cell.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(c.Destroy)
	return c
}

func TestTransient(t *testing.T) {
	c := newCell(t)
	time, current, err := waveform.CycleFromCurrent(1, 30, 0.1)
	require.NoError(t, err)

	var analysis Analysis = NewTransient(time, current)
	steps := 0
	analysis.(*Transient).SetProgress(func(cell.StepOutput) { steps++ })

	require.NoError(t, analysis.Setup(c))
	require.NoError(t, analysis.Execute())

	results := analysis.GetResults()
	assert.Equal(t, len(time), steps)
	for _, key := range []string{KeyTime, KeyCurrent, KeyVoltage, KeyOCVNegative, KeyOCVPositive,
		KeyEtaNegative, KeyEtaPositive, KeyEtaElectrolyte, KeySurfaceNeg, KeySurfacePos} {
		assert.Len(t, results[key], len(time), key)
	}
	assert.Equal(t, time, results[KeyTime])
	assert.Equal(t, current, results[KeyCurrent])

	again := NewTransient(time, current)
	assert.ErrorIs(t, again.Setup(c), cell.ErrModelSpent)
}

func TestTransientPropagatesErrors(t *testing.T) {
	c := newCell(t)
	tr := NewTransient([]float64{0, 1, 2}, []float64{1, 1, 1})
	require.NoError(t, tr.Setup(c))
	assert.ErrorIs(t, tr.Execute(), cell.ErrNumericalInstability)

	assert.Error(t, NewTransient(nil, nil).Execute(), "no cell")
}

func TestSetupRejectsNilCell(t *testing.T) {
	var analyses = []Analysis{NewTransient(nil, nil), NewOP()}
	for _, a := range analyses {
		assert.NotPanics(t, func() {
			assert.ErrorContains(t, a.Setup(nil), "cell not set")
		})
	}
}

func TestOpenCircuit(t *testing.T) {
	c := newCell(t)
	op := NewOP()
	require.NoError(t, op.Setup(c))
	require.NoError(t, op.Execute())

	results := op.GetResults()
	require.Len(t, results[KeyVoltage], 1)
	assert.Equal(t, c.OpenCircuitVoltage(), results[KeyVoltage][0])
	assert.InDelta(t, results[KeyOCVPositive][0]-results[KeyOCVNegative][0], results[KeyVoltage][0], 1e-12)
	assert.False(t, c.Spent())
}

func TestStoreTimeResultSkipsRepeatedTime(t *testing.T) {
	a := NewBaseAnalysis()
	a.StoreTimeResult(0, map[string]float64{KeyVoltage: 1})
	a.StoreTimeResult(0, map[string]float64{KeyVoltage: 2})
	a.StoreTimeResult(0.1, map[string]float64{KeyVoltage: 3})
	assert.Equal(t, []float64{0, 0.1}, a.GetResults()[KeyTime])
	assert.Equal(t, []float64{1, 3}, a.GetResults()[KeyVoltage])
}

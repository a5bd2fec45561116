package ocv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvesDecreaseWithLithiation(t *testing.T) {
	for name, curve := range map[string]Curve{"graphite-si": GraphiteSi{}, "nmc811": NMC811{}} {
		lo := curve.OpenCircuitVoltage(0.1)
		mid := curve.OpenCircuitVoltage(0.5)
		hi := curve.OpenCircuitVoltage(0.9)
		assert.Greater(t, lo, mid, name)
		assert.Greater(t, mid, hi, name)
	}
}

func TestCurveRanges(t *testing.T) {
	for x := 0.0; x <= 1.0; x += 0.05 {
		u := GraphiteSi{}.OpenCircuitVoltage(x)
		assert.True(t, u > 0 && u < 1.5, "graphite-si at x=%.2f gave %g", x, u)
	}
	for x := 0.2; x <= 1.0; x += 0.05 {
		u := NMC811{}.OpenCircuitVoltage(x)
		assert.True(t, u > 3.0 && u < 4.5, "nmc811 at x=%.2f gave %g", x, u)
	}
}

func TestDefaultCellRestVoltage(t *testing.T) {
	// Fresh LG MJ1-like cell: x_n = 1000/34684, x_p = 49000/50060
	v := NMC811{}.OpenCircuitVoltage(49000.0/50060.0) - GraphiteSi{}.OpenCircuitVoltage(1000.0/34684.0)
	assert.InDelta(t, 3.17, v, 0.05)
}

func TestLookupAndRegister(t *testing.T) {
	c, err := Lookup(" NMC811 ")
	require.NoError(t, err)
	assert.Equal(t, NMC811{}, c)

	_, err = Lookup("lfp")
	assert.ErrorContains(t, err, "graphite-si")

	Register("flat", CurveFunc(func(float64) float64 { return 3.3 }))
	c, err = Lookup("flat")
	require.NoError(t, err)
	assert.Equal(t, 3.3, c.OpenCircuitVoltage(0.42))
	assert.Contains(t, Names(), "flat")
}

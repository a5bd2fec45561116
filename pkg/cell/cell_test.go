package cell

import (
	"errors"
	"math"
	"testing"

	"github.com/edp1096/toy-spme/pkg/device"
	"github.com/edp1096/toy-spme/pkg/ocv"
	"github.com/edp1096/toy-spme/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chargeDischarge builds the 1 A charge then 1 A discharge profile.
func chargeDischarge(half, dt float64) ([]float64, []float64) {
	n := int(math.Round(2 * half / dt))
	time := make([]float64, n)
	current := make([]float64, n)
	for i := range time {
		time[i] = float64(i) * dt
		current[i] = 1
		if i >= n/2 {
			current[i] = -1
		}
	}
	return time, current
}

func newCell(t *testing.T, cfg Config) *Cell {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(c.Destroy)
	return c
}

func TestNoCurrentRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	c := newCell(t, cfg)

	want := ocv.NMC811{}.OpenCircuitVoltage(cfg.Positive.InitialConcentration/cfg.Positive.MaxConcentration) -
		ocv.GraphiteSi{}.OpenCircuitVoltage(cfg.Negative.InitialConcentration/cfg.Negative.MaxConcentration)
	assert.InDelta(t, want, c.OpenCircuitVoltage(), 1e-12)

	time := make([]float64, 500)
	current := make([]float64, 500)
	for i := range time {
		time[i] = float64(i) * 0.1
	}

	v, err := c.Simulate(time, current)
	require.NoError(t, err)
	require.Len(t, v, 500)
	for i := range v {
		assert.InDelta(t, want, v[i], 1e-12, "sample %d", i)
	}
}

func TestEndToEndChargeDischarge(t *testing.T) {
	c := newCell(t, DefaultConfig())
	time, current := chargeDischarge(1200, 0.1)
	require.Len(t, time, 24000)

	v, err := c.Simulate(time, current)
	require.NoError(t, err)
	require.Len(t, v, 24000)

	reversal := 12000
	rising, falling := 0, 0
	for i := 100; i < reversal; i++ {
		if v[i] > v[i-1] {
			rising++
		}
	}
	for i := reversal + 100; i < len(v); i++ {
		if v[i] < v[i-1] {
			falling++
		}
	}
	assert.Greater(t, float64(rising)/float64(reversal-100), 0.95)
	assert.Greater(t, float64(falling)/float64(len(v)-reversal-100), 0.95)

	assert.Less(t, v[100], v[6000])
	assert.Less(t, v[6000], v[reversal-1])
	assert.Greater(t, v[reversal+100], v[18000])
	assert.Greater(t, v[18000], v[len(v)-1])

	for i, x := range v {
		require.False(t, math.IsNaN(x), "sample %d", i)
		require.True(t, x > 2.5 && x < 4.3, "sample %d = %g", i, x)
	}
}

func TestRunReportsBreakdown(t *testing.T) {
	c := newCell(t, DefaultConfig())
	time, current := chargeDischarge(10, 0.1)

	var outs []StepOutput
	require.NoError(t, c.Run(time, current, func(out StepOutput) { outs = append(outs, out) }))
	require.Len(t, outs, len(time))

	first := outs[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 1.0, first.Current)
	assert.Less(t, first.EtaNegative, 0.0)
	assert.Less(t, first.EtaPositive, 0.0)
	assert.Greater(t, first.EtaElectrolyte, 0.0)

	last := outs[len(outs)-1]
	assert.Greater(t, last.EtaNegative, 0.0, "discharge flips kinetic terms")
	assert.Less(t, last.EtaElectrolyte, 0.0)
	for _, out := range outs {
		sum := out.OCVPositive - out.OCVNegative - out.EtaNegative - out.EtaPositive + out.EtaElectrolyte
		assert.InDelta(t, sum, out.Voltage, 1e-12)
	}
}

func TestInvalidInputLeavesCellUntouched(t *testing.T) {
	cases := map[string]struct {
		time, current []float64
	}{
		"length mismatch": {[]float64{0, 1, 2}, []float64{0, 0}},
		"empty":           {nil, nil},
		"single sample":   {[]float64{0}, []float64{1}},
		"not increasing":  {[]float64{0, 0.1, 0.1}, []float64{1, 1, 1}},
		"decreasing":      {[]float64{1, 0.9, 0.8}, []float64{1, 1, 1}},
		"non-uniform":     {[]float64{0, 0.1, 0.25}, []float64{1, 1, 1}},
		"nan current":     {[]float64{0, 0.1, 0.2}, []float64{1, math.NaN(), 1}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := newCell(t, DefaultConfig())
			neg := c.Negative.Particle.Concentration
			el := c.Electrolyte.Concentration

			v, err := c.Simulate(tc.time, tc.current)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, v)
			assert.Equal(t, neg, c.Negative.Particle.Concentration)
			assert.Equal(t, el, c.Electrolyte.Concentration)
			assert.False(t, c.Spent())
		})
	}
}

func TestStabilityViolation(t *testing.T) {
	c := newCell(t, DefaultConfig())

	_, err := c.Simulate([]float64{0, 0.2, 0.4}, []float64{1, 1, 1})
	require.ErrorIs(t, err, ErrNumericalInstability)

	var se *StabilityError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "electrolyte", se.Domain)
	assert.Equal(t, 0.2, se.TimeStep)
	assert.InDelta(t, 0.1059, se.Limit, 1e-3)
	assert.False(t, c.Spent(), "a rejected run does not consume the cell")

	err = c.CheckStability(10)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "negative particle", se.Domain)

	assert.NoError(t, c.CheckStability(0.1))
}

func TestSpentAndReset(t *testing.T) {
	c := newCell(t, DefaultConfig())
	time, current := chargeDischarge(5, 0.1)

	first, err := c.Simulate(time, current)
	require.NoError(t, err)
	assert.True(t, c.Spent())

	_, err = c.Simulate(time, current)
	assert.ErrorIs(t, err, ErrModelSpent)

	c.Reset()
	assert.False(t, c.Spent())
	second, err := c.Simulate(time, current)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordHistory = true
	c := newCell(t, cfg)
	time, current := chargeDischarge(5, 0.1)

	_, err := c.Simulate(time, current)
	require.NoError(t, err)

	history := c.History()
	require.Len(t, history, len(time))
	assert.Equal(t, c.Electrolyte.Concentration, history[len(history)-1])
	assert.Less(t, history[0][0], cfg.Electrolyte.InitialConcentration)
	assert.Greater(t, history[0][device.ElectrolyteNodes-1], cfg.Electrolyte.InitialConcentration)

	history[0][0] = -1
	assert.NotEqual(t, -1.0, c.History()[0][0])

	c.Reset()
	assert.Empty(t, c.History())

	plain := newCell(t, DefaultConfig())
	_, err = plain.Simulate(time, current)
	require.NoError(t, err)
	assert.Empty(t, plain.History())
}

func TestParallelMatchesSequential(t *testing.T) {
	time, current := chargeDischarge(60, 0.1)

	seq := newCell(t, DefaultConfig())
	want, err := seq.Simulate(time, current)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Parallel = true
	par := newCell(t, cfg)
	got, err := par.Simulate(time, current)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestBackwardEuler(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = util.BackwardEulerMethod

	t.Run("large steps", func(t *testing.T) {
		c := newCell(t, cfg)
		time, current := chargeDischarge(1200, 10)

		v, err := c.Simulate(time, current)
		require.NoError(t, err)
		require.Len(t, v, 240)
		assert.Less(t, v[10], v[119])
		assert.Greater(t, v[130], v[239])
	})

	t.Run("tracks ftcs", func(t *testing.T) {
		time, current := chargeDischarge(300, 0.1)

		explicit := newCell(t, DefaultConfig())
		want, err := explicit.Simulate(time, current)
		require.NoError(t, err)

		implicit := newCell(t, cfg)
		assert.Equal(t, util.BackwardEulerMethod, implicit.Method())
		got, err := implicit.Simulate(time, current)
		require.NoError(t, err)

		assert.InDelta(t, want[len(want)/2-1], got[len(got)/2-1], 1e-3)
		assert.InDelta(t, want[len(want)-1], got[len(got)-1], 1e-3)
	})

	t.Run("parallel", func(t *testing.T) {
		time, current := chargeDischarge(600, 1)

		sequential := newCell(t, cfg)
		want, err := sequential.Simulate(time, current)
		require.NoError(t, err)

		parallelCfg := cfg
		parallelCfg.Parallel = true
		parallel := newCell(t, parallelCfg)
		got, err := parallel.Simulate(time, current)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestNewRejectsBadParameters(t *testing.T) {
	mutators := map[string]func(*Config){
		"zero radius":        func(c *Config) { c.Negative.Radius = 0 },
		"negative D":         func(c *Config) { c.Positive.Diffusivity = -1 },
		"nan thickness":      func(c *Config) { c.Electrolyte.Thickness = math.NaN() },
		"overfull particle":  func(c *Config) { c.Positive.InitialConcentration = 6e4 },
		"volume fraction":    func(c *Config) { c.Negative.VolumeFraction = 1.5 },
		"transference":       func(c *Config) { c.Electrolyte.TransferenceNumber = 1 },
		"unknown chemistry":  func(c *Config) { c.Positive.Chemistry = "unobtainium" },
		"unknown method":     func(c *Config) { c.Method = util.IntegrationMethod(9) },
		"zero rate constant": func(c *Config) { c.Negative.RateConstant = 0 },
	}
	for name, mutate := range mutators {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			c, err := New(cfg)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, c)
		})
	}
}

func TestUseAfterDestroy(t *testing.T) {
	c, err := New(DefaultConfig())
	require.NoError(t, err)
	c.Destroy()

	_, err = c.Simulate([]float64{0, 0.1}, []float64{0, 0})
	assert.Error(t, err)
}

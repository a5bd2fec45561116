package cell

import (
	"fmt"
	"math"
	"sync"

	"github.com/edp1096/toy-spme/pkg/device"
	"github.com/edp1096/toy-spme/pkg/diffusion"
	"gonum.org/v1/gonum/floats/scalar"
)

// Relative tolerance on sample spacing before a series counts as non-uniform.
const spacingTolerance = 1e-6

// StepOutput is the voltage breakdown after one step.
type StepOutput struct {
	Index   int
	Time    float64
	Current float64
	Voltage float64

	OCVNegative    float64
	OCVPositive    float64
	EtaNegative    float64
	EtaPositive    float64
	EtaElectrolyte float64

	SurfaceNegative float64 // c_s / c_max
	SurfacePositive float64
}

// Simulate drives the cell with current (A, positive charges) sampled at the
// uniformly spaced times and returns the terminal voltage at each sample.
func (c *Cell) Simulate(time, current []float64) ([]float64, error) {
	voltages := make([]float64, 0, len(time))
	err := c.Run(time, current, func(out StepOutput) {
		voltages = append(voltages, out.Voltage)
	})
	if err != nil {
		return nil, err
	}
	return voltages, nil
}

// Run is Simulate with a callback receiving the full breakdown of every step.
// fn may be nil.
func (c *Cell) Run(time, current []float64, fn func(StepOutput)) error {
	if c.state == spent {
		return ErrModelSpent
	}
	if c.negStepper == nil {
		return fmt.Errorf("cell %s used after Destroy", c.name)
	}

	dt, err := validateSeries(time, current)
	if err != nil {
		return err
	}
	if c.method.Explicit() {
		if err := c.CheckStability(dt); err != nil {
			return err
		}
	}

	c.state = spent
	if c.recordHistory {
		c.history = make([][device.ElectrolyteNodes]float64, 0, len(time))
	}

	for i := range time {
		if err := c.step(dt, current[i]); err != nil {
			return fmt.Errorf("step %d at t=%g s: %w", i, time[i], err)
		}
		if c.recordHistory {
			c.history = append(c.history, c.Electrolyte.Concentration)
		}
		if fn != nil {
			fn(c.output(i, time[i], current[i]))
		}
	}
	return nil
}

// CheckStability verifies dt against the FTCS bound of both particles and the
// electrolyte, in that order.
func (c *Cell) CheckStability(dt float64) error {
	domains := []device.Domain{c.Negative.Particle, c.Positive.Particle, c.Electrolyte}
	names := []string{"negative particle", "positive particle", "electrolyte"}
	for i, d := range domains {
		if !diffusion.IsStable(dt, d.Step(), d.GetDiffusivity()) {
			return &StabilityError{
				Domain:   names[i],
				TimeStep: dt,
				Limit:    diffusion.StableLimit(d.Step(), d.GetDiffusivity()),
			}
		}
	}
	return nil
}

func validateSeries(time, current []float64) (float64, error) {
	if len(time) != len(current) {
		return 0, invalidInput("time has %d samples, current has %d", len(time), len(current))
	}
	if len(time) < 2 {
		return 0, invalidInput("need at least 2 samples to derive a timestep, got %d", len(time))
	}

	dt := time[1] - time[0]
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, invalidInput("time must be strictly increasing (t[0]=%g, t[1]=%g)", time[0], time[1])
	}
	for i := 1; i < len(time); i++ {
		step := time[i] - time[i-1]
		if !(step > 0) {
			return 0, invalidInput("time not strictly increasing at index %d", i)
		}
		if !scalar.EqualWithinRel(step, dt, spacingTolerance) {
			return 0, invalidInput("non-uniform spacing at index %d: %g s vs %g s", i, step, dt)
		}
	}
	for i, v := range current {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, invalidInput("current[%d] is %g", i, v)
		}
	}
	return dt, nil
}

func (c *Cell) step(dt, current float64) error {
	el := c.Electrolyte
	neg, pos := c.Negative, c.Positive

	// The electrolyte carries the anion share of the current across the
	// separator, referenced to the negative electrode sheet.
	elecFlux := (1 - el.TransferenceNumber) * device.ElectrolyteBoundaryFlux(current, neg)
	negFlux := -device.ParticleSurfaceFlux(current, neg)
	posFlux := device.ParticleSurfaceFlux(current, pos)

	updates := []func() error{
		func() error {
			return c.elecStepper.Linear(el.Field(), el.LinearStep, dt, el.Diffusivity, elecFlux)
		},
		func() error {
			p := neg.Particle
			return c.negStepper.Radial(p.Field(), p.RadialStep, dt, p.Diffusivity, p.Radius, negFlux)
		},
		func() error {
			p := pos.Particle
			return c.posStepper.Radial(p.Field(), p.RadialStep, dt, p.Diffusivity, p.Radius, posFlux)
		},
	}

	if !c.parallel {
		for _, update := range updates {
			if err := update(); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, len(updates))
	var wg sync.WaitGroup
	for i, update := range updates {
		wg.Add(1)
		go func(i int, update func() error) {
			defer wg.Done()
			errs[i] = update()
		}(i, update)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// output assembles V = U_p - U_n - eta_n - eta_p + eta_e from the current
// fields.
func (c *Cell) output(index int, t, current float64) StepOutput {
	neg, pos, el := c.Negative, c.Positive, c.Electrolyte
	j := current / neg.Area()

	out := StepOutput{
		Index:           index,
		Time:            t,
		Current:         current,
		OCVNegative:     neg.OpenCircuitVoltage(),
		OCVPositive:     pos.OpenCircuitVoltage(),
		EtaNegative:     device.ButlerVolmerOverpotential(j, neg, el.NegativeSide()),
		EtaPositive:     device.ButlerVolmerOverpotential(j, pos, el.PositiveSide()),
		EtaElectrolyte:  device.ElectrolyteConcentrationOverpotential(el),
		SurfaceNegative: neg.Particle.SurfaceFraction(),
		SurfacePositive: pos.Particle.SurfaceFraction(),
	}
	out.Voltage = out.OCVPositive - out.OCVNegative - out.EtaNegative - out.EtaPositive + out.EtaElectrolyte
	return out
}

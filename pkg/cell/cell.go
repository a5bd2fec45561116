package cell

import (
	"github.com/edp1096/toy-spme/pkg/device"
	"github.com/edp1096/toy-spme/pkg/diffusion"
	"github.com/edp1096/toy-spme/pkg/ocv"
	"github.com/edp1096/toy-spme/pkg/util"
)

type state int

const (
	ready state = iota
	spent
)

// Cell is a single-particle-with-electrolyte model of one lithium-ion cell.
// It owns its three concentration fields; a Cell must not be used from more
// than one goroutine.
type Cell struct {
	name        string
	Negative    *device.Electrode
	Positive    *device.Electrode
	Electrolyte *device.Electrolyte

	method        util.IntegrationMethod
	recordHistory bool
	parallel      bool

	// One stepper per field so Parallel runs never share scratch state.
	negStepper  diffusion.Stepper
	posStepper  diffusion.Stepper
	elecStepper diffusion.Stepper

	history [][device.ElectrolyteNodes]float64
	state   state
}

func New(cfg Config) (*Cell, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	negative, err := newElectrode("negative", cfg.Negative)
	if err != nil {
		return nil, err
	}
	positive, err := newElectrode("positive", cfg.Positive)
	if err != nil {
		return nil, err
	}
	el := cfg.Electrolyte

	c := &Cell{
		name:          cfg.Name,
		Negative:      negative,
		Positive:      positive,
		Electrolyte:   device.NewElectrolyte("electrolyte", el.Thickness, el.Diffusivity, el.InitialConcentration, el.TransferenceNumber, el.Conductivity),
		method:        cfg.Method,
		recordHistory: cfg.RecordHistory,
		parallel:      cfg.Parallel,
	}
	if err := c.createSteppers(); err != nil {
		return nil, err
	}
	return c, nil
}

func newElectrode(side string, cfg ElectrodeConfig) (*device.Electrode, error) {
	curve, err := ocv.Lookup(cfg.Chemistry)
	if err != nil {
		return nil, invalidParameter("%s: %v", side, err)
	}
	return &device.Electrode{
		Name:           side,
		Height:         cfg.Height,
		Width:          cfg.Width,
		Thickness:      cfg.Thickness,
		VolumeFraction: cfg.VolumeFraction,
		RateConstant:   cfg.RateConstant,
		Particle:       device.NewParticle(side, cfg.Radius, cfg.Diffusivity, cfg.MaxConcentration, cfg.InitialConcentration),
		Curve:          curve,
	}, nil
}

func (c *Cell) createSteppers() error {
	if c.method.Explicit() {
		c.negStepper, c.posStepper, c.elecStepper = diffusion.Explicit{}, diffusion.Explicit{}, diffusion.Explicit{}
		return nil
	}

	sizes := []int{device.ParticleNodes, device.ParticleNodes, device.ElectrolyteNodes}
	steppers := make([]diffusion.Stepper, 0, len(sizes))
	for _, size := range sizes {
		s, err := diffusion.NewImplicit(size)
		if err != nil {
			for _, made := range steppers {
				made.Destroy()
			}
			return err
		}
		steppers = append(steppers, s)
	}
	c.negStepper, c.posStepper, c.elecStepper = steppers[0], steppers[1], steppers[2]
	return nil
}

func (c *Cell) GetName() string { return c.name }

func (c *Cell) Method() util.IntegrationMethod { return c.method }

// Spent reports whether the cell has run and needs Reset.
func (c *Cell) Spent() bool { return c.state == spent }

// Reset restores the initial uniform concentrations, drops the history and
// makes the cell ready to simulate again.
func (c *Cell) Reset() {
	c.Negative.Particle.Reset()
	c.Positive.Particle.Reset()
	c.Electrolyte.Reset()
	c.history = nil
	c.state = ready
}

// OpenCircuitVoltage is U_pos - U_neg at the current surface concentrations.
func (c *Cell) OpenCircuitVoltage() float64 {
	return c.Positive.OpenCircuitVoltage() - c.Negative.OpenCircuitVoltage()
}

// History returns the electrolyte snapshots taken after each step, if
// RecordHistory was set. The slice is a copy.
func (c *Cell) History() [][device.ElectrolyteNodes]float64 {
	out := make([][device.ElectrolyteNodes]float64, len(c.history))
	copy(out, c.history)
	return out
}

func (c *Cell) Destroy() {
	for _, s := range []diffusion.Stepper{c.negStepper, c.posStepper, c.elecStepper} {
		if s != nil {
			s.Destroy()
		}
	}
	c.negStepper, c.posStepper, c.elecStepper = nil, nil, nil
}

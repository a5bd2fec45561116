package cell

import (
	"math"

	"github.com/edp1096/toy-spme/pkg/ocv"
	"github.com/edp1096/toy-spme/pkg/util"
)

type ElectrodeConfig struct {
	Chemistry            string  // ocv.Lookup name
	Radius               float64 // particle radius, m
	Diffusivity          float64 // solid diffusivity, m^2/s
	MaxConcentration     float64 // mol/m^3
	InitialConcentration float64 // mol/m^3
	Height               float64 // m
	Width                float64 // m
	Thickness            float64 // m
	VolumeFraction       float64
	RateConstant         float64
}

type ElectrolyteConfig struct {
	Thickness            float64 // separator thickness, m
	Diffusivity          float64 // m^2/s
	InitialConcentration float64 // mol/m^3
	TransferenceNumber   float64
	Conductivity         float64 // S/m
}

type Config struct {
	Name        string
	Negative    ElectrodeConfig
	Positive    ElectrodeConfig
	Electrolyte ElectrolyteConfig

	Method        util.IntegrationMethod
	RecordHistory bool // keep an electrolyte snapshot per step
	Parallel      bool // step the three fields concurrently
}

// DefaultConfig describes an LG MJ1 18650-like cell.
func DefaultConfig() Config {
	return Config{
		Name: "lg-mj1",
		Negative: ElectrodeConfig{
			Chemistry:            "graphite-si",
			Radius:               6.1e-6,
			Diffusivity:          5e-14,
			MaxConcentration:     34684,
			InitialConcentration: 1000,
			Height:               0.065,
			Width:                1.58,
			Thickness:            85.2e-6,
			VolumeFraction:       0.75,
			RateConstant:         2e-3,
		},
		Positive: ElectrodeConfig{
			Chemistry:            "nmc811",
			Radius:               3.8e-6,
			Diffusivity:          5e-14,
			MaxConcentration:     50060,
			InitialConcentration: 49000,
			Height:               0.065,
			Width:                1.58,
			Thickness:            75.6e-6,
			VolumeFraction:       0.665,
			RateConstant:         2e-3,
		},
		Electrolyte: ElectrolyteConfig{
			Thickness:            12e-6,
			Diffusivity:          1.7e-10,
			InitialConcentration: 1000,
			TransferenceNumber:   0.2594,
			Conductivity:         0.95,
		},
		Method: util.FTCSMethod,
	}
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalidParameter("%s must be positive and finite, got %g", name, v)
	}
	return nil
}

func (c ElectrodeConfig) validate(side string) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"radius", c.Radius},
		{"diffusivity", c.Diffusivity},
		{"max concentration", c.MaxConcentration},
		{"initial concentration", c.InitialConcentration},
		{"height", c.Height},
		{"width", c.Width},
		{"thickness", c.Thickness},
		{"volume fraction", c.VolumeFraction},
		{"rate constant", c.RateConstant},
	}
	for _, chk := range checks {
		if err := positive(side+" "+chk.name, chk.value); err != nil {
			return err
		}
	}
	if c.InitialConcentration > c.MaxConcentration {
		return invalidParameter("%s initial concentration %g above max %g", side, c.InitialConcentration, c.MaxConcentration)
	}
	if c.VolumeFraction > 1 {
		return invalidParameter("%s volume fraction %g above 1", side, c.VolumeFraction)
	}
	if _, err := ocv.Lookup(c.Chemistry); err != nil {
		return invalidParameter("%s: %v", side, err)
	}
	return nil
}

func (c ElectrolyteConfig) validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"thickness", c.Thickness},
		{"diffusivity", c.Diffusivity},
		{"initial concentration", c.InitialConcentration},
		{"conductivity", c.Conductivity},
	}
	for _, chk := range checks {
		if err := positive("electrolyte "+chk.name, chk.value); err != nil {
			return err
		}
	}
	if t := c.TransferenceNumber; math.IsNaN(t) || t < 0 || t >= 1 {
		return invalidParameter("transference number must be in [0, 1), got %g", t)
	}
	return nil
}

func (c Config) Validate() error {
	if err := c.Negative.validate("negative"); err != nil {
		return err
	}
	if err := c.Positive.validate("positive"); err != nil {
		return err
	}
	if err := c.Electrolyte.validate(); err != nil {
		return err
	}
	if c.Method != util.FTCSMethod && c.Method != util.BackwardEulerMethod {
		return invalidParameter("unknown integration method %d", c.Method)
	}
	return nil
}

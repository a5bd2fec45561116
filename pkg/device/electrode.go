package device

import "github.com/edp1096/toy-spme/pkg/ocv"

// Electrode is a porous electrode sheet with one representative particle.
type Electrode struct {
	Name           string
	Height         float64 // m
	Width          float64 // m
	Thickness      float64 // m
	VolumeFraction float64 // active material fraction
	RateConstant   float64 // reaction rate constant k
	Particle       *Particle
	Curve          ocv.Curve
}

func (e *Electrode) GetName() string { return e.Name }

// Area is the geometric sheet area.
func (e *Electrode) Area() float64 { return e.Height * e.Width }

func (e *Electrode) OpenCircuitVoltage() float64 {
	return e.Curve.OpenCircuitVoltage(e.Particle.SurfaceFraction())
}

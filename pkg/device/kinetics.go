package device

import (
	"math"

	"github.com/edp1096/toy-spme/internal/consts"
	"github.com/edp1096/toy-spme/pkg/util"
)

// SpecificInterfacialArea is a = 3*eps/R, active surface per electrode volume.
func SpecificInterfacialArea(e *Electrode) float64 {
	return 3 * e.VolumeFraction / e.Particle.Radius
}

// ParticleSurfaceFlux converts a cell current into the molar flux through the
// particle surface, j/(F*a*L). Its sign follows the current.
func ParticleSurfaceFlux(current float64, e *Electrode) float64 {
	j := current / e.Area()
	return j / (consts.FARADAY * SpecificInterfacialArea(e) * e.Thickness)
}

// ElectrolyteBoundaryFlux converts a cell current into the molar flux of
// charge carriers across the separator, j/F.
func ElectrolyteBoundaryFlux(current float64, e *Electrode) float64 {
	return current / e.Area() / consts.FARADAY
}

// ExchangeCurrentDensity is j0 = k * ce^alpha * cs^alpha with alpha = 0.5,
// using the particle surface concentration.
func ExchangeCurrentDensity(e *Electrode, ce float64) float64 {
	cs := e.Particle.Surface()
	return e.RateConstant * math.Pow(ce, consts.ALPHA) * math.Pow(cs, consts.ALPHA)
}

// ButlerVolmerOverpotential inverts the symmetric Butler-Volmer relation for
// the current density j:
//
//	eta = -(2RT/F) * asinh(j / (2 * j0 * a * L))
//
// The leading minus makes a positive (charging) current lower the term that
// the cell voltage subtracts.
func ButlerVolmerOverpotential(j float64, e *Electrode, ce float64) float64 {
	j0 := ExchangeCurrentDensity(e, ce)
	a := SpecificInterfacialArea(e)
	return -2 * consts.THERMAL * util.Arcsinh(j/(2*j0*a*e.Thickness))
}

// ElectrolyteConcentrationOverpotential is 2(1-t+)(RT/F)(c_pos - c_neg),
// linear in the boundary difference.
func ElectrolyteConcentrationOverpotential(el *Electrolyte) float64 {
	return 2 * (1 - el.TransferenceNumber) * consts.THERMAL * (el.PositiveSide() - el.NegativeSide())
}

package device

// ElectrolyteNodes is the number of nodes across the separator. Index 0
// touches the negative electrode.
//
// The count is kept at 2 so the FTCS bound dx^2/(2D) for a 12 um separator
// with D = 1.7e-10 m^2/s stays above a 0.1 s step (about 0.106 s).
const ElectrolyteNodes = 2

type Electrolyte struct {
	BaseDomain
	Conductivity       float64 // S/m
	Thickness          float64 // m
	LinearStep         float64 // m
	TransferenceNumber float64
	Concentration      [ElectrolyteNodes]float64
}

var _ Domain = (*Electrolyte)(nil)

func NewElectrolyte(name string, thickness, diffusivity, initialConcentration, transference, conductivity float64) *Electrolyte {
	e := &Electrolyte{
		BaseDomain: BaseDomain{
			Name:                 name,
			Diffusivity:          diffusivity,
			InitialConcentration: initialConcentration,
		},
		Conductivity:       conductivity,
		Thickness:          thickness,
		LinearStep:         thickness / ElectrolyteNodes,
		TransferenceNumber: transference,
	}
	e.Reset()
	return e
}

func (e *Electrolyte) GetType() string { return "E" }

func (e *Electrolyte) Field() []float64 { return e.Concentration[:] }

func (e *Electrolyte) Step() float64 { return e.LinearStep }

func (e *Electrolyte) Reset() { e.fill(e.Concentration[:]) }

// NegativeSide and PositiveSide are the boundary concentrations next to each
// electrode.
func (e *Electrolyte) NegativeSide() float64 { return e.Concentration[0] }

func (e *Electrolyte) PositiveSide() float64 { return e.Concentration[ElectrolyteNodes-1] }

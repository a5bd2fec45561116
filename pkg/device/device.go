package device

// Domain is one diffusion field owned by the cell: a particle or the
// electrolyte. Field returns a view onto the fixed-length concentration
// array, so steppers update it in place.
type Domain interface {
	GetName() string
	GetType() string
	Field() []float64
	Step() float64
	GetDiffusivity() float64
	Reset()
}

type BaseDomain struct {
	Name                 string
	Diffusivity          float64 // m^2/s
	InitialConcentration float64 // mol/m^3
}

func (d *BaseDomain) GetName() string { return d.Name }

func (d *BaseDomain) GetDiffusivity() float64 { return d.Diffusivity }

// fill sets every node of field to the initial concentration.
func (d *BaseDomain) fill(field []float64) {
	for i := range field {
		field[i] = d.InitialConcentration
	}
}

package diffusion

// Stepper advances one field by one timestep. Implementations own whatever
// scratch state they need, so a Stepper must not be shared between fields
// that are stepped concurrently.
type Stepper interface {
	Linear(field []float64, dx, dt, diffusivity, flux float64) error
	Radial(field []float64, dr, dt, diffusivity, radius, flux float64) error
	Destroy()
}

// Explicit is the FTCS stepper. It never fails once the caller has checked
// IsStable.
type Explicit struct{}

var _ Stepper = Explicit{}

func (Explicit) Linear(field []float64, dx, dt, diffusivity, flux float64) error {
	StepLinear(field, dx, dt, diffusivity, flux)
	return nil
}

func (Explicit) Radial(field []float64, dr, dt, diffusivity, radius, flux float64) error {
	StepRadial(field, dr, dt, diffusivity, radius, flux)
	return nil
}

func (Explicit) Destroy() {}

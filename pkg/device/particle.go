package device

// ParticleNodes is the number of radial nodes per particle. Index 0 is the
// centre and ParticleNodes-1 the surface.
const ParticleNodes = 20

// Particle is the representative spherical active-material particle of one
// electrode.
type Particle struct {
	BaseDomain
	Radius           float64 // m
	RadialStep       float64 // m
	MaxConcentration float64 // mol/m^3
	Concentration    [ParticleNodes]float64
}

var _ Domain = (*Particle)(nil)

func NewParticle(name string, radius, diffusivity, maxConcentration, initialConcentration float64) *Particle {
	p := &Particle{
		BaseDomain: BaseDomain{
			Name:                 name,
			Diffusivity:          diffusivity,
			InitialConcentration: initialConcentration,
		},
		Radius:           radius,
		RadialStep:       radius / ParticleNodes,
		MaxConcentration: maxConcentration,
	}
	p.Reset()
	return p
}

func (p *Particle) GetType() string { return "P" }

func (p *Particle) Field() []float64 { return p.Concentration[:] }

func (p *Particle) Step() float64 { return p.RadialStep }

func (p *Particle) Reset() { p.fill(p.Concentration[:]) }

func (p *Particle) Surface() float64 { return p.Concentration[ParticleNodes-1] }

// SurfaceFraction is the surface lithiation c_s/c_max. It is not clamped to
// [0, 1]; out-of-range values reach the OCV fits unchanged.
func (p *Particle) SurfaceFraction() float64 {
	return p.Surface() / p.MaxConcentration
}

// Average is the volume-weighted mean concentration, treating node i as the
// shell centred on r = i*dr.
func (p *Particle) Average() float64 {
	var total, volume float64
	for i, c := range p.Concentration {
		r := float64(i) * p.RadialStep
		w := r * r
		if i == 0 {
			w = p.RadialStep * p.RadialStep / 12
		}
		total += w * c
		volume += w
	}
	return total / volume
}

package diffusion

import (
	"fmt"

	"github.com/edp1096/toy-spme/pkg/matrix"
)

// Implicit is a backward-euler stepper. It assembles the same flux-boundary
// stencils as StepLinear and StepRadial, evaluated at the new time level, and
// solves the resulting system. It is stable for any timestep.
type Implicit struct {
	size int
	mat  *matrix.SystemMatrix
}

var _ Stepper = (*Implicit)(nil)

func NewImplicit(size int) (*Implicit, error) {
	if size < 2 {
		return nil, fmt.Errorf("implicit stepper needs at least 2 nodes, got %d", size)
	}
	mat, err := matrix.NewMatrix(size)
	if err != nil {
		return nil, err
	}
	return &Implicit{size: size, mat: mat}, nil
}

func (s *Implicit) Linear(field []float64, dx, dt, diffusivity, flux float64) error {
	if err := s.check(field); err != nil {
		return err
	}
	s.mat.Clear()
	StampLinear(s.mat, field, dx, dt, diffusivity, flux)
	return s.solveInto(field)
}

func (s *Implicit) Radial(field []float64, dr, dt, diffusivity, radius, flux float64) error {
	if err := s.check(field); err != nil {
		return err
	}
	s.mat.Clear()
	StampRadial(s.mat, field, dr, dt, diffusivity, radius, flux)
	return s.solveInto(field)
}

func (s *Implicit) Destroy() {
	if s.mat != nil {
		s.mat.Destroy()
		s.mat = nil
	}
}

func (s *Implicit) check(field []float64) error {
	if len(field) != s.size {
		return fmt.Errorf("field has %d nodes, stepper was built for %d", len(field), s.size)
	}
	if s.mat == nil {
		return fmt.Errorf("implicit stepper used after Destroy")
	}
	return nil
}

func (s *Implicit) solveInto(field []float64) error {
	if err := s.mat.Solve(); err != nil {
		return fmt.Errorf("backward euler step: %v", err)
	}
	copy(field, s.mat.Solution()[1:s.size+1])
	return nil
}

// StampLinear loads (I - dt L) c' = c + dt s for the planar flux stencil.
func StampLinear(m matrix.Stamper, y []float64, dx, dt, diffusivity, flux float64) {
	n := len(y)
	r := diffusivity * dt / (dx * dx)
	src := dt * flux / dx

	m.AddElement(1, 1, 1+r)
	m.AddElement(1, 2, -r)
	m.AddRHS(1, y[0]-src)

	for i := 1; i < n-1; i++ {
		row := i + 1
		m.AddElement(row, row-1, -r)
		m.AddElement(row, row, 1+2*r)
		m.AddElement(row, row+1, -r)
		m.AddRHS(row, y[i])
	}

	m.AddElement(n, n-1, -r)
	m.AddElement(n, n, 1+r)
	m.AddRHS(n, y[n-1]+src)
}

// StampRadial loads (I - dt L) c' = c + dt s for the spherical flux stencil.
func StampRadial(m matrix.Stamper, y []float64, dr, dt, diffusivity, radius, flux float64) {
	n := len(y)
	r := diffusivity * dt / (dr * dr)

	m.AddElement(1, 1, 1+r)
	m.AddElement(1, 2, -r)
	m.AddRHS(1, y[0])

	for i := 1; i < n-1; i++ {
		row := i + 1
		inv := 1.0 / float64(i)
		m.AddElement(row, row-1, -r*(1-inv))
		m.AddElement(row, row, 1+2*r)
		m.AddElement(row, row+1, -r*(1+inv))
		m.AddRHS(row, y[i])
	}

	m.AddElement(n, n-1, -r)
	m.AddElement(n, n, 1+r)
	m.AddRHS(n, y[n-1]-dt*flux*(1/dr+2/radius))
}

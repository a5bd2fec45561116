package diffusion

// StepRadial advances a spherically symmetric concentration field by one FTCS
// step of dc/dt = D (d2c/dr2 + 2/r dc/dr).
//
// Node 0 is the particle centre, where symmetry forces a zero slope and the
// 2/r term is dropped. The last node is the surface; flux > 0 means lithium
// leaves the particle. The surface curvature term uses the physical radius,
// not (n-1)*dr.
func StepRadial(y []float64, dr, dt, diffusivity, radius, flux float64) {
	n := len(y)

	dr2 := dr * dr
	adt := diffusivity * dt

	centreGhost := y[0]
	d2Centre := (y[1] - 2.0*y[0] + centreGhost) / dr2

	slope := -flux / diffusivity
	surfaceGhost := y[n-1] + dr*slope
	d2Surface := (surfaceGhost - 2.0*y[n-1] + y[n-2]) / dr2
	curvSurface := 2.0 / radius * slope

	prev := y[0]
	for i := 1; i < n-1; i++ {
		r := float64(i) * dr
		d2 := (prev - 2.0*y[i] + y[i+1]) / dr2
		d1 := (y[i+1] - prev) / (2.0 * dr)
		prev = y[i]
		y[i] += adt * (d2 + 2.0/r*d1)
	}

	y[0] += adt * d2Centre
	y[n-1] += adt * (d2Surface + curvSurface)
}

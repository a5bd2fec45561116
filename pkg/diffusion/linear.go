package diffusion

// StepLinear advances a planar concentration field by one FTCS step of
// dc/dt = D d2c/dx2.
//
// Both ends carry a flux boundary. A positive flux drains node 0 and feeds the
// last node by the same amount, which is how the separator sees a current
// entering one electrode and leaving the other. The field needs at least two
// nodes.
func StepLinear(y []float64, dx, dt, diffusivity, flux float64) {
	n := len(y)

	dx2 := dx * dx
	adt := diffusivity * dt
	slope := flux / diffusivity

	// Boundary curvature from ghost nodes, before anything is overwritten
	leftGhost := y[0] - dx*slope
	d2Left := (y[1] - 2.0*y[0] + leftGhost) / dx2

	rightGhost := y[n-1] + dx*slope
	d2Right := (rightGhost - 2.0*y[n-1] + y[n-2]) / dx2

	// prev holds the pre-step value of y[i-1]
	prev := y[0]
	for i := 1; i < n-1; i++ {
		d2 := (prev - 2.0*y[i] + y[i+1]) / dx2
		prev = y[i]
		y[i] += adt * d2
	}

	y[0] += adt * d2Left
	y[n-1] += adt * d2Right
}

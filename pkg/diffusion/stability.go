package diffusion

// IsStable reports whether one forward-time centred-space step of length dt
// on a grid of spacing dx is stable for the given diffusivity. The bound is
// inclusive.
func IsStable(dt, dx, diffusivity float64) bool {
	return dt <= dx*dx/(2.0*diffusivity)
}

// StableLimit returns the largest stable FTCS timestep.
func StableLimit(dx, diffusivity float64) float64 {
	return dx * dx / (2.0 * diffusivity)
}

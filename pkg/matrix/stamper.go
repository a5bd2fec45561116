package matrix

// Stamper receives stencil coefficients. Rows and columns are 1-based.
type Stamper interface {
	AddElement(i, j int, value float64)
	AddRHS(i int, value float64)
}

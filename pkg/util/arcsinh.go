package util

import "math"

// Arcsinh returns the inverse hyperbolic sine, ln(x + sqrt(x^2 + 1)).
//
// The textbook form cancels catastrophically for large negative x and loses
// digits near zero, so the odd symmetry is used for negatives, log1p for small
// arguments and ln(2x) once x^2 would overflow.
func Arcsinh(x float64) float64 {
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0) || x == 0:
		return x
	case x < 0:
		return -Arcsinh(-x)
	case x > 1<<28:
		return math.Log(x) + math.Ln2
	case x > 2:
		return math.Log(2*x + 1/(math.Sqrt(x*x+1)+x))
	}

	x2 := x * x
	return math.Log1p(x + x2/(1+math.Sqrt(1+x2)))
}

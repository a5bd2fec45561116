package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// SystemMatrix is a real sparse linear system A x = b sized for one
// discretised field.
type SystemMatrix struct {
	Size     int
	matrix   *sparse.Matrix
	elements map[[2]int]*sparse.Element
	rhs      []float64
	solution []float64
	config   *sparse.Configuration
}

var _ Stamper = (*SystemMatrix)(nil)

func NewMatrix(size int) (*SystemMatrix, error) {
	if size < 1 {
		return nil, fmt.Errorf("matrix size must be positive, got %d", size)
	}

	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 false,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           false,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	m := &SystemMatrix{
		Size:     size,
		matrix:   mat,
		elements: make(map[[2]int]*sparse.Element, 3*size),
		rhs:      make([]float64, size+1), // 1-based indexing
		solution: make([]float64, size+1),
		config:   config,
	}
	m.setupElements()

	return m, nil
}

// setupElements creates the tridiagonal band before the first factorization.
// Once factored the matrix is reordered and new elements cannot be added, so
// stamping goes through these pointers.
func (m *SystemMatrix) setupElements() {
	for i := 1; i <= m.Size; i++ {
		for j := max(1, i-1); j <= min(m.Size, i+1); j++ {
			m.elements[[2]int{i, j}] = m.matrix.GetElement(int64(i), int64(j))
		}
	}
}

func (m *SystemMatrix) AddElement(i, j int, value float64) {
	element, ok := m.elements[[2]int{i, j}]
	if !ok {
		fmt.Printf("Warning: Matrix index outside tridiagonal band (i=%d, j=%d, size=%d)\n", i, j, m.Size)
		return
	}
	element.Real += value
}

func (m *SystemMatrix) AddRHS(i int, value float64) {
	if i <= 0 || i > m.Size {
		fmt.Printf("Warning: RHS index out of bounds (i=%d, size=%d)\n", i, m.Size)
		return
	}
	m.rhs[i] += value
}

func (m *SystemMatrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
}

func (m *SystemMatrix) Solve() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}

	solution, err := m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}
	m.solution = solution

	return nil
}

// Solution is 1-based, index 0 is unused.
func (m *SystemMatrix) Solution() []float64 {
	return m.solution
}

func (m *SystemMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
		m.elements = nil
	}
}

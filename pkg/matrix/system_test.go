package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveTridiagonal(t *testing.T) {
	m, err := NewMatrix(3)
	require.NoError(t, err)
	defer m.Destroy()

	// [ 2 -1  0] [x1]   [1]
	// [-1  2 -1] [x2] = [0]
	// [ 0 -1  2] [x3]   [1]
	m.Clear()
	m.AddElement(1, 1, 2)
	m.AddElement(1, 2, -1)
	m.AddElement(2, 1, -1)
	m.AddElement(2, 2, 2)
	m.AddElement(2, 3, -1)
	m.AddElement(3, 2, -1)
	m.AddElement(3, 3, 2)
	m.AddRHS(1, 1)
	m.AddRHS(3, 1)

	require.NoError(t, m.Solve())
	x := m.Solution()
	assert.InDelta(t, 1.0, x[1], 1e-12)
	assert.InDelta(t, 1.0, x[2], 1e-12)
	assert.InDelta(t, 1.0, x[3], 1e-12)
}

func TestClearResetsSystem(t *testing.T) {
	m, err := NewMatrix(2)
	require.NoError(t, err)
	defer m.Destroy()

	for _, rhs := range []float64{3, 8} {
		m.Clear()
		m.AddElement(1, 1, 1)
		m.AddElement(2, 2, 2)
		m.AddRHS(1, rhs)
		m.AddRHS(2, rhs)
		require.NoError(t, m.Solve())
		assert.InDelta(t, rhs, m.Solution()[1], 1e-12)
		assert.InDelta(t, rhs/2, m.Solution()[2], 1e-12)
	}
}

func TestRefactorAfterClear(t *testing.T) {
	m, err := NewMatrix(3)
	require.NoError(t, err)
	defer m.Destroy()

	for _, diag := range []float64{2, 4, 3} {
		m.Clear()
		m.AddElement(1, 1, diag)
		m.AddElement(1, 2, -1)
		m.AddElement(2, 1, -1)
		m.AddElement(2, 2, diag)
		m.AddElement(2, 3, -1)
		m.AddElement(3, 2, -1)
		m.AddElement(3, 3, diag)
		m.AddRHS(1, diag-1)
		m.AddRHS(2, diag-2)
		m.AddRHS(3, diag-1)

		require.NoError(t, m.Solve(), "diag %g", diag)
		for i := 1; i <= 3; i++ {
			assert.InDelta(t, 1.0, m.Solution()[i], 1e-12, "diag %g row %d", diag, i)
		}
	}
}

func TestNewMatrixRejectsEmpty(t *testing.T) {
	_, err := NewMatrix(0)
	assert.Error(t, err)
}

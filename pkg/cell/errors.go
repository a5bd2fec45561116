package cell

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed time/current series. The cell
	// is left untouched.
	ErrInvalidInput = errors.New("cell: invalid input series")

	// ErrNumericalInstability is returned when the timestep exceeds the
	// explicit stability bound of any field.
	ErrNumericalInstability = errors.New("cell: timestep exceeds explicit stability bound")

	// ErrInvalidParameter is returned by New for non-physical parameters.
	ErrInvalidParameter = errors.New("cell: invalid parameter")

	// ErrModelSpent is returned when a cell that already ran is simulated
	// again without Reset.
	ErrModelSpent = errors.New("cell: model already simulated, call Reset")
)

// StabilityError names the field whose stability bound was violated.
type StabilityError struct {
	Domain   string
	TimeStep float64
	Limit    float64
}

func (e *StabilityError) Error() string {
	return fmt.Sprintf("%v: %s needs dt <= %.4g s, got %.4g s", ErrNumericalInstability, e.Domain, e.Limit, e.TimeStep)
}

func (e *StabilityError) Unwrap() error {
	return ErrNumericalInstability
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

package util

import (
	"fmt"
	"strings"
)

type IntegrationMethod int

const (
	FTCSMethod          IntegrationMethod = iota // Forward euler, central space
	BackwardEulerMethod                          // Implicit euler, central space
)

var methodNames = map[IntegrationMethod]string{
	FTCSMethod:          "ftcs",
	BackwardEulerMethod: "be",
}

func (m IntegrationMethod) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("IntegrationMethod(%d)", int(m))
}

// Explicit reports whether the method is bound by the FTCS stability limit.
func (m IntegrationMethod) Explicit() bool {
	return m == FTCSMethod
}

func ParseIntegrationMethod(name string) (IntegrationMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ftcs", "euler", "forward-euler":
		return FTCSMethod, nil
	case "be", "backward-euler", "implicit":
		return BackwardEulerMethod, nil
	}
	return FTCSMethod, fmt.Errorf("unknown integration method: %q", name)
}

// UnmarshalText lets the method be read straight from config files.
func (m *IntegrationMethod) UnmarshalText(text []byte) error {
	method, err := ParseIntegrationMethod(string(text))
	if err != nil {
		return err
	}
	*m = method
	return nil
}

func (m IntegrationMethod) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

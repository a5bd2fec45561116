package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/edp1096/toy-spme/pkg/waveform"
)

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"G":   1e9,   // giga
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"M":   1e-3,  // milli, SPICE suffixes ignore case
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var valuePattern = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGMKkmunpf])?s?$`)

// ParseValue - Parse value and factor. 6.1u -> 6.1e-6
func ParseValue(val string) (float64, error) {
	matches := valuePattern.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	// factor
	if matches[2] != "" {
		multiplier, ok := unitMap[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unknown unit suffix %q in %s", matches[2], val)
		}
		num *= multiplier
	}

	return num, nil
}

// ParseSource reads a current source in SPICE notation:
//
//	DC 1
//	SIN(offset amplitude freq [phase])
//	PULSE(i1 i2 delay rise fall width period)
//	PWL(t1 i1 t2 i2 ...)
//	CYCLE(amplitude half-period)
func ParseSource(source string) (waveform.Source, error) {
	remaining := strings.ReplaceAll(source, "(", " ( ")
	remaining = strings.ReplaceAll(remaining, ")", " ) ")
	words := strings.Fields(remaining)
	if len(words) == 0 {
		return nil, fmt.Errorf("missing current source type")
	}
	params := strings.Trim(strings.Join(words[1:], " "), "() ")

	switch strings.ToUpper(words[0]) {
	case "DC":
		if params == "" {
			return nil, fmt.Errorf("missing DC value")
		}
		value, err := ParseValue(params)
		if err != nil {
			return nil, err
		}
		return waveform.DC{Value: value}, nil

	case "SIN":
		return parseSinParams(params)

	case "PULSE":
		return parsePulseParams(params)

	case "PWL":
		return parsePWLParams(params)

	case "CYCLE":
		return parseCycleParams(params)
	}

	// A bare number is a DC source.
	if value, err := ParseValue(source); err == nil {
		return waveform.DC{Value: value}, nil
	}
	return nil, fmt.Errorf("unsupported current source type: %s", words[0])
}

// parseValues parses every field of params, naming the source on failure.
func parseValues(kind string, names []string, params string) ([]float64, error) {
	fields := strings.Fields(params)
	values := make([]float64, len(fields))
	for i, field := range fields {
		v, err := ParseValue(field)
		if err != nil {
			name := fmt.Sprintf("param[%d]", i)
			if i < len(names) {
				name = names[i]
			}
			return nil, fmt.Errorf("invalid %s %s: %v", kind, name, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseSinParams(params string) (waveform.Source, error) {
	v, err := parseValues("SIN", []string{"offset", "amplitude", "frequency", "phase"}, params)
	if err != nil {
		return nil, err
	}
	if len(v) < 3 {
		return nil, fmt.Errorf("insufficient SIN parameters")
	}
	s := waveform.Sin{Offset: v[0], Amplitude: v[1], Freq: v[2]}
	if len(v) > 3 {
		s.Phase = v[3]
	}
	return s, nil
}

func parsePulseParams(params string) (waveform.Source, error) {
	v, err := parseValues("PULSE", []string{"I1", "I2", "delay", "rise", "fall", "width", "period"}, params)
	if err != nil {
		return nil, err
	}
	if len(v) < 7 {
		return nil, fmt.Errorf("insufficient PULSE parameters")
	}
	return waveform.Pulse{I1: v[0], I2: v[1], Delay: v[2], Rise: v[3], Fall: v[4], Width: v[5], Period: v[6]}, nil
}

func parsePWLParams(params string) (waveform.Source, error) {
	v, err := parseValues("PWL", nil, params)
	if err != nil {
		return nil, err
	}
	if len(v) < 4 || len(v)%2 != 0 {
		return nil, fmt.Errorf("insufficient or invalid PWL parameters, need pairs of time-value")
	}

	numPoints := len(v) / 2
	times := make([]float64, numPoints)
	values := make([]float64, numPoints)
	for i := 0; i < numPoints; i++ {
		times[i] = v[2*i]
		values[i] = v[2*i+1]
	}
	return waveform.NewPWL(times, values)
}

func parseCycleParams(params string) (waveform.Source, error) {
	v, err := parseValues("CYCLE", []string{"amplitude", "half-period"}, params)
	if err != nil {
		return nil, err
	}
	if len(v) != 2 {
		return nil, fmt.Errorf("CYCLE needs amplitude and half-period")
	}
	if v[1] <= 0 {
		return nil, fmt.Errorf("CYCLE half-period must be positive, got %g", v[1])
	}
	return waveform.Cycle{Amplitude: v[0], HalfPeriod: v[1]}, nil
}

// Package waveform generates applied-current profiles for a cell.
// Positive current charges.
package waveform

import (
	"fmt"
	"math"
)

type Source interface {
	Current(t float64) float64
}

type DC struct {
	Value float64
}

func (s DC) Current(float64) float64 { return s.Value }

type Sin struct {
	Offset    float64
	Amplitude float64
	Freq      float64 // Hz
	Phase     float64 // degrees
}

func (s Sin) Current(t float64) float64 {
	phaseRad := s.Phase * math.Pi / 180.0
	return s.Offset + s.Amplitude*math.Sin(2.0*math.Pi*s.Freq*t+phaseRad)
}

// Pulse switches between I1 and I2 with linear edges. A zero Period means a
// single pulse.
type Pulse struct {
	I1, I2 float64
	Delay  float64
	Rise   float64
	Fall   float64
	Width  float64
	Period float64
}

func (s Pulse) Current(t float64) float64 {
	if t < s.Delay {
		return s.I1
	}

	t = t - s.Delay
	if s.Period > 0 {
		t = math.Mod(t, s.Period)
	}

	if t < s.Rise {
		return s.I1 + (s.I2-s.I1)*t/s.Rise
	}

	if t < s.Rise+s.Width {
		return s.I2
	}

	fallStart := s.Rise + s.Width
	if t < fallStart+s.Fall {
		return s.I2 - (s.I2-s.I1)*(t-fallStart)/s.Fall
	}

	return s.I1
}

// PWL interpolates linearly between breakpoints and holds the end values
// outside them.
type PWL struct {
	times  []float64
	values []float64
}

func NewPWL(times, values []float64) (*PWL, error) {
	if len(times) == 0 || len(times) != len(values) {
		return nil, fmt.Errorf("PWL needs matching non-empty time/value lists, got %d and %d", len(times), len(values))
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("PWL time points must be strictly increasing")
		}
	}
	return &PWL{
		times:  append([]float64(nil), times...),
		values: append([]float64(nil), values...),
	}, nil
}

func (s *PWL) Current(t float64) float64 {
	if t <= s.times[0] {
		return s.values[0]
	}

	lastIdx := len(s.times) - 1
	if t >= s.times[lastIdx] {
		return s.values[lastIdx]
	}

	for idx := 1; idx < len(s.times); idx++ {
		if t <= s.times[idx] {
			t1, t2 := s.times[idx-1], s.times[idx]
			i1, i2 := s.values[idx-1], s.values[idx]
			slope := (i2 - i1) / (t2 - t1)
			return i1 + slope*(t-t1)
		}
	}

	return s.values[lastIdx] // Must not reach
}

// Cycle charges at Amplitude for HalfPeriod seconds, then discharges at the
// same magnitude, repeating.
type Cycle struct {
	Amplitude  float64
	HalfPeriod float64
}

func (s Cycle) Current(t float64) float64 {
	if s.HalfPeriod <= 0 {
		return s.Amplitude
	}
	phase := math.Mod(t, 2*s.HalfPeriod)
	if phase < 0 {
		phase += 2 * s.HalfPeriod
	}
	if phase < s.HalfPeriod {
		return s.Amplitude
	}
	return -s.Amplitude
}

// CRate is the C/rate full cycle of a cell with the given capacity in Ah:
// charge for 1/rate hours at capacity*rate amperes, then discharge.
func CRate(capacity, rate float64) Cycle {
	return Cycle{Amplitude: capacity * rate, HalfPeriod: 3600 / rate}
}

// Package config reads cell description files. The files use the gcfg INI
// dialect and accept SPICE unit suffixes on every quantity.
package config

import (
	"fmt"

	"github.com/edp1096/toy-spme/pkg/cell"
	"github.com/edp1096/toy-spme/pkg/util"
	"github.com/edp1096/toy-spme/pkg/waveform"
	"gopkg.in/gcfg.v1"
)

const ExampleCellFile = `[Cell]
Name = lg-mj1
# ftcs or be
Method = ftcs
RecordHistory = false
Parallel = false

[Negative]
Chemistry = graphite-si
Radius = 6.1u
Diffusivity = 5e-14
MaxConcentration = 34684
InitialConcentration = 1000
Height = 65m
Width = 1.58
Thickness = 85.2u
VolumeFraction = 0.75
RateConstant = 2m

[Positive]
Chemistry = nmc811
Radius = 3.8u
Diffusivity = 5e-14
MaxConcentration = 50060
InitialConcentration = 49000
Height = 65m
Width = 1.58
Thickness = 75.6u
VolumeFraction = 0.665
RateConstant = 2m

[Electrolyte]
Thickness = 12u
Diffusivity = 1.7e-10
InitialConcentration = 1000
TransferenceNumber = 0.2594
Conductivity = 0.95

[Profile]
# Source = CYCLE(1 1200) or Table = path/to/profile.txt
Source = CYCLE(1 1200)
TStep = 100m
TStop = 2400
`

// Quantity is a number read with an optional SPICE suffix. Set records
// whether the file mentioned it, so absent keys keep their defaults.
type Quantity struct {
	Value float64
	Set   bool
}

func (q *Quantity) UnmarshalText(text []byte) error {
	v, err := ParseValue(string(text))
	if err != nil {
		return err
	}
	q.Value, q.Set = v, true
	return nil
}

func (q Quantity) apply(dst *float64) {
	if q.Set {
		*dst = q.Value
	}
}

type CellSection struct {
	Name          string
	Method        string
	RecordHistory bool
	Parallel      bool
}

type ElectrodeSection struct {
	Chemistry            string
	Radius               Quantity
	Diffusivity          Quantity
	MaxConcentration     Quantity
	InitialConcentration Quantity
	Height               Quantity
	Width                Quantity
	Thickness            Quantity
	VolumeFraction       Quantity
	RateConstant         Quantity
}

type ElectrolyteSection struct {
	Thickness            Quantity
	Diffusivity          Quantity
	InitialConcentration Quantity
	TransferenceNumber   Quantity
	Conductivity         Quantity
}

type ProfileSection struct {
	Source string
	Table  string
	TStep  Quantity
	TStop  Quantity
}

// File mirrors the sections of a cell file.
type File struct {
	Cell        CellSection
	Negative    ElectrodeSection
	Positive    ElectrodeSection
	Electrolyte ElectrolyteSection
	Profile     ProfileSection
}

// Profile is the applied current of a run: either a source sampled every
// TStep up to TStop, or a table file.
type Profile struct {
	Source waveform.Source
	Table  string
	TStep  float64
	TStop  float64
}

// Series samples the profile.
func (p Profile) Series() (time, current []float64, err error) {
	if p.Table != "" {
		return waveform.ReadTable(p.Table)
	}
	if p.Source == nil {
		return nil, nil, fmt.Errorf("profile has neither a source nor a table")
	}
	return waveform.Sample(p.Source, p.TStop, p.TStep)
}

// Deck is a fully resolved cell file.
type Deck struct {
	Cell    cell.Config
	Profile Profile
}

func Load(path string) (*Deck, error) {
	var f File
	if err := gcfg.ReadFileInto(&f, path); err != nil {
		return nil, fmt.Errorf("reading cell file %s: %w", path, err)
	}
	return f.Deck()
}

func Parse(text string) (*Deck, error) {
	var f File
	if err := gcfg.ReadStringInto(&f, text); err != nil {
		return nil, fmt.Errorf("parsing cell file: %w", err)
	}
	return f.Deck()
}

// Deck overlays the file on DefaultConfig and the default 1 A cycle.
func (f *File) Deck() (*Deck, error) {
	cfg := cell.DefaultConfig()

	if f.Cell.Name != "" {
		cfg.Name = f.Cell.Name
	}
	method, err := util.ParseIntegrationMethod(f.Cell.Method)
	if err != nil {
		return nil, err
	}
	cfg.Method = method
	cfg.RecordHistory = f.Cell.RecordHistory
	cfg.Parallel = f.Cell.Parallel

	f.Negative.apply(&cfg.Negative)
	f.Positive.apply(&cfg.Positive)
	f.Electrolyte.apply(&cfg.Electrolyte)

	profile, err := f.Profile.resolve()
	if err != nil {
		return nil, err
	}
	return &Deck{Cell: cfg, Profile: profile}, nil
}

func (s ElectrodeSection) apply(dst *cell.ElectrodeConfig) {
	if s.Chemistry != "" {
		dst.Chemistry = s.Chemistry
	}
	s.Radius.apply(&dst.Radius)
	s.Diffusivity.apply(&dst.Diffusivity)
	s.MaxConcentration.apply(&dst.MaxConcentration)
	s.InitialConcentration.apply(&dst.InitialConcentration)
	s.Height.apply(&dst.Height)
	s.Width.apply(&dst.Width)
	s.Thickness.apply(&dst.Thickness)
	s.VolumeFraction.apply(&dst.VolumeFraction)
	s.RateConstant.apply(&dst.RateConstant)
}

func (s ElectrolyteSection) apply(dst *cell.ElectrolyteConfig) {
	s.Thickness.apply(&dst.Thickness)
	s.Diffusivity.apply(&dst.Diffusivity)
	s.InitialConcentration.apply(&dst.InitialConcentration)
	s.TransferenceNumber.apply(&dst.TransferenceNumber)
	s.Conductivity.apply(&dst.Conductivity)
}

func (s ProfileSection) resolve() (Profile, error) {
	p := Profile{Table: s.Table, TStep: 0.1, TStop: 2400}
	s.TStep.apply(&p.TStep)
	s.TStop.apply(&p.TStop)

	switch {
	case s.Source != "" && s.Table != "":
		return p, fmt.Errorf("profile sets both Source and Table")
	case s.Source != "":
		src, err := ParseSource(s.Source)
		if err != nil {
			return p, fmt.Errorf("profile source: %w", err)
		}
		p.Source = src
	case s.Table == "":
		p.Source = waveform.Cycle{Amplitude: 1, HalfPeriod: p.TStop / 2}
	}
	return p, nil
}

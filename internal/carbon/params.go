package carbon

import (
	"errors"
	"fmt"

	"github.com/san-kum/cropsim/internal/sim"
)

const (
	// CarbonFraction converts dry biomass to carbon.
	CarbonFraction = 0.45
	// ResidueFull is the share of biomass returned when residues are
	// incorporated; ResidueStubble when only stubble remains.
	ResidueFull    = 0.65
	ResidueStubble = 0.20
	// CoverCropInput and ManureInput are annual add-ons in Mg C/ha.
	CoverCropInput = 0.8
	ManureInput    = 1.0
	// DPM:RPM ratios of fresh inputs.
	RatioCrop   = 1.44
	RatioLegume = 1.0
)

// Params configures a long-term projection.
type Params struct {
	Years      int     `yaml:"years" json:"years"`
	InitialSOC float64 `yaml:"initial_soc" json:"initial_soc"`
	Clay       float64 `yaml:"clay" json:"clay"`
	// ET0 is the daily reference evapotranspiration in mm; the monthly
	// demand is 30 times this. Runs copy it from the soil bundle.
	ET0                 float64 `yaml:"-" json:"et0"`
	Rotation            string  `yaml:"rotation" json:"rotation"`
	MinimumTillage      bool    `yaml:"minimum_tillage" json:"minimum_tillage"`
	CoverCrop           bool    `yaml:"cover_crop" json:"cover_crop"`
	Manure              bool    `yaml:"manure" json:"manure"`
	IncorporateResidues bool    `yaml:"incorporate_residues" json:"incorporate_residues"`
}

func DefaultParams() Params {
	return Params{
		Years:               20,
		InitialSOC:          50,
		Clay:                25,
		ET0:                 4,
		Rotation:            DefaultRotation,
		IncorporateResidues: true,
	}
}

// Baseline is p under conventional management: ploughed, no cover crop, no
// manure, residues incorporated.
func (p Params) Baseline() Params {
	p.MinimumTillage = false
	p.CoverCrop = false
	p.Manure = false
	p.IncorporateResidues = true
	return p
}

func (p Params) Validate() error {
	v := sim.NewValidator("carbon").
		NonNegative("years", float64(p.Years)).
		NonNegative("initial_soc", p.InitialSOC).
		Range("clay", p.Clay, 0, 100).
		NonNegative("et0", p.ET0)
	if _, err := GetRotation(p.Rotation); err != nil {
		return errors.Join(v.Err(), fmt.Errorf("%w: %w", sim.ErrConfiguration, err))
	}
	return v.Err()
}

// AnnualInput is the carbon entering the soil in one year (Mg C/ha).
func (p Params) AnnualInput(biomass float64) float64 {
	residue := ResidueStubble
	if p.IncorporateResidues {
		residue = ResidueFull
	}
	total := biomass * CarbonFraction * residue
	if p.CoverCrop {
		total += CoverCropInput
	}
	if p.Manure {
		total += ManureInput
	}
	return total
}

// SplitInput divides a monthly input between DPM and RPM.
func SplitInput(amount float64, legume bool) Input {
	ratio := RatioCrop
	if legume {
		ratio = RatioLegume
	}
	dpm := ratio / (1 + ratio)
	return Input{DPM: amount * dpm, RPM: amount * (1 - dpm)}
}

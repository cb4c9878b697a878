package crop

import (
	"fmt"

	"github.com/san-kum/cropsim/internal/sim"
)

// Params holds the physiological parameters of the generic crop.
type Params struct {
	// phenology
	Tbase float64 `yaml:"tbase"`
	TuHAR float64 `yaml:"tu_har"`

	// leaf area
	LAI0    float64 `yaml:"lai0"`
	LAIMX   float64 `yaml:"laimx"`
	Alpha   float64 `yaml:"alpha"`
	SenRate float64 `yaml:"senrate"`
	FrEMR   float64 `yaml:"fr_emr"`
	FrBLS   float64 `yaml:"fr_bls"`
	KPAR    float64 `yaml:"kpar"`

	// biomass
	RUE    float64 `yaml:"rue"`
	TBRUE  float64 `yaml:"tb_rue"`
	TP1RUE float64 `yaml:"tp1_rue"`
	TP2RUE float64 `yaml:"tp2_rue"`
	TCRUE  float64 `yaml:"tc_rue"`
	B0     float64 `yaml:"b0"`
}

func DefaultParams() Params {
	return Params{
		Tbase:   8,
		TuHAR:   1400,
		LAI0:    0.02,
		LAIMX:   5,
		Alpha:   0.02,
		SenRate: 0.02,
		FrEMR:   0.05,
		FrBLS:   0.65,
		KPAR:    0.6,
		RUE:     2.5,
		TBRUE:   8,
		TP1RUE:  18,
		TP2RUE:  28,
		TCRUE:   40,
		B0:      0,
	}
}

// Validate range-checks each field. Cross-field consistency (for example
// TBRUE < TP1RUE) is deliberately left to the caller.
func (p Params) Validate() error {
	return sim.NewValidator("crop").
		Range("tbase", p.Tbase, -10, 40).
		NonNegative("tu_har", p.TuHAR).
		NonNegative("lai0", p.LAI0).
		Positive("laimx", p.LAIMX).
		Range("alpha", p.Alpha, 0, 1).
		Range("senrate", p.SenRate, 0, 1).
		Range("fr_emr", p.FrEMR, 0, 1).
		Range("fr_bls", p.FrBLS, 0, 1).
		Range("kpar", p.KPAR, 0, 2).
		NonNegative("rue", p.RUE).
		Finite("tb_rue", p.TBRUE).
		Finite("tp1_rue", p.TP1RUE).
		Finite("tp2_rue", p.TP2RUE).
		Finite("tc_rue", p.TCRUE).
		NonNegative("b0", p.B0).
		Err()
}

func (p *Params) GetParams() map[string]float64 {
	return map[string]float64{
		"tbase":   p.Tbase,
		"tu_har":  p.TuHAR,
		"lai0":    p.LAI0,
		"laimx":   p.LAIMX,
		"alpha":   p.Alpha,
		"senrate": p.SenRate,
		"fr_emr":  p.FrEMR,
		"fr_bls":  p.FrBLS,
		"kpar":    p.KPAR,
		"rue":     p.RUE,
		"tb_rue":  p.TBRUE,
		"tp1_rue": p.TP1RUE,
		"tp2_rue": p.TP2RUE,
		"tc_rue":  p.TCRUE,
		"b0":      p.B0,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "tbase":
		p.Tbase = value
	case "tu_har":
		p.TuHAR = value
	case "lai0":
		p.LAI0 = value
	case "laimx":
		p.LAIMX = value
	case "alpha":
		p.Alpha = value
	case "senrate":
		p.SenRate = value
	case "fr_emr":
		p.FrEMR = value
	case "fr_bls":
		p.FrBLS = value
	case "kpar":
		p.KPAR = value
	case "rue":
		p.RUE = value
	case "tb_rue":
		p.TBRUE = value
	case "tp1_rue":
		p.TP1RUE = value
	case "tp2_rue":
		p.TP2RUE = value
	case "tc_rue":
		p.TCRUE = value
	case "b0":
		p.B0 = value
	default:
		return fmt.Errorf("unknown crop param: %s", name)
	}
	return nil
}

package carbon

import "math"

// Decomposition rate constants (1/yr).
const (
	RateDPM = 10.0
	RateRPM = 0.3
	RateBIO = 0.66
	RateHUM = 0.02
	RateIOM = 0.0
)

// BioFraction is the share of the BIO+HUM flux entering BIO.
const BioFraction = 0.46

const monthStep = 1.0 / 12

// Pools are the five carbon compartments in Mg C/ha.
type Pools struct {
	DPM float64 `json:"dpm"`
	RPM float64 `json:"rpm"`
	BIO float64 `json:"bio"`
	HUM float64 `json:"hum"`
	IOM float64 `json:"iom"`
}

// Total is the soil organic carbon stock.
func (p Pools) Total() float64 {
	return p.DPM + p.RPM + p.BIO + p.HUM + p.IOM
}

// InitialPools splits an initial SOC stock heuristically: 1% DPM, 15% RPM,
// 2% BIO, 75% HUM and 7% IOM.
func InitialPools(soc float64) Pools {
	return Pools{
		DPM: soc * 0.01,
		RPM: soc * 0.15,
		BIO: soc * 0.02,
		HUM: soc * 0.75,
		IOM: soc * 0.07,
	}
}

// Input is fresh plant carbon added in one month.
type Input struct {
	DPM float64
	RPM float64
}

// Modifiers scale the decay rates. Tillage multiplies into the cover term.
type Modifiers struct {
	Temp     float64
	Moisture float64
	Cover    float64
}

// Combined is the product applied to every rate constant.
func (m Modifiers) Combined() float64 {
	return m.Temp * m.Moisture * m.Cover
}

// ClayPartition is x = 1.67·(1.85 + 1.60·exp(−0.0786·clay)), the ratio of
// CO2 to BIO+HUM produced on decomposition.
func ClayPartition(clay float64) float64 {
	return 1.67 * (1.85 + 1.60*math.Exp(-0.0786*clay))
}

// Decayed is the mass lost by one pool in one month.
func Decayed(amount, rate, modifier float64) float64 {
	return amount * (1 - math.Exp(-rate*modifier*monthStep))
}

// Step advances the pools by one month and returns the respired CO2.
func Step(p Pools, in Input, mod Modifiers, clay float64) (Pools, float64) {
	m := mod.Combined()

	dDPM := Decayed(p.DPM, RateDPM, m)
	dRPM := Decayed(p.RPM, RateRPM, m)
	dBIO := Decayed(p.BIO, RateBIO, m)
	dHUM := Decayed(p.HUM, RateHUM, m)
	total := dDPM + dRPM + dBIO + dHUM

	x := ClayPartition(clay)
	co2 := total * x / (x + 1)
	bioHum := total / (x + 1)

	return Pools{
		DPM: p.DPM - dDPM + in.DPM,
		RPM: p.RPM - dRPM + in.RPM,
		BIO: p.BIO - dBIO + bioHum*BioFraction,
		HUM: p.HUM - dHUM + bioHum*(1-BioFraction),
		IOM: p.IOM,
	}, co2
}

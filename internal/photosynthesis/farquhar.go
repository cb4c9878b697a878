// Package photosynthesis implements the Farquhar–von Caemmerer–Berry model
// of C3 leaf assimilation with Collatz-style temperature scaling.
package photosynthesis

import (
	"math"

	"github.com/san-kum/cropsim/internal/sim"
)

const (
	SurfacePressure = 101325.0 // Pa
	Oxygen          = 0.209 * SurfacePressure

	curvature = 0.7
	quantum   = 0.385

	coldLimit = 10.0
	coldSlope = 0.25
	hotLimit  = 40.0
	hotSlope  = 0.4
)

// Input is one leaf operating point. Rates are in µmol/m²/s, Ci in Pa.
type Input struct {
	Vmax  float64 `yaml:"vmax" json:"vmax"`
	Jmax  float64 `yaml:"jmax" json:"jmax"`
	APAR  float64 `yaml:"apar" json:"apar"`
	Ci    float64 `yaml:"ci" json:"ci"`
	TempC float64 `yaml:"temp_c" json:"temp_c"`
}

func DefaultInput() Input {
	return Input{Vmax: 60, Jmax: 120, APAR: 500, Ci: 30, TempC: 25}
}

func (in Input) Validate() error {
	return sim.NewValidator("farquhar").
		NonNegative("vmax", in.Vmax).
		NonNegative("jmax", in.Jmax).
		NonNegative("apar", in.APAR).
		NonNegative("ci", in.Ci).
		Range("temp_c", in.TempC, -50, 60).
		Err()
}

// Limitation names the process that bounds gross assimilation.
type Limitation string

const (
	Rubisco Limitation = "rubisco"
	Light   Limitation = "light"
	Sink    Limitation = "tpu"
)

// Rates are the three candidate carboxylation rates and respiration.
type Rates struct {
	Rubisco     float64 `json:"wc"`
	Light       float64 `json:"wj"`
	Sink        float64 `json:"ws"`
	Respiration float64 `json:"rd"`
	Net         float64 `json:"an"`
}

func (r Rates) Limitation() Limitation {
	switch math.Min(r.Rubisco, math.Min(r.Light, r.Sink)) {
	case r.Rubisco:
		return Rubisco
	case r.Light:
		return Light
	}
	return Sink
}

// ElectronTransport is the smaller root of θJ² − (Jmax + φI)J + φI·Jmax = 0.
func ElectronTransport(jmax, apar float64) float64 {
	b := -(jmax + quantum*apar)
	c := quantum * jmax * apar
	root := math.Sqrt(math.Max(b*b-4*curvature*c, 0))
	return math.Min((-b+root)/(2*curvature), (-b-root)/(2*curvature))
}

// Compute evaluates every limiting rate at in.
func Compute(in Input) Rates {
	k := (in.TempC - 25) / 10

	tau := 2600 * math.Pow(0.57, k)
	gamma := Oxygen / (2 * tau)
	kc := 30 * math.Pow(2.1, k)
	ko := 30000 * math.Pow(1.2, k)

	cold := 1 + math.Exp(coldSlope*(coldLimit-in.TempC))
	heat := 1 + math.Exp(hotSlope*(in.TempC-hotLimit))
	vm := in.Vmax * math.Pow(2.1, k) / (cold * heat)

	rd := 0.015 * vm * math.Pow(2.4, k) / (1 + math.Exp(1.3*(in.TempC-55)))
	j := ElectronTransport(in.Jmax, in.APAR)

	r := Rates{
		Rubisco:     vm * (in.Ci - gamma) / (in.Ci + kc*(1+Oxygen/ko)),
		Light:       j * (in.Ci - gamma) / (4 * (in.Ci + 2*gamma)),
		Sink:        vm / 2,
		Respiration: rd,
	}
	r.Net = math.Min(r.Rubisco, math.Min(r.Light, r.Sink)) - rd
	return r
}

// An is the net assimilation rate.
func An(in Input) float64 {
	return Compute(in).Net
}

// Point is one sample of a response curve.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CO2Response sweeps CO2 from 10 to 1000 ppm (Ci = ppm/10 Pa) at APAR 500.
func CO2Response(vmax, jmax, tempC float64) []Point {
	var out []Point
	for ppm := 10; ppm <= 1000; ppm += 10 {
		in := Input{Vmax: vmax, Jmax: jmax, APAR: 500, Ci: float64(ppm) / 10, TempC: tempC}
		out = append(out, Point{X: float64(ppm), Y: An(in)})
	}
	return out
}

// LightResponse sweeps APAR from 0 to 2000 at Ci = 30 Pa.
func LightResponse(vmax, jmax, tempC float64) []Point {
	var out []Point
	for apar := 0; apar <= 2000; apar += 20 {
		in := Input{Vmax: vmax, Jmax: jmax, APAR: float64(apar), Ci: 30, TempC: tempC}
		out = append(out, Point{X: float64(apar), Y: An(in)})
	}
	return out
}

// TemperatureResponse sweeps leaf temperature from lo to hi in 1 °C steps.
func TemperatureResponse(base Input, lo, hi int) []Point {
	var out []Point
	for t := lo; t <= hi; t++ {
		base.TempC = float64(t)
		out = append(out, Point{X: float64(t), Y: An(base)})
	}
	return out
}

// Ys extracts the response values of a curve.
func Ys(pts []Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Y
	}
	return out
}

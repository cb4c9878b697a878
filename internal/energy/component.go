package energy

import (
	"fmt"
	"math"
)

// Kind tags a canopy component.
type Kind int

const (
	Lumped Kind = iota
	Sunlit
	Shaded
	Soil
)

func (k Kind) String() string {
	switch k {
	case Lumped:
		return "lumped"
	case Sunlit:
		return "sunlit"
	case Shaded:
		return "shaded"
	case Soil:
		return "soil"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) IsLeaf() bool { return k != Soil }

// Component is one surface exchanging energy with the air above the canopy.
// Temp is in kelvin, fluxes in W/m², Resistance in s/m.
type Component struct {
	Kind       Kind    `json:"kind"`
	LAI        float64 `json:"lai"`
	Temp       float64 `json:"temp"`
	Absorbed   float64 `json:"absorbed"`
	Latent     float64 `json:"latent"`
	Sensible   float64 `json:"sensible"`
	Resistance float64 `json:"resistance"`
}

// environment is the forcing shared by every component in one iteration.
type environment struct {
	available  float64
	lai        float64
	kb         float64
	parDirect  float64
	parDiffuse float64
	stress     float64
	gmax       float64
	par50      float64
	delta      float64
	gamma      float64
	vpd        float64
	ra         float64
	airTemp    float64
}

func (e environment) canopyShare() float64 {
	return 1 - math.Exp(-e.kb*e.lai)
}

// surface returns the absorbed energy and surface resistance of c.
func (c *Component) surface(e environment) (float64, float64) {
	if c.Kind == Soil {
		return e.available * math.Exp(-e.kb*e.lai), SoilResistance(e.stress)
	}

	var absorbed, rad float64
	par := e.parDirect + e.parDiffuse
	switch c.Kind {
	case Lumped:
		absorbed = e.available * e.canopyShare()
		rad = par
		if kl := e.kb * e.lai; kl > 0 {
			rad = par * (1 - math.Exp(-kl)) / kl
		}
	case Sunlit, Shaded:
		frac := 0.0
		if e.lai > 0 {
			frac = c.LAI / e.lai
		}
		absorbed = e.available * e.canopyShare() * frac
		rad = e.parDiffuse
		if c.Kind == Sunlit {
			rad = par
		}
	}

	gs := 0.0
	if e.par50+rad > 0 {
		gs = e.gmax * rad / (e.par50 + rad) * e.stress
	}
	rs := closedStomata
	if gs*c.LAI > 0 {
		rs = 1 / (gs * c.LAI)
	}
	return absorbed, rs
}

// update solves the component's energy balance against the shared forcing.
func (c *Component) update(e environment) {
	c.Absorbed, c.Resistance = c.surface(e)

	num := e.delta*c.Absorbed + rhoCp*e.vpd/e.ra
	den := e.delta + e.gamma*(1+c.Resistance/e.ra)
	c.Latent = 0
	if den > 0 {
		c.Latent = num / den
	}
	c.Sensible = c.Absorbed - c.Latent
	c.Temp = e.airTemp + c.Sensible*e.ra/rhoCp
}

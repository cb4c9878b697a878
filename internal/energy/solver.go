package energy

import (
	"math"

	"github.com/san-kum/cropsim/internal/sim"
)

// Layout selects how the canopy is divided.
type Layout int

const (
	LumpedLayout Layout = iota
	SunlitShadedLayout
)

// Inputs is the instantaneous micrometeorological state. AirTemp is in
// kelvin, Pressure and VaporPressure in kPa, PAR in W/m².
type Inputs struct {
	MeasurementHeight float64
	CanopyHeight      float64
	LAI               float64
	SoilWater         float64
	AirTemp           float64
	WindSpeed         float64
	RH                float64
	Pressure          float64
	VaporPressure     float64
	PARDirect         float64
	PARDiffuse        float64
}

func (in Inputs) Validate() error {
	return sim.NewValidator("energy.inputs").
		Positive("measurement_height", in.MeasurementHeight).
		Range("canopy_height", in.CanopyHeight, 0, in.MeasurementHeight).
		NonNegative("lai", in.LAI).
		Range("soil_water", in.SoilWater, 0, 1).
		Positive("air_temp", in.AirTemp).
		Positive("wind_speed", in.WindSpeed).
		Range("rh", in.RH, 0, 100).
		Positive("pressure", in.Pressure).
		NonNegative("vapor_pressure", in.VaporPressure).
		NonNegative("par_direct", in.PARDirect).
		NonNegative("par_diffuse", in.PARDiffuse).
		Err()
}

// Params are the physical and numerical settings of the solver.
type Params struct {
	DragCoefficient float64 `yaml:"drag_coefficient"`
	SoilRoughness   float64 `yaml:"soil_roughness"`
	Emissivity      float64 `yaml:"emissivity"`
	WiltingPoint    float64 `yaml:"wilting_point"`
	FieldCapacity   float64 `yaml:"field_capacity"`
	// MaxConductance is the maximum stomatal conductance in m/s.
	MaxConductance float64 `yaml:"max_conductance"`
	PAR50          float64 `yaml:"par50"`
	Kb             float64 `yaml:"kb"`
	Albedo         float64 `yaml:"albedo"`
	Tolerance      float64 `yaml:"tolerance"`
	MaxIterations  int     `yaml:"max_iterations"`
	Stability      bool    `yaml:"stability"`
}

func DefaultParams() Params {
	return Params{
		DragCoefficient: 0.2,
		SoilRoughness:   0.01,
		Emissivity:      0.85,
		WiltingPoint:    0.15,
		FieldCapacity:   0.35,
		MaxConductance:  0.01,
		PAR50:           100,
		Kb:              0.6,
		Albedo:          0.23,
		Tolerance:       0.01,
		MaxIterations:   50,
		Stability:       true,
	}
}

func (p Params) Validate() error {
	return sim.NewValidator("energy").
		NonNegative("drag_coefficient", p.DragCoefficient).
		Positive("soil_roughness", p.SoilRoughness).
		Range("emissivity", p.Emissivity, 0, 1).
		Range("wilting_point", p.WiltingPoint, 0, 1).
		Range("field_capacity", p.FieldCapacity, p.WiltingPoint, 1).
		NonNegative("max_conductance", p.MaxConductance).
		NonNegative("par50", p.PAR50).
		NonNegative("kb", p.Kb).
		Range("albedo", p.Albedo, 0, 1).
		Positive("tolerance", p.Tolerance).
		Positive("max_iterations", float64(p.MaxIterations)).
		Err()
}

// stabilityIterations bounds the Monin–Obukhov fixed point.
const stabilityIterations = 10

// Convergence reports both solver loops. Converged holds when the last inner
// loop met the temperature tolerance and, with stability enabled, the outer
// loop settled within 1 W/m² of sensible heat.
type Convergence struct {
	Converged       bool    `json:"converged"`
	InnerIterations int     `json:"inner_iterations"`
	OuterIterations int     `json:"outer_iterations"`
	Residual        float64 `json:"residual"`
}

// Report condenses c into the shared convergence value.
func (c Convergence) Report() sim.Convergence {
	return sim.Convergence{
		Converged:  c.Converged,
		Iterations: c.InnerIterations,
		Residual:   c.Residual,
	}
}

type Result struct {
	Components            []Component `json:"components"`
	NetRadiation          float64     `json:"net_radiation"`
	SoilHeatFlux          float64     `json:"soil_heat_flux"`
	LatentFlux            float64     `json:"latent_flux"`
	SensibleFlux          float64     `json:"sensible_flux"`
	AerodynamicResistance float64     `json:"aerodynamic_resistance"`
	Convergence           Convergence `json:"convergence"`
}

// Component returns the first component of kind k.
func (r Result) Component(k Kind) (Component, bool) {
	for _, c := range r.Components {
		if c.Kind == k {
			return c, true
		}
	}
	return Component{}, false
}

// CanopyTemp is the LAI-weighted leaf temperature in kelvin, or the soil
// temperature of a bare surface.
func (r Result) CanopyTemp(air float64) float64 {
	var lai, sum float64
	for _, c := range r.Components {
		if c.Kind.IsLeaf() {
			lai += c.LAI
			sum += c.Temp * c.LAI
		}
	}
	if lai <= 0 {
		return air
	}
	return sum / lai
}

// Solver holds the canopy state of one invocation.
type Solver struct {
	in     Inputs
	params Params

	d, z0m, ra         float64
	components         []Component
	rn, g              float64
	latent, sensible   float64
	inner, outer       int
	residual           float64
	innerOK, outerDone bool
}

func NewSolver(layout Layout, in Inputs, p Params) *Solver {
	s := &Solver{in: in, params: p}
	s.d = Displacement(in.CanopyHeight, in.LAI, p.DragCoefficient)
	s.z0m = Roughness(p.SoilRoughness, s.d, in.CanopyHeight, in.LAI, p.DragCoefficient)

	if layout == LumpedLayout {
		s.components = append(s.components, Component{Kind: Lumped, LAI: in.LAI})
	} else {
		sun := SunlitLAI(in.LAI, p.Kb)
		s.components = append(s.components,
			Component{Kind: Sunlit, LAI: sun},
			Component{Kind: Shaded, LAI: in.LAI - sun},
		)
	}
	s.components = append(s.components, Component{Kind: Soil})
	for i := range s.components {
		s.components[i].Temp = in.AirTemp
	}
	s.updateResistance()
	return s
}

// Run solves the balance, then iterates the stability correction when
// enabled.
func (s *Solver) Run() Result {
	s.solveTransient()

	s.outerDone = !s.params.Stability
	if s.params.Stability {
		for i := 0; i < s.params.MaxIterations; i++ {
			s.outer++
			prev := s.sensible
			s.updateResistance()
			s.solveTransient()
			if math.Abs(prev-s.sensible) < 1 {
				s.outerDone = true
				break
			}
		}
	}
	return s.result()
}

func (s *Solver) result() Result {
	comps := make([]Component, len(s.components))
	copy(comps, s.components)
	return Result{
		Components:            comps,
		NetRadiation:          s.rn,
		SoilHeatFlux:          s.g,
		LatentFlux:            s.latent,
		SensibleFlux:          s.sensible,
		AerodynamicResistance: s.ra,
		Convergence: Convergence{
			Converged:       s.innerOK && s.outerDone,
			InnerIterations: s.inner,
			OuterIterations: s.outer,
			Residual:        s.residual,
		},
	}
}

// solveTransient iterates component temperatures to a fixed point.
func (s *Solver) solveTransient() {
	s.innerOK = false
	old := make([]float64, len(s.components))
	for i := 0; i < s.params.MaxIterations; i++ {
		s.inner++
		for j, c := range s.components {
			old[j] = c.Temp
		}
		s.updateState()

		diff := 0.0
		for j, c := range s.components {
			diff += math.Abs(c.Temp - old[j])
		}
		s.residual = diff
		if diff < s.params.Tolerance {
			s.innerOK = true
			return
		}
	}
}

func (s *Solver) updateResistance() {
	zm := s.in.MeasurementHeight
	logZ := math.Log((zm - s.d) / s.z0m)

	var phiM, phiH float64
	for i := 0; i < stabilityIterations; i++ {
		ustar := FrictionVelocity(s.in.WindSpeed, zm, s.d, s.z0m, phiM)
		l := ObukhovLength(s.in.AirTemp, ustar, s.sensible)
		if math.IsInf(l, 0) || math.IsNaN(l) {
			break
		}
		m, h := StabilityCorrection((zm - s.d) / l)
		if math.Abs(m-phiM) < 0.01 {
			break
		}
		phiM, phiH = m, h
	}
	// Corrections that leave no log-profile behave as neutral.
	if logZ-phiM <= 0 || logZ-phiH <= 0 {
		phiM, phiH = 0, 0
	}

	ustar := FrictionVelocity(s.in.WindSpeed, zm, s.d, s.z0m, phiM)
	s.ra = math.Max((logZ-phiH)/(ustar*VonKarman), minResistance)
}

func (s *Solver) updateState() {
	p := s.params
	airC := KelvinToCelsius(s.in.AirTemp)

	global := (s.in.PARDirect + s.in.PARDiffuse) / PARFraction
	swNet := (1 - p.Albedo) * global
	lwNet := -StefanBoltz * math.Pow(s.in.AirTemp, 4) *
		(0.34 - 0.14*math.Sqrt(s.in.VaporPressure)) * (1 - p.Emissivity)
	s.rn = swNet + lwNet
	s.g = SoilHeatFlux(s.rn, global > 0)

	env := environment{
		available:  s.rn - s.g,
		lai:        s.in.LAI,
		kb:         p.Kb,
		parDirect:  s.in.PARDirect,
		parDiffuse: s.in.PARDiffuse,
		stress:     WaterStress(s.in.SoilWater, p.WiltingPoint, p.FieldCapacity),
		gmax:       p.MaxConductance,
		par50:      p.PAR50,
		delta:      VaporPressureSlope(airC),
		gamma:      PsychrometricConstant(s.in.Pressure),
		vpd:        VaporPressureDeficit(airC, s.in.RH),
		ra:         s.ra,
		airTemp:    s.in.AirTemp,
	}

	s.latent, s.sensible = 0, 0
	for i := range s.components {
		s.components[i].update(env)
		s.latent += s.components[i].Latent
		s.sensible += s.components[i].Sensible
	}
}

// WaterStress is the linear soil moisture factor between wilting point and
// field capacity.
func WaterStress(theta, wp, fc float64) float64 {
	if fc <= wp {
		if theta > wp {
			return 1
		}
		return 0
	}
	return sim.Clamp((theta-wp)/(fc-wp), 0, 1)
}

// Solve is NewSolver followed by Run.
func Solve(layout Layout, in Inputs, p Params) Result {
	return NewSolver(layout, in, p).Run()
}

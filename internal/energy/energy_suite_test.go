package energy_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cropsim/internal/energy"
)

func TestEnergy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Energy Suite")
}

func daytime() energy.Inputs {
	air := 20.0
	return energy.Inputs{
		MeasurementHeight: 2.3,
		CanopyHeight:      0.8,
		LAI:               3,
		SoilWater:         0.25,
		AirTemp:           energy.CelsiusToKelvin(air),
		WindSpeed:         2,
		RH:                50,
		Pressure:          101.3,
		VaporPressure:     energy.SaturationVaporPressure(air) * 0.5,
		PARDirect:         300,
		PARDiffuse:        60,
	}
}

func dark(rh float64) energy.Inputs {
	in := daytime()
	in.RH = rh
	in.VaporPressure = energy.SaturationVaporPressure(20) * rh / 100
	in.PARDirect, in.PARDiffuse = 0, 0
	return in
}

var _ = Describe("Solver", func() {
	var p energy.Params

	BeforeEach(func() {
		p = energy.DefaultParams()
	})

	Describe("layouts", func() {
		It("builds one leaf and the soil for a lumped canopy", func() {
			res := energy.Solve(energy.LumpedLayout, daytime(), p)
			Expect(res.Components).To(HaveLen(2))
			Expect(res.Components[0].Kind).To(Equal(energy.Lumped))
			Expect(res.Components[1].Kind).To(Equal(energy.Soil))
		})

		It("splits leaf area between sunlit and shaded leaves", func() {
			res := energy.Solve(energy.SunlitShadedLayout, daytime(), p)
			Expect(res.Components).To(HaveLen(3))
			sun, _ := res.Component(energy.Sunlit)
			shade, _ := res.Component(energy.Shaded)
			Expect(sun.LAI + shade.LAI).To(BeNumerically("~", 3, 1e-12))
			Expect(sun.LAI).To(BeNumerically("~", energy.SunlitLAI(3, p.Kb), 1e-12))
		})
	})

	DescribeTable("closes the energy balance",
		func(layout energy.Layout) {
			res := energy.Solve(layout, daytime(), p)
			Expect(res.NetRadiation).To(BeNumerically(">", 0))
			Expect(res.LatentFlux + res.SensibleFlux).
				To(BeNumerically("~", res.NetRadiation-res.SoilHeatFlux, 1e-9))
			Expect(res.SoilHeatFlux).To(BeNumerically("~", 0.1*res.NetRadiation, 1e-9))
		},
		Entry("lumped", energy.LumpedLayout),
		Entry("sunlit/shaded", energy.SunlitShadedLayout),
	)

	It("converges under default settings", func() {
		res := energy.Solve(energy.SunlitShadedLayout, daytime(), p)
		Expect(res.Convergence.Converged).To(BeTrue())
		Expect(res.Convergence.OuterIterations).To(BeNumerically("<=", p.MaxIterations))
		Expect(res.Convergence.Report().Converged).To(BeTrue())
	})

	It("reports the iteration cap without failing", func() {
		p.MaxIterations = 1
		res := energy.Solve(energy.SunlitShadedLayout, daytime(), p)
		Expect(res.Convergence.Converged).To(BeFalse())
		Expect(res.Convergence.InnerIterations).To(Equal(2))
		Expect(res.Convergence.OuterIterations).To(Equal(1))
		Expect(res.Components).To(HaveLen(3))
	})

	It("lowers aerodynamic resistance in unstable daytime air", func() {
		stable := energy.Solve(energy.SunlitShadedLayout, daytime(), p)
		Expect(stable.SensibleFlux).To(BeNumerically(">", 0))

		p.Stability = false
		neutral := energy.Solve(energy.SunlitShadedLayout, daytime(), p)
		Expect(neutral.Convergence.OuterIterations).To(BeZero())
		Expect(stable.AerodynamicResistance).To(BeNumerically("<", neutral.AerodynamicResistance))
	})

	It("closes the stomata in dry soil", func() {
		in := daytime()
		in.SoilWater = 0.1
		res := energy.Solve(energy.LumpedLayout, in, p)
		leaf, _ := res.Component(energy.Lumped)
		Expect(leaf.Resistance).To(BeNumerically(">=", 1e9))
	})

	Context("with a fully reflective surface in the dark", func() {
		BeforeEach(func() {
			p.Albedo = 1
		})

		It("leaves every component at air temperature without radiative loss", func() {
			p.Emissivity = 1
			in := dark(100)
			res := energy.Solve(energy.SunlitShadedLayout, in, p)
			Expect(res.NetRadiation).To(BeNumerically("<=", 0))
			for _, c := range res.Components {
				Expect(c.Temp).To(BeNumerically("~", in.AirTemp, 1e-9))
				Expect(c.Latent).To(BeNumerically("~", 0, 1e-9))
			}
			Expect(res.Convergence.Converged).To(BeTrue())
		})

		It("stays close to air temperature with longwave loss only", func() {
			in := dark(100)
			res := energy.Solve(energy.SunlitShadedLayout, in, p)
			Expect(res.NetRadiation).To(BeNumerically("<=", 0))
			for _, c := range res.Components {
				Expect(math.Abs(c.Temp - in.AirTemp)).To(BeNumerically("<", 0.5))
			}
		})
	})
})

var _ = Describe("SimulateDiurnal", func() {
	It("emits one step per half hour", func() {
		steps := energy.SimulateDiurnal(2, 0, energy.DefaultCanopy())
		Expect(steps).To(HaveLen(96))
		Expect(steps[1].Time).To(Equal(0.5))
		Expect(steps[50].Hour).To(Equal(1.0))
	})

	It("returns nothing for zero days", func() {
		Expect(energy.SimulateDiurnal(0, 0, energy.DefaultCanopy())).To(BeEmpty())
	})

	It("keeps soil water above the wilting point", func() {
		for _, s := range energy.SimulateDiurnal(3, 0, energy.DefaultCanopy()) {
			Expect(s.SoilWater).To(BeNumerically(">=", 0.15))
			Expect(s.Rad).To(BeNumerically(">=", 0))
		}
	})

	It("transpires at midday", func() {
		steps := energy.SimulateDiurnal(1, 0, energy.DefaultCanopy())
		Expect(steps[25].ET).To(BeNumerically(">", 0))
		Expect(steps[25].Rad).To(BeNumerically("~", 1050, 1e-9))
	})

	It("blocks all radiation under full shading", func() {
		for _, s := range energy.SimulateDiurnal(1, 100, energy.DefaultCanopy()) {
			Expect(s.Rad).To(BeZero())
		}
	})

	It("reduces daily evapotranspiration under shading", func() {
		open := energy.DailyET(energy.SimulateDiurnal(1, 0, energy.DefaultCanopy()))
		shaded := energy.DailyET(energy.SimulateDiurnal(1, 50, energy.DefaultCanopy()))
		Expect(shaded).To(BeNumerically("<", open))
	})

	It("is deterministic", func() {
		c := energy.DefaultCanopy()
		Expect(energy.SimulateDiurnal(1, 30, c)).To(Equal(energy.SimulateDiurnal(1, 30, c)))
	})
})

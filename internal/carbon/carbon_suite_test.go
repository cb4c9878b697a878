package carbon_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cropsim/internal/carbon"
)

func TestCarbon(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Carbon Suite")
}

func climate() []carbon.Month {
	months := make([]carbon.Month, 12)
	for i := range months {
		months[i] = carbon.Month{Temp: 8 + float64(i), Precip: 60, Covered: i >= 3 && i <= 8}
	}
	return months
}

var _ = Describe("Simulate", func() {
	var p carbon.Params

	BeforeEach(func() {
		p = carbon.DefaultParams()
	})

	It("emits twelve records per year", func() {
		recs := carbon.Simulate(p, climate())
		Expect(recs).To(HaveLen(p.Years * 12))
		Expect(recs[0].Year).To(Equal(1))
		Expect(recs[0].Month).To(Equal(1))
		Expect(recs[len(recs)-1].Month).To(Equal(12))
	})

	It("reports SOC as the pool sum", func() {
		for _, r := range carbon.Simulate(p, climate()) {
			Expect(r.SOC).To(BeNumerically("~", r.Pools.Total(), 1e-12))
			Expect(r.CO2).To(BeNumerically(">=", 0))
		}
	})

	It("is deterministic", func() {
		Expect(carbon.Simulate(p, climate())).To(Equal(carbon.Simulate(p, climate())))
	})

	It("keeps the inert pool constant", func() {
		recs := carbon.Simulate(p, climate())
		Expect(recs[len(recs)-1].IOM).To(Equal(carbon.InitialPools(p.InitialSOC).IOM))
	})

	It("cycles short climate records", func() {
		recs := carbon.Simulate(p, climate()[:5])
		Expect(recs).To(HaveLen(p.Years * 12))
	})

	It("returns nothing without climate", func() {
		Expect(carbon.Simulate(p, nil)).To(BeEmpty())
	})

	It("returns nothing for an unknown rotation", func() {
		p.Rotation = "rice"
		Expect(carbon.Simulate(p, climate())).To(BeNil())
	})

	Describe("Compare", func() {
		It("shows no difference for conventional management", func() {
			Expect(carbon.Compare(p, climate()).Delta()).To(BeNumerically("~", 0, 1e-12))
		})

		It("gains carbon with manure, cover crops and minimum tillage", func() {
			p.Manure = true
			p.CoverCrop = true
			p.MinimumTillage = true
			Expect(carbon.Compare(p, climate()).Delta()).To(BeNumerically(">", 0))
		})

		It("loses carbon when residues are removed", func() {
			p.IncorporateResidues = false
			Expect(carbon.Compare(p, climate()).Delta()).To(BeNumerically("<", 0))
		})
	})

	It("builds up more carbon under a high-biomass rotation", func() {
		low := carbon.Simulate(p, climate())
		p.Rotation = "tomato-wheat-maize"
		high := carbon.Simulate(p, climate())
		Expect(high[len(high)-1].SOC).To(BeNumerically(">", low[len(low)-1].SOC))
	})
})

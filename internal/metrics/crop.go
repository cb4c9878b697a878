package metrics

type FinalBiomass struct {
	last float64
}

func NewFinalBiomass() *FinalBiomass { return &FinalBiomass{} }

func (f *FinalBiomass) Name() string { return "final_biomass" }

func (f *FinalBiomass) Observe(s Sample) {
	if s.Crop != nil {
		f.last = s.Crop.B
	}
}

func (f *FinalBiomass) Value() float64 { return f.last }
func (f *FinalBiomass) Reset()         { f.last = 0 }

type PeakLAI struct {
	peak float64
}

func NewPeakLAI() *PeakLAI { return &PeakLAI{} }

func (p *PeakLAI) Name() string { return "peak_lai" }

func (p *PeakLAI) Observe(s Sample) {
	if s.Crop != nil && s.Crop.LAI > p.peak {
		p.peak = s.Crop.LAI
	}
}

func (p *PeakLAI) Value() float64 { return p.peak }
func (p *PeakLAI) Reset()         { p.peak = 0 }

// MaturityDay is the first day with NDS >= 1, or 0 if the crop never
// matured.
type MaturityDay struct {
	day int
}

func NewMaturityDay() *MaturityDay { return &MaturityDay{} }

func (m *MaturityDay) Name() string { return "maturity_day" }

func (m *MaturityDay) Observe(s Sample) {
	if m.day == 0 && s.Crop != nil && s.Crop.NDS >= 1 {
		m.day = s.Day
	}
}

func (m *MaturityDay) Value() float64 { return float64(m.day) }
func (m *MaturityDay) Reset()         { m.day = 0 }

package metrics

type FinalSOC struct {
	last float64
}

func NewFinalSOC() *FinalSOC { return &FinalSOC{} }

func (f *FinalSOC) Name() string { return "final_soc" }

func (f *FinalSOC) Observe(s Sample) {
	if s.Carbon != nil {
		f.last = s.Carbon.SOC
	}
}

func (f *FinalSOC) Value() float64 { return f.last }
func (f *FinalSOC) Reset()         { f.last = 0 }

// RespiredCO2 is the cumulative CO2-C released over the projection.
type RespiredCO2 struct {
	total float64
}

func NewRespiredCO2() *RespiredCO2 { return &RespiredCO2{} }

func (r *RespiredCO2) Name() string { return "total_co2" }

func (r *RespiredCO2) Observe(s Sample) {
	if s.Carbon != nil {
		r.total += s.Carbon.CO2
	}
}

func (r *RespiredCO2) Value() float64 { return r.total }
func (r *RespiredCO2) Reset()         { r.total = 0 }

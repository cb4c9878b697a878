package metrics

type MeanARID struct {
	sum     float64
	samples int
}

func NewMeanARID() *MeanARID { return &MeanARID{} }

func (m *MeanARID) Name() string { return "mean_arid" }

func (m *MeanARID) Observe(s Sample) {
	if s.Water == nil {
		return
	}
	m.sum += s.Water.ARID
	m.samples++
}

func (m *MeanARID) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanARID) Reset() {
	m.sum = 0
	m.samples = 0
}

// Evapotranspiration accumulates actual transpiration plus soil evaporation.
type Evapotranspiration struct {
	total float64
}

func NewEvapotranspiration() *Evapotranspiration { return &Evapotranspiration{} }

func (e *Evapotranspiration) Name() string { return "total_et" }

func (e *Evapotranspiration) Observe(s Sample) {
	if s.Water != nil {
		e.total += s.Water.Tact + s.Water.Eact
	}
}

func (e *Evapotranspiration) Value() float64 { return e.total }
func (e *Evapotranspiration) Reset()         { e.total = 0 }

type Drainage struct {
	total float64
}

func NewDrainage() *Drainage { return &Drainage{} }

func (d *Drainage) Name() string { return "total_drainage" }

func (d *Drainage) Observe(s Sample) {
	if s.Water != nil {
		d.total += s.Water.Drain
	}
}

func (d *Drainage) Value() float64 { return d.total }
func (d *Drainage) Reset()         { d.total = 0 }

package sim

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Trapezoid is 0 at or below base and at or above ceiling, rises linearly
// from base to opt1, stays at 1 across [opt1, opt2] and falls linearly from
// opt2 to ceiling.
func Trapezoid(t, base, opt1, opt2, ceiling float64) float64 {
	switch {
	case t <= base || t >= ceiling:
		return 0
	case t < opt1:
		return (t - base) / (opt1 - base)
	case t > opt2:
		return (ceiling - t) / (ceiling - opt2)
	default:
		return 1
	}
}

// RiseFall is a trapezoid whose plateau collapses to the single point opt.
func RiseFall(t, base, opt, ceiling float64) float64 {
	if t <= base || t >= ceiling {
		return 0
	}
	if t <= opt {
		return (t - base) / (opt - base)
	}
	return (ceiling - t) / (ceiling - opt)
}

// Ramp rises linearly from 0 at lo to 1 at hi.
func Ramp(x, lo, hi float64) float64 {
	if x <= lo {
		return 0
	}
	if x >= hi {
		return 1
	}
	return (x - lo) / (hi - lo)
}

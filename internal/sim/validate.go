package sim

import (
	"errors"
	"math"
)

// Validator collects range checks for one parameter bundle.
type Validator struct {
	bundle string
	errs   []error
}

func NewValidator(bundle string) *Validator {
	return &Validator{bundle: bundle}
}

func (v *Validator) fail(field string, value float64, reason string) {
	v.errs = append(v.errs, &ConfigError{Bundle: v.bundle, Field: field, Value: value, Reason: reason})
}

func (v *Validator) Finite(field string, value float64) *Validator {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.fail(field, value, "must be finite")
	}
	return v
}

func (v *Validator) NonNegative(field string, value float64) *Validator {
	v.Finite(field, value)
	if value < 0 {
		v.fail(field, value, "must be >= 0")
	}
	return v
}

func (v *Validator) Positive(field string, value float64) *Validator {
	v.Finite(field, value)
	if value <= 0 {
		v.fail(field, value, "must be > 0")
	}
	return v
}

// Range checks lo <= value <= hi.
func (v *Validator) Range(field string, value, lo, hi float64) *Validator {
	v.Finite(field, value)
	if value < lo || value > hi {
		v.fail(field, value, "out of range")
	}
	return v
}

// Err joins every recorded failure, or returns nil.
func (v *Validator) Err() error {
	return errors.Join(v.errs...)
}

package sim

import (
	"errors"
	"fmt"
)

// Domain errors for parameter handling.
var (
	// ErrConfiguration indicates an out-of-range or missing parameter.
	ErrConfiguration = errors.New("sim: invalid configuration")

	// ErrMalformedInput indicates tabular input that cannot be interpreted.
	// It is a configuration error.
	ErrMalformedInput = fmt.Errorf("%w: malformed input", ErrConfiguration)
)

// ConfigError reports a single parameter that failed validation.
type ConfigError struct {
	Bundle string
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s.%s = %g: %s", e.Bundle, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

// Convergence describes how a bounded iterative solver terminated.
// Hitting the iteration cap is not an error; Converged is false instead.
type Convergence struct {
	Converged  bool
	Iterations int
	Residual   float64
}

func (c Convergence) String() string {
	status := "converged"
	if !c.Converged {
		status = "iteration cap reached"
	}
	return fmt.Sprintf("%s after %d iterations (residual %.3g)", status, c.Iterations, c.Residual)
}

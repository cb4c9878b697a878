package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestTrapezoid(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"below base", 5, 0},
		{"at base", 8, 0},
		{"rising", 13, 0.5},
		{"first optimum", 18, 1},
		{"plateau", 23, 1},
		{"second optimum", 28, 1},
		{"falling", 34, 0.5},
		{"at ceiling", 40, 0},
		{"above ceiling", 45, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Trapezoid(tt.t, 8, 18, 28, 40), 1e-12)
		})
	}
}

func TestTrapezoidBounded(t *testing.T) {
	for temp := -20.0; temp <= 60; temp += 0.25 {
		f := Trapezoid(temp, 8, 18, 28, 40)
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestRiseFall(t *testing.T) {
	assert.Equal(t, 0.0, RiseFall(6, 6, 20, 32))
	assert.InDelta(t, 0.5, RiseFall(13, 6, 20, 32), 1e-12)
	assert.InDelta(t, 1.0, RiseFall(20, 6, 20, 32), 1e-12)
	assert.InDelta(t, 0.5, RiseFall(26, 6, 20, 32), 1e-12)
	assert.Equal(t, 0.0, RiseFall(32, 6, 20, 32))
}

func TestRamp(t *testing.T) {
	assert.Equal(t, 0.0, Ramp(0.1, 0.15, 0.35))
	assert.Equal(t, 1.0, Ramp(0.5, 0.15, 0.35))
	assert.InDelta(t, 0.5, Ramp(0.25, 0.15, 0.35), 1e-12)
	assert.False(t, math.IsNaN(Ramp(0.2, 0.2, 0.2)))
}

package carbon

import (
	"math"

	"github.com/san-kum/cropsim/internal/sim"
)

const (
	// MinMoisture is the floor of the moisture rate modifier.
	MinMoisture = 0.2
	// CoveredSoil slows decomposition under live plants.
	CoveredSoil = 0.6
	// ReducedTillage slows decomposition when the soil is not inverted.
	ReducedTillage = 0.8
)

// TempModifier is the fitted sigmoid 47.91/(1+exp(106.06/(T+18.27))); it is
// 0 below −5 °C.
func TempModifier(tempC float64) float64 {
	if tempC < -5 {
		return 0
	}
	return 47.91 / (1 + math.Exp(106.06/(tempC+18.27)))
}

// MaxDeficit is the clay-dependent maximum topsoil moisture deficit (mm,
// negative).
func MaxDeficit(clay float64) float64 {
	return -(20 + 1.3*clay - 0.01*clay*clay)
}

// MoistureModifier maps the monthly precipitation–evapotranspiration
// balance onto [MinMoisture, 1].
func MoistureModifier(precip, et, clay float64) float64 {
	balance := precip - et
	if balance >= 0 {
		return 1
	}
	maxSMD := MaxDeficit(clay)
	deficit := math.Max(balance, maxSMD)
	f := MinMoisture + (1-MinMoisture)*((maxSMD-deficit)/maxSMD)
	return sim.Clamp(f, MinMoisture, 1)
}

// CoverModifier is CoveredSoil under live plants, else 1.
func CoverModifier(covered bool) float64 {
	if covered {
		return CoveredSoil
	}
	return 1
}

// TillageModifier is ReducedTillage under minimum tillage, else 1.
func TillageModifier(minimum bool) float64 {
	if minimum {
		return ReducedTillage
	}
	return 1
}

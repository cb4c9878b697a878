// Package energy solves the surface energy balance of a crop canopy and the
// soil beneath it.
//
// Each [Component] (a lumped leaf, or a sunlit and a shaded leaf, plus the
// soil) receives a share of the available energy and partitions it into
// latent heat by Penman–Monteith and sensible heat by difference. A shared
// aerodynamic resistance is corrected for atmospheric stability with
// Monin–Obukhov similarity. Both loops are bounded and report a
// [Convergence] instead of failing.
package energy

import "math"

const (
	VonKarman     = 0.41
	AirDensity    = 1.225   // kg/m³
	AirHeat       = 1013.0  // J/kg/K
	LatentHeat    = 2.45e6  // J/kg
	StefanBoltz   = 5.67e-8 // W/m²/K⁴
	Gravity       = 9.81    // m/s²
	AbsoluteZero  = -273.15
	PARFraction   = 0.48
	rhoCp         = AirDensity * AirHeat
	minResistance = 1e-6
	closedStomata = 1e9
)

func CelsiusToKelvin(t float64) float64 { return t - AbsoluteZero }
func KelvinToCelsius(t float64) float64 { return t + AbsoluteZero }

// SaturationVaporPressure in kPa at tempC.
func SaturationVaporPressure(tempC float64) float64 {
	return 0.6108 * math.Exp(17.27*tempC/(tempC+237.3))
}

// VaporPressureDeficit in kPa for relative humidity rh (%).
func VaporPressureDeficit(tempC, rh float64) float64 {
	return SaturationVaporPressure(tempC) * (1 - rh/100)
}

// VaporPressureSlope is the slope of the saturation curve in kPa/K.
func VaporPressureSlope(tempC float64) float64 {
	d := tempC + 237.3
	return 4098 * SaturationVaporPressure(tempC) / (d * d)
}

// PsychrometricConstant in kPa/K for pressure in kPa.
func PsychrometricConstant(pressure float64) float64 {
	return AirHeat * pressure / (LatentHeat * 0.622)
}

// Displacement is the zero-plane displacement height.
func Displacement(h, lai, cd float64) float64 {
	if h <= 0 {
		return 0
	}
	return 1.1 * h * math.Log(1+math.Pow(cd*lai, 0.25))
}

// Roughness is the momentum roughness length; bare soil (z0s) when there is
// no canopy above the displacement height.
func Roughness(z0s, d, h, lai, cd float64) float64 {
	if h <= 0 || d >= h {
		return z0s
	}
	return math.Min(z0s+0.3*h*math.Sqrt(cd*lai), 0.3*h*(1-d/h))
}

func FrictionVelocity(u, zm, d, z0m, phiM float64) float64 {
	return VonKarman * u / (math.Log((zm-d)/z0m) - phiM)
}

// ObukhovLength is +Inf when either the friction velocity or the sensible
// heat flux vanishes.
func ObukhovLength(tempK, ustar, sensible float64) float64 {
	if math.Abs(ustar) < 1e-6 || math.Abs(sensible) < 1e-6 {
		return math.Inf(1)
	}
	buoyancy := (Gravity / tempK) * (sensible / rhoCp)
	if buoyancy == 0 {
		return math.Inf(1)
	}
	return -(ustar * ustar * ustar) / (VonKarman * buoyancy)
}

// StabilityCorrection returns φm and φh for ζ = (z−d)/L.
func StabilityCorrection(zeta float64) (phiM, phiH float64) {
	if zeta < 0 {
		x := math.Pow(1-16*zeta, 0.25)
		phiH = 2 * math.Log((1+x*x)/2)
		phiM = 2*math.Log((1+x)/2) + math.Log((1+x*x)/2) - 2*math.Atan(x) + math.Pi/2
		return phiM, phiH
	}
	return -5 * zeta, -5 * zeta
}

// SoilResistance of the surface layer for a saturation ratio in [0,1].
func SoilResistance(ratio float64) float64 {
	return math.Exp(8.206 - 4.255*ratio)
}

// SoilHeatFlux is 10% of net radiation by day and 50% at night.
func SoilHeatFlux(rn float64, daytime bool) float64 {
	if daytime {
		return 0.1 * rn
	}
	return 0.5 * rn
}

// SunlitLAI is the Beer–Lambert sunlit leaf area.
func SunlitLAI(lai, kb float64) float64 {
	if kb <= 0 {
		return lai
	}
	return (1 - math.Exp(-kb*lai)) / kb
}

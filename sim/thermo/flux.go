package thermo

import "math"

// Diffusion-limited evaporation. The gas-phase diffusion coefficient comes
// from the Fuller-Schettler-Giddings correlation; the evaporative molar
// flux from a stagnant-film model driven by the vapor-pressure deficit
// between the liquid surface and the bulk room air.

// filmThicknessM is the effective stagnant-film thickness above the liquid
// surface used by the flux model. A fixed value keeps the model closed-form;
// it is the dominant tuning knob for absolute evaporation rates.
const filmThicknessM = 0.005

// DiffusionCoefficientFSG estimates the binary diffusion coefficient of a
// species in air, in m^2/s, via Fuller-Schettler-Giddings:
//
//	D = 1.43e-3 * T^1.75 / (P * sqrt(M_AB) * (vA^(1/3) + vB^(1/3))^2)  [cm^2/s]
//
// with T in K, P in bar, molar masses in g/mol and the per-species
// diffusion volumes dimensionless. Degenerate inputs yield 0.
func DiffusionCoefficientFSG(tempK, totalPressurePa, molarMassGPerMol, diffusionVolume float64) float64 {
	if tempK <= 0 || totalPressurePa <= 0 || molarMassGPerMol <= 0 || diffusionVolume <= 0 {
		return 0
	}
	pBar := totalPressurePa / 1e5
	mAB := 2 / (1/molarMassGPerMol + 1/AirMolarMassGPerMol)
	vTerm := math.Cbrt(diffusionVolume) + math.Cbrt(AirDiffusionVolume)
	dCm2 := 1.43e-3 * math.Pow(tempK, 1.75) / (pBar * math.Sqrt(mAB) * vTerm * vTerm)
	return dCm2 * 1e-4
}

// EvaporationFlux returns the evaporative molar flux in mol/(m^2*s) from a
// liquid surface. surfaceVaporPa is the saturation vapor pressure at the
// liquid temperature; ambientPartialPa the partial pressure of the same
// species in the room air. Condensation (ambient above saturation) is not
// modeled; the flux clamps at zero.
func EvaporationFlux(tempK, surfaceVaporPa, ambientPartialPa, totalPressurePa, molarMassGPerMol, diffusionVolume float64) float64 {
	if tempK <= 0 {
		return 0
	}
	d := DiffusionCoefficientFSG(tempK, totalPressurePa, molarMassGPerMol, diffusionVolume)
	if d == 0 {
		return 0
	}
	deficit := surfaceVaporPa - ambientPartialPa
	if deficit <= 0 {
		return 0
	}
	// Stagnant film: N = (D/delta) * dP / (R*T)
	return d / filmThicknessM * deficit / (GasConstant * tempK)
}

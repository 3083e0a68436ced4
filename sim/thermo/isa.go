package thermo

import "math"

// International Standard Atmosphere model, valid from 0 m up to 20 km.
// Two regions are modeled: the troposphere (0-11 km, linear temperature
// lapse of 6.5 K/km) and the lower stratosphere (11-20 km, isothermal at
// 216.65 K). Each region uses the barometric formula appropriate for it.

// sanitizeAltitude maps NaN/Inf altitudes to sea level. A physically
// meaningful default exists, so bad input degrades instead of failing.
func sanitizeAltitude(altitudeM float64) float64 {
	if math.IsNaN(altitudeM) || math.IsInf(altitudeM, 0) {
		return 0
	}
	if altitudeM > StratosphereCeilingM {
		return StratosphereCeilingM
	}
	return altitudeM
}

// PressureISA returns atmospheric pressure in Pa at the given altitude in
// meters. The result is always positive and finite, and is monotonically
// non-increasing in altitude. Altitudes below 0 m (depressions) yield
// pressures above the sea-level reference.
func PressureISA(altitudeM float64) float64 {
	h := sanitizeAltitude(altitudeM)

	if h <= TropopauseAltitudeM {
		// Troposphere: P = P0 * (1 - L*h/T0)^(g*M/(R*L))
		base := 1 - TroposphereLapseKPerM*h/SeaLevelTemperatureK
		return SeaLevelPressurePa * math.Pow(base, barometricExponent)
	}

	// Lower stratosphere: isothermal exponential decay above the tropopause.
	pTropopause := SeaLevelPressurePa * math.Pow(
		1-TroposphereLapseKPerM*TropopauseAltitudeM/SeaLevelTemperatureK,
		barometricExponent)
	exponent := -StandardGravity * MolarMassAirKg * (h - TropopauseAltitudeM) /
		(GasConstant * TropopauseTemperatureK)
	return pTropopause * math.Exp(exponent)
}

// TemperatureISA returns the standard-atmosphere temperature in Kelvin at
// the given altitude in meters, mirroring the two regions of PressureISA.
func TemperatureISA(altitudeM float64) float64 {
	h := sanitizeAltitude(altitudeM)
	if h <= TropopauseAltitudeM {
		return SeaLevelTemperatureK - TroposphereLapseKPerM*h
	}
	return TropopauseTemperatureK
}

// AltitudeForPressureISA inverts the troposphere barometric formula,
// returning the altitude in meters at which the standard atmosphere has the
// given pressure. Only valid below the tropopause; pressures lower than the
// tropopause pressure are clamped to the tropopause altitude. Non-positive
// or non-finite pressure defaults to sea level.
func AltitudeForPressureISA(pressurePa float64) float64 {
	if math.IsNaN(pressurePa) || math.IsInf(pressurePa, 0) || pressurePa <= 0 {
		return 0
	}
	// h = (T0/L) * (1 - (P/P0)^(R*L/(g*M)))
	ratio := math.Pow(pressurePa/SeaLevelPressurePa, 1/barometricExponent)
	h := SeaLevelTemperatureK / TroposphereLapseKPerM * (1 - ratio)
	if h > TropopauseAltitudeM {
		return TropopauseAltitudeM
	}
	return h
}

package thermo

import "math"

// AntoineCoefficients hold one fitted set of Antoine equation parameters
// together with the temperature range (°C) the fit was verified over.
// The A/B/C values are for pressure in mmHg and temperature in °C, which is
// how published Antoine tables are given; conversion to Pa happens here.
type AntoineCoefficients struct {
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	C     float64 `json:"c"`
	TminC float64 `json:"tminC"` // lower bound of the verified fit range, °C
	TmaxC float64 `json:"tmaxC"` // upper bound of the verified fit range, °C
}

// VaporPressureAntoine returns the saturation vapor pressure in Pa at the
// given temperature in °C: log10(P_mmHg) = A - B/(C + T). The relationship
// is monotonically increasing and strictly non-linear in T.
func VaporPressureAntoine(tempC float64, c AntoineCoefficients) float64 {
	mmHg := math.Pow(10, c.A-c.B/(c.C+tempC))
	return mmHg * PascalPerMmHg
}

// AntoineSolution is the result of inverting the Antoine equation.
type AntoineSolution struct {
	TemperatureC float64 // temperature at which vapor pressure equals the input
	Extrapolated bool    // true when the solution falls outside the verified fit range
	TminC        float64 // verified range carried through for callers that warn
	TmaxC        float64
}

// SolveAntoineForTemperature inverts the Antoine equation algebraically,
// returning the temperature (°C) at which the substance's vapor pressure
// equals pressurePa: T = B/(A - log10(P_mmHg)) - C. Extrapolated is set
// whenever the solved temperature lies outside [TminC, TmaxC]; the value is
// still returned as a best effort rather than an error.
func SolveAntoineForTemperature(pressurePa float64, c AntoineCoefficients) AntoineSolution {
	if math.IsNaN(pressurePa) || math.IsInf(pressurePa, 0) || pressurePa <= 0 {
		pressurePa = SeaLevelPressurePa
	}
	mmHg := pressurePa / PascalPerMmHg
	t := c.B/(c.A-math.Log10(mmHg)) - c.C
	return AntoineSolution{
		TemperatureC: t,
		Extrapolated: t < c.TminC || t > c.TmaxC,
		TminC:        c.TminC,
		TmaxC:        c.TmaxC,
	}
}

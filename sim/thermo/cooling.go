package thermo

import "math"

// Newton's law of cooling. The effective coefficient k folds the convective
// term h*A and the thermal mass m*c into a single 1/s rate, so the discrete
// step and the closed forms only ever see k.

// CoolingCoefficient returns k = hA / (m*c) in 1/s. hA is the combined
// convective coefficient times surface area in W/K; specific heat is
// J/(g*°C), hence the factor 1000 on the thermal mass. Degenerate thermal
// mass yields k = 0 (no exchange) rather than dividing by zero.
func CoolingCoefficient(hAWPerK, massKg, specificHeatJPerGC float64) float64 {
	thermalMass := massKg * 1000 * specificHeatJPerGC
	if thermalMass <= 0 {
		return 0
	}
	return hAWPerK / thermalMass
}

// ApplyCoolingStep advances a temperature one discrete step toward ambient:
// T' = Tamb + (T - Tamb) * e^(-k*dt). The exponential factor is clamped to
// [0, 1] so a single step never crosses past ambient regardless of the
// magnitude of k*dt.
func ApplyCoolingStep(tempC, ambientC, k, dtS float64) float64 {
	factor := math.Exp(-k * dtS)
	if factor > 1 {
		factor = 1
	} else if factor < 0 || math.IsNaN(factor) {
		factor = 0
	}
	return ambientC + (tempC-ambientC)*factor
}

// TemperatureAt is the closed-form solution T(t) of Newton's law for a body
// starting at t0C in an ambient of ambientC.
func TemperatureAt(t0C, ambientC, k, elapsedS float64) float64 {
	return ApplyCoolingStep(t0C, ambientC, k, elapsedS)
}

// TimeToCool inverts the closed form: the elapsed time for a body at t0C to
// reach targetC in an ambient of ambientC. Only defined when the target
// lies strictly between the start and ambient temperatures and k is
// positive; ok reports whether those conditions hold.
func TimeToCool(t0C, targetC, ambientC, k float64) (seconds float64, ok bool) {
	if k <= 0 {
		return 0, false
	}
	span := t0C - ambientC
	remaining := targetC - ambientC
	// Target must be on the same side of ambient as the start, and closer.
	if span == 0 || remaining == 0 || span*remaining < 0 || math.Abs(remaining) >= math.Abs(span) {
		return 0, false
	}
	return math.Log(span/remaining) / k, true
}

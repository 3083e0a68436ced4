package sim

import (
	"math"

	"github.com/boilsim/boilsim/sim/thermo"
)

// BoilingPointResult is the fully resolved boiling temperature of a fluid
// at a given pressure, with the intermediate quantities callers display.
type BoilingPointResult struct {
	TemperatureC float64 // final boiling point: base + elevation
	BaseBoilingC float64 // solvent boiling point before solute elevation
	ElevationC   float64 // ebullioscopic elevation (0 for pure fluids)

	// Extrapolated is set when the Antoine inversion solved outside its
	// verified fit range. On the lapse-rate fallback path the fit range is
	// unknown and the flag stays false.
	Extrapolated bool
	TminC        float64 // verified Antoine range, when available
	TmaxC        float64
}

// CalculateBoilingPoint resolves the boiling point of a fluid at the given
// altitude: altitude -> pressure through the ISA model, then the pressure
// path. Returns nil when the fluid lacks a sea-level boiling point.
// Non-finite altitude defaults to sea level inside the ISA model.
func CalculateBoilingPoint(altitudeM float64, fluid *FluidProperties) *BoilingPointResult {
	if !fluid.HasSeaLevelBoilingPoint() {
		return nil
	}
	return CalculateBoilingPointAtPressure(thermo.PressureISA(altitudeM), fluid)
}

// CalculateBoilingPointAtPressure resolves the boiling point of a fluid at
// an explicit total pressure in Pa. Callers that know the room pressure
// (which may have drifted from the standard atmosphere) must prefer this
// entry point over the altitude one.
//
// Algorithm: the base boiling point comes from the Antoine inversion when
// coefficients exist, else from a linear lapse-rate approximation; then the
// ebullioscopic elevation is added from the solution data (dynamic Kb,
// evaluated at the base boiling point) or from a precomputed constant.
func CalculateBoilingPointAtPressure(pressurePa float64, fluid *FluidProperties) *BoilingPointResult {
	if !fluid.HasSeaLevelBoilingPoint() {
		return nil
	}
	if math.IsNaN(pressurePa) || math.IsInf(pressurePa, 0) || pressurePa <= 0 {
		pressurePa = thermo.SeaLevelPressurePa
	}

	res := &BoilingPointResult{}

	if fluid.Antoine != nil {
		sol := thermo.SolveAntoineForTemperature(pressurePa, *fluid.Antoine)
		res.BaseBoilingC = sol.TemperatureC
		res.Extrapolated = sol.Extrapolated
		res.TminC = sol.TminC
		res.TmaxC = sol.TmaxC
	} else {
		// Lower-accuracy path: linear drop of the boiling point with the
		// ISA-equivalent altitude of the supplied pressure.
		altitude := thermo.AltitudeForPressureISA(pressurePa)
		res.BaseBoilingC = *fluid.BoilingPointSeaLevelC - fluid.boilingLapse()*altitude
	}

	switch {
	case fluid.VantHoffFactor > 0 && fluid.MolalityMolPerKg > 0:
		kb := thermo.EbullioscopicConstant(res.BaseBoilingC, fluid.solventHeatOfVaporization())
		res.ElevationC = thermo.BoilingPointElevation(fluid.VantHoffFactor, kb, fluid.MolalityMolPerKg)
	case fluid.FixedElevationC != 0:
		res.ElevationC = fluid.FixedElevationC
	}

	res.TemperatureC = res.BaseBoilingC + res.ElevationC
	return res
}

// boilingPointForState resolves the boiling point seen by a vessel,
// accounting for solute concentration: as liquid boils away the solute
// stays behind, the effective molality rises, and the boiling point climbs.
func boilingPointForState(state VesselState, fluid *FluidProperties, totalPressurePa float64) *BoilingPointResult {
	if fluid == nil {
		return nil
	}
	m := effectiveMolality(state, fluid)
	if m == fluid.MolalityMolPerKg {
		return CalculateBoilingPointAtPressure(totalPressurePa, fluid)
	}
	concentrated := *fluid
	concentrated.MolalityMolPerKg = m
	return CalculateBoilingPointAtPressure(totalPressurePa, &concentrated)
}

// maxEffectiveMolality caps the concentration effect; past this the lumped
// solution model has no physical meaning (the solute would precipitate).
const maxEffectiveMolality = 50.0

func effectiveMolality(state VesselState, fluid *FluidProperties) float64 {
	base := fluid.MolalityMolPerKg
	if base <= 0 || state.InitialLiquidMassKg <= 0 || state.LiquidMassKg <= 0 {
		return base
	}
	m := base * state.InitialLiquidMassKg / state.LiquidMassKg
	if m > maxEffectiveMolality {
		return maxEffectiveMolality
	}
	return m
}

package sim

import (
	"math"

	"github.com/boilsim/boilsim/sim/thermo"
)

// Sub-boiling evaporation: even below the boiling point the liquid loses
// mass through its surface at a rate limited by gas-phase diffusion, and
// the latent heat carried away cools what remains.

// EvaporationResult is one timestep's worth of diffusion-limited mass
// transfer from the liquid surface.
type EvaporationResult struct {
	MassKg           float64 // evaporated mass, clamped to the available liquid
	TemperatureDropC float64 // evaporative cooling of the remaining liquid (>= 0)
}

// EvaporationStep computes the evaporated mass and the resulting
// temperature drop for one timestep. Fluids without Antoine coefficients or
// diffusion data evaporate nothing: the model degrades to "no surface loss"
// rather than guessing. A degenerate specific heat yields zero cooling.
func EvaporationStep(state VesselState, fluid *FluidProperties, env Environment, dtS float64) EvaporationResult {
	if fluid == nil || fluid.Antoine == nil || dtS <= 0 || state.LiquidMassKg <= 0 {
		return EvaporationResult{}
	}
	if fluid.MolarMassKgPerMol <= 0 || fluid.DiffusionVolumeSum <= 0 {
		return EvaporationResult{}
	}

	tempK := state.TemperatureC + thermo.CelsiusToKelvinOffset
	surfacePa := thermo.VaporPressureAntoine(state.TemperatureC, *fluid.Antoine)
	totalPa := env.totalPressure(state.AltitudeM)

	flux := thermo.EvaporationFlux(
		tempK,
		surfacePa,
		env.AmbientPartialPa,
		totalPa,
		fluid.MolarMassKgPerMol*1000, // FSG works in g/mol
		fluid.DiffusionVolumeSum,
	)
	if flux <= 0 {
		return EvaporationResult{}
	}

	diameter := env.vesselDiameter()
	area := math.Pi * diameter * diameter / 4
	mass := flux * area * dtS * fluid.MolarMassKgPerMol
	if mass > state.LiquidMassKg {
		mass = state.LiquidMassKg
	}

	energy := thermo.VaporizationEnergy(mass, fluid.HeatOfVaporizationJPerKg)
	drop := -thermo.TemperatureDelta(state.LiquidMassKg, fluid.SpecificHeatJPerGC, -energy)

	return EvaporationResult{MassKg: mass, TemperatureDropC: drop}
}

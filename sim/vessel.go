package sim

import (
	"github.com/boilsim/boilsim/sim/thermo"
)

// VesselState is the lumped, well-mixed state of the liquid in one vessel.
// It is created when the vessel is filled, advanced once per tick by
// SimulateTimeStep, and reset when the experiment restarts. Exactly one
// owner holds it at a time; the scheduler passes it to the step worker by
// value and receives the successor state back.
type VesselState struct {
	LiquidMassKg        float64 `json:"liquidMassKg"`
	TemperatureC        float64 `json:"temperatureC"`
	AltitudeM           float64 `json:"altitudeM"`
	ResidueMassKg       float64 `json:"residueMassKg"`
	InitialLiquidMassKg float64 `json:"initialLiquidMassKg"`
	Boiling             bool    `json:"boiling"`
}

// NewVesselState fills a vessel with the given liquid mass at the given
// temperature and altitude.
func NewVesselState(massKg, temperatureC, altitudeM float64) VesselState {
	if massKg < 0 {
		massKg = 0
	}
	return VesselState{
		LiquidMassKg:        massKg,
		TemperatureC:        temperatureC,
		AltitudeM:           altitudeM,
		InitialLiquidMassKg: massKg,
	}
}

// Environment is the surroundings the vessel exchanges heat and vapor with.
// The zero value means "standard atmosphere at the vessel's altitude, dry
// air, default pot geometry", which is what the pure SimulateTimeStep entry
// point uses; the room simulator supplies real values.
type Environment struct {
	AmbientTemperatureC float64 // air temperature around the vessel, °C
	TotalPressurePa     float64 // 0 = derive from ISA at the vessel's altitude
	AmbientPartialPa    float64 // partial pressure of the fluid's vapor in the air, Pa
	HeatLossWPerK       float64 // convective h*A of the vessel wall, W/K (0 = default)
	VesselDiameterM     float64 // open surface diameter, m (0 = default)
}

// Default pot geometry and wall loss for a stovetop vessel.
const (
	DefaultVesselDiameterM = 0.24
	DefaultHeatLossWPerK   = 5.0
)

func (e Environment) totalPressure(altitudeM float64) float64 {
	if e.TotalPressurePa > 0 {
		return e.TotalPressurePa
	}
	return thermo.PressureISA(altitudeM)
}

func (e Environment) vesselDiameter() float64 {
	if e.VesselDiameterM > 0 {
		return e.VesselDiameterM
	}
	return DefaultVesselDiameterM
}

func (e Environment) heatLoss() float64 {
	if e.HeatLossWPerK > 0 {
		return e.HeatLossWPerK
	}
	return DefaultHeatLossWPerK
}

// SimulateTimeStep advances a vessel one timestep. Pure and synchronous:
// the result depends only on the arguments, so the function behaves
// identically whether called directly or inside the step worker. The
// surroundings default to a standard dry atmosphere at the vessel's
// altitude; use SimulateTimeStepEnv when the room state is known.
func SimulateTimeStep(state VesselState, heatInputW, deltaTimeS float64, fluid *FluidProperties, ambientTemperatureC float64) VesselState {
	return SimulateTimeStepEnv(state, heatInputW, deltaTimeS, fluid, Environment{
		AmbientTemperatureC: ambientTemperatureC,
	})
}

// SimulateTimeStepEnv is SimulateTimeStep with explicit surroundings.
//
// Below the boiling point the heat input raises the liquid temperature per
// the heat-capacity formula, less Newton's-law wall loss and evaporative
// cooling. At the boiling point the temperature clamps and surplus heat
// converts liquid to vapor through the latent-heat formula instead. When
// the liquid runs out, further heat has no target and the residue is the
// terminal state.
func SimulateTimeStepEnv(state VesselState, heatInputW, deltaTimeS float64, fluid *FluidProperties, env Environment) VesselState {
	next := state
	if fluid == nil || deltaTimeS <= 0 {
		return next
	}
	if next.LiquidMassKg <= 0 {
		next.LiquidMassKg = 0
		next.Boiling = false
		return next
	}

	totalPa := env.totalPressure(next.AltitudeM)
	bp := boilingPointForState(next, fluid, totalPa)

	// Newton wall loss toward ambient.
	k := thermo.CoolingCoefficient(env.heatLoss(), next.LiquidMassKg, fluid.SpecificHeatJPerGC)
	next.TemperatureC = thermo.ApplyCoolingStep(next.TemperatureC, env.AmbientTemperatureC, k, deltaTimeS)

	// Diffusion-limited surface evaporation and its cooling.
	evap := EvaporationStep(next, fluid, env, deltaTimeS)
	next.LiquidMassKg -= evap.MassKg
	next.TemperatureC -= evap.TemperatureDropC
	next.ResidueMassKg += residueFrom(evap.MassKg, fluid)

	// Burner heat: sensible below the boiling point, latent at it.
	energy := heatInputW * deltaTimeS
	next.Boiling = false
	if energy > 0 && next.LiquidMassKg > 0 {
		if bp == nil {
			// No resolvable boiling point: all heat stays sensible.
			next.TemperatureC += thermo.TemperatureDelta(next.LiquidMassKg, fluid.SpecificHeatJPerGC, energy)
		} else {
			headroom := bp.TemperatureC - next.TemperatureC
			toBoiling := thermo.HeatEnergy(next.LiquidMassKg, fluid.SpecificHeatJPerGC, headroom)
			if toBoiling < 0 {
				toBoiling = 0
			}
			if energy < toBoiling {
				next.TemperatureC += thermo.TemperatureDelta(next.LiquidMassKg, fluid.SpecificHeatJPerGC, energy)
			} else {
				surplus := energy - toBoiling
				if surplus < 0 {
					surplus = 0
				}
				next.TemperatureC = bp.TemperatureC
				boiled := thermo.MassVaporized(surplus, fluid.HeatOfVaporizationJPerKg)
				if boiled > next.LiquidMassKg {
					boiled = next.LiquidMassKg
				}
				next.LiquidMassKg -= boiled
				next.ResidueMassKg += residueFrom(boiled, fluid)
				next.Boiling = boiled > 0 || surplus > 0
			}
		}
	} else if bp != nil && next.TemperatureC > bp.TemperatureC {
		// No heat input but still above the (possibly risen) boiling
		// point: clamp, flash the overshoot into vapor.
		overshoot := thermo.HeatEnergy(next.LiquidMassKg, fluid.SpecificHeatJPerGC, next.TemperatureC-bp.TemperatureC)
		next.TemperatureC = bp.TemperatureC
		boiled := thermo.MassVaporized(overshoot, fluid.HeatOfVaporizationJPerKg)
		if boiled > next.LiquidMassKg {
			boiled = next.LiquidMassKg
		}
		next.LiquidMassKg -= boiled
		next.ResidueMassKg += residueFrom(boiled, fluid)
		next.Boiling = boiled > 0
	}

	if next.LiquidMassKg <= 0 {
		next.LiquidMassKg = 0
		next.Boiling = false
	}
	return next
}

// residueFrom estimates the solute mass left behind when vaporizedKg of
// solvent leaves the solution. Needs the solute's molar mass; without it
// the residue is not tracked.
func residueFrom(vaporizedKg float64, fluid *FluidProperties) float64 {
	if vaporizedKg <= 0 || fluid.MolalityMolPerKg <= 0 || fluid.SoluteMolarMassKgPerMol <= 0 {
		return 0
	}
	return vaporizedKg * fluid.MolalityMolPerKg * fluid.SoluteMolarMassKgPerMol
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boilsim/boilsim/sim/thermo"
)

func TestCalculateBoilingPoint_WaterAtSeaLevel(t *testing.T) {
	res := CalculateBoilingPoint(0, WaterProperties())
	require.NotNil(t, res)
	assert.InDelta(t, 100, res.TemperatureC, 0.2)
	assert.False(t, res.Extrapolated)
	assert.Zero(t, res.ElevationC)
}

func TestCalculateBoilingPoint_Denver(t *testing.T) {
	// Mile-high altitude: water boils around 95 °C.
	res := CalculateBoilingPoint(1609, WaterProperties())
	require.NotNil(t, res)
	assert.InDelta(t, 94.7, res.TemperatureC, 0.7)
}

func TestCalculateBoilingPoint_Everest(t *testing.T) {
	res := CalculateBoilingPoint(8848, WaterProperties())
	require.NotNil(t, res)
	assert.Greater(t, res.TemperatureC, 68.0)
	assert.Less(t, res.TemperatureC, 72.0)
}

func TestCalculateBoilingPoint_NilWithoutSeaLevelPoint(t *testing.T) {
	fluid := WaterProperties()
	fluid.BoilingPointSeaLevelC = nil
	assert.Nil(t, CalculateBoilingPoint(0, fluid))
	assert.Nil(t, CalculateBoilingPointAtPressure(thermo.SeaLevelPressurePa, fluid))
}

func TestCalculateBoilingPointAtPressure_LowPressureLowersBoiling(t *testing.T) {
	res := CalculateBoilingPointAtPressure(90000, WaterProperties())
	require.NotNil(t, res)
	assert.Less(t, res.TemperatureC, 100.0)
	assert.Greater(t, res.TemperatureC, 90.0)
}

func TestCalculateBoilingPoint_LapseRateFallback(t *testing.T) {
	// Without Antoine coefficients the resolver uses the linear lapse
	// approximation and cannot judge extrapolation.
	fluid := WaterProperties()
	fluid.Antoine = nil

	atSea := CalculateBoilingPoint(0, fluid)
	require.NotNil(t, atSea)
	assert.InDelta(t, 100, atSea.TemperatureC, 1e-9)

	atAltitude := CalculateBoilingPoint(1609, fluid)
	require.NotNil(t, atAltitude)
	assert.InDelta(t, 100-DefaultBoilingLapseCPerM*1609, atAltitude.TemperatureC, 1e-9)
	assert.False(t, atAltitude.Extrapolated)
}

func TestCalculateBoilingPoint_SaltWaterElevation(t *testing.T) {
	// 1 molal NaCl in water: elevation close to 1 °C, and the dynamic Kb
	// shrinks the elevation at altitude where the base boiling point is
	// lower.
	salty := WaterProperties()
	salty.VantHoffFactor = 2
	salty.MolalityMolPerKg = 1

	atSea := CalculateBoilingPoint(0, salty)
	require.NotNil(t, atSea)
	assert.InDelta(t, 1.02, atSea.ElevationC, 0.05)
	assert.InDelta(t, atSea.BaseBoilingC+atSea.ElevationC, atSea.TemperatureC, 1e-12)

	atAltitude := CalculateBoilingPoint(3000, salty)
	require.NotNil(t, atAltitude)
	assert.Less(t, atAltitude.ElevationC, atSea.ElevationC)
}

func TestCalculateBoilingPoint_FixedElevationFallback(t *testing.T) {
	fluid := WaterProperties()
	fluid.FixedElevationC = 0.5
	res := CalculateBoilingPoint(0, fluid)
	require.NotNil(t, res)
	assert.InDelta(t, 0.5, res.ElevationC, 1e-12)
}

func TestEffectiveMolality_RisesAsLiquidBoilsAway(t *testing.T) {
	salty := WaterProperties()
	salty.VantHoffFactor = 2
	salty.MolalityMolPerKg = 1

	state := NewVesselState(1, 20, 0)
	state.LiquidMassKg = 0.5 // half boiled away

	assert.InDelta(t, 2.0, effectiveMolality(state, salty), 1e-12)

	full := boilingPointForState(NewVesselState(1, 20, 0), salty, thermo.SeaLevelPressurePa)
	half := boilingPointForState(state, salty, thermo.SeaLevelPressurePa)
	assert.Greater(t, half.TemperatureC, full.TemperatureC)
}

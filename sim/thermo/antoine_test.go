package thermo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// waterAntoine is the conventional 1-100 °C water fit (mmHg, °C).
var waterAntoine = AntoineCoefficients{
	A: 8.07131, B: 1730.63, C: 233.426, TminC: 1, TmaxC: 100,
}

func TestVaporPressureAntoine_WaterAtBoiling(t *testing.T) {
	// At 100 °C water's vapor pressure equals one standard atmosphere.
	p := VaporPressureAntoine(100, waterAntoine)
	assert.InDelta(t, SeaLevelPressurePa, p, 150)
}

func TestVaporPressureAntoine_StrictlyIncreasing(t *testing.T) {
	prev := VaporPressureAntoine(waterAntoine.TminC, waterAntoine)
	for temp := waterAntoine.TminC + 1; temp <= waterAntoine.TmaxC; temp++ {
		p := VaporPressureAntoine(temp, waterAntoine)
		assert.Greater(t, p, prev, "vapor pressure must rise with temperature at %.0f °C", temp)
		prev = p
	}
}

func TestVaporPressureAntoine_NonLinear(t *testing.T) {
	// Sensitivity dP/dT grows with temperature: the rise over the top ten
	// degrees of the range dwarfs the rise over the bottom ten.
	low := VaporPressureAntoine(11, waterAntoine) - VaporPressureAntoine(1, waterAntoine)
	high := VaporPressureAntoine(100, waterAntoine) - VaporPressureAntoine(90, waterAntoine)
	assert.Greater(t, high, 10*low)
}

func TestSolveAntoineForTemperature_WaterAtOneAtmosphere(t *testing.T) {
	sol := SolveAntoineForTemperature(SeaLevelPressurePa, waterAntoine)
	assert.InDelta(t, 100, sol.TemperatureC, 0.1)
	assert.False(t, sol.Extrapolated)
	assert.Equal(t, 1.0, sol.TminC)
	assert.Equal(t, 100.0, sol.TmaxC)
}

func TestSolveAntoineForTemperature_RoundTrip(t *testing.T) {
	// T -> P -> T must recover the original within 1 °C over the
	// verified range.
	for temp := waterAntoine.TminC; temp <= waterAntoine.TmaxC; temp += 0.5 {
		p := VaporPressureAntoine(temp, waterAntoine)
		sol := SolveAntoineForTemperature(p, waterAntoine)
		assert.InDelta(t, temp, sol.TemperatureC, 1.0, "round trip at %.1f °C", temp)
	}
}

func TestSolveAntoineForTemperature_FlagsExtrapolation(t *testing.T) {
	// Pressure on Everest solves below the verified range start for some
	// fluids; here force it with a pressure far above one atmosphere.
	sol := SolveAntoineForTemperature(5e5, waterAntoine)
	assert.True(t, sol.Extrapolated)
	assert.Greater(t, sol.TemperatureC, 100.0)
}

func TestSolveAntoineForTemperature_InvalidPressureDefaults(t *testing.T) {
	sol := SolveAntoineForTemperature(-1, waterAntoine)
	assert.InDelta(t, 100, sol.TemperatureC, 0.1)
}

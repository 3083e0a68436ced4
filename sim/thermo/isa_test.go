package thermo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressureISA_SeaLevel(t *testing.T) {
	assert.InDelta(t, SeaLevelPressurePa, PressureISA(0), 0.01)
}

func TestPressureISA_Everest(t *testing.T) {
	// Everest summit, 8848 m: standard atmosphere gives roughly a third
	// of sea-level pressure.
	p := PressureISA(8848)
	assert.Greater(t, p, 30000.0)
	assert.Less(t, p, 35000.0)
}

func TestPressureISA_MonotonicNonIncreasing(t *testing.T) {
	prev := math.Inf(1)
	for h := -500.0; h <= 20000; h += 250 {
		p := PressureISA(h)
		assert.True(t, p > 0 && !math.IsInf(p, 0), "pressure must stay positive and finite at %.0f m", h)
		assert.LessOrEqual(t, p, prev, "pressure must not increase with altitude at %.0f m", h)
		prev = p
	}
}

func TestPressureISA_Depression(t *testing.T) {
	// Below sea level (e.g. Dead Sea) pressure exceeds the reference.
	assert.Greater(t, PressureISA(-430), SeaLevelPressurePa)
}

func TestPressureISA_InvalidInputDefaultsToSeaLevel(t *testing.T) {
	assert.Equal(t, PressureISA(0), PressureISA(math.NaN()))
	assert.Equal(t, PressureISA(0), PressureISA(math.Inf(1)))
}

func TestPressureISA_StratosphereContinuity(t *testing.T) {
	// The two barometric regions must agree at the tropopause.
	below := PressureISA(TropopauseAltitudeM - 1e-6)
	above := PressureISA(TropopauseAltitudeM + 1e-6)
	assert.InDelta(t, below, above, 0.1)
}

func TestTemperatureISA(t *testing.T) {
	assert.InDelta(t, SeaLevelTemperatureK, TemperatureISA(0), 1e-9)
	assert.InDelta(t, SeaLevelTemperatureK-6.5, TemperatureISA(1000), 1e-9)
	assert.InDelta(t, TropopauseTemperatureK, TemperatureISA(15000), 1e-9)
}

func TestAltitudeForPressureISA_RoundTrip(t *testing.T) {
	for _, h := range []float64{0, 500, 1609, 3000, 8848, 10500} {
		p := PressureISA(h)
		assert.InDelta(t, h, AltitudeForPressureISA(p), 0.5, "round trip at %.0f m", h)
	}
}

func TestAltitudeForPressureISA_InvalidInput(t *testing.T) {
	assert.Equal(t, 0.0, AltitudeForPressureISA(math.NaN()))
	assert.Equal(t, 0.0, AltitudeForPressureISA(-5))
	assert.Equal(t, 0.0, AltitudeForPressureISA(0))
}

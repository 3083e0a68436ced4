package thermo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEbullioscopicConstant_WaterAtStandardBoiling(t *testing.T) {
	// Kb for water is tabulated at 0.512 K*kg/mol.
	kb := EbullioscopicConstant(100, WaterHeatOfVaporizationJKg)
	assert.InDelta(t, 0.512, kb, 0.005)
}

func TestEbullioscopicConstant_TracksBaseBoilingPoint(t *testing.T) {
	// At altitude the base boiling point drops, and Kb must drop with it
	// because it is evaluated at the current boiling point, not at 100 °C.
	atSeaLevel := EbullioscopicConstant(100, WaterHeatOfVaporizationJKg)
	atAltitude := EbullioscopicConstant(90, WaterHeatOfVaporizationJKg)
	assert.Less(t, atAltitude, atSeaLevel)
}

func TestEbullioscopicConstant_DegenerateLatentHeat(t *testing.T) {
	assert.Equal(t, 0.0, EbullioscopicConstant(100, 0))
}

func TestBoilingPointElevation_SaltWater(t *testing.T) {
	// 1 molal NaCl (i=2) elevates water's boiling point by about 1 °C.
	kb := EbullioscopicConstant(100, WaterHeatOfVaporizationJKg)
	dT := BoilingPointElevation(2, kb, 1)
	assert.InDelta(t, 1.02, dT, 0.05)
}

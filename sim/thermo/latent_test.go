package thermo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	waterHeatOfVaporization = 2.257e6 // J/kg
	waterHeatOfFusion       = 3.34e5  // J/kg
)

func TestVaporizationEnergy_LinearInMass(t *testing.T) {
	one := VaporizationEnergy(1, waterHeatOfVaporization)
	assert.InDelta(t, 3*one, VaporizationEnergy(3, waterHeatOfVaporization), 1e-6)
}

func TestWaterVaporizationToFusionRatio(t *testing.T) {
	// Boiling away a kilogram of water takes about 6.75x the energy of
	// melting a kilogram of ice.
	ratio := VaporizationEnergy(1, waterHeatOfVaporization) / FusionEnergy(1, waterHeatOfFusion)
	assert.InDelta(t, 6.75, ratio, 0.02)
}

func TestMassVaporized_InvertsEnergy(t *testing.T) {
	q := VaporizationEnergy(0.25, waterHeatOfVaporization)
	assert.InDelta(t, 0.25, MassVaporized(q, waterHeatOfVaporization), 1e-12)
}

func TestLatent_ZeroLatentHeatYieldsZero(t *testing.T) {
	assert.Equal(t, 0.0, MassVaporized(1e6, 0))
	assert.Equal(t, 0.0, MassMelted(1e6, 0))
	assert.Equal(t, 0.0, VaporizationEnergy(1, 0))
}

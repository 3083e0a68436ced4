package thermo

// Latent-heat formulas for phase changes. Vaporization and fusion share the
// same linear relation Q = m*L with different constants, so both directions
// are provided for each. A zero latent heat describes a degenerate
// substance; it contributes zero energy or mass instead of dividing by zero.

// VaporizationEnergy returns the energy in J to vaporize massKg of liquid
// with latent heat of vaporization latentJPerKg.
func VaporizationEnergy(massKg, latentJPerKg float64) float64 {
	return massKg * latentJPerKg
}

// MassVaporized inverts VaporizationEnergy: the liquid mass in kg that
// energyJ converts to vapor. Zero latent heat yields zero mass.
func MassVaporized(energyJ, latentJPerKg float64) float64 {
	if latentJPerKg == 0 {
		return 0
	}
	return energyJ / latentJPerKg
}

// FusionEnergy returns the energy in J to melt massKg of solid with latent
// heat of fusion latentJPerKg.
func FusionEnergy(massKg, latentJPerKg float64) float64 {
	return massKg * latentJPerKg
}

// MassMelted inverts FusionEnergy. Zero latent heat yields zero mass.
func MassMelted(energyJ, latentJPerKg float64) float64 {
	if latentJPerKg == 0 {
		return 0
	}
	return energyJ / latentJPerKg
}

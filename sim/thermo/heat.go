package thermo

// Sensible-heat formulas. Specific heat is carried in J/(g*°C) throughout
// the engine because fluid data sheets list it that way; mass is kg, hence
// the factor 1000.

// HeatEnergy returns the energy in joules needed to change the temperature
// of massKg of a substance by deltaTC: Q = m * 1000 * c * dT. Energy scales
// linearly in each argument; negative deltaTC (cooling) yields negative
// energy, and zero deltaTC yields zero.
func HeatEnergy(massKg, specificHeatJPerGC, deltaTC float64) float64 {
	return massKg * 1000 * specificHeatJPerGC * deltaTC
}

// TemperatureDelta inverts HeatEnergy: the temperature change in °C that
// energyJ produces in massKg of substance. A degenerate mass or specific
// heat contributes no temperature change rather than dividing by zero.
func TemperatureDelta(massKg, specificHeatJPerGC, energyJ float64) float64 {
	denom := massKg * 1000 * specificHeatJPerGC
	if denom == 0 {
		return 0
	}
	return energyJ / denom
}

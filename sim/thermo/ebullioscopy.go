package thermo

// Boiling-point elevation of a solution: dTb = i * Kb * molality. Kb is not
// treated as a tabulated constant; it is recomputed from the solvent's
// current base boiling point so that the elevation stays correct at
// non-standard pressures and altitudes, where the base boiling point (and
// with it Kb) has shifted.

// EbullioscopicConstant returns the ebullioscopic constant Kb in K*kg/mol
// evaluated at the given base boiling point (°C):
//
//	Kb = R * Tb^2 * M / dHvap_molar = R * Tb^2 / L
//
// where L is the solvent's specific heat of vaporization in J/kg (the
// solvent molar mass cancels when L is per unit mass). Pass the solvent's
// own L when known; water's value is the conventional default and makes the
// elevation for non-water solvents approximate. A degenerate L yields 0.
func EbullioscopicConstant(baseBoilingC, solventHeatOfVapJPerKg float64) float64 {
	if solventHeatOfVapJPerKg <= 0 {
		return 0
	}
	tb := baseBoilingC + CelsiusToKelvinOffset
	return GasConstant * tb * tb / solventHeatOfVapJPerKg
}

// BoilingPointElevation returns dTb in °C for a solution with the given
// van't Hoff factor and molality (mol solute per kg solvent), using a Kb
// already evaluated at the current base boiling point.
func BoilingPointElevation(vantHoffFactor, kb, molality float64) float64 {
	return vantHoffFactor * kb * molality
}

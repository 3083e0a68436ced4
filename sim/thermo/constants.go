package thermo

// Physical constants and reference values shared by the formula library.
// All formulas in this package work in SI units unless a name says otherwise
// (temperatures are °C at the API boundary because every caller stores °C).
const (
	GasConstant = 8.31446261815324 // molar gas constant R in J / (mol * K)

	SeaLevelPressurePa     = 101325.0 // ISA reference pressure at 0 m
	SeaLevelTemperatureK   = 288.15   // ISA reference temperature at 0 m
	TroposphereLapseKPerM  = 0.0065   // linear temperature lapse in the troposphere
	TropopauseAltitudeM    = 11000.0  // troposphere / lower-stratosphere boundary
	StratosphereCeilingM   = 20000.0  // upper validity bound of the ISA model here
	TropopauseTemperatureK = 216.65   // isothermal temperature of the lower stratosphere

	StandardGravity = 9.80665   // m / s^2
	MolarMassAirKg  = 0.0289644 // molar mass of dry air in kg / mol

	CelsiusToKelvinOffset = 273.15

	PascalPerMmHg = 133.322387415 // Antoine tables are fitted in mmHg

	// Dry air values used by the Fuller-Schettler-Giddings diffusion estimate.
	AirMolarMassGPerMol = 28.96
	AirDiffusionVolume  = 19.7

	// Water reference data, used as solvent defaults by the ebullioscopy
	// formulas when a fluid does not carry its own solvent constants.
	WaterMolarMassKgPerMol     = 0.01801528
	WaterHeatOfVaporizationJKg = 2.257e6
	WaterBoilingPointC         = 100.0
)

// barometricExponent is g*M/(R*L), the exponent of the troposphere
// barometric formula. Precomputed because it never changes.
var barometricExponent = StandardGravity * MolarMassAirKg / (GasConstant * TroposphereLapseKPerM)

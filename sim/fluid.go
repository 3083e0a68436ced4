package sim

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/boilsim/boilsim/sim/thermo"
)

// FluidProperties is the immutable per-substance reference data sheet.
// Loaded once per active substance from an externally supplied JSON document
// and shared read-only by the vessel stepper, the boiling-point resolver and
// the evaporation model.
//
// Only the sea-level boiling point is mandatory; every other field has a
// graceful fallback. Absent Antoine coefficients switch the boiling-point
// resolver to a lower-accuracy lapse-rate path, never an error.
type FluidProperties struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ChemicalFormula string `json:"chemicalFormula"`

	// BoilingPointSeaLevelC must be present and finite for the fluid to be
	// usable by the resolver. Pointer so that absence is distinguishable
	// from a legitimate 0 °C boiling point.
	BoilingPointSeaLevelC *float64 `json:"boilingPointSeaLevelC"`

	Antoine *thermo.AntoineCoefficients `json:"antoine,omitempty"`

	MolarMassKgPerMol        float64 `json:"molarMassKgPerMol"`
	SpecificHeatJPerGC       float64 `json:"specificHeatJPerGC"`
	HeatOfVaporizationJPerKg float64 `json:"heatOfVaporizationJPerKg"`
	HeatOfFusionJPerKg       float64 `json:"heatOfFusionJPerKg"`

	// DiffusionVolumeSum is the Fuller-Schettler-Giddings per-species
	// diffusion volume, used by the evaporation model.
	DiffusionVolumeSum float64 `json:"diffusionVolumeSum"`

	// Solution data (optional). A pure solvent carries neither field and
	// gets zero ebullioscopic elevation.
	VantHoffFactor          float64 `json:"vantHoffFactor,omitempty"`
	MolalityMolPerKg        float64 `json:"molalityMolPerKg,omitempty"`
	SoluteMolarMassKgPerMol float64 `json:"soluteMolarMassKgPerMol,omitempty"`

	// FixedElevationC is a precomputed boiling-point elevation used when
	// the solution data above is absent.
	FixedElevationC float64 `json:"fixedElevationC,omitempty"`

	// BoilingLapseCPerM overrides the default linear fall of the boiling
	// point with altitude on the no-Antoine fallback path.
	BoilingLapseCPerM float64 `json:"boilingLapseCPerM,omitempty"`
}

// DefaultBoilingLapseCPerM approximates water's boiling-point drop with
// altitude (~1 °C per 294 m), used when a fluid has neither Antoine
// coefficients nor its own lapse rate.
const DefaultBoilingLapseCPerM = 0.0034

// HasSeaLevelBoilingPoint reports whether the fluid carries the one
// mandatory datum.
func (f *FluidProperties) HasSeaLevelBoilingPoint() bool {
	return f != nil && f.BoilingPointSeaLevelC != nil &&
		!math.IsNaN(*f.BoilingPointSeaLevelC) && !math.IsInf(*f.BoilingPointSeaLevelC, 0)
}

// solventHeatOfVaporization returns the fluid's own heat of vaporization
// when present, falling back to water's. The fallback makes ebullioscopic
// elevation for non-water solvents approximate.
func (f *FluidProperties) solventHeatOfVaporization() float64 {
	if f.HeatOfVaporizationJPerKg > 0 {
		return f.HeatOfVaporizationJPerKg
	}
	return thermo.WaterHeatOfVaporizationJKg
}

// boilingLapse returns the per-fluid lapse rate or the default.
func (f *FluidProperties) boilingLapse() float64 {
	if f.BoilingLapseCPerM > 0 {
		return f.BoilingLapseCPerM
	}
	return DefaultBoilingLapseCPerM
}

// LoadFluids reads a JSON array of fluid property sheets and returns them
// keyed by id. Fluids missing the mandatory sea-level boiling point are kept
// (the resolver returns nil for them) but logged, since they are usually a
// data-entry mistake.
func LoadFluids(path string) (map[string]*FluidProperties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fluid properties: %w", err)
	}
	var fluids []*FluidProperties
	if err := json.Unmarshal(data, &fluids); err != nil {
		return nil, fmt.Errorf("parsing fluid properties %s: %w", path, err)
	}
	byID := make(map[string]*FluidProperties, len(fluids))
	for _, f := range fluids {
		if f.ID == "" {
			return nil, fmt.Errorf("fluid properties %s: entry without id", path)
		}
		if !f.HasSeaLevelBoilingPoint() {
			logrus.Warnf("fluid %q has no sea-level boiling point; boiling-point resolution disabled for it", f.ID)
		}
		byID[f.ID] = f
	}
	return byID, nil
}

// WaterProperties returns the built-in data sheet for pure water, the
// default experiment substance.
func WaterProperties() *FluidProperties {
	bp := thermo.WaterBoilingPointC
	return &FluidProperties{
		ID:                    "water",
		Name:                  "Water",
		ChemicalFormula:       "H2O",
		BoilingPointSeaLevelC: &bp,
		Antoine: &thermo.AntoineCoefficients{
			A: 8.07131, B: 1730.63, C: 233.426, TminC: 1, TmaxC: 100,
		},
		MolarMassKgPerMol:        thermo.WaterMolarMassKgPerMol,
		SpecificHeatJPerGC:       4.186,
		HeatOfVaporizationJPerKg: thermo.WaterHeatOfVaporizationJKg,
		HeatOfFusionJPerKg:       3.34e5,
		DiffusionVolumeSum:       12.7,
	}
}

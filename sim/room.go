package sim

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/boilsim/boilsim/sim/thermo"
)

// Room environment simulation: gas composition, pressure and temperature of
// the room around the vessel, evolved by burner heat, an AC unit and a
// PID-controlled air handler. The room is a single well-mixed volume of
// ideal gas.

const (
	airSpecificHeatJPerGC = 1.005 // dry air, constant pressure

	// compositionSumTolerance bounds how far the mole fractions may drift
	// from summing to 1 before the drift is reported as a defect.
	compositionSumTolerance = 0.01

	// Alerting: a species whose weighted deviation from target exceeds the
	// threshold raises an alert, rate-limited per species.
	alertDeviationThreshold = 0.05
	alertCooldownS          = 30.0

	maxLogEntries = 10000
)

// HeatLogEntry records one heat injection into the room.
type HeatLogEntry struct {
	ElapsedS     float64 `json:"elapsedS"`
	EnergyJ      float64 `json:"energyJ"`
	TemperatureC float64 `json:"temperatureC"`
}

// CompositionLogEntry snapshots the composition after one step.
type CompositionLogEntry struct {
	ElapsedS    float64            `json:"elapsedS"`
	Composition map[string]float64 `json:"composition"`
}

// Alert flags a species that has drifted too far from its target fraction.
type Alert struct {
	Species   string  `json:"species"`
	Deviation float64 `json:"deviation"` // weighted |current - target|
	ElapsedS  float64 `json:"elapsedS"`
}

// RoomState is the mutable state of one room-enabled experiment. Created by
// NewRoomState, advanced by SimulateRoomStep and AddVapor, and owned by the
// experiment session for its whole duration.
type RoomState struct {
	Composition  map[string]float64 `json:"composition"` // species -> mole fraction
	PressurePa   float64            `json:"pressurePa"`
	TemperatureC float64            `json:"temperatureC"`
	VolumeM3     float64            `json:"volumeM3"`
	ACSetpointC  float64            `json:"acSetpointC"`
	ACMode       string             `json:"acMode"` // "off", "cool", "heat", "auto"
	ElapsedS     float64            `json:"elapsedS"`

	// AirHandlerMode mirrors the handler's last-step activity ("off" with no
	// handler fitted, "standby" below the flow threshold, "active" while
	// exchanging air); AirHandlerFlowM3PerS is the last commanded flow.
	AirHandlerMode       string  `json:"airHandlerMode"`
	AirHandlerFlowM3PerS float64 `json:"airHandlerFlowM3PerS"`

	// Target fractions and per-species safety weights driving the air
	// handler's contamination error signal. Toxic species carry weights
	// far above inert ones, so the PID reacts to them first.
	TargetComposition map[string]float64 `json:"targetComposition"`
	SafetyWeights     map[string]float64 `json:"safetyWeights"`

	PID PidState `json:"pid"`

	HeatLog        []HeatLogEntry        `json:"heatLog"`
	CompositionLog []CompositionLogEntry `json:"compositionLog"`
	Alerts         []Alert               `json:"alerts"`

	lastAlertAt map[string]float64
}

// AC operating modes.
const (
	ACModeOff  = "off"
	ACModeCool = "cool"
	ACModeHeat = "heat"
	ACModeAuto = "auto"
)

// Air-handler activity states.
const (
	HandlerModeOff     = "off"
	HandlerModeStandby = "standby"
	HandlerModeActive  = "active"
)

// NewRoomState initializes a room from its config. Pressure seeds either
// from the fixed configured value or, in "location" mode, from the ISA
// model at the experiment's altitude. The initial composition is normalized
// so fractions sum to 1.
func NewRoomState(cfg RoomConfig, altitudeM float64) *RoomState {
	pressure := cfg.PressurePa
	if cfg.PressureMode == PressureModeLocation {
		pressure = thermo.PressureISA(altitudeM)
	} else if pressure <= 0 {
		pressure = thermo.SeaLevelPressurePa
	}

	composition := normalizedComposition(cfg.InitialComposition)
	target := cfg.TargetComposition
	if target == nil {
		target = composition
	}

	mode := ACModeAuto
	state := &RoomState{
		Composition:       copyFractions(composition),
		PressurePa:        pressure,
		TemperatureC:      cfg.InitialTemperatureC,
		VolumeM3:          cfg.VolumeM3,
		ACSetpointC:       cfg.ACSetpointC,
		ACMode:            mode,
		AirHandlerMode:    HandlerModeOff,
		TargetComposition: copyFractions(target),
		SafetyWeights:     copyFractions(cfg.SafetyWeights),
		lastAlertAt:       make(map[string]float64),
	}
	return state
}

// RoomStepOptions carries the per-step inputs that are not equipment.
type RoomStepOptions struct {
	// HeatInputJ is external heat added this step (burner losses, vessel
	// surface radiation).
	HeatInputJ float64

	// VaporInput injects evaporated vessel mass into the room air.
	VaporInput *VaporInput
}

// VaporInput identifies one evaporation injection.
type VaporInput struct {
	SubstanceID       string  `json:"substanceId"`
	MassKg            float64 `json:"massKg"`
	MolarMassKgPerMol float64 `json:"molarMassKgPerMol"`
	ChemicalFormula   string  `json:"chemicalFormula"`
}

// SimulateRoomStep advances the room by dt seconds, applying in order:
// external heat injection, AC drive toward the setpoint, PID-controlled
// air-handler gas exchange, and optional vapor injection. The room loop has
// no cross-tick ordering dependency on the vessel worker, so callers run it
// synchronously on their own fixed interval.
func SimulateRoomStep(state *RoomState, ac *ACUnitSpec, handler *AirHandlerSpec, dtS float64, opts RoomStepOptions) {
	if state == nil || dtS <= 0 {
		return
	}
	state.ElapsedS += dtS

	// (a) External heat from the burner side of the experiment.
	if opts.HeatInputJ != 0 {
		state.applyHeat(opts.HeatInputJ)
	}

	// (b) AC heating/cooling toward the setpoint, capacity-limited.
	state.applyAC(ac, dtS)

	// (c) PID-driven gas exchange.
	applyAirHandler(state, handler, dtS)

	// (d) Direct vapor injection from vessel evaporation.
	if opts.VaporInput != nil {
		state.AddVapor(*opts.VaporInput)
	}

	state.checkComposition()
	state.raiseAlerts()
	state.appendLogs(opts.HeatInputJ)
}

// airMassKg derives the room's air mass from the ideal gas law.
func (r *RoomState) airMassKg() float64 {
	tempK := r.TemperatureC + thermo.CelsiusToKelvinOffset
	if tempK <= 0 || r.VolumeM3 <= 0 {
		return 0
	}
	moles := r.PressurePa * r.VolumeM3 / (thermo.GasConstant * tempK)
	return moles * thermo.MolarMassAirKg
}

func (r *RoomState) applyHeat(energyJ float64) {
	mass := r.airMassKg()
	r.TemperatureC += thermo.TemperatureDelta(mass, airSpecificHeatJPerGC, energyJ)
}

func (r *RoomState) applyAC(ac *ACUnitSpec, dtS float64) {
	if ac == nil || r.ACMode == ACModeOff {
		return
	}
	delta := r.ACSetpointC - r.TemperatureC
	if delta == 0 {
		return
	}

	heating := delta > 0
	switch r.ACMode {
	case ACModeHeat:
		if !heating {
			return
		}
	case ACModeCool:
		if heating {
			return
		}
	}

	power := ac.CoolingPowerW
	if heating {
		power = ac.HeatingPowerW
	}
	if power <= 0 {
		return
	}

	mass := r.airMassKg()
	maxDelta := math.Abs(thermo.TemperatureDelta(mass, airSpecificHeatJPerGC, power*dtS))
	if maxDelta >= math.Abs(delta) {
		r.TemperatureC = r.ACSetpointC
		return
	}
	if heating {
		r.TemperatureC += maxDelta
	} else {
		r.TemperatureC -= maxDelta
	}
}

// AddVapor injects massKg of a vapor species into the room as additional
// partial pressure, keyed by chemical formula. Existing fractions rescale
// by the mole dilution and total pressure rises accordingly.
func (r *RoomState) AddVapor(in VaporInput) {
	if in.MassKg <= 0 || in.MolarMassKgPerMol <= 0 || in.ChemicalFormula == "" {
		return
	}
	tempK := r.TemperatureC + thermo.CelsiusToKelvinOffset
	if tempK <= 0 || r.VolumeM3 <= 0 {
		return
	}

	added := in.MassKg / in.MolarMassKgPerMol
	total := r.PressurePa * r.VolumeM3 / (thermo.GasConstant * tempK)
	if total <= 0 {
		return
	}

	dilution := total / (total + added)
	for species := range r.Composition {
		r.Composition[species] *= dilution
	}
	r.Composition[in.ChemicalFormula] += added / (total + added)
	r.PressurePa = (total + added) * thermo.GasConstant * tempK / r.VolumeM3
}

// checkComposition clamps negative fractions and reports sum drift beyond
// tolerance. Drift is a defect indicator, not an error: the simulation
// keeps running on the best-effort composition.
func (r *RoomState) checkComposition() {
	for species, f := range r.Composition {
		if f < 0 {
			r.Composition[species] = 0
		}
	}
	sum := floats.Sum(fractionValues(r.Composition))
	if math.Abs(sum-1) > compositionSumTolerance {
		logrus.Warnf("room composition fractions sum to %.4f (tolerance %.2f); possible defect", sum, compositionSumTolerance)
	}
}

func (r *RoomState) raiseAlerts() {
	for _, species := range sortedSpecies(r.TargetComposition, r.Composition) {
		weight := r.safetyWeight(species)
		deviation := weight * math.Abs(r.Composition[species]-r.TargetComposition[species])
		if deviation <= alertDeviationThreshold {
			continue
		}
		if last, seen := r.lastAlertAt[species]; seen && r.ElapsedS-last < alertCooldownS {
			continue
		}
		if r.lastAlertAt == nil {
			r.lastAlertAt = make(map[string]float64)
		}
		r.lastAlertAt[species] = r.ElapsedS
		r.Alerts = append(r.Alerts, Alert{Species: species, Deviation: deviation, ElapsedS: r.ElapsedS})
		logrus.Warnf("room air alert: %s deviation %.4f at %.1fs", species, deviation, r.ElapsedS)
	}
}

func (r *RoomState) safetyWeight(species string) float64 {
	if w, ok := r.SafetyWeights[species]; ok {
		return w
	}
	return 1
}

func (r *RoomState) appendLogs(heatJ float64) {
	r.HeatLog = append(r.HeatLog, HeatLogEntry{
		ElapsedS: r.ElapsedS, EnergyJ: heatJ, TemperatureC: r.TemperatureC,
	})
	r.CompositionLog = append(r.CompositionLog, CompositionLogEntry{
		ElapsedS: r.ElapsedS, Composition: copyFractions(r.Composition),
	})
	if len(r.HeatLog) > maxLogEntries {
		r.HeatLog = r.HeatLog[len(r.HeatLog)-maxLogEntries:]
	}
	if len(r.CompositionLog) > maxLogEntries {
		r.CompositionLog = r.CompositionLog[len(r.CompositionLog)-maxLogEntries:]
	}
}

// RoomSummary is the read-only projection handed to external consumers.
type RoomSummary struct {
	PressurePa           float64            `json:"pressurePa"`
	TemperatureC         float64            `json:"temperatureC"`
	Composition          map[string]float64 `json:"composition"`
	Alerts               []Alert            `json:"alerts"`
	AirHandlerMode       string             `json:"airHandlerMode"`
	AirHandlerFlowM3PerS float64            `json:"airHandlerFlowM3PerS"`
}

// GetRoomSummary copies the externally visible room state; mutating the
// summary never touches the live state.
func GetRoomSummary(state *RoomState) RoomSummary {
	if state == nil {
		return RoomSummary{}
	}
	alerts := make([]Alert, len(state.Alerts))
	copy(alerts, state.Alerts)
	return RoomSummary{
		PressurePa:           state.PressurePa,
		TemperatureC:         state.TemperatureC,
		Composition:          copyFractions(state.Composition),
		Alerts:               alerts,
		AirHandlerMode:       state.AirHandlerMode,
		AirHandlerFlowM3PerS: state.AirHandlerFlowM3PerS,
	}
}

func copyFractions(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func fractionValues(m map[string]float64) []float64 {
	vals := make([]float64, 0, len(m))
	for _, species := range sortedSpecies(m) {
		vals = append(vals, m[species])
	}
	return vals
}

// sortedSpecies merges the keys of the given maps into one sorted slice so
// iteration order is deterministic.
func sortedSpecies(maps ...map[string]float64) []string {
	seen := make(map[string]struct{})
	for _, m := range maps {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// normalizedComposition scales fractions to sum to 1; an empty or
// degenerate map defaults to plain dry air.
func normalizedComposition(m map[string]float64) map[string]float64 {
	sum := floats.Sum(fractionValues(m))
	if sum <= 0 {
		return map[string]float64{"N2": 0.7808, "O2": 0.2095, "Ar": 0.0093, "CO2": 0.0004}
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if v < 0 {
			v = 0
		}
		out[k] = v / sum
	}
	return out
}

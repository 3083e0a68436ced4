package sim

import (
	"math"
)

// PID-controlled air handling. The controller's error input is the room's
// contamination level; its clamped output sets a flow percentage of the
// handler's maximum rate, which exchanges room air against the target
// composition through each species' filtration efficiency.

// standbyFlowThreshold: PID outputs below 5% leave the handler in standby
// rather than cycling the fans at useless speeds.
const standbyFlowThreshold = 0.05

// ContaminationLevel is the weighted sum of absolute deviations between the
// current and target composition. Per-species safety weights make toxic
// gases dominate the signal over drifts in inert species.
func ContaminationLevel(state *RoomState) float64 {
	var level float64
	for _, species := range sortedSpecies(state.Composition, state.TargetComposition) {
		level += state.safetyWeight(species) * math.Abs(state.Composition[species]-state.TargetComposition[species])
	}
	return level
}

// applyAirHandler runs one PID cycle and exchanges room air accordingly.
// The exchanged fraction follows the well-mixed dilution formula
// 1 - e^(-flow*dt/V), so even a large flow over a long step can never
// exchange more than the whole room.
func applyAirHandler(state *RoomState, handler *AirHandlerSpec, dtS float64) {
	if handler == nil {
		state.AirHandlerMode = HandlerModeOff
		state.AirHandlerFlowM3PerS = 0
		return
	}
	state.AirHandlerMode = HandlerModeStandby
	state.AirHandlerFlowM3PerS = 0

	level := ContaminationLevel(state)
	output := pidUpdate(&state.PID, handler.PidTuning, level, dtS)

	// Control output is a flow percentage in [0, 1].
	if output < 0 {
		output = 0
	} else if output > 1 {
		output = 1
	}
	if output < standbyFlowThreshold {
		return
	}

	flow := output * handler.MaxFlowM3PerS()
	if flow <= 0 || state.VolumeM3 <= 0 {
		return
	}
	state.AirHandlerMode = HandlerModeActive
	state.AirHandlerFlowM3PerS = flow
	exchanged := 1 - math.Exp(-flow*dtS/state.VolumeM3)

	for _, species := range sortedSpecies(state.Composition, state.TargetComposition) {
		efficiency := 1.0
		if e, ok := handler.FiltrationEfficiency[species]; ok {
			efficiency = e
		}
		if efficiency < 0 {
			efficiency = 0
		} else if efficiency > 1 {
			efficiency = 1
		}
		current := state.Composition[species]
		target := state.TargetComposition[species]
		state.Composition[species] = current + exchanged*efficiency*(target-current)
	}
}

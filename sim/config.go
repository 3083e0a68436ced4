package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Externally supplied equipment and room documents. These arrive as JSON
// (the host application ships them as data files); every field carries its
// unit in the name or a comment.

// ACUnitSpec describes one air-conditioning unit.
type ACUnitSpec struct {
	Name          string  `json:"name"`
	CoolingPowerW float64 `json:"coolingPowerW"` // heat removal capacity
	HeatingPowerW float64 `json:"heatingPowerW"` // heat addition capacity
}

// AirHandlerSpec describes one PID-driven air handling / gas exchange unit.
// Flow may be given in m^3/h or CFM; m^3/h wins when both are present.
type AirHandlerSpec struct {
	Name                 string             `json:"name"`
	MaxFlowRateM3PerHour float64            `json:"maxFlowRateM3PerHour"`
	MaxFlowRateCFM       float64            `json:"maxFlowRateCFM"`
	FiltrationEfficiency map[string]float64 `json:"filtrationEfficiency"` // per species, 0..1 (absent = 1)
	PidTuning            PidTuning          `json:"pidTuning"`
}

const cubicFeetPerMinuteToM3PerHour = 1.69901

// MaxFlowM3PerS returns the handler's maximum volumetric flow in m^3/s
// regardless of which unit the document used.
func (a *AirHandlerSpec) MaxFlowM3PerS() float64 {
	if a == nil {
		return 0
	}
	if a.MaxFlowRateM3PerHour > 0 {
		return a.MaxFlowRateM3PerHour / 3600
	}
	return a.MaxFlowRateCFM * cubicFeetPerMinuteToM3PerHour / 3600
}

// Pressure seeding modes for RoomConfig.
const (
	PressureModeFixed    = "fixed"
	PressureModeLocation = "location"
)

// RoomConfig is the externally supplied room description.
type RoomConfig struct {
	VolumeM3            float64            `json:"volumeM3"`
	PressureMode        string             `json:"pressureMode"` // "fixed" or "location"
	PressurePa          float64            `json:"pressurePa"`   // used by "fixed"; 0 = standard sea level
	InitialTemperatureC float64            `json:"initialTemperatureC"`
	ACSetpointC         float64            `json:"acSetpointC"`
	InitialComposition  map[string]float64 `json:"initialComposition"` // species -> mole fraction
	TargetComposition   map[string]float64 `json:"targetComposition"`  // absent = initial composition
	SafetyWeights       map[string]float64 `json:"safetyWeights"`      // contamination weighting (absent = 1)
}

// RoomSetup bundles the three documents the CLI loads from one file.
type RoomSetup struct {
	Room       RoomConfig      `json:"room"`
	ACUnit     *ACUnitSpec     `json:"acUnit,omitempty"`
	AirHandler *AirHandlerSpec `json:"airHandler,omitempty"`
}

// LoadRoomSetup reads a combined room/AC/air-handler JSON document.
func LoadRoomSetup(path string) (*RoomSetup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading room setup: %w", err)
	}
	var setup RoomSetup
	if err := json.Unmarshal(data, &setup); err != nil {
		return nil, fmt.Errorf("parsing room setup %s: %w", path, err)
	}
	if setup.Room.VolumeM3 <= 0 {
		return nil, fmt.Errorf("room setup %s: volumeM3 must be positive", path)
	}
	return &setup, nil
}

// SchedulerConfig groups the tick scheduler's knobs.
type SchedulerConfig struct {
	TickInterval time.Duration // fixed wall-clock interval between ticks

	// BurnerActivationRadiusM is the geometric proximity within which the
	// vessel is judged to sit over the heat source.
	BurnerActivationRadiusM float64

	// BacklogWarnThreshold is the queue depth past which a rate-limited
	// warning is logged; BacklogWarnCooldown spaces those warnings out.
	BacklogWarnThreshold int
	BacklogWarnCooldown  time.Duration

	// MaxBacklog bounds the pending tick queue. 0 keeps it unbounded (the
	// simulation lags under overload but never drops ticks); a positive
	// bound drops the oldest queued tick, logged at Warn.
	MaxBacklog int
}

// DefaultSchedulerConfig mirrors the interactive application's tuning.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TickInterval:            250 * time.Millisecond,
		BurnerActivationRadiusM: 0.12,
		BacklogWarnThreshold:    8,
		BacklogWarnCooldown:     10 * time.Second,
		MaxBacklog:              0,
	}
}

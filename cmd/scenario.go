package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a YAML experiment preset: the vessel's starting condition and a
// sequence of phases driving the burner and the bench position over time.
type Scenario struct {
	Name                string  `yaml:"name"`
	Fluid               string  `yaml:"fluid"` // fluid id, resolved against the fluid file
	InitialMassKg       float64 `yaml:"initialMassKg"`
	InitialTemperatureC float64 `yaml:"initialTemperatureC"`
	AltitudeM           float64 `yaml:"altitudeM"`

	Phases []ScenarioPhase `yaml:"phases"`
}

// ScenarioPhase holds one stretch of simulated time with fixed controls.
type ScenarioPhase struct {
	DurationS      float64 `yaml:"durationS"`
	BurnerPowerW   float64 `yaml:"burnerPowerW"`
	VesselOnBurner bool    `yaml:"vesselOnBurner"`
	Paused         bool    `yaml:"paused"`
}

// TotalDurationS sums the phase durations.
func (s *Scenario) TotalDurationS() float64 {
	var total float64
	for _, p := range s.Phases {
		total += p.DurationS
	}
	return total
}

// LoadScenario reads and validates a YAML scenario preset.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if len(sc.Phases) == 0 {
		return nil, fmt.Errorf("scenario %s: no phases", path)
	}
	for i, p := range sc.Phases {
		if p.DurationS <= 0 {
			return nil, fmt.Errorf("scenario %s: phase %d has non-positive duration", path, i)
		}
	}
	if sc.InitialMassKg <= 0 {
		return nil, fmt.Errorf("scenario %s: initialMassKg must be positive", path)
	}
	return &sc, nil
}

// DefaultScenario boils a liter of water for ten minutes, then lets it cool.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:                "rolling-boil",
		Fluid:               "water",
		InitialMassKg:       1.0,
		InitialTemperatureC: 20,
		Phases: []ScenarioPhase{
			{DurationS: 600, BurnerPowerW: 2000, VesselOnBurner: true},
			{DurationS: 300},
		},
	}
}

package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/boilsim/boilsim/sim"
)

func writeScenarioFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_ParsesPhases(t *testing.T) {
	path := writeScenarioFile(t, `
name: quick-boil
fluid: water
initialMassKg: 0.5
initialTemperatureC: 18
altitudeM: 1609
phases:
  - durationS: 120
    burnerPowerW: 1500
    vesselOnBurner: true
  - durationS: 60
    paused: true
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "quick-boil", sc.Name)
	assert.InDelta(t, 1609, sc.AltitudeM, 1e-9)
	require.Len(t, sc.Phases, 2)
	assert.True(t, sc.Phases[0].VesselOnBurner)
	assert.True(t, sc.Phases[1].Paused)
	assert.InDelta(t, 180, sc.TotalDurationS(), 1e-9)
}

func TestLoadScenario_RejectsBadPresets(t *testing.T) {
	for name, body := range map[string]string{
		"no phases":     "name: empty\ninitialMassKg: 1\n",
		"zero duration": "initialMassKg: 1\nphases:\n  - durationS: 0\n",
		"zero mass":     "phases:\n  - durationS: 10\n",
	} {
		path := writeScenarioFile(t, body)
		_, err := LoadScenario(path)
		assert.Error(t, err, name)
	}
}

func TestDefaultScenario_IsValid(t *testing.T) {
	sc := DefaultScenario()
	assert.NotEmpty(t, sc.Phases)
	assert.Greater(t, sc.InitialMassKg, 0.0)
	assert.Greater(t, sc.TotalDurationS(), 0.0)
}

func TestRunScenario_HeatsWater(t *testing.T) {
	// GIVEN a two-minute burn over a 2 kW burner
	sc := &Scenario{
		Name:                "test-burn",
		InitialMassKg:       1,
		InitialTemperatureC: 20,
		Phases: []ScenarioPhase{
			{DurationS: 120, BurnerPowerW: 2000, VesselOnBurner: true},
		},
	}

	// WHEN replaying it at 1x with 250 ms ticks
	temps, final, room := runScenario(sc, sim.WaterProperties(), nil, 250*time.Millisecond, 1, 0)

	// THEN the vessel warms without boiling away
	require.NotEmpty(t, temps)
	assert.Greater(t, final.TemperatureC, 25.0)
	assert.Less(t, final.TemperatureC, 100.5)
	assert.Greater(t, final.LiquidMassKg, 0.9)
	assert.Nil(t, room)
}

func TestRunScenario_DurationOverrideStopsEarly(t *testing.T) {
	sc := &Scenario{
		Name:          "long-burn",
		InitialMassKg: 1,
		Phases: []ScenarioPhase{
			{DurationS: 600, BurnerPowerW: 2000, VesselOnBurner: true},
		},
	}
	short, _, _ := runScenario(sc, sim.WaterProperties(), nil, 250*time.Millisecond, 1, 10)
	full, _, _ := runScenario(sc, sim.WaterProperties(), nil, 250*time.Millisecond, 1, 0)
	assert.Less(t, len(short), len(full))
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPidUpdate_ProportionalOnly(t *testing.T) {
	state := &PidState{}
	out := pidUpdate(state, PidTuning{Kp: 2}, 0.5, 1)
	assert.InDelta(t, 1.0, out, 1e-12)
}

func TestPidUpdate_IntegralAccumulates(t *testing.T) {
	state := &PidState{}
	tuning := PidTuning{Ki: 1}
	pidUpdate(state, tuning, 0.5, 1)
	pidUpdate(state, tuning, 0.5, 1)
	assert.InDelta(t, 1.0, state.Integral, 1e-12)
}

func TestPidUpdate_WindupClamp(t *testing.T) {
	state := &PidState{}
	tuning := PidTuning{Ki: 1, IntegralWindupLimit: 2}
	for i := 0; i < 100; i++ {
		pidUpdate(state, tuning, 1, 1)
	}
	assert.InDelta(t, 2.0, state.Integral, 1e-12)

	// And symmetric for negative errors.
	state.Reset()
	for i := 0; i < 100; i++ {
		pidUpdate(state, tuning, -1, 1)
	}
	assert.InDelta(t, -2.0, state.Integral, 1e-12)
}

func TestPidUpdate_DerivativeSkippedOnFirstSample(t *testing.T) {
	state := &PidState{}
	tuning := PidTuning{Kd: 10}
	first := pidUpdate(state, tuning, 1, 1)
	assert.Zero(t, first, "no previous error yet, derivative must not fire")

	second := pidUpdate(state, tuning, 2, 1)
	assert.InDelta(t, 10.0, second, 1e-12)
}

func TestPidState_Reset(t *testing.T) {
	state := &PidState{Integral: 5, PrevError: 1, Primed: true}
	state.Reset()
	assert.Equal(t, PidState{}, *state)
}

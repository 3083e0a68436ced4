package sim

// PidTuning is the externally configured gain set of one PID loop.
type PidTuning struct {
	Kp                  float64 `json:"kp"`
	Ki                  float64 `json:"ki"`
	Kd                  float64 `json:"kd"`
	IntegralWindupLimit float64 `json:"integralWindupLimit"` // |integral| clamp, 0 = no clamp
}

// PidState is the mutable memory of one PID loop instance: the integral
// accumulator and the previous error. It is owned exclusively by one loop
// and reset together with its owning RoomState.
type PidState struct {
	Integral  float64 `json:"integral"`
	PrevError float64 `json:"prevError"`
	Primed    bool    `json:"primed"` // false until the first sample sets PrevError
}

// Reset clears the loop memory.
func (s *PidState) Reset() {
	*s = PidState{}
}

// pidUpdate advances one PID loop by dt seconds and returns the raw control
// output. The integral accumulator is clamped to the windup limit before
// use, so a long-standing error cannot store an unbounded correction. The
// derivative term is skipped on the first sample (no previous error yet).
func pidUpdate(state *PidState, tuning PidTuning, err, dtS float64) float64 {
	if dtS <= 0 {
		return tuning.Kp * err
	}

	state.Integral += err * dtS
	if tuning.IntegralWindupLimit > 0 {
		if state.Integral > tuning.IntegralWindupLimit {
			state.Integral = tuning.IntegralWindupLimit
		} else if state.Integral < -tuning.IntegralWindupLimit {
			state.Integral = -tuning.IntegralWindupLimit
		}
	}

	var derivative float64
	if state.Primed {
		derivative = (err - state.PrevError) / dtS
	}
	state.PrevError = err
	state.Primed = true

	return tuning.Kp*err + tuning.Ki*state.Integral + tuning.Kd*derivative
}

package sim

// The step worker offloads per-tick vessel computation to a dedicated
// goroutine. Scheduler and worker share no memory: the VesselState travels
// by value in the request and comes back by value in the result, so exactly
// one ownership token exists at any time.

// Worker message protocol.
const (
	msgSetFluidProps = "setFluidProps" // cache update, no reply
	msgStep          = "step"          // replies with one stepResult
)

// stepRequest is one message to the worker.
type stepRequest struct {
	Type string

	// setFluidProps payload.
	Fluid *FluidProperties

	// step payload.
	TickID     uint64
	State      VesselState
	HeatInputW float64
	DeltaTimeS float64
	Env        Environment
}

// StepResult is the worker's reply to a step request, tagged with the tick
// id it answers.
type StepResult struct {
	TickID uint64
	State  VesselState
}

// StepFunc computes one vessel step. The production function is
// SimulateTimeStepEnv; tests substitute slower ones to exercise ordering.
type StepFunc func(state VesselState, heatInputW, deltaTimeS float64, fluid *FluidProperties, env Environment) VesselState

// StepWorker is the persistent background goroutine serving one vessel.
type StepWorker struct {
	requests chan stepRequest
	results  chan StepResult
	step     StepFunc
}

// NewStepWorker starts a worker computing with SimulateTimeStepEnv.
func NewStepWorker() *StepWorker {
	return NewStepWorkerWithStep(SimulateTimeStepEnv)
}

// NewStepWorkerWithStep starts a worker with a custom step function.
func NewStepWorkerWithStep(step StepFunc) *StepWorker {
	w := &StepWorker{
		requests: make(chan stepRequest, 16),
		results:  make(chan StepResult, 16),
		step:     step,
	}
	go w.run()
	return w
}

func (w *StepWorker) run() {
	// fluid is cached worker-side so step requests stay small and the
	// reference data is set once per active substance.
	var fluid *FluidProperties
	for req := range w.requests {
		switch req.Type {
		case msgSetFluidProps:
			fluid = req.Fluid
		case msgStep:
			w.results <- StepResult{
				TickID: req.TickID,
				State:  w.step(req.State, req.HeatInputW, req.DeltaTimeS, fluid, req.Env),
			}
		}
	}
	close(w.results)
}

// SetFluidProps updates the worker-side fluid cache. No reply.
func (w *StepWorker) SetFluidProps(fluid *FluidProperties) {
	w.requests <- stepRequest{Type: msgSetFluidProps, Fluid: fluid}
}

// Dispatch sends one step request. The reply arrives on Results.
func (w *StepWorker) Dispatch(tickID uint64, state VesselState, heatInputW, deltaTimeS float64, env Environment) {
	w.requests <- stepRequest{
		Type:       msgStep,
		TickID:     tickID,
		State:      state,
		HeatInputW: heatInputW,
		DeltaTimeS: deltaTimeS,
		Env:        env,
	}
}

// Results is the worker's reply channel.
func (w *StepWorker) Results() <-chan StepResult {
	return w.results
}

// Stop shuts the worker down. Results already computed drain normally;
// Dispatch must not be called afterwards.
func (w *StepWorker) Stop() {
	close(w.requests)
}

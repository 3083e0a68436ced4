package sim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SimClock is the shared pause/time-speed control. The vessel scheduler and
// the room loop run on independent fixed-interval timers but share one
// clock, so pausing the experiment stops both without resetting anything.
type SimClock struct {
	mu     sync.Mutex
	paused bool
	scale  float64
}

// Time-speed multipliers are 0 or powers of two within this exponent range
// (1/65536x up to 65536x).
const (
	minTimeScaleExponent = -16
	maxTimeScaleExponent = 16
)

// NewSimClock returns a running clock at 1x speed.
func NewSimClock() *SimClock {
	return &SimClock{scale: 1}
}

// SetPaused pauses or resumes the experiment.
func (c *SimClock) SetPaused(paused bool) {
	c.mu.Lock()
	c.paused = paused
	c.mu.Unlock()
}

// Paused reports whether the experiment is paused.
func (c *SimClock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// SetTimeScale sets the time-speed multiplier. Non-positive values mean 0x
// (time stands still); anything else snaps to the nearest power of two
// within the supported range.
func (c *SimClock) SetTimeScale(multiplier float64) {
	var scale float64
	if multiplier > 0 {
		exp := math.Round(math.Log2(multiplier))
		if exp < minTimeScaleExponent {
			exp = minTimeScaleExponent
		} else if exp > maxTimeScaleExponent {
			exp = maxTimeScaleExponent
		}
		scale = math.Pow(2, exp)
	}
	c.mu.Lock()
	c.scale = scale
	c.mu.Unlock()
}

// TimeScale returns the current multiplier.
func (c *SimClock) TimeScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}

// Position is a point in the experiment bench plane, meters.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Burner is the heat source under the bench.
type Burner struct {
	Position Position `json:"position"`
	PowerW   float64  `json:"powerW"`
}

// TickScheduler drives the per-vessel simulation loop: Idle ->
// TickDispatched -> TickPending -> Idle. Each fixed-interval tick becomes a
// TickContext; at most one is in flight to the worker, the rest queue FIFO.
// Results are applied strictly in dispatch order because the next dispatch
// only happens after the prior result returns, each one starting from the
// just-returned state.
type TickScheduler struct {
	mu sync.Mutex

	cfg    SchedulerConfig
	clock  *SimClock
	worker *StepWorker
	fluid  *FluidProperties

	state      VesselState
	env        Environment
	burner     Burner
	vesselPos  Position
	overBurner bool

	nextTickID      uint64
	inFlight        *TickContext
	backlog         TickQueue
	lastTick        time.Time
	lastTickValid   bool
	lastBacklogWarn time.Time

	// OnStateApplied fires after each result is applied, with the state
	// before and after and the consumed tick context. The room layer hooks
	// vapor/heat injection here.
	OnStateApplied func(prev, next VesselState, ctx TickContext)
}

// NewTickScheduler wires a scheduler for one vessel. worker may be nil, in
// which case every tick computes synchronously in the caller's goroutine
// with identical semantics. clock may be nil for a private 1x clock.
func NewTickScheduler(cfg SchedulerConfig, clock *SimClock, worker *StepWorker, fluid *FluidProperties, initial VesselState) *TickScheduler {
	if clock == nil {
		clock = NewSimClock()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultSchedulerConfig().TickInterval
	}
	s := &TickScheduler{
		cfg:    cfg,
		clock:  clock,
		worker: worker,
		fluid:  fluid,
		state:  initial,
	}
	if worker != nil {
		worker.SetFluidProps(fluid)
	}
	return s
}

// SetEnvironment replaces the surroundings used for subsequent ticks.
func (s *TickScheduler) SetEnvironment(env Environment) {
	s.mu.Lock()
	s.env = env
	s.mu.Unlock()
}

// SetBurner places the heat source.
func (s *TickScheduler) SetBurner(b Burner) {
	s.mu.Lock()
	s.burner = b
	s.mu.Unlock()
}

// SetVesselPosition moves the vessel on the bench. Heat only flows while
// the vessel sits within the burner's activation radius.
func (s *TickScheduler) SetVesselPosition(p Position) {
	s.mu.Lock()
	s.vesselPos = p
	s.mu.Unlock()
}

// State returns the last applied vessel state.
func (s *TickScheduler) State() VesselState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Backlog returns the number of queued (not yet dispatched) ticks.
func (s *TickScheduler) Backlog() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backlog.Len()
}

// heatInputLocked applies the geometric proximity test against the burner's
// activation radius.
func (s *TickScheduler) heatInputLocked() float64 {
	dx := s.vesselPos.X - s.burner.Position.X
	dy := s.vesselPos.Y - s.burner.Position.Y
	within := math.Hypot(dx, dy) <= s.cfg.BurnerActivationRadiusM
	if within != s.overBurner {
		s.overBurner = within
		logrus.Infof("vessel %s burner", map[bool]string{true: "moved over", false: "moved off"}[within])
	}
	if !within {
		return 0
	}
	return s.burner.PowerW
}

// Tick advances the loop once for the given wall-clock instant. Paused (or
// 0x) ticks are skipped but still rebase the last-tick timestamp, so
// resuming never simulates a catch-up burst.
func (s *TickScheduler) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lastTickValid {
		s.lastTick = now
		s.lastTickValid = true
		return
	}

	drift := now.Sub(s.lastTick).Seconds()
	s.lastTick = now

	scale := s.clock.TimeScale()
	if s.clock.Paused() || scale == 0 || drift <= 0 {
		return
	}

	s.nextTickID++
	ctx := TickContext{
		TickID:     s.nextTickID,
		DeltaTimeS: drift * scale,
		HeatInputW: s.heatInputLocked(),
	}

	if s.inFlight != nil {
		s.enqueueLocked(ctx, now)
		return
	}
	s.dispatchLocked(ctx)
}

// enqueueLocked adds a tick to the backlog, enforcing the bound and the
// rate-limited overload warning. The warning cooldown is measured against
// the caller-supplied tick instant, not the wall clock, so replayed or
// accelerated runs rate-limit on the same timeline they tick on.
func (s *TickScheduler) enqueueLocked(ctx TickContext, now time.Time) {
	if s.cfg.MaxBacklog > 0 && s.backlog.Len() >= s.cfg.MaxBacklog {
		dropped, _ := s.backlog.DropOldest()
		logrus.Warnf("tick backlog full (%d); dropping tick #%d", s.cfg.MaxBacklog, dropped.TickID)
	}
	s.backlog.Enqueue(ctx)

	if s.backlog.Len() >= s.cfg.BacklogWarnThreshold &&
		now.Sub(s.lastBacklogWarn) >= s.cfg.BacklogWarnCooldown {
		s.lastBacklogWarn = now
		logrus.Warnf("tick computation falling behind: %d ticks queued", s.backlog.Len())
	}
}

// dispatchLocked hands a tick to the worker, or computes it synchronously
// when no worker is available. The context's PrevLiquidMass is stamped here
// because the tick starts from the state as it is now, not as it was when
// the tick was requested.
func (s *TickScheduler) dispatchLocked(ctx TickContext) {
	ctx.PrevLiquidMass = s.state.LiquidMassKg
	s.inFlight = &ctx

	if s.worker == nil {
		// Synchronous fallback, identical semantics.
		result := StepResult{
			TickID: ctx.TickID,
			State:  SimulateTimeStepEnv(s.state, ctx.HeatInputW, ctx.DeltaTimeS, s.fluid, s.env),
		}
		s.applyLocked(result)
		return
	}
	s.worker.Dispatch(ctx.TickID, s.state, ctx.HeatInputW, ctx.DeltaTimeS, s.env)
}

// HandleResult consumes one worker reply: the in-flight context for that
// tick id is removed, the state is applied, and the next queued tick (if
// any) is dispatched immediately from the just-returned state.
func (s *TickScheduler) HandleResult(res StepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyLocked(res)
}

func (s *TickScheduler) applyLocked(res StepResult) {
	if s.inFlight == nil || s.inFlight.TickID != res.TickID {
		logrus.Warnf("dropping stale step result for tick #%d", res.TickID)
		return
	}
	ctx := *s.inFlight
	s.inFlight = nil

	prev := s.state
	s.state = res.State

	if !prev.Boiling && s.state.Boiling {
		logrus.Infof("[tick %07d] vessel reached boiling point at %.2f °C", ctx.TickID, s.state.TemperatureC)
	}
	if prev.LiquidMassKg > 0 && s.state.LiquidMassKg == 0 {
		logrus.Infof("[tick %07d] vessel boiled dry; residue %.4f kg", ctx.TickID, s.state.ResidueMassKg)
	}

	if s.OnStateApplied != nil {
		s.OnStateApplied(prev, s.state, ctx)
	}

	if next, ok := s.backlog.Dequeue(); ok {
		s.dispatchLocked(next)
	}
}

// Run drives the scheduler on its fixed interval until the context ends,
// consuming worker results on the same goroutine so every state mutation is
// serialized. The control loop never blocks on the worker.
func (s *TickScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	var results <-chan StepResult
	if s.worker != nil {
		results = s.worker.Results()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Tick(now)
		case res, ok := <-results:
			if !ok {
				results = nil
				continue
			}
			s.HandleResult(res)
		}
	}
}

// RoomRunner drives the room simulation on its own fixed interval. It
// shares the pause/speed clock with the vessel scheduler but not its tick
// id sequence: room steps have no cross-tick ordering dependency on the
// worker, so they always run synchronously.
type RoomRunner struct {
	mu sync.Mutex

	clock    *SimClock
	interval time.Duration

	Room       *RoomState
	ACUnit     *ACUnitSpec
	AirHandler *AirHandlerSpec

	// NextOptions is polled before each step so the vessel layer can stage
	// heat and vapor injection for the upcoming room step.
	nextOpts RoomStepOptions

	lastTick      time.Time
	lastTickValid bool
}

// NewRoomRunner wires a room loop sharing the given clock.
func NewRoomRunner(clock *SimClock, interval time.Duration, room *RoomState, ac *ACUnitSpec, handler *AirHandlerSpec) *RoomRunner {
	if clock == nil {
		clock = NewSimClock()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &RoomRunner{clock: clock, interval: interval, Room: room, ACUnit: ac, AirHandler: handler}
}

// Inject stages heat and vapor for the next room step. Multiple injections
// between steps accumulate.
func (r *RoomRunner) Inject(heatJ float64, vapor *VaporInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextOpts.HeatInputJ += heatJ
	if vapor != nil {
		if staged := r.nextOpts.VaporInput; staged != nil && staged.ChemicalFormula == vapor.ChemicalFormula {
			staged.MassKg += vapor.MassKg
		} else {
			v := *vapor
			r.nextOpts.VaporInput = &v
		}
	}
}

// Step advances the room for the given wall-clock instant; paused ticks
// rebase the last-tick timestamp exactly like the vessel scheduler.
func (r *RoomRunner) Step(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lastTickValid {
		r.lastTick = now
		r.lastTickValid = true
		return
	}
	drift := now.Sub(r.lastTick).Seconds()
	r.lastTick = now

	scale := r.clock.TimeScale()
	if r.clock.Paused() || scale == 0 || drift <= 0 {
		return
	}

	opts := r.nextOpts
	r.nextOpts = RoomStepOptions{}
	SimulateRoomStep(r.Room, r.ACUnit, r.AirHandler, drift*scale, opts)
}

// Run drives the room loop until the context ends.
func (r *RoomRunner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Step(now)
		}
	}
}

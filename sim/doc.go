// Package sim provides the core real-time simulation engine for boilsim:
// a liquid heated in a vessel and the room environment around it.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - vessel.go: VesselState and the per-tick state transition (heating,
//     boiling, evaporation, residue)
//   - scheduler.go: the fixed-interval tick loop, the single-in-flight
//     worker dispatch discipline, and the room loop
//   - room.go: the room gas/pressure/temperature state machine
//
// # Architecture
//
// Pure physics lives in the sim/thermo subpackage: each physical law
// (ISA atmosphere, Antoine vapor pressure, heat capacity, Newton cooling,
// latent heat, ebullioscopy, Fuller-Schettler-Giddings diffusion) is a
// stateless function. This package composes them:
//   - boiling.go: altitude/pressure -> boiling temperature resolver
//   - evaporation.go: diffusion-limited surface mass transfer per tick
//   - vessel.go: the lumped-mass vessel stepper
//   - room.go + airhandler.go + pid.go: PID-controlled room air handling
//   - worker.go + queue.go + scheduler.go: ordered tick offload
//
// # Concurrency
//
// One StepWorker goroutine serves one vessel; scheduler and worker exchange
// VesselState by value over channels, so a single ownership token exists at
// a time. At most one tick is in flight; later ticks queue FIFO and results
// apply strictly in dispatch order. The room loop is independent and always
// synchronous. Nothing in the engine is fatal: bad numeric input degrades
// to physically plausible defaults.
package sim

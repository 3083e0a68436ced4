package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/boilsim/boilsim/sim"
)

var (
	// CLI flags for the experiment setup
	fluidFile    string  // Path to the fluid properties JSON (empty = built-in water)
	fluidID      string  // Fluid id to select from the fluid file
	scenarioFile string  // Path to the YAML scenario preset (empty = default rolling boil)
	roomFile     string  // Path to the room/AC/air-handler JSON (empty = no room coupling)
	durationS    float64 // Simulated seconds to run; 0 = the scenario's total duration
	altitudeM    float64 // Altitude override in meters; negative = use the scenario's
	burnerW      float64 // Burner power override in watts; 0 = use each phase's power

	// CLI flags for the loop
	tickIntervalMs int     // Fixed tick interval (wall-clock milliseconds)
	timeSpeed      float64 // Time-speed multiplier, snapped to a power of two
	logLevel       string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boilsim",
	Short: "Thermodynamic simulator for heating liquids in a room",
}

// runCmd executes one scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a heating scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenario := DefaultScenario()
		if scenarioFile != "" {
			scenario, err = LoadScenario(scenarioFile)
			if err != nil {
				logrus.Fatalf("unable to read scenario: %v", err)
			}
		}
		if altitudeM >= 0 {
			scenario.AltitudeM = altitudeM
		}
		if burnerW > 0 {
			for i := range scenario.Phases {
				scenario.Phases[i].BurnerPowerW = burnerW
			}
		}

		fluid := sim.WaterProperties()
		if fluidFile != "" {
			fluids, err := sim.LoadFluids(fluidFile)
			if err != nil {
				logrus.Fatalf("unable to read fluid properties: %v", err)
			}
			f, ok := fluids[fluidID]
			if !ok {
				logrus.Fatalf("fluid %q not found in %s", fluidID, fluidFile)
			}
			fluid = f
		}
		if !fluid.HasSeaLevelBoilingPoint() {
			logrus.Fatalf("fluid %q has no sea-level boiling point", fluid.ID)
		}

		var setup *sim.RoomSetup
		if roomFile != "" {
			setup, err = sim.LoadRoomSetup(roomFile)
			if err != nil {
				logrus.Fatalf("unable to read room setup: %v", err)
			}
		}

		logrus.Infof("Starting scenario %q: %.2f kg of %s at %.1f °C, altitude %.0f m",
			scenario.Name, scenario.InitialMassKg, fluid.ID, scenario.InitialTemperatureC, scenario.AltitudeM)

		startTime := time.Now()
		temps, final, room := runScenario(scenario, fluid, setup,
			time.Duration(tickIntervalMs)*time.Millisecond, timeSpeed, durationS)
		printSummary(scenario, fluid, final, room, temps, startTime)

		logrus.Info("Scenario complete.")
	},
}

// runScenario replays the scenario's phases through the tick scheduler (and,
// when a room setup is present, the room loop coupled to it) using synthetic
// wall-clock instants, one tick interval apart. Returns the applied
// temperature series, the final vessel state, and the room state (nil without
// a room file).
func runScenario(scenario *Scenario, fluid *sim.FluidProperties, setup *sim.RoomSetup,
	tickInterval time.Duration, speed, maxSimS float64) ([]float64, sim.VesselState, *sim.RoomState) {

	clock := sim.NewSimClock()
	clock.SetTimeScale(speed)

	cfg := sim.DefaultSchedulerConfig()
	cfg.TickInterval = tickInterval

	state := sim.NewVesselState(scenario.InitialMassKg, scenario.InitialTemperatureC, scenario.AltitudeM)
	sched := sim.NewTickScheduler(cfg, clock, nil, fluid, state)

	var roomRunner *sim.RoomRunner
	var room *sim.RoomState
	if setup != nil {
		room = sim.NewRoomState(setup.Room, scenario.AltitudeM)
		roomRunner = sim.NewRoomRunner(clock, tickInterval, room, setup.ACUnit, setup.AirHandler)
	}

	var temps []float64
	var simElapsed float64
	sched.OnStateApplied = func(prev, next sim.VesselState, ctx sim.TickContext) {
		temps = append(temps, next.TemperatureC)
		simElapsed += ctx.DeltaTimeS
		if roomRunner == nil {
			return
		}
		if vapor := ctx.PrevLiquidMass - next.LiquidMassKg; vapor > 0 {
			roomRunner.Inject(0, &sim.VaporInput{
				SubstanceID:       fluid.ID,
				MassKg:            vapor,
				MolarMassKgPerMol: fluid.MolarMassKgPerMol,
				ChemicalFormula:   fluid.ChemicalFormula,
			})
		}
	}

	now := time.Now()
	sched.Tick(now) // rebase only
	if roomRunner != nil {
		roomRunner.Step(now)
	}

	for _, phase := range scenario.Phases {
		clock.SetPaused(phase.Paused)
		sched.SetBurner(sim.Burner{PowerW: phase.BurnerPowerW})
		if phase.VesselOnBurner {
			sched.SetVesselPosition(sim.Position{})
		} else {
			sched.SetVesselPosition(sim.Position{X: 1})
		}

		ticks := int(phase.DurationS / tickInterval.Seconds())
		for i := 0; i < ticks; i++ {
			now = now.Add(tickInterval)
			if roomRunner != nil {
				// Couple the vessel's surroundings to the room before its tick.
				sched.SetEnvironment(sim.Environment{
					AmbientTemperatureC: room.TemperatureC,
					TotalPressurePa:     room.PressurePa,
				})
				roomRunner.Step(now)
			}
			sched.Tick(now)
			if maxSimS > 0 && simElapsed >= maxSimS {
				return temps, sched.State(), room
			}
		}
	}
	return temps, sched.State(), room
}

// printSummary writes the post-run report: final vessel numbers, the resolved
// boiling point, the room summary when present, and the temperature chart.
func printSummary(scenario *Scenario, fluid *sim.FluidProperties, final sim.VesselState,
	room *sim.RoomState, temps []float64, startTime time.Time) {

	fmt.Printf("scenario %q finished in %v (wall clock)\n", scenario.Name, time.Since(startTime).Round(time.Millisecond))
	fmt.Printf("  liquid remaining: %.4f kg of %.4f kg\n", final.LiquidMassKg, final.InitialLiquidMassKg)
	fmt.Printf("  temperature:      %.2f °C (boiling: %v)\n", final.TemperatureC, final.Boiling)
	if final.ResidueMassKg > 0 {
		fmt.Printf("  residue:          %.4f kg\n", final.ResidueMassKg)
	}
	if bp := sim.CalculateBoilingPoint(final.AltitudeM, fluid); bp != nil {
		fmt.Printf("  boiling point:    %.2f °C at %.0f m\n", bp.TemperatureC, final.AltitudeM)
	}
	if room != nil {
		summary := sim.GetRoomSummary(room)
		fmt.Printf("  room:             %.2f °C, %.0f Pa, contamination %.4f, air handler %s\n",
			summary.TemperatureC, summary.PressurePa, sim.ContaminationLevel(room), summary.AirHandlerMode)
	}
	if len(temps) > 1 {
		fmt.Println(asciigraph.Plot(temps,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("vessel temperature (°C)")))
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {

	runCmd.Flags().StringVar(&fluidFile, "fluids", "", "Path to fluid properties JSON (empty = built-in water)")
	runCmd.Flags().StringVar(&fluidID, "fluid", "water", "Fluid id to simulate")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "Path to YAML scenario preset (empty = default rolling boil)")
	runCmd.Flags().StringVar(&roomFile, "room", "", "Path to room setup JSON (empty = standard atmosphere, no room)")
	runCmd.Flags().Float64Var(&durationS, "duration", 0, "Simulated seconds to run (0 = scenario total)")
	runCmd.Flags().Float64Var(&altitudeM, "altitude", -1, "Altitude override in meters (negative = scenario value)")
	runCmd.Flags().Float64Var(&burnerW, "burner-watts", 0, "Burner power override in watts (0 = scenario values)")

	runCmd.Flags().IntVar(&tickIntervalMs, "tick-interval", 250, "Tick interval in milliseconds")
	runCmd.Flags().Float64Var(&timeSpeed, "time-speed", 1, "Time-speed multiplier, snapped to a power of two (1/65536 .. 65536)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}

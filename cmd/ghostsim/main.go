// Command ghostsim runs the movement simulation headlessly. A tengo script
// drives the player and every observable state change is printed as a trace.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/milk9111/ghostrun/ecs"
	"github.com/milk9111/ghostrun/logging"
	"github.com/milk9111/ghostrun/prefabs"
	"github.com/milk9111/ghostrun/script"
	"github.com/milk9111/ghostrun/sim"
)

type options struct {
	player     string
	level      string
	script     string
	ticks      int
	dt         float64
	traceEvery int
	logLevel   string
	logFormat  string
}

func main() {
	var opts options
	flag.StringVar(&opts.player, "player", "player.yaml", "player prefab (prefabs/ name or path)")
	flag.StringVar(&opts.level, "level", "level_training.yaml", "level prefab (prefabs/ name or path)")
	flag.StringVar(&opts.script, "script", "dash_demo.tengo", "input script (prefabs/scripts/ name or path)")
	flag.IntVar(&opts.ticks, "ticks", 1200, "stop after this many ticks if the script has not finished")
	flag.Float64Var(&opts.dt, "dt", sim.DefaultDT, "fixed tick length in seconds")
	flag.IntVar(&opts.traceEvery, "every", 0, "also print the player pose every N ticks (0 disables)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&opts.logFormat, "log-format", "console", "console, text or json")
	flag.Parse()

	if err := logging.Init(logging.Config{Level: opts.logLevel, Format: opts.logFormat}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts, os.Stdout); err != nil {
		slog.Error("ghostsim failed", "err", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	log := logging.L()

	player, err := prefabs.LoadPlayerSpec(opts.player)
	if err != nil {
		return err
	}
	level, err := prefabs.LoadLevelSpec(opts.level)
	if err != nil {
		return err
	}

	world, err := sim.NewWorld(sim.Options{Player: player, Level: level, DT: opts.dt, Logger: log})
	if err != nil {
		return err
	}

	driver, err := script.Load(opts.script, world.State, script.WithLogger(log))
	if err != nil {
		return err
	}
	world.SetInput(driver)

	// The trace observer runs last in every tick.
	world.Scheduler.Add(ecs.SystemFunc(func(w *ecs.World) {
		clock := world.Clock()
		for _, evt := range w.Events().Drain() {
			printEvent(out, clock.Tick, clock.Elapsed, evt)
		}
		if opts.traceEvery > 0 && clock.Tick%uint64(opts.traceEvery) == 0 {
			printPose(out, clock.Tick, clock.Elapsed, world.State())
		}
	}))

	for i := 0; i < opts.ticks && !driver.Done(); i++ {
		world.Step()
	}

	if err := driver.Err(); err != nil {
		return fmt.Errorf("script %s: %w", driver.Name(), err)
	}
	final := world.State()
	log.Info("simulation finished", "ticks", world.Clock().Tick, "script_done", driver.Done(),
		"y", final.Position.Y, "z", final.Position.Z)
	return nil
}

func printEvent(out io.Writer, tick uint64, t float64, evt ecs.Event) {
	if evt.Data == nil {
		fmt.Fprintf(out, "%6d %8.3fs %-16s %s\n", tick, t, evt.Type, evt.Entity)
		return
	}
	fmt.Fprintf(out, "%6d %8.3fs %-16s %s %v\n", tick, t, evt.Type, evt.Entity, evt.Data)
}

func printPose(out io.Writer, tick uint64, t float64, st script.State) {
	fmt.Fprintf(out, "%6d %8.3fs %-16s y=%.1f z=%.1f vy=%.1f vz=%.1f yaw=%.0f\n",
		tick, t, "pose", st.Position.Y, st.Position.Z, st.Velocity.Y, st.Velocity.Z, st.Yaw)
}

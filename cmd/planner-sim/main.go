// planner-sim replays a scenario over simulated time: on every tick it
// propagates terminal motion, rebuilds the power-control problem from the
// link geometry, and re-solves it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/power-planner/core"
	"github.com/signalsfoundry/power-planner/internal/logging"
	"github.com/signalsfoundry/power-planner/kb"
	"github.com/signalsfoundry/power-planner/timectrl"
)

func main() {
	scenarioPath := flag.String("scenario", "configs/scenario_leo.json", "Path to a JSON scenario")
	duration := flag.Duration("duration", 60*time.Second, "total simulation duration")
	tick := flag.Duration("tick", 10*time.Second, "tick interval")
	accelerated := flag.Bool("accelerated", true, "run in accelerated mode (vs real-time)")
	flag.Parse()

	log := logging.NewFromEnv()

	f, err := os.Open(*scenarioPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "planner-sim: %v\n", err)
		os.Exit(1)
	}
	scenario, err := core.LoadScenario(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "planner-sim: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded scenario: %d terminals, %d pairs, SINR floor %.3f\n",
		len(scenario.Terminals), len(scenario.Pairs), scenario.SINRMin)

	store := kb.NewPlanStore()
	planner := core.NewPlanner(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mode := timectrl.RealTime
	if *accelerated {
		mode = timectrl.Accelerated
	}
	start := time.Now().UTC()
	tc := timectrl.NewTimeController(start, *tick, mode)

	tc.AddListener(func(simTime time.Time) {
		positions := scenario.PositionsAt(simTime)

		p, err := scenario.BuildProblem(positions)
		if err != nil {
			fmt.Printf("[%s] problem build failed: %v\n", simTime.Format(time.RFC3339), err)
			return
		}
		if err := store.PutProblem("current", p); err != nil {
			fmt.Printf("[%s] store failed: %v\n", simTime.Format(time.RFC3339), err)
			return
		}

		alloc, err := planner.Solve(ctx, p)
		if err != nil {
			if errors.Is(err, core.ErrInfeasible) {
				fmt.Printf("[%s] no feasible allocation at current geometry\n", simTime.Format(time.RFC3339))
			} else {
				fmt.Printf("[%s] solve failed: %v\n", simTime.Format(time.RFC3339), err)
			}
			return
		}
		if err := store.SetAllocation("current", alloc); err != nil {
			fmt.Printf("[%s] allocation store failed: %v\n", simTime.Format(time.RFC3339), err)
			return
		}

		fmt.Printf("[%s] total power %.4f W\n", simTime.Format(time.RFC3339), alloc.TotalPower)
		for i, pair := range scenario.Pairs {
			fmt.Printf("↳ %-16s [%s → %s] power=%8.4f W sinr=%7.3f\n",
				pair.ID, pair.TxID, pair.RxID,
				alloc.Powers[i], 1/alloc.Diagnostics.InverseSINR[i])
		}
	})

	fmt.Printf("Starting replanning loop: duration=%s, tick=%s, mode=%v\n", *duration, *tick, mode)
	tc.Run(ctx, *duration)
	fmt.Println("Simulation complete.")
}

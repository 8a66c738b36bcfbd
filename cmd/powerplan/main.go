// powerplan solves a single power-control problem from a JSON file and
// prints the resulting allocation.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/signalsfoundry/power-planner/core"
	"github.com/signalsfoundry/power-planner/internal/logging"
)

func main() {
	problemPath := flag.String("problem", "configs/problem_example.json", "Path to a JSON problem instance")
	maxIter := flag.Int("max-iter", 0, "Solver iteration limit (0 = default)")
	verbose := flag.Bool("verbose", false, "Print solver progress")
	asJSON := flag.Bool("json", false, "Print the allocation as JSON instead of a table")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	f, err := os.Open(*problemPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "powerplan: %v\n", err)
		os.Exit(1)
	}
	p, err := core.LoadProblem(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "powerplan: %v\n", err)
		os.Exit(1)
	}

	planner := core.NewPlanner(log)
	planner.Options = core.SolveOptions{MaxIter: *maxIter, ShowProgress: *verbose}

	alloc, err := planner.Solve(ctx, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "powerplan: %v\n", err)
		switch {
		case errors.Is(err, core.ErrInfeasible):
			os.Exit(2)
		case errors.Is(err, core.ErrNumericalFailure):
			os.Exit(3)
		default:
			os.Exit(1)
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(alloc); err != nil {
			fmt.Fprintf(os.Stderr, "powerplan: encode: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Total transmit power: %.6f W\n", alloc.TotalPower)
	for i, pw := range alloc.Powers {
		fmt.Printf("  tx %-3d  power=%9.6f W  sinr=%7.4f (floor %.4f)\n",
			i, pw, 1/alloc.Diagnostics.InverseSINR[i], p.SINRMin)
	}
}

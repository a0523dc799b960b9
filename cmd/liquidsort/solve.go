package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pourlab/liquidsort/internal/engine"
	"github.com/pourlab/liquidsort/internal/levels"
	"github.com/pourlab/liquidsort/internal/theme"
)

var flagNoSinks bool

const timeRounding = time.Millisecond

var solveCmd = &cobra.Command{
	Use:   "solve <file>",
	Short: "Solve a level file and print the optimal move sequence",
	Long: `Run the breadth-first solver on a YAML level file and print the
minimum move sequence to a win state.

Examples:
  liquidsort solve levels/level-0007.yaml
  liquidsort solve levels/level-0150.yaml --no-sinks`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagNoSinks, "no-sinks", false,
		"Forbid pouring into sink bottles")
}

func runSolve(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	lvl, err := levels.NewLoader(".").LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Level %s\n", lvl.ID)
	fmt.Printf("  %s\n\n", theme.RenderState(lvl.State))

	res := engine.SolveWithPath(lvl.State,
		cfg.Generator.SolverMaxNodes, cfg.Generator.SolverMaxMillis, !flagNoSinks)

	if !res.Solved() {
		if res.Exhausted {
			fmt.Printf("No solution found within the search budget (%d nodes expanded).\n",
				res.NodesExpanded)
			fmt.Println("Raise the solver budgets in the engine config and retry.")
			os.Exit(1)
		}
		fmt.Printf("Proven unsolvable: the full reachable space (%d nodes) holds no win state.\n",
			res.NodesExpanded)
		os.Exit(1)
	}

	fmt.Printf("Optimal solution: %d moves (%d nodes, %s)\n\n",
		res.OptimalMoves, res.NodesExpanded, res.Elapsed.Round(timeRounding))

	replay := lvl.State.Clone()
	for i, m := range res.Path {
		replay.TryApplyMove(m.Source, m.Target)
		fmt.Printf("  %2d. %-7s %s\n", i+1, m.String(), theme.RenderState(replay))
	}

	if lvl.State.OptimalMoves > 0 && lvl.State.OptimalMoves != res.OptimalMoves {
		fmt.Printf("\nNote: file claims optimal %d, solver found %d.\n",
			lvl.State.OptimalMoves, res.OptimalMoves)
	}
}

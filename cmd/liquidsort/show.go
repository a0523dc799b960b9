package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pourlab/liquidsort/internal/engine"
	"github.com/pourlab/liquidsort/internal/levels"
	"github.com/pourlab/liquidsort/internal/storage"
	"github.com/pourlab/liquidsort/internal/theme"
)

var showCmd = &cobra.Command{
	Use:   "show <level|file>",
	Short: "Display a level's bottles and profile",
	Long: `Display a level. A numeric argument looks the level up in the
database (generating it if missing); a path argument loads a YAML
level file.

Examples:
  liquidsort show 7
  liquidsort show levels/level-0007.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	lvl, fromFile := resolveShowTarget(args[0])

	state := lvl.State
	th := theme.ByID(state.BackgroundPaletteIndex)

	fmt.Println(th.Accent.Render(fmt.Sprintf("%s  (%s)", lvl.ID, th.Name)))
	fmt.Printf("  %s\n\n", theme.RenderState(state))

	sinks := 0
	for i := range state.Bottles {
		if state.Bottles[i].IsSink() {
			sinks++
		}
	}

	if state.LevelIndex > 0 {
		profile := engine.NewLevelDifficultyEngine().GetProfile(state.LevelIndex)
		fmt.Printf("  Band:            %s\n", profile.Band)
		fmt.Printf("  Rating:          %d\n", profile.DifficultyRating)
		if profile.SinkRequired && sinks > 0 {
			fmt.Printf("  Sinks:           %d (required for the win)\n", sinks)
		} else {
			fmt.Printf("  Sinks:           %d\n", sinks)
		}
	} else if sinks > 0 {
		fmt.Printf("  Sinks:           %d\n", sinks)
	}
	fmt.Printf("  Bottles:         %d\n", len(state.Bottles))
	fmt.Printf("  Optimal moves:   %d\n", state.OptimalMoves)
	fmt.Printf("  Allowed moves:   %d\n", state.MovesAllowed)
	if state.Seed != 0 {
		fmt.Printf("  Seed:            %d\n", state.Seed)
	}
	if len(lvl.Solution) > 0 {
		fmt.Printf("  Solution:        %d moves on file\n", len(lvl.Solution))
	}
	if fromFile {
		fmt.Printf("  File:            %s\n", lvl.FilePath)
	}
}

// resolveShowTarget loads the level from the database (numeric) or from
// a YAML file (path). The second return value reports the file case.
func resolveShowTarget(arg string) (levels.Level, bool) {
	if level, err := strconv.Atoi(arg); err == nil {
		if level < 1 {
			fmt.Fprintf(os.Stderr, "Error: invalid level %d\n", level)
			os.Exit(1)
		}

		cfg := loadConfig()
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		lvl, err := loadOrGenerate(store, engine.NewLevelDifficultyEngine(),
			engine.NewLevelGenerator(cfg.GeneratorParams()),
			cfg.Generator.SolverMaxNodes, cfg.Generator.SolverMaxMillis, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return lvl, false
	}

	lvl, err := levels.NewLoader(".").LoadFile(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return lvl, true
}

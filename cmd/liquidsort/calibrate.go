package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pourlab/liquidsort/internal/engine"
	"github.com/pourlab/liquidsort/internal/storage"
)

var flagMaxPlateau int

var calibrateCmd = &cobra.Command{
	Use:   "calibrate <from> <to>",
	Short: "Generate a level range and fit the monotonic difficulty curve",
	Long: `Generate every level in the range, collect raw complexity scores, and
fit them to a monotonic 1-100 difficulty rating curve. The curve is
validated for monotonicity and plateau length and stored in the
database.

Examples:
  liquidsort calibrate 1 100
  liquidsort calibrate 1 500 --seed 42 --max-plateau 8`,
	Args: cobra.ExactArgs(2),
	Run:  runCalibrate,
}

func init() {
	calibrateCmd.Flags().IntVar(&flagMaxPlateau, "max-plateau", 10,
		"Longest acceptable run of identical ratings")
}

var (
	calibrateHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	calibrateOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	calibrateWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func runCalibrate(cmd *cobra.Command, args []string) {
	logger := newLogger()

	from, err := strconv.Atoi(args[0])
	if err != nil || from < 1 {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}
	to, err := strconv.Atoi(args[1])
	if err != nil || to < from {
		fmt.Fprintf(os.Stderr, "Error: invalid level range %s..%s\n", args[0], args[1])
		os.Exit(1)
	}

	cfg := loadConfig()
	difficulty := engine.NewLevelDifficultyEngine()
	generator := engine.NewLevelGenerator(cfg.GeneratorParams())

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("calibration sweep starting", "from", from, "to", to, "seed", flagSeed)
	generated, err := generator.GenerateRange(difficulty, from, to, flagSeed)
	for _, lv := range generated {
		if _, saveErr := store.SaveReport(lv.Report); saveErr != nil {
			logger.Warn("could not save generation report",
				"level", lv.State.LevelIndex, "error", saveErr)
		}
	}
	if err != nil {
		logger.Error("calibration sweep aborted", "generated", len(generated), "error", err)
		os.Exit(1)
	}

	curve := make([]engine.LevelComplexity, len(generated))
	for i, lv := range generated {
		curve[i] = engine.LevelComplexity{
			LevelIndex:    lv.State.LevelIndex,
			RawComplexity: lv.Report.RawComplexity,
		}
	}

	mapper := engine.NewMonotonicDifficultyMapper()
	rated := mapper.MapToDifficulty(curve)

	if err := store.SaveRatings(curve, rated); err != nil {
		logger.Error("could not save ratings", "error", err)
		os.Exit(1)
	}

	fmt.Println(calibrateHeaderStyle.Render(
		fmt.Sprintf("Calibrated levels %d..%d", from, to)))
	fmt.Println()
	fmt.Printf("  %-6s  %-4s  %-14s  %-7s  %s\n", "Level", "Band", "RawComplexity", "Rating", "Optimal")
	for i, r := range rated {
		profile := difficulty.GetProfile(r.LevelIndex)
		fmt.Printf("  %-6d  %-4s  %-14.2f  %-7d  %d\n",
			r.LevelIndex, profile.Band, curve[i].RawComplexity, r.Rating,
			generated[i].State.OptimalMoves)
	}
	fmt.Println()

	if ok, violations := mapper.ValidateMonotonicity(rated); !ok {
		fmt.Println(calibrateWarnStyle.Render(
			fmt.Sprintf("Monotonicity check FAILED: %d violations", len(violations))))
		for _, v := range violations {
			fmt.Printf("  level %d: rating %d after %d\n",
				rated[v.Index].LevelIndex, v.Curr, v.Prev)
		}
		os.Exit(1)
	}
	fmt.Println(calibrateOKStyle.Render("Monotonicity check passed"))

	if plateaus := mapper.ValidateLinearity(rated, flagMaxPlateau); len(plateaus) > 0 {
		fmt.Println(calibrateWarnStyle.Render(
			fmt.Sprintf("Linearity check: %d plateaus longer than %d levels", len(plateaus), flagMaxPlateau)))
		for _, p := range plateaus {
			fmt.Printf("  levels %d..%d stuck at rating %d\n",
				rated[p.StartIndex].LevelIndex,
				rated[p.StartIndex+p.Length-1].LevelIndex,
				p.Rating)
		}
	} else {
		fmt.Println(calibrateOKStyle.Render("Linearity check passed"))
	}

	logger.Info("calibration complete", "levels", len(rated))
}

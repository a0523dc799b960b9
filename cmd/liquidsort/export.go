package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pourlab/liquidsort/internal/engine"
	"github.com/pourlab/liquidsort/internal/levels"
	"github.com/pourlab/liquidsort/internal/storage"
)

var flagOutDir string

var exportCmd = &cobra.Command{
	Use:   "export <from> <to>",
	Short: "Export stored levels to YAML files",
	Long: `Write stored levels as YAML files, one file per level. Levels missing
from the database are generated first with the configured pipeline.

Examples:
  liquidsort export 1 20
  liquidsort export 1 50 --out ./levels`,
	Args: cobra.ExactArgs(2),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagOutDir, "out", "./levels", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) {
	logger := newLogger()
	from, to := parseLevelRange(args)

	cfg := loadConfig()
	difficulty := engine.NewLevelDifficultyEngine()
	generator := engine.NewLevelGenerator(cfg.GeneratorParams())

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	exported := 0
	for level := from; level <= to; level++ {
		lvl, err := loadOrGenerate(store, difficulty, generator, cfg.Generator.SolverMaxNodes,
			cfg.Generator.SolverMaxMillis, level)
		if err != nil {
			logger.Error("export failed", "level", level, "error", err)
			os.Exit(1)
		}

		path := filepath.Join(flagOutDir, lvl.ID+".yaml")
		if err := levels.WriteFile(path, lvl); err != nil {
			logger.Error("could not write level file", "level", level, "error", err)
			os.Exit(1)
		}
		logger.Debug("level exported", "level", level, "path", path)
		exported++
	}

	logger.Info("export complete", "levels", exported, "dir", flagOutDir)
}

// loadOrGenerate fetches a stored level or generates and stores it.
func loadOrGenerate(store *storage.Store, difficulty *engine.LevelDifficultyEngine,
	generator *engine.LevelGenerator, maxNodes int, maxMillis int64, level int) (levels.Level, error) {

	if stored, err := store.LevelByIndex(level); err != nil {
		return levels.Level{}, err
	} else if stored != nil {
		return stored.Parse()
	}

	profile := difficulty.GetProfile(level)
	seed := engine.DeriveLevelSeed(flagSeed, level)
	state, err := generator.Generate(seed, profile)
	if err != nil {
		return levels.Level{}, err
	}

	solution := engine.SolveWithPath(state, maxNodes, maxMillis, true)
	lvl := levels.Level{
		ID:       levels.LevelID(level),
		Name:     fmt.Sprintf("Level %d", level),
		State:    state,
		Solution: solution.Path,
	}
	if _, err := store.SaveLevel(lvl, profile.Band); err != nil {
		return levels.Level{}, err
	}
	return lvl, nil
}

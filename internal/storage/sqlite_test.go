package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pourlab/liquidsort/internal/engine"
	"github.com/pourlab/liquidsort/internal/levels"
)

func testLevel(levelIndex int, seed uint64) levels.Level {
	state := engine.NewLevelState([]engine.Bottle{
		engine.NewFilledBottle(4, engine.ColorRed, engine.ColorRed, engine.ColorBlue, engine.ColorBlue),
		engine.NewFilledBottle(4, engine.ColorBlue, engine.ColorBlue, engine.ColorRed, engine.ColorRed),
		engine.NewBottle(4),
	})
	state.LevelIndex = levelIndex
	state.Seed = seed
	state.OptimalMoves = 3
	state.MovesAllowed = 6
	state.ScrambleMoves = 8
	return levels.Level{ID: levels.LevelID(levelIndex), State: state}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveLevel(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	lvl := testLevel(3, 12345)
	if _, err := store.SaveLevel(lvl, engine.BandA); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}

	got, err := store.LevelByIndex(3)
	if err != nil {
		t.Fatalf("LevelByIndex() failed: %v", err)
	}
	if got == nil {
		t.Fatal("stored level not found")
	}
	if got.LevelID != "level-0003" {
		t.Errorf("level ID = %s, want level-0003", got.LevelID)
	}
	if got.Seed != 12345 {
		t.Errorf("seed = %d, want 12345", got.Seed)
	}
	if got.Band != "A" {
		t.Errorf("band = %s, want A", got.Band)
	}
	if got.OptimalMoves != 3 || got.MovesAllowed != 6 || got.ScrambleMoves != 8 {
		t.Errorf("move accounting wrong: %+v", got)
	}

	parsed, err := got.Parse()
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if engine.EncodeCanonical(parsed.State) != engine.EncodeCanonical(lvl.State) {
		t.Error("bottle configuration did not survive storage round trip")
	}
}

func TestStoreSaveLevelReplaces(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveLevel(testLevel(3, 111), engine.BandA)
	store.SaveLevel(testLevel(3, 222), engine.BandA)

	got, err := store.LevelByIndex(3)
	if err != nil {
		t.Fatalf("LevelByIndex() failed: %v", err)
	}
	if got == nil || got.Seed != 222 {
		t.Errorf("regenerated level should replace the old row, got %+v", got)
	}
}

func TestStoreLevelByIndexMissing(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	got, err := store.LevelByIndex(999)
	if err != nil {
		t.Fatalf("LevelByIndex() failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing level, got %+v", got)
	}
}

func TestStoreLevelsByBand(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveLevel(testLevel(5, 1), engine.BandA)
	store.SaveLevel(testLevel(2, 2), engine.BandA)
	store.SaveLevel(testLevel(30, 3), engine.BandB)

	bandA, err := store.LevelsByBand(engine.BandA)
	if err != nil {
		t.Fatalf("LevelsByBand() failed: %v", err)
	}
	if len(bandA) != 2 {
		t.Fatalf("expected 2 band A levels, got %d", len(bandA))
	}
	if bandA[0].LevelIndex != 2 || bandA[1].LevelIndex != 5 {
		t.Errorf("levels not ordered by index: %d, %d", bandA[0].LevelIndex, bandA[1].LevelIndex)
	}

	if err := store.ClearLevels(); err != nil {
		t.Fatalf("ClearLevels() failed: %v", err)
	}
	bandA, _ = store.LevelsByBand(engine.BandA)
	if len(bandA) != 0 {
		t.Errorf("expected no levels after clear, got %d", len(bandA))
	}
}

func TestStoreReports(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	report := engine.LevelGenerationReport{
		LevelIndex:    7,
		Seed:          424242,
		Attempts:      3,
		ScrambleMoves: 12,
		OptimalMoves:  6,
		RawComplexity: 31.5,
		Rejections:    []string{"too shallow", "too forced"},
		Elapsed:       150 * time.Millisecond,
		Accepted:      true,
	}
	if _, err := store.SaveReport(report); err != nil {
		t.Fatalf("SaveReport() failed: %v", err)
	}

	entries, err := store.ReportsForLevel(7)
	if err != nil {
		t.Fatalf("ReportsForLevel() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 report, got %d", len(entries))
	}
	e := entries[0]
	if e.Seed != 424242 || e.Attempts != 3 || !e.Accepted {
		t.Errorf("report fields wrong: %+v", e)
	}
	if len(e.Rejections) != 2 || e.Rejections[1] != "too forced" {
		t.Errorf("rejections wrong: %v", e.Rejections)
	}
	if e.ElapsedMillis != 150 {
		t.Errorf("elapsed = %dms, want 150", e.ElapsedMillis)
	}

	stats, err := store.GetGenerationStats()
	if err != nil {
		t.Fatalf("GetGenerationStats() failed: %v", err)
	}
	if stats.Reports != 1 || stats.Accepted != 1 {
		t.Errorf("stats wrong: %+v", stats)
	}
}

func TestStoreRatings(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	curve := []engine.LevelComplexity{{LevelIndex: 1, RawComplexity: 10}, {LevelIndex: 2, RawComplexity: 20}}
	rated := []engine.RatedLevel{{LevelIndex: 1, Rating: 1}, {LevelIndex: 2, Rating: 100}}
	if err := store.SaveRatings(curve, rated); err != nil {
		t.Fatalf("SaveRatings() failed: %v", err)
	}

	got, err := store.Ratings()
	if err != nil {
		t.Fatalf("Ratings() failed: %v", err)
	}
	if len(got) != 2 || got[0].Rating != 1 || got[1].Rating != 100 {
		t.Errorf("ratings wrong: %v", got)
	}

	// A second calibration replaces the curve.
	rated[1].Rating = 50
	if err := store.SaveRatings(curve, rated); err != nil {
		t.Fatalf("second SaveRatings() failed: %v", err)
	}
	got, _ = store.Ratings()
	if len(got) != 2 || got[1].Rating != 50 {
		t.Errorf("recalibration did not replace ratings: %v", got)
	}

	// Mismatched inputs are rejected.
	if err := store.SaveRatings(curve[:1], rated); err == nil {
		t.Error("mismatched curve/rating lengths should fail")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

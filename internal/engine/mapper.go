package engine

import (
	"fmt"
	"math"
)

// LevelComplexity pairs a level index with its raw complexity score.
type LevelComplexity struct {
	LevelIndex    int
	RawComplexity float64
}

// RatedLevel is the mapper output for one level.
type RatedLevel struct {
	LevelIndex int
	Rating     int
}

// MonotonicityViolation reports a rating that decreased between
// consecutive levels.
type MonotonicityViolation struct {
	Index      int // position in the rated sequence
	LevelIndex int
	Prev       int
	Curr       int
}

func (v MonotonicityViolation) String() string {
	return fmt.Sprintf("level %d: rating %d after %d", v.LevelIndex, v.Curr, v.Prev)
}

// Plateau reports a run of consecutive levels sharing one rating.
type Plateau struct {
	StartIndex int // position in the rated sequence
	Length     int
	Rating     int
}

// MonotonicDifficultyMapper rescales raw complexity scores into a
// display rating that is non-decreasing in level index and spans close
// to the full rating range. It is a post-hoc, cross-level pass over an
// already generated curve, not a runtime component.
type MonotonicDifficultyMapper struct {
	MinRating int
	MaxRating int
}

// NewMonotonicDifficultyMapper returns a mapper targeting the 1-100 range.
func NewMonotonicDifficultyMapper() *MonotonicDifficultyMapper {
	return &MonotonicDifficultyMapper{MinRating: 1, MaxRating: 100}
}

// MapToDifficulty maps (levelIndex, rawComplexity) pairs, already in
// level order, to integer ratings. Raw scores are first forced monotone
// with a running maximum (a later easy outlier never lowers the curve),
// then min-max rescaled onto [MinRating, MaxRating].
func (mm *MonotonicDifficultyMapper) MapToDifficulty(levels []LevelComplexity) []RatedLevel {
	if len(levels) == 0 {
		return nil
	}

	running := make([]float64, len(levels))
	peak := levels[0].RawComplexity
	for i, lv := range levels {
		if lv.RawComplexity > peak {
			peak = lv.RawComplexity
		}
		running[i] = peak
	}

	lo, hi := running[0], running[len(running)-1]
	span := hi - lo
	out := make([]RatedLevel, len(levels))
	for i, lv := range levels {
		rating := mm.MinRating
		if span > 0 {
			scale := float64(mm.MaxRating-mm.MinRating) / span
			rating = mm.MinRating + int(math.Round((running[i]-lo)*scale))
		}
		out[i] = RatedLevel{LevelIndex: lv.LevelIndex, Rating: rating}
	}
	return out
}

// ValidateMonotonicity checks a rated curve. Returns true and nil for a
// clean curve; otherwise false and every violation, first one first.
func (mm *MonotonicDifficultyMapper) ValidateMonotonicity(rated []RatedLevel) (bool, []MonotonicityViolation) {
	var violations []MonotonicityViolation
	for i := 1; i < len(rated); i++ {
		if rated[i].Rating < rated[i-1].Rating {
			violations = append(violations, MonotonicityViolation{
				Index:      i,
				LevelIndex: rated[i].LevelIndex,
				Prev:       rated[i-1].Rating,
				Curr:       rated[i].Rating,
			})
		}
	}
	return len(violations) == 0, violations
}

// ValidateLinearity flags plateaus longer than maxPlateau consecutive
// levels. A long plateau means the curve stopped discriminating and the
// generation sweep should be re-tuned; it is an acceptance check, not a
// runtime requirement.
func (mm *MonotonicDifficultyMapper) ValidateLinearity(rated []RatedLevel, maxPlateau int) []Plateau {
	if maxPlateau < 1 || len(rated) == 0 {
		return nil
	}
	var plateaus []Plateau
	start := 0
	for i := 1; i <= len(rated); i++ {
		if i < len(rated) && rated[i].Rating == rated[start].Rating {
			continue
		}
		if length := i - start; length > maxPlateau {
			plateaus = append(plateaus, Plateau{
				StartIndex: start,
				Length:     length,
				Rating:     rated[start].Rating,
			})
		}
		start = i
	}
	return plateaus
}

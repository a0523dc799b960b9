package engine

import (
	"fmt"
	"math"
)

// ComplexityScorer turns a metric bundle and the optimal move count into
// a scalar raw-complexity score. The formula is a deterministic weighted
// combination with no dependency on the caller's claimed level index;
// ValidateIndependence exists to catch accidental leakage of level-index
// correlation into the formula.
type ComplexityScorer struct {
	OptimalWeight    float64
	BranchingWeight  float64
	DecisionWeight   float64
	TrapWeight       float64
	MixedWeight      float64
	VarietyWeight    float64
	EmptyUsageWeight float64
	ScarcityWeight   float64 // rewards having few optimal solutions
}

// NewComplexityScorer returns a scorer with the calibrated default weights.
func NewComplexityScorer() *ComplexityScorer {
	return &ComplexityScorer{
		OptimalWeight:    1.2,
		BranchingWeight:  4.0,
		DecisionWeight:   1.5,
		TrapWeight:       12.0,
		MixedWeight:      2.0,
		VarietyWeight:    1.0,
		EmptyUsageWeight: 3.0,
		ScarcityWeight:   8.0,
	}
}

// ComputeRawComplexity returns the scalar difficulty score for one level.
func (cs *ComplexityScorer) ComputeRawComplexity(m LevelMetrics, optimalMoves int) float64 {
	if optimalMoves < 0 {
		return 0
	}
	scarcity := cs.ScarcityWeight / float64(1+m.SolutionMultiplicity)
	return cs.OptimalWeight*float64(optimalMoves) +
		cs.BranchingWeight*m.AverageBranchingFactor +
		cs.DecisionWeight*float64(m.DecisionDepth) +
		cs.TrapWeight*m.TrapScore +
		cs.MixedWeight*float64(m.MixedBottleCount) +
		cs.VarietyWeight*float64(m.TopColorVariety) +
		cs.EmptyUsageWeight*m.EmptyBottleUsageRatio +
		scarcity
}

// ScoreSample pairs a metric bundle with the level index it was claimed
// for, for independence validation.
type ScoreSample struct {
	LevelIndex   int
	OptimalMoves int
	Metrics      LevelMetrics
}

// ValidateIndependence verifies that samples with identical metrics and
// optimal move count score identically regardless of their level index.
func (cs *ComplexityScorer) ValidateIndependence(samples []ScoreSample) error {
	type key struct {
		metrics LevelMetrics
		optimal int
	}
	seen := make(map[key]float64, len(samples))
	for _, sample := range samples {
		score := cs.ComputeRawComplexity(sample.Metrics, sample.OptimalMoves)
		k := key{metrics: sample.Metrics, optimal: sample.OptimalMoves}
		if prev, ok := seen[k]; ok {
			if math.Abs(prev-score) > 1e-12 {
				return fmt.Errorf(
					"scorer leaks level index: identical inputs scored %.6f and %.6f (level %d)",
					prev, score, sample.LevelIndex)
			}
			continue
		}
		seen[k] = score
	}
	return nil
}

// QualityThresholds is a per-band acceptance gate over derived metrics.
// A zero value for any bound disables that bound.
type QualityThresholds struct {
	Band                    Band
	MinOptimalMoves         int
	MinDecisionDepth        int
	MinMixedBottles         int
	MaxForcedMoveRatio      float64
	MaxSolutionMultiplicity int
	MinRawComplexity        float64
	MaxRawComplexity        float64
}

// ForBand returns the default acceptance thresholds for a band.
func ForBand(b Band) QualityThresholds {
	switch b {
	case BandA:
		return QualityThresholds{Band: b, MinOptimalMoves: 4, MinMixedBottles: 1}
	case BandB:
		return QualityThresholds{Band: b, MinOptimalMoves: 6, MinDecisionDepth: 2, MinMixedBottles: 2}
	case BandC:
		return QualityThresholds{Band: b, MinOptimalMoves: 8, MinDecisionDepth: 3, MinMixedBottles: 3, MaxForcedMoveRatio: 0.9}
	case BandD:
		return QualityThresholds{Band: b, MinOptimalMoves: 10, MinDecisionDepth: 4, MinMixedBottles: 3, MaxForcedMoveRatio: 0.85}
	default:
		return QualityThresholds{Band: b, MinOptimalMoves: 11, MinDecisionDepth: 5, MinMixedBottles: 4, MaxForcedMoveRatio: 0.85}
	}
}

// Passes evaluates the gate. On rejection the reason names the failed
// bound; the generator records it and retries with a re-derived seed.
func (qt QualityThresholds) Passes(m LevelMetrics, optimalMoves int, rawComplexity float64) (bool, string) {
	if qt.MinOptimalMoves > 0 && optimalMoves < qt.MinOptimalMoves {
		return false, fmt.Sprintf("optimal moves %d below band %s minimum %d",
			optimalMoves, qt.Band, qt.MinOptimalMoves)
	}
	if qt.MinDecisionDepth > 0 && m.DecisionDepth < qt.MinDecisionDepth {
		return false, fmt.Sprintf("decision depth %d below band %s minimum %d",
			m.DecisionDepth, qt.Band, qt.MinDecisionDepth)
	}
	if qt.MinMixedBottles > 0 && m.MixedBottleCount < qt.MinMixedBottles {
		return false, fmt.Sprintf("mixed bottle count %d below band %s minimum %d",
			m.MixedBottleCount, qt.Band, qt.MinMixedBottles)
	}
	if qt.MaxForcedMoveRatio > 0 && m.ForcedMoveRatio > qt.MaxForcedMoveRatio {
		return false, fmt.Sprintf("forced move ratio %.2f above band %s maximum %.2f",
			m.ForcedMoveRatio, qt.Band, qt.MaxForcedMoveRatio)
	}
	if qt.MaxSolutionMultiplicity > 0 && m.SolutionMultiplicity > qt.MaxSolutionMultiplicity {
		return false, fmt.Sprintf("solution multiplicity %d above band %s maximum %d",
			m.SolutionMultiplicity, qt.Band, qt.MaxSolutionMultiplicity)
	}
	if qt.MinRawComplexity > 0 && rawComplexity < qt.MinRawComplexity {
		return false, fmt.Sprintf("raw complexity %.2f below band %s minimum %.2f",
			rawComplexity, qt.Band, qt.MinRawComplexity)
	}
	if qt.MaxRawComplexity > 0 && rawComplexity > qt.MaxRawComplexity {
		return false, fmt.Sprintf("raw complexity %.2f above band %s maximum %.2f",
			rawComplexity, qt.Band, qt.MaxRawComplexity)
	}
	return true, ""
}

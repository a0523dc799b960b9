package engine

import "fmt"

// LevelMetrics is an immutable bundle of structural and path-based
// difficulty signals derived from a scrambled level and its optimal
// solution path. Produced once per generation attempt; consumed by
// scoring and gating, never mutated.
type LevelMetrics struct {
	ForcedMoveRatio        float64 // fraction of path steps with exactly one legal move
	AverageBranchingFactor float64 // mean legal-move count along the path
	DecisionDepth          int     // path steps offering two or more legal moves
	EmptyBottleUsageRatio  float64 // fraction of path moves targeting an empty bottle
	TrapScore              float64 // fraction of sampled alternatives that lose the optimum
	SolutionMultiplicity   int     // distinct optimal solutions, capped
	MixedBottleCount       int     // initial bottles holding more than one color
	DistinctSignatureCount int     // distinct bottle content signatures in the initial state
	TopColorVariety        int     // distinct top colors in the initial state
}

// MetricsComputer derives LevelMetrics from a solved level. Trap scoring
// re-solves sampled alternative branches, so the computer carries its
// own solver budgets.
type MetricsComputer struct {
	SolverMaxNodes    int
	SolverMaxMillis   int64
	TrapSampleLimit   int
	MultiplicityLimit int
}

// NewMetricsComputer returns a computer with budgets suitable for the
// generation pipeline.
func NewMetricsComputer() *MetricsComputer {
	return &MetricsComputer{
		SolverMaxNodes:    60000,
		SolverMaxMillis:   1500,
		TrapSampleLimit:   12,
		MultiplicityLimit: 32,
	}
}

// Compute replays the optimal path over a copy of the initial state and
// gathers the metric bundle. The path must be legal from the initial
// state; an illegal step is a structural error, not a metric.
func (mc *MetricsComputer) Compute(initial *LevelState, path []Move, allowSinkMoves bool) (LevelMetrics, error) {
	m := LevelMetrics{}
	mc.computeStructural(initial, &m)

	if len(path) == 0 {
		return m, nil
	}

	state := initial.Clone()
	branchSum := 0
	forced := 0
	emptyTargets := 0
	trapsSampled := 0
	trapsLosing := 0
	legal := make([]Move, 0, 32)

	for step, mv := range path {
		legal = LegalMoves(state, allowSinkMoves, legal[:0])
		branchSum += len(legal)
		if len(legal) == 1 {
			forced++
		} else if len(legal) >= 2 {
			m.DecisionDepth++
			remaining := len(path) - step
			sampled, losing := mc.sampleTraps(state, mv, legal, remaining, allowSinkMoves, trapsSampled)
			trapsSampled += sampled
			trapsLosing += losing
		}
		if state.Bottles[mv.Target].IsEmpty() {
			emptyTargets++
		}
		applied, _ := state.TryApplyMove(mv.Source, mv.Target)
		if !applied {
			return m, &StructuralError{
				Code:    "ILLEGAL_PATH",
				Message: fmt.Sprintf("path step %d (%s) is not legal", step, mv),
			}
		}
	}

	steps := float64(len(path))
	m.ForcedMoveRatio = float64(forced) / steps
	m.AverageBranchingFactor = float64(branchSum) / steps
	m.EmptyBottleUsageRatio = float64(emptyTargets) / steps
	if trapsSampled > 0 {
		m.TrapScore = float64(trapsLosing) / float64(trapsSampled)
	}
	m.SolutionMultiplicity = CountOptimalSolutions(
		initial, len(path), mc.SolverMaxNodes, mc.MultiplicityLimit, allowSinkMoves)
	return m, nil
}

// sampleTraps probes the alternatives to the chosen move at a decision
// point: an alternative is a trap when it cannot reach a win within the
// remaining optimal depth. Sampling is capped across the whole path.
func (mc *MetricsComputer) sampleTraps(state *LevelState, chosen Move, legal []Move, remaining int, allowSinkMoves bool, alreadySampled int) (sampled, losing int) {
	for _, alt := range legal {
		if alt == chosen {
			continue
		}
		if alreadySampled+sampled >= mc.TrapSampleLimit {
			break
		}
		next := state.Clone()
		amount := PourAmount(next, alt.Source, alt.Target)
		next.Bottles[alt.Source].PourInto(&next.Bottles[alt.Target], amount)

		res := Solve(next, mc.SolverMaxNodes, mc.SolverMaxMillis, allowSinkMoves)
		sampled++
		// The chosen move reaches a win in remaining-1 further moves; an
		// alternative that cannot match that is off the optimal path.
		if !res.Solved() || res.OptimalMoves > remaining-1 {
			losing++
		}
	}
	return sampled, losing
}

func (mc *MetricsComputer) computeStructural(initial *LevelState, m *LevelMetrics) {
	signatures := make(map[string]struct{}, len(initial.Bottles))
	tops := [ColorCount]bool{}
	for i := range initial.Bottles {
		b := &initial.Bottles[i]
		if b.DistinctColors() > 1 {
			m.MixedBottleCount++
		}
		signatures[b.String()] = struct{}{}
		if top, ok := b.TopColor(); ok && !tops[top] {
			tops[top] = true
			m.TopColorVariety++
		}
	}
	m.DistinctSignatureCount = len(signatures)
}

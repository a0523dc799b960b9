package engine

import (
	"fmt"
	"time"
)

// GeneratorParams configures the level generation pipeline.
type GeneratorParams struct {
	MaxAttempts     int   // retry budget per level
	SolverMaxNodes  int   // BFS node budget per solve
	SolverMaxMillis int64 // BFS time budget per solve

	// Thresholds resolves the acceptance gate per band. Defaults to
	// ForBand; the config layer substitutes tuned gates here.
	Thresholds func(Band) QualityThresholds

	// Metrics overrides the metric computation budgets. Nil means
	// defaults with SolverMaxNodes clamped to the solver budget above.
	Metrics *MetricsComputer
}

// DefaultGeneratorParams returns budgets tuned so that first-level
// generation completes well under an interactive time bound.
func DefaultGeneratorParams() GeneratorParams {
	return GeneratorParams{
		MaxAttempts:     24,
		SolverMaxNodes:  200000,
		SolverMaxMillis: 4000,
		Thresholds:      ForBand,
	}
}

// LevelGenerationReport is the write-once audit record of one Generate
// call, exposed for diagnostics and tests.
type LevelGenerationReport struct {
	LevelIndex    int
	Seed          uint64 // seed of the accepted (or last) attempt
	Attempts      int
	ScrambleMoves int // reverse pours actually applied
	OptimalMoves  int
	Metrics       LevelMetrics
	RawComplexity float64
	Rejections    []string // one reason per rejected attempt
	Elapsed       time.Duration
	Accepted      bool
}

// GenerationError reports that no attempt within the budget passed the
// quality gates. Generation fails explicitly; it is never degraded into
// returning a level that missed its gates.
type GenerationError struct {
	LevelIndex int
	Attempts   int
	LastReason string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("level %d: no attempt passed quality gates after %d tries (last: %s)",
		e.LevelIndex, e.Attempts, e.LastReason)
}

// LevelGenerator builds guaranteed-solvable levels with a known optimal
// move count: construct a solved configuration, scramble it with
// invertible reverse pours, re-solve for the true optimum, score the
// result, and retry under a budget until the band's gates pass.
type LevelGenerator struct {
	params     GeneratorParams
	scorer     *ComplexityScorer
	metrics    *MetricsComputer
	lastReport LevelGenerationReport
}

// NewLevelGenerator creates a generator with the given parameters.
func NewLevelGenerator(params GeneratorParams) *LevelGenerator {
	if params.MaxAttempts < 1 {
		params.MaxAttempts = 1
	}
	if params.Thresholds == nil {
		params.Thresholds = ForBand
	}
	mc := params.Metrics
	if mc == nil {
		mc = NewMetricsComputer()
		if params.SolverMaxNodes > 0 && params.SolverMaxNodes < mc.SolverMaxNodes {
			mc.SolverMaxNodes = params.SolverMaxNodes
		}
	}
	return &LevelGenerator{
		params:  params,
		scorer:  NewComplexityScorer(),
		metrics: mc,
	}
}

// LastReport returns the report of the most recent Generate call.
func (g *LevelGenerator) LastReport() LevelGenerationReport {
	return g.lastReport
}

// Generate builds a level for the profile. Repeated calls with identical
// (seed, profile) are bit-identical. On success the returned state
// carries OptimalMoves, MovesAllowed, ScrambleMoves, and the seed of the
// accepted attempt; on failure the error is a *GenerationError and
// LastReport records every rejection reason.
func (g *LevelGenerator) Generate(seed uint64, profile DifficultyProfile) (*LevelState, error) {
	began := time.Now()
	report := LevelGenerationReport{LevelIndex: profile.LevelIndex, Seed: seed}

	for attempt := 0; attempt < g.params.MaxAttempts; attempt++ {
		attemptSeed := seed
		if attempt > 0 {
			attemptSeed = mix64(seed + uint64(attempt)*0x9E3779B97F4A7C15)
		}
		report.Attempts = attempt + 1
		report.Seed = attemptSeed

		state, reason := g.attempt(attemptSeed, profile, &report)
		if state != nil {
			report.Accepted = true
			report.Elapsed = time.Since(began)
			g.lastReport = report
			return state, nil
		}
		report.Rejections = append(report.Rejections, reason)
	}

	report.Elapsed = time.Since(began)
	g.lastReport = report
	last := "no reason recorded"
	if n := len(report.Rejections); n > 0 {
		last = report.Rejections[n-1]
	}
	return nil, &GenerationError{
		LevelIndex: profile.LevelIndex,
		Attempts:   report.Attempts,
		LastReason: last,
	}
}

// attempt runs one construct-scramble-solve-gate cycle. Returns the
// finished state, or nil plus a rejection reason.
func (g *LevelGenerator) attempt(seed uint64, profile DifficultyProfile, report *LevelGenerationReport) (*LevelState, string) {
	rng := NewRNG(seed)

	solved := buildSolvedState(rng, profile)
	if err := solved.Validate(); err != nil {
		// Construction bug, not a retry condition, but surfaced the
		// same way so callers see the reason.
		return nil, fmt.Sprintf("structural invalidity: %v", err)
	}

	scrambled, applied := scramble(solved, profile.ScrambleMoves, rng)
	if scrambled.IsWin() {
		return nil, "degenerate scramble: state is already solved"
	}

	res := SolveWithPath(scrambled, g.params.SolverMaxNodes, g.params.SolverMaxMillis, true)
	if !res.Solved() {
		if res.Exhausted {
			return nil, "solver budget exhausted before reaching a win state"
		}
		// Reverse-pour construction guarantees solvability; proven
		// unsolvability here means the scramble code is broken.
		return nil, "scrambled state proven unsolvable"
	}

	if profile.SinkCount > 0 && profile.SinkRequired {
		noSink := Solve(scrambled, g.params.SolverMaxNodes, g.params.SolverMaxMillis, false)
		if noSink.Solved() {
			return nil, "sink-required level is solvable without sink moves"
		}
		if noSink.Exhausted {
			return nil, "sink-required verification exhausted solver budget"
		}
	}

	metrics, err := g.metrics.Compute(scrambled, res.Path, true)
	if err != nil {
		return nil, fmt.Sprintf("metrics computation failed: %v", err)
	}
	raw := g.scorer.ComputeRawComplexity(metrics, res.OptimalMoves)

	gate := g.params.Thresholds(profile.Band)
	if ok, reason := gate.Passes(metrics, res.OptimalMoves, raw); !ok {
		return nil, reason
	}

	scrambled.LevelIndex = profile.LevelIndex
	scrambled.Seed = seed
	scrambled.ScrambleMoves = applied
	scrambled.OptimalMoves = res.OptimalMoves
	scrambled.MovesAllowed = ComputeMovesAllowed(profile, res.OptimalMoves)
	scrambled.MovesUsed = 0
	scrambled.BackgroundPaletteIndex = profile.ThemeID

	report.ScrambleMoves = applied
	report.OptimalMoves = res.OptimalMoves
	report.Metrics = metrics
	report.RawComplexity = raw
	return scrambled, ""
}

// buildSolvedState constructs a fully solved configuration for the
// profile: ColorCount bottles filled monochrome to capacity plus
// EmptyBottleCount empty bottles, so every color's total volume equals
// exactly one bottle capacity. Sink flags go on empty bottles; a
// sink-required level instead hosts its first sink on a full color
// bottle, which keeps the solved state a legal win while letting the
// scramble drain the sink and force pours back into it. Bottle order is
// shuffled deterministically from the seed.
func buildSolvedState(rng *SimpleRNG, profile DifficultyProfile) *LevelState {
	colors := pickColors(rng, profile.ColorCount)

	bottles := make([]Bottle, 0, profile.BottleCount)
	for _, c := range colors {
		bottles = append(bottles, NewFullBottle(profile.Capacity, c))
	}
	for i := 0; i < profile.EmptyBottleCount; i++ {
		bottles = append(bottles, NewBottle(profile.Capacity))
	}

	sinks := profile.SinkCount
	if sinks > 0 && profile.SinkRequired {
		// One full color bottle becomes the required sink.
		bottles[rng.Intn(profile.ColorCount)].sink = true
		sinks--
	}
	for i := 0; i < sinks; i++ {
		bottles[profile.ColorCount+i].sink = true
	}

	// Shuffle bottle order; position is part of state identity.
	for i := len(bottles) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		bottles[i], bottles[j] = bottles[j], bottles[i]
	}

	return &LevelState{Bottles: bottles}
}

// pickColors selects a deterministic subset of the palette.
func pickColors(rng *SimpleRNG, n int) []Color {
	all := AllColors()
	for i := len(all) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		all[i], all[j] = all[j], all[i]
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// reverseMove is one scramble step: k units of the source's top run are
// moved onto a non-sink receiver.
type reverseMove struct {
	source int
	target int
	amount int
}

// scramble applies up to n invertible reverse pours and returns the
// scrambled state plus the number actually applied. Each reverse pour is
// undone by the forward pour target->source, so the result is solvable
// in at most that many forward moves by construction. Stops early when
// no legal reverse move exists.
func scramble(solved *LevelState, n int, rng *SimpleRNG) (*LevelState, int) {
	state := solved.Clone()
	applied := 0
	candidates := make([]reverseMove, 0, 64)

	for applied < n {
		candidates = reverseMoveCandidates(state, candidates[:0])
		if len(candidates) == 0 {
			break
		}
		mv := candidates[rng.Intn(len(candidates))]
		src := &state.Bottles[mv.source]
		tgt := &state.Bottles[mv.target]
		c, ok := src.takeTop(mv.amount)
		if !ok || !tgt.putTop(c, mv.amount) {
			break
		}
		applied++
	}
	return state, applied
}

// reverseMoveCandidates enumerates every invertible reverse pour. The
// forward pour target->source restores the prior state exactly when:
// the receiver is not a sink (sinks cannot be forward sources), the
// amount fits the receiver, the source keeps its poured color on top or
// empties completely (so the forward pour may land on it), and the
// forward pour cannot overshoot (the receiver's top differs from the
// poured color, or the source was full so its free space caps the pour).
func reverseMoveCandidates(s *LevelState, dst []reverseMove) []reverseMove {
	n := len(s.Bottles)
	for src := 0; src < n; src++ {
		sb := &s.Bottles[src]
		if sb.IsEmpty() {
			continue
		}
		run := sb.TopRunLength()
		top, _ := sb.TopColor()
		srcFull := sb.IsFull()
		for tgt := 0; tgt < n; tgt++ {
			if tgt == src {
				continue
			}
			tb := &s.Bottles[tgt]
			if tb.IsSink() {
				continue
			}
			free := tb.FreeSpace()
			if free == 0 {
				continue
			}
			tgtTop, tgtHasTop := tb.TopColor()
			sameTop := tgtHasTop && tgtTop == top
			maxAmount := run
			if free < maxAmount {
				maxAmount = free
			}
			for k := 1; k <= maxAmount; k++ {
				if k == run && k != sb.Count() {
					// The source would expose a different color and
					// the forward pour could not land on it.
					continue
				}
				if sameTop && !srcFull {
					// The forward pour would drag the receiver's
					// pre-existing run along and overshoot.
					continue
				}
				dst = append(dst, reverseMove{source: src, target: tgt, amount: k})
			}
		}
	}
	return dst
}

// GeneratedLevel pairs a finished level with its generation report.
type GeneratedLevel struct {
	State  *LevelState
	Report LevelGenerationReport
}

// GenerateRange generates every level in [from, to] using per-level
// seeds derived from baseSeed. Used by the calibration pass; levels that
// fail generation abort the sweep.
func (g *LevelGenerator) GenerateRange(difficulty *LevelDifficultyEngine, from, to int, baseSeed uint64) ([]GeneratedLevel, error) {
	if from < 1 {
		from = 1
	}
	if to < from {
		return nil, fmt.Errorf("invalid level range %d..%d", from, to)
	}
	out := make([]GeneratedLevel, 0, to-from+1)
	for level := from; level <= to; level++ {
		profile := difficulty.GetProfile(level)
		seed := DeriveLevelSeed(baseSeed, level)
		state, err := g.Generate(seed, profile)
		if err != nil {
			return out, fmt.Errorf("generate level %d: %w", level, err)
		}
		out = append(out, GeneratedLevel{State: state, Report: g.LastReport()})
	}
	return out, nil
}

// DeriveLevelSeed pins the per-level seed derivation so every consumer
// (generator, CLI, tests) agrees on it.
func DeriveLevelSeed(baseSeed uint64, level int) uint64 {
	return mix64(baseSeed ^ (uint64(level) * 0xBF58476D1CE4E5B9))
}

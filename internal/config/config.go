// Package config provides YAML-based configuration loading for the
// level generation and solving pipeline.
package config

// EngineConfig contains all tunables for the generation pipeline.
type EngineConfig struct {
	Generator GeneratorConfig `yaml:"generator"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Gates     GatesConfig     `yaml:"gates"`
}

// GeneratorConfig defines retry and solver budgets for level generation.
type GeneratorConfig struct {
	MaxAttempts     int   `yaml:"max_attempts"`
	SolverMaxNodes  int   `yaml:"solver_max_nodes"`
	SolverMaxMillis int64 `yaml:"solver_max_millis"`
}

// MetricsConfig defines budgets for the metric computation pass.
type MetricsConfig struct {
	SolverMaxNodes    int   `yaml:"solver_max_nodes"`
	SolverMaxMillis   int64 `yaml:"solver_max_millis"`
	TrapSampleLimit   int   `yaml:"trap_sample_limit"`
	MultiplicityLimit int   `yaml:"multiplicity_limit"`
}

// GatesConfig carries per-band quality gate overrides, keyed by band
// letter ("A" through "E"). A band with no entry keeps its built-in
// gate.
type GatesConfig struct {
	Bands map[string]GateOverride `yaml:"bands"`
}

// GateOverride replaces the full acceptance gate for one band. A zero
// field disables that bound, matching the engine's gate semantics.
type GateOverride struct {
	MinOptimalMoves         int     `yaml:"min_optimal_moves"`
	MinDecisionDepth        int     `yaml:"min_decision_depth"`
	MinMixedBottles         int     `yaml:"min_mixed_bottles"`
	MaxForcedMoveRatio      float64 `yaml:"max_forced_move_ratio"`
	MaxSolutionMultiplicity int     `yaml:"max_solution_multiplicity"`
	MinRawComplexity        float64 `yaml:"min_raw_complexity"`
	MaxRawComplexity        float64 `yaml:"max_raw_complexity"`
}

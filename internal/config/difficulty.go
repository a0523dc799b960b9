package config

import "github.com/pourlab/liquidsort/internal/engine"

// GeneratorParams converts the configuration into generator parameters,
// with configured gate overrides resolved per band.
func (cfg EngineConfig) GeneratorParams() engine.GeneratorParams {
	return engine.GeneratorParams{
		MaxAttempts:     cfg.Generator.MaxAttempts,
		SolverMaxNodes:  cfg.Generator.SolverMaxNodes,
		SolverMaxMillis: cfg.Generator.SolverMaxMillis,
		Thresholds:      cfg.Gates.Resolver(),
		Metrics:         cfg.MetricsComputer(),
	}
}

// MetricsComputer builds a metric computation pass with the configured
// budgets.
func (cfg EngineConfig) MetricsComputer() *engine.MetricsComputer {
	mc := engine.NewMetricsComputer()
	mc.SolverMaxNodes = cfg.Metrics.SolverMaxNodes
	mc.SolverMaxMillis = cfg.Metrics.SolverMaxMillis
	mc.TrapSampleLimit = cfg.Metrics.TrapSampleLimit
	mc.MultiplicityLimit = cfg.Metrics.MultiplicityLimit
	return mc
}

// Resolver returns the gate lookup for the generator: bands named in the
// override map replace their built-in gate, the rest keep defaults.
func (gc GatesConfig) Resolver() func(engine.Band) engine.QualityThresholds {
	if len(gc.Bands) == 0 {
		return engine.ForBand
	}
	return func(b engine.Band) engine.QualityThresholds {
		ov, ok := gc.Bands[b.String()]
		if !ok {
			return engine.ForBand(b)
		}
		return engine.QualityThresholds{
			Band:                    b,
			MinOptimalMoves:         ov.MinOptimalMoves,
			MinDecisionDepth:        ov.MinDecisionDepth,
			MinMixedBottles:         ov.MinMixedBottles,
			MaxForcedMoveRatio:      ov.MaxForcedMoveRatio,
			MaxSolutionMultiplicity: ov.MaxSolutionMultiplicity,
			MinRawComplexity:        ov.MinRawComplexity,
			MaxRawComplexity:        ov.MaxRawComplexity,
		}
	}
}

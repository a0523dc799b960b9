package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the built-in engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Generator: GeneratorConfig{
			MaxAttempts:     24,
			SolverMaxNodes:  200000,
			SolverMaxMillis: 4000,
		},
		Metrics: MetricsConfig{
			SolverMaxNodes:    60000,
			SolverMaxMillis:   1500,
			TrapSampleLimit:   12,
			MultiplicityLimit: 32,
		},
	}
}

// GetDefaultYAML returns the embedded default engine YAML.
func GetDefaultYAML() []byte {
	return defaultEngineYAML
}

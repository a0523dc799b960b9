package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the engine configuration.
// Search order: customPath -> ~/.liquidsort/configs/engine.yaml -> ./configs/engine.yaml -> embedded default
func Load(customPath string) (EngineConfig, error) {
	var cfg EngineConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return withDefaults(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("engine.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return withDefaults(cfg), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/engine.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return withDefaults(cfg), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		return DefaultEngineConfig(), nil // Fallback to hardcoded if embed fails
	}
	return withDefaults(cfg), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".liquidsort", "configs", filename)
}

// withDefaults fills zero budgets from the built-in configuration so a
// partial override file never zeroes out a solver budget.
func withDefaults(cfg EngineConfig) EngineConfig {
	def := DefaultEngineConfig()
	if cfg.Generator.MaxAttempts <= 0 {
		cfg.Generator.MaxAttempts = def.Generator.MaxAttempts
	}
	if cfg.Generator.SolverMaxNodes <= 0 {
		cfg.Generator.SolverMaxNodes = def.Generator.SolverMaxNodes
	}
	if cfg.Generator.SolverMaxMillis <= 0 {
		cfg.Generator.SolverMaxMillis = def.Generator.SolverMaxMillis
	}
	if cfg.Metrics.SolverMaxNodes <= 0 {
		cfg.Metrics.SolverMaxNodes = def.Metrics.SolverMaxNodes
	}
	if cfg.Metrics.SolverMaxMillis <= 0 {
		cfg.Metrics.SolverMaxMillis = def.Metrics.SolverMaxMillis
	}
	if cfg.Metrics.TrapSampleLimit <= 0 {
		cfg.Metrics.TrapSampleLimit = def.Metrics.TrapSampleLimit
	}
	if cfg.Metrics.MultiplicityLimit <= 0 {
		cfg.Metrics.MultiplicityLimit = def.Metrics.MultiplicityLimit
	}
	return cfg
}

package classmix

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadConfigFromFile loads a DivideConfig from a JSON file.
// Rand and Metrics must be set separately; they cannot be serialized.
func LoadConfigFromFile(path string) (*DivideConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &DivideConfig{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(*config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// SaveConfigToFile saves a DivideConfig to a JSON file.
func SaveConfigToFile(config DivideConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadConfigFromTOMLFile loads a DivideConfig from a TOML file.
func LoadConfigFromTOMLFile(path string) (*DivideConfig, error) {
	config := &DivideConfig{}
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to parse toml config file: %w", err)
	}
	if err := ValidateConfig(*config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// SaveConfigToTOMLFile saves a DivideConfig to a TOML file.
func SaveConfigToTOMLFile(config DivideConfig, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create toml config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to encode toml config: %w", err)
	}
	return nil
}

// ValidateConfig checks a DivideConfig for internally consistent,
// usable values and returns a descriptive error on the first problem
// found.
func ValidateConfig(config DivideConfig) error {
	if config.NumClasses <= 0 {
		return fmt.Errorf("num_classes must be positive (got %d)", config.NumClasses)
	}
	if config.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive (got %d)", config.MaxIterations)
	}

	p := config.OptimizationParams
	if p.MaxScoreDiff < 0 {
		return fmt.Errorf("max_score_diff must be non-negative (got %f)", p.MaxScoreDiff)
	}
	if p.MaxClassSizeDiff < 0 {
		return fmt.Errorf("max_class_size_diff must be non-negative (got %d)", p.MaxClassSizeDiff)
	}
	if p.MaxGenderRatioDiff < 0 || p.MaxGenderRatioDiff > 1 {
		return fmt.Errorf("max_gender_ratio_diff should be in [0,1] (got %f)", p.MaxGenderRatioDiff)
	}
	if p.PenaltyPower <= 0 {
		return fmt.Errorf("penalty_power must be positive (got %f)", p.PenaltyPower)
	}
	if p.InitialTemperature <= 0 {
		return fmt.Errorf("initial_temperature must be positive (got %f)", p.InitialTemperature)
	}
	if p.CoolingRate <= 0 || p.CoolingRate >= 1 {
		return fmt.Errorf("cooling_rate should be in (0,1) (got %f)", p.CoolingRate)
	}
	if p.NumParallelInstances < 0 {
		return fmt.Errorf("num_parallel_instances must be non-negative (got %d)", p.NumParallelInstances)
	}
	if p.SameGenderSwapProbability < 0 || p.SameGenderSwapProbability > 1 {
		return fmt.Errorf("same_gender_swap_probability should be in [0,1] (got %f)", p.SameGenderSwapProbability)
	}
	if p.ReheatAfterIterations <= 0 {
		return fmt.Errorf("reheat_after_iterations must be positive (got %d)", p.ReheatAfterIterations)
	}
	return nil
}

// RelaxedParams loosens the score and gender-ratio thresholds relative
// to DefaultParams, trading constraint strictness for an easier,
// faster-converging search. MaxClassSizeDiff keeps its default.
func RelaxedParams() OptimizationParams {
	p := DefaultParams()
	p.MaxScoreDiff = 2.0
	p.MaxGenderRatioDiff = 0.15
	return p
}

// StrictParams tightens the score and gender-ratio thresholds relative
// to DefaultParams, trading search difficulty for a more evenly
// balanced result. MaxClassSizeDiff keeps its default.
func StrictParams() OptimizationParams {
	p := DefaultParams()
	p.MaxScoreDiff = 0.5
	p.MaxGenderRatioDiff = 0.05
	return p
}

// AdaptiveParams scales NumParallelInstances and ReheatAfterIterations
// to the size of the student population n, following spec.md §6's
// bucket boundaries: <500 -> 4 instances; 500-1000 -> 8; 1000-2000 ->
// 12; >2000 -> 16.
func AdaptiveParams(n int) OptimizationParams {
	p := DefaultParams()
	switch {
	case n > 2000:
		p.NumParallelInstances = 16
		p.ReheatAfterIterations = 4000
	case n >= 1000:
		p.NumParallelInstances = 12
		p.ReheatAfterIterations = 3000
	case n >= 500:
		p.NumParallelInstances = 8
		p.ReheatAfterIterations = 2000
	default:
		p.NumParallelInstances = 4
		p.ReheatAfterIterations = 1000
	}
	return p
}

// AutoTuneParams is an alias of AdaptiveParams kept for parity with
// the teacher's AutoTuneConfig: it derives a population-size-scaled
// OptimizationParams without requiring the caller to pick a preset
// first.
func AutoTuneParams(n int) OptimizationParams {
	return AdaptiveParams(n)
}

// AutoTuneConfig builds a complete DivideConfig for a population of n
// students and k classes, scaling OptimizationParams and the
// per-worker iteration budget to the dataset size the way the
// teacher's AutoTuneConfig scales MaxIterations and swarm size to
// ProblemSize.
func AutoTuneConfig(n, k int) DivideConfig {
	return DivideConfig{
		NumClasses:         k,
		MaxIterations:      autoTuneMaxIterations(n),
		OptimizationParams: AutoTuneParams(n),
	}
}

// autoTuneMaxIterations scales the per-worker iteration cap with
// population size: larger rosters get proportionally more search
// budget, capped to keep very large runs tractable.
func autoTuneMaxIterations(n int) int {
	switch {
	case n > 2000:
		return 2_000_000
	case n >= 1000:
		return 1_500_000
	case n >= 500:
		return 1_000_000
	default:
		return 200_000
	}
}

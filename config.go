package classmix

import "math/rand"

// OptimizationParams configures the cost model and the SA search.
// JSON and TOML tags allow round-tripping through config_loader.go.
type OptimizationParams struct {
	MaxScoreDiff              float64 `json:"max_score_diff" toml:"max_score_diff"`
	MaxClassSizeDiff          int     `json:"max_class_size_diff" toml:"max_class_size_diff"`
	MaxGenderRatioDiff        float64 `json:"max_gender_ratio_diff" toml:"max_gender_ratio_diff"`
	TotalScorePenaltyWeight   float64 `json:"total_score_penalty_weight" toml:"total_score_penalty_weight"`
	SubjectScorePenaltyWeight float64 `json:"subject_score_penalty_weight" toml:"subject_score_penalty_weight"`
	// ClassSizePenaltyWeight defaults to SubjectScorePenaltyWeight when
	// left at zero (see DESIGN.md).
	ClassSizePenaltyWeight    float64 `json:"class_size_penalty_weight" toml:"class_size_penalty_weight"`
	GenderRatioPenaltyWeight  float64 `json:"gender_ratio_penalty_weight" toml:"gender_ratio_penalty_weight"`
	PenaltyPower              float64 `json:"penalty_power" toml:"penalty_power"`
	TotalVarianceWeight       float64 `json:"total_variance_weight" toml:"total_variance_weight"`
	GenderVarianceWeight      float64 `json:"gender_variance_weight" toml:"gender_variance_weight"`
	SubjectVarianceWeight     float64 `json:"subject_variance_weight" toml:"subject_variance_weight"`
	InitialTemperature        float64 `json:"initial_temperature" toml:"initial_temperature"`
	CoolingRate               float64 `json:"cooling_rate" toml:"cooling_rate"`
	NumParallelInstances      int     `json:"num_parallel_instances" toml:"num_parallel_instances"`
	GoodSolutionThreshold     float64 `json:"good_solution_threshold" toml:"good_solution_threshold"`
	ReheatAfterIterations     int     `json:"reheat_after_iterations" toml:"reheat_after_iterations"`
	SameGenderSwapProbability float64 `json:"same_gender_swap_probability" toml:"same_gender_swap_probability"`
}

// DivideConfig is the top-level configuration for DivideStudents.
type DivideConfig struct {
	NumClasses         int                `json:"num_classes" toml:"num_classes"`
	MaxIterations      int                `json:"max_iterations" toml:"max_iterations"`
	OptimizationParams OptimizationParams `json:"optimization_params" toml:"optimization_params"`

	// Rand seeds the master RNG from which per-worker RNGs are
	// derived. Defaults to a time-seeded source when nil.
	Rand *rand.Rand `json:"-" toml:"-"`

	// Metrics, when non-nil, receives per-run counters from the
	// parallel driver (see driver.go). Optional; nil by default.
	Metrics *Metrics `json:"-" toml:"-"`
}

// effectiveClassSizePenaltyWeight resolves the zero-value default:
// ClassSizePenaltyWeight falls back to SubjectScorePenaltyWeight when
// left unset.
func (p OptimizationParams) effectiveClassSizePenaltyWeight() float64 {
	if p.ClassSizePenaltyWeight != 0 {
		return p.ClassSizePenaltyWeight
	}
	return p.SubjectScorePenaltyWeight
}

// DefaultParams returns the engine's baseline OptimizationParams.
func DefaultParams() OptimizationParams {
	return OptimizationParams{
		MaxScoreDiff:              1.0,
		MaxClassSizeDiff:          5,
		MaxGenderRatioDiff:        0.1,
		TotalScorePenaltyWeight:   1e9,
		SubjectScorePenaltyWeight: 1e9,
		ClassSizePenaltyWeight:    0, // resolves to SubjectScorePenaltyWeight
		GenderRatioPenaltyWeight:  1e11,
		PenaltyPower:              6,
		TotalVarianceWeight:       10,
		GenderVarianceWeight:      5000,
		SubjectVarianceWeight:     50,
		InitialTemperature:        10000,
		CoolingRate:               0.99990,
		NumParallelInstances:      0, // runtime.NumCPU() capped by AdaptiveParams' size bucket, see driver.go
		GoodSolutionThreshold:     1.0,
		ReheatAfterIterations:     1000,
		SameGenderSwapProbability: 0.4,
	}
}

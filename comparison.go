package classmix

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// RunResult holds the outcome of a single DivideStudents run made
// while comparing parameter presets.
type RunResult struct {
	BestCost      float64
	EarlyStop     bool
	ExecutionTime float64
}

// AlgorithmStatistics holds statistical measures for a preset's
// performance across repeated runs.
type AlgorithmStatistics struct {
	Mean        float64
	Median      float64
	StdDev      float64
	Best        float64
	Worst       float64
	SuccessRate float64 // percentage of runs that hit early stop
	AvgTime     float64 // seconds
}

// WilcoxonResult holds the result of a Wilcoxon signed-rank test
// between two presets.
type WilcoxonResult struct {
	Preset1     string
	Preset2     string
	Winner      string
	WStatistic  float64
	PValue      float64
	Significant bool
}

// FriedmanTestResult holds the result of a Friedman test across all
// compared presets.
type FriedmanTestResult struct {
	ChiSquare        float64
	PValue           float64
	Significant      bool
	DegreesOfFreedom int
}

// ComparisonResult holds the outcome of comparing multiple presets on
// the same student population.
type ComparisonResult struct {
	PresetNames    []string
	RunResults     [][]RunResult
	Statistics     []AlgorithmStatistics
	Rankings       []int
	WilcoxonTests  [][]WilcoxonResult
	FriedmanResult *FriedmanTestResult
	BestPreset     int
}

// ComparisonRunner repeatedly runs DivideStudents under different
// OptimizationParams presets against the same population, so that
// e.g. StrictParams and RelaxedParams convergence behavior can be
// compared side by side.
type ComparisonRunner struct {
	Presets       map[string]OptimizationParams
	Runs          int
	NumClasses    int
	MaxIterations int
	Verbose       bool
}

// NewComparisonRunner creates a runner comparing the three built-in
// presets with 10 runs each.
func NewComparisonRunner() *ComparisonRunner {
	return &ComparisonRunner{
		Presets: map[string]OptimizationParams{
			"default": DefaultParams(),
			"relaxed": RelaxedParams(),
			"strict":  StrictParams(),
		},
		Runs:          10,
		NumClasses:    4,
		MaxIterations: 20000,
	}
}

func (cr *ComparisonRunner) WithPresets(presets map[string]OptimizationParams) *ComparisonRunner {
	cr.Presets = presets
	return cr
}

func (cr *ComparisonRunner) WithRuns(runs int) *ComparisonRunner {
	cr.Runs = runs
	return cr
}

func (cr *ComparisonRunner) WithNumClasses(k int) *ComparisonRunner {
	cr.NumClasses = k
	return cr
}

func (cr *ComparisonRunner) WithIterations(iterations int) *ComparisonRunner {
	cr.MaxIterations = iterations
	return cr
}

func (cr *ComparisonRunner) WithVerbose(verbose bool) *ComparisonRunner {
	cr.Verbose = verbose
	return cr
}

// Compare runs every preset cr.Runs times against students and
// returns a statistical comparison of the resulting costs.
func (cr *ComparisonRunner) Compare(students []Student) *ComparisonResult {
	names := make([]string, 0, len(cr.Presets))
	for name := range cr.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	runResults := make([][]RunResult, len(names))

	for i, name := range names {
		params := cr.Presets[name]
		runResults[i] = make([]RunResult, cr.Runs)

		if cr.Verbose {
			fmt.Printf("Running preset %q (%d runs)...\n", name, cr.Runs)
		}

		for run := 0; run < cr.Runs; run++ {
			config := DivideConfig{
				NumClasses:         cr.NumClasses,
				MaxIterations:      cr.MaxIterations,
				OptimizationParams: params,
				Rand:               rand.New(rand.NewSource(int64(run) + 1)),
			}

			start := time.Now()
			result, err := DivideStudents(students, config)
			elapsed := time.Since(start).Seconds()

			if err != nil {
				runResults[i][run] = RunResult{BestCost: math.Inf(1), ExecutionTime: elapsed}
				continue
			}

			runResults[i][run] = RunResult{
				BestCost:      result.Cost,
				EarlyStop:     result.EarlyStop,
				ExecutionTime: elapsed,
			}

			if cr.Verbose && (run+1)%5 == 0 {
				fmt.Printf("  completed %d/%d runs\n", run+1, cr.Runs)
			}
		}
	}

	statistics := make([]AlgorithmStatistics, len(names))
	for i := range names {
		statistics[i] = calculatePresetStatistics(runResults[i])
	}

	rankings := rankPresets(statistics)
	best := 0
	for i, rank := range rankings {
		if rank == 1 {
			best = i
			break
		}
	}

	wilcoxonTests := make([][]WilcoxonResult, len(names))
	for i := range names {
		wilcoxonTests[i] = make([]WilcoxonResult, len(names))
		for j := range names {
			if i != j {
				wilcoxonTests[i][j] = wilcoxonSignedRankTest(names[i], names[j], runResults[i], runResults[j])
			}
		}
	}

	return &ComparisonResult{
		PresetNames:    names,
		RunResults:     runResults,
		Statistics:     statistics,
		Rankings:       rankings,
		WilcoxonTests:  wilcoxonTests,
		FriedmanResult: friedmanTest(runResults),
		BestPreset:     best,
	}
}

// calculatePresetStatistics computes statistical measures for one
// preset's repeated run results.
func calculatePresetStatistics(runs []RunResult) AlgorithmStatistics {
	if len(runs) == 0 {
		return AlgorithmStatistics{}
	}

	costs := make([]float64, len(runs))
	execTime := 0.0
	successCount := 0

	for i, run := range runs {
		costs[i] = run.BestCost
		execTime += run.ExecutionTime
		if run.EarlyStop {
			successCount++
		}
	}

	sortedCosts := make([]float64, len(costs))
	copy(sortedCosts, costs)
	sort.Float64s(sortedCosts)

	mean := 0.0
	for _, cost := range costs {
		mean += cost
	}
	mean /= float64(len(costs))

	median := sortedCosts[len(sortedCosts)/2]
	if len(sortedCosts)%2 == 0 {
		median = (sortedCosts[len(sortedCosts)/2-1] + sortedCosts[len(sortedCosts)/2]) / 2.0
	}

	variance := 0.0
	for _, cost := range costs {
		diff := cost - mean
		variance += diff * diff
	}
	variance /= float64(len(costs))

	return AlgorithmStatistics{
		Mean:        mean,
		Median:      median,
		StdDev:      math.Sqrt(variance),
		Best:        sortedCosts[0],
		Worst:       sortedCosts[len(sortedCosts)-1],
		SuccessRate: float64(successCount) / float64(len(runs)) * 100.0,
		AvgTime:     execTime / float64(len(runs)),
	}
}

// rankPresets ranks presets by mean cost (1 = best, lower is better).
func rankPresets(statistics []AlgorithmStatistics) []int {
	type indexedStat struct {
		index int
		mean  float64
	}

	indexed := make([]indexedStat, len(statistics))
	for i, stat := range statistics {
		indexed[i] = indexedStat{index: i, mean: stat.Mean}
	}

	sort.Slice(indexed, func(i, j int) bool {
		return indexed[i].mean < indexed[j].mean
	})

	rankings := make([]int, len(statistics))
	for rank, item := range indexed {
		rankings[item.index] = rank + 1
	}
	return rankings
}

// wilcoxonSignedRankTest performs a Wilcoxon signed-rank test between
// two presets' paired run results.
func wilcoxonSignedRankTest(name1, name2 string, runs1, runs2 []RunResult) WilcoxonResult {
	if len(runs1) != len(runs2) {
		return WilcoxonResult{Preset1: name1, Preset2: name2, Winner: "error: unequal sample sizes"}
	}

	n := len(runs1)
	differences := make([]float64, 0, n)
	absDifferences := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		diff := runs1[i].BestCost - runs2[i].BestCost
		if math.Abs(diff) > 1e-10 {
			differences = append(differences, diff)
			absDifferences = append(absDifferences, math.Abs(diff))
		}
	}

	if len(differences) == 0 {
		return WilcoxonResult{Preset1: name1, Preset2: name2, Winner: "tie"}
	}

	ranks := rankValues(absDifferences)

	wPlus, wMinus := 0.0, 0.0
	for i, diff := range differences {
		if diff > 0 {
			wPlus += ranks[i]
		} else {
			wMinus += ranks[i]
		}
	}

	w := math.Min(wPlus, wMinus)

	nEffective := float64(len(differences))
	meanW := nEffective * (nEffective + 1) / 4.0
	stdW := math.Sqrt(nEffective * (nEffective + 1) * (2*nEffective + 1) / 24.0)
	z := math.Abs((w - meanW) / stdW)
	pValue := 2.0 * (1.0 - normalCDF(z))

	significant := pValue < 0.05
	winner := "tie"
	if significant {
		if wPlus < wMinus {
			winner = name1
		} else {
			winner = name2
		}
	}

	return WilcoxonResult{
		Preset1:     name1,
		Preset2:     name2,
		WStatistic:  w,
		PValue:      pValue,
		Significant: significant,
		Winner:      winner,
	}
}

// friedmanTest performs a Friedman test across all compared presets.
func friedmanTest(runResults [][]RunResult) *FriedmanTestResult {
	if len(runResults) < 2 {
		return nil
	}

	k := len(runResults)
	n := len(runResults[0])

	ranks := make([][]float64, n)
	for run := 0; run < n; run++ {
		costs := make([]float64, k)
		for alg := 0; alg < k; alg++ {
			costs[alg] = runResults[alg][run].BestCost
		}
		ranks[run] = rankValues(costs)
	}

	rankSums := make([]float64, k)
	for alg := 0; alg < k; alg++ {
		for run := 0; run < n; run++ {
			rankSums[alg] += ranks[run][alg]
		}
	}

	sumSquaredRanks := 0.0
	for _, rankSum := range rankSums {
		sumSquaredRanks += rankSum * rankSum
	}

	chiSquare := (12.0/(float64(n)*float64(k)*float64(k+1)))*sumSquaredRanks - 3.0*float64(n)*float64(k+1)
	df := k - 1
	pValue := chiSquareCDF(chiSquare, df)

	return &FriedmanTestResult{
		ChiSquare:        chiSquare,
		PValue:           1.0 - pValue,
		Significant:      (1.0 - pValue) < 0.05,
		DegreesOfFreedom: df,
	}
}

// rankValues assigns ranks to values (1 = smallest), averaging ranks
// across ties.
func rankValues(values []float64) []float64 {
	type indexedValue struct {
		index int
		value float64
	}

	indexed := make([]indexedValue, len(values))
	for i, v := range values {
		indexed[i] = indexedValue{index: i, value: v}
	}

	sort.Slice(indexed, func(i, j int) bool {
		return indexed[i].value < indexed[j].value
	})

	ranks := make([]float64, len(values))
	i := 0
	for i < len(indexed) {
		j := i
		for j < len(indexed) && math.Abs(indexed[j].value-indexed[i].value) < 1e-10 {
			j++
		}
		avgRank := 0.0
		for kk := i; kk < j; kk++ {
			avgRank += float64(kk + 1)
		}
		avgRank /= float64(j - i)
		for kk := i; kk < j; kk++ {
			ranks[indexed[kk].index] = avgRank
		}
		i = j
	}
	return ranks
}

func normalCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// chiSquareCDF approximates the chi-square CDF, using a normal
// approximation for large df and a rough approximation otherwise.
func chiSquareCDF(x float64, df int) float64 {
	if x <= 0 {
		return 0
	}
	if df > 30 {
		z := (x - float64(df)) / math.Sqrt(2.0*float64(df))
		return normalCDF(z)
	}
	return math.Min(math.Exp(-x/2.0)*math.Pow(x/2.0, float64(df)/2.0), 1.0)
}

// PrintComparisonResults prints a formatted comparison report to stdout.
func (cr *ComparisonResult) PrintComparisonResults() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("Preset Comparison")
	fmt.Println(strings.Repeat("=", 80))

	fmt.Println("\nStatistical Summary:")
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-10s | %8s | %8s | %8s | %8s | %8s | %5s\n",
		"Preset", "Mean", "Median", "StdDev", "Best", "Worst", "Rank")
	fmt.Println(strings.Repeat("-", 80))

	for i, name := range cr.PresetNames {
		stats := cr.Statistics[i]
		fmt.Printf("%-10s | %8.2e | %8.2e | %8.2e | %8.2e | %8.2e | %5d\n",
			name, stats.Mean, stats.Median, stats.StdDev, stats.Best, stats.Worst, cr.Rankings[i])
	}
	fmt.Println(strings.Repeat("-", 80))

	fmt.Printf("\nBest preset: %s (rank 1)\n", cr.PresetNames[cr.BestPreset])

	fmt.Println("\nSignificant pairwise differences (Wilcoxon signed-rank test, alpha=0.05):")
	fmt.Println(strings.Repeat("-", 80))
	foundSignificant := false
	for i := range cr.PresetNames {
		for j := i + 1; j < len(cr.PresetNames); j++ {
			test := cr.WilcoxonTests[i][j]
			if test.Significant {
				foundSignificant = true
				fmt.Printf("%s vs %s: p=%.4f, winner: %s\n", test.Preset1, test.Preset2, test.PValue, test.Winner)
			}
		}
	}
	if !foundSignificant {
		fmt.Println("No significant differences found.")
	}

	if cr.FriedmanResult != nil {
		fmt.Println("\nFriedman test (overall difference):")
		fmt.Printf("  chi^2 = %.4f, df = %d, p = %.4f",
			cr.FriedmanResult.ChiSquare, cr.FriedmanResult.DegreesOfFreedom, cr.FriedmanResult.PValue)
		if cr.FriedmanResult.Significant {
			fmt.Println(" (significant at alpha=0.05)")
		} else {
			fmt.Println(" (not significant)")
		}
	}

	fmt.Println(strings.Repeat("=", 80))
}

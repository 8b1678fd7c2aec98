package classmix

import (
	"math/rand"
	"testing"
)

func TestComparisonRunnerProducesRankingsForEveryPreset(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	students := GenerateSyntheticStudents(60, 2, rng)

	runner := NewComparisonRunner().WithRuns(3).WithNumClasses(3).WithIterations(200)
	result := runner.Compare(students)

	if len(result.PresetNames) != 3 {
		t.Fatalf("len(PresetNames) = %v, want 3", len(result.PresetNames))
	}
	if len(result.Rankings) != len(result.PresetNames) {
		t.Fatalf("len(Rankings) = %v, want %v", len(result.Rankings), len(result.PresetNames))
	}

	seen := make(map[int]bool)
	for _, rank := range result.Rankings {
		if rank < 1 || rank > len(result.PresetNames) {
			t.Errorf("rank %v out of range [1,%v]", rank, len(result.PresetNames))
		}
		seen[rank] = true
	}
	if !seen[1] {
		t.Error("no preset was ranked 1 (best)")
	}
}

func TestRankValuesAveragesTies(t *testing.T) {
	ranks := rankValues([]float64{1, 1, 3})
	want := []float64{1.5, 1.5, 3}
	for i := range want {
		if ranks[i] != want[i] {
			t.Errorf("rankValues()[%d] = %v, want %v", i, ranks[i], want[i])
		}
	}
}

func TestFriedmanTestRequiresAtLeastTwoGroups(t *testing.T) {
	if result := friedmanTest([][]RunResult{{{BestCost: 1}}}); result != nil {
		t.Error("friedmanTest() with a single group returned a non-nil result")
	}
}

package classmix

import (
	"math/rand"
	"testing"
)

func perfectlyBalancedClasses() []*Class {
	students := []Student{
		{ID: "1", Gender: Male, Scores: []float64{50, 50}, Total: 100},
		{ID: "2", Gender: Female, Scores: []float64{50, 50}, Total: 100},
		{ID: "3", Gender: Male, Scores: []float64{50, 50}, Total: 100},
		{ID: "4", Gender: Female, Scores: []float64{50, 50}, Total: 100},
	}
	a := NewClass(1, 2)
	a.Add(0, &students[0])
	a.Add(1, &students[1])
	b := NewClass(2, 2)
	b.Add(2, &students[2])
	b.Add(3, &students[3])
	return []*Class{a, b}
}

func TestCostZeroForBalancedClasses(t *testing.T) {
	classes := perfectlyBalancedClasses()
	params := DefaultParams()

	cost := Cost(classes, params)
	if cost != 0 {
		t.Errorf("Cost() = %v, want 0 for perfectly balanced classes", cost)
	}
	if hp := HardPenalty(classes, params); hp != 0 {
		t.Errorf("HardPenalty() = %v, want 0", hp)
	}
}

func TestCostPenalizesImbalance(t *testing.T) {
	students := []Student{
		{ID: "1", Gender: Male, Scores: []float64{100}, Total: 100},
		{ID: "2", Gender: Male, Scores: []float64{0}, Total: 0},
	}
	a := NewClass(1, 1)
	a.Add(0, &students[0])
	b := NewClass(2, 1)
	b.Add(1, &students[1])

	params := DefaultParams()
	cost := Cost([]*Class{a, b}, params)
	if cost <= 0 {
		t.Errorf("Cost() = %v, want > 0 for a 100-point average gap", cost)
	}
}

func TestPenaltyTermThresholdIsStrictlyGreaterThan(t *testing.T) {
	tests := []struct {
		name      string
		diff      float64
		threshold float64
		wantZero  bool
	}{
		{"below threshold", 0.5, 1.0, true},
		{"exactly at threshold", 1.0, 1.0, true},
		{"above threshold", 1.5, 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := penaltyTerm(tt.diff, tt.threshold, 2, 10)
			if (got == 0) != tt.wantZero {
				t.Errorf("penaltyTerm(%v, %v) = %v, wantZero = %v", tt.diff, tt.threshold, got, tt.wantZero)
			}
		})
	}
}

func TestCostNonNegativeAfterSwap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	students := GenerateSyntheticStudents(40, 2, rng)
	classes := InitializeLPT(students, 4)
	params := DefaultParams()

	base := Cost(classes, params)

	// Swap a student of class 0 with one of class 1 and confirm the
	// cost stays non-negative before and after (it need not increase).
	applySwap(classes[0], classes[1], classes[0].Students[0], classes[1].Students[0], students)
	after := Cost(classes, params)

	if base < 0 || after < 0 {
		t.Errorf("Cost() returned a negative value: base=%v after=%v", base, after)
	}
}

package classmix

import (
	"math/rand"
	"testing"
)

// These tests exercise the three small literal fixtures spelled out in
// spec.md's end-to-end scenarios, in addition to the generic
// synthetic-roster coverage in integration_test.go and driver_test.go.

func TestScenarioTrivialEvenSplit(t *testing.T) {
	students := []Student{
		{ID: "1", Gender: Male, Scores: []float64{10}, Total: 10},
		{ID: "2", Gender: Male, Scores: []float64{10}, Total: 10},
		{ID: "3", Gender: Female, Scores: []float64{10}, Total: 10},
		{ID: "4", Gender: Female, Scores: []float64{10}, Total: 10},
	}

	rng := rand.New(rand.NewSource(1))
	result, err := DivideStudents(students, DivideConfig{
		NumClasses:         2,
		MaxIterations:      2000,
		OptimizationParams: DefaultParams(),
		Rand:               rng,
	})
	if err != nil {
		t.Fatalf("DivideStudents() error = %v", err)
	}
	if len(result.Classes) != 2 {
		t.Fatalf("len(Classes) = %d, want 2", len(result.Classes))
	}
	for _, c := range result.Classes {
		if c.Stats.Size != 2 {
			t.Errorf("class %d size = %d, want 2", c.ID, c.Stats.Size)
		}
		if c.Stats.MaleCount != 1 || c.Stats.FemaleCount != 1 {
			t.Errorf("class %d gender counts = (M:%d F:%d), want (M:1 F:1)",
				c.ID, c.Stats.MaleCount, c.Stats.FemaleCount)
		}
	}

	report := ValidateWithParams(result.Classes, DefaultParams())
	if report.MaxScoreDiff != 0 {
		t.Errorf("MaxScoreDiff = %v, want 0", report.MaxScoreDiff)
	}
	if report.MaxGenderRatioDiff != 0 {
		t.Errorf("MaxGenderRatioDiff = %v, want 0", report.MaxGenderRatioDiff)
	}
}

func TestScenarioSingleSubjectUneven(t *testing.T) {
	students := []Student{
		{ID: "1", Gender: Male, Scores: []float64{100}, Total: 100},
		{ID: "2", Gender: Female, Scores: []float64{90}, Total: 90},
		{ID: "3", Gender: Male, Scores: []float64{80}, Total: 80},
		{ID: "4", Gender: Female, Scores: []float64{70}, Total: 70},
		{ID: "5", Gender: Male, Scores: []float64{60}, Total: 60},
		{ID: "6", Gender: Female, Scores: []float64{50}, Total: 50},
	}

	rng := rand.New(rand.NewSource(2))
	result, err := DivideStudents(students, DivideConfig{
		NumClasses:         3,
		MaxIterations:      20000,
		OptimizationParams: DefaultParams(),
		Rand:               rng,
	})
	if err != nil {
		t.Fatalf("DivideStudents() error = %v", err)
	}
	for _, c := range result.Classes {
		if c.Stats.Size != 2 {
			t.Errorf("class %d size = %d, want 2", c.ID, c.Stats.Size)
		}
	}

	report := ValidateWithParams(result.Classes, DefaultParams())
	if !report.ScoreConstraintsMet {
		t.Errorf("score_constraints_met = false, want true (violations: %v)", report.Violations)
	}
}

func TestScenarioInfeasibleGenderAllMale(t *testing.T) {
	students := []Student{
		{ID: "1", Gender: Male, Scores: []float64{70}, Total: 70},
		{ID: "2", Gender: Male, Scores: []float64{80}, Total: 80},
		{ID: "3", Gender: Male, Scores: []float64{90}, Total: 90},
	}

	rng := rand.New(rand.NewSource(3))
	result, err := DivideStudents(students, DivideConfig{
		NumClasses:         3,
		MaxIterations:      2000,
		OptimizationParams: DefaultParams(),
		Rand:               rng,
	})
	if err != nil {
		t.Fatalf("DivideStudents() error = %v", err)
	}

	for _, c := range result.Classes {
		if c.Stats.Size != 1 {
			t.Errorf("class %d size = %d, want 1", c.ID, c.Stats.Size)
		}
		if c.Stats.MaleCount != 1 || c.Stats.FemaleCount != 0 {
			t.Errorf("class %d gender counts = (M:%d F:%d), want (M:1 F:0)",
				c.ID, c.Stats.MaleCount, c.Stats.FemaleCount)
		}
	}

	report := ValidateWithParams(result.Classes, DefaultParams())
	if report.MaxGenderRatioDiff != 0 {
		t.Errorf("MaxGenderRatioDiff = %v, want 0 (every class is 100%% male)", report.MaxGenderRatioDiff)
	}
	if !report.GenderConstraintsMet {
		t.Errorf("gender_constraints_met = false, want true for an all-male roster")
	}
}

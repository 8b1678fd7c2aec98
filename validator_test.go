package classmix

import (
	"fmt"
	"testing"
)

func TestValidateFeasibleAssignment(t *testing.T) {
	classes := perfectlyBalancedClasses()

	report := ValidateWithParams(classes, DefaultParams())
	if !report.Feasible() {
		t.Errorf("ValidateWithParams() report not feasible: %+v", report.Violations)
	}
	if !report.ScoreConstraintsMet || !report.GenderConstraintsMet || !report.SizeConstraintsMet {
		t.Errorf("ValidateWithParams() constraint flags = %+v, want all true", report)
	}
	if len(report.Violations) != 0 {
		t.Errorf("ValidateWithParams() violations = %v, want none", report.Violations)
	}
}

func TestValidateReportsClassSizeViolation(t *testing.T) {
	students := make([]Student, 6)
	for i := range students {
		students[i] = Student{ID: string(rune('a' + i)), Scores: []float64{1}, Total: 1}
	}

	a := NewClass(1, 1)
	for i := 0; i < 5; i++ {
		a.Add(i, &students[i])
	}
	b := NewClass(2, 1)
	b.Add(5, &students[5])

	params := DefaultParams()
	params.MaxClassSizeDiff = 1

	report := ValidateWithParams([]*Class{a, b}, params)
	if report.Feasible() {
		t.Error("ValidateWithParams() reported feasible for a 4-student size gap exceeding max_class_size_diff=1")
	}
	if report.SizeConstraintsMet {
		t.Error("ValidateWithParams() reported size_constraints_met=true for a violating class-size gap")
	}
	if len(report.Violations) == 0 {
		t.Error("ValidateWithParams() reported no violations for an infeasible assignment")
	}
}

func TestValidateUsesDefaultParams(t *testing.T) {
	classes := perfectlyBalancedClasses()
	report := Validate(classes)
	if !report.Feasible() {
		t.Errorf("Validate() report not feasible: %+v", report.Violations)
	}
}

func TestValidateSubjectMaxDiffsAreNamedPositionally(t *testing.T) {
	classes := perfectlyBalancedClasses()
	report := ValidateWithParams(classes, DefaultParams())
	for j, sd := range report.SubjectMaxDiffs {
		want := fmt.Sprintf("subject_%d", j+1)
		if sd.Subject != want {
			t.Errorf("SubjectMaxDiffs[%d].Subject = %q, want %q", j, sd.Subject, want)
		}
	}
}

func TestValidateNeverTouchesStudents(t *testing.T) {
	// perfectlyBalancedClasses's cached stats are sufficient on their
	// own; ValidateWithParams must not require (or dereference) a
	// student slice to produce a correct report.
	classes := perfectlyBalancedClasses()
	report := ValidateWithParams(classes, DefaultParams())
	if report.MaxScoreDiff != 0 {
		t.Errorf("MaxScoreDiff = %v, want 0 for a perfectly balanced assignment", report.MaxScoreDiff)
	}
}

package classmix

import "fmt"

// SubjectDiff pairs a subject identifier with its observed max-minus-
// min average spread across classes. The core is oblivious to real
// subject names (spec.md §6 leaves those to the ingestion
// collaborator), so subjects are identified positionally.
type SubjectDiff struct {
	Subject string
	Diff    float64
}

// ValidationReport summarizes whether a finished assignment satisfies
// every hard constraint in an OptimizationParams, and by how much it
// misses any that it violates. spec.md §4.6 names three independent
// satisfaction flags rather than a single pass/fail bit, since a
// caller may care about score balance without caring about gender
// balance (or vice versa).
type ValidationReport struct {
	ScoreConstraintsMet  bool
	GenderConstraintsMet bool
	SizeConstraintsMet   bool

	MaxScoreDiff       float64
	MaxGenderRatioDiff float64
	SubjectMaxDiffs    []SubjectDiff
	ClassSizeDiff      int

	Violations []string
}

// Feasible reports whether every hard constraint is satisfied.
func (r ValidationReport) Feasible() bool {
	return r.ScoreConstraintsMet && r.GenderConstraintsMet && r.SizeConstraintsMet
}

// Validate checks a finished assignment against DefaultParams's hard
// thresholds.
func Validate(classes []*Class) ValidationReport {
	return ValidateWithParams(classes, DefaultParams())
}

// ValidateWithParams checks a finished assignment against params's
// hard thresholds, computed directly from each class's cached
// CachedStats (spec.md §4.6). It never touches a student list: the
// whole point of §4.1's incremental bookkeeping is that consumers of
// a finished assignment trust the cache rather than re-walking it.
func ValidateWithParams(classes []*Class, params OptimizationParams) ValidationReport {
	k := len(classes)
	report := ValidationReport{ScoreConstraintsMet: true, GenderConstraintsMet: true, SizeConstraintsMet: true}
	if k == 0 {
		return report
	}
	numSubjects := len(classes[0].Stats.SubjectSums)

	avgTotal := make([]float64, k)
	avgSubject := make([][]float64, k)
	maleRatio := make([]float64, k)
	sizes := make([]int, k)

	for i, c := range classes {
		size := float64(c.Stats.Size)
		avgTotal[i] = c.Stats.SumTotal / size
		maleRatio[i] = float64(c.Stats.MaleCount) / size
		sizes[i] = c.Stats.Size

		avgSubject[i] = make([]float64, numSubjects)
		for j, sum := range c.Stats.SubjectSums {
			avgSubject[i][j] = sum / size
		}
	}

	report.MaxScoreDiff = spread(avgTotal)
	report.ClassSizeDiff = spreadInt(sizes)
	report.MaxGenderRatioDiff = spread(maleRatio)

	report.SubjectMaxDiffs = make([]SubjectDiff, numSubjects)
	subjectOK := true
	for j := 0; j < numSubjects; j++ {
		col := make([]float64, k)
		for i := 0; i < k; i++ {
			col[i] = avgSubject[i][j]
		}
		diff := spread(col)
		report.SubjectMaxDiffs[j] = SubjectDiff{Subject: fmt.Sprintf("subject_%d", j+1), Diff: diff}
		if diff > params.MaxScoreDiff {
			subjectOK = false
			report.Violations = append(report.Violations, fmt.Sprintf(
				"subject %d score diff %.4f exceeds max_score_diff %.4f", j+1, diff, params.MaxScoreDiff))
		}
	}

	totalOK := report.MaxScoreDiff <= params.MaxScoreDiff
	if !totalOK {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"total score diff %.4f exceeds max_score_diff %.4f", report.MaxScoreDiff, params.MaxScoreDiff))
	}
	report.ScoreConstraintsMet = totalOK && subjectOK

	report.GenderConstraintsMet = report.MaxGenderRatioDiff <= params.MaxGenderRatioDiff
	if !report.GenderConstraintsMet {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"gender ratio diff %.4f exceeds max_gender_ratio_diff %.4f", report.MaxGenderRatioDiff, params.MaxGenderRatioDiff))
	}

	report.SizeConstraintsMet = report.ClassSizeDiff <= params.MaxClassSizeDiff
	if !report.SizeConstraintsMet {
		report.Violations = append(report.Violations, fmt.Sprintf(
			"class size diff %d exceeds max_class_size_diff %d", report.ClassSizeDiff, params.MaxClassSizeDiff))
	}

	return report
}

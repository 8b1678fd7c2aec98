package classmix

import "math"

// Cost evaluates the total penalty + variance cost of an assignment,
// reading only cached class statistics (spec.md §4.2). It is a pure
// function: it never mutates classes and never walks student lists.
func Cost(classes []*Class, params OptimizationParams) float64 {
	k := len(classes)
	if k == 0 {
		return 0
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

	diffTotal := spread(avgTotal)
	diffGender := spread(maleRatio)
	diffSize := spreadInt(sizes)

	diffSubjectSum := 0.0
	for j := 0; j < numSubjects; j++ {
		col := make([]float64, k)
		for i := 0; i < k; i++ {
			col[i] = avgSubject[i][j]
		}
		diffSubjectSum += spread(col)
	}

	penalty := 0.0
	penalty += penaltyTerm(diffTotal, params.MaxScoreDiff, params.PenaltyPower, params.TotalScorePenaltyWeight)
	penalty += penaltyTerm(diffSubjectSum, params.MaxScoreDiff, params.PenaltyPower, params.SubjectScorePenaltyWeight)
	penalty += penaltyTerm(diffGender, params.MaxGenderRatioDiff, params.PenaltyPower, params.GenderRatioPenaltyWeight)
	penalty += penaltyTerm(float64(diffSize), float64(params.MaxClassSizeDiff), params.PenaltyPower, params.effectiveClassSizePenaltyWeight())

	soft := params.TotalVarianceWeight*variance(avgTotal) + params.GenderVarianceWeight*variance(maleRatio)
	for j := 0; j < numSubjects; j++ {
		col := make([]float64, k)
		for i := 0; i < k; i++ {
			col[i] = avgSubject[i][j]
		}
		soft += params.SubjectVarianceWeight * variance(col)
	}

	return penalty + soft
}

// HardPenalty isolates the hard-constraint component of Cost. The SA
// worker's early-stop trigger (spec.md §4.4 step 6) needs this value
// separately from the soft-variance component.
func HardPenalty(classes []*Class, params OptimizationParams) float64 {
	k := len(classes)
	if k == 0 {
		return 0
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

	diffTotal := spread(avgTotal)
	diffGender := spread(maleRatio)
	diffSize := spreadInt(sizes)

	diffSubjectSum := 0.0
	for j := 0; j < numSubjects; j++ {
		col := make([]float64, k)
		for i := 0; i < k; i++ {
			col[i] = avgSubject[i][j]
		}
		diffSubjectSum += spread(col)
	}

	penalty := 0.0
	penalty += penaltyTerm(diffTotal, params.MaxScoreDiff, params.PenaltyPower, params.TotalScorePenaltyWeight)
	penalty += penaltyTerm(diffSubjectSum, params.MaxScoreDiff, params.PenaltyPower, params.SubjectScorePenaltyWeight)
	penalty += penaltyTerm(diffGender, params.MaxGenderRatioDiff, params.PenaltyPower, params.GenderRatioPenaltyWeight)
	penalty += penaltyTerm(float64(diffSize), float64(params.MaxClassSizeDiff), params.PenaltyPower, params.effectiveClassSizePenaltyWeight())
	return penalty
}

// penaltyTerm implements spec.md §4.2 step 3: threshold semantics are
// strict greater-than; only the excess over the threshold is
// penalized, raised to penaltyPower and scaled by weight.
func penaltyTerm(diff, threshold, power, weight float64) float64 {
	if diff <= threshold {
		return 0
	}
	excess := diff - threshold
	return math.Pow(excess, power) * weight
}

// spread returns max(values) - min(values).
func spread(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

func spreadInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi - lo
}

// variance returns the population variance of values.
func variance(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(n)
}

package classmix

import "math"

// genderBias weights the gender-balance term against the raw running
// total when scoring candidate placements.
const genderBias = 10000.0

// InitializeLPT produces a feasible, size-near-balanced partition of
// students into k classes, biased toward gender balance, following
// the Longest-Processing-Time heuristic.
//
// Students are visited in descending Total order (ties broken by
// original index) and placed into the class that minimizes a
// candidate cost combining the class's running total with a
// male-ratio-to-0.5 penalty. After initialization every class size is
// within {floor(N/K), ceil(N/K)}.
func InitializeLPT(students []Student, k int) []*Class {
	n := len(students)
	numSubjects := 0
	if n > 0 {
		numSubjects = len(students[0].Scores)
	}

	classes := make([]*Class, k)
	for i := range classes {
		classes[i] = NewClass(i+1, numSubjects)
	}

	// targetSize[i] caps class i at floor(n/k), bumped to ceil(n/k) for
	// the first n%k classes. Respecting this cap while placing
	// students is what actually guarantees every class ends up in
	// {floor(n/k), ceil(n/k)} — the gender-bias term alone cannot be
	// relied on to keep classes from growing unevenly when running
	// totals stay small relative to genderBias.
	floor, remainder := n/k, n%k
	targetSize := make([]int, k)
	for i := range targetSize {
		targetSize[i] = floor
		if i < remainder {
			targetSize[i]++
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	stableSortByTotalDesc(order, students)

	for _, idx := range order {
		s := &students[idx]
		best := -1
		bestCost := math.Inf(1)

		for ci, c := range classes {
			if c.Stats.Size >= targetSize[ci] {
				continue
			}

			hypotheticalMale := float64(c.Stats.MaleCount)
			if s.Gender == Male {
				hypotheticalMale++
			}
			hypotheticalSize := float64(c.Stats.Size + 1)
			hypotheticalRatio := hypotheticalMale / hypotheticalSize

			candidate := c.Stats.SumTotal + genderBias*math.Abs(hypotheticalRatio-0.5)

			switch {
			case candidate < bestCost:
				bestCost, best = candidate, ci
			case candidate == bestCost && best >= 0:
				// Tie-break: smaller size, then lower index.
				if c.Stats.Size < classes[best].Stats.Size {
					best = ci
				}
			}
		}

		classes[best].Add(idx, s)
	}

	return classes
}

package classmix

import (
	"math/rand"
	"sort"
	"time"
)

// defaultRand creates a time-seeded random number generator, used
// when a caller does not supply one explicitly.
func defaultRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// deriveRand creates an independent RNG for worker i, seeded from the
// master seed combined with the worker index, so that parallel
// workers never share a source.
func deriveRand(master *rand.Rand, i int) *rand.Rand {
	seed := master.Int63() + int64(i)*2654435761
	return rand.New(rand.NewSource(seed))
}

// stableSortByTotalDesc sorts student indices by descending Total,
// ties broken by the smaller original index.
func stableSortByTotalDesc(indices []int, students []Student) {
	sort.SliceStable(indices, func(a, b int) bool {
		return students[indices[a]].Total > students[indices[b]].Total
	})
}

// genderPresentInBoth reports whether class a and class b each have
// at least one student of the same gender, returning that gender and
// true if so. When both genders qualify it returns Male.
func genderPresentInBoth(a, b *Class) (Gender, bool) {
	if a.Stats.MaleCount > 0 && b.Stats.MaleCount > 0 {
		return Male, true
	}
	if a.Stats.FemaleCount > 0 && b.Stats.FemaleCount > 0 {
		return Female, true
	}
	return 0, false
}

// pickStudentOfGender returns the class-local slot of a uniformly
// random student of the given gender in c, or -1 if none exists.
func pickStudentOfGender(c *Class, students []Student, gender Gender, rng *rand.Rand) int {
	candidates := make([]int, 0, len(c.Students))
	for pos, idx := range c.Students {
		if students[idx].Gender == gender {
			candidates = append(candidates, pos)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[rng.Intn(len(candidates))]
}

// pickDistinctClasses returns two distinct class indices drawn
// uniformly from [0, k).
func pickDistinctClasses(k int, rng *rand.Rand) (int, int) {
	a := rng.Intn(k)
	b := rng.Intn(k - 1)
	if b >= a {
		b++
	}
	return a, b
}

// maxIntSlice and minIntSlice return the max/min of a non-empty slice.
func maxIntSlice(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minIntSlice(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

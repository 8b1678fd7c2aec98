package classmix

import (
	"fmt"
	"math/rand"
)

// GenerateSyntheticStudents builds n students with numSubjects scores
// each drawn from Normal(100, 15), clamped to [0, 150], with gender
// assigned by independent coin flip. It is used by tests and
// benchmarks to exercise the engine at scale without requiring a real
// roster.
func GenerateSyntheticStudents(n, numSubjects int, rng *rand.Rand) []Student {
	students := make([]Student, n)
	for i := 0; i < n; i++ {
		scores := make([]float64, numSubjects)
		total := 0.0
		for j := range scores {
			v := rng.NormFloat64()*15 + 100
			if v < 0 {
				v = 0
			} else if v > 150 {
				v = 150
			}
			scores[j] = v
			total += v
		}

		gender := Male
		if rng.Float64() < 0.5 {
			gender = Female
		}

		students[i] = Student{
			ID:     fmt.Sprintf("S%d", i+1),
			Gender: gender,
			Scores: scores,
			Total:  total,
		}
	}
	return students
}

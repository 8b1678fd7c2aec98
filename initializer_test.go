package classmix

import (
	"math/rand"
	"testing"
)

func TestInitializeLPTPartitionsAllStudents(t *testing.T) {
	tests := []struct {
		name string
		n    int
		k    int
	}{
		{"even split", 40, 4},
		{"uneven split", 41, 4},
		{"single class", 10, 1},
		{"more classes than students", 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			students := GenerateSyntheticStudents(tt.n, 3, rng)
			classes := InitializeLPT(students, tt.k)

			if len(classes) != tt.k {
				t.Fatalf("len(classes) = %v, want %v", len(classes), tt.k)
			}

			seen := make(map[int]bool, tt.n)
			total := 0
			for _, c := range classes {
				total += len(c.Students)
				for _, idx := range c.Students {
					if seen[idx] {
						t.Errorf("student index %d assigned to more than one class", idx)
					}
					seen[idx] = true
				}
			}
			if total != tt.n {
				t.Errorf("total assigned students = %v, want %v", total, tt.n)
			}
		})
	}
}

func TestInitializeLPTSizeBound(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n, k := 103, 10
	students := GenerateSyntheticStudents(n, 2, rng)
	classes := InitializeLPT(students, k)

	floor, ceil := n/k, n/k+1
	for _, c := range classes {
		if c.Stats.Size != floor && c.Stats.Size != ceil {
			t.Errorf("class %d size = %v, want %v or %v", c.ID, c.Stats.Size, floor, ceil)
		}
	}
}

func TestInitializeLPTStatsConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	students := GenerateSyntheticStudents(50, 3, rng)
	classes := InitializeLPT(students, 5)

	for _, c := range classes {
		want := recomputeStats(c, students)
		if c.Stats.SumTotal != want.SumTotal {
			t.Errorf("class %d SumTotal = %v, want %v", c.ID, c.Stats.SumTotal, want.SumTotal)
		}
		if c.Stats.MaleCount != want.MaleCount || c.Stats.FemaleCount != want.FemaleCount {
			t.Errorf("class %d gender counts mismatch", c.ID)
		}
	}
}

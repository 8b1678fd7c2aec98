// Package classmix implements a balanced classroom-assignment engine.
//
// Given N students with per-subject scores and a binary gender
// attribute, the engine partitions them into K classes so that
// per-class averages (total and per-subject), gender ratios, and
// class sizes are as equal as possible, subject to configurable hard
// thresholds. It solves an instance of the NP-hard multiway number
// partitioning problem via simulated annealing seeded by an
// LPT-style constructive initializer.
package classmix

// Gender is the binary gender attribute carried by a Student.
type Gender int

const (
	Male Gender = iota
	Female
)

// Student is an immutable record once loaded. Subject order is global
// and identical across all students.
type Student struct {
	ID     string
	Name   string
	Gender Gender
	Scores []float64
	Total  float64
	Extra  map[string]string
}

// CachedStats holds a class's running aggregate statistics. It is
// maintained incrementally by Add/Remove so that the cost evaluator
// never has to walk a class's student list.
type CachedStats struct {
	SumTotal    float64
	SubjectSums []float64
	MaleCount   int
	FemaleCount int
	Size        int
}

// newCachedStats allocates a zeroed stats block sized for numSubjects.
func newCachedStats(numSubjects int) CachedStats {
	return CachedStats{SubjectSums: make([]float64, numSubjects)}
}

// Class is one of K output partitions: a list of student indices into
// the shared, read-only student slice, plus cached aggregate stats.
type Class struct {
	ID       int
	Students []int
	Stats    CachedStats
}

// NewClass creates an empty class with stats sized for numSubjects.
func NewClass(id, numSubjects int) *Class {
	return &Class{
		ID:    id,
		Stats: newCachedStats(numSubjects),
	}
}

// Add inserts a student into the class and updates cached stats in
// O(1+S), where S is the subject count.
func (c *Class) Add(idx int, s *Student) {
	c.Students = append(c.Students, idx)
	c.Stats.SumTotal += s.Total
	for j, v := range s.Scores {
		c.Stats.SubjectSums[j] += v
	}
	if s.Gender == Male {
		c.Stats.MaleCount++
	} else {
		c.Stats.FemaleCount++
	}
	c.Stats.Size++
}

// Remove deletes the student with index idx from the class and
// updates cached stats in O(1+S). Locating idx is a linear scan of the
// class's student list, so Remove as a whole is O(len(Students)+S).
// It panics if idx is not present, which would indicate a broken
// caller invariant.
func (c *Class) Remove(idx int, s *Student) {
	pos := -1
	for i, v := range c.Students {
		if v == idx {
			pos = i
			break
		}
	}
	if pos < 0 {
		panic("classmix: Remove called with student not in class")
	}
	last := len(c.Students) - 1
	c.Students[pos] = c.Students[last]
	c.Students = c.Students[:last]

	c.Stats.SumTotal -= s.Total
	for j, v := range s.Scores {
		c.Stats.SubjectSums[j] -= v
	}
	if s.Gender == Male {
		c.Stats.MaleCount--
	} else {
		c.Stats.FemaleCount--
	}
	c.Stats.Size--
}

// Clone returns a deep copy of the class, independent of the
// original's backing slices.
func (c *Class) Clone() *Class {
	clone := &Class{
		ID:       c.ID,
		Students: make([]int, len(c.Students)),
		Stats: CachedStats{
			SumTotal:    c.Stats.SumTotal,
			SubjectSums: make([]float64, len(c.Stats.SubjectSums)),
			MaleCount:   c.Stats.MaleCount,
			FemaleCount: c.Stats.FemaleCount,
			Size:        c.Stats.Size,
		},
	}
	copy(clone.Students, c.Students)
	copy(clone.Stats.SubjectSums, c.Stats.SubjectSums)
	return clone
}

// CloneClasses deep-copies a full assignment of classes, used by the
// parallel driver to hand each worker an independent starting point.
func CloneClasses(classes []*Class) []*Class {
	out := make([]*Class, len(classes))
	for i, c := range classes {
		out[i] = c.Clone()
	}
	return out
}

// recomputeStats rebuilds a class's cached stats from scratch by
// walking its student list. It is used only by tests to check the
// incremental bookkeeping in Add/Remove against an independent
// computation; neither the hot path nor the validator recomputes from
// the student list.
func recomputeStats(c *Class, students []Student) CachedStats {
	stats := newCachedStats(len(c.Stats.SubjectSums))
	for _, idx := range c.Students {
		s := &students[idx]
		stats.SumTotal += s.Total
		for j, v := range s.Scores {
			stats.SubjectSums[j] += v
		}
		if s.Gender == Male {
			stats.MaleCount++
		} else {
			stats.FemaleCount++
		}
		stats.Size++
	}
	return stats
}

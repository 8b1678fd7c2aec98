package classmix

import "math/rand"

// workerResult is what a single SA worker returns to the driver.
type workerResult struct {
	classes []*Class
	cost    float64
}

// runAnnealingWorker executes a single-threaded simulated annealing
// search starting from the given initial assignment, moving through
// the search space via randomized two-student swaps.
//
// stopFlag is polled periodically; once any worker signals it, every
// other worker winds down and returns its best-so-far result rather
// than running to maxIterations.
func runAnnealingWorker(
	initial []*Class,
	students []Student,
	params OptimizationParams,
	maxIterations int,
	initialTemperature float64,
	rng *rand.Rand,
	stopFlag *earlyStopFlag,
) workerResult {
	current := CloneClasses(initial)
	currentCost := Cost(current, params)

	best := CloneClasses(current)
	bestCost := currentCost

	scheduler := newAnnealingScheduler(initialTemperature, params.CoolingRate)

	iterationsSinceImprovement := 0
	acceptedCount := 0
	k := len(current)

	for it := 0; it < maxIterations; it++ {
		if it%256 == 0 && stopFlag != nil && stopFlag.isSet() {
			break
		}
		if k < 2 {
			break
		}

		ca, cb := pickDistinctClasses(k, rng)
		classA, classB := current[ca], current[cb]

		posA, posB, ok := selectSwapPair(classA, classB, students, params.SameGenderSwapProbability, rng)
		if !ok {
			continue
		}
		idxA, idxB := classA.Students[posA], classB.Students[posB]

		applySwap(classA, classB, idxA, idxB, students)
		newCost := Cost(current, params)
		delta := newCost - currentCost

		if shouldAccept(delta, scheduler.temperature(), rng) {
			currentCost = newCost
			acceptedCount++

			if currentCost < bestCost {
				bestCost = currentCost
				best = CloneClasses(current)
				iterationsSinceImprovement = 0
			} else {
				iterationsSinceImprovement++
			}
		} else {
			// Revert: idxA now sits in classB and idxB in classA, so
			// swapping them back in the opposite order restores state.
			applySwap(classA, classB, idxB, idxA, students)
			iterationsSinceImprovement++
		}

		scheduler.cool()

		if iterationsSinceImprovement > params.ReheatAfterIterations && acceptedCount < 100 {
			scheduler.reheat()
			iterationsSinceImprovement = 0
			acceptedCount = 0
		}

		if bestCost < params.GoodSolutionThreshold && HardPenalty(best, params) == 0 {
			if stopFlag != nil {
				stopFlag.set()
			}
			break
		}
	}

	return workerResult{classes: best, cost: bestCost}
}

// selectSwapPair picks one of spec.md §4.4 step 3's two move kinds:
// with probability sameGenderProb a same-gender swap, otherwise a
// cross-gender swap. Each kind either finds a valid pair or reports
// ok=false, in which case the caller skips the iteration — the
// outer loop's resampling of a fresh class pair on the next iteration
// is the "bounded number of attempts" the spec calls for.
func selectSwapPair(a, b *Class, students []Student, sameGenderProb float64, rng *rand.Rand) (int, int, bool) {
	if len(a.Students) == 0 || len(b.Students) == 0 {
		return 0, 0, false
	}
	if rng.Float64() < sameGenderProb {
		return selectSameGenderPair(a, b, students, rng)
	}
	return selectCrossGenderPair(a, b, students, rng)
}

// selectSameGenderPair picks a student of the same gender g from each
// of a and b, choosing g uniformly among genders present in both
// classes (spec.md §4.4 step 3, same-gender branch).
func selectSameGenderPair(a, b *Class, students []Student, rng *rand.Rand) (int, int, bool) {
	gender, ok := genderPresentInBoth(a, b)
	if !ok {
		return 0, 0, false
	}
	if gender == Male && a.Stats.FemaleCount > 0 && b.Stats.FemaleCount > 0 && rng.Float64() < 0.5 {
		gender = Female
	}
	posA := pickStudentOfGender(a, students, gender, rng)
	posB := pickStudentOfGender(b, students, gender, rng)
	if posA < 0 || posB < 0 {
		return 0, 0, false
	}
	return posA, posB, true
}

// selectCrossGenderPair picks one male and one female student across
// {a, b} such that the two lie in different classes (spec.md §4.4
// step 3, cross-gender branch): either a's male swaps with b's
// female, or a's female swaps with b's male. When both combinations
// are available, one is chosen uniformly at random.
func selectCrossGenderPair(a, b *Class, students []Student, rng *rand.Rand) (int, int, bool) {
	aMaleBFemale := a.Stats.MaleCount > 0 && b.Stats.FemaleCount > 0
	aFemaleBMale := a.Stats.FemaleCount > 0 && b.Stats.MaleCount > 0

	switch {
	case !aMaleBFemale && !aFemaleBMale:
		return 0, 0, false
	case aMaleBFemale && aFemaleBMale:
		if rng.Float64() < 0.5 {
			return crossGenderPositions(a, b, students, Male, Female, rng)
		}
		return crossGenderPositions(a, b, students, Female, Male, rng)
	case aMaleBFemale:
		return crossGenderPositions(a, b, students, Male, Female, rng)
	default:
		return crossGenderPositions(a, b, students, Female, Male, rng)
	}
}

// crossGenderPositions picks a student of genderA in a and a student
// of genderB in b.
func crossGenderPositions(a, b *Class, students []Student, genderA, genderB Gender, rng *rand.Rand) (int, int, bool) {
	posA := pickStudentOfGender(a, students, genderA, rng)
	posB := pickStudentOfGender(b, students, genderB, rng)
	if posA < 0 || posB < 0 {
		return 0, 0, false
	}
	return posA, posB, true
}

// applySwap exchanges student idxA (currently in a) with student
// idxB (currently in b), updating both classes' cached stats.
func applySwap(a, b *Class, idxA, idxB int, students []Student) {
	sa, sb := &students[idxA], &students[idxB]
	a.Remove(idxA, sa)
	b.Remove(idxB, sb)
	a.Add(idxB, sb)
	b.Add(idxA, sa)
}

// Simulated Annealing cooling schedule and Metropolis acceptance.
//
// Reference:
// Kirkpatrick, S., Gelatt, C. D., & Vecchi, M. P. (1983). Optimization by
// Simulated Annealing. Science, 220(4598), 671-680.
// DOI: 10.1126/science.220.4598.671
//
// The Metropolis criterion allows probabilistic acceptance of worse
// solutions to escape local optima; the temperature schedule controls
// how readily worse solutions are accepted over the run.
package classmix

import (
	"math"
	"math/rand"
)

// annealingScheduler manages the exponential-cooling temperature
// schedule used by an SA worker.
type annealingScheduler struct {
	initialTemperature float64
	currentTemperature float64
	coolingRate        float64
}

func newAnnealingScheduler(initialTemp, coolingRate float64) *annealingScheduler {
	return &annealingScheduler{
		initialTemperature: initialTemp,
		currentTemperature: initialTemp,
		coolingRate:        coolingRate,
	}
}

// cool applies one step of exponential cooling: T(k) = T0 * rate^k.
func (a *annealingScheduler) cool() {
	a.currentTemperature *= a.coolingRate
	if a.currentTemperature < 1e-10 {
		a.currentTemperature = 1e-10
	}
}

// reheat resets the temperature to half the initial value.
func (a *annealingScheduler) reheat() {
	a.currentTemperature = a.initialTemperature * 0.5
}

func (a *annealingScheduler) temperature() float64 {
	return a.currentTemperature
}

// acceptanceProbability returns exp(-delta/T) for delta > 0, and 1 for
// delta <= 0 (an improving or neutral move is always accepted).
func acceptanceProbability(delta, temperature float64) float64 {
	if delta <= 0 {
		return 1.0
	}
	return math.Exp(-delta / temperature)
}

// shouldAccept implements the Metropolis criterion. rng must not be nil.
func shouldAccept(delta, temperature float64, rng *rand.Rand) bool {
	return rng.Float64() < acceptanceProbability(delta, temperature)
}

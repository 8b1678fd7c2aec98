package classmix

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// earlyStopFlag is a shared, lock-free signal that lets any SA worker
// tell every other worker to wind down once a sufficiently good
// solution has been found. It is the only state shared across
// workers; everything else a worker touches is its own clone.
type earlyStopFlag struct {
	flag atomic.Bool
}

func (f *earlyStopFlag) set()        { f.flag.Store(true) }
func (f *earlyStopFlag) isSet() bool { return f.flag.Load() }

// Metrics holds optional Prometheus instrumentation for DivideStudents
// runs. A nil *Metrics (the DivideConfig default) disables
// instrumentation entirely.
type Metrics struct {
	RunsTotal       prometheus.Counter
	EarlyStopsTotal prometheus.Counter
	BestCost        prometheus.Gauge
}

// NewMetrics builds and registers the standard Metrics set on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "classmix_runs_total",
			Help: "Total number of DivideStudents runs.",
		}),
		EarlyStopsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "classmix_early_stops_total",
			Help: "Total number of runs that ended via early stop rather than exhausting max iterations.",
		}),
		BestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "classmix_best_cost",
			Help: "Cost of the best assignment found by the most recent run.",
		}),
	}
	reg.MustRegister(m.RunsTotal, m.EarlyStopsTotal, m.BestCost)
	return m
}

// DivideResult is the outcome of a DivideStudents run.
type DivideResult struct {
	RunID     uuid.UUID
	Classes   []*Class
	Cost      float64
	EarlyStop bool
	Report    ValidationReport
}

// DivideStudents partitions students into config.NumClasses balanced
// classes via LPT initialization followed by parallel simulated
// annealing. Each worker starts from the same LPT assignment with a
// staggered initial temperature and an independent derived RNG;
// workers share nothing but the early-stop flag.
func DivideStudents(students []Student, config DivideConfig) (*DivideResult, error) {
	if len(students) == 0 {
		return nil, ErrEmptyInput
	}
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if config.NumClasses > len(students) {
		return nil, fmt.Errorf("%w: num_classes %d exceeds student count %d",
			ErrInvalidConfiguration, config.NumClasses, len(students))
	}

	params := config.OptimizationParams

	master := config.Rand
	if master == nil {
		master = defaultRand()
	}

	numWorkers := params.NumParallelInstances
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
		if limit := AdaptiveParams(len(students)).NumParallelInstances; numWorkers > limit {
			numWorkers = limit
		}
	}

	initial := InitializeLPT(students, config.NumClasses)
	stop := &earlyStopFlag{}

	results := make([]workerResult, numWorkers)
	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		workerRand := deriveRand(master, i)
		initialTemp := params.InitialTemperature + float64(i)*params.InitialTemperature*0.1

		go func(slot int, rng *rand.Rand, temp float64) {
			defer wg.Done()
			results[slot] = runAnnealingWorker(initial, students, params, config.MaxIterations, temp, rng, stop)
		}(i, workerRand, initialTemp)
	}
	wg.Wait()

	bestIdx := 0
	for i := 1; i < len(results); i++ {
		if results[i].cost < results[bestIdx].cost {
			bestIdx = i
		}
	}
	best := results[bestIdx]

	report := ValidateWithParams(best.classes, params)

	if config.Metrics != nil {
		config.Metrics.RunsTotal.Inc()
		config.Metrics.BestCost.Set(best.cost)
		if stop.isSet() {
			config.Metrics.EarlyStopsTotal.Inc()
		}
	}

	return &DivideResult{
		RunID:     uuid.New(),
		Classes:   best.classes,
		Cost:      best.cost,
		EarlyStop: stop.isSet(),
		Report:    report,
	}, nil
}

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "apple_boxes"

// Solve outcomes used as the "outcome" label value.
const (
	OutcomeOK           = "ok"
	OutcomeInsufficient = "insufficient"
	OutcomeInvalid      = "invalid"
)

var (
	algorithmLabels = []string{"algorithm"}

	// BoxBuckets covers box counts from a single box to a few thousand.
	BoxBuckets = prometheus.ExponentialBuckets(1, 2, 13)
	// SolveLatencyBuckets covers solve latency from 1us to 100ms.
	SolveLatencyBuckets = []float64{
		0.000001, 0.0000025, 0.000005, 0.00001, 0.000025, 0.00005, 0.0001,
		0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
	}
)

// Recorder holds the collectors describing solver activity.
type Recorder struct {
	solves   *prometheus.CounterVec
	boxes    *prometheus.HistogramVec
	duration *prometheus.HistogramVec
}

// NewRecorder creates the solver collectors and registers them with reg.
// A nil registerer leaves the collectors unregistered.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "solve_total",
				Help:      "Counter of solve calls broken out by algorithm and outcome.",
			},
			append(algorithmLabels, "outcome"),
		),
		boxes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "boxes_used",
				Help:      "Distribution of the number of boxes chosen per successful solve.",
				Buckets:   BoxBuckets,
			},
			algorithmLabels,
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "solve_duration_seconds",
				Help:      "Solve latency in seconds.",
				Buckets:   SolveLatencyBuckets,
			},
			algorithmLabels,
		),
	}

	if reg == nil {
		return r, nil
	}

	var err error
	if r.solves, err = register(reg, r.solves); err != nil {
		return nil, err
	}
	if r.boxes, err = register(reg, r.boxes); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, r.duration); err != nil {
		return nil, err
	}
	return r, nil
}

// register adds c to reg, returning the collector that is already registered
// under the same descriptor if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveSolve records one solve. boxes is ignored for invalid outcomes.
func (r *Recorder) ObserveSolve(algorithm, outcome string, boxes int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(algorithm, outcome).Inc()
	r.duration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
	if outcome != OutcomeInvalid {
		r.boxes.WithLabelValues(algorithm).Observe(float64(boxes))
	}
}

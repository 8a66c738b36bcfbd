package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PlannerCollector bundles the planner's Prometheus metrics and provides
// helpers to wire them into the HTTP API and the solve path.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	Solves         *prometheus.CounterVec
	SolveDurations *prometheus.HistogramVec

	APIRequests  *prometheus.CounterVec
	APIDurations *prometheus.HistogramVec

	StoreProblems    prometheus.Gauge
	StoreAllocations prometheus.Gauge
}

// NewPlannerCollector registers the planner metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_solves_total",
		Help: "Total number of solve attempts, labeled by outcome.",
	}, []string{"outcome"})
	solves, err := registerCounterVec(reg, solves, "planner_solves_total")
	if err != nil {
		return nil, err
	}

	solveDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_solve_duration_seconds",
		Help:    "Solve latency in seconds, labeled by outcome.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"outcome"})
	solveDurations, err = registerHistogramVec(reg, solveDurations, "planner_solve_duration_seconds")
	if err != nil {
		return nil, err
	}

	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_requests_total",
		Help: "Total number of handled API requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"})
	apiRequests, err = registerCounterVec(reg, apiRequests, "api_requests_total")
	if err != nil {
		return nil, err
	}

	apiDurations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "API request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"})
	apiDurations, err = registerHistogramVec(reg, apiDurations, "api_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	problems, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "store_problems",
		Help: "Current number of problems in the plan store.",
	}), "store_problems")
	if err != nil {
		return nil, err
	}
	allocations, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "store_allocations",
		Help: "Current number of allocations in the plan store.",
	}), "store_allocations")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:         gatherer,
		Solves:           solves,
		SolveDurations:   solveDurations,
		APIRequests:      apiRequests,
		APIDurations:     apiDurations,
		StoreProblems:    problems,
		StoreAllocations: allocations,
	}, nil
}

// ObserveSolve satisfies the planner's SolveRecorder interface: one count
// and one latency sample per solve attempt.
func (c *PlannerCollector) ObserveSolve(outcome string, seconds float64) {
	if c == nil {
		return
	}
	if c.Solves != nil {
		c.Solves.WithLabelValues(outcome).Inc()
	}
	if c.SolveDurations != nil {
		c.SolveDurations.WithLabelValues(outcome).Observe(seconds)
	}
}

// SetStoreCounts satisfies the plan store's StoreMetricsRecorder interface
// so the store can drive the gauges directly from its mutators.
func (c *PlannerCollector) SetStoreCounts(problems, allocations int) {
	if c == nil {
		return
	}
	if c.StoreProblems != nil {
		c.StoreProblems.Set(float64(problems))
	}
	if c.StoreAllocations != nil {
		c.StoreAllocations.Set(float64(allocations))
	}
}

// Middleware records request counts and durations for an HTTP route.
func (c *PlannerCollector) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if c == nil {
			return
		}
		if c.APIRequests != nil {
			c.APIRequests.WithLabelValues(route, r.Method, fmt.Sprintf("%d", rec.status)).Inc()
		}
		if c.APIDurations != nil {
			c.APIDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

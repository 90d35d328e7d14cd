package monitor

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/contributory/ai-gateway/relay/channel/horde"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ai_gateway"

// Collector owns every gateway metric. It also observes AI Horde jobs.
type Collector struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	concurrent  prometheus.Gauge
	submissions *prometheus.CounterVec
	submitted   prometheus.Counter
	jobs        *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

// NewCollector registers the gateway metrics on registry, or on a fresh
// registry with the Go and process collectors when registry is nil.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	c := &Collector{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and outcome.",
			// image jobs poll for up to three minutes
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 180, 300},
		}, []string{"route", "success"}),
		concurrent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served.",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "horde",
			Name:      "submission_attempts_total",
			Help:      "AI Horde submission attempts by ladder candidate and result.",
		}, []string{"candidate", "result"}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "horde",
			Name:      "jobs_submitted_total",
			Help:      "AI Horde jobs accepted by the backend.",
		}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "horde",
			Name:      "jobs_total",
			Help:      "AI Horde jobs by terminal outcome.",
		}, []string{"outcome"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "horde",
			Name:      "job_duration_seconds",
			Help:      "Wall time from first submission to terminal outcome.",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 90, 120, 180, 240},
		}, []string{"outcome"}),
	}
	registry.MustRegister(c.requests, c.latency, c.concurrent, c.submissions, c.submitted, c.jobs, c.jobDuration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

func (c *Collector) IncrementConcurrent() {
	c.concurrent.Inc()
}

func (c *Collector) DecrementConcurrent() {
	c.concurrent.Dec()
}

// RecordRequest counts one finished HTTP request. 2xx and 3xx are successes.
func (c *Collector) RecordRequest(route string, statusCode int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	success := statusCode >= 200 && statusCode < 400
	c.requests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(route, strconv.FormatBool(success)).Observe(latency.Seconds())
}

func (c *Collector) SubmissionAttempt(_ context.Context, candidate horde.Candidate, err error) {
	result := "accepted"
	if err != nil {
		result = "rejected"
	}
	c.submissions.WithLabelValues(candidate.Name, result).Inc()
}

func (c *Collector) JobSubmitted(context.Context, horde.JobHandle, horde.JobConfiguration) {
	c.submitted.Inc()
}

func (c *Collector) JobFinished(_ context.Context, _ horde.JobHandle, err error, elapsed time.Duration) {
	outcome := horde.Outcome(err)
	c.jobs.WithLabelValues(outcome).Inc()
	c.jobDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Default is the process-wide collector served on /metrics.
var Default = NewCollector(nil)

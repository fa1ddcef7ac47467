package internal

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector records processor activity. Counters are always kept
// for Stats; the Prometheus collectors are registered with reg when it is
// non-nil.
type MetricsCollector struct {
	totalOperations atomic.Int64
	failedOps       atomic.Int64
	startTime       time.Time

	operations *prometheus.CounterVec
	errors     *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	cacheHits  prometheus.Counter
	cacheMiss  prometheus.Counter
	inputBytes prometheus.Histogram
}

// NewMetricsCollector creates a collector registered with reg. A nil reg
// keeps the collectors unregistered. Collectors already registered with reg
// by another processor are shared, so their series aggregate across
// processors while Operations and Uptime stay per collector.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		startTime: time.Now(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonnode",
			Name:      "operations_total",
			Help:      "Total number of processor operations by operation and result.",
		}, []string{"operation", "result"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonnode",
			Name:      "errors_total",
			Help:      "Total number of failed operations by error type.",
		}, []string{"type"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jsonnode",
			Name:      "operation_duration_seconds",
			Help:      "Time spent in processor operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"operation"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jsonnode",
			Name:      "cache_hits_total",
			Help:      "Total number of parse cache hits.",
		}),
		cacheMiss: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jsonnode",
			Name:      "cache_misses_total",
			Help:      "Total number of parse cache misses.",
		}),
		inputBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jsonnode",
			Name:      "input_bytes",
			Help:      "Size of documents handed to the processor.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		}),
	}

	mc.operations = register(reg, mc.operations)
	mc.errors = register(reg, mc.errors)
	mc.duration = register(reg, mc.duration)
	mc.cacheHits = register(reg, mc.cacheHits)
	mc.cacheMiss = register(reg, mc.cacheMiss)
	mc.inputBytes = register(reg, mc.inputBytes)
	return mc
}

// register adds c to reg, returning the collector reg already holds for the
// same descriptor. Any other registration error panics like MustRegister.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

// RecordOperation records a completed operation
func (mc *MetricsCollector) RecordOperation(operation string, duration time.Duration, size int, success bool) {
	mc.totalOperations.Add(1)
	result := "success"
	if !success {
		mc.failedOps.Add(1)
		result = "error"
	}
	mc.operations.WithLabelValues(operation, result).Inc()
	mc.duration.WithLabelValues(operation).Observe(duration.Seconds())
	if size > 0 {
		mc.inputBytes.Observe(float64(size))
	}
}

// RecordCacheHit records a cache hit
func (mc *MetricsCollector) RecordCacheHit() {
	mc.cacheHits.Inc()
}

// RecordCacheMiss records a cache miss
func (mc *MetricsCollector) RecordCacheMiss() {
	mc.cacheMiss.Inc()
}

// RecordError records an error by type
func (mc *MetricsCollector) RecordError(errorType string) {
	mc.errors.WithLabelValues(errorType).Inc()
}

// Operations returns the total and failed operation counts
func (mc *MetricsCollector) Operations() (total, failed int64) {
	return mc.totalOperations.Load(), mc.failedOps.Load()
}

// Uptime returns the time since the collector was created
func (mc *MetricsCollector) Uptime() time.Duration {
	return time.Since(mc.startTime)
}

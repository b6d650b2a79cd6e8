// Package metrics provides Prometheus metrics for the IVR reports tools.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// Result label values.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultError   = "error"
	ResultEmpty   = "empty"
)

// LoginsTotal counts login attempts by outcome.
var LoginsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ivr",
	Name:      "logins_total",
	Help:      "Login attempts against the backend, by result",
}, []string{"result"})

// FetchesTotal counts record fetches by outcome.
var FetchesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ivr",
	Name:      "fetches_total",
	Help:      "Record fetches against the backend, by result",
}, []string{"result"})

// FetchDuration tracks how long record fetches take.
var FetchDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "ivr",
	Name:      "fetch_duration_seconds",
	Help:      "Duration of record fetches",
	Buckets:   prometheus.DefBuckets,
})

// RecordsLoaded is the size of the record set currently held in memory.
var RecordsLoaded = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "ivr",
	Name:      "records_loaded",
	Help:      "Interaction records currently loaded",
})

// ExportsTotal counts CSV exports by outcome.
var ExportsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ivr",
	Name:      "exports_total",
	Help:      "CSV exports, by result",
}, []string{"result"})

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

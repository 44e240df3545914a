// Package metrics exposes Prometheus instrumentation for the API.
//
// The HTTP middleware lives in the presentation layer; this package owns the
// collectors and the registry they are registered against.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shopbill"

var (
	// RequestDuration tracks request latency by method, route and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RequestTotal counts HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	// RequestInFlight is the number of requests being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// BillOperations counts bill lifecycle operations by outcome.
	BillOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bills",
			Name:      "operations_total",
			Help:      "Bill create/update/delete operations by result.",
		},
		[]string{"operation", "result"}, // result: "ok" | "error"
	)

	// StockRejections counts reservations refused because stock was short.
	StockRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stock",
		Name:      "reservation_rejections_total",
		Help:      "Stock reservations rejected for insufficient stock.",
	})

	// StockRollbacks counts compensating releases performed after a failed bill operation.
	StockRollbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "stock",
		Name:      "rollbacks_total",
		Help:      "Stock journal rollbacks after a failed bill operation.",
	})
)

// Registry is the registry every collector above is registered on.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Registry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		BillOperations,
		StockRejections,
		StockRollbacks,
	)
}

// Handler serves the metrics page.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, route, status string, start time.Time) {
	RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
	RequestTotal.WithLabelValues(method, route, status).Inc()
}

// RecordBillOperation records the outcome of a bill operation.
func RecordBillOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BillOperations.WithLabelValues(operation, result).Inc()
}

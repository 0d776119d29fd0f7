package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sfa_http_requests_total",
		Help: "Total HTTP requests by method, path and status code.",
	},
	[]string{"method", "path", "status"},
)

var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "sfa_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

var IncentivesGenerated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "sfa_incentives_generated_total",
		Help: "Incentives created by the bonus check.",
	},
)

var ReconciliationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sfa_report_reconciliations_total",
		Help: "Report reconciliations by result.",
	},
	[]string{"result"},
)

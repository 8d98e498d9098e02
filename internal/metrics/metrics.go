package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DocumentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_documents_created_total",
			Help: "Documents created by type (quotation, bill, receipt)",
		},
		[]string{"type"},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_payments_recorded_total",
			Help: "Receipt payments recorded by mode",
		},
		[]string{"mode"},
	)

	DiscountRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_discount_rejections_total",
			Help: "Quotation writes rejected by the discount cap",
		},
	)
)

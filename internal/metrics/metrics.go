// Package metrics holds the Prometheus collectors shared by the API server
// and the ingest CLI.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total", Help: "HTTP requests served, by route pattern and status code.",
	}, []string{"route", "status"})

	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_query_duration_seconds",
		Help:    "Time spent running a resource query against the store.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})

	QueryErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_query_errors_total", Help: "Resource queries that failed in the store.",
	}, []string{"resource"})

	IngestRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_ingest_rows_total", Help: "Rows written by the CSV loader, by table.",
	}, []string{"table"})

	IngestFiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_ingest_files_total", Help: "CSV files processed by the loader, by result.",
	}, []string{"result"})
)

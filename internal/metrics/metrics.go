// Package metrics exposes Prometheus collectors for the HTTP surface and
// the aggregation pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	PipelineRuns     prometheus.Counter
	PipelineDuration prometheus.Histogram
	DatasetRows      *prometheus.GaugeVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecomdash_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "status"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecomdash_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	pipelineRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecomdash_pipeline_runs_total",
		Help: "Aggregation pipeline executions.",
	})
	pipelineDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ecomdash_pipeline_duration_seconds",
		Help:    "Aggregation pipeline latency.",
		Buckets: prometheus.DefBuckets,
	})
	datasetRows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ecomdash_dataset_rows",
		Help: "Loaded snapshot row counts by table.",
	}, []string{"table"})

	r.MustRegister(requestsTotal, requestDuration, pipelineRuns, pipelineDuration, datasetRows)
	return &Registry{
		reg:              r,
		RequestsTotal:    requestsTotal,
		RequestDuration:  requestDuration,
		PipelineRuns:     pipelineRuns,
		PipelineDuration: pipelineDuration,
		DatasetRows:      datasetRows,
	}
}

// ObservePipeline records one pipeline execution.
func (r *Registry) ObservePipeline(start time.Time) {
	r.PipelineRuns.Inc()
	r.PipelineDuration.Observe(time.Since(start).Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

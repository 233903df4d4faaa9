package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	exportDuration prom.Histogram
	exportOutcome  *prom.CounterVec
	documents      prom.Gauge
	fetchFailures  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// given registry (a fresh one when nil).
func NewPrometheusRecorder(reg *prom.Registry) (*PrometheusRecorder, *prom.Registry) {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		exportDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "outbook",
			Name:      "export_duration_seconds",
			Help:      "Total export duration",
			Buckets:   prom.DefBuckets,
		}),
		exportOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "outbook",
			Name:      "export_outcomes_total",
			Help:      "Export outcomes by final status",
		}, []string{"outcome"}),
		documents: prom.NewGauge(prom.GaugeOpts{
			Namespace: "outbook",
			Name:      "documents_compiled",
			Help:      "Documents retained in the most recent export",
		}),
		fetchFailures: prom.NewCounter(prom.CounterOpts{
			Namespace: "outbook",
			Name:      "document_fetch_failures_total",
			Help:      "Documents dropped after a fetch failure",
		}),
	}
	reg.MustRegister(pr.exportDuration, pr.exportOutcome, pr.documents, pr.fetchFailures)
	return pr, reg
}

func (p *PrometheusRecorder) ObserveExportDuration(d time.Duration) {
	p.exportDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncExportOutcome(outcome OutcomeLabel) {
	p.exportOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDocumentsCompiled(n int) {
	p.documents.Set(float64(n))
}

func (p *PrometheusRecorder) IncDocumentFetchFailures(n int) {
	p.fetchFailures.Add(float64(n))
}

// HTTPHandler returns an http.Handler serving Prometheus metrics for the registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

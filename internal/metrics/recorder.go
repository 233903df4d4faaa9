// Package metrics provides observability hooks for export runs. The compiler
// path takes a Recorder so daemon mode can wire Prometheus while the one-shot
// CLI stays metrics-free.
package metrics

import "time"

// OutcomeLabel enumerates export outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomePartial OutcomeLabel = "partial"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for export metrics. All methods must be
// safe on the NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveExportDuration(d time.Duration)
	IncExportOutcome(outcome OutcomeLabel)
	SetDocumentsCompiled(n int)
	IncDocumentFetchFailures(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveExportDuration(time.Duration) {}
func (NoopRecorder) IncExportOutcome(OutcomeLabel)       {}
func (NoopRecorder) SetDocumentsCompiled(int)            {}
func (NoopRecorder) IncDocumentFetchFailures(int)        {}

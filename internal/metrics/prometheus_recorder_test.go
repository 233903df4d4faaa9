package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_RecordsExport(t *testing.T) {
	pr, reg := NewPrometheusRecorder(nil)

	pr.ObserveExportDuration(2 * time.Second)
	pr.IncExportOutcome(OutcomeSuccess)
	pr.IncExportOutcome(OutcomeSuccess)
	pr.IncExportOutcome(OutcomePartial)
	pr.SetDocumentsCompiled(7)
	pr.IncDocumentFetchFailures(2)

	require.Equal(t, 2.0, testutil.ToFloat64(pr.exportOutcome.WithLabelValues("success")))
	require.Equal(t, 1.0, testutil.ToFloat64(pr.exportOutcome.WithLabelValues("partial")))
	require.Equal(t, 7.0, testutil.ToFloat64(pr.documents))
	require.Equal(t, 2.0, testutil.ToFloat64(pr.fetchFailures))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNoopRecorder_SafeToCall(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveExportDuration(time.Second)
	r.IncExportOutcome(OutcomeFailed)
	r.SetDocumentsCompiled(0)
	r.IncDocumentFetchFailures(1)
}

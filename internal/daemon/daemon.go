// Package daemon runs periodic full re-exports of a collection. Each tick is a
// complete export (never incremental); ticks are single-flight, so a slow
// export delays the next one instead of overlapping it.
package daemon

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/outbook/internal/compile"
	"git.home.luguber.info/inful/outbook/internal/logfields"
	"git.home.luguber.info/inful/outbook/internal/metrics"
	"git.home.luguber.info/inful/outbook/internal/state"
)

// ExportFunc performs one full export and returns its result.
type ExportFunc func(ctx context.Context) (*compile.Result, error)

// Options configures a Daemon.
type Options struct {
	Interval    time.Duration
	Collection  string
	OutputPath  string
	MetricsAddr string          // empty disables the metrics endpoint
	Store       *state.RunStore // nil disables run history
	Recorder    metrics.Recorder
	Handler     http.Handler // metrics handler, required when MetricsAddr set
}

// Daemon schedules exports and records their outcomes.
type Daemon struct {
	export ExportFunc
	opts   Options
}

// New creates a daemon around the given export function.
func New(export ExportFunc, opts Options) *Daemon {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Daemon{export: export, opts: opts}
}

// Run starts the schedule and blocks until ctx is canceled. The first export
// runs immediately; subsequent exports run on the configured interval.
func (d *Daemon) Run(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(d.opts.Interval),
		gocron.NewTask(d.runOnce, ctx),
		gocron.WithName("export"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	var metricsServer *http.Server
	if d.opts.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:              d.opts.MetricsAddr,
			Handler:           metricsHandler(d.opts.Handler),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("Serving metrics", slog.String("addr", d.opts.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", slog.Any("error", err))
			}
		}()
	}

	d.logLastRun(ctx)
	slog.Info("Daemon started",
		logfields.Collection(d.opts.Collection),
		slog.Duration("interval", d.opts.Interval))
	scheduler.Start()

	<-ctx.Done()
	slog.Info("Daemon shutting down")
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	return scheduler.Shutdown()
}

// logLastRun surfaces the most recent recorded run at startup, if any.
func (d *Daemon) logLastRun(ctx context.Context) {
	if d.opts.Store == nil {
		return
	}
	runs, err := d.opts.Store.Recent(ctx, d.opts.Collection, 1)
	if err != nil {
		slog.Warn("Could not read run history", logfields.Error(err))
		return
	}
	if len(runs) == 0 {
		return
	}
	last := runs[0]
	slog.Info("Last recorded export",
		slog.String("status", string(last.Status)),
		slog.Time("started_at", last.StartedAt),
		logfields.Documents(last.Documents))
}

// runOnce executes a single export tick and records its outcome.
func (d *Daemon) runOnce(ctx context.Context) {
	started := time.Now()
	result, err := d.export(ctx)
	duration := time.Since(started)

	run := state.Run{
		Collection: d.opts.Collection,
		StartedAt:  started,
		Duration:   duration,
		OutputPath: d.opts.OutputPath,
	}

	switch {
	case err != nil:
		run.Status = state.RunFailed
		run.Message = err.Error()
		d.opts.Recorder.IncExportOutcome(metrics.OutcomeFailed)
		slog.Error("Scheduled export failed", logfields.Error(err))
	case len(result.Skipped) > 0:
		run.Status = state.RunPartial
		run.Documents = result.DocumentCount
		d.opts.Recorder.IncExportOutcome(metrics.OutcomePartial)
		d.opts.Recorder.SetDocumentsCompiled(result.DocumentCount)
		d.opts.Recorder.IncDocumentFetchFailures(len(result.Skipped))
		slog.Warn("Scheduled export completed with skipped documents",
			logfields.Documents(result.DocumentCount),
			logfields.Skipped(len(result.Skipped)))
	default:
		run.Status = state.RunSucceeded
		run.Documents = result.DocumentCount
		d.opts.Recorder.IncExportOutcome(metrics.OutcomeSuccess)
		d.opts.Recorder.SetDocumentsCompiled(result.DocumentCount)
		slog.Info("Scheduled export completed",
			logfields.Documents(result.DocumentCount),
			slog.Duration("duration", duration))
	}
	d.opts.Recorder.ObserveExportDuration(duration)

	if d.opts.Store != nil {
		if err := d.opts.Store.Append(ctx, run); err != nil {
			slog.Error("Could not record export run", logfields.Error(err))
		}
	}
}

func metricsHandler(h http.Handler) http.Handler {
	mux := http.NewServeMux()
	if h != nil {
		mux.Handle("/metrics", h)
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

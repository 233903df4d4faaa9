package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"git.home.luguber.info/inful/outbook/internal/compile"
	"git.home.luguber.info/inful/outbook/internal/config"
	"git.home.luguber.info/inful/outbook/internal/daemon"
	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
	"git.home.luguber.info/inful/outbook/internal/linkverify"
	"git.home.luguber.info/inful/outbook/internal/logfields"
	"git.home.luguber.info/inful/outbook/internal/metrics"
	"git.home.luguber.info/inful/outbook/internal/outline"
	"git.home.luguber.info/inful/outbook/internal/state"
)

func newCompiler(cfg *config.Config) *compile.Compiler {
	client := outline.NewClient(cfg.APIURL, cfg.APIKey)
	return compile.New(client, compile.WithProvenance(apiHost(cfg.APIURL)))
}

// apiHost reduces the API URL to its host for the artifact provenance line.
func apiHost(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return apiURL
	}
	return u.Host
}

func runExport(ctx context.Context, cfg *config.Config, verifyLinks bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	result, err := newCompiler(cfg).Compile(ctx, cfg.Collection)
	if err != nil {
		return err
	}

	if verifyLinks {
		report, err := linkverify.Verify(result.HTML)
		if err != nil {
			return err
		}
		if !report.OK() {
			return errors.CompileError("output contains dangling anchors").
				WithContext("dangling", report.Dangling).
				Build()
		}
		slog.Info("Link verification passed",
			slog.Int("anchors", report.AnchorCount),
			slog.Int("links", report.FragmentLinks))
	}

	if err := compile.WriteArtifact(cfg.Output, result.HTML); err != nil {
		return err
	}

	slog.Info("Done",
		logfields.Documents(result.DocumentCount),
		logfields.Output(cfg.Output))
	fmt.Printf("Compiled %d documents to %s\n", result.DocumentCount, cfg.Output)
	if len(result.Skipped) > 0 {
		fmt.Printf("Skipped %d documents that could not be fetched\n", len(result.Skipped))
	}
	return nil
}

func runVerifyAuth(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ValidateAuthOnly(); err != nil {
		return err
	}

	client := outline.NewClient(cfg.APIURL, cfg.APIKey)
	info, err := client.Auth(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Authenticated as %s (%s)\n", info.User.Name, info.Team.Name)
	return nil
}

func runDaemon(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	interval, err := cfg.Daemon.IntervalDuration()
	if err != nil {
		return err
	}

	opts := daemon.Options{
		Interval:   interval,
		Collection: cfg.Collection,
		OutputPath: cfg.Output,
	}

	if cfg.Daemon.StateDB != "" {
		store, err := state.NewRunStore(cfg.Daemon.StateDB)
		if err != nil {
			return err
		}
		defer func() {
			_ = store.Close()
		}()
		opts.Store = store
	}

	if cfg.Daemon.MetricsAddr != "" {
		recorder, registry := metrics.NewPrometheusRecorder(nil)
		opts.Recorder = recorder
		opts.MetricsAddr = cfg.Daemon.MetricsAddr
		opts.Handler = metrics.HTTPHandler(registry)
	}

	compiler := newCompiler(cfg)
	export := func(ctx context.Context) (*compile.Result, error) {
		result, err := compiler.Compile(ctx, cfg.Collection)
		if err != nil {
			return nil, err
		}
		if err := compile.WriteArtifact(cfg.Output, result.HTML); err != nil {
			return nil, err
		}
		return result, nil
	}

	return daemon.New(export, opts).Run(ctx)
}

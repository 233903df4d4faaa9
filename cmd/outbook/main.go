// Command outbook compiles an Outline collection into a single static HTML file.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/outbook/internal/config"
	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path (optional)"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	APIURL     string `help:"Outline API base URL" default:""`
	APIKey     string `help:"Outline API key (or OUTLINE_API_KEY)" default:""`
	Collection string `help:"UUID of the collection to compile" default:""`

	Export struct {
		Output      string `short:"o" help:"Output HTML file path"`
		VerifyLinks bool   `help:"Verify intra-document links in the output"`
	} `cmd:"" help:"Compile the collection into a single HTML file"`

	VerifyAuth struct{} `cmd:"" name:"verify-auth" help:"Verify the API key and print who it belongs to"`

	Daemon struct {
		Interval    string `short:"i" help:"Re-export interval (e.g. 30m, 1h)"`
		StateDB     string `help:"SQLite file for run history (optional)"`
		MetricsAddr string `help:"Address for the Prometheus metrics endpoint (optional)"`
	} `cmd:"" help:"Re-export the collection periodically"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, logger)

	cfg, err := loadConfig()
	if err != nil {
		fail(adapter, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch kctx.Command() {
	case "export":
		err = runExport(ctx, cfg, CLI.Export.VerifyLinks)
	case "verify-auth":
		err = runVerifyAuth(ctx, cfg)
	case "daemon":
		err = runDaemon(ctx, cfg)
	default:
		err = errors.ValidationError("unknown command").Build()
	}
	if err != nil {
		fail(adapter, err)
	}
}

// loadConfig merges the optional config file with CLI flags; flags win.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	if CLI.APIURL != "" {
		cfg.APIURL = CLI.APIURL
	}
	if CLI.APIKey != "" {
		cfg.APIKey = CLI.APIKey
	}
	if CLI.Collection != "" {
		cfg.Collection = CLI.Collection
	}
	if CLI.Export.Output != "" {
		cfg.Output = CLI.Export.Output
	}
	if CLI.Daemon.Interval != "" {
		cfg.Daemon.Interval = CLI.Daemon.Interval
	}
	if CLI.Daemon.StateDB != "" {
		cfg.Daemon.StateDB = CLI.Daemon.StateDB
	}
	if CLI.Daemon.MetricsAddr != "" {
		cfg.Daemon.MetricsAddr = CLI.Daemon.MetricsAddr
	}
	return cfg, nil
}

func fail(adapter *errors.CLIErrorAdapter, err error) {
	adapter.LogError(err)
	if msg := adapter.FormatError(err); msg != "" {
		os.Stderr.WriteString(msg + "\n")
	}
	os.Exit(adapter.ExitCodeFor(err))
}

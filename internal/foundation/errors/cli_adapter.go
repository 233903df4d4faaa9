package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the command-line entrypoint.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if classified, ok := AsClassified(err); ok {
		return a.exitCodeFromClassified(classified)
	}
	return 1
}

// exitCodeFromClassified maps ClassifiedError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromClassified(err *ClassifiedError) int {
	switch err.Category() {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryAuth:
		return 5 // Permission/auth error
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryNetwork, CategoryAPI:
		return 8 // External system error
	case CategoryCompile, CategoryFileSystem, CategoryDocument:
		return 11 // Compile error
	case CategoryDaemon, CategoryStateStore:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	classified, ok := AsClassified(err)
	if !ok {
		return err.Error()
	}

	msg := classified.Message()
	if a.verbose && classified.Cause() != nil {
		msg = fmt.Sprintf("%s: %v", msg, classified.Cause())
	}
	if classified.IsCategory(CategoryAuth) {
		msg += "\nCheck that the API key is valid (Settings => API & Apps) and has access to the collection."
	}
	return msg
}

// LogError logs an error with structured fields at a level matching its severity.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}

	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", slog.Any("error", err))
		return
	}

	attrs := []any{
		slog.String("category", string(classified.Category())),
		slog.Any("error", err),
	}
	for k, v := range classified.Context() {
		attrs = append(attrs, slog.Any(k, v))
	}

	switch classified.Severity() {
	case SeverityWarning:
		a.logger.Warn(classified.Message(), attrs...)
	case SeverityInfo:
		a.logger.Info(classified.Message(), attrs...)
	default:
		a.logger.Error(classified.Message(), attrs...)
	}
}

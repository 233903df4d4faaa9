package errors

import "maps"

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryConfig represents user-facing configuration and input errors.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryAuth       ErrorCategory = "auth"

	// CategoryNetwork represents transport-level failures reaching the API.
	CategoryNetwork ErrorCategory = "network"
	// CategoryAPI represents well-formed responses signaling an application error.
	CategoryAPI ErrorCategory = "api"
	// CategoryDocument represents an isolated failure fetching a single document.
	CategoryDocument ErrorCategory = "document"

	// CategoryCompile represents compilation and output assembly errors.
	CategoryCompile    ErrorCategory = "compile"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryStateStore ErrorCategory = "statestore"

	// CategoryRuntime represents runtime and infrastructure errors.
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution completely
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// RetryStrategy indicates how an error should be handled in retry scenarios.
type RetryStrategy string

const (
	RetryNever      RetryStrategy = "never"      // Permanent failure, don't retry
	RetryBackoff    RetryStrategy = "backoff"    // Retry with exponential backoff
	RetryRateLimit  RetryStrategy = "rate_limit" // Retry after rate limit window
	RetryUserAction RetryStrategy = "user"       // Requires user intervention
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	out := maps.Clone(c)
	out[key] = value
	return out
}

// Merge combines two contexts, with values from other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if len(other) == 0 {
		return c
	}
	out := maps.Clone(c)
	if out == nil {
		out = make(ErrorContext, len(other))
	}
	maps.Copy(out, other)
	return out
}

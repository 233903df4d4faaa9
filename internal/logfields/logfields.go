package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyCollection = "collection"
	KeyDocument   = "document"
	KeyEndpoint   = "endpoint"
	KeyProgress   = "progress"
	KeyOutput     = "output"
	KeyDocuments  = "documents"
	KeySkipped    = "skipped"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Collection(id string) slog.Attr    { return slog.String(KeyCollection, id) }
func Document(title string) slog.Attr   { return slog.String(KeyDocument, title) }
func Endpoint(name string) slog.Attr    { return slog.String(KeyEndpoint, name) }
func Progress(p string) slog.Attr       { return slog.String(KeyProgress, p) }
func Output(path string) slog.Attr      { return slog.String(KeyOutput, path) }
func Documents(count int) slog.Attr     { return slog.Int(KeyDocuments, count) }
func Skipped(count int) slog.Attr       { return slog.Int(KeySkipped, count) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

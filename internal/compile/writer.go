package compile

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

// WriteArtifact writes the compiled HTML to the output path, creating parent
// directories as needed. Re-exports overwrite the previous artifact.
func WriteArtifact(path, html string) error {
	if path == "" {
		return errors.ValidationError("output path is required").Build()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
				WithContext("dir", dir).
				Build()
		}
	}

	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write output file").
			WithContext("path", path).
			Build()
	}
	return nil
}

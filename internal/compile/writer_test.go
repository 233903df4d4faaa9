package compile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

func TestWriteArtifact_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "compilation.html")

	require.NoError(t, WriteArtifact(path, "<html></html>"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<html></html>", string(data))
}

func TestWriteArtifact_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compilation.html")

	require.NoError(t, WriteArtifact(path, "first"))
	require.NoError(t, WriteArtifact(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestWriteArtifact_EmptyPath(t *testing.T) {
	err := WriteArtifact("", "content")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestWriteArtifact_FileSystemFailure(t *testing.T) {
	// The parent is a regular file, so MkdirAll fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteArtifact(filepath.Join(blocker, "sub", "out.html"), "content")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

// Package writer persists generated artifacts.
package writer

import (
	"os"
	"path/filepath"

	"github.com/ridoystarlord/crudforge/apperr"
	"github.com/ridoystarlord/crudforge/schema"
)

// Writer places source artifacts under SourceRoot and migrations under
// ResourcesRoot. Existing files are overwritten.
type Writer struct {
	SourceRoot    string
	ResourcesRoot string
}

// Path returns the absolute or root-relative destination of a.
func (w Writer) Path(a schema.SourceArtifact) string {
	root := w.SourceRoot
	if a.IsResource() {
		root = w.ResourcesRoot
	}
	return filepath.Join(root, filepath.FromSlash(a.RelativePath))
}

// Write creates missing parent directories and writes a, returning the
// destination path.
func (w Writer) Write(a schema.SourceArtifact) (string, error) {
	dest := w.Path(a)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", apperr.FileSystem(filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, []byte(a.Content), 0o644); err != nil {
		return "", apperr.FileSystem(dest, err)
	}
	return dest, nil
}

// WriteAll writes artifacts in order and stops at the first failure. Files
// written before the failure are left in place.
func (w Writer) WriteAll(artifacts []schema.SourceArtifact) ([]string, error) {
	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		dest, err := w.Write(a)
		if err != nil {
			return written, err
		}
		written = append(written, dest)
	}
	return written, nil
}

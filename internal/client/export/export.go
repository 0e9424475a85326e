// Package export writes history exports to a local directory or to an
// S3-compatible bucket.
package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/promptmaster/internal/filex"
)

// Exporter stores a named document and returns its location.
type Exporter interface {
	Export(ctx context.Context, name string, data []byte) (string, error)
}

// FileExporter writes documents into Dir.
type FileExporter struct {
	Dir string
}

func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{Dir: dir}
}

func (e *FileExporter) Export(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid export name %q", name)
	}

	dir, err := filex.EnsureDir(e.Dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

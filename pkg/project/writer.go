package project

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// Writer performs the file steps of a materialization
type Writer interface {
	// WriteFiles writes files in order, creating missing directories
	// below root. It returns how many files were written before an error.
	WriteFiles(ctx context.Context, root string, files []PlannedFile) (int, error)
}

// FSWriter writes through a types.FS one file at a time
type FSWriter struct {
	FS types.FS
}

// WriteFiles implements Writer
func (w FSWriter) WriteFiles(ctx context.Context, root string, files []PlannedFile) (int, error) {
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return i, errors.Wrap(err, errors.ErrCancelled, "materialization cancelled")
		}
		if err := w.write(f); err != nil {
			return i, err
		}
	}
	return len(files), nil
}

func (w FSWriter) write(f PlannedFile) error {
	if err := w.FS.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(f.Path))
	}
	if err := w.FS.WriteFile(f.Path, f.Content, f.Mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", f.Path)
	}
	if f.Mode&0111 != 0 {
		if err := w.FS.Chmod(f.Path, f.Mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot make %s executable", f.Path)
		}
	}
	return nil
}

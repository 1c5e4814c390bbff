// Package synthfs writes planned project files to disk through a synthfs
// pipeline: one directory operation per missing directory and one file
// operation per planned file, run in order without rollback.
package synthfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/project"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Writer implements project.Writer on the OS filesystem
type Writer struct {
	logger     zerolog.Logger
	filesystem filesystem.FullFileSystem
}

// NewWriter creates a writer that accepts absolute paths
func NewWriter() *Writer {
	osfs := filesystem.NewOSFileSystem("/")
	return &Writer{
		logger:     logging.GetLogger("synthfs"),
		filesystem: synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
	}
}

// WriteFiles implements project.Writer. Directories below root that do
// not exist yet are created before the first file that needs them.
func (w *Writer) WriteFiles(ctx context.Context, root string, files []project.PlannedFile) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}

	sfs := synthfs.New()
	var ops []synthfs.Operation
	fileIndex := make(map[synthfs.OperationID]int, len(files))
	planned := make(map[string]bool)

	for i, f := range files {
		for _, dir := range missingDirs(root, filepath.Dir(f.Path), planned) {
			ops = append(ops, sfs.CreateDirWithID(fmt.Sprintf("mkdir_%d_%s", i, dir), dir, 0755))
		}
		op := sfs.CreateFileWithID(fmt.Sprintf("write_%d_%s", i, filepath.Base(f.Path)), f.Path, f.Content, f.Mode)
		fileIndex[op.ID()] = i
		ops = append(ops, op)
	}

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	w.logger.Debug().
		Int("files", len(files)).
		Int("operations", len(ops)).
		Str("root", root).
		Msg("Running synthfs operations")

	result, err := synthfs.RunWithOptions(ctx, w.filesystem, options, ops...)
	written := countWritten(result, fileIndex)
	if err != nil {
		failed := root
		if written < len(files) {
			failed = files[written].Path
		}
		w.logger.Error().Err(err).Str("path", failed).Int("written", written).Msg("File step failed")
		return written, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", failed).
			WithDetail("path", failed)
	}

	// synthfs applies the process umask; the runnable bit must survive it
	for _, f := range files {
		if f.Mode&0111 == 0 {
			continue
		}
		if err := os.Chmod(f.Path, f.Mode); err != nil {
			return len(files), errors.Wrapf(err, errors.ErrFileWrite, "cannot make %s executable", f.Path)
		}
	}
	return len(files), nil
}

// countWritten returns how many leading files synthfs reports as written
func countWritten(result *synthfs.Result, fileIndex map[synthfs.OperationID]int) int {
	if result == nil {
		return 0
	}
	done := make(map[int]bool)
	for _, raw := range result.GetOperations() {
		op, ok := raw.(synthfs.OperationResult)
		if !ok || op.Status != synthfs.StatusSuccess {
			continue
		}
		if i, ok := fileIndex[op.OperationID]; ok {
			done[i] = true
		}
	}
	n := 0
	for done[n] {
		n++
	}
	return n
}

// missingDirs lists the directories from root down to dir, shallowest
// first, that neither exist nor were planned already. root itself is
// created by the materializer.
func missingDirs(root, dir string, planned map[string]bool) []string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}

	var out []string
	current := root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		if planned[current] {
			continue
		}
		planned[current] = true
		if _, err := os.Stat(current); err == nil {
			continue
		}
		out = append(out, current)
	}
	return out
}

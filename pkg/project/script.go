package project

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/manifest"
	"github.com/arthur-debert/pyproject/pkg/paths"
	"github.com/arthur-debert/pyproject/pkg/runner"
)

// ScriptResult reports a single-file script creation
type ScriptResult struct {
	Path       string        `json:"path" yaml:"path"`
	Runnable   bool          `json:"runnable" yaml:"runnable"`
	Invocation runner.Result `json:"invocation" yaml:"invocation"`
}

// Script creates a standalone uv script at path. With runnable set the
// file gets the configured shebang and is made executable.
func (m *Materializer) Script(ctx context.Context, path, python string, runnable bool) (*ScriptResult, error) {
	logger := logging.GetLogger("project")

	target, err := paths.NormalizePath(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(target) == "" {
		target += ".py"
	}

	if _, err := m.fs.Stat(target); err == nil {
		return nil, errors.Newf(errors.ErrPathExists, "%s already exists", target).WithDetail("path", target)
	}
	if err := m.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(target))
	}

	res, err := m.uv.InitScript(ctx, target, python)
	result := &ScriptResult{Path: target, Invocation: res}
	if err != nil {
		return result, err
	}

	if runnable {
		content, err := m.fs.ReadFile(target)
		if err != nil {
			return result, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", target)
		}
		if err := m.fs.WriteFile(target, manifest.AddShebang(content, m.shebang), 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
		}
		if err := m.fs.Chmod(target, 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrFileWrite, "cannot make %s executable", target)
		}
		result.Runnable = true
	}

	logger.Info().Str("path", target).Bool("runnable", runnable).Msg("Script created")
	return result, nil
}

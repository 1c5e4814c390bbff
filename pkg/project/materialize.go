package project

import (
	"context"
	stderrors "errors"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/manifest"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/arthur-debert/pyproject/pkg/templates"
	"github.com/arthur-debert/pyproject/pkg/tools"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// PartialWarning is attached to failures that happen after the project
// directory was created
const PartialWarning = "partial project left in place; remove it or fix the cause and create the project again"

// Config wires a Materializer to its collaborators
type Config struct {
	FS types.FS
	// Writer performs the file writes; nil writes through FS
	Writer    Writer
	Templates *templates.Resolver
	UV        *tools.UV
	Git       *tools.Git
	Manifest  manifest.Settings
	// Shebang prefixes main.py when make_runnable is set
	Shebang string
}

// Materializer plans and writes projects
type Materializer struct {
	fs        types.FS
	writer    Writer
	templates *templates.Resolver
	uv        *tools.UV
	git       *tools.Git
	settings  manifest.Settings
	shebang   string
}

// NewMaterializer creates a Materializer
func NewMaterializer(cfg Config) *Materializer {
	settings := cfg.Manifest
	if settings == (manifest.Settings{}) {
		settings = manifest.DefaultSettings()
	}
	writer := cfg.Writer
	if writer == nil {
		writer = FSWriter{FS: cfg.FS}
	}
	return &Materializer{
		fs:        cfg.FS,
		writer:    writer,
		templates: cfg.Templates,
		uv:        cfg.UV,
		git:       cfg.Git,
		settings:  settings,
		shebang:   cfg.Shebang,
	}
}

// Result reports what a materialization did
type Result struct {
	Plan *Plan `json:"plan" yaml:"plan"`
	// CreatedPaths lists the directory and every file written, in order
	CreatedPaths []string `json:"created_paths" yaml:"created_paths"`
	// Invocations holds the captured output of each subprocess that ran
	Invocations      []runner.Result `json:"invocations" yaml:"invocations"`
	WorkspaceUpdated bool            `json:"workspace_updated" yaml:"workspace_updated"`
	// Completed counts the plan steps that finished: each file, the git
	// init, the workspace step when a workspace was found, and the sync.
	// On failure the step at this index is the one that stopped the run.
	Completed int `json:"completed" yaml:"completed"`
}

// DryRun computes the plan without writing anything or running tools
func (m *Materializer) DryRun(project types.ResolvedProject) (*Plan, error) {
	return m.plan(project)
}

// Materialize writes the project. A PATH_EXISTS failure happens before
// any write. Later failures leave earlier work in place and carry
// PartialWarning in the "warning" detail.
func (m *Materializer) Materialize(ctx context.Context, project types.ResolvedProject) (*Result, error) {
	logger := logging.GetLogger("project")
	done := logging.Timed(logger, "materialize")
	defer done()
	logger.Debug().
		Str("path", project.Path).
		Str("profile", project.Profile).
		Str("kind", string(project.Kind)).
		Msg("Materializing project")

	// 1.
	plan, err := m.plan(project)
	if err != nil {
		return nil, err
	}
	result := &Result{Plan: plan}

	if err := m.fs.MkdirAll(project.Path, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", project.Path)
	}
	result.CreatedPaths = append(result.CreatedPaths, project.Path)

	// 2-5.
	if err := m.writeFiles(ctx, result, plan.Files); err != nil {
		return result, m.partial(project, err)
	}

	// 6.
	if plan.Git != nil {
		res, err := m.git.Init(ctx, project.Path)
		result.Invocations = append(result.Invocations, res)
		if err != nil {
			return result, m.partial(project, err)
		}
		result.Completed++
		if err := m.writeFiles(ctx, result, []PlannedFile{plan.Git.GitIgnore}); err != nil {
			return result, m.partial(project, err)
		}
	}

	// 7.
	if plan.RegisterMember {
		changed, err := plan.Workspace.AddMember(m.fs, project.Path)
		if err != nil {
			return result, m.partial(project, err)
		}
		result.WorkspaceUpdated = changed
	}
	if plan.Workspace != nil {
		result.Completed++
	}
	if plan.Sync != nil {
		var res runner.Result
		if plan.Workspace != nil {
			res, err = m.uv.SyncMember(ctx, plan.Workspace.Root, project.Name)
		} else {
			res, err = m.uv.Sync(ctx, project.Path)
		}
		result.Invocations = append(result.Invocations, res)
		if err != nil {
			return result, m.partial(project, err)
		}
		result.Completed++
	}

	logger.Info().
		Str("path", project.Path).
		Int("files", len(result.CreatedPaths)-1).
		Int("commands", len(result.Invocations)).
		Msg("Project created")

	return result, nil
}

func (m *Materializer) writeFiles(ctx context.Context, result *Result, files []PlannedFile) error {
	n, err := m.writer.WriteFiles(ctx, result.Plan.Project.Path, files)
	for _, f := range files[:n] {
		result.CreatedPaths = append(result.CreatedPaths, f.Path)
	}
	result.Completed += n
	return err
}

// partial marks err as happening after the target directory was created.
// The original error code and details are kept.
func (m *Materializer) partial(project types.ResolvedProject, err error) error {
	logger := logging.GetLogger("project")
	logger.Warn().
		Err(err).
		Str("path", project.Path).
		Msg("Materialization failed, " + PartialWarning)

	var pErr *errors.PyProjectError
	if stderrors.As(err, &pErr) {
		pErr.WithDetail("warning", PartialWarning).WithDetail("partial", project.Path)
		return err
	}
	return errors.Wrap(err, errors.ErrInternal, "materialization failed").
		WithDetail("warning", PartialWarning).
		WithDetail("partial", project.Path)
}

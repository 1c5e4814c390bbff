package project

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/manifest"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/arthur-debert/pyproject/pkg/workspace"
)

// File origins shown in plans
const (
	OriginGenerated = "generated"
	OriginTemplate  = "template"
)

// PlannedFile is one file a materialization writes
type PlannedFile struct {
	Path    string      `json:"path" yaml:"path"`
	Content []byte      `json:"-" yaml:"-"`
	Mode    fs.FileMode `json:"mode" yaml:"mode"`
	// Origin is OriginGenerated or OriginTemplate
	Origin string `json:"origin" yaml:"origin"`
	// Source is the template asset id for template files
	Source      string `json:"source,omitempty" yaml:"source,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Activation  bool   `json:"activation,omitempty" yaml:"activation,omitempty"`
}

// Text returns the content as a string for display
func (f PlannedFile) Text() string {
	return string(f.Content)
}

// Plan is the full outcome of a materialization, computed without side
// effects.
type Plan struct {
	Project types.ResolvedProject `json:"project" yaml:"project"`
	// Files are written in order by steps 2-5
	Files []PlannedFile `json:"files" yaml:"files"`
	// Git is the repository step, nil unless use_git is set
	Git *GitStep `json:"git,omitempty" yaml:"git,omitempty"`
	// Workspace is the parent workspace the project joins, if any
	Workspace *workspace.Workspace `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	// RegisterMember is true when the workspace manifest must be edited
	RegisterMember bool `json:"register_member,omitempty" yaml:"register_member,omitempty"`
	// Sync is the environment sync call, nil with no_sync
	Sync *runner.Invocation `json:"sync,omitempty" yaml:"sync,omitempty"`
}

// GitStep initializes a repository and writes its ignore file
type GitStep struct {
	Init      runner.Invocation `json:"init" yaml:"init"`
	GitIgnore PlannedFile       `json:"gitignore" yaml:"gitignore"`
}

// File returns the planned file at path, if any
func (p *Plan) File(path string) (PlannedFile, bool) {
	for _, f := range p.Files {
		if f.Path == path {
			return f, true
		}
	}
	if p.Git != nil && p.Git.GitIgnore.Path == path {
		return p.Git.GitIgnore, true
	}
	return PlannedFile{}, false
}

// Commands lists the subprocess invocations in execution order
func (p *Plan) Commands() []runner.Invocation {
	var out []runner.Invocation
	if p.Git != nil {
		out = append(out, p.Git.Init)
	}
	if p.Sync != nil {
		out = append(out, *p.Sync)
	}
	return out
}

// plan computes every step without writing. Its only filesystem access is
// read-only: the collision check, template reads and workspace lookup.
func (m *Materializer) plan(project types.ResolvedProject) (*Plan, error) {
	logger := logging.GetLogger("project")

	if err := m.checkTarget(project.Path); err != nil {
		return nil, err
	}

	plan := &Plan{Project: project}
	add := func(f PlannedFile) {
		for i := range plan.Files {
			if plan.Files[i].Path == f.Path {
				logger.Debug().Str("path", f.Path).Str("origin", f.Origin).Msg("Planned file replaces an earlier one")
				plan.Files[i] = f
				return
			}
		}
		plan.Files = append(plan.Files, f)
	}
	at := func(rel string) string {
		return filepath.Join(project.Path, filepath.FromSlash(rel))
	}

	// 2. manifest
	pyproject, err := manifest.PyProject(project, m.settings)
	if err != nil {
		return nil, err
	}
	add(PlannedFile{Path: at(manifest.FileName), Content: pyproject, Mode: 0644, Origin: OriginGenerated})
	add(PlannedFile{
		Path:    at(manifest.PythonVersionFileName),
		Content: manifest.PythonVersionFile(project.PythonVersion),
		Mode:    0644,
		Origin:  OriginGenerated,
	})

	// 3. entry point
	switch {
	case project.Kind == types.KindApplication && !project.Flags.NoMain:
		add(PlannedFile{Path: at(manifest.MainFileName), Content: manifest.MainPy(project, ""), Mode: 0644, Origin: OriginGenerated})
	case project.Kind.Packaged():
		add(PlannedFile{
			Path:    at(manifest.PackageInitPath(project.Name)),
			Content: manifest.PackageInit(project),
			Mode:    0644,
			Origin:  OriginGenerated,
		})
	}

	// 4. readme
	if !project.Flags.NoReadme {
		add(PlannedFile{Path: at(manifest.ReadmeFileName), Content: manifest.Readme(project), Mode: 0644, Origin: OriginGenerated})
	}

	// 5. templates
	for _, op := range project.Copies {
		data, err := m.templates.Read(op)
		if err != nil {
			return nil, err
		}
		add(PlannedFile{
			Path:        op.Destination,
			Content:     data,
			Mode:        0644,
			Origin:      OriginTemplate,
			Source:      op.Source,
			Description: op.Description,
			Activation:  op.Activation,
		})
	}

	// make_runnable applies to main.py whichever step produced it
	if project.Flags.MakeRunnable {
		mainPath := at(manifest.MainFileName)
		for i := range plan.Files {
			if plan.Files[i].Path == mainPath {
				plan.Files[i].Content = manifest.AddShebang(plan.Files[i].Content, m.shebang)
				plan.Files[i].Mode = 0755
			}
		}
	}

	// 6. git
	if project.Flags.UseGit {
		plan.Git = &GitStep{
			Init: m.git.InitInvocation(project.Path),
			GitIgnore: PlannedFile{
				Path:    at(manifest.GitIgnoreFileName),
				Content: manifest.GitIgnore(),
				Mode:    0644,
				Origin:  OriginGenerated,
			},
		}
	}

	// 7. workspace and sync
	if !project.Flags.NoWorkspace {
		ws, err := workspace.Find(m.fs, filepath.Dir(project.Path))
		if err != nil {
			return nil, err
		}
		if ws != nil {
			// the manifest edit is rehearsed here so an excluded target or
			// a layout it cannot handle fails before step 1
			updated, err := ws.Edit(m.fs, project.Path)
			if err != nil {
				return nil, err
			}
			plan.Workspace = ws
			plan.RegisterMember = updated != nil
		}
	}
	if !project.Flags.NoSync {
		var inv runner.Invocation
		if plan.Workspace != nil {
			inv = m.uv.SyncMemberInvocation(plan.Workspace.Root, project.Name)
		} else {
			inv = m.uv.SyncInvocation(project.Path)
		}
		plan.Sync = &inv
	}

	return plan, nil
}

// checkTarget fails when path exists and is a file or a non-empty directory
func (m *Materializer) checkTarget(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrPathExists, "%s already exists and is not a directory", path).
			WithDetail("path", path)
	}
	entries, err := m.fs.ReadDir(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	if len(entries) > 0 {
		return errors.Newf(errors.ErrPathExists, "%s already exists and is not empty", path).
			WithDetail("path", path).
			WithDetail("entries", len(entries))
	}
	return nil
}

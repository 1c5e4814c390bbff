package display

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/pyproject/pkg/catalog"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/project"
	"github.com/arthur-debert/pyproject/pkg/style"
	"github.com/arthur-debert/pyproject/pkg/templates"
	"github.com/arthur-debert/pyproject/pkg/tools"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// NewProfileList summarizes every profile of a catalog
func NewProfileList(c *catalog.Catalog) *ProfileList {
	list := &ProfileList{Source: c.Source(), Profiles: []ProfileSummary{}}
	for _, p := range c.Profiles() {
		s := ProfileSummary{
			Name:        p.Name,
			Packages:    len(p.Packages),
			Templates:   len(p.Extras.Templates),
			Description: p.Description,
		}
		for _, pkg := range p.Packages {
			if pkg.Enabled {
				s.Enabled++
			}
		}
		list.Profiles = append(list.Profiles, s)
	}
	return list
}

// NewProfileDetail shows a profile with the toggles of model, which
// must have been built from it.
func NewProfileDetail(p types.Profile, model *options.Model, columns int) *ProfileDetail {
	if columns < 1 {
		columns = 1
	}
	return &ProfileDetail{Profile: p, Options: model.Options(), Columns: columns}
}

// NewPlanView describes a dry run. With contents set every planned file
// carries its full text.
func NewPlanView(plan *project.Plan, contents bool) *ProjectView {
	return newProjectView(plan, style.StatusPlanned, contents)
}

// NewResultView describes a completed materialization
func NewResultView(res *project.Result) *ProjectView {
	v := newProjectView(res.Plan, style.StatusDone, false)
	v.Outputs = res.Invocations
	return v
}

// NewFailedView describes a materialization that stopped part way. Steps
// before res.Completed ran, the next one failed and the rest never ran.
// Output captured before the failure is kept.
func NewFailedView(res *project.Result) *ProjectView {
	v := newProjectView(res.Plan, style.StatusDone, false)
	v.Failed = true
	v.Outputs = res.Invocations
	for i := res.Completed; i < len(v.Steps); i++ {
		if v.Steps[i].Status == style.StatusSkipped {
			continue
		}
		if i == res.Completed {
			v.Steps[i].Status = style.StatusFailed
		} else {
			v.Steps[i].Status = style.StatusNotRun
		}
	}
	return v
}

func newProjectView(plan *project.Plan, status style.Status, contents bool) *ProjectView {
	v := &ProjectView{
		DryRun:  status == style.StatusPlanned,
		Project: plan.Project,
		Steps:   []Step{},
	}
	root := plan.Project.Path

	addFile := func(f project.PlannedFile) {
		step := Step{Kind: style.StepWrite, Target: relative(root, f.Path), Status: status}
		if f.Origin == project.OriginTemplate {
			step.Kind = style.StepCopy
			step.Detail = f.Source
		}
		v.Steps = append(v.Steps, step)

		file := File{
			Path:   relative(root, f.Path),
			Mode:   fmt.Sprintf("%04o", f.Mode.Perm()),
			Origin: f.Origin,
			Source: f.Source,
		}
		if contents {
			file.Content = f.Text()
		}
		v.Files = append(v.Files, file)
	}

	for _, f := range plan.Files {
		addFile(f)
	}

	if plan.Git != nil {
		v.Steps = append(v.Steps, Step{Kind: style.StepGit, Target: plan.Git.Init.String(), Status: status})
		addFile(plan.Git.GitIgnore)
	}

	if plan.Workspace != nil {
		step := Step{Kind: style.StepRegister, Target: plan.Project.Name, Status: status, Detail: plan.Workspace.Manifest}
		if !plan.RegisterMember {
			step.Status = style.StatusSkipped
		}
		v.Steps = append(v.Steps, step)
	}

	if plan.Sync != nil {
		v.Steps = append(v.Steps, Step{Kind: style.StepSync, Target: plan.Sync.String(), Status: status})
	} else {
		v.Steps = append(v.Steps, Step{Kind: style.StepSync, Target: "uv sync", Status: style.StatusSkipped})
	}

	return v
}

// NewTemplateList lists template assets
func NewTemplateList(assets []templates.Asset) *TemplateList {
	if assets == nil {
		assets = []templates.Asset{}
	}
	return &TemplateList{Assets: assets}
}

// NewPythonList lists interpreters, marking the preferred version
func NewPythonList(pythons []tools.Python, preferred string) *PythonList {
	if pythons == nil {
		pythons = []tools.Python{}
	}
	return &PythonList{Preferred: preferred, Pythons: pythons}
}

// NewScriptView describes a created script
func NewScriptView(res *project.ScriptResult) *ScriptView {
	return &ScriptView{Path: res.Path, Runnable: res.Runnable, Output: res.Invocation.Output()}
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

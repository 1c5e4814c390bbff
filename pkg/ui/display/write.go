package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/options"
	"github.com/arthur-debert/pyproject/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

// Painter decorates the pieces of a view. The text renderer returns its
// input unchanged; the terminal renderer applies styles.
type Painter interface {
	Title(s string) string
	Profile(s string) string
	Package(o options.Option) string
	Path(s string) string
	Muted(s string) string
	Warning(s string) string
	Step(s style.Step) string
	// Description renders profile description lines as one block
	Description(lines []string) string
}

// Write lays out a view as lines. Unknown values are printed with %+v.
func Write(w io.Writer, p Painter, view interface{}) error {
	var b strings.Builder
	switch v := view.(type) {
	case *ProfileList:
		writeProfileList(&b, p, v)
	case *ProfileDetail:
		writeProfileDetail(&b, p, v)
	case *ProjectView:
		writeProject(&b, p, v)
	case *TemplateList:
		writeTemplates(&b, p, v)
	case *PythonList:
		writePythons(&b, p, v)
	case *ScriptView:
		writeScript(&b, p, v)
	default:
		fmt.Fprintf(&b, "%+v\n", view)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeProfileList(b *strings.Builder, p Painter, v *ProfileList) {
	if len(v.Profiles) == 0 {
		fmt.Fprintf(b, "No profiles in %s\n", v.Source)
		return
	}
	width := 0
	for _, s := range v.Profiles {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}
	for _, s := range v.Profiles {
		summary := ""
		if len(s.Description) > 0 {
			summary = s.Description[0]
		}
		name := s.Name + strings.Repeat(" ", width-len(s.Name))
		counts := p.Muted(fmt.Sprintf("%d/%d packages", s.Enabled, s.Packages))
		fmt.Fprintf(b, "%s  %s  %s\n", p.Profile(name), counts, summary)
	}
	fmt.Fprintln(b, p.Muted("catalog: "+v.Source))
}

func writeProfileDetail(b *strings.Builder, p Painter, v *ProfileDetail) {
	fmt.Fprintln(b, p.Title(v.Profile.Name))
	if len(v.Profile.Description) > 0 {
		fmt.Fprintln(b, p.Description(v.Profile.Description))
	}
	fmt.Fprintln(b)

	if len(v.Options) == 0 {
		fmt.Fprintln(b, p.Muted("(no packages)"))
	} else {
		b.WriteString(Grid(p, v.Options, v.Columns))
	}

	if len(v.Profile.Extras.Templates) > 0 {
		fmt.Fprintln(b)
		fmt.Fprintln(b, p.Title("Templates"))
		for _, t := range v.Profile.Extras.Templates {
			for i := range t.Src {
				line := fmt.Sprintf("  %s -> %s", t.Src[i], p.Path(t.Dst[i]))
				if i == 0 && t.Description != "" {
					line += "  " + p.Muted(t.Description)
				}
				fmt.Fprintln(b, line)
			}
		}
	}

	if len(v.Profile.Extras.Flags) > 0 {
		fmt.Fprintln(b)
		fmt.Fprintln(b, p.Title("Flags"))
		for _, name := range sortedKeys(v.Profile.Extras.Flags) {
			fmt.Fprintf(b, "  %s = %t\n", name, v.Profile.Extras.Flags[name])
		}
	}

	if len(v.Profile.Extras.PyprojectExtras) > 0 {
		fmt.Fprintln(b)
		fmt.Fprintln(b, p.Title("Manifest extras"))
		for _, line := range v.Profile.Extras.PyprojectExtras {
			fmt.Fprintln(b, "  "+p.Muted(line))
		}
	}
}

// Grid lays options out row by row, columns per row, each cell padded to
// the widest cell.
func Grid(p Painter, opts []options.Option, columns int) string {
	if columns < 1 {
		columns = 1
	}
	cells := make([]string, len(opts))
	width := 0
	for i, o := range opts {
		cells[i] = p.Package(o)
		if w := lipgloss.Width(cells[i]); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, cell := range cells {
		last := i%columns == columns-1 || i == len(cells)-1
		b.WriteString(cell)
		if last {
			b.WriteString("\n")
			continue
		}
		b.WriteString(strings.Repeat(" ", width-lipgloss.Width(cell)+2))
	}
	return b.String()
}

func writeProject(b *strings.Builder, p Painter, v *ProjectView) {
	header := "Creating " + v.Project.Name
	switch {
	case v.DryRun:
		header = "Plan for " + v.Project.Name + " (dry run)"
	case v.Failed:
		header = "Failed creating " + v.Project.Name
	}
	fmt.Fprintln(b, p.Title(header))
	fmt.Fprintf(b, "%s  %s  python %s  profile %s\n",
		p.Path(v.Project.Path), v.Project.Kind, v.Project.PythonVersion, p.Profile(v.Project.Profile))

	if len(v.Project.Requirements) > 0 {
		reqs := make([]string, 0, len(v.Project.Requirements))
		for _, r := range v.Project.Requirements {
			reqs = append(reqs, r.String())
		}
		fmt.Fprintln(b, p.Muted("dependencies: "+strings.Join(reqs, ", ")))
	}
	fmt.Fprintln(b)

	for _, s := range v.Steps {
		fmt.Fprintln(b, p.Step(style.Step{Kind: s.Kind, Target: s.Target, Status: s.Status, Detail: s.Detail}))
	}

	for _, f := range v.Files {
		if f.Content == "" {
			continue
		}
		fmt.Fprintln(b)
		fmt.Fprintln(b, p.Muted(fmt.Sprintf("--- %s (%s)", f.Path, f.Mode)))
		b.WriteString(f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			b.WriteString("\n")
		}
	}

	for _, out := range v.Outputs {
		text := out.Output()
		if text == "" {
			continue
		}
		fmt.Fprintln(b)
		fmt.Fprintln(b, p.Muted("$ "+out.Invocation.String()))
		fmt.Fprintln(b, text)
	}
}

func writeTemplates(b *strings.Builder, p Painter, v *TemplateList) {
	if len(v.Assets) == 0 {
		fmt.Fprintln(b, "No template assets")
		return
	}
	for _, a := range v.Assets {
		fmt.Fprintf(b, "%-28s %s\n", a.ID, p.Muted(fmt.Sprintf("%s, %d bytes", a.Origin, a.Size)))
	}
}

func writePythons(b *strings.Builder, p Painter, v *PythonList) {
	if len(v.Pythons) == 0 {
		fmt.Fprintln(b, "No Python interpreters reported by uv")
		return
	}
	for _, py := range v.Pythons {
		marker := " "
		if py.Version == v.Preferred && py.Implementation == "cpython" {
			marker = "*"
		}
		location := p.Muted("(available for download)")
		if py.Installed() {
			location = p.Path(py.Path)
		}
		fmt.Fprintf(b, "%s %-10s %-8s %s\n", marker, py.Version, py.Implementation, location)
	}
}

func writeScript(b *strings.Builder, p Painter, v *ScriptView) {
	line := "Created script " + p.Path(v.Path)
	if v.Runnable {
		line += " (runnable)"
	}
	fmt.Fprintln(b, line)
	if v.Output != "" {
		fmt.Fprintln(b, p.Muted(v.Output))
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CapturedOutput returns the subprocess output an error carries in its
// "stdout" and "stderr" details, leaving out stderr the message already
// shows. It is empty for errors without captured output.
func CapturedOutput(err error) string {
	var parts []string
	if stdout := strings.TrimSpace(errors.GetDetailString(err, "stdout")); stdout != "" {
		parts = append(parts, stdout)
	}
	if stderr := strings.TrimSpace(errors.GetDetailString(err, "stderr")); stderr != "" && !strings.Contains(err.Error(), stderr) {
		parts = append(parts, stderr)
	}
	return strings.Join(parts, "\n")
}

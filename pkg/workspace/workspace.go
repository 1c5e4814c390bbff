// Package workspace finds a parent uv workspace for a new project and
// registers the project as one of its members.
package workspace

import (
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/manifest"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Workspace is a parent project declaring [tool.uv.workspace]
type Workspace struct {
	Root     string   `json:"root" yaml:"root"`
	Manifest string   `json:"manifest" yaml:"manifest"`
	Members  []string `json:"members" yaml:"members"`
	Exclude  []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

type workspaceManifest struct {
	Tool struct {
		UV struct {
			Workspace *struct {
				Members []string `toml:"members"`
				Exclude []string `toml:"exclude"`
			} `toml:"workspace"`
		} `toml:"uv"`
	} `toml:"tool"`
}

// Find walks up from dir (inclusive) looking for a pyproject.toml that
// declares a uv workspace. It returns nil when none is found.
func Find(fsys types.FS, dir string) (*Workspace, error) {
	logger := logging.GetLogger("workspace")

	current := filepath.Clean(dir)
	for {
		candidate := filepath.Join(current, manifest.FileName)
		if info, err := fsys.Stat(candidate); err == nil && !info.IsDir() {
			ws, err := parse(fsys, candidate)
			if err != nil {
				return nil, err
			}
			if ws != nil {
				logger.Debug().Str("root", ws.Root).Strs("members", ws.Members).Msg("Found parent workspace")
				return ws, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

func parse(fsys types.FS, manifestPath string) (*Workspace, error) {
	data, err := fsys.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", manifestPath)
	}
	return decode(data, manifestPath), nil
}

// decode returns nil when data declares no workspace. An unrelated
// broken manifest must not block project creation, so parse errors are
// logged and treated the same way.
func decode(data []byte, manifestPath string) *Workspace {
	var doc workspaceManifest
	if err := toml.Unmarshal(data, &doc); err != nil {
		logger := logging.GetLogger("workspace")
		logger.Warn().Err(err).Str("path", manifestPath).Msg("Skipping unparsable pyproject.toml")
		return nil
	}
	if doc.Tool.UV.Workspace == nil {
		return nil
	}

	return &Workspace{
		Root:     filepath.Dir(manifestPath),
		Manifest: manifestPath,
		Members:  doc.Tool.UV.Workspace.Members,
		Exclude:  doc.Tool.UV.Workspace.Exclude,
	}
}

// Relative returns target relative to the workspace root, slash-separated
func (w *Workspace) Relative(target string) (string, error) {
	rel, err := filepath.Rel(w.Root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrWorkspace, "%s is not inside workspace %s", target, w.Root)
	}
	return filepath.ToSlash(rel), nil
}

// Includes reports whether a member glob already covers target and no
// exclude glob removes it.
func (w *Workspace) Includes(target string) bool {
	rel, err := w.Relative(target)
	if err != nil {
		return false
	}
	if w.excludes(rel) != "" {
		return false
	}
	for _, pattern := range w.Members {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Excluded reports whether an exclude glob matches target
func (w *Workspace) Excluded(target string) bool {
	rel, err := w.Relative(target)
	if err != nil {
		return false
	}
	return w.excludes(rel) != ""
}

func (w *Workspace) excludes(rel string) string {
	for _, pattern := range w.Exclude {
		if ok, _ := path.Match(pattern, rel); ok {
			return pattern
		}
	}
	return ""
}

var tableHeader = regexp.MustCompile(`^\[\[?\s*[A-Za-z0-9_."' -]+\s*\]\]?\s*(#.*)?$`)

// Edit returns the manifest text with target added to the members array,
// without writing it. It returns nil when a glob already includes target.
// A target removed by an exclude glob, or a manifest layout the edit
// cannot handle, is a WORKSPACE error, so callers can reject the project
// before anything is written.
func (w *Workspace) Edit(fsys types.FS, target string) ([]byte, error) {
	if w.Includes(target) {
		return nil, nil
	}
	rel, err := w.Relative(target)
	if err != nil {
		return nil, err
	}
	if pattern := w.excludes(rel); pattern != "" {
		return nil, errors.Newf(errors.ErrWorkspace,
			"%s is excluded from workspace %s by %q; use --no-workspace to create it standalone", rel, w.Root, pattern).
			WithDetail("manifest", w.Manifest).
			WithDetail("exclude", pattern)
	}

	data, err := fsys.ReadFile(w.Manifest)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", w.Manifest)
	}

	updated, err := insertMember(string(data), rel)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrWorkspace, "cannot register %s in %s", rel, w.Manifest).
			WithDetail("manifest", w.Manifest)
	}

	ws := decode([]byte(updated), w.Manifest)
	if ws == nil || !ws.Includes(target) {
		return nil, errors.Newf(errors.ErrWorkspace, "could not add %s to %s", rel, w.Manifest).
			WithDetail("manifest", w.Manifest)
	}
	return []byte(updated), nil
}

// AddMember lists target in the workspace members array, unless a glob
// already includes it. It edits the manifest text in place so comments
// and formatting elsewhere survive. Returns whether the file changed.
func (w *Workspace) AddMember(fsys types.FS, target string) (bool, error) {
	updated, err := w.Edit(fsys, target)
	if err != nil || updated == nil {
		return false, err
	}

	info, err := fsys.Stat(w.Manifest)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", w.Manifest)
	}
	if err := fsys.WriteFile(w.Manifest, updated, info.Mode().Perm()); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", w.Manifest)
	}

	ws := decode(updated, w.Manifest)
	w.Members = ws.Members

	logger := logging.GetLogger("workspace")
	logger.Info().Str("target", target).Str("manifest", w.Manifest).Msg("Registered workspace member")
	return true, nil
}

func insertMember(content, member string) (string, error) {
	lines := strings.Split(content, "\n")
	quoted := strconv.Quote(member)

	header := findTable(lines, "[tool.uv.workspace]")
	if header < 0 {
		return insertInline(lines, quoted)
	}
	end := tableEnd(lines, header)

	for i := header + 1; i < end; i++ {
		code := stripComment(lines[i])
		key, value, ok := strings.Cut(code, "=")
		if !ok || strings.TrimSpace(key) != "members" {
			continue
		}

		value = strings.TrimSpace(value)
		if !strings.HasPrefix(value, "[") {
			return "", errors.New(errors.ErrWorkspace, "workspace members is not an array")
		}

		if strings.HasSuffix(value, "]") {
			// members = ["a", "b"]
			closing := strings.LastIndex(code, "]")
			lines[i] = appendToArray(lines[i], closing, value, quoted)
			return strings.Join(lines, "\n"), nil
		}

		// multi-line array: add right after the opening bracket
		entry := "    " + quoted + ","
		lines = append(lines[:i+1], append([]string{entry}, lines[i+1:]...)...)
		return strings.Join(lines, "\n"), nil
	}

	entry := "members = [" + quoted + "]"
	lines = append(lines[:header+1], append([]string{entry}, lines[header+1:]...)...)
	return strings.Join(lines, "\n"), nil
}

var inlineMembers = regexp.MustCompile(`\bmembers\s*=\s*\[[^\]]*\]`)

// insertInline handles a workspace declared as an inline table under
// [tool.uv], written on one line: workspace = { members = [...] }
func insertInline(lines []string, quoted string) (string, error) {
	header := findTable(lines, "[tool.uv]")
	if header < 0 {
		return "", errors.New(errors.ErrWorkspace, "manifest has no [tool.uv.workspace] table")
	}
	end := tableEnd(lines, header)

	for i := header + 1; i < end; i++ {
		code := stripComment(lines[i])
		key, value, ok := strings.Cut(code, "=")
		if !ok || strings.TrimSpace(key) != "workspace" {
			continue
		}
		value = strings.TrimSpace(value)
		if !strings.HasPrefix(value, "{") || !strings.HasSuffix(value, "}") {
			return "", errors.New(errors.ErrWorkspace, "workspace inline table spans several lines")
		}

		if loc := inlineMembers.FindStringIndex(code); loc != nil {
			array := code[loc[0]:loc[1]]
			array = strings.TrimSpace(array[strings.Index(array, "["):])
			lines[i] = appendToArray(lines[i], loc[1]-1, array, quoted)
			return strings.Join(lines, "\n"), nil
		}

		open := strings.Index(code, "{")
		inner := strings.TrimSpace(code[open+1 : strings.LastIndex(code, "}")])
		entry := " members = [" + quoted + "]"
		if inner != "" {
			entry += ","
		}
		lines[i] = lines[i][:open+1] + entry + lines[i][open+1:]
		return strings.Join(lines, "\n"), nil
	}

	return "", errors.New(errors.ErrWorkspace, "manifest has no [tool.uv.workspace] table")
}

// appendToArray adds quoted before the closing bracket at index closing
// of line. array is the bracketed array text.
func appendToArray(line string, closing int, array, quoted string) string {
	inner := strings.TrimSpace(array[1 : len(array)-1])
	insert := quoted
	switch {
	case inner == "":
	case strings.HasSuffix(inner, ","):
		insert = " " + quoted
	default:
		insert = ", " + quoted
	}
	return strings.TrimRight(line[:closing], " ") + insert + line[closing:]
}

func findTable(lines []string, name string) int {
	for i, line := range lines {
		if strings.TrimSpace(stripComment(line)) == name {
			return i
		}
	}
	return -1
}

func tableEnd(lines []string, header int) int {
	for i := header + 1; i < len(lines); i++ {
		if tableHeader.MatchString(strings.TrimSpace(lines[i])) {
			return i
		}
	}
	return len(lines)
}

func stripComment(s string) string {
	inString := false
	for i, r := range s {
		switch r {
		case '"':
			inString = !inString
		case '#':
			if !inString {
				return s[:i]
			}
		}
	}
	return s
}

package manifest

import (
	"bytes"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the manifest written at the project root
const FileName = "pyproject.toml"

// Settings are the static manifest fields taken from configuration
type Settings struct {
	Version     string
	Description string
}

// DefaultSettings match what `uv init` writes
func DefaultSettings() Settings {
	return Settings{Version: "0.1.0", Description: "Add your description here"}
}

type projectTable struct {
	Name           string            `toml:"name"`
	Version        string            `toml:"version"`
	Description    string            `toml:"description"`
	Readme         string            `toml:"readme,omitempty"`
	RequiresPython string            `toml:"requires-python"`
	Dependencies   []string          `toml:"dependencies"`
	Scripts        map[string]string `toml:"scripts,omitempty"`
}

type buildSystem struct {
	Requires     []string `toml:"requires"`
	BuildBackend string   `toml:"build-backend"`
}

type document struct {
	Project     projectTable `toml:"project"`
	BuildSystem *buildSystem `toml:"build-system"`
}

// PyProject renders pyproject.toml for a resolved project. Only selected
// requirements appear in dependencies; the profile's manifest snippets are
// appended verbatim after the generated tables.
func PyProject(p types.ResolvedProject, s Settings) ([]byte, error) {
	deps := make([]string, 0, len(p.Requirements))
	for _, r := range p.Requirements {
		deps = append(deps, r.String())
	}

	doc := document{
		Project: projectTable{
			Name:           p.Name,
			Version:        s.Version,
			Description:    s.Description,
			RequiresPython: RequiresPython(p.PythonVersion),
			Dependencies:   deps,
		},
	}
	if !p.Flags.NoReadme {
		doc.Project.Readme = ReadmeFileName
	}
	if p.Kind == types.KindPackage {
		doc.Project.Scripts = map[string]string{p.Name: ModuleName(p.Name) + ":main"}
	}
	if p.Kind.Packaged() {
		doc.BuildSystem = &buildSystem{
			Requires:     []string{"hatchling"},
			BuildBackend: "hatchling.build",
		}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetArraysMultiline(true)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode pyproject.toml")
	}

	out := buf.Bytes()
	if len(p.ManifestExtra) > 0 {
		out = append(bytes.TrimRight(out, "\n"), "\n\n"...)
		out = append(out, strings.Join(p.ManifestExtra, "\n")...)
		out = append(out, '\n')
	}

	return out, nil
}

// ModuleName turns a project name into an importable module name
func ModuleName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', ' ':
			return '_'
		}
		return r
	}, strings.ToLower(name))
}

package manifest

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/types"
)

// File names written next to the manifest
const (
	ReadmeFileName    = "README.md"
	MainFileName      = "main.py"
	GitIgnoreFileName = ".gitignore"
)

// Readme renders README.md: a title and the profile's description lines
func Readme(p types.ResolvedProject) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", p.Name)
	if len(p.Description) > 0 {
		b.WriteString("\n")
		for _, line := range p.Description {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

// MainPy renders the application entry point. A non-empty shebang is
// written as the first line.
func MainPy(p types.ResolvedProject, shebang string) []byte {
	var b strings.Builder
	if shebang != "" {
		b.WriteString(shebang)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "def main():\n    print(\"Hello from %s!\")\n\n\nif __name__ == \"__main__\":\n    main()\n", p.Name)
	return []byte(b.String())
}

// PackageInitPath is the package skeleton location relative to the project
func PackageInitPath(name string) string {
	return "src/" + ModuleName(name) + "/__init__.py"
}

// PackageInit renders src/<module>/__init__.py. Packages expose the main
// function their console script points at; libraries expose hello.
func PackageInit(p types.ResolvedProject) []byte {
	if p.Kind == types.KindPackage {
		return []byte(fmt.Sprintf("def main() -> None:\n    print(\"Hello from %s!\")\n", p.Name))
	}
	return []byte(fmt.Sprintf("def hello() -> str:\n    return \"Hello from %s!\"\n", p.Name))
}

// GitIgnore renders the minimal .gitignore for a uv project
func GitIgnore() []byte {
	return []byte(`# Python-generated files
__pycache__/
*.py[oc]
build/
dist/
wheels/
*.egg-info

# Virtual environments
.venv
`)
}

// AddShebang prefixes content with shebang unless it already starts with one
func AddShebang(content []byte, shebang string) []byte {
	if shebang == "" || strings.HasPrefix(string(content), "#!") {
		return content
	}
	return append([]byte(shebang+"\n"), content...)
}

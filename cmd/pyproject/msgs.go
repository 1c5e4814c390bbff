package pyproject

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Create uv-managed Python projects from profiles"
	MsgNewShort        = "Create a new project"
	MsgPlanShort       = "Show what 'new' would do, without doing it"
	MsgProfilesShort   = "List and inspect catalog profiles"
	MsgProfilesList    = "List the profiles in the catalog"
	MsgProfilesShow    = "Show a profile's packages, templates and flags"
	MsgProfilesExport  = "Print the catalog as JSON"
	MsgTemplatesShort  = "List template assets available to profiles"
	MsgPythonsShort    = "List Python interpreters known to uv"
	MsgScriptShort     = "Create a single-file uv script"
	MsgSchemaShort     = "Print the JSON Schema catalogs are validated against"
	MsgConfigShort     = "Show configuration defaults and locations"
	MsgConfigDefaults  = "Print the built-in configuration"
	MsgConfigPath      = "Print the configuration file path"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgCreatingFormat = "Creating %s"
	MsgCreatedFormat  = "[success]Created[/success] [path]%s[/path]"
	MsgFailedFormat   = "Failed to create %s"
	MsgScriptFormat   = "Creating script %s"

	// Error messages
	MsgErrNoName        = "a project name is required (or use --interactive)"
	MsgErrNoProfiles    = "the catalog has no profiles"
	MsgErrNoCommand     = "no command specified"
	MsgWarnNoPythonList = "Could not list Python versions, type one in"

	// Flag descriptions
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig          = "Configuration file (default $XDG_CONFIG_HOME/pyproject/config.toml)"
	MsgFlagFormat          = "Output format: auto, term, text, json or yaml"
	MsgFlagProfile         = "Catalog profile to start from"
	MsgFlagLocation        = "Parent directory of the new project"
	MsgFlagPython          = "Python version for .python-version and requires-python"
	MsgFlagKind            = "Project kind: app, package or lib"
	MsgFlagWith            = "Select a package the profile leaves unchecked (repeatable)"
	MsgFlagWithout         = "Deselect a package the profile checks (repeatable)"
	MsgFlagWithoutTemplate = "Leave out a profile template, named by its first source asset (repeatable)"
	MsgFlagGit             = "Initialize a git repository"
	MsgFlagNoReadme        = "Do not write README.md"
	MsgFlagNoMain          = "Do not write main.py"
	MsgFlagNoWorkspace     = "Do not join an enclosing uv workspace"
	MsgFlagRunnable        = "Add a uv shebang to main.py and make it executable"
	MsgFlagNoSync          = "Do not run uv sync"
	MsgFlagInteractive     = "Choose profile, packages and options interactively"
	MsgFlagContents        = "Include the full content of every planned file"
	MsgFlagColumns         = "Columns in the package grid"
	MsgFlagInstalled       = "Only list interpreters that are installed"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/new-long.txt
	msgNewLongRaw string
	MsgNewLong    = strings.TrimSpace(msgNewLongRaw)

	//go:embed msgs/new-example.txt
	msgNewExampleRaw string
	MsgNewExample    = strings.TrimRight(msgNewExampleRaw, "\n")

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimRight(msgPlanExampleRaw, "\n")

	//go:embed msgs/script-long.txt
	msgScriptLongRaw string
	MsgScriptLong    = strings.TrimSpace(msgScriptLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

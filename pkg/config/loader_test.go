// pkg/config/loader_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp files, environment
// PURPOSE: Test layering of embedded defaults, user file and env overrides

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "uv", cfg.Tools.UV)
	assert.Equal(t, "git", cfg.Tools.Git)
	assert.Equal(t, "3.13.2", cfg.Defaults.PythonVersion)
	assert.Equal(t, "app", cfg.Defaults.Kind)
	assert.Equal(t, 5, cfg.Defaults.Columns)
	assert.Equal(t, "0.1.0", cfg.Project.Version)
	assert.Equal(t, "#!/usr/bin/env -S uv run --script", cfg.Runnable.Shebang)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoadUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[tools]
uv = "/opt/uv/bin/uv"

[defaults]
python_version = "3.12.8"
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/uv/bin/uv", cfg.Tools.UV)
	assert.Equal(t, "3.12.8", cfg.Defaults.PythonVersion)
	// untouched keys keep their defaults
	assert.Equal(t, "git", cfg.Tools.Git)
	assert.Equal(t, "app", cfg.Defaults.Kind)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "uv", cfg.Tools.UV)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tools\nuv = "), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PYPROJECT_DEFAULTS_PYTHON_VERSION", "3.11.9")
	t.Setenv("PYPROJECT_DEFAULTS_COLUMNS", "3")
	t.Setenv("PYPROJECT_TOOLS_GIT", "/usr/local/bin/git")
	t.Setenv("PYPROJECT_CONFIG_DIR", "/ignored/by/loader")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3.11.9", cfg.Defaults.PythonVersion)
	assert.Equal(t, 3, cfg.Defaults.Columns)
	assert.Equal(t, "/usr/local/bin/git", cfg.Tools.Git)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"PYPROJECT_TOOLS_UV":                "tools.uv",
		"PYPROJECT_DEFAULTS_PYTHON_VERSION": "defaults.python_version",
		"PYPROJECT_RUNNABLE_SHEBANG":        "runnable.shebang",
		"PYPROJECT_DATA_DIR":                "",
		"PYPROJECT_TOOLS":                   "",
	}

	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

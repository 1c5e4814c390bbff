// pkg/templates/templates_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: fstest.MapFS, temp dirs
// PURPOSE: Test asset lookup across layers and template resolution

package templates

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *Store {
	return NewStore().With(OriginBuiltin, fstest.MapFS{
		"a":     {Data: []byte("alpha")},
		"b":     {Data: []byte("beta")},
		"envrc": {Data: []byte("source .venv/bin/activate\n")},
		"sub/c": {Data: []byte("gamma")},
	})
}

func TestResolveSingleEntry(t *testing.T) {
	profile := types.Profile{
		Name: "P",
		Extras: types.Extras{
			Templates: []types.Template{{Src: []string{"a"}, Dst: []string{"b"}}},
		},
	}

	ops, err := NewResolver(testStore()).Resolve(profile, "/tmp/proj")
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, "a", ops[0].Source)
	assert.Equal(t, "/tmp/proj/b", ops[0].Destination)
	assert.False(t, ops[0].Activation)
}

func TestResolvePreservesOrderAndCount(t *testing.T) {
	profile := types.Profile{
		Name: "P",
		Extras: types.Extras{
			Templates: []types.Template{
				{Src: []string{"b", "a", "sub/c"}, Dst: []string{"one.txt", "two.txt", "nested/three.txt"}, Description: "first"},
				{Src: []string{"envrc"}, Dst: []string{".envrc"}, Description: "direnv"},
			},
		},
	}

	ops, err := NewResolver(testStore()).Resolve(profile, "/work/demo")
	require.NoError(t, err)
	require.Len(t, ops, 4)

	assert.Equal(t, types.CopyOperation{Source: "b", Destination: "/work/demo/one.txt", Description: "first"}, ops[0])
	assert.Equal(t, types.CopyOperation{Source: "a", Destination: "/work/demo/two.txt", Description: "first"}, ops[1])
	assert.Equal(t, "/work/demo/nested/three.txt", ops[2].Destination)
	assert.Equal(t, types.CopyOperation{Source: "envrc", Destination: "/work/demo/.envrc", Description: "direnv", Activation: true}, ops[3])
}

func TestResolveNoTemplates(t *testing.T) {
	ops, err := NewResolver(testStore()).Resolve(types.Profile{Name: "P"}, "/tmp/proj")
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name     string
		template types.Template
	}{
		{"unknown source", types.Template{Src: []string{"missing"}, Dst: []string{"x"}}},
		{"length mismatch", types.Template{Src: []string{"a", "b"}, Dst: []string{"x"}}},
		{"absolute destination", types.Template{Src: []string{"a"}, Dst: []string{"/etc/passwd"}}},
		{"escaping destination", types.Template{Src: []string{"a"}, Dst: []string{"../outside"}}},
		{"directory as source", types.Template{Src: []string{"sub"}, Dst: []string{"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := types.Profile{Name: "P", Extras: types.Extras{Templates: []types.Template{tt.template}}}
			_, err := NewResolver(testStore()).Resolve(profile, "/tmp/proj")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate), "got %v", err)
		})
	}
}

func TestResolverRead(t *testing.T) {
	r := NewResolver(testStore())
	data, err := r.Read(types.CopyOperation{Source: "sub/c"})
	require.NoError(t, err)
	assert.Equal(t, "gamma", string(data))

	_, err = r.Read(types.CopyOperation{Source: "nope"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplate))
}

func TestBuiltinAssets(t *testing.T) {
	s := Default("")
	for _, id := range []string{"envrc", "pyside_starter.py", "form.ui", "conftest.py"} {
		assert.True(t, s.Has(id), id)
	}

	data, err := s.Read("pyside_starter.py")
	require.NoError(t, err)
	assert.Contains(t, string(data), "QUiLoader")
}

func TestUserLayerShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "envrc"), []byte("custom\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("mine"), 0644))

	s := Default(dir)

	data, err := s.Read("envrc")
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
	assert.True(t, s.Has("extra.txt"))
	assert.True(t, s.Has("form.ui"))

	assets, err := s.List()
	require.NoError(t, err)

	origins := map[string]string{}
	for _, a := range assets {
		origins[a.ID] = a.Origin
	}
	assert.Equal(t, OriginUser, origins["envrc"])
	assert.Equal(t, OriginUser, origins["extra.txt"])
	assert.Equal(t, OriginBuiltin, origins["conftest.py"])
}

func TestListSkipsMissingUserDir(t *testing.T) {
	s := Default(filepath.Join(t.TempDir(), "absent"))

	assets, err := s.List()
	require.NoError(t, err)
	require.Len(t, assets, 4)
	assert.Equal(t, "conftest.py", assets[0].ID)
	assert.Equal(t, OriginBuiltin, assets[0].Origin)
}

func TestHasRejectsInvalidIDs(t *testing.T) {
	s := testStore()
	assert.False(t, s.Has("../a"))
	assert.False(t, s.Has("/a"))
	assert.False(t, s.Has("."))
	assert.False(t, s.Has(""))
}

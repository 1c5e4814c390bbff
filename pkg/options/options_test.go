// pkg/options/options_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test toggle state derived from profiles

package options

import (
	"testing"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() types.Profile {
	return types.Profile{
		Name: "Sci",
		Packages: []types.Package{
			{Name: "numpy", Enabled: true},
			{Name: "pandas", Enabled: false, Version: ">=2"},
			{Name: "scipy", Enabled: true, Version: ">=1.11"},
		},
	}
}

func TestFromProfile(t *testing.T) {
	m := FromProfile(sampleProfile())

	assert.Equal(t, "Sci", m.Profile())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []types.Requirement{
		{Name: "numpy"},
		{Name: "scipy", Version: ">=1.11"},
	}, m.Selected())
}

func TestFromEmptyProfile(t *testing.T) {
	m := FromProfile(types.Profile{Name: "Empty"})
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Selected())

	err := m.Toggle(0)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIndex))
}

func TestToggle(t *testing.T) {
	m := FromProfile(sampleProfile())

	require.NoError(t, m.Toggle(1))
	require.NoError(t, m.Toggle(0))

	assert.Equal(t, []types.Requirement{
		{Name: "pandas", Version: ">=2"},
		{Name: "scipy", Version: ">=1.11"},
	}, m.Selected())
}

func TestDoubleToggleRestoresState(t *testing.T) {
	for i := 0; i < 3; i++ {
		m := FromProfile(sampleProfile())
		before := m.Options()

		require.NoError(t, m.Toggle(i))
		require.NoError(t, m.Toggle(i))

		assert.Equal(t, before, m.Options(), "index %d", i)
	}
}

func TestToggleOutOfRange(t *testing.T) {
	m := FromProfile(sampleProfile())

	for _, index := range []int{-1, 3, 100} {
		err := m.Toggle(index)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrIndex), "index %d", index)
	}
	assert.Len(t, m.Selected(), 2)
}

func TestSet(t *testing.T) {
	m := FromProfile(sampleProfile())

	require.NoError(t, m.Set("pandas", true))
	require.NoError(t, m.Set("numpy", false))
	assert.Equal(t, []types.Requirement{
		{Name: "pandas", Version: ">=2"},
		{Name: "scipy", Version: ">=1.11"},
	}, m.Selected())

	err := m.Set("torch", true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestModelDoesNotMutateProfile(t *testing.T) {
	p := sampleProfile()
	m := FromProfile(p)
	require.NoError(t, m.Toggle(0))

	assert.True(t, p.Packages[0].Enabled)

	opts := m.Options()
	opts[2].Enabled = false
	assert.True(t, m.Options()[2].Enabled)
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "pandas>=2", Option{Name: "pandas", Version: ">=2"}.Label())
	assert.Equal(t, "numpy", Option{Name: "numpy"}.Label())
}

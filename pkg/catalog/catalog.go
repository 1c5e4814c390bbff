// Package catalog loads the profile catalog: a JSON (or YAML) mapping from
// profile name to packages, description lines and extras.
//
// A Catalog is read-only once loaded. Accessors hand out copies, so the
// rest of the program can never add, remove or mutate a profile.
package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// Catalog is an ordered, immutable set of profiles
type Catalog struct {
	names    []string
	profiles map[string]types.Profile
	source   string
}

// Names returns profile names in declaration order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of profiles
func (c *Catalog) Len() int {
	return len(c.names)
}

// Source describes where the catalog was loaded from
func (c *Catalog) Source() string {
	return c.source
}

// Get returns a copy of the named profile. An exact match wins; otherwise
// a single case-insensitive match is accepted.
func (c *Catalog) Get(name string) (types.Profile, error) {
	if p, ok := c.profiles[name]; ok {
		return p.Clone(), nil
	}

	var match string
	for _, n := range c.names {
		if strings.EqualFold(n, name) {
			if match != "" {
				return types.Profile{}, errors.Newf(errors.ErrProfileNotFound,
					"profile %q is ambiguous (%s, %s)", name, match, n)
			}
			match = n
		}
	}
	if match == "" {
		return types.Profile{}, errors.Newf(errors.ErrProfileNotFound, "profile %q not found", name).
			WithDetail("available", c.Names())
	}
	return c.profiles[match].Clone(), nil
}

// Profiles returns copies of all profiles in declaration order
func (c *Catalog) Profiles() []types.Profile {
	out := make([]types.Profile, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.profiles[n].Clone())
	}
	return out
}

// MarshalJSON writes the catalog back in its source format, keeping the
// declaration order. Unrecognized statuses come back as "disabled".
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(encodeProfile(c.profiles[name]))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeProfile(p types.Profile) map[string]interface{} {
	packages := make([][]string, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		status := string(types.PackageDisabled)
		if pkg.Enabled {
			status = string(types.PackageEnabled)
		}
		entry := []string{pkg.Name, status}
		if pkg.Version != "" {
			entry = append(entry, pkg.Version)
		}
		packages = append(packages, entry)
	}

	description := p.Description
	if description == nil {
		description = []string{}
	}
	out := map[string]interface{}{
		"packages":    packages,
		"description": description,
	}

	extras := map[string]interface{}{}
	if len(p.Extras.Templates) > 0 {
		extras["templates"] = p.Extras.Templates
	}
	for k, v := range p.Extras.Flags {
		extras[k] = v
	}
	if len(extras) > 0 {
		out["extras"] = extras
	}
	if len(p.Extras.PyprojectExtras) > 0 {
		out["pyproject_extras"] = p.Extras.PyprojectExtras
	}
	return out
}

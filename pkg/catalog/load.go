package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/arthur-debert/pyproject/pkg/types"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/default.json
var defaultCatalog []byte

// Format is the serialization of a catalog document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// entry is one top-level profile in declaration order, re-encoded as JSON
type entry struct {
	name string
	raw  json.RawMessage
}

type rawProfile struct {
	Packages        [][]string                 `json:"packages"`
	Description     []string                   `json:"description"`
	Extras          map[string]json.RawMessage `json:"extras"`
	PyprojectExtras []string                   `json:"pyproject_extras"`
}

// Default returns the catalog bundled with the binary
func Default() (*Catalog, error) {
	return Load(defaultCatalog, FormatJSON, "builtin")
}

// LoadFile reads and parses a catalog file through the given filesystem
func LoadFile(fsys types.FS, path string) (*Catalog, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read catalog %s", path)
	}
	return Load(data, FormatFromPath(path), path)
}

// Load parses a catalog document. The document is validated against the
// catalog schema before any profile is built; source is used in messages.
func Load(data []byte, format Format, source string) (*Catalog, error) {
	logger := logging.GetLogger("catalog")

	var (
		entries []entry
		err     error
	)
	switch format {
	case FormatYAML:
		entries, err = yamlEntries(data)
	default:
		entries, err = jsonEntries(data)
	}
	if err != nil {
		return nil, err
	}

	doc := make(map[string]interface{}, len(entries))
	for _, e := range entries {
		v, err := decodeGeneric(e.raw)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSchema, "profile %q is not valid JSON", e.name)
		}
		doc[e.name] = v
	}
	if err := validateDocument(doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrSchema, "invalid catalog %s", source)
	}

	c := &Catalog{
		profiles: make(map[string]types.Profile, len(entries)),
		source:   source,
	}
	for _, e := range entries {
		profile, err := buildProfile(e.name, e.raw)
		if err != nil {
			return nil, err
		}
		c.names = append(c.names, e.name)
		c.profiles[e.name] = profile
	}

	logger.Debug().
		Str("source", source).
		Int("profiles", len(c.names)).
		Msg("Loaded profile catalog")

	return c, nil
}

// jsonEntries walks the top-level object token by token so declaration
// order survives and duplicate names can be rejected.
func jsonEntries(data []byte) ([]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSchema, "catalog is not valid JSON")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New(errors.ErrSchema, "catalog must be a JSON object of profiles")
	}

	seen := make(map[string]bool)
	var entries []entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrSchema, "catalog is not valid JSON")
		}
		name, _ := tok.(string)
		if seen[name] {
			return nil, errors.Newf(errors.ErrSchema, "profile %q is declared more than once", name)
		}
		seen[name] = true

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSchema, "profile %q is not valid JSON", name)
		}
		entries = append(entries, entry{name: name, raw: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, errors.ErrSchema, "catalog is not valid JSON")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrSchema, "unexpected data after catalog object")
	}

	return entries, nil
}

func yamlEntries(data []byte) ([]entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, errors.ErrSchema, "catalog is not valid YAML")
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrSchema, "catalog must be a YAML mapping of profiles")
	}

	mapping := root.Content[0]
	seen := make(map[string]bool)
	var entries []entry
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		if seen[name] {
			return nil, errors.Newf(errors.ErrSchema, "profile %q is declared more than once", name)
		}
		seen[name] = true

		var v interface{}
		if err := mapping.Content[i+1].Decode(&v); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSchema, "profile %q is not valid YAML", name)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSchema, "profile %q cannot be represented as JSON", name)
		}
		entries = append(entries, entry{name: name, raw: raw})
	}
	return entries, nil
}

func decodeGeneric(raw json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func buildProfile(name string, raw json.RawMessage) (types.Profile, error) {
	logger := logging.GetLogger("catalog")

	var rp rawProfile
	if err := json.Unmarshal(raw, &rp); err != nil {
		return types.Profile{}, errors.Wrapf(err, errors.ErrSchema, "profile %q cannot be decoded", name)
	}

	profile := types.Profile{
		Name:        name,
		Packages:    make([]types.Package, 0, len(rp.Packages)),
		Description: rp.Description,
	}

	for i, pkg := range rp.Packages {
		if len(pkg) < 2 || len(pkg) > 3 {
			return types.Profile{}, errors.Newf(errors.ErrSchema,
				"profile %q package %d: want [name, status] or [name, status, version], got %d elements", name, i, len(pkg))
		}
		if pkg[0] == "" {
			return types.Profile{}, errors.Newf(errors.ErrSchema, "profile %q package %d: empty name", name, i)
		}

		status := types.PackageStatus(pkg[1])
		if !status.IsKnown() {
			logger.Warn().
				Str("profile", name).
				Str("package", pkg[0]).
				Str("status", pkg[1]).
				Msg("Unrecognized package status, treating as disabled")
		}

		p := types.Package{Name: pkg[0], Enabled: status == types.PackageEnabled}
		if len(pkg) == 3 {
			p.Version = pkg[2]
		}
		profile.Packages = append(profile.Packages, p)
	}

	profile.Extras.PyprojectExtras = append(profile.Extras.PyprojectExtras, rp.PyprojectExtras...)

	for key, value := range rp.Extras {
		switch key {
		case "templates":
			if err := json.Unmarshal(value, &profile.Extras.Templates); err != nil {
				return types.Profile{}, errors.Wrapf(err, errors.ErrSchema, "profile %q: bad extras.templates", name)
			}
		case "pyproject_extras":
			var lines []string
			if err := json.Unmarshal(value, &lines); err != nil {
				return types.Profile{}, errors.Wrapf(err, errors.ErrSchema, "profile %q: bad extras.pyproject_extras", name)
			}
			profile.Extras.PyprojectExtras = append(profile.Extras.PyprojectExtras, lines...)
		default:
			var flag bool
			if err := json.Unmarshal(value, &flag); err != nil {
				logger.Debug().Str("profile", name).Str("key", key).Msg("Ignoring non-boolean extras key")
				continue
			}
			if profile.Extras.Flags == nil {
				profile.Extras.Flags = make(map[string]bool)
			}
			profile.Extras.Flags[key] = flag
		}
	}

	for i, t := range profile.Extras.Templates {
		if len(t.Src) == 0 || len(t.Dst) == 0 {
			return types.Profile{}, errors.Newf(errors.ErrSchema, "profile %q template %d: src and dst must not be empty", name, i)
		}
		if len(t.Src) != len(t.Dst) {
			return types.Profile{}, errors.Newf(errors.ErrSchema,
				"profile %q template %d: %d sources but %d destinations", name, i, len(t.Src), len(t.Dst)).
				WithDetail("profile", name)
		}
	}

	return profile, nil
}

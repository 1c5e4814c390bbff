package templates

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/types"
)

// activationScripts are destinations direnv reads on cd
var activationScripts = map[string]bool{
	".envrc": true,
}

// Resolver maps a profile's template entries onto a destination directory
type Resolver struct {
	store *Store
}

// NewResolver creates a resolver backed by store
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve zips each template entry's src and dst lists by position and
// returns the copy operations in declaration order. Destinations are
// joined onto destDir and may not escape it.
func (r *Resolver) Resolve(profile types.Profile, destDir string) ([]types.CopyOperation, error) {
	var ops []types.CopyOperation

	for i, t := range profile.Extras.Templates {
		if len(t.Src) != len(t.Dst) {
			return nil, errors.Newf(errors.ErrTemplate,
				"profile %q template %d: %d sources but %d destinations", profile.Name, i, len(t.Src), len(t.Dst))
		}

		for j, src := range t.Src {
			if !r.store.Has(src) {
				return nil, errors.Newf(errors.ErrTemplate, "profile %q: unknown template asset %q", profile.Name, src).
					WithDetail("source", src).
					WithDetail("profile", profile.Name)
			}

			dst := t.Dst[j]
			rel := filepath.Clean(filepath.FromSlash(dst))
			if filepath.IsAbs(rel) || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				return nil, errors.Newf(errors.ErrTemplate, "profile %q: destination %q is outside the project", profile.Name, dst).
					WithDetail("destination", dst)
			}

			ops = append(ops, types.CopyOperation{
				Source:      src,
				Destination: filepath.Join(destDir, rel),
				Description: t.Description,
				Activation:  activationScripts[filepath.Base(rel)],
			})
		}
	}

	return ops, nil
}

// Read returns the bytes for a copy operation's source
func (r *Resolver) Read(op types.CopyOperation) ([]byte, error) {
	return r.store.Read(op.Source)
}

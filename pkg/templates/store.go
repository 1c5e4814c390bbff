// Package templates holds the static assets profiles copy into new
// projects and resolves a profile's template entries into copy operations.
//
// Assets are opaque byte blobs addressed by id (their path inside the
// store). They are copied verbatim; nothing is substituted.
package templates

import (
	"embed"
	stderrors "errors"
	"io/fs"
	"sort"

	"github.com/arthur-debert/pyproject/pkg/errors"
	"github.com/arthur-debert/pyproject/pkg/logging"
	"github.com/spf13/afero"
)

//go:embed embedded/*
var embeddedAssets embed.FS

// Origin names of the store layers
const (
	OriginBuiltin = "builtin"
	OriginUser    = "user"
)

// Asset describes one template asset available to profiles
type Asset struct {
	ID     string `json:"id" yaml:"id"`
	Origin string `json:"origin" yaml:"origin"`
	Size   int64  `json:"size" yaml:"size"`
}

type layer struct {
	origin string
	fsys   fs.FS
}

// Store looks assets up across layers; later layers shadow earlier ones
type Store struct {
	layers []layer
}

// Builtin returns the assets compiled into the binary
func Builtin() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "embedded")
	if err != nil {
		panic(err)
	}
	return sub
}

// DirLayer exposes a directory on disk as an asset layer
func DirLayer(dir string) fs.FS {
	return afero.NewIOFS(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// NewStore creates an empty store; add layers with With
func NewStore() *Store {
	return &Store{}
}

// Default returns the builtin assets, overlaid by userDir when it is set
func Default(userDir string) *Store {
	s := NewStore().With(OriginBuiltin, Builtin())
	if userDir != "" {
		s = s.With(OriginUser, DirLayer(userDir))
	}
	return s
}

// With returns a copy of the store with fsys layered on top
func (s *Store) With(origin string, fsys fs.FS) *Store {
	layers := append(append([]layer(nil), s.layers...), layer{origin: origin, fsys: fsys})
	return &Store{layers: layers}
}

func (s *Store) find(id string) (layer, fs.FileInfo, bool) {
	if !fs.ValidPath(id) || id == "." {
		return layer{}, nil, false
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		info, err := fs.Stat(s.layers[i].fsys, id)
		if err == nil && !info.IsDir() {
			return s.layers[i], info, true
		}
	}
	return layer{}, nil, false
}

// Has reports whether an asset with the given id exists in any layer
func (s *Store) Has(id string) bool {
	_, _, ok := s.find(id)
	return ok
}

// Read returns the bytes of an asset
func (s *Store) Read(id string) ([]byte, error) {
	l, _, ok := s.find(id)
	if !ok {
		return nil, errors.Newf(errors.ErrTemplate, "template asset %q not found", id).
			WithDetail("source", id)
	}
	data, err := fs.ReadFile(l.fsys, id)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplate, "cannot read template asset %q", id).
			WithDetail("source", id)
	}
	return data, nil
}

// List returns every visible asset sorted by id
func (s *Store) List() ([]Asset, error) {
	logger := logging.GetLogger("templates")
	seen := make(map[string]Asset)

	for _, l := range s.layers {
		err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			seen[path] = Asset{ID: path, Origin: l.origin, Size: info.Size()}
			return nil
		})
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				logger.Debug().Str("origin", l.origin).Msg("Template layer does not exist, skipping")
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s templates", l.origin)
		}
	}

	assets := make([]Asset, 0, len(seen))
	for _, a := range seen {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

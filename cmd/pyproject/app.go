package pyproject

import (
	"github.com/arthur-debert/pyproject/pkg/catalog"
	"github.com/arthur-debert/pyproject/pkg/config"
	"github.com/arthur-debert/pyproject/pkg/filesystem"
	"github.com/arthur-debert/pyproject/pkg/manifest"
	"github.com/arthur-debert/pyproject/pkg/paths"
	"github.com/arthur-debert/pyproject/pkg/project"
	"github.com/arthur-debert/pyproject/pkg/runner"
	"github.com/arthur-debert/pyproject/pkg/synthfs"
	"github.com/arthur-debert/pyproject/pkg/templates"
	"github.com/arthur-debert/pyproject/pkg/tools"
	"github.com/arthur-debert/pyproject/pkg/types"
	"github.com/rs/zerolog/log"
)

// app holds everything commands share once configuration is loaded
type app struct {
	cfg          *config.Config
	paths        paths.Paths
	configPath   string
	fs           types.FS
	catalog      *catalog.Catalog
	store        *templates.Store
	resolver     *templates.Resolver
	uv           *tools.UV
	git          *tools.Git
	materializer *project.Materializer
}

// newApp loads configuration and the catalog and wires the materializer.
// configPath overrides the XDG config file when set.
func newApp(configPath string, r runner.CommandRunner) (*app, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = p.ConfigFilePath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	fsys := filesystem.NewOS()

	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		catalogPath, err := paths.NormalizePath(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		cat, err = catalog.LoadFile(fsys, catalogPath)
		if err != nil {
			return nil, err
		}
	} else {
		cat, err = catalog.Default()
		if err != nil {
			return nil, err
		}
	}

	templatesDir := cfg.Templates.Dir
	if templatesDir == "" {
		templatesDir = p.TemplatesDir()
	}
	store := templates.Default(paths.ExpandHome(templatesDir))
	resolver := templates.NewResolver(store)

	uv := tools.NewUV(cfg.Tools.UV, r)
	git := tools.NewGit(cfg.Tools.Git, r)

	m := project.NewMaterializer(project.Config{
		FS:        fsys,
		Writer:    synthfs.NewWriter(),
		Templates: resolver,
		UV:        uv,
		Git:       git,
		Manifest: manifest.Settings{
			Version:     cfg.Project.Version,
			Description: cfg.Project.Description,
		},
		Shebang: cfg.Runnable.Shebang,
	})

	log.Debug().
		Str("config", configPath).
		Str("catalog", cat.Source()).
		Str("templates", templatesDir).
		Msg("Application wired")

	return &app{
		cfg:          cfg,
		paths:        p,
		configPath:   configPath,
		fs:           fsys,
		catalog:      cat,
		store:        store,
		resolver:     resolver,
		uv:           uv,
		git:          git,
		materializer: m,
	}, nil
}

// defaultProfile is the configured default, else the first catalog entry
func (a *app) defaultProfile() string {
	if a.cfg.Defaults.Profile != "" {
		return a.cfg.Defaults.Profile
	}
	if names := a.catalog.Names(); len(names) > 0 {
		return names[0]
	}
	return ""
}

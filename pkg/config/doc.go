// Package config handles configuration management for pyproject.
//
// Configuration is layered with koanf: the embedded defaults.toml first,
// then the user's config.toml, then PYPROJECT_SECTION_KEY environment
// variables. Later layers override earlier ones key by key.
package config

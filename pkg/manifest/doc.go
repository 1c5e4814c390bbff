// Package manifest renders the files a new project starts with: the
// pyproject.toml manifest, README, entry point, package skeleton,
// .gitignore and .python-version.
//
// Rendering is pure. The same inputs always give the same bytes, which is
// what lets a dry run show exactly what a real run writes.
package manifest

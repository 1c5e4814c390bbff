// Package project turns a chosen profile and the user's settings into a
// project directory.
//
// Resolve builds the immutable types.ResolvedProject. A Materializer then
// either plans it (DryRun) or writes it (Materialize). Both go through the
// same planner, so a dry run shows the exact bytes a real run writes.
//
// Materialization is a single forward pass:
//
//  1. refuse a non-empty target, then create it
//  2. write pyproject.toml and .python-version
//  3. write the entry point or package skeleton
//  4. write README.md unless no_readme is set
//  5. copy template assets
//  6. git init and .gitignore when use_git is set
//  7. register with a parent uv workspace and sync, or sync standalone
//
// Any failure stops the pass. Nothing is rolled back: files written by
// earlier steps stay where they are and the error says so.
package project

// Package types defines the core data structures shared across pyproject:
// catalog profiles and their packages, templates and extras, the resolved
// project handed to the materializer, and the FS interface used for all
// filesystem access.
package types

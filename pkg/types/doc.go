// Package types defines the Board interface, entity types, and standard
// error values for the taskboard work-item tracker.
// Backends under internal/ implement Board; the CLI and TUI depend only on
// this package.
package types

// Package pagination provides the shared --limit/--offset/--page and --sort
// handling of list commands: flag validation, slicing, result metadata, and
// a sorter for generic report rows.
package pagination

// Package introspect defines what the generator needs to know about an R
// package: its exported names, each function's formal arguments with their
// default values, and its documentation pages.
//
// Implementations live in subpackages:
//   - manifest: reads a YAML/JSON description of a package
//   - rscript: runs R to produce that description on the fly
//   - factory: selects one of the above from command options
package introspect

// Package generator drives a whole run: it walks the exported functions of
// an R package, builds one Galaxy tool descriptor per function, and writes
// the descriptors together with the shared macros file.
//
// A function that fails to build is logged and skipped. Two functions that
// resolve to the same tool id abort the run before anything is written.
package generator

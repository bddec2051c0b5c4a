// Package naming maps R identifiers onto names that are safe in file names,
// XML attributes and R call sites.
//
// Key functionality:
//   - Sanitize: replace every character outside [A-Za-z0-9_] with '_'
//   - QuoteR: back-quote non-syntactic R names for use as call arguments
package naming

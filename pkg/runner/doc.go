// Package runner executes external programs and captures their output.
package runner

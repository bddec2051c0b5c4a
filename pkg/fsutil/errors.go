package fsutil

import "errors"

var (
	// ErrEmptyOutputPath is returned when a write target is empty.
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	// ErrBasePath is returned when a base directory is empty.
	ErrBasePath = errors.New("base path cannot be empty")
	// ErrPathOutsideBase is returned when a joined path escapes its base directory.
	ErrPathOutsideBase = errors.New("invalid path: file is outside base directory")
)

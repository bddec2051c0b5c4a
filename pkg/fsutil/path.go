package fsutil

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandHomePath expands a leading ~/ to the user's home directory and makes
// the result absolute.
func ExpandHomePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("failed to get current user: %w", err)
		}

		path = filepath.Join(usr.HomeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to convert to absolute path: %w", err)
		}

		return absPath, nil
	}

	return path, nil
}

// JoinInBase joins name onto base and rejects results outside base.
func JoinInBase(base, name string) (string, error) {
	if base == "" {
		return "", ErrBasePath
	}

	if name == "" {
		return "", ErrEmptyOutputPath
	}

	base = filepath.Clean(base)
	joined := filepath.Join(base, name)

	rel, err := filepath.Rel(base, joined)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideBase, name)
	}

	return joined, nil
}

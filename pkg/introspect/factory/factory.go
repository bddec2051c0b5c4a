// Package factory selects the introspection backend for a generation run.
package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/devantler-tech/r2g2/pkg/introspect"
	"github.com/devantler-tech/r2g2/pkg/introspect/manifest"
	"github.com/devantler-tech/r2g2/pkg/introspect/rscript"
	"github.com/devantler-tech/r2g2/pkg/runner"
)

var (
	// ErrPackageRequired is returned when no package name is given.
	ErrPackageRequired = errors.New("package name is required")
	// ErrPackageMismatch is returned when a manifest describes another package.
	ErrPackageMismatch = errors.New("manifest describes a different package")
)

// SourceOptions describe where introspection data comes from.
type SourceOptions struct {
	// Package is the R package name.
	Package string
	// ManifestPath selects a static manifest instead of a live R session.
	ManifestPath string
	// Rscript is the executable used for live introspection.
	Rscript string
	// Timeout bounds live introspection.
	Timeout time.Duration
	// Stderr receives the R session's diagnostics.
	Stderr io.Writer
}

// Factory creates introspection sources.
type Factory interface {
	Create(ctx context.Context, options SourceOptions) (introspect.Source, error)
}

// DefaultFactory reads a manifest when one is configured and runs Rscript otherwise.
type DefaultFactory struct{}

// Create selects the backend for the given options.
func (DefaultFactory) Create(_ context.Context, options SourceOptions) (introspect.Source, error) {
	if options.Package == "" {
		return nil, ErrPackageRequired
	}

	if options.ManifestPath != "" {
		source, err := manifest.Load(options.ManifestPath)
		if err != nil {
			return nil, err
		}

		if name := source.Package().Name; name != options.Package {
			return nil, fmt.Errorf(
				"%w: %s describes %q, expected %q",
				ErrPackageMismatch,
				options.ManifestPath,
				name,
				options.Package,
			)
		}

		return source, nil
	}

	return rscript.New(runner.NewExecCommandRunner(options.Stderr), rscript.Options{
		Package: options.Package,
		Rscript: options.Rscript,
		Timeout: options.Timeout,
	}), nil
}

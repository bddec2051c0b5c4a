// Package manifest implements introspect.Source on top of a static package
// description. The description is YAML or JSON and is also what the rscript
// source produces from a live R session.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/devantler-tech/r2g2/pkg/introspect"
	"sigs.k8s.io/yaml"
)

var (
	// ErrNotAFunction is returned for exports that are not callable.
	ErrNotAFunction = errors.New("export is not a function")
	// ErrHelpUnavailable is returned when help retrieval failed at dump time.
	ErrHelpUnavailable = errors.New("help unavailable")
	// ErrEmptyManifest is returned when the manifest names no package.
	ErrEmptyManifest = errors.New("manifest does not name a package")
)

// Package is the serialized description of an R package.
type Package struct {
	// Name is the R package name.
	Name string `json:"name"`
	// Version is the installed package version.
	Version string `json:"version,omitempty"`
	// Functions lists every export in generation order.
	Functions []Function `json:"functions"`
}

// Function describes one export.
type Function struct {
	Name string `json:"name"`
	// Error is set when the export could not be described (e.g. not a function).
	Error string `json:"error,omitempty"`
	// Doc is the raw documentation string used when help pages are missing.
	Doc     string                `json:"doc,omitempty"`
	Formals []introspect.Formal   `json:"formals,omitempty"`
	Help    []introspect.HelpPage `json:"help,omitempty"`
	// HelpError records why help pages could not be retrieved.
	HelpError string `json:"helpError,omitempty"`
}

// Source serves introspection queries from a decoded Package.
type Source struct {
	pkg   Package
	index map[string]int
}

// Provider exposes the whole package description at once.
type Provider interface {
	Manifest(ctx context.Context) (Package, error)
}

// Compile-time interface compliance verification.
var (
	_ introspect.Source = (*Source)(nil)
	_ Provider          = (*Source)(nil)
)

// Load reads and decodes a manifest file.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user supplied by design
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML or JSON manifest.
func Parse(data []byte) (*Source, error) {
	var pkg Package

	err := yaml.Unmarshal(data, &pkg)
	if err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	return New(pkg)
}

// New wraps an in-memory Package.
func New(pkg Package) (*Source, error) {
	if pkg.Name == "" {
		return nil, ErrEmptyManifest
	}

	index := make(map[string]int, len(pkg.Functions))

	for i, function := range pkg.Functions {
		if _, seen := index[function.Name]; !seen {
			index[function.Name] = i
		}
	}

	return &Source{pkg: pkg, index: index}, nil
}

// Package returns the decoded manifest.
func (s *Source) Package() Package {
	return s.pkg
}

// Manifest implements Provider.
func (s *Source) Manifest(_ context.Context) (Package, error) {
	return s.pkg, nil
}

// PackageVersion implements introspect.Source.
func (s *Source) PackageVersion(_ context.Context) (string, error) {
	return s.pkg.Version, nil
}

// ListExports implements introspect.Source. Duplicated names are listed as
// often as they appear so the generator can detect them.
func (s *Source) ListExports(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(s.pkg.Functions))
	for _, function := range s.pkg.Functions {
		names = append(names, function.Name)
	}

	return names, nil
}

// Formals implements introspect.Source.
func (s *Source) Formals(_ context.Context, name string) ([]introspect.Formal, error) {
	function, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	if function.Error != "" {
		return nil, fmt.Errorf("%w: %s: %s", ErrNotAFunction, name, function.Error)
	}

	return function.Formals, nil
}

// HelpPages implements introspect.Source.
func (s *Source) HelpPages(_ context.Context, name string) ([]introspect.HelpPage, error) {
	function, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	if function.HelpError != "" {
		return nil, fmt.Errorf("%w: %s", ErrHelpUnavailable, function.HelpError)
	}

	return function.Help, nil
}

// DocString implements introspect.Source.
func (s *Source) DocString(_ context.Context, name string) (string, error) {
	function, err := s.lookup(name)
	if err != nil {
		return "", err
	}

	return function.Doc, nil
}

func (s *Source) lookup(name string) (Function, error) {
	i, ok := s.index[name]
	if !ok {
		return Function{}, fmt.Errorf("%w: %s", introspect.ErrUnknownFunction, name)
	}

	return s.pkg.Functions[i], nil
}

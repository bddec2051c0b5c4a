// Package rscript implements introspect.Source by running an embedded R
// script through Rscript. The script writes a manifest that is then served
// by the manifest package.
package rscript

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/devantler-tech/r2g2/pkg/introspect"
	"github.com/devantler-tech/r2g2/pkg/introspect/manifest"
	"github.com/devantler-tech/r2g2/pkg/runner"
)

// DefaultRscript is the Rscript executable looked up on PATH.
const DefaultRscript = "Rscript"

// ErrIntrospection is returned when the R session fails to describe the package.
var ErrIntrospection = errors.New("r introspection failed")

//go:embed introspect.R
var introspectScript []byte

// Script returns the embedded R program.
func Script() string {
	return string(introspectScript)
}

// Options configure an Rscript-backed source.
type Options struct {
	// Package is the R package to describe.
	Package string
	// Rscript is the executable to run. Defaults to DefaultRscript.
	Rscript string
	// Timeout bounds the whole R session. Zero disables the bound.
	Timeout time.Duration
}

// Source runs R once, on first use, and serves every query from the result.
type Source struct {
	runner  runner.CommandRunner
	options Options

	mu     sync.Mutex
	loaded *manifest.Source
}

// Compile-time interface compliance verification.
var (
	_ introspect.Source = (*Source)(nil)
	_ manifest.Provider = (*Source)(nil)
)

// New creates a lazy Rscript source.
func New(cmdRunner runner.CommandRunner, options Options) *Source {
	if options.Rscript == "" {
		options.Rscript = DefaultRscript
	}

	return &Source{runner: cmdRunner, options: options}
}

// Manifest returns the package description produced by R.
func (s *Source) Manifest(ctx context.Context) (manifest.Package, error) {
	src, err := s.load(ctx)
	if err != nil {
		return manifest.Package{}, err
	}

	return src.Package(), nil
}

// PackageVersion implements introspect.Source.
func (s *Source) PackageVersion(ctx context.Context) (string, error) {
	src, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	return src.PackageVersion(ctx)
}

// ListExports implements introspect.Source.
func (s *Source) ListExports(ctx context.Context) ([]string, error) {
	src, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return src.ListExports(ctx)
}

// Formals implements introspect.Source.
func (s *Source) Formals(ctx context.Context, function string) ([]introspect.Formal, error) {
	src, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return src.Formals(ctx, function)
}

// HelpPages implements introspect.Source.
func (s *Source) HelpPages(ctx context.Context, function string) ([]introspect.HelpPage, error) {
	src, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return src.HelpPages(ctx, function)
}

// DocString implements introspect.Source.
func (s *Source) DocString(ctx context.Context, function string) (string, error) {
	src, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	return src.DocString(ctx, function)
}

// load runs R on the first call. Failures are not cached so a later call may retry.
func (s *Source) load(ctx context.Context) (*manifest.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded != nil {
		return s.loaded, nil
	}

	src, err := s.run(ctx)
	if err != nil {
		return nil, err
	}

	s.loaded = src

	return src, nil
}

func (s *Source) run(ctx context.Context) (*manifest.Source, error) {
	dir, err := os.MkdirTemp("", "r2g2-*")
	if err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}

	defer func() { _ = os.RemoveAll(dir) }()

	scriptPath := filepath.Join(dir, "introspect.R")
	outputPath := filepath.Join(dir, "manifest.json")

	err = os.WriteFile(scriptPath, introspectScript, 0o600)
	if err != nil {
		return nil, fmt.Errorf("write introspection script: %w", err)
	}

	if s.options.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	result, err := s.runner.Run(
		ctx,
		s.options.Rscript,
		[]string{"--vanilla", scriptPath, s.options.Package, outputPath},
	)
	if err != nil {
		stderr := strings.TrimSpace(result.Stderr)
		if stderr != "" {
			return nil, fmt.Errorf("%w for %s: %s: %w", ErrIntrospection, s.options.Package, stderr, err)
		}

		return nil, fmt.Errorf("%w for %s: %w", ErrIntrospection, s.options.Package, err)
	}

	data, err := os.ReadFile(outputPath) //nolint:gosec // path is inside our temp dir
	if err != nil {
		return nil, fmt.Errorf("%w for %s: no manifest written: %w", ErrIntrospection, s.options.Package, err)
	}

	return manifest.Parse(data)
}

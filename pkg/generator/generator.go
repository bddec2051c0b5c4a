package generator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/r2g2/pkg/classify"
	"github.com/devantler-tech/r2g2/pkg/descriptor"
	"github.com/devantler-tech/r2g2/pkg/fsutil"
	"github.com/devantler-tech/r2g2/pkg/helpdoc"
	"github.com/devantler-tech/r2g2/pkg/introspect"
	"github.com/devantler-tech/r2g2/pkg/naming"
	"github.com/devantler-tech/r2g2/pkg/parallel"
	"github.com/devantler-tech/r2g2/pkg/script"
	"github.com/devantler-tech/r2g2/pkg/utils/notify"
	"github.com/devantler-tech/r2g2/pkg/widget"
	"github.com/sirupsen/logrus"
)

var (
	// ErrDuplicateTool is returned when two functions resolve to the same tool id.
	ErrDuplicateTool = errors.New("duplicate tool id")
	// ErrBuildPanic wraps a panic raised while building one function.
	ErrBuildPanic = errors.New("panic while building tool")
	// ErrRNameRequired is returned when Options.RName is empty.
	ErrRNameRequired = errors.New("r package name is required")
)

// Options describe one run.
type Options struct {
	// RName is the R package to load.
	RName string
	// PackageName prefixes tool ids. Defaults to RName.
	PackageName string
	// PackageVersion defaults to the introspected version.
	PackageVersion    string
	GalaxyToolVersion string
	OutputDir         string
	CreateLoadMatrix  bool
	Help              helpdoc.Options
	// MaxConcurrency bounds the parallel file writes. Zero picks a default.
	MaxConcurrency int64
}

// Report summarizes a run.
type Report struct {
	// Created counts tool descriptors, including the load matrix tool.
	Created int
	Skipped int
	// Files lists every written path in emission order.
	Files []string
}

// Generator turns an introspection source into tool descriptors.
type Generator struct {
	source introspect.Source
	logger logrus.FieldLogger
	out    io.Writer
}

// New returns a Generator. A nil logger discards diagnostics and a nil out
// discards user facing messages.
func New(source introspect.Source, logger logrus.FieldLogger, out io.Writer) *Generator {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	if out == nil {
		out = io.Discard
	}

	return &Generator{source: source, logger: logger, out: out}
}

type file struct {
	path    string
	content string
}

type packageRender struct {
	name   string
	render func(descriptor.Package) (string, error)
}

// Run builds every exported function and writes the results.
func (g *Generator) Run(ctx context.Context, options Options) (Report, error) {
	options, err := g.resolve(ctx, options)
	if err != nil {
		return Report{}, err
	}

	functions, err := g.source.ListExports(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list exports of %s: %w", options.RName, err)
	}

	var (
		report Report
		files  []file
		seen   = make(map[string]string, len(functions))
	)

	for index, function := range functions {
		err := ctx.Err()
		if err != nil {
			return Report{}, fmt.Errorf("generation interrupted: %w", err)
		}

		id := naming.Sanitize(options.PackageName + "_" + function)
		if previous, ok := seen[id]; ok {
			return Report{}, fmt.Errorf(
				"%w: %s is produced by both %q and %q",
				ErrDuplicateTool, id, previous, function,
			)
		}

		seen[id] = function

		entry := g.logger.WithFields(logrus.Fields{"function": function, "index": index})
		entry.Debug("starting")

		tool, err := g.build(ctx, options, id, function, entry)
		if err != nil {
			entry.WithError(err).Warn("skipping function")

			report.Skipped++

			continue
		}

		content, err := descriptor.RenderTool(tool)
		if err != nil {
			entry.WithError(err).Warn("skipping function")

			report.Skipped++

			continue
		}

		path, err := fsutil.JoinInBase(options.OutputDir, tool.FileName())
		if err != nil {
			return Report{}, fmt.Errorf("resolve output for %s: %w", function, err)
		}

		files = append(files, file{path: path, content: content})
		report.Created++

		entry.Debug("finished")
	}

	shared, err := g.packageFiles(options)
	if err != nil {
		return Report{}, err
	}

	if options.CreateLoadMatrix {
		report.Created++
	}

	files = append(files, shared...)

	err = g.write(ctx, options, files)
	if err != nil {
		return Report{}, err
	}

	for _, f := range files {
		report.Files = append(report.Files, f.path)
		notify.Generatef(g.out, "created %s", f.path)
	}

	return report, nil
}

func (g *Generator) resolve(ctx context.Context, options Options) (Options, error) {
	if options.RName == "" {
		return options, ErrRNameRequired
	}

	if options.PackageName == "" {
		options.PackageName = options.RName
	}

	if options.OutputDir == "" {
		options.OutputDir = "out"
	}

	if options.PackageVersion == "" {
		version, err := g.source.PackageVersion(ctx)
		if err != nil {
			return options, fmt.Errorf("read version of %s: %w", options.RName, err)
		}

		options.PackageVersion = version
	}

	return options, nil
}

// build runs classification, synthesis and help extraction for one function.
// Panics are converted to ErrBuildPanic so a single bad function cannot end
// the run.
func (g *Generator) build(
	ctx context.Context,
	options Options,
	id, function string,
	entry logrus.FieldLogger,
) (tool descriptor.Tool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBuildPanic, r)
		}
	}()

	formals, err := g.source.Formals(ctx, function)
	if err != nil {
		return descriptor.Tool{}, fmt.Errorf("read formals: %w", err)
	}

	for _, formal := range formals {
		if !formal.Introspectable() && formal.Error != "" {
			entry.WithFields(logrus.Fields{
				"parameter": formal.Name,
				"error":     formal.Error,
			}).Warn("default value not inspectable, using text input")
		}
	}

	params := classify.ClassifyAll(formals)
	for _, collision := range nameCollisions(params) {
		entry.WithField("parameter", collision).Warn("parameter name collides with another input")
	}

	inputs, err := widget.SynthesizeAll(params)
	if err != nil {
		return descriptor.Tool{}, err
	}

	help := helpdoc.Extract(ctx, g.source, function, options.Help)
	if help.Fallback != nil {
		entry.WithField("error", help.Fallback).Warn("help pages unavailable, using doc string")
	}

	return descriptor.Tool{
		ID:                id,
		Name:              function,
		Description:       help.Description,
		Help:              help.Help,
		RName:             options.RName,
		GalaxyToolVersion: options.GalaxyToolVersion,
		Inputs:            inputs,
		Script:            script.Synthesize(options.RName, function, params),
	}, nil
}

func (g *Generator) packageFiles(options Options) ([]file, error) {
	pkg := descriptor.Package{
		RName:             options.RName,
		PackageName:       options.PackageName,
		PackageVersion:    options.PackageVersion,
		GalaxyToolVersion: options.GalaxyToolVersion,
	}

	renders := []packageRender{
		{name: descriptor.MacrosFile(options.RName), render: descriptor.RenderMacros},
	}

	if options.CreateLoadMatrix {
		renders = append(renders, packageRender{
			name:   descriptor.LoadMatrixFile,
			render: descriptor.RenderLoadMatrix,
		})
	}

	files := make([]file, 0, len(renders))

	for _, r := range renders {
		content, err := r.render(pkg)
		if err != nil {
			return nil, err
		}

		path, err := fsutil.JoinInBase(options.OutputDir, r.name)
		if err != nil {
			return nil, fmt.Errorf("resolve output for %s: %w", r.name, err)
		}

		files = append(files, file{path: path, content: content})
	}

	return files, nil
}

// write stores every file concurrently. Paths are distinct because tool ids
// were checked for uniqueness during the build loop.
func (g *Generator) write(ctx context.Context, options Options, files []file) error {
	limit := options.MaxConcurrency
	if limit <= 0 {
		limit = parallel.DefaultMaxConcurrency()
	}

	tasks := make([]parallel.Task, 0, len(files))

	for _, f := range files {
		tasks = append(tasks, func(context.Context) error {
			_, err := fsutil.TryWriteFile(f.content, f.path, true)
			if err != nil {
				return fmt.Errorf("write %s: %w", f.path, err)
			}

			return nil
		})
	}

	err := parallel.NewExecutor(limit).Execute(ctx, tasks...)
	if err != nil {
		return fmt.Errorf("write descriptors: %w", err)
	}

	return nil
}

package generator_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/r2g2/pkg/generator"
	"github.com/devantler-tech/r2g2/pkg/introspect"
	"github.com/devantler-tech/r2g2/pkg/introspect/manifest"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func intDefault(value string) *introspect.DefaultValue {
	return &introspect.DefaultValue{Kind: introspect.KindInteger, Values: []string{value}, Repr: value + "L"}
}

func newSource(t *testing.T, functions ...manifest.Function) *manifest.Source {
	t.Helper()

	source, err := manifest.New(manifest.Package{Name: "demo", Version: "1.2.3", Functions: functions})
	require.NoError(t, err)

	return source
}

func fFunction() manifest.Function {
	return manifest.Function{
		Name: "f",
		Doc:  "f(x, y = 3L, ...)",
		Formals: []introspect.Formal{
			{Name: "x"},
			{Name: "y", Default: intDefault("3")},
			{Name: introspect.EllipsisName},
		},
	}
}

func readDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names
}

func TestRun_SingleFunction(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out")

	var messages bytes.Buffer

	gen := generator.New(newSource(t, fFunction()), nil, &messages)

	report, err := gen.Run(context.Background(), generator.Options{
		RName:             "demo",
		GalaxyToolVersion: "0.0.1",
		OutputDir:         out,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 0, report.Skipped)
	assert.ElementsMatch(t, []string{"demo_f.xml", "demo_macros.xml"}, readDir(t, out))
	assert.Equal(t, []string{
		filepath.Join(out, "demo_f.xml"),
		filepath.Join(out, "demo_macros.xml"),
	}, report.Files)

	tool, err := os.ReadFile(filepath.Join(out, "demo_f.xml"))
	require.NoError(t, err)

	content := string(tool)
	assert.Contains(t, content, `<conditional name="x_type">`)
	assert.Contains(t, content, `<conditional name="y_type">`)
	assert.Contains(t, content, `<option value="integer" selected="true">`)
	assert.Contains(t, content, `<repeat name="___ellipsis___"`)
	assert.Contains(t, content, `version="@VERSION@-0.0.1"`)
	assert.Contains(t, content, "<import>demo_macros.xml</import>")
	assert.Contains(t, content, "f(x, y = 3L, ...)")

	macros, err := os.ReadFile(filepath.Join(out, "demo_macros.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(macros), `version="1.2.3"`)

	assert.Contains(t, messages.String(), "✚ created "+filepath.Join(out, "demo_f.xml"))
}

func TestRun_SkipsBrokenFunctions(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	logger, hook := logtest.NewNullLogger()

	source := newSource(t,
		manifest.Function{Name: "iris_data", Error: "not a function"},
		fFunction(),
	)

	report, err := generator.New(source, logger, nil).Run(context.Background(), generator.Options{
		RName:     "demo",
		OutputDir: out,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.ElementsMatch(t, []string{"demo_f.xml", "demo_macros.xml"}, readDir(t, out))

	var skipped []string

	for _, entry := range hook.AllEntries() {
		if entry.Message == "skipping function" {
			skipped = append(skipped, entry.Data["function"].(string))
			assert.Equal(t, 0, entry.Data["index"])
			assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), manifest.ErrNotAFunction)
		}
	}

	assert.Equal(t, []string{"iris_data"}, skipped)
}

func TestRun_DuplicateToolAborts(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out")

	source := newSource(t,
		manifest.Function{Name: "a.b"},
		manifest.Function{Name: "a_b"},
	)

	_, err := generator.New(source, nil, nil).Run(context.Background(), generator.Options{
		RName:     "demo",
		OutputDir: out,
	})
	require.ErrorIs(t, err, generator.ErrDuplicateTool)
	assert.Contains(t, err.Error(), "demo_a_b")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "nothing may be written when the run aborts")
}

func TestRun_WriteFailureKeepsCause(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	blocked := filepath.Join(out, "demo_a.xml")
	require.NoError(t, os.Mkdir(blocked, 0o750))

	source := newSource(t,
		manifest.Function{Name: "a"},
		manifest.Function{Name: "b"},
		fFunction(),
	)

	_, err := generator.New(source, nil, nil).Run(context.Background(), generator.Options{
		RName:          "demo",
		OutputDir:      out,
		MaxConcurrency: 1,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.Canceled)

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, blocked, pathErr.Path)
}

func TestRun_LoadMatrixCountsAsCreated(t *testing.T) {
	t.Parallel()

	out := t.TempDir()

	report, err := generator.New(newSource(t, fFunction()), nil, nil).Run(
		context.Background(),
		generator.Options{RName: "demo", OutputDir: out, CreateLoadMatrix: true},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Created)
	assert.ElementsMatch(t,
		[]string{"demo_f.xml", "demo_macros.xml", "r_load_matrix.xml"},
		readDir(t, out),
	)
}

func TestRun_PackageNamePrefixesIDs(t *testing.T) {
	t.Parallel()

	out := t.TempDir()

	_, err := generator.New(newSource(t, fFunction()), nil, nil).Run(
		context.Background(),
		generator.Options{
			RName:          "demo",
			PackageName:    "r-demo",
			PackageVersion: "9.9.9",
			OutputDir:      out,
		},
	)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"r_demo_f.xml", "demo_macros.xml"}, readDir(t, out))

	macros, err := os.ReadFile(filepath.Join(out, "demo_macros.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(macros), `version="9.9.9">r-demo</requirement>`)
}

type panickingSource struct {
	*manifest.Source
}

func (panickingSource) Formals(context.Context, string) ([]introspect.Formal, error) {
	panic("unexpected shape")
}

func TestRun_RecoversPanics(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()

	report, err := generator.New(panickingSource{newSource(t, fFunction())}, logger, nil).Run(
		context.Background(),
		generator.Options{RName: "demo", OutputDir: t.TempDir()},
	)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Created)
	assert.Equal(t, 1, report.Skipped)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.ErrorIs(t, last.Data[logrus.ErrorKey].(error), generator.ErrBuildPanic)
}

func TestRun_WarnsOnFallbacksAndCollisions(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()

	source := newSource(t, manifest.Function{
		Name:      "g",
		HelpError: "no documentation for g",
		Formals: []introspect.Formal{
			{Name: "a.b"},
			{Name: "a_b"},
			{Name: "include_outputs"},
			{Name: "z", Error: "object 'q' not found"},
		},
	})

	report, err := generator.New(source, logger, nil).Run(
		context.Background(),
		generator.Options{RName: "demo", OutputDir: t.TempDir()},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	var collisions, uninspectable []any

	helpFallback := false

	for _, entry := range hook.AllEntries() {
		switch entry.Message {
		case "parameter name collides with another input":
			collisions = append(collisions, entry.Data["parameter"])
		case "default value not inspectable, using text input":
			uninspectable = append(uninspectable, entry.Data["parameter"])
		case "help pages unavailable, using doc string":
			helpFallback = true
		}
	}

	assert.Equal(t, []any{"a_b", "include_outputs"}, collisions)
	assert.Equal(t, []any{"z"}, uninspectable)
	assert.True(t, helpFallback)
}

type failingSource struct {
	*manifest.Source
}

func (failingSource) ListExports(context.Context) ([]string, error) {
	return nil, errBoom
}

func (failingSource) PackageVersion(context.Context) (string, error) {
	return "", errBoom
}

func TestRun_FatalErrors(t *testing.T) {
	t.Parallel()

	source := failingSource{newSource(t)}

	tests := []struct {
		name    string
		options generator.Options
		wantErr error
	}{
		{name: "missing r name", options: generator.Options{}, wantErr: generator.ErrRNameRequired},
		{name: "version lookup", options: generator.Options{RName: "demo"}, wantErr: errBoom},
		{
			name:    "export listing",
			options: generator.Options{RName: "demo", PackageVersion: "1.0.0"},
			wantErr: errBoom,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.options.OutputDir = t.TempDir()

			_, err := generator.New(source, nil, nil).Run(context.Background(), tc.options)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.New(newSource(t, fFunction()), nil, nil).Run(
		ctx,
		generator.Options{RName: "demo", PackageVersion: "1.0.0", OutputDir: t.TempDir()},
	)
	require.ErrorIs(t, err, context.Canceled)
}

package config_test

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"
	"time"

	"github.com/devantler-tech/r2g2/pkg/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (config.Options, error) {
	t.Helper()

	flags := pflag.NewFlagSet("r2g2", pflag.ContinueOnError)
	config.BindFlags(flags)
	require.NoError(t, flags.Parse(args))

	return config.Load(flags)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	options, err := load(t, "--name", "stats")
	require.NoError(t, err)

	assert.Equal(t, "stats", options.Name)
	assert.Equal(t, "stats", options.PackageName)
	assert.Empty(t, options.PackageVersion)
	assert.Equal(t, config.DefaultOutputDir, options.Out)
	assert.Equal(t, config.DefaultGalaxyToolVersion, options.GalaxyToolVersion)
	assert.Equal(t, "Rscript", options.Rscript)
	assert.Equal(t, config.DefaultTimeout, options.Timeout)
	assert.Empty(t, options.HelpSections)
	assert.False(t, options.CreateLoadMatrixTool)
	assert.False(t, options.Verbose)
}

func TestLoad_Flags(t *testing.T) {
	t.Parallel()

	options, err := load(t,
		"--name", "stats",
		"--package_name", "r-stats",
		"--package_version", "4.3.0",
		"--out", "tools",
		"--create_load_matrix_tool",
		"--galaxy_tool_version", "1.2.0",
		"--manifest", "stats.yaml",
		"--timeout", "30s",
		"--help_wrap", "72",
		"--help_sections", "title,usage",
		"-v",
	)
	require.NoError(t, err)

	assert.Equal(t, "r-stats", options.PackageName)
	assert.Equal(t, "4.3.0", options.PackageVersion)
	assert.Equal(t, "tools", options.Out)
	assert.True(t, options.CreateLoadMatrixTool)
	assert.Equal(t, "1.2.0", options.GalaxyToolVersion)
	assert.Equal(t, 30*time.Second, options.Timeout)
	assert.Equal(t, uint(72), options.HelpWrap)
	assert.Equal(t, []string{"title", "usage"}, options.HelpSections)
	assert.True(t, options.Verbose)

	gen := options.Generator()
	assert.Equal(t, "stats", gen.RName)
	assert.Equal(t, "tools", gen.OutputDir)
	assert.True(t, gen.CreateLoadMatrix)
	assert.Equal(t, uint(72), gen.Help.Wrap)

	source := options.Source()
	assert.Equal(t, "stats", source.Package)
	assert.Equal(t, "stats.yaml", source.ManifestPath)
	assert.Equal(t, 30*time.Second, source.Timeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: stats
out: from-file
galaxy_tool_version: 2.0.0
help_sections: [title, description]
`), 0o600))

	options, err := load(t, "--config", path, "--out", "from-flag")
	require.NoError(t, err)

	assert.Equal(t, "stats", options.Name)
	assert.Equal(t, "from-flag", options.Out, "flags win over the config file")
	assert.Equal(t, "2.0.0", options.GalaxyToolVersion)
	assert.Equal(t, []string{"title", "description"}, options.HelpSections)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	t.Parallel()

	_, err := load(t, "--name", "stats", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")
}

//nolint:paralleltest // t.Setenv
func TestLoad_Environment(t *testing.T) {
	t.Setenv("R2G2_NAME", "utils")
	t.Setenv("R2G2_PACKAGE_VERSION", "4.4.1")
	t.Setenv("R2G2_CREATE_LOAD_MATRIX_TOOL", "true")
	t.Setenv("R2G2_HELP_SECTIONS", "title,value")

	options, err := load(t, "--out", "x")
	require.NoError(t, err)

	assert.Equal(t, "utils", options.Name)
	assert.Equal(t, "utils", options.PackageName)
	assert.Equal(t, "4.4.1", options.PackageVersion)
	assert.True(t, options.CreateLoadMatrixTool)
	assert.Equal(t, []string{"title", "value"}, options.HelpSections)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := config.Options{Name: "stats", GalaxyToolVersion: "0.0.1"}

	tests := []struct {
		name    string
		mutate  func(*config.Options)
		wantErr error
	}{
		{name: "valid", mutate: func(*config.Options) {}},
		{name: "free-form version", mutate: func(o *config.Options) { o.GalaxyToolVersion = "galaxy1" }},
		{name: "missing name", mutate: func(o *config.Options) { o.Name = " " }, wantErr: config.ErrNameRequired},
		{
			name:    "blank version",
			mutate:  func(o *config.Options) { o.GalaxyToolVersion = "  " },
			wantErr: config.ErrInvalidToolVersion,
		},
		{
			name:    "negative timeout",
			mutate:  func(o *config.Options) { o.Timeout = -time.Second },
			wantErr: config.ErrInvalidTimeout,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			options := valid
			tc.mutate(&options)

			err := options.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	t.Parallel()

	usr, err := user.Current()
	require.NoError(t, err)

	home := usr.HomeDir

	options, err := load(t, "--name", "stats", "--out", "~/galaxy/tools", "--manifest", "~/stats.yaml")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "galaxy", "tools"), options.Out)
	assert.Equal(t, filepath.Join(home, "stats.yaml"), options.Manifest)
}

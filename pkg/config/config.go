package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devantler-tech/r2g2/pkg/fsutil"
	"github.com/devantler-tech/r2g2/pkg/generator"
	"github.com/devantler-tech/r2g2/pkg/helpdoc"
	"github.com/devantler-tech/r2g2/pkg/introspect/factory"
	"github.com/devantler-tech/r2g2/pkg/introspect/rscript"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. R2G2_PACKAGE_NAME.
const EnvPrefix = "R2G2"

// Defaults.
const (
	DefaultConfigName        = "r2g2"
	DefaultOutputDir         = "out"
	DefaultGalaxyToolVersion = "0.0.1"
	DefaultTimeout           = 5 * time.Minute
)

// Keys, shared by flags, environment variables and the config file.
const (
	KeyConfig               = "config"
	KeyName                 = "name"
	KeyPackageName          = "package_name"
	KeyPackageVersion       = "package_version"
	KeyOut                  = "out"
	KeyCreateLoadMatrixTool = "create_load_matrix_tool"
	KeyGalaxyToolVersion    = "galaxy_tool_version"
	KeyManifest             = "manifest"
	KeyRscript              = "rscript"
	KeyTimeout              = "timeout"
	KeyHelpWrap             = "help_wrap"
	KeyHelpSections         = "help_sections"
	KeyVerbose              = "verbose"
)

var (
	// ErrNameRequired is returned when no R package name was given.
	ErrNameRequired = errors.New("--name is required")
	// ErrInvalidToolVersion is returned when the galaxy tool version is blank.
	ErrInvalidToolVersion = errors.New("invalid galaxy tool version")
	// ErrInvalidTimeout is returned for a negative introspection timeout.
	ErrInvalidTimeout = errors.New("timeout must not be negative")
)

// Options is the resolved configuration of a run.
type Options struct {
	Name                 string        `mapstructure:"name"`
	PackageName          string        `mapstructure:"package_name"`
	PackageVersion       string        `mapstructure:"package_version"`
	Out                  string        `mapstructure:"out"`
	CreateLoadMatrixTool bool          `mapstructure:"create_load_matrix_tool"`
	GalaxyToolVersion    string        `mapstructure:"galaxy_tool_version"`
	Manifest             string        `mapstructure:"manifest"`
	Rscript              string        `mapstructure:"rscript"`
	Timeout              time.Duration `mapstructure:"timeout"`
	HelpWrap             uint          `mapstructure:"help_wrap"`
	HelpSections         []string      `mapstructure:"help_sections"`
	Verbose              bool          `mapstructure:"verbose"`
}

// BindFlags registers every option on flags with its default.
func BindFlags(flags *pflag.FlagSet) {
	flags.String(KeyConfig, "", "config file (default ./"+DefaultConfigName+".yaml when present)")
	flags.String(KeyName, "", "R package to generate tools for (required)")
	flags.String(KeyPackageName, "", "package name used in tool ids and requirements (default --name)")
	flags.String(KeyPackageVersion, "", "package version (default the installed version)")
	flags.String(KeyOut, DefaultOutputDir, "output directory")
	flags.Bool(KeyCreateLoadMatrixTool, false, "also create the tabular file loader tool")
	flags.String(KeyGalaxyToolVersion, DefaultGalaxyToolVersion, "suffix appended to every tool version")
	flags.String(KeyManifest, "", "read the package description from a YAML/JSON manifest instead of R")
	flags.String(KeyRscript, rscript.DefaultRscript, "Rscript binary")
	flags.Duration(KeyTimeout, DefaultTimeout, "introspection timeout (0 disables)")
	flags.Uint(KeyHelpWrap, 0, "wrap help text at this many columns (0 disables)")
	flags.StringSlice(KeyHelpSections, nil, "only include these help sections")
	flags.BoolP(KeyVerbose, "v", false, "log every function")
}

// Load resolves Options from flags, the environment and the config file.
// A missing default config file is not an error; a missing --config file is.
func Load(flags *pflag.FlagSet) (Options, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	err := v.BindPFlags(flags)
	if err != nil {
		return Options{}, fmt.Errorf("bind flags: %w", err)
	}

	err = readConfig(v)
	if err != nil {
		return Options{}, err
	}

	var options Options

	err = v.Unmarshal(&options, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return Options{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if options.PackageName == "" {
		options.PackageName = options.Name
	}

	for _, path := range []*string{&options.Out, &options.Manifest} {
		*path, err = expandHome(*path)
		if err != nil {
			return Options{}, err
		}
	}

	return options, options.Validate()
}

// expandHome resolves a leading ~/ and leaves every other path untouched.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	expanded, err := fsutil.ExpandHomePath(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}

	return expanded, nil
}

func readConfig(v *viper.Viper) error {
	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// Validate checks the options a run cannot start without.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrNameRequired
	}

	if strings.TrimSpace(o.GalaxyToolVersion) == "" {
		return fmt.Errorf("%w %q", ErrInvalidToolVersion, o.GalaxyToolVersion)
	}

	if o.Timeout < 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// Generator returns the options of the generation run.
func (o Options) Generator() generator.Options {
	return generator.Options{
		RName:             o.Name,
		PackageName:       o.PackageName,
		PackageVersion:    o.PackageVersion,
		GalaxyToolVersion: o.GalaxyToolVersion,
		OutputDir:         o.Out,
		CreateLoadMatrix:  o.CreateLoadMatrixTool,
		Help: helpdoc.Options{
			Wrap:     o.HelpWrap,
			Sections: o.HelpSections,
		},
	}
}

// Source returns the options of the introspection source.
func (o Options) Source() factory.SourceOptions {
	return factory.SourceOptions{
		Package:      o.Name,
		ManifestPath: o.Manifest,
		Rscript:      o.Rscript,
		Timeout:      o.Timeout,
	}
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/devantler-tech/r2g2/pkg/config"
	"github.com/devantler-tech/r2g2/pkg/di"
	"github.com/devantler-tech/r2g2/pkg/fsutil"
	"github.com/devantler-tech/r2g2/pkg/introspect/factory"
	"github.com/devantler-tech/r2g2/pkg/introspect/manifest"
	"github.com/devantler-tech/r2g2/pkg/introspect/rscript"
	"github.com/devantler-tech/r2g2/pkg/utils/notify"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// ErrManifestUnsupported is returned when a source cannot describe a whole package.
var ErrManifestUnsupported = errors.New("source cannot produce a manifest")

const outputFlag = "output"

// NewDumpCmd returns the command writing a package manifest as YAML. The
// manifest can then be edited and fed back through --manifest.
func NewDumpCmd(runtime *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Introspect an R package and write its manifest as YAML",
		Args:  cobra.NoArgs,
		RunE:  di.RunEWithRuntime(runtime, di.WithSourceFactory(handleDump)),
	}

	flags := cmd.Flags()
	flags.String(config.KeyName, "", "R package to introspect (required)")
	flags.String(config.KeyManifest, "", "re-encode an existing YAML/JSON manifest instead of running R")
	flags.String(config.KeyRscript, rscript.DefaultRscript, "Rscript binary")
	flags.Duration(config.KeyTimeout, config.DefaultTimeout, "introspection timeout (0 disables)")
	flags.StringP(outputFlag, "o", "", "write to this file instead of stdout")
	flags.Bool("force", false, "overwrite an existing output file")

	_ = cmd.MarkFlagRequired(config.KeyName)

	return cmd
}

func handleDump(cmd *cobra.Command, _ di.Injector, sourceFactory factory.Factory) error {
	flags := cmd.Flags()

	name, _ := flags.GetString(config.KeyName)
	manifestPath, _ := flags.GetString(config.KeyManifest)
	rscriptPath, _ := flags.GetString(config.KeyRscript)
	timeout, _ := flags.GetDuration(config.KeyTimeout)
	output, _ := flags.GetString(outputFlag)
	force, _ := flags.GetBool("force")

	source, err := sourceFactory.Create(cmd.Context(), factory.SourceOptions{
		Package:      name,
		ManifestPath: manifestPath,
		Rscript:      rscriptPath,
		Timeout:      timeout,
		Stderr:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("create introspection source: %w", err)
	}

	provider, ok := source.(manifest.Provider)
	if !ok {
		return fmt.Errorf("%w: %T", ErrManifestUnsupported, source)
	}

	pkg, err := provider.Manifest(cmd.Context())
	if err != nil {
		return fmt.Errorf("introspect %s: %w", name, err)
	}

	data, err := yaml.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		if err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}

		return nil
	}

	written, err := fsutil.TryWriteFile(string(data), output, force)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if !written {
		notify.Warningf(cmd.OutOrStdout(), "%s exists, use --force to overwrite", output)

		return nil
	}

	notify.Generatef(cmd.OutOrStdout(), "created %s", output)

	return nil
}

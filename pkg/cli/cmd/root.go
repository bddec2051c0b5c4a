package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/devantler-tech/r2g2/internal/buildmeta"
	"github.com/devantler-tech/r2g2/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/r2g2/pkg/config"
	"github.com/devantler-tech/r2g2/pkg/di"
	"github.com/devantler-tech/r2g2/pkg/generator"
	"github.com/devantler-tech/r2g2/pkg/introspect/factory"
	"github.com/devantler-tech/r2g2/pkg/utils/notify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the root command wired with the default runtime.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(di.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime returns the root command resolving its collaborators
// from runtime.
func NewRootCmdWithRuntime(runtime *di.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "r2g2",
		Short: "Generate Galaxy tool XMLs for the functions of an R package",
		Long: "r2g2 inspects every exported function of an R package and writes one Galaxy tool " +
			"descriptor per function, plus a shared macros file.",
		Example: "  r2g2 --name stats --out tools\n" +
			"  r2g2 --name demo --manifest demo.yaml --create_load_matrix_tool",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         di.RunEWithRuntime(runtime, di.WithSourceFactory(handleGenerate)),
	}

	cmd.Version = buildmeta.Format(version, commit, date)

	config.BindFlags(cmd.Flags())

	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewDumpCmd(runtime))

	return cmd
}

// Execute runs the root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	err := errorhandler.NewExecutor().Execute(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleGenerate(cmd *cobra.Command, injector di.Injector, sourceFactory factory.Factory) error {
	options, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sourceOptions := options.Source()

	if options.Verbose {
		logger.SetLevel(logrus.DebugLevel)
		sourceOptions.Stderr = logger.Out
	}

	source, err := sourceFactory.Create(cmd.Context(), sourceOptions)
	if err != nil {
		return fmt.Errorf("create introspection source: %w", err)
	}

	notify.Titlef(out, "🧬", "Generating Galaxy tools for %s", options.Name)

	report, err := generator.New(source, logger, out).Run(cmd.Context(), options.Generator())
	if err != nil {
		return err
	}

	printReport(out, report)

	return nil
}

func printReport(out io.Writer, report generator.Report) {
	notify.Successf(out, "created %d tool XMLs", report.Created)

	if report.Skipped > 0 {
		notify.Warningf(out, "skipped %d functions", report.Skipped)

		return
	}

	notify.Infof(out, "skipped %d functions", report.Skipped)
}

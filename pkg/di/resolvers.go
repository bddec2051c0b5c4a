package di

import (
	"fmt"

	"github.com/devantler-tech/r2g2/pkg/introspect/factory"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// ResolveSourceFactory retrieves the introspection source factory.
func ResolveSourceFactory(injector Injector) (factory.Factory, error) {
	f, err := do.Invoke[factory.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve source factory dependency: %w", err)
	}

	return f, nil
}

// ResolveLogger retrieves the diagnostics logger.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// WithSourceFactory decorates a handler so it receives the resolved factory.
func WithSourceFactory(
	handler func(cmd *cobra.Command, injector Injector, f factory.Factory) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		f, err := ResolveSourceFactory(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, f)
	}
}

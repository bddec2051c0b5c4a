package di

import (
	"os"

	"github.com/devantler-tech/r2g2/pkg/introspect/factory"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// NewRuntime returns the runtime used by the root command: it provides the
// default introspection source factory and a warn-level logger on stderr.
func NewRuntime() *Runtime {
	return New(provideSourceFactory, provideLogger)
}

// ProvideSourceFactory returns a module registering f as the source factory.
// Tests use it to replace R with an in-memory manifest.
func ProvideSourceFactory(f factory.Factory) Module {
	return func(i Injector) error {
		do.OverrideValue(i, f)

		return nil
	}
}

// ProvideLogger returns a module registering logger for diagnostics.
func ProvideLogger(logger *logrus.Logger) Module {
	return func(i Injector) error {
		do.OverrideValue(i, logger)

		return nil
	}
}

func provideSourceFactory(i Injector) error {
	do.Provide(i, func(Injector) (factory.Factory, error) {
		return factory.DefaultFactory{}, nil
	})

	return nil
}

func provideLogger(i Injector) error {
	do.Provide(i, func(Injector) (*logrus.Logger, error) {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		logger.SetLevel(logrus.WarnLevel)

		return logger, nil
	})

	return nil
}

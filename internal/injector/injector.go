//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/ylikuutio/ylikuutio/internal/config"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
)

func InitializeLogger(cfg *config.Config) (*log.Logger, error) {
	wire.Build(ProvideLogger)
	return nil, nil
}

func InitializeRuntime(cfg *config.Config, logger *log.Logger) *Runtime {
	wire.Build(RuntimeSet)
	return nil
}

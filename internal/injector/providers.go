package injector

import (
	"github.com/google/wire"

	"github.com/ylikuutio/ylikuutio/internal/config"
	"github.com/ylikuutio/ylikuutio/internal/core/events/bus"
	"github.com/ylikuutio/ylikuutio/internal/core/factory"
	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
	"github.com/ylikuutio/ylikuutio/internal/core/world"
)

// Runtime is one universe with the collaborators that drive it.
type Runtime struct {
	Universe *world.Universe
	Bus      bus.EventBus
	Factory  *factory.Factory
}

// RuntimeSet builds a Runtime from a config and a logger.
var RuntimeSet = wire.NewSet(
	ProvideUniverse,
	ProvideBus,
	ProvideFactory,
	wire.Struct(new(Runtime), "*"),
)

func ProvideLogger(cfg *config.Config) (*log.Logger, error) {
	return log.NewWithOptions(cfg.LoggerOptions())
}

func ProvideUniverse(cfg *config.Config, logger *log.Logger) *world.Universe {
	return world.NewUniverse(
		world.WithLogger(logger),
		world.WithSlabSize(cfg.Memory.SlabSize),
	)
}

// ProvideBus returns a bus whose deliveries are logged and counted.
func ProvideBus(logger *log.Logger) bus.EventBus {
	b := bus.New()
	b.AddObserver(bus.NewLogObserver(logger.Named("bus")))
	return b
}

func ProvideFactory(u *world.Universe, b bus.EventBus, logger *log.Logger) *factory.Factory {
	return factory.New(u, b, logger)
}

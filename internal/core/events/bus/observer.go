package bus

import (
	"time"

	"github.com/ylikuutio/ylikuutio/internal/core/observability/log"
)

// LogObserver logs every delivery at debug level and failed ones at warn.
type LogObserver struct {
	log log.Log
}

func NewLogObserver(logger log.Log) *LogObserver {
	if logger == nil {
		logger = log.NewNop()
	}
	return &LogObserver{log: logger}
}

func (o *LogObserver) OnPublish(string, Event) {}

func (o *LogObserver) OnDelivered(eventType string, handlers int, err error, duration time.Duration) {
	if err != nil {
		o.log.Warn("event handlers failed",
			log.String("type", eventType),
			log.Int("handlers", handlers),
			log.Error(err),
		)
		return
	}
	o.log.Debug("event delivered",
		log.String("type", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", duration),
	)
}

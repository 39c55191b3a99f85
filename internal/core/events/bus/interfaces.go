package bus

import "time"

// Lifecycle event types published by the entity factory.
const (
	EntityCreated = "entity.created"
	EntityDeleted = "entity.deleted"
	EntityMoved   = "entity.moved"
)

// EventBus is a synchronous in-process pub/sub bus.
//
// Handlers subscribe by Event.Type() and run on the publisher's goroutine,
// in subscription order. Publish returns the joined errors of all handlers.
// Metrics are only collected while at least one observer is registered.
type EventBus interface {
	Publish(event Event) error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels sub. It is safe to call with nil.
	Unsubscribe(sub Subscription) error

	AddObserver(obs Observer)
	GetMetrics() Metrics
}

// Event is an immutable message. Implementations should treat the value as read-only.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	EventHandler func(event Event) error
)

// Subscription is a registered handler. Cancel is idempotent.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}

// Observer is told about every publish and its outcome.
type Observer interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, duration time.Duration)
}

type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}

// EntityChange is the payload of lifecycle events.
type EntityChange struct {
	Kind       string
	GlobalName string
	ChildID    int
	Parent     string
}

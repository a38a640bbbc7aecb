package services

// EventPublisher publishes domain events to a message broker. The
// rabbitmq client satisfies it; tests substitute a mock. A nil
// publisher disables publication.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Routing keys for order and return lifecycle events.
const (
	eventExchange        = "pasar.events"
	eventOrderCreated    = "order.created"
	eventOrderStatus     = "order.status_changed"
	eventReturnRequested = "return.requested"
)

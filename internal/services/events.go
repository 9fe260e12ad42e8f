package services

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Routing keys of the events published by the services.
const (
	EventCartUpdated    = "cart.updated"
	EventCartCleared    = "cart.cleared"
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent sends payload as JSON. Events are best effort: failures are
// logged and never fail the calling operation.
func publishEvent(pub EventPublisher, log *zap.Logger, routingKey string, payload interface{}) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Warn("failed to marshal event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	if err := pub.Publish(routingKey, body); err != nil {
		log.Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
		return
	}
	log.Debug("published event", zap.String("routing_key", routingKey))
}

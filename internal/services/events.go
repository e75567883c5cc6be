package services

import (
	"time"

	"katalog/internal/models"

	"github.com/google/uuid"
)

// Product change event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent describes a committed change to a product.
type ProductEvent struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Product    models.ProductJSON `json:"product"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewProductEvent stamps a new event of the given type for p.
func NewProductEvent(eventType string, p models.Product) ProductEvent {
	return ProductEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Product:    models.EncodeProduct(p),
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher delivers events to interested consumers.
// *rabbitmq.Client satisfies it.
type EventPublisher interface {
	PublishJSON(v interface{}) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// PublishJSON implements EventPublisher.
func (NopPublisher) PublishJSON(interface{}) error { return nil }

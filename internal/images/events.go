package images

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
)

// Catalog image event types published to the catalog events topic.
const (
	EventImageCreated = "catalog.image.created"
	EventImageDeleted = "catalog.image.deleted"
)

// AttrEventType is the Pub/Sub attribute carrying the event type.
const AttrEventType = "event_type"

// Event is the payload published for image create/delete.
type Event struct {
	Type       string    `json:"type"`
	ProductID  uuid.UUID `json:"product_id"`
	ImageID    uuid.UUID `json:"image_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is the event sink used by the image service.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// PubSubPublisher publishes image events to a Pub/Sub topic.
type PubSubPublisher struct {
	publisher *pubsub.Publisher
}

// NewPubSubPublisher wraps the provided topic publisher.
func NewPubSubPublisher(publisher *pubsub.Publisher) (*PubSubPublisher, error) {
	if publisher == nil {
		return nil, fmt.Errorf("pubsub publisher required")
	}
	return &PubSubPublisher{publisher: publisher}, nil
}

// Publish sends the event and waits for the server acknowledgement.
func (p *PubSubPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal image event: %w", err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{AttrEventType: event.Type},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publish image event: %w", err)
	}
	return nil
}

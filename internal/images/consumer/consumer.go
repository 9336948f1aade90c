package consumer

import (
	"context"
	"encoding/json"
	"errors"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/angelmondragon/threadz-backend/internal/images"
	"github.com/angelmondragon/threadz-backend/pkg/logger"
	"github.com/angelmondragon/threadz-backend/pkg/metrics"
)

type mainImageRule interface {
	EnsureMainImage(ctx context.Context, productID uuid.UUID) (bool, error)
	ReassignAfterDelete(ctx context.Context, productID, deletedImageID uuid.UUID) (bool, error)
}

// Consumer applies the main-image rule for image events written by other
// producers (bulk importers, admin tools) that bypass the API service.
type Consumer struct {
	rule         mainImageRule
	subscription *pubsub.Subscriber
	logg         *logger.Logger
	metrics      *metrics.CatalogMetrics
}

// NewConsumer constructs a consumer that watches the provided subscription.
func NewConsumer(rule mainImageRule, subscription *pubsub.Subscriber, logg *logger.Logger, catalogMetrics *metrics.CatalogMetrics) (*Consumer, error) {
	if rule == nil {
		return nil, errors.New("main image rule is required")
	}
	if subscription == nil {
		return nil, errors.New("catalog subscription is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Consumer{
		rule:         rule,
		subscription: subscription,
		logg:         logg,
		metrics:      catalogMetrics,
	}, nil
}

// Run processes messages until the context is canceled or the subscription errors.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	fields := map[string]any{
		"message_id": msg.ID,
		"event_type": msg.Attributes[images.AttrEventType],
	}
	logCtx := c.logg.WithFields(ctx, fields)

	var event images.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logg.Error(logCtx, "failed to unmarshal image event", err)
		return processResult{ack: true}
	}
	if event.ProductID == uuid.Nil || event.ImageID == uuid.Nil {
		c.logg.Warn(logCtx, "image event missing product or image id")
		return processResult{ack: true}
	}

	logCtx = c.logg.WithProductID(logCtx, event.ProductID.String())
	logCtx = c.logg.WithField(logCtx, "image_id", event.ImageID.String())

	var (
		assigned bool
		trigger  string
		err      error
	)
	switch event.Type {
	case images.EventImageCreated:
		trigger = "create"
		assigned, err = c.rule.EnsureMainImage(logCtx, event.ProductID)
	case images.EventImageDeleted:
		trigger = "delete"
		assigned, err = c.rule.ReassignAfterDelete(logCtx, event.ProductID, event.ImageID)
	default:
		c.logg.Info(logCtx, "skipping unknown image event type")
		return processResult{ack: true}
	}

	if err != nil {
		c.logg.Error(logCtx, "main image rule failed", err)
		if isTransientDBError(err) {
			return processResult{nack: true}
		}
		return processResult{ack: true}
	}

	if assigned {
		c.metrics.IncMainImageAssignment(trigger)
		c.logg.Info(logCtx, "main image assigned")
	}
	return processResult{ack: true}
}

func isTransientDBError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

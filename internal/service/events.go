package service

import (
	"context"
	"time"

	"github.com/misthy/shop-api/internal/logging"
)

// EventPublisher is satisfied by mykafka.Producer. A nil publisher disables
// events, nothing in the request path depends on them.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "error", err)
	}
}

package messaging

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-wardrobe/pkg/draft"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ProductHandler decodes product_saved deliveries.
func ProductHandler(fn func(draft.Payload)) func(amqp.Delivery) error {
	return func(d amqp.Delivery) error {
		var payload draft.Payload
		if err := sonic.Unmarshal(d.Body, &payload); err != nil {
			return fmt.Errorf("decode product: %w", err)
		}
		if payload.Id == "" {
			return fmt.Errorf("product without id")
		}
		fn(payload)
		return nil
	}
}

// CatalogChangeHandler decodes catalog_changed deliveries. Any body, including an empty or
// malformed one, is treated as a full change.
func CatalogChangeHandler(fn func(CatalogChange)) func(amqp.Delivery) error {
	return func(d amqp.Delivery) error {
		var change CatalogChange
		if len(d.Body) > 0 {
			_ = sonic.Unmarshal(d.Body, &change)
		}
		fn(change)
		return nil
	}
}

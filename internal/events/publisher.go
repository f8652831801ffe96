// Package events publishes storefront lifecycle events for downstream
// consumers (order fulfillment, notifications). Publishing is best
// effort: a failed publish never changes a checkout outcome.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// CheckoutCompleted is emitted after the gateway confirms a payment.
type CheckoutCompleted struct {
	Reference  string    `json:"reference"`
	Email      string    `json:"email"`
	Total      float64   `json:"total"`
	Units      int       `json:"units"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishCheckoutCompleted(ctx context.Context, event CheckoutCompleted) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "checkout-completed",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) PublishCheckoutCompleted(ctx context.Context, event CheckoutCompleted) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event failed: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Reference),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("publish checkout-completed failed: %w", err)
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishCheckoutCompleted(context.Context, CheckoutCompleted) error {
	return nil
}

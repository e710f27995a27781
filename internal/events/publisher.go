// Package events publishes quote lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crossquote/internal/models"

	"github.com/segmentio/kafka-go"
)

// Quote lifecycle events
const (
	EventQuoteCreated   = "created"
	EventQuoteConfirmed = "confirmed"
	EventQuoteDeleted   = "deleted"
)

// Publisher emits quote lifecycle events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishQuoteEvent(ctx context.Context, event string, quote *models.Quote) error
	Close() error
}

// NewWriter builds the Kafka writer the publisher sends through.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func NewPublisher(writer *kafka.Writer) Publisher {
	return &kafkaPublisher{writer: writer}
}

type quoteEvent struct {
	Event       string    `json:"event"`
	QuoteID     string    `json:"quote_id"`
	MerchantID  uint      `json:"merchant_id"`
	Status      string    `json:"status"`
	Country     string    `json:"country"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	RetailPrice float64   `json:"retail_price"`
	NetRevenue  float64   `json:"net_revenue"`
	ProfitRate  float64   `json:"profit_rate"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (p *kafkaPublisher) PublishQuoteEvent(ctx context.Context, event string, quote *models.Quote) error {
	payload, err := json.Marshal(quoteEvent{
		Event:       event,
		QuoteID:     quote.QuoteID,
		MerchantID:  quote.MerchantID,
		Status:      quote.Status,
		Country:     quote.Country,
		Currency:    quote.Currency,
		Category:    quote.Category,
		RetailPrice: quote.RetailPrice,
		NetRevenue:  quote.NetRevenue,
		ProfitRate:  quote.ProfitRate,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal quote event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("quote-%s-%s", event, quote.QuoteID)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write quote event: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

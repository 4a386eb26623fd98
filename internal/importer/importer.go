// Package importer carries bulk-uploaded news items over Kafka from the API
// to the indexing worker.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/trt-intel/internal/models"
)

// Message headers set by Publish.
const (
	HeaderOrigin   = "origin"
	HeaderBatch    = "batch"
	HeaderUploaded = "uploaded_at"

	OriginBulkUpload = "bulk-upload"
)

// ErrEmptyPayload is returned by Decode for a message without a body.
var ErrEmptyPayload = errors.New("empty payload")

// Writer is the subset of *kafka.Writer used by Publisher.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter returns a Kafka writer for the import topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
	}
}

// Publisher sends news items to the import topic, one message per item.
type Publisher struct {
	w   Writer
	now func() time.Time
}

func NewPublisher(w Writer) *Publisher {
	return &Publisher{w: w, now: time.Now}
}

// Publish writes items as one batch and returns how many were sent.
// Items are keyed by ID so re-uploads of a row land on the same partition.
func (p *Publisher) Publish(ctx context.Context, batch string, items []models.NewsItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	uploaded := p.now().UTC().Format(time.RFC3339)
	msgs := make([]kafka.Message, 0, len(items))
	for _, item := range items {
		value, err := json.Marshal(item)
		if err != nil {
			return 0, fmt.Errorf("marshal item %s: %w", item.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(item.ID),
			Value: value,
			Headers: []kafka.Header{
				{Key: HeaderOrigin, Value: []byte(OriginBulkUpload)},
				{Key: HeaderBatch, Value: []byte(batch)},
				{Key: HeaderUploaded, Value: []byte(uploaded)},
			},
		})
	}

	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("write import messages: %w", err)
	}
	return len(msgs), nil
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

// Decode parses a message written by Publish.
func Decode(msg kafka.Message) (models.NewsItem, error) {
	var item models.NewsItem
	if len(msg.Value) == 0 {
		return item, ErrEmptyPayload
	}
	if err := json.Unmarshal(msg.Value, &item); err != nil {
		return item, fmt.Errorf("decode import message: %w", err)
	}
	return item, nil
}

// Header returns the value of the named header, or "".
func Header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

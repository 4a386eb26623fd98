package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/trt-intel/internal/dedupe"
	"github.com/DeafMist/trt-intel/internal/facet"
	"github.com/DeafMist/trt-intel/internal/importer"
	"github.com/DeafMist/trt-intel/internal/metrics"
	"github.com/DeafMist/trt-intel/internal/models"
)

var errUntitled = errors.New("item has no title")

type newsIndexer interface {
	IndexNews(ctx context.Context, item models.NewsItem) error
}

type labelLearner interface {
	Learn(ctx context.Context, items ...models.NewsItem) (int, error)
}

type importRecorder interface {
	ObserveImport(result string, n int)
}

type dlqWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type processor struct {
	log     *slog.Logger
	index   newsIndexer
	seen    dedupe.Store
	labels  labelLearner
	metrics importRecorder
}

// processMessage indexes one imported item. Returning an error sends the
// message to the DLQ; duplicates are acknowledged without indexing.
func (p *processor) processMessage(ctx context.Context, msg kafka.Message) error {
	item, err := importer.Decode(msg)
	if err != nil {
		return err
	}

	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return errUntitled
	}
	if _, err := facet.ParseDate(item.Date); err != nil {
		return fmt.Errorf("item %s: %w", item.ID, err)
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}

	key := dedupe.Fingerprint(item)
	seen, err := p.seen.Seen(ctx, key)
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if seen {
		p.log.Debug("duplicate news", slog.String("id", item.ID), slog.String("batch", importer.Header(msg, importer.HeaderBatch)))
		p.metrics.ObserveImport(metrics.ImportDuplicate, 1)
		return nil
	}

	if err := p.index.IndexNews(ctx, item); err != nil {
		return fmt.Errorf("index news: %w", err)
	}

	if err := p.seen.Mark(ctx, key); err != nil {
		p.log.Warn("mark seen", slog.String("id", item.ID), slog.Any("err", err))
	}
	if _, err := p.labels.Learn(ctx, item); err != nil {
		p.log.Warn("learn labels", slog.String("id", item.ID), slog.Any("err", err))
	}

	p.metrics.ObserveImport(metrics.ImportIndexed, 1)
	p.log.Info("indexed news", slog.String("id", item.ID), slog.String("title", item.Title))
	return nil
}

// sendToDLQ writes msg with error context to the DLQ, retrying with
// exponential backoff from base. It reports whether the write succeeded.
func sendToDLQ(ctx context.Context, log *slog.Logger, w dlqWriter, msg kafka.Message, cause error, attempts int, base time.Duration) bool {
	dlqMsg := kafka.Message{
		Key:   msg.Key,
		Value: msg.Value,
		Headers: append(msg.Headers,
			kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
			kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
			kafka.Header{Key: "error", Value: []byte(cause.Error())},
			kafka.Header{Key: "timestamp", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		),
	}

	for attempt := 0; attempt < attempts; attempt++ {
		dlqErr := w.WriteMessages(ctx, dlqMsg)
		if dlqErr == nil {
			log.Info("message sent to DLQ",
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
				slog.Int("attempt", attempt+1),
			)
			return true
		}

		backoff := base << uint(attempt)
		log.Warn("DLQ write failed, retrying",
			slog.Any("err", dlqErr),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff),
		)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			log.Info("context canceled during DLQ retry")
			return false
		}
	}
	return false
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// waitForElasticsearch pings until the cluster answers or attempts run out.
func waitForElasticsearch(ctx context.Context, log *slog.Logger, es pinger, attempts int, delay time.Duration) error {
	var err error
	for i := 0; i < attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = es.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		log.Warn("elasticsearch ping failed, retrying",
			slog.Any("err", err),
			slog.Int("attempt", i+1),
			slog.Int("max_retries", attempts),
			slog.Duration("retry_in", delay),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("elasticsearch unreachable after %d attempts: %w", attempts, err)
}

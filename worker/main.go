package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/trt-intel/internal/config"
	"github.com/DeafMist/trt-intel/internal/dedupe"
	"github.com/DeafMist/trt-intel/internal/elasticsearch"
	"github.com/DeafMist/trt-intel/internal/labels"
	"github.com/DeafMist/trt-intel/internal/logger"
	"github.com/DeafMist/trt-intel/internal/metrics"
	"github.com/DeafMist/trt-intel/internal/redisconn"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("worker")
	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	esClient, err := elasticsearch.New(cfg.ElasticsearchAddr, cfg.NewsIndex, cfg.DocumentIndex, log)
	if err != nil {
		log.Error("init elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	rdb, err := redisconn.Open(ctx, cfg.Common)
	if err != nil {
		log.Error("init redis", slog.Any("err", err))
		os.Exit(1)
	}

	var (
		seen    dedupe.Store
		backend labels.Backend
	)
	if rdb != nil {
		defer rdb.Close()
		seen = dedupe.NewRedis(rdb, "", cfg.DedupeTTL)
		backend = labels.NewRedis(rdb, "")
	} else {
		seen = dedupe.NewMemory(cfg.DedupeCapacity, cfg.DedupeTTL)
		backend = labels.NewMemory()
		log.Warn("REDIS_ADDR not set, dedupe and labels are local to this worker")
	}

	m := metrics.New("trt")
	p := &processor{
		log:     log,
		index:   esClient,
		seen:    seen,
		labels:  labels.NewCatalog(backend),
		metrics: m,
	}

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           metricsRouter(m),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", slog.Any("err", err))
		}
	}()
	defer metricsServer.Close()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.ImportTopic,
		GroupID:        cfg.KafkaConsumer,
		QueueCapacity:  cfg.BatchSize,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit only
	})
	defer reader.Close()

	dlqWriter := &kafka.Writer{
		Addr:        kafka.TCP(cfg.KafkaBrokers...),
		Topic:       cfg.DLQTopic,
		MaxAttempts: 3,
	}
	defer dlqWriter.Close()

	log.Info("worker started",
		slog.String("topic", cfg.ImportTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("dlq_topic", cfg.DLQTopic),
		slog.String("metrics_addr", cfg.MetricsAddr),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := p.processMessage(ctx, msg); err != nil {
			m.ObserveImport(metrics.ImportFailed, 1)
			log.Warn("process message failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)

			// Commit only once the message is safe in the DLQ; otherwise it is reprocessed on restart.
			if !sendToDLQ(ctx, log, dlqWriter, msg, err, cfg.DLQAttempts, time.Second) {
				if ctx.Err() != nil {
					return
				}
				log.Error("DLQ write exhausted retries, message may be lost if later messages commit",
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
				continue
			}
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

func metricsRouter(m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

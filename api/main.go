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

	"github.com/joho/godotenv"

	"github.com/DeafMist/trt-intel/internal/config"
	"github.com/DeafMist/trt-intel/internal/elasticsearch"
	"github.com/DeafMist/trt-intel/internal/importer"
	"github.com/DeafMist/trt-intel/internal/labels"
	"github.com/DeafMist/trt-intel/internal/logger"
	"github.com/DeafMist/trt-intel/internal/metrics"
	"github.com/DeafMist/trt-intel/internal/redisconn"
	"github.com/DeafMist/trt-intel/internal/session"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("api")
	cfg, err := config.LoadAPI()
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
	if err := waitForElasticsearch(ctx, log, esClient, 10, 5*time.Second); err != nil {
		log.Error("connect elasticsearch", slog.Any("err", err))
		os.Exit(1)
	}

	rdb, err := redisconn.Open(ctx, cfg.Common)
	if err != nil {
		log.Error("init redis", slog.Any("err", err))
		os.Exit(1)
	}

	var (
		sessions session.Repository
		backend  labels.Backend
	)
	if rdb != nil {
		defer rdb.Close()
		sessions = session.NewRedis(rdb, "", cfg.SessionTTL)
		backend = labels.NewRedis(rdb, "")
		log.Info("using redis backends", slog.String("addr", cfg.RedisAddr))
	} else {
		sessions = session.NewMemory(cfg.SessionTTL)
		backend = labels.NewMemory()
		log.Warn("REDIS_ADDR not set, sessions and labels are kept in memory")
	}

	catalog := labels.NewCatalog(backend)
	if err := catalog.Init(ctx); err != nil {
		log.Error("seed labels", slog.Any("err", err))
		os.Exit(1)
	}

	publisher := importer.NewPublisher(importer.NewWriter(cfg.KafkaBrokers, cfg.ImportTopic))
	defer publisher.Close()

	srv := newServer(log, cfg, esClient, sessions, catalog, metrics.New("trt"), publisher)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

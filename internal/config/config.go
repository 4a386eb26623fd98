package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Common holds the storage and broker settings every binary shares.
type Common struct {
	ElasticsearchAddr string
	NewsIndex         string
	DocumentIndex     string
	// RedisAddr selects the Redis backends for sessions, labels and dedupe.
	// Empty keeps everything in process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KafkaBrokers  []string
	ImportTopic   string
}

// API describes HTTP-layer configuration.
type API struct {
	Common
	BindAddr        string
	MaxRecords      int
	SessionTTL      time.Duration
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// Worker holds configuration for the import topic -> Elasticsearch worker.
type Worker struct {
	Common
	KafkaConsumer  string
	DLQTopic       string
	DedupeCapacity int
	DedupeTTL      time.Duration
	BatchSize      int
	DLQAttempts    int
	MetricsAddr    string
}

func loadCommon() (Common, error) {
	c := Common{
		ElasticsearchAddr: getEnv("ELASTICSEARCH_ADDR", "http://elasticsearch:9200"),
		NewsIndex:         getEnv("ELASTICSEARCH_NEWS_INDEX", "news"),
		DocumentIndex:     getEnv("ELASTICSEARCH_DOCUMENT_INDEX", "documents"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getInt("REDIS_DB", 0),
		KafkaBrokers:      splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		ImportTopic:       getEnv("KAFKA_IMPORT_TOPIC", "news_import"),
	}

	if len(c.KafkaBrokers) == 0 {
		return c, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.NewsIndex == c.DocumentIndex {
		return c, fmt.Errorf("ELASTICSEARCH_NEWS_INDEX and ELASTICSEARCH_DOCUMENT_INDEX must differ")
	}
	if c.RedisDB < 0 {
		return c, fmt.Errorf("REDIS_DB cannot be negative")
	}
	return c, nil
}

// LoadWorker builds a Worker config from environment variables.
func LoadWorker() (*Worker, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &Worker{
		Common:         common,
		KafkaConsumer:  getEnv("KAFKA_CONSUMER_GROUP", "import-worker"),
		DLQTopic:       getEnv("KAFKA_DLQ_TOPIC", common.ImportTopic+"_dlq"),
		DedupeCapacity: getInt("WORKER_DEDUPE_CAPACITY", 20000),
		DedupeTTL:      getDuration("WORKER_DEDUPE_TTL", "24h"),
		BatchSize:      getInt("WORKER_BATCH_SIZE", 10),
		DLQAttempts:    getInt("WORKER_DLQ_ATTEMPTS", 5),
		MetricsAddr:    getEnv("WORKER_METRICS_ADDR", "0.0.0.0:9102"),
	}

	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE must be positive")
	}
	if c.DedupeCapacity <= 0 {
		return nil, fmt.Errorf("WORKER_DEDUPE_CAPACITY must be positive")
	}
	if c.DLQAttempts <= 0 {
		return nil, fmt.Errorf("WORKER_DLQ_ATTEMPTS must be positive")
	}
	if c.DLQTopic == c.ImportTopic {
		return nil, fmt.Errorf("KAFKA_DLQ_TOPIC cannot be the import topic")
	}

	return c, nil
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	common, err := loadCommon()
	if err != nil {
		return nil, err
	}

	c := &API{
		Common:          common,
		BindAddr:        getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		MaxRecords:      getInt("API_MAX_RECORDS", 5000),
		SessionTTL:      getDuration("API_SESSION_TTL", "12h"),
		MaxUploadBytes:  int64(getInt("API_MAX_UPLOAD_BYTES", 10<<20)),
		ShutdownTimeout: getDuration("API_SHUTDOWN_TIMEOUT", "10s"),
	}

	if c.MaxRecords <= 0 {
		return nil, fmt.Errorf("API_MAX_RECORDS must be positive")
	}
	if c.MaxRecords > 10000 {
		return nil, fmt.Errorf("API_MAX_RECORDS cannot exceed 10000")
	}
	if c.SessionTTL <= 0 {
		return nil, fmt.Errorf("API_SESSION_TTL must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("API_MAX_UPLOAD_BYTES must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, fallback)); err == nil {
		return d
	}
	d, err := time.ParseDuration(fallback)
	if err != nil {
		panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, err))
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

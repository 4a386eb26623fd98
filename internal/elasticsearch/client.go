package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/DeafMist/trt-intel/internal/models"
)

// ErrNotFound is returned when deleting a document that does not exist.
var ErrNotFound = errors.New("document not found")

// maxWindow is the largest result window Elasticsearch serves without scrolling.
const maxWindow = 10_000

// Client wraps go-elasticsearch with the portal's two indices.
type Client struct {
	es        *elasticsearch.Client
	newsIndex string
	docIndex  string
	log       *slog.Logger
}

// New instantiates the Elasticsearch client.
func New(addr, newsIndex, docIndex string, logger *slog.Logger) (*Client, error) {
	return NewWithTransport(addr, newsIndex, docIndex, nil, logger)
}

// NewWithTransport is New with a custom HTTP transport; nil uses the default.
func NewWithTransport(addr, newsIndex, docIndex string, transport http.RoundTripper, logger *slog.Logger) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{addr},
		Transport: transport,
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{es: es, newsIndex: newsIndex, docIndex: docIndex, log: logger}, nil
}

// Ping checks if Elasticsearch is available.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping failed: %s", res.Status())
	}

	return nil
}

// IndexNews writes or replaces a news item.
func (c *Client) IndexNews(ctx context.Context, item models.NewsItem) error {
	return c.index(ctx, c.newsIndex, item.ID, item)
}

// IndexDocument writes or replaces a library document.
func (c *Client) IndexDocument(ctx context.Context, doc models.Document) error {
	return c.index(ctx, c.docIndex, doc.ID, doc)
}

func (c *Client) index(ctx context.Context, index, id string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal doc: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(payload),
		Refresh:    "wait_for",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("index doc: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index doc failed: %s", strings.TrimSpace(string(body)))
	}

	return nil
}

// DeleteNews removes one news item.
func (c *Client) DeleteNews(ctx context.Context, id string) error {
	return c.delete(ctx, c.newsIndex, id)
}

// DeleteDocument removes one library document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.delete(ctx, c.docIndex, id)
}

func (c *Client) delete(ctx context.Context, index, id string) error {
	res, err := c.es.Delete(index, id,
		c.es.Delete.WithContext(ctx),
		c.es.Delete.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("delete doc: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("delete doc failed: %s", strings.TrimSpace(string(body)))
	}
	return nil
}

// ListNews returns up to limit news items, newest first. The caller filters
// the whole set in memory, so no query is pushed down.
func (c *Client) ListNews(ctx context.Context, limit int) ([]models.NewsItem, error) {
	return list[models.NewsItem](ctx, c, c.newsIndex, limit)
}

// ListDocuments returns up to limit library documents, newest first.
func (c *Client) ListDocuments(ctx context.Context, limit int) ([]models.Document, error) {
	return list[models.Document](ctx, c, c.docIndex, limit)
}

// ListBody builds the search body used by the list calls.
func ListBody(limit int) map[string]any {
	if limit <= 0 || limit > maxWindow {
		limit = maxWindow
	}
	return map[string]any{
		"size":  limit,
		"query": map[string]any{"match_all": map[string]any{}},
		"sort": []map[string]any{
			{"date": map[string]any{"order": "desc", "unmapped_type": "date"}},
		},
	}
}

func list[T any](ctx context.Context, c *Client, index string, limit int) ([]T, error) {
	payload, err := json.Marshal(ListBody(limit))
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(payload)),
		c.es.Search.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		data, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search failed: %s", strings.TrimSpace(string(data)))
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source T `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if parsed.Hits.Total.Value > int64(len(parsed.Hits.Hits)) {
		c.log.Warn("record set truncated",
			slog.String("index", index),
			slog.Int64("total", parsed.Hits.Total.Value),
			slog.Int("returned", len(parsed.Hits.Hits)),
		)
	}

	items := make([]T, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		items = append(items, hit.Source)
	}
	return items, nil
}

// Health pings Elasticsearch to ensure connectivity.
func (c *Client) Health(ctx context.Context) error {
	res, err := c.es.Cluster.Health(c.es.Cluster.Health.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(res.Body)
		return fmt.Errorf("cluster health bad: %s", strings.TrimSpace(string(data)))
	}
	return nil
}

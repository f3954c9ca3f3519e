package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

const (
	actionCreate = "create"
	actionIndex  = "index"
)

// Upserter bulk-writes words into an index keyed by the word.
type Upserter struct {
	client    *elasticsearch.TypedClient
	indexName string
	action    string
}

func NewUpserter(ctx context.Context, config ClientConfig) (*Upserter, error) {
	action, err := bulkAction(config.Resolution)
	if err != nil {
		return nil, err
	}

	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	u := &Upserter{
		client:    client,
		indexName: config.index(),
		action:    action,
	}

	if err := u.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return u, nil
}

func bulkAction(r domain.ConflictResolution) (string, error) {
	switch r {
	case "", domain.IgnoreDuplicates:
		return actionCreate, nil
	case domain.MergeDuplicates:
		return actionIndex, nil
	default:
		return "", fmt.Errorf("unsupported conflict resolution %q", r)
	}
}

func (u *Upserter) Upsert(ctx context.Context, words []domain.Word) error {
	if len(words) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      u.indexName,
		Client:     u.client,
		NumWorkers: 1,
		FlushBytes: 5e+6,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	collector := &bulkCollector{action: u.action, total: len(words)}

	for _, w := range words {
		docBytes, err := json.Marshal(toDocument(w))
		if err != nil {
			collector.fail(0, "marshal", err.Error())
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     u.action,
			DocumentID: w.String(),
			Body:       bytes.NewReader(docBytes),
			OnSuccess:  collector.onSuccess,
			OnFailure:  collector.onFailure,
		})
		if err != nil {
			collector.fail(0, "add", err.Error())
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Debug("Bulk write completed",
		"index", u.indexName,
		"action", u.action,
		"successful", collector.successful,
		"existing", collector.existing,
		"failed", collector.err.Failed)

	if collector.err.Failed > 0 {
		return &collector.err
	}
	return nil
}

func (u *Upserter) EnsureIndex(ctx context.Context) error {
	exists, err := u.client.Indices.Exists(u.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if exists {
		slog.Info("Index already exists", "index", u.indexName)
		return nil
	}

	settings := buildSettings()
	mappings := buildMapping()

	createRes, err := u.client.Indices.Create(u.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", u.indexName)
	return nil
}

func (u *Upserter) Close() error {
	return nil
}

// bulkCollector tallies item outcomes reported by the bulk indexer workers.
type bulkCollector struct {
	mu         sync.Mutex
	action     string
	total      int
	successful int
	existing   int
	err        BulkError
}

func (c *bulkCollector) onSuccess(_ context.Context, _ esutil.BulkIndexerItem, _ esutil.BulkIndexerResponseItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.successful++
}

func (c *bulkCollector) onFailure(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
	if err != nil {
		slog.Error("bulk write error", "error", err, "id", item.DocumentID)
		c.fail(0, "request", err.Error())
		return
	}

	// create on an existing id is the ignore-duplicates outcome.
	if c.action == actionCreate && res.Status == http.StatusConflict {
		c.mu.Lock()
		c.existing++
		c.mu.Unlock()
		return
	}

	slog.Error("bulk write error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
	c.fail(res.Status, res.Error.Type, res.Error.Reason)
}

func (c *bulkCollector) fail(status int, kind, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err.Total = c.total
	c.err.Failed++
	if c.err.Failed == 1 {
		c.err.Status = status
		c.err.Type = kind
		c.err.Reason = reason
	}
}

// audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

type Repository interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, q Query) ([]AuditLog, error)
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a new repository with a given Elasticsearch client URL.
func NewElasticsearchRepository(esURL, index string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient, index: index}, nil
}

// LogAccess indexes one audit entry.
func (r *ElasticsearchRepository) LogAccess(ctx context.Context, log AuditLog) error {
	data, err := json.Marshal(log)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: uuid.New().String(),
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}

func buildQuery(q Query) map[string]any {
	must := []any{
		map[string]any{
			"range": map[string]any{
				"timestamp": map[string]any{
					"gte": q.From.Format(time.RFC3339),
					"lte": q.To.Format(time.RFC3339),
				},
			},
		},
	}
	for field, value := range map[string]string{
		"user_id":     q.UserID,
		"tenant_id":   q.TenantID,
		"resource_id": q.ResourceID,
	} {
		if value != "" {
			must = append(must, map[string]any{"term": map[string]any{field: value}})
		}
	}

	size := q.Size
	if size <= 0 {
		size = 100
	}
	return map[string]any{
		"size": size,
		"sort": []any{map[string]any{"timestamp": "desc"}},
		"query": map[string]any{
			"bool": map[string]any{"must": must},
		},
	}
}

// QueryLogs searches audit logs within a time frame, optionally filtered by user, tenant and resource.
func (r *ElasticsearchRepository) QueryLogs(ctx context.Context, q Query) ([]AuditLog, error) {
	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(buildQuery(q)); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(r.index),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error searching documents: %s", res.String())
	}

	var body struct {
		Hits struct {
			Hits []struct {
				Source AuditLog `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	logs := make([]AuditLog, len(body.Hits.Hits))
	for i, hit := range body.Hits.Hits {
		logs[i] = hit.Source
	}
	return logs, nil
}

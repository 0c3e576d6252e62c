package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/skillport/pkg/logger"
)

const idempotencyHeader = "Idempotency-Key"

// httpClient wraps http.Client with timeout.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// get fetches path and decodes a 200 JSON response into out.
func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(body))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// post sends body as JSON with an idempotency key and decodes a created record into out.
func (c *httpClient) post(ctx context.Context, path, key string, body, out any) (outcome, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return failed, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return failed, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, key)

	resp, err := c.client.Do(req)
	if err != nil {
		return failed, fmt.Errorf("post %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed, fmt.Errorf("read %s: %w", path, err)
	}
	switch resp.StatusCode {
	case http.StatusCreated:
		if err := json.Unmarshal(respBody, out); err != nil {
			return failed, fmt.Errorf("decode %s: %w", path, err)
		}
		return created, nil
	case http.StatusConflict:
		return duplicate, nil
	default:
		return failed, fmt.Errorf("post %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(respBody))
	}
}

// tally counts create outcomes across workers.
type tally struct {
	created, duplicate, failed atomic.Int64
}

func (t *tally) add(o outcome) {
	switch o {
	case created:
		t.created.Add(1)
	case duplicate:
		t.duplicate.Add(1)
	default:
		t.failed.Add(1)
	}
}

// keyed pairs a record with the Idempotency-Key it is sent with.
type keyed[T any] struct {
	key string
	rec T
}

// withKeys assigns a fresh idempotency key to every record.
func withKeys[T any](recs []T) []keyed[T] {
	out := make([]keyed[T], len(recs))
	for i, r := range recs {
		out[i] = keyed[T]{key: uuid.NewString(), rec: r}
	}
	return out
}

// submitAll posts items to path with a worker pool. The returned slice holds
// the created records at the index of their request; ok marks which were created.
func submitAll[T any](ctx context.Context, c *httpClient, cfg *Config, path string, items []keyed[T]) ([]T, []bool, *tally) {
	out := make([]T, len(items))
	ok := make([]bool, len(items))
	t := &tally{}

	workers := max(1, min(cfg.Workers, len(items)))
	indices := make(chan int, workers*2)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				o, err := c.post(ctx, path, items[i].key, items[i].rec, &out[i])
				if err != nil && cfg.Verbose {
					logger.Get().Warn(ctx, "create failed", logger.String("path", path), logger.Error(err))
				}
				ok[i] = o == created
				t.add(o)
			}
		}()
	}

	go func() {
		defer close(indices)
		for i := range items {
			select {
			case <-ctx.Done():
				return
			case indices <- i:
			}
		}
	}()

	wg.Wait()
	return out, ok, t
}

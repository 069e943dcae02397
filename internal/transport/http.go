package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"offstash/internal/common"
	"offstash/internal/models"
)

const defaultTimeout = 30 * time.Second

// HTTPTransport POSTs each item as JSON to a sync endpoint. A non-2xx
// response or a request error is a TransportFailure; the queue decides
// what to do with it.
type HTTPTransport struct {
	endpoint string
	client   *http.Client

	// retry settings; maxRetries == 0 means a single attempt
	maxRetries  uint64
	baseBackoff time.Duration
}

type Option func(*HTTPTransport)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) { t.client.Timeout = d }
}

// WithRetries enables bounded exponential backoff around each send.
// Server-side errors (5xx) and request errors are retried; client-side
// rejections (4xx) are not.
func WithRetries(maxRetries uint64, baseBackoff time.Duration) Option {
	return func(t *HTTPTransport) {
		t.maxRetries = maxRetries
		t.baseBackoff = baseBackoff
	}
}

func NewHTTPTransport(endpoint string, opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send delivers one item. The JSON body carries the whole SyncItem,
// payload base64-encoded by encoding/json.
func (t *HTTPTransport) Send(ctx context.Context, item *models.SyncItem) error {
	if t.maxRetries == 0 {
		return t.sendOnce(ctx, item)
	}

	backoff := retry.WithMaxRetries(t.maxRetries, retry.NewExponential(t.baseBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return t.sendOnce(ctx, item)
	})
}

func (t *HTTPTransport) sendOnce(ctx context.Context, item *models.SyncItem) error {
	body, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode sync item %s: %w", item.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("send %s: %v: %w", item.ID, err, common.ErrTransportFailure))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		failure := fmt.Errorf("send %s: %s; body: %s: %w", item.ID, resp.Status, string(b), common.ErrTransportFailure)
		if resp.StatusCode >= 500 {
			return retry.RetryableError(failure)
		}
		return failure
	}
	return nil
}

package transport

import (
	"context"
	"net/http"
	"time"
)

// HTTPProber answers reachability of the sync endpoint with a HEAD
// request. Any HTTP response counts as reachable; only a failed request
// does not — the probe is about connectivity, not endpoint semantics.
type HTTPProber struct {
	endpoint string
	client   *http.Client
}

func NewHTTPProber(endpoint string) *HTTPProber {
	return &HTTPProber{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (p *HTTPProber) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	return nil
}

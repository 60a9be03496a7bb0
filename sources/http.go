package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type HTTPMethod = string

const (
	HTTPMethodGet  HTTPMethod = "GET"
	HTTPMethodPost HTTPMethod = "POST"
)

// HTTPClient is the subset of *http.Client the source needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPSource contains http-specific source fields
type HTTPSource struct {
	URL     string            `json:"url"`
	Method  *HTTPMethod       `json:"method,omitempty"` // Default is GET
	Headers map[string]string `json:"headers,omitempty"`

	client HTTPClient
}

func newHTTPSource(raw []byte) (Provider, error) {
	var src HTTPSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}
	if err := src.validate(); err != nil {
		return nil, err
	}
	src.client = http.DefaultClient
	return &src, nil
}

// NewHTTPSource builds a source for rawURL that sends requests through client.
func NewHTTPSource(rawURL string, client HTTPClient) (*HTTPSource, error) {
	src := &HTTPSource{URL: rawURL, client: client}
	if err := src.validate(); err != nil {
		return nil, err
	}
	return src, nil
}

func (h *HTTPSource) validate() error {
	h.URL = strings.TrimSpace(h.URL)
	u, err := url.Parse(h.URL)
	if err != nil {
		return fmt.Errorf("invalid source url %q: %w", h.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid source url %q: scheme must be http or https", h.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid source url %q: missing host", h.URL)
	}
	if u.User != nil {
		return fmt.Errorf("invalid source url %q: credentials belong in headers", h.URL)
	}
	return nil
}

func (h *HTTPSource) method() HTTPMethod {
	if h.Method != nil {
		return *h.Method
	}
	return HTTPMethodGet
}

// Fetch downloads the whole body. Non-2xx responses are errors.
func (h *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, h.method(), h.URL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: %s", h.URL, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", h.URL, err)
	}
	return data, nil
}

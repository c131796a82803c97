// Package client talks to the calldash HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"calldash/internal/model"
	"calldash/internal/pagination"
)

// APIError is a non-2xx answer decoded from the server's error envelope.
type APIError struct {
	Status    int
	RequestID string
	Code      string
	Message   string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("calldash: status %d", e.Status)
	}
	return fmt.Sprintf("calldash: %s (%d): %s", e.Code, e.Status, e.Message)
}

type errorEnvelope struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option configures a Callers client.
type Option func(*Callers)

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Callers) { c.http = h }
}

// Callers reads the /callers listing. A Callers value is immutable and safe for concurrent use.
type Callers struct {
	base   *url.URL
	http   *http.Client
	filter model.CallerFilter
}

// NewCallers returns a client for the API rooted at baseURL.
func NewCallers(baseURL string, opts ...Option) (*Callers, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Callers{
		base: u,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// WithFilter returns a copy of c whose listings are narrowed by f.
func (c *Callers) WithFilter(f model.CallerFilter) *Callers {
	cp := *c
	cp.filter = f
	return &cp
}

// FetchPage loads one page. Its signature matches pagination.FetchFunc[model.Caller].
func (c *Callers) FetchPage(ctx context.Context, page, limit int) (pagination.Response[model.Caller], error) {
	var out pagination.Response[model.Caller]

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	for k, v := range map[string]string{
		"organization": c.filter.Organization,
		"tag":          c.filter.Tag,
		"search":       c.filter.Search,
	} {
		if v != "" {
			q.Set(k, v)
		}
	}

	u := c.base.JoinPath("callers")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("list callers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return out, decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("decode page %d: %w", page, err)
	}
	return out, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, RequestID: resp.Header.Get("X-Request-ID")}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && env.Error.Code != "" {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		if env.RequestID != "" {
			apiErr.RequestID = env.RequestID
		}
	}
	return apiErr
}

var _ pagination.FetchFunc[model.Caller] = (*Callers)(nil).FetchPage

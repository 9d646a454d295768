package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Lixing-Zhang/kart-challenge/admin-dashboard/internal/models"
)

// ClientConfig holds settings for the remote collection client
type ClientConfig struct {
	// ResourceURL is the collection endpoint, e.g. https://host/product
	ResourceURL string
	// Timeout bounds each request; zero means no timeout
	Timeout time.Duration
	// RateLimit caps outgoing requests per second; zero disables throttling
	RateLimit float64
	RateBurst int
}

// Client talks to the remote product collection over HTTP
type Client struct {
	httpClient  *http.Client
	resourceURL string
	limiter     *rate.Limiter
}

var _ Remote = (*Client)(nil)

// NewClient creates a new remote collection client.
// If httpClient is nil, a client with cfg.Timeout is created.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		httpClient:  httpClient,
		resourceURL: strings.TrimRight(cfg.ResourceURL, "/"),
		limiter:     limiter,
	}
}

// List handles GET /product
func (c *Client) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, "list", http.MethodGet, c.resourceURL, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Create handles POST /product
func (c *Client) Create(ctx context.Context, input models.ProductInput) (models.Product, error) {
	var created models.Product
	if err := c.do(ctx, "create", http.MethodPost, c.resourceURL, input, &created); err != nil {
		return models.Product{}, err
	}
	if created.ID == "" {
		return models.Product{}, &OpError{Op: "create", Kind: KindDecode, Err: ErrMissingID}
	}
	return created, nil
}

// Update handles PUT /product/{id}
func (c *Client) Update(ctx context.Context, id string, input models.ProductInput) (models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, "update", http.MethodPut, c.itemURL(id), input, &updated); err != nil {
		return models.Product{}, err
	}
	if err := checkID("update", id, updated); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// Delete handles DELETE /product/{id}
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, nil)
}

// checkID rejects a record whose identifier is missing or differs from want
func checkID(op, want string, p models.Product) error {
	switch {
	case p.ID == "":
		return &OpError{Op: op, Kind: KindDecode, Err: ErrMissingID}
	case p.ID != want:
		return &OpError{Op: op, Kind: KindDecode, Err: fmt.Errorf("%w: got %q, want %q", ErrIDMismatch, p.ID, want)}
	}
	return nil
}

func (c *Client) itemURL(id string) string {
	return c.resourceURL + "/" + url.PathEscape(id)
}

// do executes one request; out may be nil when the body is ignored
func (c *Client) do(ctx context.Context, op, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &OpError{Op: op, Kind: KindEncode, Err: err}
		}
		body = bytes.NewReader(payload)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &OpError{Op: op, Kind: KindTransport, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &OpError{Op: op, Kind: KindTransport, Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &OpError{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &OpError{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &OpError{Op: op, Kind: KindDecode, Err: err}
	}

	return nil
}

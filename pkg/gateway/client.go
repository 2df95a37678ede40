package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client is the HTTP wrapper for the Panorama data-gateway REST API.
// Records live in named entities (e.g. "swap-sessions") and are addressed
// by an opaque key chosen by the caller.
type Client struct {
	baseURL     string
	accessToken string
	tenant      string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// Config holds gateway client configuration.
type Config struct {
	BaseURL     string
	AccessToken string
	Tenant      string
	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64
}

var _ IGateway = (*Client)(nil)

// NewClient creates a new data-gateway HTTP client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.RequestsPerSecond)+1)
	}

	return &Client{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		tenant:      cfg.Tenant,
		httpClient:  &http.Client{},
		limiter:     limiter,
	}, nil
}

// PutRecord upserts the record stored under (entity, key).
// Writes carry an idempotency key so gateway-side retries are safe.
func (c *Client) PutRecord(ctx context.Context, entity, key string, data json.RawMessage) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/v1/entities/%s/records/%s", c.baseURL, entity, url.PathEscape(key))

	body, err := json.Marshal(putRecordRequest{Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal put record request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build put record request: %w", err)
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call gateway put API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway put error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// AppendRecord appends a record under (entity, key) without replacing
// previous ones. Used for append-only history entities.
func (c *Client) AppendRecord(ctx context.Context, entity, key string, data json.RawMessage) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/v1/entities/%s/records/%s/append", c.baseURL, entity, url.PathEscape(key))

	body, err := json.Marshal(putRecordRequest{Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal append record request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build append record request: %w", err)
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call gateway append API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway append error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// GetRecord fetches the record stored under (entity, key).
// Returns ErrRecordNotFound when the key has no record.
func (c *Client) GetRecord(ctx context.Context, entity, key string) (*Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/v1/entities/%s/records/%s", c.baseURL, entity, url.PathEscape(key))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build get record request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call gateway get API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrRecordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway get error %d: %s", resp.StatusCode, string(raw))
	}

	var record Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode gateway get response: %w", err)
	}
	return &record, nil
}

// ListRecords lists records appended under (entity, key), newest first.
func (c *Client) ListRecords(ctx context.Context, entity, key string, limit int) ([]Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/v1/entities/%s/records/%s/list?limit=%s&order=desc",
		c.baseURL, entity, url.PathEscape(key), strconv.Itoa(limit))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list records request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call gateway list API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway list error %d: %s", resp.StatusCode, string(raw))
	}

	var listResp struct {
		Records []Record `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to decode gateway list response: %w", err)
	}
	return listResp.Records, nil
}

// DeleteRecord removes the record stored under (entity, key).
// Deleting a missing record is not an error.
func (c *Client) DeleteRecord(ctx context.Context, entity, key string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/api/v1/entities/%s/records/%s", c.baseURL, entity, url.PathEscape(key))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete record request: %w", err)
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call gateway delete API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gateway delete error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))
	}
	if c.tenant != "" {
		req.Header.Set("X-Tenant-ID", c.tenant)
	}
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("gateway rate limiter: %w", err)
	}
	return nil
}

type putRecordRequest struct {
	Data json.RawMessage `json:"data"`
}

package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DjordjeVuckovic/word-importer/internal/apperr"
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
)

const maxErrorBody = 4 * 1024

type ClientOption func(client *Client)

// Client upserts word rows through a PostgREST endpoint, as exposed by Supabase.
type Client struct {
	base       url.URL
	http       *http.Client
	apiKey     string
	table      string
	onConflict string
	resolution domain.ConflictResolution
}

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.http = httpClient
	}
}

func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, apperr.NewConfiguration("REST base URL is not set")
	}
	if cfg.APIKey == "" {
		return nil, apperr.NewConfiguration("REST API key is not set")
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, apperr.NewConfigurationWrap("invalid REST base URL", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, apperr.NewConfiguration(fmt.Sprintf("invalid REST base URL scheme %q", base.Scheme))
	}

	prefix := cfg.PathPrefix
	if prefix == "" {
		prefix = DefaultPathPrefix
	}
	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}
	onConflict := cfg.ConflictColumn
	if onConflict == "" {
		onConflict = domain.DefaultConflictColumn
	}
	resolution := cfg.Resolution
	if resolution == "" {
		resolution = domain.IgnoreDuplicates
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &Client{
		base:       *base.JoinPath(prefix, table),
		http:       &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		table:      table,
		onConflict: onConflict,
		resolution: resolution,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Upsert posts words as a JSON array of {"word": ...} rows.
func (c *Client) Upsert(ctx context.Context, words []domain.Word) error {
	if len(words) == 0 {
		return nil
	}

	body, err := json.Marshal(domain.ToRows(words))
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}

	reqURL := c.base
	q := reqURL.Query()
	q.Set("on_conflict", c.onConflict)
	reqURL.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}

	request.Header.Set("apikey", c.apiKey)
	request.Header.Set("Authorization", "Bearer "+c.apiKey)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Prefer", "resolution="+string(c.resolution)+",return=minimal")

	resp, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("upsert into %s: %w", c.table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newHTTPError(resp.StatusCode, respBody)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Healthy checks that the endpoint answers for the configured table.
func (c *Client) Healthy(ctx context.Context) bool {
	reqURL := c.base
	q := reqURL.Query()
	q.Set("select", c.onConflict)
	q.Set("limit", "1")
	reqURL.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return false
	}
	request.Header.Set("apikey", c.apiKey)
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(request)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusPartialContent
}

func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) String() string {
	return strings.TrimSuffix(c.base.String(), "/")
}

// Package api implements the HTTP client for the adforge backend: data
// source discovery, column/row sampling, rule listing, and generation
// submission.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/rules"
)

// DefaultBaseURL is where `adforge serve` listens.
const DefaultBaseURL = "http://localhost:8095"

// DefaultSampleLimit bounds how many preview rows the wizard fetches. The
// preview re-aggregates on every keystroke, so the sample stays small.
const DefaultSampleLimit = 150

// Client talks to the backend API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Logger
}

// New creates a client. Empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(20), 5),
		log:     log,
	}
}

// GenerationRequest is the submission payload assembled from the wizard
// state.
type GenerationRequest struct {
	DataSourceID string                      `json:"data_source_id"`
	Campaign     models.CampaignConfig       `json:"campaign"`
	Hierarchy    models.HierarchyConfig      `json:"hierarchy"`
	Platforms    []models.Platform           `json:"platforms"`
	Budgets      map[models.Platform]float64 `json:"budgets,omitempty"`
	RuleIDs      []string                    `json:"rule_ids,omitempty"`
}

// ListDataSources fetches the connected data sources.
func (c *Client) ListDataSources(ctx context.Context) ([]models.DataSource, error) {
	var out []models.DataSource
	if err := c.get(ctx, "/api/datasources", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetColumns fetches the column snapshot for one data source.
func (c *Client) GetColumns(ctx context.Context, sourceID string) ([]models.Column, error) {
	var out []models.Column
	path := "/api/datasources/" + url.PathEscape(sourceID) + "/columns"
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSampleRows fetches up to limit preview rows for one data source.
func (c *Client) GetSampleRows(ctx context.Context, sourceID string, limit int) ([]models.DataRow, error) {
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	var out []models.DataRow
	path := fmt.Sprintf("/api/datasources/%s/rows?limit=%d", url.PathEscape(sourceID), limit)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRules fetches the saved filtering rules.
func (c *Client) ListRules(ctx context.Context) ([]rules.Rule, error) {
	var out []rules.Rule
	if err := c.get(ctx, "/api/rules", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitGeneration posts the assembled configuration and returns the
// backend's result.
func (c *Client) SubmitGeneration(ctx context.Context, req GenerationRequest) (*models.GenerationResult, error) {
	var out models.GenerationResult
	if err := c.post(ctx, "/api/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(payload))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

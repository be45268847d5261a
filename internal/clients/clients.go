// Package clients holds HTTP adapters for the external enrichment
// services the planner consults. Both services are advisory: callers
// wrap them in fallbacks, so the adapters report failures as plain
// errors and never retry.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/compatibility"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

const defaultHTTPTimeout = 5 * time.Second

func defaultedClient(httpClient *http.Client) *http.Client {
	if httpClient != nil {
		return httpClient
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// CompatibilityClient calls the hosted species-compatibility service.
type CompatibilityClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCompatibilityClient builds a client for the given base URL. A nil
// http.Client gets a default with a short timeout.
func NewCompatibilityClient(baseURL string, httpClient *http.Client) *CompatibilityClient {
	return &CompatibilityClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: defaultedClient(httpClient),
	}
}

// Classify implements compatibility.Classifier.
func (c *CompatibilityClient) Classify(ctx context.Context, species []string) (domain.CompatibilityVerdict, error) {
	payload, err := json.Marshal(struct {
		Species []string `json:"species"`
	}{Species: species})
	if err != nil {
		return domain.CompatibilityVerdict{}, fmt.Errorf("failed to encode compatibility request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/compatibility", bytes.NewReader(payload))
	if err != nil {
		return domain.CompatibilityVerdict{}, fmt.Errorf("failed to build compatibility request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CompatibilityVerdict{}, fmt.Errorf("compatibility request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.CompatibilityVerdict{}, fmt.Errorf("compatibility service returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string   `json:"status"`
		Issues []string `json:"issues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.CompatibilityVerdict{}, fmt.Errorf("failed to decode compatibility response: %w", err)
	}

	status, ok := compatibility.ParseStatus(body.Status)
	if !ok {
		return domain.CompatibilityVerdict{}, fmt.Errorf("compatibility service returned unknown status %q", body.Status)
	}
	return domain.CompatibilityVerdict{Status: status, Issues: body.Issues}, nil
}

// WeightOracleClient calls the hosted fish-weight estimation service.
type WeightOracleClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewWeightOracleClient builds a client for the given base URL. A nil
// http.Client gets a default with a short timeout.
func NewWeightOracleClient(baseURL string, httpClient *http.Client) *WeightOracleClient {
	return &WeightOracleClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: defaultedClient(httpClient),
	}
}

// EstimateWeightGrams implements feeding.WeightOracle. The oracle's
// answer is advisory; validation of the value is left to the caller.
func (c *WeightOracleClient) EstimateWeightGrams(ctx context.Context, species string) (float64, error) {
	endpoint := c.baseURL + "/v1/weights?species=" + url.QueryEscape(species)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build weight request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("weight request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("weight oracle returned status %d", resp.StatusCode)
	}

	var body struct {
		Grams float64 `json:"grams"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode weight response: %w", err)
	}
	return body.Grams, nil
}

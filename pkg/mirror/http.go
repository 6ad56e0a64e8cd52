package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPMirror posts submissions to a collector exposing POST /feedback
type HTTPMirror struct {
	baseURL string
	client  *http.Client
}

// NewHTTPMirror creates a mirror for the collector at baseURL
func NewHTTPMirror(baseURL string) *HTTPMirror {
	return &HTTPMirror{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Name returns the mirror name
func (m *HTTPMirror) Name() string {
	return "http:" + m.baseURL
}

// Submit posts the verdict and returns the collector's counters
func (m *HTTPMirror) Submit(ctx context.Context, sub Submission) (*Counters, error) {
	jsonData, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/feedback", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feedback collector returned status %d: %s", resp.StatusCode, string(body))
	}

	var counters Counters
	if err := json.NewDecoder(resp.Body).Decode(&counters); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &counters, nil
}

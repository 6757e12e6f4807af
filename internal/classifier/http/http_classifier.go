// Package http calls an external document classification API over HTTP.
package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"obrapass/internal/config"
	"obrapass/internal/port"
)

// Classifier implements port.DocumentClassifier against a JSON HTTP API.
type Classifier struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClassifier creates an HTTP-backed document classifier.
func NewClassifier(cfg *config.ClassifierConfig) *Classifier {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Classifier{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

type classifyResponse struct {
	Category   string          `json:"categoria"`
	Confidence float64         `json:"confianza"`
	Extraction json.RawMessage `json:"metadatos"`
}

func (c *Classifier) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyResult, error) {
	reqBody := classifyRequest{
		FileName:    input.FileName,
		ContentType: input.ContentType,
		Content:     base64.StdEncoding.EncodeToString(input.Content),
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling classifier API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed classifyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	return &port.ClassifyResult{
		Category:   parsed.Category,
		Confidence: parsed.Confidence,
		Extraction: parsed.Extraction,
	}, nil
}

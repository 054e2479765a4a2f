// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gemini calls the Gemini generateContent API. It implements
// agent.Backend for the pipeline stages. Calls are single-shot: no retry and
// no client-imposed timeout; failures surface as agent.UpstreamError.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/researcher-agent/internal/agent"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

// apiBaseURL is the Gemini API base. Package-level var for test substitution.
var apiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is used when the configuration does not name one.
const DefaultModel = "gemini-2.5-flash"

// Client issues generateContent requests for a fixed model.
type Client struct {
	apiKey string
	model  string
	client *http.Client
}

// NewClient builds a Client from cfg. A nil httpClient falls back to
// http.DefaultClient (timeout policy is the client's default, none of ours).
func NewClient(cfg types.AIConfig, httpClient *http.Client) *Client {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{apiKey: cfg.APIKey, model: model, client: httpClient}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// generateRequest is the request body for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the subset of the generateContent response we read.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content content `json:"content"`
}

// apiError is the error envelope Gemini returns on non-200 responses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends one prompt and returns the concatenated text of the first
// candidate. It blocks until the API responds or fails.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", apiBaseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &agent.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &agent.UpstreamError{
			Status:  resp.StatusCode,
			Message: upstreamMessage(body),
		}
	}

	var gResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", &agent.UpstreamError{Message: "decoding response body", Err: err}
	}

	if len(gResp.Candidates) == 0 {
		return "", &agent.UpstreamError{Message: "response contained no candidates"}
	}

	var b strings.Builder
	for _, p := range gResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", &agent.UpstreamError{Message: "response contained no text"}
	}
	return text, nil
}

// upstreamMessage pulls the error description out of a non-200 body. Falls
// back to the raw body when the error envelope does not parse.
func upstreamMessage(body []byte) string {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Error.Message != "" {
		if ae.Error.Status != "" {
			return fmt.Sprintf("%s (%s)", ae.Error.Message, ae.Error.Status)
		}
		return ae.Error.Message
	}
	return strings.TrimSpace(string(body))
}

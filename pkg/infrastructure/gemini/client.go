// Package gemini implements the AI transport against the Gemini REST API.
//
// The client deliberately returns the raw response body instead of a decoded
// structure: the recommendation parser owns the envelope contract, including
// its failure handling, and must see exactly what the provider sent.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	httputil "github.com/fitsage/server/pkg/infrastructure/http"
)

// DefaultTimeout bounds a single generateContent call. There is no retry
// here; callers fall back to a canned recommendation on any failure.
const DefaultTimeout = 30 * time.Second

type Client struct {
	HTTPClient *http.Client
	APIURL     string
	APIKey     string
}

// NewClient builds a Gemini client. apiURL must end at the key query
// parameter; the key is appended verbatim.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		APIURL:     apiURL,
		APIKey:     apiKey,
	}
}

// generateContent request body shape. Only the text part is used.
type requestBody struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Send posts the prompt and returns the raw response body text.
func (c *Client) Send(ctx context.Context, prompt string) (string, error) {
	payload := requestBody{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+c.APIKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.ParseErrorResponse(resp); err != nil {
		return "", fmt.Errorf("gemini response: %w", err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	return string(raw), nil
}

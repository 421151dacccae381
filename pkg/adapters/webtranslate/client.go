// Package webtranslate calls the public Google Translate web endpoint.
package webtranslate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/user/harview/pkg/ports"
)

// DefaultBaseURL is the endpoint used by the translate.google.com web client.
const DefaultBaseURL = "https://translate.googleapis.com/translate_a/single"

var (
	// ErrStatus is returned for non-200 responses.
	ErrStatus = errors.New("webtranslate: unexpected status")

	// ErrMalformed is returned when the response has no translated segments.
	ErrMalformed = errors.New("webtranslate: malformed response")
)

// Client implements ports.Translator.
type Client struct {
	BaseURL    string
	Source     string // Source language code, "en" by default
	HTTPClient *http.Client
}

// New creates a client for the public endpoint.
func New() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Source:     "en",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Translate translates text into the target language code.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(text, target), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	return ParseResponse(body)
}

func (c *Client) requestURL(text, target string) string {
	source := c.Source
	if source == "" {
		source = "en"
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)
	return base + "?" + q.Encode()
}

// ParseResponse extracts the translation from the endpoint's nested-array
// JSON. The first element lists segments; element 0 of each is translated text.
func ParseResponse(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	if len(root) == 0 {
		return "", ErrMalformed
	}

	var segments [][]any
	if err := json.Unmarshal(root[0], &segments); err != nil {
		return "", fmt.Errorf("%w: segments: %s", ErrMalformed, err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrMalformed
	}
	return out, nil
}

var _ ports.Translator = (*Client)(nil)

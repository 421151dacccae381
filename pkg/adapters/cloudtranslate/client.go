// Package cloudtranslate implements ports.Translator with the Google Cloud
// Translation API (v2).
package cloudtranslate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"github.com/user/harview/pkg/ports"
)

var (
	// ErrNoAPIKey is returned by New when no key is configured.
	ErrNoAPIKey = errors.New("cloudtranslate: API key required")

	// ErrEmptyResponse is returned when the API answers without translations.
	ErrEmptyResponse = errors.New("cloudtranslate: empty response")
)

// Client wraps a Cloud Translation client.
type Client struct {
	client *translate.Client
	source language.Tag
}

// New creates a client authenticated with apiKey.
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	c, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}
	return &Client{client: c, source: language.English}, nil
}

// Translate translates text into the target language code.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	tag, err := ParseTarget(target)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Translate(ctx, []string{text}, tag, &translate.Options{
		Source: c.source,
		Format: translate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("translate %q: %w", text, err)
	}
	if len(resp) == 0 || strings.TrimSpace(resp[0].Text) == "" {
		return "", ErrEmptyResponse
	}
	return resp[0].Text, nil
}

// Close releases the underlying client.
func (c *Client) Close() error {
	return c.client.Close()
}

// ParseTarget validates a BCP 47 language code.
func ParseTarget(code string) (language.Tag, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return language.Und, fmt.Errorf("invalid target language %q: %w", code, err)
	}
	return tag, nil
}

var _ ports.Translator = (*Client)(nil)

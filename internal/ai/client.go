// Package ai bridges the Gemini API for catalog lookups and the
// recommendation chat. All features degrade gracefully: without an API key
// the client reports unavailable and operations fail fast without any
// network call.
package ai

import (
	"context"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/booqapp/booq-server/internal/errors"
)

const defaultModel = "gemini-2.5-flash"

// Client wraps the Gemini API client.
type Client struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// New creates a new AI client. An empty apiKey yields a client whose
// operations return ErrUnavailable; callers use Available to branch.
func New(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if model == "" {
		model = defaultModel
	}

	c := &Client{
		model:  model,
		logger: logger,
	}

	if apiKey == "" {
		if logger != nil {
			logger.Info("AI features disabled, no API key configured")
		}
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create AI client")
	}
	c.client = client

	if logger != nil {
		logger.Info("AI client initialized", "model", model)
	}
	return c, nil
}

// Available reports whether AI features are configured.
func (c *Client) Available() bool {
	return c != nil && c.client != nil
}

// Close closes the underlying API client. The genai SDK client holds no
// resources that need explicit release, so this is a no-op.
func (c *Client) Close() error {
	return nil
}

// classifyError maps upstream failures onto the domain error taxonomy.
// A rejected key is surfaced distinctly so the frontend can tell the user to
// fix their configuration instead of retrying.
func classifyError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "API key not valid") || strings.Contains(msg, "API_KEY_INVALID") {
		return errors.ErrInvalidCredential.WithCause(err)
	}
	return errors.Upstream("book provider request failed").WithCause(err)
}

package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/booqapp/booq-server/internal/errors"
)

const searchPrompt = `You are a book catalog assistant. Given the query below,
return a JSON array of up to 3 matching books. Each element must be an object
with keys "title" and "author", and may include "description" (one or two
sentences), "pages" (integer), "publishedDate" (string), and "genres" (array
of strings). Return only JSON, no prose.

Query: %s`

// searchTemperature keeps structured lookups close to deterministic.
var searchTemperature = float32(0.3)

// SearchBooks asks the model for up to three books matching a free-text
// query. Returns ErrUnavailable without any network call when no API key is
// configured.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]Suggestion, error) {
	if !c.Available() {
		return nil, errors.Unavailable("AI lookup is not configured")
	}

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(searchPrompt, query), genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &searchTemperature,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	suggestions := parseSuggestions(resp.Text())
	if c.logger != nil {
		c.logger.Debug("AI book search", "query", query, "results", len(suggestions))
	}
	return suggestions, nil
}

const sparkPrompt = `Write one short, thought-provoking discussion question
about the book "%s" by %s. Return only the question, no preamble.`

// Spark produces a one-shot discussion question for a book.
func (c *Client) Spark(ctx context.Context, title, author string) (string, error) {
	if !c.Available() {
		return "", errors.Unavailable("AI spark is not configured")
	}

	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(sparkPrompt, title, author), genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", classifyError(err)
	}

	return resp.Text(), nil
}

// Package googlebooks is a rate-limited client for the public Google Books
// volumes API, used to prefill book drafts from a title or ISBN search.
package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/booqapp/booq-server/internal/normalize"
	"github.com/booqapp/booq-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"

	// The public endpoint tolerates modest traffic; stay well under it.
	defaultRPS   = 2.0
	defaultBurst = 5

	defaultTimeout = 30 * time.Second

	// How many volumes a single lookup returns.
	defaultMaxResults = 10
)

// Client is a rate-limited Google Books API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
	baseURL string
}

// New creates a new Google Books client.
func New(logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		baseURL: defaultBaseURL,
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Search looks up volumes matching the free-text query and returns
// normalized results suitable for prefilling a draft. Entries without a
// title are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if query == "" {
		return nil, wrapError("search", query, ErrBadRequest)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(defaultMaxResults))

	body, err := c.doRequest(ctx, "/volumes", params)
	if err != nil {
		return nil, wrapError("search", query, err)
	}

	var resp volumesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", query, fmt.Errorf("parse response: %w", err))
	}

	results := make([]Result, 0, len(resp.Items))
	for i := range resp.Items {
		v := &resp.Items[i]
		info := v.VolumeInfo
		if info.Title == "" {
			continue
		}

		var author string
		if len(info.Authors) > 0 {
			author = info.Authors[0]
		}

		results = append(results, Result{
			VolumeID:      v.ID,
			Title:         info.Title,
			Author:        author,
			Description:   cleanDescription(info.Description),
			CoverURL:      selectCoverURL(info.ImageLinks),
			Publisher:     info.Publisher,
			PublishedDate: info.PublishedDate,
			Pages:         info.PageCount,
			Genres:        info.Categories,
			Language:      normalize.Language(info.Language),
			ISBN:          selectISBN(info.IndustryIdentifiers),
		})
	}

	return results, nil
}

// doRequest executes a rate-limited GET against the API.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, "googlebooks"); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Booq/1.0")

	if c.logger != nil {
		c.logger.Debug("google books request", "path", path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrBadRequest
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// selectCoverURL prefers the larger thumbnail and upgrades the scheme: the
// API still hands out http URLs for covers.
func selectCoverURL(links imageLinks) string {
	u := links.Thumbnail
	if u == "" {
		u = links.SmallThumbnail
	}
	if len(u) > 7 && u[:7] == "http://" {
		u = "https://" + u[7:]
	}
	return u
}

// selectISBN prefers ISBN_13 over ISBN_10.
func selectISBN(ids []industryIdentifier) string {
	var isbn10 string
	for _, id := range ids {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

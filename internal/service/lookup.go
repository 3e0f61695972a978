package service

import (
	"context"
	"log/slog"

	"github.com/booqapp/booq-server/internal/ai"
	domainerrors "github.com/booqapp/booq-server/internal/errors"
	"github.com/booqapp/booq-server/internal/metadata/googlebooks"
)

// LookupService fronts the external catalog providers. Both providers
// return partial drafts only; nothing is written until the user confirms an
// Add.
type LookupService struct {
	books  *googlebooks.Client
	ai     *ai.Client
	logger *slog.Logger
}

// NewLookupService creates a new lookup service.
func NewLookupService(books *googlebooks.Client, aiClient *ai.Client, logger *slog.Logger) *LookupService {
	return &LookupService{
		books:  books,
		ai:     aiClient,
		logger: logger,
	}
}

// SearchCatalog queries the Google Books API. A limit <= 0 returns
// everything the provider gave back.
func (s *LookupService) SearchCatalog(ctx context.Context, query string, limit int) ([]googlebooks.Result, error) {
	if query == "" {
		return nil, domainerrors.Validation("search query cannot be empty")
	}

	results, err := s.books.Search(ctx, query)
	if err != nil {
		s.logger.Warn("catalog lookup failed", "query", query, "error", err)
		return nil, domainerrors.Upstream("book catalog request failed").WithCause(err)
	}
	if results == nil {
		results = []googlebooks.Result{}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SearchAI asks the model for structured matches. Fails fast with
// UNAVAILABLE when no credential is configured.
func (s *LookupService) SearchAI(ctx context.Context, query string) ([]ai.Suggestion, error) {
	if query == "" {
		return nil, domainerrors.Validation("search query cannot be empty")
	}

	suggestions, err := s.ai.SearchBooks(ctx, query)
	if err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []ai.Suggestion{}
	}
	return suggestions, nil
}

// Spark produces a one-shot discussion question for a book.
func (s *LookupService) Spark(ctx context.Context, title, author string) (string, error) {
	if title == "" || author == "" {
		return "", domainerrors.Validation("title and author are required")
	}
	return s.ai.Spark(ctx, title, author)
}

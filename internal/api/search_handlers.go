package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/search",
		Summary:     "Search the collection",
		Description: "Full-text search over titles, authors, notes, and genres",
		Tags:        []string{"Books"},
	}, s.handleSearchBooks)
}

// SearchInput contains parameters for searching the collection.
type SearchInput struct {
	Query string `query:"q" minLength:"1" maxLength:"200" doc:"Search query"`
	Limit int    `query:"limit" doc:"Max results (default 25)"`
}

// SearchOutput wraps search results for huma.
type SearchOutput struct {
	Body search.Result
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Search.Search(ctx, input.Query, input.Limit)
	if err != nil {
		s.logger.Error("Collection search failed", "error", err, "query", input.Query)
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/ai"
	"github.com/booqapp/booq-server/internal/metadata/googlebooks"
)

func (s *Server) registerLookupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "lookupCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/lookup/search",
		Summary:     "Search the book catalog",
		Description: "Searches Google Books and returns partial book drafts",
		Tags:        []string{"Lookup"},
	}, s.handleLookupCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "lookupAI",
		Method:      http.MethodGet,
		Path:        "/api/v1/lookup/ai",
		Summary:     "Free-form AI book lookup",
		Description: "Asks the AI model to suggest up to three books matching a description",
		Tags:        []string{"Lookup"},
	}, s.handleLookupAI)

	huma.Register(s.api, huma.Operation{
		OperationID: "lookupSpark",
		Method:      http.MethodGet,
		Path:        "/api/v1/lookup/spark",
		Summary:     "Generate a discussion question",
		Description: "Produces a short discussion question for a book",
		Tags:        []string{"Lookup"},
	}, s.handleLookupSpark)
}

// === DTOs ===

// LookupQueryInput contains a free-text lookup query.
type LookupQueryInput struct {
	Query string `query:"q" minLength:"1" maxLength:"500" doc:"Lookup query"`
}

// CatalogLookupInput contains a catalog query with an optional result cap.
type CatalogLookupInput struct {
	Query string `query:"q" minLength:"1" maxLength:"500" doc:"Lookup query"`
	Limit int    `query:"limit" maximum:"20" doc:"Maximum results to return (0 = provider default)"`
}

// SparkInput identifies the book to generate a discussion question for.
type SparkInput struct {
	Title  string `query:"title" minLength:"1" maxLength:"300" doc:"Book title"`
	Author string `query:"author" maxLength:"200" doc:"Book author"`
}

// CatalogLookupOutput wraps catalog search results for huma.
type CatalogLookupOutput struct {
	Body []googlebooks.Result
}

// AILookupOutput wraps AI book suggestions for huma.
type AILookupOutput struct {
	Body []ai.Suggestion
}

// SparkOutput wraps a generated discussion question for huma.
type SparkOutput struct {
	Body struct {
		Question string `json:"question" doc:"Discussion question"`
	}
}

// === Handlers ===

func (s *Server) handleLookupCatalog(ctx context.Context, input *CatalogLookupInput) (*CatalogLookupOutput, error) {
	results, err := s.services.Lookup.SearchCatalog(ctx, input.Query, input.Limit)
	if err != nil {
		s.logger.Error("Catalog lookup failed", "error", err, "query", input.Query)
		return nil, err
	}

	return &CatalogLookupOutput{Body: results}, nil
}

func (s *Server) handleLookupAI(ctx context.Context, input *LookupQueryInput) (*AILookupOutput, error) {
	suggestions, err := s.services.Lookup.SearchAI(ctx, input.Query)
	if err != nil {
		s.logger.Error("AI lookup failed", "error", err, "query", input.Query)
		return nil, err
	}

	return &AILookupOutput{Body: suggestions}, nil
}

func (s *Server) handleLookupSpark(ctx context.Context, input *SparkInput) (*SparkOutput, error) {
	question, err := s.services.Lookup.Spark(ctx, input.Title, input.Author)
	if err != nil {
		s.logger.Error("Spark generation failed", "error", err, "title", input.Title)
		return nil, err
	}

	out := &SparkOutput{}
	out.Body.Question = question
	return out, nil
}

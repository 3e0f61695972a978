package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/api/dto"
	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns all books in insertion order",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Add a book",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get a book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update a book",
		Description: "Replaces the book's editable fields with the submitted draft",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete a book",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/favorite",
		Summary:     "Toggle favorite",
		Description: "Flips the book's favorite flag and syncs the profile favorites list",
		Tags:        []string{"Books"},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "setBookStatus",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}/status",
		Summary:     "Set reading status",
		Tags:        []string{"Books"},
	}, s.handleSetStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "setBookProgress",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}/progress",
		Summary:     "Set reading progress",
		Description: "Updates the current page, clamped to the book's page count",
		Tags:        []string{"Books"},
	}, s.handleSetProgress)
}

// === DTOs ===

// BookDraftInput wraps a book draft for create and update requests.
type BookDraftInput struct {
	Body service.BookDraft
}

// BookIDInput identifies a book by path parameter.
type BookIDInput struct {
	dto.IDParam
}

// BookDraftByIDInput combines a book ID with a draft body.
type BookDraftByIDInput struct {
	dto.IDParam
	Body service.BookDraft
}

// StatusUpdateInput sets a book's reading status.
type StatusUpdateInput struct {
	dto.IDParam
	Body struct {
		Status string `json:"status" doc:"New reading status: to_read, in_progress, or read"`
	}
}

// ProgressUpdateInput sets a book's current page.
type ProgressUpdateInput struct {
	dto.IDParam
	Body struct {
		CurrentPage int `json:"current_page" minimum:"0" doc:"Current page number"`
	}
}

// BookOutput wraps a single book for huma.
type BookOutput struct {
	Body *domain.Book
}

// BookListOutput wraps a book list for huma.
type BookListOutput struct {
	Body []*domain.Book
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*BookListOutput, error) {
	books, err := s.services.Library.ListBooks(ctx)
	if err != nil {
		s.logger.Error("Failed to list books", "error", err)
		return nil, err
	}

	return &BookListOutput{Body: books}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *BookDraftInput) (*BookOutput, error) {
	book, err := s.services.Library.AddBook(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: book}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Library.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: book}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *BookDraftByIDInput) (*BookOutput, error) {
	book, err := s.services.Library.UpdateBook(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: book}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*dto.MessageOutput, error) {
	if err := s.services.Library.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}

	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "book deleted"}}, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	book, err := s.services.Library.ToggleFavorite(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: book}, nil
}

func (s *Server) handleSetStatus(ctx context.Context, input *StatusUpdateInput) (*BookOutput, error) {
	book, err := s.services.Library.SetStatus(ctx, input.ID, domain.BookStatus(input.Body.Status))
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: book}, nil
}

func (s *Server) handleSetProgress(ctx context.Context, input *ProgressUpdateInput) (*BookOutput, error) {
	book, err := s.services.Library.SetProgress(ctx, input.ID, input.Body.CurrentPage)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: book}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/api/dto"
	"github.com/booqapp/booq-server/internal/domain"
)

func (s *Server) registerShelfRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves",
		Summary:     "List shelves",
		Description: "Returns all custom shelves in creation order",
		Tags:        []string{"Shelves"},
	}, s.handleListShelves)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createShelf",
		Method:        http.MethodPost,
		Path:          "/api/v1/shelves",
		Summary:       "Create a shelf",
		Tags:          []string{"Shelves"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameShelf",
		Method:      http.MethodPatch,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Rename a shelf",
		Tags:        []string{"Shelves"},
	}, s.handleRenameShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteShelf",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Delete a shelf",
		Description: "Deletes the shelf and untags it from every book",
		Tags:        []string{"Shelves"},
	}, s.handleDeleteShelf)
}

// === DTOs ===

// ShelfNameInput carries a shelf name for create requests.
type ShelfNameInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"120" doc:"Shelf display name"`
	}
}

// ShelfRenameInput carries a shelf ID and its new name.
type ShelfRenameInput struct {
	dto.IDParam
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"120" doc:"New shelf display name"`
	}
}

// ShelfIDInput identifies a shelf by path parameter.
type ShelfIDInput struct {
	dto.IDParam
}

// ShelfOutput wraps a single shelf for huma.
type ShelfOutput struct {
	Body *domain.CustomShelf
}

// ShelfListOutput wraps a shelf list for huma.
type ShelfListOutput struct {
	Body []*domain.CustomShelf
}

// === Handlers ===

func (s *Server) handleListShelves(ctx context.Context, _ *struct{}) (*ShelfListOutput, error) {
	shelves, err := s.services.Shelf.ListShelves(ctx)
	if err != nil {
		s.logger.Error("Failed to list shelves", "error", err)
		return nil, err
	}

	return &ShelfListOutput{Body: shelves}, nil
}

func (s *Server) handleCreateShelf(ctx context.Context, input *ShelfNameInput) (*ShelfOutput, error) {
	shelf, err := s.services.Shelf.CreateShelf(ctx, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: shelf}, nil
}

func (s *Server) handleRenameShelf(ctx context.Context, input *ShelfRenameInput) (*ShelfOutput, error) {
	shelf, err := s.services.Shelf.RenameShelf(ctx, input.ID, input.Body.Name)
	if err != nil {
		return nil, err
	}

	return &ShelfOutput{Body: shelf}, nil
}

func (s *Server) handleDeleteShelf(ctx context.Context, input *ShelfIDInput) (*dto.MessageOutput, error) {
	if err := s.services.Shelf.DeleteShelf(ctx, input.ID); err != nil {
		return nil, err
	}

	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "shelf deleted"}}, nil
}

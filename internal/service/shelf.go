package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/booqapp/booq-server/internal/domain"
	domainerrors "github.com/booqapp/booq-server/internal/errors"
	"github.com/booqapp/booq-server/internal/id"
	"github.com/booqapp/booq-server/internal/store"
	"github.com/booqapp/booq-server/internal/util"
)

// ShelfService orchestrates custom shelf operations, including the cascade
// that untags books when a shelf is deleted.
type ShelfService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewShelfService creates a new shelf service.
func NewShelfService(store *store.Store, logger *slog.Logger) *ShelfService {
	return &ShelfService{
		store:  store,
		logger: logger,
	}
}

// CreateShelf creates a new custom shelf.
func (s *ShelfService) CreateShelf(ctx context.Context, name string) (*domain.CustomShelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, domainerrors.Validation("shelf name cannot be empty")
	}

	if err := s.checkNameAvailable(ctx, name, ""); err != nil {
		return nil, err
	}

	shelfID, err := id.Generate("custom")
	if err != nil {
		return nil, fmt.Errorf("generate shelf ID: %w", err)
	}

	now := time.Now()
	shelf := &domain.CustomShelf{
		ID:        shelfID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateShelf(ctx, shelf); err != nil {
		return nil, err
	}

	s.logger.Info("shelf created", "shelf_id", shelfID, "name", name)
	return shelf, nil
}

// RenameShelf changes a shelf's name.
func (s *ShelfService) RenameShelf(ctx context.Context, shelfID, name string) (*domain.CustomShelf, error) {
	if name == "" {
		return nil, domainerrors.Validation("shelf name cannot be empty")
	}

	if err := s.checkNameAvailable(ctx, name, shelfID); err != nil {
		return nil, err
	}

	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}

	shelf.Name = name
	shelf.UpdatedAt = time.Now()

	if err := s.store.UpdateShelf(ctx, shelf); err != nil {
		return nil, err
	}

	return shelf, nil
}

// checkNameAvailable rejects names that collapse to the same slug as an
// existing shelf, so "Cozy Mysteries" and "cozy-mysteries" cannot coexist.
// Renames skip the shelf being renamed.
func (s *ShelfService) checkNameAvailable(ctx context.Context, name, excludeID string) error {
	slug := util.NormalizeShelfSlug(name)

	shelves, err := s.store.ListShelves(ctx)
	if err != nil {
		return fmt.Errorf("list shelves for name check: %w", err)
	}

	for _, shelf := range shelves {
		if shelf.ID == excludeID {
			continue
		}
		if util.NormalizeShelfSlug(shelf.Name) == slug {
			return domainerrors.Conflict(fmt.Sprintf("a shelf named %q already exists", shelf.Name))
		}
	}
	return nil
}

// DeleteShelf removes a shelf and untags every book carrying it. Books are
// never deleted by the cascade; each untag is an ordinary book update so
// clients see it as a change event.
func (s *ShelfService) DeleteShelf(ctx context.Context, shelfID string) error {
	if _, err := s.store.GetShelf(ctx, shelfID); err != nil {
		return err
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("list books for shelf cascade: %w", err)
	}

	var untagged int
	for _, book := range books {
		if !book.RemoveFromShelf(shelfID) {
			continue
		}
		book.UpdatedAt = time.Now()
		if err := s.store.UpdateBook(ctx, book); err != nil {
			return fmt.Errorf("untag book %s: %w", book.ID, err)
		}
		untagged++
	}

	if err := s.store.DeleteShelf(ctx, shelfID); err != nil {
		return err
	}

	s.logger.Info("shelf deleted", "shelf_id", shelfID, "books_untagged", untagged)
	return nil
}

// GetShelf retrieves a shelf by ID.
func (s *ShelfService) GetShelf(ctx context.Context, shelfID string) (*domain.CustomShelf, error) {
	return s.store.GetShelf(ctx, shelfID)
}

// ListShelves returns all custom shelves in creation order.
func (s *ShelfService) ListShelves(ctx context.Context) ([]*domain.CustomShelf, error) {
	shelves, err := s.store.ListShelves(ctx)
	if err != nil {
		return nil, err
	}
	if shelves == nil {
		shelves = []*domain.CustomShelf{}
	}
	return shelves, nil
}

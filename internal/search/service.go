package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/booqapp/booq-server/internal/domain"
)

// BookLister supplies the full collection for index rebuilds.
type BookLister interface {
	ListBooks(ctx context.Context) ([]*domain.Book, error)
}

// Service keeps the search index in sync with the collection. It implements
// the store's SearchIndexer hook.
type Service struct {
	index  *Index
	logger *slog.Logger
}

// NewService creates a search service over an index.
func NewService(index *Index, logger *slog.Logger) *Service {
	return &Service{
		index:  index,
		logger: logger,
	}
}

// IndexBook adds or updates a book in the index.
func (s *Service) IndexBook(_ context.Context, book *domain.Book) error {
	return s.index.IndexDocument(FromBook(book))
}

// DeleteBook removes a book from the index.
func (s *Service) DeleteBook(_ context.Context, bookID string) error {
	return s.index.DeleteDocument(bookID)
}

// Search runs a free-text query over the collection.
func (s *Service) Search(ctx context.Context, q string, limit int) (*Result, error) {
	return s.index.Search(ctx, q, limit)
}

// Rebuild repopulates the index from the store. Called at startup so the
// index never drifts from the collection across restarts or mapping
// changes.
func (s *Service) Rebuild(ctx context.Context, lister BookLister) error {
	books, err := lister.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("list books for rebuild: %w", err)
	}

	docs := make([]*Document, 0, len(books))
	for _, book := range books {
		docs = append(docs, FromBook(book))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index books: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("search index rebuilt", "books", len(docs))
	}
	return nil
}

// DocumentCount reports how many books are indexed.
func (s *Service) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Close releases the underlying index.
func (s *Service) Close() error {
	return s.index.Close()
}

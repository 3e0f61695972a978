package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/booqapp/booq-server/internal/domain"
)

// EventEmitter is the interface for broadcasting change events.
// Store uses this to notify connected clients without depending on the SSE
// implementation.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// SearchIndexer keeps the full-text index in sync with the collection.
// Set after store creation to avoid a circular dependency: the search service
// needs the store to rebuild its index at startup.
type SearchIndexer interface {
	IndexBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexBook is a no-op.
func (NoopSearchIndexer) IndexBook(context.Context, *domain.Book) error { return nil }

// DeleteBook is a no-op.
func (NoopSearchIndexer) DeleteBook(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store wraps a Badger database instance holding the entire collection:
// books, shelves, the profile singleton, the section layout, and the
// activity log.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	eventEmitter EventEmitter

	searchIndexer SearchIndexer
}

// New opens the Badger database at path. The emitter is required and used to
// broadcast store changes to connected clients.
func New(path string, logger *slog.Logger, emitter EventEmitter) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:           db,
		logger:       logger,
		eventEmitter: emitter,
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// emit broadcasts an event if an emitter is configured.
func (s *Store) emit(event any) {
	if s.eventEmitter != nil {
		s.eventEmitter.Emit(event)
	}
}

// indexBook pushes a book into the search index, logging failures instead of
// failing the write: search is a derived view and is rebuilt at startup.
func (s *Store) indexBook(ctx context.Context, book *domain.Book) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.IndexBook(ctx, book); err != nil && s.logger != nil {
		s.logger.Warn("failed to index book", "book_id", book.ID, "error", err)
	}
}

// unindexBook removes a book from the search index.
func (s *Store) unindexBook(ctx context.Context, bookID string) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.DeleteBook(ctx, bookID); err != nil && s.logger != nil {
		s.logger.Warn("failed to unindex book", "book_id", bookID, "error", err)
	}
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key.
func (s *Store) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

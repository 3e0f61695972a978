package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/sse"
)

// Book storage key prefixes. The created index uses zero-padded UnixNano so
// forward iteration yields insertion order, which is the collection's
// canonical listing order.
const (
	bookPrefix           = "book:"
	bookIdxCreatedPrefix = "book:idx:created:"
)

// createdStamp returns a fixed-width timestamp that sorts ascending.
func createdStamp(t time.Time) string {
	return fmt.Sprintf("%019d", t.UnixNano())
}

func bookCreatedKey(b *domain.Book) []byte {
	return []byte(bookIdxCreatedPrefix + createdStamp(b.CreatedAt) + ":" + b.ID)
}

// CreateBook stores a new book with its created index in a single
// transaction.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshaling book: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := []byte(bookPrefix + book.ID)
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists.WithMessage("book already exists")
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("setting primary key: %w", err)
		}

		// Created index: book:idx:created:{stamp}:{id} → "" (key-only)
		if err := txn.Set(bookCreatedKey(book), []byte{}); err != nil {
			return fmt.Errorf("setting created index: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	s.indexBook(ctx, book)
	s.emit(sse.NewBookCreated(book))

	if s.logger != nil {
		s.logger.Info("book created", "id", book.ID, "title", book.Title)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var book domain.Book
	if err := s.get([]byte(bookPrefix+id), &book); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}

	return &book, nil
}

// UpdateBook replaces a stored book. CreatedAt is immutable so the created
// index never moves.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(bookPrefix + book.ID)
	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if !exists {
		return ErrBookNotFound
	}

	if err := s.set(key, book); err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	s.indexBook(ctx, book)
	s.emit(sse.NewBookUpdated(book))
	return nil
}

// DeleteBook removes a book and its created index.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(bookPrefix + id)); err != nil {
			return fmt.Errorf("deleting primary key: %w", err)
		}
		if err := txn.Delete(bookCreatedKey(book)); err != nil {
			return fmt.Errorf("deleting created index: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.unindexBook(ctx, id)
	s.emit(sse.NewBookDeleted(id))

	if s.logger != nil {
		s.logger.Info("book deleted", "id", id)
	}
	return nil
}

// ListBooks returns all books in insertion order via the created index.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var books []*domain.Book

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // Key-only index
		opts.Prefix = []byte(bookIdxCreatedPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			key := string(it.Item().Key())
			// Key layout: prefix + 19-digit stamp + ":" + id.
			id := key[len(bookIdxCreatedPrefix)+19+1:]

			item, err := txn.Get([]byte(bookPrefix + id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					// Stale index entry, skip.
					continue
				}
				return err
			}

			var book domain.Book
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &book)
			}); err != nil {
				return fmt.Errorf("unmarshaling book %s: %w", id, err)
			}
			books = append(books, &book)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	return books, nil
}

package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/sse"
)

// Shelf storage key prefixes. Shelves carry a created index so listings come
// back in creation order, matching books.
const (
	shelfPrefix           = "shelf:"
	shelfIdxCreatedPrefix = "shelf:idx:created:"
)

func shelfCreatedKey(sh *domain.CustomShelf) []byte {
	return []byte(shelfIdxCreatedPrefix + createdStamp(sh.CreatedAt) + ":" + sh.ID)
}

// CreateShelf creates a new custom shelf.
func (s *Store) CreateShelf(ctx context.Context, shelf *domain.CustomShelf) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(shelf)
	if err != nil {
		return fmt.Errorf("marshaling shelf: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := []byte(shelfPrefix + shelf.ID)
		if _, err := txn.Get(key); err == nil {
			return ErrAlreadyExists.WithMessage("shelf already exists")
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("setting primary key: %w", err)
		}
		if err := txn.Set(shelfCreatedKey(shelf), []byte{}); err != nil {
			return fmt.Errorf("setting created index: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create shelf: %w", err)
	}

	s.emit(sse.NewShelfCreated(shelf))

	if s.logger != nil {
		s.logger.Info("shelf created", "id", shelf.ID, "name", shelf.Name)
	}
	return nil
}

// GetShelf retrieves a shelf by ID.
func (s *Store) GetShelf(ctx context.Context, id string) (*domain.CustomShelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var shelf domain.CustomShelf
	if err := s.get([]byte(shelfPrefix+id), &shelf); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrShelfNotFound
		}
		return nil, fmt.Errorf("get shelf %s: %w", id, err)
	}

	return &shelf, nil
}

// UpdateShelf replaces a stored shelf.
func (s *Store) UpdateShelf(ctx context.Context, shelf *domain.CustomShelf) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(shelfPrefix + shelf.ID)
	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check shelf exists: %w", err)
	}
	if !exists {
		return ErrShelfNotFound
	}

	if err := s.set(key, shelf); err != nil {
		return fmt.Errorf("update shelf: %w", err)
	}

	s.emit(sse.NewShelfUpdated(shelf))
	return nil
}

// DeleteShelf removes a shelf and its created index. Untagging the shelf's
// books is the service layer's job so the cascade shows up as book updates.
func (s *Store) DeleteShelf(ctx context.Context, id string) error {
	shelf, err := s.GetShelf(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(shelfPrefix + id)); err != nil {
			return fmt.Errorf("deleting primary key: %w", err)
		}
		if err := txn.Delete(shelfCreatedKey(shelf)); err != nil {
			return fmt.Errorf("deleting created index: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete shelf: %w", err)
	}

	s.emit(sse.NewShelfDeleted(id))

	if s.logger != nil {
		s.logger.Info("shelf deleted", "id", id, "name", shelf.Name)
	}
	return nil
}

// ListShelves returns all custom shelves in creation order.
func (s *Store) ListShelves(ctx context.Context) ([]*domain.CustomShelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var shelves []*domain.CustomShelf

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(shelfIdxCreatedPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			key := string(it.Item().Key())
			id := key[len(shelfIdxCreatedPrefix)+19+1:]

			item, err := txn.Get([]byte(shelfPrefix + id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}

			var shelf domain.CustomShelf
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &shelf)
			}); err != nil {
				return fmt.Errorf("unmarshaling shelf %s: %w", id, err)
			}
			shelves = append(shelves, &shelf)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}

	return shelves, nil
}

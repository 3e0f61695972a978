package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booqapp/booq-server/internal/domain"
)

func newTestShelf(id, name string, createdOffset time.Duration) *domain.CustomShelf {
	now := time.Now().Add(createdOffset)
	return &domain.CustomShelf{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateShelf(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	shelf := newTestShelf("custom-001", "Sci-Fi Classics", 0)

	require.NoError(t, store.CreateShelf(ctx, shelf))

	retrieved, err := store.GetShelf(ctx, shelf.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sci-Fi Classics", retrieved.Name)
}

func TestGetShelf_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetShelf(context.Background(), "custom-missing")
	assert.ErrorIs(t, err, ErrShelfNotFound)
}

func TestUpdateShelf(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	shelf := newTestShelf("custom-001", "Sci-Fi", 0)
	require.NoError(t, store.CreateShelf(ctx, shelf))

	shelf.Name = "Science Fiction"
	require.NoError(t, store.UpdateShelf(ctx, shelf))

	retrieved, err := store.GetShelf(ctx, shelf.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", retrieved.Name)
}

func TestDeleteShelf(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	shelf := newTestShelf("custom-001", "Sci-Fi", 0)
	require.NoError(t, store.CreateShelf(ctx, shelf))

	require.NoError(t, store.DeleteShelf(ctx, shelf.ID))

	_, err := store.GetShelf(ctx, shelf.ID)
	assert.ErrorIs(t, err, ErrShelfNotFound)

	err = store.DeleteShelf(ctx, shelf.ID)
	assert.ErrorIs(t, err, ErrShelfNotFound)
}

func TestListShelves_CreationOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for i := range 3 {
		shelf := newTestShelf(fmt.Sprintf("custom-%03d", i), fmt.Sprintf("Shelf %d", i), time.Duration(i)*time.Millisecond)
		require.NoError(t, store.CreateShelf(ctx, shelf))
	}

	shelves, err := store.ListShelves(ctx)
	require.NoError(t, err)
	require.Len(t, shelves, 3)

	for i, shelf := range shelves {
		assert.Equal(t, fmt.Sprintf("custom-%03d", i), shelf.ID)
	}
}

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

func TestCreateBook(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	book := newTestBook("book-001", 0)

	err := store.CreateBook(ctx, book)
	require.NoError(t, err)

	retrieved, err := store.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, retrieved.ID)
	assert.Equal(t, book.Title, retrieved.Title)
	assert.Equal(t, domain.StatusTBR, retrieved.Status)
}

func TestCreateBook_Duplicate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	book := newTestBook("book-001", 0)

	require.NoError(t, store.CreateBook(ctx, book))

	err := store.CreateBook(ctx, book)
	require.Error(t, err)
	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, ErrAlreadyExists.Code, storeErr.Code)
}

func TestGetBook_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetBook(context.Background(), "book-missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestUpdateBook(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	book := newTestBook("book-001", 0)
	require.NoError(t, store.CreateBook(ctx, book))

	book.Status = domain.StatusRead
	book.Rating = 4.5
	require.NoError(t, store.UpdateBook(ctx, book))

	retrieved, err := store.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRead, retrieved.Status)
	assert.Equal(t, 4.5, retrieved.Rating)
}

func TestUpdateBook_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.UpdateBook(context.Background(), newTestBook("book-ghost", 0))
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBook(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	book := newTestBook("book-001", 0)
	require.NoError(t, store.CreateBook(ctx, book))

	require.NoError(t, store.DeleteBook(ctx, book.ID))

	_, err := store.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestDeleteBook_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.DeleteBook(context.Background(), "book-missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestListBooks_InsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	for i := range 5 {
		book := newTestBook(fmt.Sprintf("book-%03d", i), time.Duration(i)*time.Millisecond)
		require.NoError(t, store.CreateBook(ctx, book))
	}

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 5)

	for i, book := range books {
		assert.Equal(t, fmt.Sprintf("book-%03d", i), book.ID)
	}
}

func TestListBooks_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	books, err := store.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, books)
}

package search

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booqapp/booq-server/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*Index, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewIndex(Options{
		DataPath: tmpDir,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func TestNewIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndex_IndexDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &Document{
		ID:     "book-123",
		Title:  "The Hobbit",
		Author: "J.R.R. Tolkien",
		Status: "read",
	}

	require.NoError(t, index.IndexDocument(doc))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndex_DeleteDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &Document{ID: "book-123", Title: "Test Book", Author: "Someone"}
	require.NoError(t, index.IndexDocument(doc))

	require.NoError(t, index.DeleteDocument("book-123"))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndex_Search(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*Document{
		{ID: "book-1", Title: "The Hobbit", Author: "J.R.R. Tolkien"},
		{ID: "book-2", Title: "The Lord of the Rings", Author: "J.R.R. Tolkien"},
		{ID: "book-3", Title: "Harry Potter", Author: "J.K. Rowling"},
	}
	require.NoError(t, index.IndexDocuments(docs))

	result, err := index.Search(context.Background(), "Tolkien", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
	assert.Len(t, result.Hits, 2)
}

func TestIndex_Search_Notes(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*Document{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert", Notes: "loved the worldbuilding"},
		{ID: "book-2", Title: "Hyperion", Author: "Dan Simmons"},
	}
	require.NoError(t, index.IndexDocuments(docs))

	result, err := index.Search(context.Background(), "worldbuilding", 10)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "book-1", result.Hits[0].ID)
}

func TestIndex_Search_TitleRanksAboveNotes(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*Document{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert"},
		{ID: "book-2", Title: "Hyperion", Author: "Dan Simmons", Notes: "reminded me of Dune"},
	}
	require.NoError(t, index.IndexDocuments(docs))

	result, err := index.Search(context.Background(), "Dune", 10)
	require.NoError(t, err)
	require.Len(t, result.Hits, 2)
	assert.Equal(t, "book-1", result.Hits[0].ID)
}

type staticLister struct {
	books []*domain.Book
}

func (l staticLister) ListBooks(context.Context) ([]*domain.Book, error) {
	return l.books, nil
}

func TestService_Rebuild(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	svc := NewService(index, nil)
	now := time.Now()

	lister := staticLister{books: []*domain.Book{
		{ID: "book-1", Title: "Dune", Author: "Frank Herbert", Status: domain.StatusRead, CreatedAt: now, UpdatedAt: now},
		{ID: "book-2", Title: "Hyperion", Author: "Dan Simmons", Status: domain.StatusTBR, CreatedAt: now, UpdatedAt: now},
	}}

	require.NoError(t, svc.Rebuild(context.Background(), lister))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	result, err := svc.Search(context.Background(), "Herbert", 10)
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "book-1", result.Hits[0].ID)
}

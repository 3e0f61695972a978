package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary store for testing
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "booq-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// newTestBook builds a book with a fixed created time offset so insertion
// order in tests is deterministic.
func newTestBook(id string, createdOffset time.Duration) *domain.Book {
	now := time.Now().Add(createdOffset)
	return &domain.Book{
		ID:             id,
		Title:          "Test Book " + id,
		Author:         "Test Author",
		Status:         domain.StatusTBR,
		CoverImageURL:  domain.PlaceholderCoverURL(id),
		CustomShelfIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile_DefaultWhenUnset(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	profile, err := store.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Voracious Reader", profile.Username)
	assert.Empty(t, profile.FavoriteBookIDs)
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	profile, err := store.GetProfile(ctx)
	require.NoError(t, err)

	profile.Username = "Ana"
	profile.Bio = "Mostly fantasy."
	profile.AddFavorite("book-001")
	profile.UpdatedAt = time.Now()

	require.NoError(t, store.SaveProfile(ctx, profile))

	retrieved, err := store.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", retrieved.Username)
	assert.Equal(t, "Mostly fantasy.", retrieved.Bio)
	assert.Equal(t, []string{"book-001"}, retrieved.FavoriteBookIDs)
}

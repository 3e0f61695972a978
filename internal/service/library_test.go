package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booqapp/booq-server/internal/domain"
	domainerrors "github.com/booqapp/booq-server/internal/errors"
	"github.com/booqapp/booq-server/internal/store"
)

func TestAddBook_Defaults(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{
		Title:  "Dune",
		Author: "Frank Herbert",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, book.ID)
	assert.Equal(t, domain.StatusTBR, book.Status)
	assert.Equal(t, domain.PlaceholderCoverURL(book.ID), book.CoverImageURL)
	assert.False(t, book.IsFavorite)
	assert.NotNil(t, book.CustomShelfIDs)
	assert.Empty(t, book.CustomShelfIDs)
}

func TestAddBook_ValidationFailures(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	_, err := env.library.AddBook(ctx, BookDraft{Author: "No Title"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.library.AddBook(ctx, BookDraft{Title: "No Author"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.library.AddBook(ctx, BookDraft{Title: "T", Author: "A", Status: "reading"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.library.AddBook(ctx, BookDraft{Title: "T", Author: "A", Rating: 3.3})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.library.AddBook(ctx, BookDraft{Title: "T", Author: "A", CustomShelfIDs: []string{"custom-ghost"}})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAddBook_ClampsProgress(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	book, err := env.library.AddBook(context.Background(), BookDraft{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Pages:       300,
		CurrentPage: 900,
	})
	require.NoError(t, err)
	assert.Equal(t, 300, book.CurrentPage)
}

func TestAddBook_FavoriteSyncsProfile(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{
		Title:      "Dune",
		Author:     "Frank Herbert",
		IsFavorite: true,
	})
	require.NoError(t, err)

	profile, err := env.profile.GetProfile(ctx)
	require.NoError(t, err)
	assert.True(t, profile.HasFavorite(book.ID))
}

func TestToggleFavorite_RoundTrip(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	toggled, err := env.library.ToggleFavorite(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	profile, err := env.profile.GetProfile(ctx)
	require.NoError(t, err)
	assert.True(t, profile.HasFavorite(book.ID))

	toggled, err = env.library.ToggleFavorite(ctx, book.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)

	profile, err = env.profile.GetProfile(ctx)
	require.NoError(t, err)
	assert.False(t, profile.HasFavorite(book.ID))
}

func TestDeleteBook_RemovesFavorite(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{Title: "Dune", Author: "Frank Herbert", IsFavorite: true})
	require.NoError(t, err)

	require.NoError(t, env.library.DeleteBook(ctx, book.ID))

	_, err = env.library.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, store.ErrBookNotFound)

	profile, err := env.profile.GetProfile(ctx)
	require.NoError(t, err)
	assert.False(t, profile.HasFavorite(book.ID))
}

func TestFavoritesInvariant_AfterMixedOperations(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()

	a, err := env.library.AddBook(ctx, BookDraft{Title: "A", Author: "x", IsFavorite: true})
	require.NoError(t, err)
	b, err := env.library.AddBook(ctx, BookDraft{Title: "B", Author: "x"})
	require.NoError(t, err)
	c, err := env.library.AddBook(ctx, BookDraft{Title: "C", Author: "x", IsFavorite: true})
	require.NoError(t, err)

	_, err = env.library.ToggleFavorite(ctx, b.ID)
	require.NoError(t, err)
	_, err = env.library.ToggleFavorite(ctx, a.ID)
	require.NoError(t, err)
	require.NoError(t, env.library.DeleteBook(ctx, c.ID))

	// The profile's favorites list must exactly mirror the flags.
	books, err := env.library.ListBooks(ctx)
	require.NoError(t, err)
	profile, err := env.profile.GetProfile(ctx)
	require.NoError(t, err)

	want := make(map[string]bool)
	for _, book := range books {
		if book.IsFavorite {
			want[book.ID] = true
		}
	}
	assert.Len(t, profile.FavoriteBookIDs, len(want))
	for _, id := range profile.FavoriteBookIDs {
		assert.True(t, want[id], "profile favorite %s has no flagged book", id)
	}
}

func TestSetStatus_StampsDates(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.Empty(t, book.StartDate)

	book, err = env.library.SetStatus(ctx, book.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.NotEmpty(t, book.StartDate)
	assert.Empty(t, book.FinishDate)

	book, err = env.library.SetStatus(ctx, book.ID, domain.StatusRead)
	require.NoError(t, err)
	assert.NotEmpty(t, book.FinishDate)
}

func TestSetStatus_RecordsTransitions(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	_, err = env.library.SetStatus(ctx, book.ID, domain.StatusInProgress)
	require.NoError(t, err)
	_, err = env.library.SetStatus(ctx, book.ID, domain.StatusRead)
	require.NoError(t, err)

	feed, err := env.activity.Feed(ctx, 10, nil)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, domain.ActivityFinishedBook, feed[0].Type)
	assert.Equal(t, domain.ActivityStartedBook, feed[1].Type)
	assert.Equal(t, domain.ActivityAddedBook, feed[2].Type)
}

func TestSetProgress_Clamps(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{Title: "Dune", Author: "Frank Herbert", Pages: 412})
	require.NoError(t, err)

	book, err = env.library.SetProgress(ctx, book.ID, 9999)
	require.NoError(t, err)
	assert.Equal(t, 412, book.CurrentPage)

	_, err = env.library.SetProgress(ctx, book.ID, -1)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestUpdateBook_RatingActivity(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	book, err := env.library.AddBook(ctx, BookDraft{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)

	_, err = env.library.UpdateBook(ctx, book.ID, BookDraft{
		Title:  "Dune",
		Author: "Frank Herbert",
		Status: string(domain.StatusRead),
		Rating: 4.5,
	})
	require.NoError(t, err)

	feed, err := env.activity.Feed(ctx, 10, nil)
	require.NoError(t, err)

	types := make([]domain.ActivityType, 0, len(feed))
	for _, item := range feed {
		types = append(types, item.Type)
	}
	assert.Contains(t, types, domain.ActivityFinishedBook)
	assert.Contains(t, types, domain.ActivityRatedBook)
}

func TestListBooks_InsertionOrderPreserved(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	ctx := context.Background()
	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		_, err := env.library.AddBook(ctx, BookDraft{Title: title, Author: "x"})
		require.NoError(t, err)
	}

	books, err := env.library.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 3)
	for i, title := range titles {
		assert.Equal(t, title, books[i].Title)
	}
}

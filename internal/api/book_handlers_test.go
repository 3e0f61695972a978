package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBook(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"title":  "The Left Hand of Darkness",
		"author": "Ursula K. Le Guin",
		"pages":  304,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "Create failed: %s", resp.Body.String())

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Equal(t, "The Left Hand of Darkness", env.Data["title"])
	assert.Equal(t, "tbr", env.Data["status"])
	assert.NotEmpty(t, env.Data["id"])
	assert.NotEmpty(t, env.Data["cover_image_url"], "book without a cover gets a placeholder")
}

func TestCreateBook_MissingTitle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"author": "Anonymous",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var env testEnvelope[any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION", env.Error.Code)
}

func TestListBooks_InsertionOrder(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	first := ts.createBook(t, "First", "Author A")
	second := ts.createBook(t, "Second", "Author B")

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[[]map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.Len(t, env.Data, 2)
	assert.Equal(t, first, env.Data[0]["id"])
	assert.Equal(t, second, env.Data[1]["id"])
}

func TestUpdateBook(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	id := ts.createBook(t, "Drats", "Terry Pratchett")

	resp := ts.api.Put("/api/v1/books/"+id, map[string]any{
		"title":  "Guards! Guards!",
		"author": "Terry Pratchett",
		"rating": 4.5,
	})
	require.Equal(t, http.StatusOK, resp.Code, "Update failed: %s", resp.Body.String())

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "Guards! Guards!", env.Data["title"])
	assert.InDelta(t, 4.5, env.Data["rating"], 0.001)
}

func TestUpdateBook_InvalidRating(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	id := ts.createBook(t, "A Book", "An Author")

	resp := ts.api.Put("/api/v1/books/"+id, map[string]any{
		"title":  "A Book",
		"author": "An Author",
		"rating": 3.3,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	id := ts.createBook(t, "Ephemeral", "Nobody")

	resp := ts.api.Delete("/api/v1/books/" + id)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/books/" + id)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestToggleFavorite_SyncsProfile(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	id := ts.createBook(t, "Favorite Things", "Julie Andrews")

	resp := ts.api.Post("/api/v1/books/"+id+"/favorite", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, "Toggle failed: %s", resp.Body.String())

	var bookEnv testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &bookEnv))
	assert.Equal(t, true, bookEnv.Data["is_favorite"])

	resp = ts.api.Get("/api/v1/profile")
	require.Equal(t, http.StatusOK, resp.Code)

	var profileEnv testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profileEnv))
	assert.Contains(t, profileEnv.Data["favorite_book_ids"], id)

	// Toggling again clears both sides.
	resp = ts.api.Post("/api/v1/books/"+id+"/favorite", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/profile")
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profileEnv))
	assert.NotContains(t, profileEnv.Data["favorite_book_ids"], id)
}

func TestSetStatus(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	id := ts.createBook(t, "In Progress", "Someone")

	resp := ts.api.Patch("/api/v1/books/"+id+"/status", map[string]any{
		"status": "in_progress",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Status change failed: %s", resp.Body.String())

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "in_progress", env.Data["status"])
	assert.NotEmpty(t, env.Data["start_date"], "starting a book defaults the start date")
}

func TestSetStatus_Unknown(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	id := ts.createBook(t, "A Book", "An Author")

	resp := ts.api.Patch("/api/v1/books/"+id+"/status", map[string]any{
		"status": "abandoned-ship",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSetProgress_Clamped(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"title":  "Short Book",
		"author": "Terse Author",
		"pages":  100,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	id := env.Data["id"].(string)

	resp = ts.api.Patch("/api/v1/books/"+id+"/progress", map[string]any{
		"current_page": 450,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.InDelta(t, 100, env.Data["current_page"], 0.01)
}

func TestSearchBooks(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createBook(t, "The Fifth Season", "N.K. Jemisin")
	ts.createBook(t, "Unrelated Title", "Someone Else")

	resp := ts.api.Get("/api/v1/books/search?q=fifth+season")
	require.Equal(t, http.StatusOK, resp.Code, "Search failed: %s", resp.Body.String())

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))

	hits, ok := env.Data["hits"].([]any)
	require.True(t, ok, "Search response has no hits: %s", resp.Body.String())
	require.NotEmpty(t, hits)

	top, ok := hits[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "The Fifth Season", top["title"])
}

package api

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booqapp/booq-server/internal/ai"
	"github.com/booqapp/booq-server/internal/metadata/googlebooks"
	"github.com/booqapp/booq-server/internal/search"
	"github.com/booqapp/booq-server/internal/service"
	"github.com/booqapp/booq-server/internal/sse"
	"github.com/booqapp/booq-server/internal/store"
	"github.com/booqapp/booq-server/internal/validation"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int       `json:"v"`
	Success bool      `json:"success"`
	Data    T         `json:"data"`
	Error   *APIError `json:"error"`
}

// testServer bundles the API server with a humatest client and cleanup.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer creates a test server with all dependencies backed by a
// temp directory. The AI client is left unconfigured so AI-backed routes
// fail fast without network access.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "booq-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sseManager := sse.NewManager(logger)
	sseHandler := sse.NewHandler(sseManager, logger)

	st, err := store.New(filepath.Join(tmpDir, "db"), logger, sseManager)
	require.NoError(t, err)

	index, err := search.NewIndex(search.Options{
		DataPath: tmpDir,
		Logger:   logger,
	})
	require.NoError(t, err)
	searchService := search.NewService(index, logger)
	st.SetSearchIndexer(searchService)

	validator := validation.New()
	activityService := service.NewActivityService(st, logger)

	aiClient, err := ai.New(context.Background(), "", "", logger)
	require.NoError(t, err)

	services := &Services{
		Library:   service.NewLibraryService(st, validator, activityService, logger),
		Shelf:     service.NewShelfService(st, logger),
		Profile:   service.NewProfileService(st, validator, activityService, logger),
		Layout:    service.NewLayoutService(st, logger),
		Stats:     service.NewStatsService(st, logger),
		Activity:  activityService,
		Lookup:    service.NewLookupService(googlebooks.New(logger), aiClient, logger),
		Recommend: service.NewRecommendService(ai.NewChat(aiClient), logger),
		Search:    searchService,
	}

	srv := NewServer(st, services, sseManager, sseHandler, logger)

	cleanup := func() {
		_ = searchService.Close()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  srv,
		api:     humatest.Wrap(t, srv.api),
		cleanup: cleanup,
	}
}

// createBook adds a book through the API and returns its ID.
func (ts *testServer) createBook(t *testing.T, title, author string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"title":  title,
		"author": author,
	})
	require.Equal(t, http.StatusCreated, resp.Code, "Create failed: %s", resp.Body.String())

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	id, ok := env.Data["id"].(string)
	require.True(t, ok, "Created book has no id: %s", resp.Body.String())
	return id
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))

	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Contains(t, env.Data.Components, "database")
	assert.Contains(t, env.Data.Components, "search")
	assert.Contains(t, env.Data.Components, "sse")
}

func TestEnvelope_ErrorShape(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/books/missing")
	require.Equal(t, http.StatusNotFound, resp.Code)

	var env testEnvelope[any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))

	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestGetProfile_Defaults(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/profile")
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data["username"])
}

func TestUpdateProfile(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/v1/profile", map[string]any{
		"username": "avid-reader",
		"bio":      "Mostly fantasy and history.",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Update failed: %s", resp.Body.String())

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "avid-reader", env.Data["username"])
	assert.Equal(t, "Mostly fantasy and history.", env.Data["bio"])
}

func TestUpdateProfile_MissingUsername(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/v1/profile", map[string]any{
		"bio": "no name",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSectionOrder_GetAndReorder(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/layout/sections")
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[map[string][]string]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.Equal(t, []string{"reading-status", "my-library"}, env.Data["sections"])

	resp = ts.api.Post("/api/v1/layout/sections/reorder", map[string]any{
		"dragged": "my-library",
		"target":  "reading-status",
	})
	require.Equal(t, http.StatusOK, resp.Code, "Reorder failed: %s", resp.Body.String())

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, []string{"my-library", "reading-status"}, env.Data["sections"])
}

func TestSectionOrder_ReorderUnknownKeyIsNoOp(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/v1/layout/sections/reorder", map[string]any{
		"dragged": "bogus",
		"target":  "my-library",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[map[string][]string]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, []string{"reading-status", "my-library"}, env.Data["sections"])
}

func TestGetStats(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createBook(t, "The Dispossessed", "Ursula K. Le Guin")

	resp := ts.api.Get("/api/v1/stats")
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.InDelta(t, 1, env.Data["total_books"], 0.01)

	resp = ts.api.Get("/api/v1/stats?filter=ytd")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/stats?filter=weekly")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestActivityFeed(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	ts.createBook(t, "Piranesi", "Susanna Clarke")

	resp := ts.api.Get("/api/v1/activity")
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[[]map[string]any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data)
	assert.Equal(t, "added_book", env.Data[0]["type"])
	assert.Equal(t, "Piranesi", env.Data[0]["book_title"])
}

func TestActivityFeed_BadCursor(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/activity?before=yesterday")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLookupAI_Unconfigured(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/lookup/ai?q=space+opera")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var env testEnvelope[any]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAVAILABLE", env.Error.Code)
}

func TestLookupSpark_Unconfigured(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/lookup/spark?title=Dune&author=Frank+Herbert")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/booqapp/booq-server/internal/store"
	"github.com/booqapp/booq-server/internal/validation"
)

// testEnv bundles services over a temporary store.
type testEnv struct {
	store    *store.Store
	library  *LibraryService
	shelves  *ShelfService
	profile  *ProfileService
	layout   *LayoutService
	stats    *StatsService
	activity *ActivityService
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "booq-service-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil, store.NewNoopEmitter())
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	v := validation.New()
	activity := NewActivityService(st, logger)

	env := &testEnv{
		store:    st,
		library:  NewLibraryService(st, v, activity, logger),
		shelves:  NewShelfService(st, logger),
		profile:  NewProfileService(st, v, activity, logger),
		layout:   NewLayoutService(st, logger),
		stats:    NewStatsService(st, logger),
		activity: activity,
	}

	cleanup := func() {
		st.Close()
		os.RemoveAll(tmpDir)
	}
	return env, cleanup
}

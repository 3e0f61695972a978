package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/booqapp/booq-server/internal/domain"
	domainerrors "github.com/booqapp/booq-server/internal/errors"
	"github.com/booqapp/booq-server/internal/store"
)

// StatsService computes aggregate statistics over the collection.
type StatsService struct {
	store  *store.Store
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewStatsService creates a new stats service.
func NewStatsService(store *store.Store, logger *slog.Logger) *StatsService {
	return &StatsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Summary aggregates statistics under the given filter. An empty filter
// means all-time.
func (s *StatsService) Summary(ctx context.Context, filter domain.StatsFilter) (*domain.LibraryStats, error) {
	if filter == "" {
		filter = domain.StatsFilterAll
	}
	if !filter.Valid() {
		return nil, domainerrors.Validationf("unknown stats filter %q", filter)
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	return domain.ComputeLibraryStats(books, filter, s.now()), nil
}

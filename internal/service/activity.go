package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/id"
	"github.com/booqapp/booq-server/internal/store"
)

// ActivityService records and serves the append-only activity log.
type ActivityService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewActivityService creates a new activity service.
func NewActivityService(store *store.Store, logger *slog.Logger) *ActivityService {
	return &ActivityService{
		store:  store,
		logger: logger,
	}
}

// Record appends one entry to the log. Book info is denormalized at write
// time so the feed outlives book deletions.
func (s *ActivityService) Record(ctx context.Context, activityType domain.ActivityType, book *domain.Book, details string) error {
	if !activityType.Valid() {
		return fmt.Errorf("unknown activity type %q", activityType)
	}

	activityID, err := id.Generate("act")
	if err != nil {
		return fmt.Errorf("generate activity ID: %w", err)
	}

	item := &domain.ActivityItem{
		ID:        activityID,
		Type:      activityType,
		Timestamp: time.Now(),
		Details:   details,
	}
	if book != nil {
		item.BookID = book.ID
		item.BookTitle = book.Title
	}

	if err := s.store.CreateActivity(ctx, item); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	return nil
}

// Feed returns activity entries newest first. limit <= 0 gets the default
// page size; before is an optional exclusive cursor.
func (s *ActivityService) Feed(ctx context.Context, limit int, before *time.Time) ([]*domain.ActivityItem, error) {
	if limit <= 0 {
		limit = 50
	}
	items, err := s.store.GetActivityFeed(ctx, limit, before)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.ActivityItem{}
	}
	return items, nil
}

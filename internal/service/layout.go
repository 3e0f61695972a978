package service

import (
	"context"
	"log/slog"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/store"
)

// LayoutService manages the persisted dashboard section order.
type LayoutService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewLayoutService creates a new layout service.
func NewLayoutService(store *store.Store, logger *slog.Logger) *LayoutService {
	return &LayoutService{
		store:  store,
		logger: logger,
	}
}

// GetSectionOrder returns the current section order.
func (s *LayoutService) GetSectionOrder(ctx context.Context) (domain.SectionOrder, error) {
	return s.store.GetSectionOrder(ctx)
}

// Reorder moves the dragged section immediately before the target section
// and persists the result. Dropping a section onto itself, or naming an
// unknown section, leaves the stored order untouched.
func (s *LayoutService) Reorder(ctx context.Context, dragged, target domain.SectionKey) (domain.SectionOrder, error) {
	order, err := s.store.GetSectionOrder(ctx)
	if err != nil {
		return nil, err
	}

	if !order.MoveBefore(dragged, target) {
		// No-op drop: return the unchanged order without a write.
		return order, nil
	}

	if err := s.store.SaveSectionOrder(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("sections reordered", "dragged", dragged, "target", target)
	return order, nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/sse"
)

// The section layout is a singleton slot like the profile.
const layoutKey = "layout:sections"

// GetSectionOrder returns the persisted dashboard section order, normalized
// against the known section set. Returns the default order if none has been
// saved.
func (s *Store) GetSectionOrder(ctx context.Context) (domain.SectionOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var order domain.SectionOrder
	err := s.get([]byte(layoutKey), &order)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.DefaultSectionOrder(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get section order: %w", err)
	}

	order.Normalize()
	return order, nil
}

// SaveSectionOrder persists the dashboard section order.
func (s *Store) SaveSectionOrder(ctx context.Context, order domain.SectionOrder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set([]byte(layoutKey), order); err != nil {
		return fmt.Errorf("save section order: %w", err)
	}

	s.emit(sse.NewLayoutUpdated(order))
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/sse"
)

// The profile is a singleton slot: a fixed key with read-default semantics.
const profileKey = "profile"

// GetProfile returns the stored profile, or the default profile if none has
// been saved yet. The default is never written back implicitly.
func (s *Store) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var profile domain.UserProfile
	err := s.get([]byte(profileKey), &profile)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if profile.FavoriteBookIDs == nil {
		profile.FavoriteBookIDs = []string{}
	}
	return &profile, nil
}

// SaveProfile persists the profile singleton.
func (s *Store) SaveProfile(ctx context.Context, profile *domain.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.set([]byte(profileKey), profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	s.emit(sse.NewProfileUpdated(profile))
	return nil
}

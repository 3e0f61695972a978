package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/booqapp/booq-server/internal/color"
	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/store"
	"github.com/booqapp/booq-server/internal/validation"
)

// ProfileUpdate carries the editable profile fields. FavoriteBookIDs is
// deliberately absent: favorites only change through book operations.
type ProfileUpdate struct {
	Username        string `json:"username" validate:"required,max=80"`
	Bio             string `json:"bio,omitempty" validate:"max=500"`
	ProfileImageURL string `json:"profile_image_url,omitempty" validate:"omitempty,url"`
	Pronouns        string `json:"pronouns,omitempty" validate:"max=40"`
	BirthYear       int    `json:"birth_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
}

// ProfileService manages the singleton user profile.
type ProfileService struct {
	store     *store.Store
	validator *validation.Validator
	activity  *ActivityService
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *store.Store, validator *validation.Validator, activity *ActivityService, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:     store,
		validator: validator,
		activity:  activity,
		logger:    logger,
	}
}

// GetProfile returns the profile, defaulting when never saved.
func (s *ProfileService) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	return s.store.GetProfile(ctx)
}

// UpdateProfile applies the editable fields, preserving the favorites list.
func (s *ProfileService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*domain.UserProfile, error) {
	if err := s.validator.Validate(&update); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	profile.Username = update.Username
	profile.AvatarColor = color.ForName(update.Username)
	profile.Bio = update.Bio
	profile.ProfileImageURL = update.ProfileImageURL
	profile.Pronouns = update.Pronouns
	profile.BirthYear = update.BirthYear
	profile.UpdatedAt = time.Now()

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	if s.activity != nil {
		if err := s.activity.Record(ctx, domain.ActivityUpdatedProfile, nil, ""); err != nil {
			s.logger.Warn("failed to record profile activity", "error", err)
		}
	}

	s.logger.Info("profile updated", "username", profile.Username)
	return profile, nil
}

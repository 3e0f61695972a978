package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get the user profile",
		Tags:        []string{"Profile"},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfile",
		Method:      http.MethodPatch,
		Path:        "/api/v1/profile",
		Summary:     "Update the user profile",
		Description: "Updates display fields; the favorites list is managed through book favorite toggles",
		Tags:        []string{"Profile"},
	}, s.handleUpdateProfile)
}

// ProfileUpdateInput wraps a profile update request.
type ProfileUpdateInput struct {
	Body service.ProfileUpdate
}

// ProfileOutput wraps the user profile for huma.
type ProfileOutput struct {
	Body *domain.UserProfile
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	profile, err := s.services.Profile.GetProfile(ctx)
	if err != nil {
		s.logger.Error("Failed to get profile", "error", err)
		return nil, err
	}

	return &ProfileOutput{Body: profile}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, input *ProfileUpdateInput) (*ProfileOutput, error) {
	profile, err := s.services.Profile.UpdateProfile(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: profile}, nil
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/domain"
	domainerrors "github.com/booqapp/booq-server/internal/errors"
)

func (s *Server) registerActivityRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getActivityFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/activity",
		Summary:     "Get the activity feed",
		Description: "Returns activity items newest first with cursor pagination",
		Tags:        []string{"Activity"},
	}, s.handleGetActivityFeed)
}

// ActivityFeedInput contains pagination parameters for the activity feed.
type ActivityFeedInput struct {
	Limit  int    `query:"limit" doc:"Max items to return (default 50)"`
	Before string `query:"before" doc:"RFC 3339 timestamp; only items strictly older are returned"`
}

// ActivityFeedOutput wraps activity items for huma.
type ActivityFeedOutput struct {
	Body []*domain.ActivityItem
}

func (s *Server) handleGetActivityFeed(ctx context.Context, input *ActivityFeedInput) (*ActivityFeedOutput, error) {
	var before *time.Time
	if input.Before != "" {
		t, err := time.Parse(time.RFC3339Nano, input.Before)
		if err != nil {
			return nil, domainerrors.Validationf("invalid before cursor %q", input.Before)
		}
		before = &t
	}

	items, err := s.services.Activity.Feed(ctx, input.Limit, before)
	if err != nil {
		s.logger.Error("Failed to get activity feed", "error", err)
		return nil, err
	}

	return &ActivityFeedOutput{Body: items}, nil
}

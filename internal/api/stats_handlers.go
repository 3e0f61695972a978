package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get reading statistics",
		Description: "Aggregates over the whole collection or the current calendar year",
		Tags:        []string{"Stats"},
	}, s.handleGetStats)
}

// StatsInput selects the statistics window.
type StatsInput struct {
	Filter string `query:"filter" doc:"Window: all (default) or ytd"`
}

// StatsOutput wraps library statistics for huma.
type StatsOutput struct {
	Body *domain.LibraryStats
}

func (s *Server) handleGetStats(ctx context.Context, input *StatsInput) (*StatsOutput, error) {
	stats, err := s.services.Stats.Summary(ctx, domain.StatsFilter(input.Filter))
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: stats}, nil
}

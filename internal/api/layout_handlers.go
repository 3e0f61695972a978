package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/booqapp/booq-server/internal/domain"
)

func (s *Server) registerLayoutRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSectionOrder",
		Method:      http.MethodGet,
		Path:        "/api/v1/layout/sections",
		Summary:     "Get dashboard section order",
		Tags:        []string{"Layout"},
	}, s.handleGetSectionOrder)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorderSections",
		Method:      http.MethodPost,
		Path:        "/api/v1/layout/sections/reorder",
		Summary:     "Reorder dashboard sections",
		Description: "Moves the dragged section immediately before the target section",
		Tags:        []string{"Layout"},
	}, s.handleReorderSections)
}

// ReorderInput names the dragged section and the section it was dropped on.
type ReorderInput struct {
	Body struct {
		Dragged string `json:"dragged" minLength:"1" doc:"Key of the section being moved"`
		Target  string `json:"target" minLength:"1" doc:"Key of the section it was dropped on"`
	}
}

// SectionOrderOutput wraps the section order for huma.
type SectionOrderOutput struct {
	Body struct {
		Sections domain.SectionOrder `json:"sections" doc:"Dashboard sections in display order"`
	}
}

func (s *Server) handleGetSectionOrder(ctx context.Context, _ *struct{}) (*SectionOrderOutput, error) {
	order, err := s.services.Layout.GetSectionOrder(ctx)
	if err != nil {
		s.logger.Error("Failed to get section order", "error", err)
		return nil, err
	}

	out := &SectionOrderOutput{}
	out.Body.Sections = order
	return out, nil
}

func (s *Server) handleReorderSections(ctx context.Context, input *ReorderInput) (*SectionOrderOutput, error) {
	order, err := s.services.Layout.Reorder(ctx,
		domain.SectionKey(input.Body.Dragged),
		domain.SectionKey(input.Body.Target),
	)
	if err != nil {
		return nil, err
	}

	out := &SectionOrderOutput{}
	out.Body.Sections = order
	return out, nil
}

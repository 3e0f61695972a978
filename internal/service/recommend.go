package service

import (
	"context"
	"log/slog"

	"github.com/booqapp/booq-server/internal/ai"
	domainerrors "github.com/booqapp/booq-server/internal/errors"
)

// RecommendService fronts the recommendation chat. The conversation lives
// for the server's lifetime so the model keeps context across requests.
type RecommendService struct {
	chat   *ai.Chat
	logger *slog.Logger
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(chat *ai.Chat, logger *slog.Logger) *RecommendService {
	return &RecommendService{
		chat:   chat,
		logger: logger,
	}
}

// SendMessage streams a reply to one user message. onChunk receives deltas
// in arrival order; the return is the single terminal outcome.
func (s *RecommendService) SendMessage(ctx context.Context, text string, onChunk ai.ChunkFunc) error {
	if text == "" {
		return domainerrors.Validation("message cannot be empty")
	}

	if err := s.chat.SendMessage(ctx, text, onChunk); err != nil {
		s.logger.Warn("chat exchange failed", "error", err)
		return err
	}
	return nil
}

package api

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/http"
	"time"

	domainerrors "github.com/booqapp/booq-server/internal/errors"
	"github.com/booqapp/booq-server/internal/http/response"
)

// ChatRequest is the body for POST /api/v1/recommend/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// chatErrorData is the payload of a terminal "error" chat event.
type chatErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleRecommendChat streams a recommendation chat reply as SSE frames:
// zero or more "delta" events followed by exactly one "done" or "error"
// event. Client disconnect cancels the upstream call via the request context.
func (s *Server) handleRecommendChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChatRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		s.logger.Error("Failed to flush chat stream headers", "error", err)
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	err := s.services.Recommend.SendMessage(ctx, req.Message, func(text string) {
		if sendErr := s.sendChatEvent(w, rc, "delta", map[string]string{"text": text}); sendErr != nil {
			// Client is gone; the context cancellation stops the upstream call.
			s.logger.Debug("Chat client disconnected during delta", "error", sendErr)
		}
	})
	if err != nil {
		if ctx.Err() != nil {
			// Client disconnect, nothing left to write.
			return
		}

		data := chatErrorData{
			Code:    string(domainerrors.CodeInternal),
			Message: "chat request failed",
		}
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			data.Code = string(domainErr.Code)
			data.Message = domainErr.Message
		}

		s.logger.Error("Chat exchange failed", "error", err)
		if sendErr := s.sendChatEvent(w, rc, "error", data); sendErr != nil {
			s.logger.Debug("Failed to send chat error event", "error", sendErr)
		}
		return
	}

	if sendErr := s.sendChatEvent(w, rc, "done", map[string]string{}); sendErr != nil {
		s.logger.Debug("Failed to send chat done event", "error", sendErr)
	}
}

// sendChatEvent writes a single SSE frame to the chat stream.
func (s *Server) sendChatEvent(w http.ResponseWriter, rc *http.ResponseController, eventType string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal chat event data: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\n", eventType); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return err
	}

	if err := rc.Flush(); err != nil {
		return err
	}

	if err := rc.SetWriteDeadline(time.Now().Add(60 * time.Second)); err != nil {
		s.logger.Debug("Failed to set chat write deadline", "error", err)
	}

	return nil
}

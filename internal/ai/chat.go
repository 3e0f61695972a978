package ai

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"github.com/booqapp/booq-server/internal/errors"
)

const chatPersona = `You are a friendly and enthusiastic book recommendation
assistant for a personal reading tracker. Suggest 2-3 books per reply, with
each title in bold, and a one-sentence reason it fits. Ask a short follow-up
question when the request is vague. Keep replies concise.`

// ChunkFunc receives one streamed response delta.
type ChunkFunc func(text string)

// Chat is the recommendation conversation. One session exists per server
// lifetime: it is created lazily on the first message and reused so the
// model keeps conversational context. Exchanges are serialized; an errored
// exchange does not discard the session.
type Chat struct {
	client *Client

	mu      sync.Mutex
	session *genai.Chat
}

// NewChat creates the conversation wrapper. The underlying session is not
// created until the first message.
func NewChat(client *Client) *Chat {
	return &Chat{client: client}
}

// ensureSession returns the live session, creating it on first use.
// Caller must hold c.mu.
func (c *Chat) ensureSession(ctx context.Context) (*genai.Chat, error) {
	if c.session != nil {
		return c.session, nil
	}

	session, err := c.client.client.Chats.Create(ctx, c.client.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatPersona, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, classifyError(err)
	}

	c.session = session
	if c.client.logger != nil {
		c.client.logger.Info("recommendation chat session created")
	}
	return session, nil
}

// SendMessage sends one user message and streams response deltas to onChunk
// in arrival order. It returns nil after a clean completion, or exactly one
// classified error; never both. Cancel ctx to abort the upstream call.
func (c *Chat) SendMessage(ctx context.Context, text string, onChunk ChunkFunc) error {
	if !c.client.Available() {
		return errors.Unavailable("recommendation chat is not configured")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	session, err := c.ensureSession(ctx)
	if err != nil {
		return err
	}

	for resp, err := range session.SendMessageStream(ctx, genai.Part{Text: text}) {
		if err != nil {
			return classifyError(err)
		}
		if delta := resp.Text(); delta != "" {
			onChunk(delta)
		}
	}

	return nil
}

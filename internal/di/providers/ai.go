package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/booqapp/booq-server/internal/ai"
	"github.com/booqapp/booq-server/internal/config"
	"github.com/booqapp/booq-server/internal/logger"
	"github.com/booqapp/booq-server/internal/metadata/googlebooks"
)

// AIClientHandle wraps the Gemini client with shutdown capability.
type AIClientHandle struct {
	*ai.Client
}

// Shutdown implements do.Shutdownable.
func (h *AIClientHandle) Shutdown() error {
	return h.Close()
}

// ProvideAIClient provides the Gemini client. A missing API key yields a
// disabled client; AI-backed features fail fast with UNAVAILABLE.
func ProvideAIClient(i do.Injector) (*AIClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client, err := ai.New(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model, log.Logger)
	if err != nil {
		return nil, err
	}

	return &AIClientHandle{Client: client}, nil
}

// ProvideChat provides the single recommendation chat session bridge.
func ProvideChat(i do.Injector) (*ai.Chat, error) {
	clientHandle := do.MustInvoke[*AIClientHandle](i)
	return ai.NewChat(clientHandle.Client), nil
}

// ProvideGoogleBooksClient provides the Google Books catalog client.
func ProvideGoogleBooksClient(i do.Injector) (*googlebooks.Client, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return googlebooks.New(log.Logger), nil
}

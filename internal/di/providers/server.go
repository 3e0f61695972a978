package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/booqapp/booq-server/internal/api"
	"github.com/booqapp/booq-server/internal/config"
	"github.com/booqapp/booq-server/internal/logger"
	"github.com/booqapp/booq-server/internal/search"
	"github.com/booqapp/booq-server/internal/service"
	"github.com/booqapp/booq-server/internal/sse"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Library:   do.MustInvoke[*service.LibraryService](i),
		Shelf:     do.MustInvoke[*service.ShelfService](i),
		Profile:   do.MustInvoke[*service.ProfileService](i),
		Layout:    do.MustInvoke[*service.LayoutService](i),
		Stats:     do.MustInvoke[*service.StatsService](i),
		Activity:  do.MustInvoke[*service.ActivityService](i),
		Lookup:    do.MustInvoke[*service.LookupService](i),
		Recommend: do.MustInvoke[*service.RecommendService](i),
		Search:    do.MustInvoke[*search.Service](i),
	}

	sseHandler := sse.NewHandler(sseHandle.Manager, log.Logger)

	handler := api.NewServer(storeHandle.Store, services, sseHandle.Manager, sseHandler, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}

// Package di provides dependency injection configuration for the booq server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/booqapp/booq-server/internal/ai"
	"github.com/booqapp/booq-server/internal/config"
	"github.com/booqapp/booq-server/internal/di/providers"
	"github.com/booqapp/booq-server/internal/logger"
	"github.com/booqapp/booq-server/internal/metadata/googlebooks"
	"github.com/booqapp/booq-server/internal/search"
	"github.com/booqapp/booq-server/internal/service"
	"github.com/booqapp/booq-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// External providers
	do.Provide(injector, providers.ProvideGoogleBooksClient)
	do.Provide(injector, providers.ProvideAIClient)
	do.Provide(injector, providers.ProvideChat)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideActivityService)
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideShelfService)
	do.Provide(injector, providers.ProvideProfileService)
	do.Provide(injector, providers.ProvideLayoutService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideLookupService)
	do.Provide(injector, providers.ProvideRecommendService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*search.Service](injector)
	_ = do.MustInvoke[*googlebooks.Client](injector)
	_ = do.MustInvoke[*providers.AIClientHandle](injector)
	_ = do.MustInvoke[*ai.Chat](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.ActivityService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.ShelfService](injector)
	_ = do.MustInvoke[*service.ProfileService](injector)
	_ = do.MustInvoke[*service.LayoutService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)
	_ = do.MustInvoke[*service.LookupService](injector)
	_ = do.MustInvoke[*service.RecommendService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Repopulate the search index from the store.
	providers.RebuildSearchIndex(injector)

	return nil
}

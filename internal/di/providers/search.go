package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/booqapp/booq-server/internal/config"
	"github.com/booqapp/booq-server/internal/logger"
	"github.com/booqapp/booq-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.SearchPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service and wires it into the
// store so writes keep the index current.
func ProvideSearchService(i do.Injector) (*search.Service, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := search.NewService(indexHandle.Index, log.Logger)
	storeHandle.SetSearchIndexer(svc)

	return svc, nil
}

// RebuildSearchIndex repopulates the index from the store in the background.
// Called once at startup after all services are wired, so the index never
// drifts from the collection across restarts.
func RebuildSearchIndex(i do.Injector) {
	searchService := do.MustInvoke[*search.Service](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	go func() {
		if err := searchService.Rebuild(context.Background(), storeHandle.Store); err != nil {
			log.Error("Search index rebuild failed", "error", err)
		}
	}()
}

package providers

import (
	"github.com/samber/do/v2"

	"github.com/booqapp/booq-server/internal/ai"
	"github.com/booqapp/booq-server/internal/logger"
	"github.com/booqapp/booq-server/internal/metadata/googlebooks"
	"github.com/booqapp/booq-server/internal/service"
	"github.com/booqapp/booq-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideActivityService provides the activity log service.
func ProvideActivityService(i do.Injector) (*service.ActivityService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewActivityService(storeHandle.Store, log.Logger), nil
}

// ProvideLibraryService provides the book collection service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	activityService := do.MustInvoke[*service.ActivityService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(storeHandle.Store, validator, activityService, log.Logger), nil
}

// ProvideShelfService provides the custom shelf service.
func ProvideShelfService(i do.Injector) (*service.ShelfService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShelfService(storeHandle.Store, log.Logger), nil
}

// ProvideProfileService provides the profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	activityService := do.MustInvoke[*service.ActivityService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, validator, activityService, log.Logger), nil
}

// ProvideLayoutService provides the dashboard layout service.
func ProvideLayoutService(i do.Injector) (*service.LayoutService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLayoutService(storeHandle.Store, log.Logger), nil
}

// ProvideStatsService provides the statistics service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, log.Logger), nil
}

// ProvideLookupService provides the external lookup service.
func ProvideLookupService(i do.Injector) (*service.LookupService, error) {
	booksClient := do.MustInvoke[*googlebooks.Client](i)
	aiHandle := do.MustInvoke[*AIClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLookupService(booksClient, aiHandle.Client, log.Logger), nil
}

// ProvideRecommendService provides the recommendation chat service.
func ProvideRecommendService(i do.Injector) (*service.RecommendService, error) {
	chat := do.MustInvoke[*ai.Chat](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendService(chat, log.Logger), nil
}

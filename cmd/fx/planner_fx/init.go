package planner_fx

import (
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"navigo/internal/repositories"
	"navigo/internal/services"
	"navigo/pkg/cache"
	"navigo/pkg/config"
	"navigo/pkg/utils"
)

var Module = fx.Provide(
	provideComposer, providePlanRepo, providePlannerService)

func provideComposer(cfg *config.Config) (utils.ItineraryComposer, error) {
	if strings.ToLower(cfg.ComposerProvider) == "openai" {
		return utils.NewOpenAIComposer(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	}
	return utils.NewGeminiComposer(cfg.GeminiAPIKey, cfg.GeminiModel)
}

func providePlanRepo(db *gorm.DB) repositories.ITravelPlanRepository {
	return repositories.NewTravelPlanRepository(db)
}

func providePlannerService(
	tourAPI services.TourAPIInterface,
	googlePlaces services.GooglePlacesInterface,
	naverSearch services.NaverSearchInterface,
	kakaoMap services.KakaoMapInterface,
	routeService services.RouteServiceInterface,
	composer utils.ItineraryComposer,
	planRepo repositories.ITravelPlanRepository,
	responseCache cache.Cache,
) services.PlannerServiceInterface {
	return services.NewPlannerService(
		tourAPI,
		googlePlaces,
		naverSearch,
		kakaoMap,
		routeService,
		services.NewHotelFinder(googlePlaces),
		services.NewRestaurantFinder(googlePlaces),
		composer,
		planRepo,
		responseCache,
	)
}

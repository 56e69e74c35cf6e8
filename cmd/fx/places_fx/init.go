package places_fx

import (
	"go.uber.org/fx"

	"navigo/internal/services"
	"navigo/pkg/cache"
	"navigo/pkg/config"
)

var Module = fx.Provide(
	provideTourAPI, provideGooglePlaces, provideNaverSearch, provideKakaoMap)

func provideTourAPI(cfg *config.Config, responseCache cache.Cache) services.TourAPIInterface {
	return services.NewTourAPIClient(cfg, responseCache)
}

func provideGooglePlaces(cfg *config.Config, responseCache cache.Cache) services.GooglePlacesInterface {
	return services.NewGooglePlacesClient(cfg, responseCache)
}

func provideNaverSearch(cfg *config.Config, responseCache cache.Cache) services.NaverSearchInterface {
	return services.NewNaverSearchClient(cfg, responseCache)
}

func provideKakaoMap(
	cfg *config.Config,
	responseCache cache.Cache,
	googlePlaces services.GooglePlacesInterface,
	naverSearch services.NaverSearchInterface,
) services.KakaoMapInterface {
	return services.NewKakaoMapClient(cfg, responseCache, googlePlaces, naverSearch)
}

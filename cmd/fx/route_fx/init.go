package route_fx

import (
	"go.uber.org/fx"

	"navigo/internal/services"
	mem "navigo/pkg/memcache"
)

var Module = fx.Provide(
	provideTravelTimeStore, provideRouteService)

func provideTravelTimeStore() mem.TravelTimeStore {
	return mem.NewTravelTimes()
}

func provideRouteService(kakaoMap services.KakaoMapInterface, store mem.TravelTimeStore) services.RouteServiceInterface {
	return services.NewRouteService(kakaoMap, store)
}

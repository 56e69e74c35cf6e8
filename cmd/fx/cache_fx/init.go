package cache_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"navigo/internal/infra"
	"navigo/pkg/cache"
	"navigo/pkg/config"
)

var Module = fx.Provide(
	provideRedisClient, provideCache)

func provideRedisClient(cfg *config.Config) *redis.Client {
	return infra.InitRedis(cfg)
}

func provideCache(client *redis.Client) cache.Cache {
	return cache.NewRedisCache(client)
}

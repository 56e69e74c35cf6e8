package infra

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"navigo/pkg/config"
)

var (
	redisOnce      sync.Once
	redisSingleton *redis.Client
)

// InitRedis connects to Redis exactly once, no matter how many providers ask
// for it. A failed ping is fatal at startup; the cache is load-bearing for
// the rate-limited upstream APIs.
func InitRedis(cfg *config.Config) *redis.Client {
	redisOnce.Do(func() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		opts.PoolSize = 10

		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}

		log.Println("Redis connection established")
		redisSingleton = client
	})

	return redisSingleton
}

func CloseRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
	} else {
		log.Println("Redis connection closed successfully")
	}
}

package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"navigo/cmd/fx/cache_fx"
	"navigo/cmd/fx/config_fx"
	"navigo/cmd/fx/controllers_fx"
	"navigo/cmd/fx/db_fx"
	"navigo/cmd/fx/places_fx"
	"navigo/cmd/fx/planner_fx"
	"navigo/cmd/fx/route_fx"
	"navigo/internal/api/controllers"
	"navigo/internal/infra"
	"navigo/pkg/config"
	"navigo/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		cache_fx.Module,
		places_fx.Module,
		route_fx.Module,
		planner_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			infra.CloseRedis(redisClient)
			infra.ClosePostgresql(db)
			return nil
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	planController *controllers.PlanController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, cfg, planController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	planController *controllers.PlanController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/generate-plan", planController.GeneratePlan)

	plansGroup := r.Group("/plans")
	plansGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	plansGroup.GET("", planController.ListPlans)
	plansGroup.GET("/:planId", planController.GetPlanById)
}

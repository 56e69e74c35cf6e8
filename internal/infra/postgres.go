package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"navigo/internal/models/db_models"
	"navigo/pkg/config"
)

func InitPostgresql(cfg *config.Config) *gorm.DB {

	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := connectionPool.AutoMigrate(&db_models.TravelPlanRecord{}); err != nil {
		log.Fatalf("Error migrating travel plan schema: %v", err)
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}

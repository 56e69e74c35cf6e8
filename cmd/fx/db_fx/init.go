package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"navigo/internal/infra"
	"navigo/pkg/config"
)

var Module = fx.Provide(
	provideDB)

func provideDB(cfg *config.Config) *gorm.DB {
	return infra.InitPostgresql(cfg)
}

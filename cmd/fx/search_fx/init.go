package search_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
)

var Module = fx.Provide(
	provideSearchRepo, services.NewSearchService)

func provideSearchRepo(db *gorm.DB) repositories.SearchRepository {
	return repositories.NewSearchRepository(db)
}

package category_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
)

var Module = fx.Provide(
	provideCategoryRepo, services.NewCategoryService)

func provideCategoryRepo(db *gorm.DB) repositories.CategoryRepository {
	return repositories.NewCategoryRepository(db)
}

package hour_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
)

var Module = fx.Provide(
	provideHourRepo, services.NewHourService)

func provideHourRepo(db *gorm.DB) repositories.HourRepository {
	return repositories.NewHourRepository(db)
}

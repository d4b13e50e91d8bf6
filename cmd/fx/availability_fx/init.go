package availability_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
)

var Module = fx.Provide(
	provideAvailabilityRepo, services.NewAvailabilityService)

func provideAvailabilityRepo(db *gorm.DB) repositories.AvailabilityRepository {
	return repositories.NewAvailabilityRepository(db)
}

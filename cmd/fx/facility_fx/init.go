package facility_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
)

var Module = fx.Provide(
	provideFacilityRepo, services.NewFacilityService)

func provideFacilityRepo(db *gorm.DB) repositories.FacilityRepository {
	return repositories.NewFacilityRepository(db)
}

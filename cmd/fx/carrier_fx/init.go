package carrier_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
)

var Module = fx.Provide(
	provideCarrierRepo, services.NewCarrierService)

func provideCarrierRepo(db *gorm.DB) repositories.CarrierRepository {
	return repositories.NewCarrierRepository(db)
}

package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
	"freiplatz/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	carrierRepo repositories.CarrierRepository,
	tokens *utils.TokenManager,
	cache services.CarrierCacheInvalidator,
	audit services.AuditServiceInterface,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, carrierRepo, tokens, cache, audit)
}

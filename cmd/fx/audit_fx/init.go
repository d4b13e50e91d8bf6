package audit_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
)

var Module = fx.Provide(
	provideAuditRepo, services.NewAuditService)

func provideAuditRepo(db *gorm.DB) repositories.AuditRepository {
	return repositories.NewAuditRepository(db)
}

package access_fx

import (
	"go.uber.org/fx"

	"freiplatz/internal/access"
	"freiplatz/internal/config"
	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
	mem "freiplatz/pkg/memcache"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

var Module = fx.Provide(
	access.NewEnforcer,
	provideResolver,
	provideTokenManager,
	provideLoginLimiter,
	provideCacheInvalidator,
	providePrincipalResolver,
)

func provideResolver(cfg config.Config, accounts repositories.AccountRepository, cache mem.CarrierAccessStore, enforcer *access.Enforcer) *access.Resolver {
	return access.NewResolver(accounts, cache, cfg.Access.CarrierCacheTTL, enforcer)
}

func provideCacheInvalidator(r *access.Resolver) services.CarrierCacheInvalidator {
	return r
}

func providePrincipalResolver(r *access.Resolver) middleware.PrincipalResolver {
	return r
}

func provideTokenManager(cfg config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration)
}

func provideLoginLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute)
}

package config_fx

import (
	"go.uber.org/fx"

	"freiplatz/internal/config"
	"freiplatz/internal/logging"
	"freiplatz/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideConfig, provideDatabaseConfig, provideCapacityConfig),
	fx.Invoke(initLogging),
)

func provideConfig() (config.Config, error) {
	return config.LoadConfig()
}

func provideDatabaseConfig(cfg config.Config) config.DatabaseConfig {
	return cfg.Database
}

func provideCapacityConfig(cfg config.Config) config.CapacityConfig {
	return cfg.Capacity
}

func initLogging(cfg config.Config) {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	utils.SetErrorStacks(!cfg.IsProduction())
}

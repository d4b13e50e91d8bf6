package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CapacityConfig struct {
	// DefaultMax is applied to facilities without a configured maximum
	// the first time places are bulk-created for them.
	DefaultMax int `mapstructure:"default_max"`
}

type SyncConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	AvailabilitySchedule string `mapstructure:"availability_schedule"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_per_minute"`
}

type AccessConfig struct {
	CarrierCacheTTL time.Duration `mapstructure:"carrier_cache_ttl"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Capacity  CapacityConfig  `mapstructure:"capacity"`
	Sync      SyncConfig      `mapstructure:"sync"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Access    AccessConfig    `mapstructure:"access"`
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("jwt.expiration", 60*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("capacity.default_max", 20)
	v.SetDefault("sync.enabled", true)
	v.SetDefault("sync.availability_schedule", "@every 5m")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("ratelimit.login_per_minute", 10)
	v.SetDefault("access.carrier_cache_ttl", 2*time.Minute)
}

// LoadConfig reads config.yaml from the given paths (optional) and overlays
// environment variables. A .env file in the working directory is loaded first.
func LoadConfig(paths ...string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy names used by deployments.
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.env", "SERVER_ENV", "APP_ENV")
	_ = v.BindEnv("database.url", "DATABASE_URL", "POSTGRES_URL")
	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	if cfg.JWT.Secret == "" {
		return cfg, errors.New("jwt.secret (JWT_SECRET) must be set")
	}
	if cfg.Capacity.DefaultMax <= 0 {
		cfg.Capacity.DefaultMax = 20
	}

	return cfg, nil
}

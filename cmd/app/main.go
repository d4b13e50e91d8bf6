package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"freiplatz/cmd/fx/access_fx"
	"freiplatz/cmd/fx/account_fx"
	"freiplatz/cmd/fx/audit_fx"
	"freiplatz/cmd/fx/availability_fx"
	"freiplatz/cmd/fx/carrier_fx"
	"freiplatz/cmd/fx/category_fx"
	"freiplatz/cmd/fx/config_fx"
	"freiplatz/cmd/fx/controllers_fx"
	"freiplatz/cmd/fx/dashboard"
	"freiplatz/cmd/fx/db_fx"
	"freiplatz/cmd/fx/facility_fx"
	"freiplatz/cmd/fx/hour_fx"
	"freiplatz/cmd/fx/jobs_fx"
	"freiplatz/cmd/fx/memcache_fx"
	"freiplatz/cmd/fx/place_fx"
	"freiplatz/cmd/fx/search_fx"
	"freiplatz/internal/config"
	"freiplatz/internal/logging"
)

func main() {
	app := fx.New(
		fx.NopLogger,
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		access_fx.Module,
		audit_fx.Module,
		account_fx.Module,
		carrier_fx.Module,
		category_fx.Module,
		facility_fx.Module,
		availability_fx.Module,
		place_fx.Module,
		hour_fx.Module,
		search_fx.Module,
		dashboard.Module,
		jobs_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logging.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("starting HTTP server")
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logging.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logging.Info().Msg("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

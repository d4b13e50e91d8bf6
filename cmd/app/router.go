package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"freiplatz/internal/api/controllers"
	"freiplatz/internal/config"
	"freiplatz/internal/models/db_models"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type Controllers struct {
	Account      *controllers.AccountController
	Carrier      *controllers.CarrierController
	Category     *controllers.CategoryController
	Facility     *controllers.FacilityController
	Availability *controllers.AvailabilityController
	Place        *controllers.PlaceController
	Hour         *controllers.HourController
	Search       *controllers.SearchController
	Dashboard    *controllers.DashboardController
}

func ProvideRouter(
	cfg config.Config,
	db *gorm.DB,
	tokens *utils.TokenManager,
	resolver middleware.PrincipalResolver,
	loginLimiter *middleware.RateLimiter,
	account *controllers.AccountController,
	carrier *controllers.CarrierController,
	category *controllers.CategoryController,
	facility *controllers.FacilityController,
	availability *controllers.AvailabilityController,
	place *controllers.PlaceController,
	hour *controllers.HourController,
	search *controllers.SearchController,
	dashboard *controllers.DashboardController,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", healthHandler(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	RegisterRoutes(r, middleware.JWTAuthMiddleware(tokens), middleware.PrincipalMiddleware(resolver), loginLimiter, Controllers{
		Account:      account,
		Carrier:      carrier,
		Category:     category,
		Facility:     facility,
		Availability: availability,
		Place:        place,
		Hour:         hour,
		Search:       search,
		Dashboard:    dashboard,
	})

	return r
}

func RegisterRoutes(r *gin.Engine, auth, principal gin.HandlerFunc, loginLimiter *middleware.RateLimiter, c Controllers) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", loginLimiter.Middleware(), c.Account.Register)
	authGroup.POST("/login", loginLimiter.Middleware(), c.Account.Login)
	authGroup.GET("/me", auth, principal, c.Account.Me)

	admin := api.Group("/admin", auth, middleware.RoleMiddleware(db_models.RoleAdmin), principal)
	admin.GET("/carriers", c.Carrier.List)
	admin.GET("/carriers/:id", c.Carrier.Get)
	admin.POST("/carriers", c.Carrier.Create)
	admin.PUT("/carriers/:id", c.Carrier.Update)
	admin.DELETE("/carriers/:id", c.Carrier.Delete)
	admin.GET("/accounts", c.Account.List)
	admin.POST("/accounts", c.Account.Create)
	admin.PUT("/accounts/:id", c.Account.Update)
	admin.DELETE("/accounts/:id", c.Account.Delete)
	admin.POST("/accounts/:id/carriers/:carrierId", c.Account.LinkCarrier)
	admin.DELETE("/accounts/:id/carriers/:carrierId", c.Account.UnlinkCarrier)
	admin.GET("/categories", c.Category.List)
	admin.GET("/categories/:id", c.Category.Get)
	admin.POST("/categories", c.Category.Create)
	admin.PUT("/categories/:id", c.Category.Update)
	admin.DELETE("/categories/:id", c.Category.Delete)
	admin.GET("/facilities", c.Facility.List)
	admin.GET("/system-logs", c.Dashboard.SystemLogs)
	admin.GET("/dashboard", c.Dashboard.Report)

	carrier := api.Group("/carrier", auth, middleware.RoleMiddleware(db_models.RoleCarrier, db_models.RoleAdmin), principal)
	carrier.GET("/facilities", c.Facility.List)
	carrier.GET("/facilities/:id", c.Facility.Get)
	carrier.POST("/facilities", c.Facility.Create)
	carrier.PUT("/facilities/:id", c.Facility.Update)
	carrier.DELETE("/facilities/:id", c.Facility.Delete)
	carrier.POST("/facilities/:id/places/bulk", c.Place.BulkCreate)

	carrier.GET("/availabilities/facility/:facilityId", c.Availability.ListByFacility)
	carrier.POST("/availabilities", c.Availability.Create)
	carrier.PUT("/availabilities/:id", c.Availability.Update)
	carrier.DELETE("/availabilities/:id", c.Availability.Delete)

	carrier.GET("/places/facility/:facilityId", c.Place.ListByFacility)
	carrier.GET("/places/statistics/:facilityId", c.Place.Statistics)
	carrier.POST("/places", c.Place.Create)
	carrier.POST("/places/bulk/:facilityId", c.Place.BulkCreate)
	carrier.PUT("/places/:id", c.Place.Update)
	carrier.PATCH("/places/:id/occupancy", c.Place.SetOccupancy)
	carrier.DELETE("/places/:id", c.Place.Delete)

	carrier.GET("/hours/facility/:facilityId", c.Hour.ListByFacility)
	carrier.GET("/hours/statistics/:facilityId", c.Hour.Statistics)
	carrier.POST("/hours", c.Hour.Create)
	carrier.PUT("/hours/:id", c.Hour.Update)
	carrier.PATCH("/hours/:id/available", c.Hour.UpdateAvailableHours)
	carrier.DELETE("/hours/:id", c.Hour.Delete)

	manager := api.Group("/manager", auth, middleware.RoleMiddleware(db_models.RoleManager, db_models.RoleLeadership, db_models.RoleAdmin), principal)
	manager.POST("/search", c.Search.Search)
	manager.POST("/search/category/:categoryId", c.Search.SearchByCategory)
	manager.GET("/categories", c.Category.List)
	manager.GET("/facilities/:id", c.Facility.Get)

	leadership := api.Group("/leadership", auth, middleware.RoleMiddleware(db_models.RoleLeadership, db_models.RoleAdmin), principal)
	leadership.GET("/dashboard", c.Dashboard.Report)
	leadership.GET("/facilities/:id/places/statistics", c.Place.Statistics)
	leadership.GET("/facilities/:id/hours/statistics", c.Hour.Statistics)
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.RespondSuccess(c, gin.H{"database": "ok"}, "healthy")
	}
}

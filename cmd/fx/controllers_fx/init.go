package controllers_fx

import (
	"go.uber.org/fx"

	"freiplatz/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewCarrierController),
	fx.Provide(controllers.NewCategoryController),
	fx.Provide(controllers.NewFacilityController),
	fx.Provide(controllers.NewAvailabilityController),
	fx.Provide(controllers.NewPlaceController),
	fx.Provide(controllers.NewHourController),
	fx.Provide(controllers.NewSearchController),
	fx.Provide(controllers.NewDashboardController))

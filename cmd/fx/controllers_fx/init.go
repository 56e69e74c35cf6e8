package controllers_fx

import (
	"go.uber.org/fx"

	"navigo/internal/api/controllers"
	"navigo/internal/services"
)

var Module = fx.Provide(
	providePlanController)

func providePlanController(plannerService services.PlannerServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(plannerService)
}

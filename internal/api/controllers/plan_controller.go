package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"navigo/internal/models/request_models"
	"navigo/internal/services"
	"navigo/pkg/utils"
)

type PlanController struct {
	plannerService services.PlannerServiceInterface
}

func NewPlanController(plannerService services.PlannerServiceInterface) *PlanController {
	return &PlanController{
		plannerService: plannerService,
	}
}

// GeneratePlan godoc
// @Summary Generate a travel plan
// @Description Build a day-by-day itinerary for a region, date range and set of themes
// @Tags Plan
// @Accept json
// @Produce json
// @Param request body request_models.PlanRequest true "Region, dates, companion type, themes"
// @Success 200 {object} response_models.PlanResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /generate-plan [post]
func (p *PlanController) GeneratePlan(c *gin.Context) {
	var req request_models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Region, start_date and end_date are required")
		return
	}

	plan, err := p.plannerService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Travel plan generated successfully")
}

// ListPlans godoc
// @Summary List generated plans
// @Description Fetch a paginated history of generated travel plans, newest first
// @Tags Plan
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {array} response_models.PlanSummary
// @Security BearerAuth
// @Router /plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	plans, err := p.plannerService.ListPlans(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlanById godoc
// @Summary Get a plan by ID
// @Description Fetch the stored itinerary of a previously generated plan
// @Tags Plan
// @Accept json
// @Produce json
// @Param planId path string true "Plan ID"
// @Success 200 {object} response_models.PlanResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /plans/{planId} [get]
func (p *PlanController) GetPlanById(c *gin.Context) {
	planID := c.Param("planId")
	if planID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Plan ID is required")
		return
	}

	plan, err := p.plannerService.GetPlanByID(c.Request.Context(), planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

package controllers

import (
	"github.com/gin-gonic/gin"

	"freiplatz/internal/access"
	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	auditService     services.AuditServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, auditService services.AuditServiceInterface) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, auditService: auditService}
}

// Report godoc
// @Summary System-wide capacity overview
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /leadership/dashboard [get]
func (d *DashboardController) Report(c *gin.Context) {
	report, err := d.dashboardService.Report(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, report, "Dashboard")
}

// SystemLogs godoc
// @Summary List system log entries
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Param action query string false "Action, e.g. SEARCH"
// @Param entity query string false "Entity, e.g. facility"
// @Success 200 {object} utils.APIResponse
// @Router /admin/system-logs [get]
func (d *DashboardController) SystemLogs(c *gin.Context) {
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	if err := middleware.PrincipalFrom(c).Require(access.ResSystemLog, access.ActRead); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filter := repositories.AuditFilter{Action: c.Query("action"), Entity: c.Query("entity")}
	result, err := d.auditService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "System logs")
}

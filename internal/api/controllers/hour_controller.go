package controllers

import (
	"github.com/gin-gonic/gin"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type HourController struct {
	hourService services.HourServiceInterface
}

func NewHourController(hourService services.HourServiceInterface) *HourController {
	return &HourController{hourService: hourService}
}

// ListByFacility godoc
// @Summary List hour contingents of a facility
// @Tags Hours
// @Produce json
// @Security BearerAuth
// @Param facilityId path string true "Facility ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/hours/facility/{facilityId} [get]
func (h *HourController) ListByFacility(c *gin.Context) {
	facilityID, ok := facilityParam(c)
	if !ok {
		return
	}
	hours, err := h.hourService.ListByFacility(c.Request.Context(), middleware.PrincipalFrom(c), facilityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hours, "Hours retrieved")
}

// Create godoc
// @Summary Create an hour contingent
// @Tags Hours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateHourRequest true "Hour"
// @Success 201 {object} utils.APIResponse
// @Router /carrier/hours [post]
func (h *HourController) Create(c *gin.Context) {
	var req request_models.CreateHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	hour, err := h.hourService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, hour, "Hour created")
}

// Update godoc
// @Summary Update an hour contingent
// @Tags Hours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hour ID"
// @Param request body request_models.UpdateHourRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/hours/{id} [put]
func (h *HourController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	hour, err := h.hourService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hour, "Hour updated")
}

// UpdateAvailableHours godoc
// @Summary Set the available hours of a contingent
// @Description Rejects values above the total hours
// @Tags Hours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hour ID"
// @Param request body request_models.UpdateAvailableHoursRequest true "Available hours"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /carrier/hours/{id}/available [patch]
func (h *HourController) UpdateAvailableHours(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateAvailableHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	hour, err := h.hourService.UpdateAvailableHours(c.Request.Context(), middleware.PrincipalFrom(c), id, *req.AvailableHours)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, hour, "Available hours updated")
}

// Delete godoc
// @Summary Delete an hour contingent
// @Tags Hours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hour ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/hours/{id} [delete]
func (h *HourController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.hourService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Hour deleted")
}

// Statistics godoc
// @Summary Hour utilization statistics of a facility
// @Tags Hours
// @Produce json
// @Security BearerAuth
// @Param facilityId path string true "Facility ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/hours/statistics/{facilityId} [get]
func (h *HourController) Statistics(c *gin.Context) {
	facilityID, ok := facilityParam(c)
	if !ok {
		return
	}
	stats, err := h.hourService.Statistics(c.Request.Context(), middleware.PrincipalFrom(c), facilityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "Hour statistics")
}

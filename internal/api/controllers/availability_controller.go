package controllers

import (
	"github.com/gin-gonic/gin"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type AvailabilityController struct {
	availabilityService services.AvailabilityServiceInterface
}

func NewAvailabilityController(availabilityService services.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{availabilityService: availabilityService}
}

// ListByFacility godoc
// @Summary List availabilities of a facility
// @Tags Availabilities
// @Produce json
// @Security BearerAuth
// @Param facilityId path string true "Facility ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/availabilities/facility/{facilityId} [get]
func (a *AvailabilityController) ListByFacility(c *gin.Context) {
	facilityID, ok := facilityParam(c)
	if !ok {
		return
	}
	rows, err := a.availabilityService.ListByFacility(c.Request.Context(), middleware.PrincipalFrom(c), facilityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, rows, "Availabilities retrieved")
}

// Create godoc
// @Summary Create the availability of a facility for a category
// @Tags Availabilities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateAvailabilityRequest true "Availability"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /carrier/availabilities [post]
func (a *AvailabilityController) Create(c *gin.Context) {
	var req request_models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	row, err := a.availabilityService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, row, "Availability created")
}

// Update godoc
// @Summary Update an availability
// @Tags Availabilities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Param request body request_models.UpdateAvailabilityRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/availabilities/{id} [put]
func (a *AvailabilityController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	row, err := a.availabilityService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, row, "Availability updated")
}

// Delete godoc
// @Summary Delete an availability
// @Tags Availabilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Availability ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/availabilities/{id} [delete]
func (a *AvailabilityController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := a.availabilityService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Availability deleted")
}

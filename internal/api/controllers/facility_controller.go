package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/repositories"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type FacilityController struct {
	facilityService services.FacilityServiceInterface
}

func NewFacilityController(facilityService services.FacilityServiceInterface) *FacilityController {
	return &FacilityController{facilityService: facilityService}
}

// List godoc
// @Summary List facilities visible to the caller
// @Tags Facilities
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Param city query string false "City contains"
// @Param carrierId query string false "Carrier ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/facilities [get]
func (f *FacilityController) List(c *gin.Context) {
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}

	filter := repositories.FacilityFilter{City: c.Query("city")}
	if raw := c.Query("carrierId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid carrierId")
			return
		}
		filter.CarrierID = &id
	}

	result, err := f.facilityService.List(c.Request.Context(), middleware.PrincipalFrom(c), filter, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Facilities retrieved")
}

// Get godoc
// @Summary Facility detail with availabilities
// @Tags Facilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /carrier/facilities/{id} [get]
func (f *FacilityController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	facility, err := f.facilityService.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, facility, "Facility retrieved")
}

// Create godoc
// @Summary Create a facility
// @Tags Facilities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateFacilityRequest true "Facility"
// @Success 201 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /carrier/facilities [post]
func (f *FacilityController) Create(c *gin.Context) {
	var req request_models.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	facility, err := f.facilityService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, facility, "Facility created")
}

// Update godoc
// @Summary Update a facility
// @Tags Facilities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility ID"
// @Param request body request_models.UpdateFacilityRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/facilities/{id} [put]
func (f *FacilityController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	facility, err := f.facilityService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, facility, "Facility updated")
}

// Delete godoc
// @Summary Delete a facility with its places, hours and availabilities
// @Tags Facilities
// @Produce json
// @Security BearerAuth
// @Param id path string true "Facility ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/facilities/{id} [delete]
func (f *FacilityController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := f.facilityService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Facility deleted")
}

package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type PlaceController struct {
	placeService services.PlaceServiceInterface
}

func NewPlaceController(placeService services.PlaceServiceInterface) *PlaceController {
	return &PlaceController{placeService: placeService}
}

// ListByFacility godoc
// @Summary List places of a facility
// @Tags Places
// @Produce json
// @Security BearerAuth
// @Param facilityId path string true "Facility ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/places/facility/{facilityId} [get]
func (p *PlaceController) ListByFacility(c *gin.Context) {
	facilityID, ok := facilityParam(c)
	if !ok {
		return
	}
	places, err := p.placeService.ListByFacility(c.Request.Context(), middleware.PrincipalFrom(c), facilityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, places, "Places retrieved")
}

// Create godoc
// @Summary Create a place
// @Tags Places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreatePlaceRequest true "Place"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /carrier/places [post]
func (p *PlaceController) Create(c *gin.Context) {
	var req request_models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	place, err := p.placeService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, place, "Place created")
}

// BulkCreate godoc
// @Summary Create several places up to the facility capacity
// @Description Creates min(count, remaining capacity) places named "Platz n"; fails when the facility is full
// @Tags Places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param facilityId path string true "Facility ID"
// @Param request body request_models.BulkCreatePlacesRequest true "Bulk request"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /carrier/places/bulk/{facilityId} [post]
func (p *PlaceController) BulkCreate(c *gin.Context) {
	facilityID, ok := facilityParam(c)
	if !ok {
		return
	}
	var req request_models.BulkCreatePlacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	places, err := p.placeService.BulkCreate(c.Request.Context(), middleware.PrincipalFrom(c), facilityID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreatedCount(c, places, len(places), fmt.Sprintf("%d places created", len(places)))
}

// Update godoc
// @Summary Update a place
// @Tags Places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Param request body request_models.UpdatePlaceRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/places/{id} [put]
func (p *PlaceController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	place, err := p.placeService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, place, "Place updated")
}

// SetOccupancy godoc
// @Summary Mark a place occupied or free
// @Tags Places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Param request body request_models.SetOccupancyRequest true "Occupancy"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/places/{id}/occupancy [patch]
func (p *PlaceController) SetOccupancy(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.SetOccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	place, err := p.placeService.SetOccupancy(c.Request.Context(), middleware.PrincipalFrom(c), id, *req.IsOccupied)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, place, "Occupancy updated")
}

// Delete godoc
// @Summary Delete a place
// @Tags Places
// @Produce json
// @Security BearerAuth
// @Param id path string true "Place ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/places/{id} [delete]
func (p *PlaceController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := p.placeService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Place deleted")
}

// Statistics godoc
// @Summary Place occupancy statistics of a facility
// @Tags Places
// @Produce json
// @Security BearerAuth
// @Param facilityId path string true "Facility ID"
// @Success 200 {object} utils.APIResponse
// @Router /carrier/places/statistics/{facilityId} [get]
func (p *PlaceController) Statistics(c *gin.Context) {
	facilityID, ok := facilityParam(c)
	if !ok {
		return
	}
	stats, err := p.placeService.Statistics(c.Request.Context(), middleware.PrincipalFrom(c), facilityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, stats, "Place statistics")
}

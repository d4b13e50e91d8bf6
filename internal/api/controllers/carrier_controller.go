package controllers

import (
	"github.com/gin-gonic/gin"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type CarrierController struct {
	carrierService services.CarrierServiceInterface
}

func NewCarrierController(carrierService services.CarrierServiceInterface) *CarrierController {
	return &CarrierController{carrierService: carrierService}
}

// List godoc
// @Summary List carriers
// @Tags Carriers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Router /admin/carriers [get]
func (cc *CarrierController) List(c *gin.Context) {
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	result, err := cc.carrierService.List(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Carriers retrieved")
}

// Get godoc
// @Summary Get a carrier
// @Tags Carriers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Carrier ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/carriers/{id} [get]
func (cc *CarrierController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	carrier, err := cc.carrierService.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, carrier, "Carrier retrieved")
}

// Create godoc
// @Summary Create a carrier
// @Tags Carriers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateCarrierRequest true "Carrier"
// @Success 201 {object} utils.APIResponse
// @Router /admin/carriers [post]
func (cc *CarrierController) Create(c *gin.Context) {
	var req request_models.CreateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	carrier, err := cc.carrierService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, carrier, "Carrier created")
}

// Update godoc
// @Summary Update a carrier
// @Tags Carriers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Carrier ID"
// @Param request body request_models.UpdateCarrierRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Router /admin/carriers/{id} [put]
func (cc *CarrierController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateCarrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	carrier, err := cc.carrierService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, carrier, "Carrier updated")
}

// Delete godoc
// @Summary Delete a carrier without facilities
// @Tags Carriers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Carrier ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/carriers/{id} [delete]
func (cc *CarrierController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := cc.carrierService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Carrier deleted")
}

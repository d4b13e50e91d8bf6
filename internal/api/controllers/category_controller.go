package controllers

import (
	"github.com/gin-gonic/gin"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type CategoryController struct {
	categoryService services.CategoryServiceInterface
}

func NewCategoryController(categoryService services.CategoryServiceInterface) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// List godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /manager/categories [get]
func (cc *CategoryController) List(c *gin.Context) {
	rows, err := cc.categoryService.List(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, rows, "Categories retrieved")
}

// Get godoc
// @Summary Get a category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/categories/{id} [get]
func (cc *CategoryController) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	row, err := cc.categoryService.Get(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, row, "Category retrieved")
}

// Create godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateCategoryRequest true "Category"
// @Success 201 {object} utils.APIResponse
// @Router /admin/categories [post]
func (cc *CategoryController) Create(c *gin.Context) {
	var req request_models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	row, err := cc.categoryService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, row, "Category created")
}

// Update godoc
// @Summary Update a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body request_models.UpdateCategoryRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Router /admin/categories/{id} [put]
func (cc *CategoryController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	row, err := cc.categoryService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, row, "Category updated")
}

// Delete godoc
// @Summary Delete an unused category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /admin/categories/{id} [delete]
func (cc *CategoryController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := cc.categoryService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Category deleted")
}

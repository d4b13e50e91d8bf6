package controllers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type SearchController struct {
	searchService services.SearchServiceInterface
}

func NewSearchController(searchService services.SearchServiceInterface) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search godoc
// @Summary Search facilities with free capacity
// @Description Filters by category, gender suitability, age overlap, city, postal code and radius; sorts by distance, available places or last update
// @Tags Search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.SearchRequest true "Search filters"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /manager/search [post]
func (s *SearchController) Search(c *gin.Context) {
	var req request_models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := s.searchService.Search(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondPage(c, page.Data, page.Meta, "Search completed")
}

// SearchByCategory godoc
// @Summary Search facilities within one category
// @Tags Search
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "Category ID"
// @Param request body request_models.SearchRequest false "Search filters"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /manager/search/category/{categoryId} [post]
func (s *SearchController) SearchByCategory(c *gin.Context) {
	categoryID, ok := uuidParam(c, "categoryId")
	if !ok {
		return
	}

	// An absent body, including an empty chunked one, means no filters.
	var req request_models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondBindingError(c, err)
		return
	}

	page, err := s.searchService.SearchByCategory(c.Request.Context(), middleware.PrincipalFrom(c), categoryID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondPage(c, page.Data, page.Meta, "Search completed")
}

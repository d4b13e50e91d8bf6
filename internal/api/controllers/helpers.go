package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freiplatz/pkg/utils"
)

// uuidParam parses a path parameter and answers 400 when it is malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondErrorDetails(c, http.StatusBadRequest, "Invalid "+name, map[string]string{name: "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// facilityParam reads the facility id from either :facilityId or, on routes
// nested under /facilities/:id, from :id.
func facilityParam(c *gin.Context) (uuid.UUID, bool) {
	if c.Param("facilityId") != "" {
		return uuidParam(c, "facilityId")
	}
	return uuidParam(c, "id")
}

// paging reads page and pageSize query parameters (defaults 1 and 10).
func paging(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return 0, 0, false
	}
	return page, pageSize, true
}

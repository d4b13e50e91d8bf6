package controllers

import (
	"github.com/gin-gonic/gin"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/middleware"
	"freiplatz/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a manager account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	account, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, account, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	result, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Login successful")
}

// Me godoc
// @Summary Current account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /auth/me [get]
func (a *AccountController) Me(c *gin.Context) {
	account, err := a.accountService.Me(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Account retrieved")
}

// List godoc
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Router /admin/accounts [get]
func (a *AccountController) List(c *gin.Context) {
	page, pageSize, ok := paging(c)
	if !ok {
		return
	}
	result, err := a.accountService.List(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Accounts retrieved")
}

// Create godoc
// @Summary Create an account with any role
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreateAccountRequest true "Account"
// @Success 201 {object} utils.APIResponse
// @Router /admin/accounts [post]
func (a *AccountController) Create(c *gin.Context) {
	var req request_models.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	account, err := a.accountService.Create(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, account, "Account created")
}

// Update godoc
// @Summary Update an account
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body request_models.UpdateAccountRequest true "Changes"
// @Success 200 {object} utils.APIResponse
// @Router /admin/accounts/{id} [put]
func (a *AccountController) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}
	account, err := a.accountService.Update(c.Request.Context(), middleware.PrincipalFrom(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Account updated")
}

// Delete godoc
// @Summary Delete an account
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/accounts/{id} [delete]
func (a *AccountController) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := a.accountService.Delete(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Account deleted")
}

// LinkCarrier godoc
// @Summary Allow a carrier account to manage a carrier
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param carrierId path string true "Carrier ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/accounts/{id}/carriers/{carrierId} [post]
func (a *AccountController) LinkCarrier(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	carrierID, ok := uuidParam(c, "carrierId")
	if !ok {
		return
	}
	if err := a.accountService.LinkCarrier(c.Request.Context(), middleware.PrincipalFrom(c), id, carrierID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Carrier linked")
}

// UnlinkCarrier godoc
// @Summary Remove a carrier from an account
// @Tags Accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param carrierId path string true "Carrier ID"
// @Success 200 {object} utils.APIResponse
// @Router /admin/accounts/{id}/carriers/{carrierId} [delete]
func (a *AccountController) UnlinkCarrier(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	carrierID, ok := uuidParam(c, "carrierId")
	if !ok {
		return
	}
	if err := a.accountService.UnlinkCarrier(c.Request.Context(), middleware.PrincipalFrom(c), id, carrierID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Carrier unlinked")
}

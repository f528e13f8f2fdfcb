package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountTypeHandler serves the account type catalog and the sub type listing.
type accountTypeHandler struct {
	typeService portssvc.AccountTypeSvcFacade
}

func newAccountTypeHandler(ts portssvc.AccountTypeSvcFacade) *accountTypeHandler {
	return &accountTypeHandler{typeService: ts}
}

// registerAccountTypeRoutes registers the catalog routes and /accounts/sub-types.
func registerAccountTypeRoutes(rg *gin.RouterGroup, typeService portssvc.AccountTypeSvcFacade) {
	h := newAccountTypeHandler(typeService)

	rg.GET("/accounts/sub-types", h.listSubTypes)

	types := rg.Group("/account-types")
	{
		types.POST("", h.createAccountType)
		types.GET("", h.listAccountTypes)
		types.GET("/:typeID", h.getAccountType)
		types.PUT("/:typeID", h.updateAccountType)
		types.DELETE("/:typeID", h.deleteAccountType)
	}
}

// listSubTypes godoc
// @Summary List account sub types
// @Tags accounts
// @Produce  json
// @Success 200 {array} domain.SubTypeInfo
// @Security BearerAuth
// @Router /accounts/sub-types [get]
func (h *accountTypeHandler) listSubTypes(c *gin.Context) {
	c.JSON(http.StatusOK, h.typeService.ListSubTypes(c.Request.Context()))
}

// createAccountType godoc
// @Summary Create an account type
// @Description Adds a custom entry to the workplace's account type catalog, classified under one of the five base types
// @Tags account-types
// @Accept  json
// @Produce  json
// @Param   accountType body dto.CreateAccountTypeRequest true "Account type details"
// @Success 201 {object} dto.AccountTypeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Type code already exists"
// @Security BearerAuth
// @Router /account-types [post]
func (h *accountTypeHandler) createAccountType(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	def, err := h.typeService.CreateAccountType(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create account type")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account type created successfully",
		slog.String("type_id", def.TypeID), slog.String("type_code", def.TypeCode))
	c.JSON(http.StatusCreated, dto.ToAccountTypeResponse(def))
}

// listAccountTypes godoc
// @Summary List account types
// @Description Lists the catalog ordered by display order then name. A sub system filter keeps shared entries.
// @Tags account-types
// @Produce  json
// @Param   subSystemId query string false "Sub-system ID"
// @Param   includeInactive query bool false "Include inactive entries"
// @Success 200 {array} dto.AccountTypeResponse
// @Security BearerAuth
// @Router /account-types [get]
func (h *accountTypeHandler) listAccountTypes(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ListAccountTypesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	defs, err := h.typeService.ListAccountTypes(c.Request.Context(), workplaceID, params.ToFilter())
	if err != nil {
		respondWithError(c, err, "Failed to list account types")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountTypeResponse(defs))
}

// getAccountType godoc
// @Summary Get an account type
// @Tags account-types
// @Produce  json
// @Param   typeID path string true "Account type ID"
// @Success 200 {object} dto.AccountTypeResponse
// @Failure 404 {object} map[string]string "Account type not found"
// @Security BearerAuth
// @Router /account-types/{typeID} [get]
func (h *accountTypeHandler) getAccountType(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	def, err := h.typeService.GetAccountType(c.Request.Context(), workplaceID, c.Param("typeID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account type")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTypeResponse(def))
}

// updateAccountType godoc
// @Summary Update an account type
// @Description System types cannot be modified. Code and classification are fixed once accounts use the type.
// @Tags account-types
// @Accept  json
// @Produce  json
// @Param   typeID path string true "Account type ID"
// @Param   accountType body dto.UpdateAccountTypeRequest true "Fields to update"
// @Success 200 {object} dto.AccountTypeResponse
// @Failure 400 {object} map[string]string "Invalid input or system type"
// @Failure 404 {object} map[string]string "Account type not found"
// @Failure 409 {object} map[string]string "Type code already exists or type in use"
// @Security BearerAuth
// @Router /account-types/{typeID} [put]
func (h *accountTypeHandler) updateAccountType(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.typeService.UpdateAccountType(c.Request.Context(), workplaceID, c.Param("typeID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update account type")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountTypeResponse(updated))
}

// deleteAccountType godoc
// @Summary Delete an account type
// @Description Deletes a custom type that no account uses.
// @Tags account-types
// @Param   typeID path string true "Account type ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "System type"
// @Failure 404 {object} map[string]string "Account type not found"
// @Failure 409 {object} map[string]string "Account type in use"
// @Security BearerAuth
// @Router /account-types/{typeID} [delete]
func (h *accountTypeHandler) deleteAccountType(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.typeService.DeleteAccountType(c.Request.Context(), workplaceID, c.Param("typeID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete account type")
		return
	}
	c.Status(http.StatusNoContent)
}

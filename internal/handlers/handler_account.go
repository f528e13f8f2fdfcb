package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.GET("/:accountID/balances", h.getAccountBalances)
		accounts.POST("/:accountID/currencies", h.addAccountCurrency)
		accounts.DELETE("/:accountID/currencies/:currencyID", h.removeAccountCurrency)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account in the workplace's chart of accounts, optionally linked to currencies
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created successfully",
		slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   type query string false "Account type" Enums(ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)
// @Param   typeCode query string false "Account type catalog code"
// @Param   subType query string false "Account subtype"
// @Param   subSystemId query string false "Sub-system ID"
// @Param   parentId query string false "Parent account ID"
// @Param   activeOnly query bool false "Only active accounts"
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), workplaceID, params.ToFilter())
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// getAccount godoc
// @Summary Get an account
// @Description Retrieves an account with its currency links and balances
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountDetailsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	details, err := h.accountService.GetAccountDetails(c.Request.Context(), workplaceID, c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountDetailsResponse(details))
}

// updateAccount godoc
// @Summary Update an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input or hierarchy cycle"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), workplaceID, c.Param("accountID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account without children, balances or journal lines
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account in use"
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), workplaceID, c.Param("accountID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAccountBalances godoc
// @Summary Get account balances
// @Description Lists one balance row per currency the account has posted in
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID}/balances [get]
func (h *accountHandler) getAccountBalances(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	balances, err := h.accountService.GetAccountBalances(c.Request.Context(), workplaceID, c.Param("accountID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponses(balances))
}

// addAccountCurrency godoc
// @Summary Link a currency to an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   currency body dto.AccountCurrencyInput true "Currency link"
// @Success 201 {object} domain.AccountCurrency
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account or currency not found"
// @Failure 409 {object} map[string]string "Currency already linked"
// @Security BearerAuth
// @Router /accounts/{accountID}/currencies [post]
func (h *accountHandler) addAccountCurrency(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.AccountCurrencyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	link, err := h.accountService.AddAccountCurrency(c.Request.Context(), workplaceID, c.Param("accountID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to link currency")
		return
	}
	c.JSON(http.StatusCreated, link)
}

// removeAccountCurrency godoc
// @Summary Unlink a currency from an account
// @Tags accounts
// @Param   accountID path string true "Account ID"
// @Param   currencyID path string true "Currency ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Link not found"
// @Failure 409 {object} map[string]string "Account holds a balance in the currency"
// @Security BearerAuth
// @Router /accounts/{accountID}/currencies/{currencyID} [delete]
func (h *accountHandler) removeAccountCurrency(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	err := h.accountService.RemoveAccountCurrency(c.Request.Context(), workplaceID, c.Param("accountID"), c.Param("currencyID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to unlink currency")
		return
	}
	c.Status(http.StatusNoContent)
}

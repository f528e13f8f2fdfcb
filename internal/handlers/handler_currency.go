package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	rateService     portssvc.ExchangeRateReaderSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, rs portssvc.ExchangeRateReaderSvc) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
		rateService:     rs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, rateService portssvc.ExchangeRateReaderSvc) {
	h := newCurrencyHandler(currencyService, rateService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/base", h.getBaseCurrency)
		currencies.GET("/:currencyID", h.getCurrency)
		currencies.PUT("/:currencyID", h.updateCurrency)
		currencies.DELETE("/:currencyID", h.deleteCurrency)
		currencies.GET("/:currencyID/exchange-rates", h.listCurrencyExchangeRates)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a currency to the workplace. Marking it as base replaces the previous base currency.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Currency code already exists"
// @Failure 500 {object} map[string]string "Failed to create currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.currencyService.CreateCurrency(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create currency")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Currency created",
		slog.String("currency_id", created.CurrencyID), slog.String("code", created.Code))
	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(created))
}

// listCurrencies godoc
// @Summary List currencies
// @Description Lists the workplace's currencies ordered by display order then code
// @Tags currencies
// @Produce  json
// @Param   activeOnly query bool false "Only active currencies"
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ListCurrenciesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context(), workplaceID, params.ActiveOnly)
	if err != nil {
		respondWithError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "No base currency configured"
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *currencyHandler) getBaseCurrency(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	base, err := h.currencyService.GetBaseCurrency(c.Request.Context(), workplaceID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(base))
}

// getCurrency godoc
// @Summary Get a currency
// @Tags currencies
// @Produce  json
// @Param   currencyID path string true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyID} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	currency, err := h.currencyService.GetCurrencyByID(c.Request.Context(), workplaceID, c.Param("currencyID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// updateCurrency godoc
// @Summary Update a currency
// @Description Applies a partial update. Setting isBase moves the base flag to this currency.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currencyID path string true "Currency ID"
// @Param   currency body dto.UpdateCurrencyRequest true "Fields to update"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Currency code already exists"
// @Security BearerAuth
// @Router /currencies/{currencyID} [put]
func (h *currencyHandler) updateCurrency(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.currencyService.UpdateCurrency(c.Request.Context(), workplaceID, c.Param("currencyID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(updated))
}

// deleteCurrency godoc
// @Summary Delete a currency
// @Description Deletes a currency that is not the base currency and is not referenced by rates, accounts, lines or vouchers.
// @Tags currencies
// @Param   currencyID path string true "Currency ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Currency in use"
// @Security BearerAuth
// @Router /currencies/{currencyID} [delete]
func (h *currencyHandler) deleteCurrency(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.currencyService.DeleteCurrency(c.Request.Context(), workplaceID, c.Param("currencyID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete currency")
		return
	}
	c.Status(http.StatusNoContent)
}

// listCurrencyExchangeRates godoc
// @Summary List a currency's exchange rates
// @Description Lists the rate records quoted from the given currency
// @Tags currencies
// @Produce  json
// @Param   currencyID path string true "Currency ID"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyID}/exchange-rates [get]
func (h *currencyHandler) listCurrencyExchangeRates(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	rates, err := h.rateService.ListExchangeRatesForCurrency(c.Request.Context(), workplaceID, c.Param("currencyID"))
	if err != nil {
		respondWithError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/current", h.listCurrentExchangeRates)
		rates.GET("/resolve", h.resolveExchangeRate)
		rates.GET("/:rateID", h.getExchangeRate)
		rates.PUT("/:rateID", h.updateExchangeRate)
		rates.DELETE("/:rateID", h.deleteExchangeRate)
	}
}

// dateOrToday returns the calendar date d, or today's UTC date when d is nil.
func dateOrToday(d *time.Time) time.Time {
	if d != nil {
		return *d
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// createExchangeRate godoc
// @Summary Create a new exchange rate
// @Description Records a rate converting one unit of the from currency into the to currency, effective from a date
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   exchangeRate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown currency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create exchange rate")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Exchange rate created", slog.String("rate_id", rate.RateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Tags exchange-rates
// @Produce  json
// @Param   activeOnly query bool false "Only active records"
// @Success 200 {array} dto.ExchangeRateResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	rates, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), workplaceID, params.ActiveOnly)
	if err != nil {
		respondWithError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// listCurrentExchangeRates godoc
// @Summary List rates in effect
// @Description Lists the active records whose validity window contains the date (today when omitted)
// @Tags exchange-rates
// @Produce  json
// @Param   date query string false "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExchangeRateResponse
// @Security BearerAuth
// @Router /exchange-rates/current [get]
func (h *exchangeRateHandler) listCurrentExchangeRates(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.CurrentRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	rates, err := h.exchangeRateService.ListCurrentExchangeRates(c.Request.Context(), workplaceID, dateOrToday(params.Date))
	if err != nil {
		respondWithError(c, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// resolveExchangeRate godoc
// @Summary Resolve a conversion rate
// @Description Resolves the rate converting one unit of from into to on a date, trying direct, inverted and currency default rates
// @Tags exchange-rates
// @Produce  json
// @Param   from query string true "From currency ID"
// @Param   to query string true "To currency ID"
// @Param   date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.ResolvedRate
// @Failure 400 {object} map[string]string "No rate available"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /exchange-rates/resolve [get]
func (h *exchangeRateHandler) resolveExchangeRate(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ResolveRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resolved, err := h.exchangeRateService.ResolveRate(c.Request.Context(), workplaceID, params.FromCurrencyID, params.ToCurrencyID, dateOrToday(params.Date))
	if err != nil {
		respondWithError(c, err, "Failed to resolve exchange rate")
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Tags exchange-rates
// @Produce  json
// @Param   rateID path string true "Exchange rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	rate, err := h.exchangeRateService.GetExchangeRate(c.Request.Context(), workplaceID, c.Param("rateID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// updateExchangeRate godoc
// @Summary Update an exchange rate
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rateID path string true "Exchange rate ID"
// @Param   exchangeRate body dto.UpdateExchangeRateRequest true "Fields to update"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rate, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), workplaceID, c.Param("rateID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deleteExchangeRate godoc
// @Summary Delete an exchange rate
// @Tags exchange-rates
// @Param   rateID path string true "Exchange rate ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/{rateID} [delete]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.exchangeRateService.DeleteExchangeRate(c.Request.Context(), workplaceID, c.Param("rateID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete exchange rate")
		return
	}
	c.Status(http.StatusNoContent)
}

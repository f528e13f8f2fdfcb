package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// voucherHandler handles HTTP requests on existing vouchers.
type voucherHandler struct {
	voucherService portssvc.VoucherSvc
}

func newVoucherHandler(vs portssvc.VoucherSvc) *voucherHandler {
	return &voucherHandler{
		voucherService: vs,
	}
}

// registerVoucherRoutes registers routes related to vouchers.
func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvc) {
	h := newVoucherHandler(voucherService)

	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:voucherID", h.getVoucher)
		vouchers.PUT("/:voucherID", h.updateVoucher)
		vouchers.DELETE("/:voucherID", h.deleteVoucher)
		vouchers.POST("/:voucherID/cancel", h.cancelVoucher)
	}
}

// listVouchers godoc
// @Summary List vouchers
// @Tags vouchers
// @Produce  json
// @Param   type query string false "Voucher type" Enums(RECEIPT, PAYMENT, TRANSFER)
// @Param   status query string false "Status" Enums(DRAFT, APPROVED, CANCELLED)
// @Param   subSystemId query string false "Sub-system ID"
// @Param   fromDate query string false "From date (YYYY-MM-DD)"
// @Param   toDate query string false "To date (YYYY-MM-DD)"
// @Success 200 {array} dto.VoucherResponse
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), workplaceID, params.ToFilter())
	if err != nil {
		respondWithError(c, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVoucherResponse(vouchers))
}

// getVoucher godoc
// @Summary Get a voucher
// @Description Retrieves a voucher with its journal entry
// @Tags vouchers
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	details, err := h.voucherService.GetVoucher(c.Request.Context(), workplaceID, c.Param("voucherID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherDetailsResponse(details))
}

// updateVoucher godoc
// @Summary Update a draft voucher
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   voucher body dto.UpdateVoucherRequest true "Fields to update"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is not a draft"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	voucher, err := h.voucherService.UpdateVoucher(c.Request.Context(), workplaceID, c.Param("voucherID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// deleteVoucher godoc
// @Summary Delete a draft voucher
// @Tags vouchers
// @Param   voucherID path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is not a draft"
// @Security BearerAuth
// @Router /vouchers/{voucherID} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.voucherService.DeleteVoucher(c.Request.Context(), workplaceID, c.Param("voucherID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete voucher")
		return
	}
	c.Status(http.StatusNoContent)
}

// cancelVoucher godoc
// @Summary Cancel an approved voucher
// @Description Reverses the voucher's journal entry and marks the voucher cancelled. The response carries the reversal entry.
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucherID path string true "Voucher ID"
// @Param   cancel body dto.CancelVoucherRequest true "Cancellation details"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher is not approved"
// @Security BearerAuth
// @Router /vouchers/{voucherID}/cancel [post]
func (h *voucherHandler) cancelVoucher(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CancelVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	details, err := h.voucherService.CancelVoucher(c.Request.Context(), workplaceID, c.Param("voucherID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to cancel voucher")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Voucher cancelled", slog.String("voucher_id", details.VoucherID))
	c.JSON(http.StatusOK, dto.ToVoucherDetailsResponse(details))
}

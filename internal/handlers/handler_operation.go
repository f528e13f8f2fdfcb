package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// operationHandler handles receipts, payments and transfers.
type operationHandler struct {
	operationService portssvc.OperationComposerSvc
	journalService   portssvc.JournalReaderSvc
}

func newOperationHandler(ops portssvc.OperationComposerSvc, js portssvc.JournalReaderSvc) *operationHandler {
	return &operationHandler{
		operationService: ops,
		journalService:   js,
	}
}

// registerOperationRoutes registers routes that compose vouchers into posted entries.
func registerOperationRoutes(rg *gin.RouterGroup, operationService portssvc.OperationComposerSvc, journalService portssvc.JournalReaderSvc) {
	h := newOperationHandler(operationService, journalService)

	operations := rg.Group("/operations")
	{
		operations.POST("/receipts", h.createReceipt)
		operations.POST("/payments", h.createPayment)
		operations.POST("/transfers", h.createTransfer)
		operations.GET("/recent", h.listRecentOperations)
	}
}

func (h *operationHandler) respondComposed(c *gin.Context, details *domain.VoucherDetails) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Operation recorded",
		slog.String("voucher_type", string(details.VoucherType)),
		slog.String("voucher_id", details.VoucherID),
		slog.String("entry_id", details.JournalEntryID))
	c.JSON(http.StatusCreated, dto.ToVoucherDetailsResponse(details))
}

// createReceipt godoc
// @Summary Record a receipt
// @Description Money received into a treasury account from a source account. Posts a two-line entry debiting the treasury account.
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input or rate unavailable"
// @Failure 404 {object} map[string]string "Account or currency not found"
// @Failure 409 {object} map[string]string "Voucher number already exists"
// @Security BearerAuth
// @Router /operations/receipts [post]
func (h *operationHandler) createReceipt(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	details, err := h.operationService.CreateReceipt(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record receipt")
		return
	}
	h.respondComposed(c, details)
}

// createPayment godoc
// @Summary Record a payment
// @Description Money paid out of a treasury account to a destination account. Posts a two-line entry crediting the treasury account.
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input or rate unavailable"
// @Failure 404 {object} map[string]string "Account or currency not found"
// @Failure 409 {object} map[string]string "Voucher number already exists"
// @Security BearerAuth
// @Router /operations/payments [post]
func (h *operationHandler) createPayment(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	details, err := h.operationService.CreatePayment(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record payment")
		return
	}
	h.respondComposed(c, details)
}

// createTransfer godoc
// @Summary Record a transfer
// @Description Moves money from one account to another
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input or rate unavailable"
// @Failure 404 {object} map[string]string "Account or currency not found"
// @Failure 409 {object} map[string]string "Voucher number already exists"
// @Security BearerAuth
// @Router /operations/transfers [post]
func (h *operationHandler) createTransfer(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	details, err := h.operationService.CreateTransfer(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to record transfer")
		return
	}
	h.respondComposed(c, details)
}

// listRecentOperations godoc
// @Summary List recent operations
// @Description Lists the latest system-generated entries with their lines
// @Tags operations
// @Produce  json
// @Param   limit query int false "Number of entries" default(20)
// @Success 200 {array} dto.JournalEntryResponse
// @Security BearerAuth
// @Router /operations/recent [get]
func (h *operationHandler) listRecentOperations(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.RecentOperationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.journalService.ListRecentOperations(c.Request.Context(), workplaceID, params.Limit)
	if err != nil {
		respondWithError(c, err, "Failed to list recent operations")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries, nil).Entries)
}

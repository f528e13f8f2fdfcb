package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/reconcile", h.reconcileBalance)
		entries.GET("/:entryID", h.getJournalEntry)
		entries.PUT("/:entryID", h.updateJournalEntry)
		entries.DELETE("/:entryID", h.deleteJournalEntry)
		entries.POST("/:entryID/post", h.postJournalEntry)
		entries.POST("/:entryID/reverse", h.reverseJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a draft journal entry
// @Description Validates the lines, converts them to the base currency and stores the entry as a draft. Balances are not touched until the entry is posted.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry and lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]any "Invalid input or unbalanced entry (with totalDebit and totalCredit)"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Entry number already exists"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createJournalEntry(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), workplaceID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry created",
		slog.String("entry_id", entry.EntryID), slog.Int("line_count", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first. Pass the returned nextToken to fetch the following page.
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "Status" Enums(DRAFT, POSTED, REVERSED)
// @Param   entryType query string false "Entry type" Enums(MANUAL, SYSTEM_GENERATED, REVERSAL)
// @Param   subSystemId query string false "Sub-system ID"
// @Param   fromDate query string false "From date (YYYY-MM-DD)"
// @Param   toDate query string false "To date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter or token"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	entries, nextToken, err := h.journalService.ListJournalEntries(c.Request.Context(), workplaceID, params.ToFilter())
	if err != nil {
		respondWithError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries, nextToken))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), workplaceID, c.Param("entryID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateJournalEntry godoc
// @Summary Update a draft journal entry
// @Description Patches a draft entry. Supplying lines replaces all of them.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Fields to update"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]any "Invalid input or unbalanced entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [put]
func (h *journalHandler) updateJournalEntry(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), workplaceID, c.Param("entryID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteJournalEntry godoc
// @Summary Delete a draft journal entry
// @Tags journal-entries
// @Param   entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is no longer a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [delete]
func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), workplaceID, c.Param("entryID"), userID); err != nil {
		respondWithError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// postJournalEntry godoc
// @Summary Post a draft journal entry
// @Description Posts the entry and applies every line to the balance store in one unit of work
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/post [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), workplaceID, c.Param("entryID"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to post journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseJournalEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates and posts the mirror entry, then marks the original reversed. Returns the reversal.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseJournalEntryRequest true "Reversal details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not posted"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/reverse [post]
func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	workplaceID, userID, ok := identity(c)
	if !ok {
		return
	}
	var req dto.ReverseJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), workplaceID, c.Param("entryID"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to reverse journal entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry reversed",
		slog.String("entry_id", c.Param("entryID")), slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// reconcileBalance godoc
// @Summary Reconcile a balance row
// @Description Replays the posted lines of an (account, currency) pair and compares the result with the stored balance
// @Tags journal-entries
// @Produce  json
// @Param   accountId query string true "Account ID"
// @Param   currencyId query string true "Currency ID"
// @Success 200 {object} domain.BalanceReconciliation
// @Failure 400 {object} map[string]string "Missing parameters"
// @Security BearerAuth
// @Router /journal-entries/reconcile [get]
func (h *journalHandler) reconcileBalance(c *gin.Context) {
	workplaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var params dto.ReconcileBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.journalService.ReconcileBalance(c.Request.Context(), workplaceID, params.AccountID, params.CurrencyID)
	if err != nil {
		respondWithError(c, err, "Failed to reconcile balance")
		return
	}
	if !result.InSync {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Balance out of sync with journal",
			slog.String("account_id", params.AccountID), slog.String("currency_id", params.CurrencyID))
	}
	c.JSON(http.StatusOK, result)
}

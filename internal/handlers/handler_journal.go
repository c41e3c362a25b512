package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/internal/middleware"
)

// journalHandler handles HTTP requests for posting and reading the ledger.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("/:id", h.getJournalEntry)
	}
	rg.GET("/companies/:id/journal-entries", h.listJournalEntries)
}

func (h *journalHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	out := h.journalService.CreateJournalEntry(c.Request.Context(), req, creatorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", out.Value().EntryID),
		slog.String("company_id", out.Value().CompanyID),
		slog.Int("line_count", len(out.Value().Lines)))
	c.JSON(http.StatusCreated, out.Value())
}

func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.journalService.GetJournalEntry(c.Request.Context(), c.Param("id"), requestingUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

// listJournalEntries returns all of a company's entries, or only those inside
// [from, to] when both query parameters are present (RFC 3339 dates).
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	companyID := c.Param("id")
	fromRaw, toRaw := c.Query("from"), c.Query("to")
	if fromRaw == "" && toRaw == "" {
		out := h.journalService.ListJournalEntries(c.Request.Context(), companyID, requestingUserID)
		if out.IsFailure() {
			respondError(c, logger, out.Err())
			return
		}
		c.JSON(http.StatusOK, out.Value())
		return
	}

	from, err := time.Parse(time.RFC3339, fromRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date: " + fromRaw})
		return
	}
	to, err := time.Parse(time.RFC3339, toRaw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date: " + toRaw})
		return
	}

	out := h.journalService.ListJournalEntriesByDateRange(c.Request.Context(), companyID, from, to, requestingUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}
	c.JSON(http.StatusOK, out.Value())
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes nests the chart of accounts under its company.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/companies/:id/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.DELETE("/:accountID", h.deactivateAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	out := h.accountService.CreateAccount(c.Request.Context(), c.Param("id"), req, actorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("Account created",
		slog.String("account_id", out.Value().AccountID),
		slog.String("company_id", out.Value().CompanyID))
	c.JSON(http.StatusCreated, out.Value())
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.accountService.ListAccounts(c.Request.Context(), c.Param("id"), requestingUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("id"), c.Param("accountID"), actorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.Status(http.StatusNoContent)
}

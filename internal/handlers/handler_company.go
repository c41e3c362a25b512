package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/internal/middleware"
)

// companyHandler handles HTTP requests for the company lifecycle.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompany)
		companies.GET("/me", h.getOwnCompany)
		companies.GET("/:id", h.getCompany)
		companies.PUT("/:id/name", h.renameCompany)
		companies.PUT("/:id/accountant", h.assignAccountant)
		companies.POST("/:id/deactivate", h.deactivateCompany)
		companies.POST("/:id/activate", h.activateCompany)
	}
}

func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	out := h.companyService.CreateCompany(c.Request.Context(), req, creatorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("Company created",
		slog.String("company_id", out.Value().CompanyID),
		slog.String("owner_user_id", creatorUserID))
	c.JSON(http.StatusCreated, out.Value())
}

func (h *companyHandler) getOwnCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.companyService.GetOwnCompany(c.Request.Context(), userID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.companyService.GetCompany(c.Request.Context(), c.Param("id"), requestingUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

func (h *companyHandler) renameCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.RenameCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	out := h.companyService.RenameCompany(c.Request.Context(), c.Param("id"), req, actorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

func (h *companyHandler) assignAccountant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.AssignAccountantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	companyID := c.Param("id")
	out := h.companyService.AssignAccountant(c.Request.Context(), companyID, req, actorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("Accountant assigned",
		slog.String("company_id", companyID),
		slog.String("accountant_user_id", req.AccountantUserID))
	c.JSON(http.StatusOK, out.Value())
}

func (h *companyHandler) deactivateCompany(c *gin.Context) {
	h.setCompanyActive(c, false)
}

func (h *companyHandler) activateCompany(c *gin.Context) {
	h.setCompanyActive(c, true)
}

func (h *companyHandler) setCompanyActive(c *gin.Context, active bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	companyID := c.Param("id")
	var out = h.companyService.DeactivateCompany
	if active {
		out = h.companyService.ActivateCompany
	}
	result := out(c.Request.Context(), companyID, actorUserID)
	if result.IsFailure() {
		respondError(c, logger, result.Err())
		return
	}

	logger.Info("Company active state changed",
		slog.String("company_id", companyID),
		slog.Bool("is_active", active))
	c.Status(http.StatusNoContent)
}

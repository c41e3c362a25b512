package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/internal/middleware"
)

// authHandler handles HTTP requests for registration and sessions.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public signup/login routes on the engine.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
	}
}

// registerSessionRoutes registers the authenticated session routes.
func registerSessionRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.POST("/logout", h.logout)
		auth.POST("/change-password", h.changePassword)
	}
}

func (h *authHandler) signup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	out := h.authService.Signup(c.Request.Context(), req)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("User signed up", slog.String("user_id", out.Value().UserID))
	c.JSON(http.StatusCreated, out.Value())
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	out := h.authService.Login(c.Request.Context(), req)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.authService.Logout(c.Request.Context(), userID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *authHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	out := h.authService.ChangePassword(c.Request.Context(), userID, req)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("Password changed", slog.String("user_id", userID))
	c.Status(http.StatusNoContent)
}

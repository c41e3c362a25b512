package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/internal/middleware"
)

// documentHandler handles HTTP requests for document upload and review.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	companyDocs := rg.Group("/companies/:id/documents")
	{
		companyDocs.POST("", h.uploadDocument)
		companyDocs.GET("", h.listDocuments)
	}

	docs := rg.Group("/documents")
	{
		docs.GET("/:id", h.getDocument)
		docs.POST("/:id/transition", h.transitionDocument)
		docs.DELETE("/:id", h.deleteDocument)
	}
}

// uploadDocument accepts a multipart form with a "file" part and a
// "documentType" field. The size and content type reported by the part are
// checked against the upload policy before any bytes are stored.
func (h *documentHandler) uploadDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	uploaderUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBindError(c, logger, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	req := dto.UploadDocumentRequest{
		CompanyID:    c.Param("id"),
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes:    fileHeader.Size,
		DocumentType: c.PostForm("documentType"),
		Content:      file,
	}

	out := h.documentService.UploadDocument(c.Request.Context(), req, uploaderUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("Document uploaded",
		slog.String("document_id", out.Value().DocumentID),
		slog.String("company_id", out.Value().CompanyID),
		slog.Int64("size_bytes", fileHeader.Size))
	c.JSON(http.StatusCreated, out.Value())
}

func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var status *domain.DocumentStatus
	if raw := c.Query("status"); raw != "" {
		s := domain.DocumentStatus(raw)
		switch s {
		case domain.PendingReview, domain.InProgress, domain.UserInputNeeded, domain.Completed:
			status = &s
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document status: " + raw})
			return
		}
	}

	out := h.documentService.ListDocuments(c.Request.Context(), c.Param("id"), status, requestingUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.documentService.GetDocument(c.Request.Context(), c.Param("id"), requestingUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.JSON(http.StatusOK, out.Value())
}

func (h *documentHandler) transitionDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	var req dto.TransitionDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	documentID := c.Param("id")
	out := h.documentService.TransitionDocument(c.Request.Context(), documentID, dto.DocumentAction(req.Action), actorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	logger.Info("Document transitioned",
		slog.String("document_id", documentID),
		slog.String("action", req.Action),
		slog.String("status", out.Value().Status))
	c.JSON(http.StatusOK, out.Value())
}

func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthorized(c, logger)
		return
	}

	out := h.documentService.DeleteDocument(c.Request.Context(), c.Param("id"), actorUserID)
	if out.IsFailure() {
		respondError(c, logger, out.Err())
		return
	}

	c.Status(http.StatusNoContent)
}
